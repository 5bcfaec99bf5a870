package server

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"
	"time"

	"carneiros_checker/models"
	"carneiros_checker/sheets"
	"carneiros_checker/storage"
)

// QueryRunner is the core pipeline boundary the HTTP layer drives.
type QueryRunner interface {
	Run(ctx context.Context, q models.StayQuery) (*models.QueryResult, error)
}

// inputDateLayout is DD/MM/YYYY, the format the chat platform sends.
const inputDateLayout = "02/01/2006"

type Handlers struct {
	checker QueryRunner
	store   *storage.SQLiteStore
	sheets  *sheets.Client
}

func NewHandlers(checker QueryRunner, store *storage.SQLiteStore, sheetsClient *sheets.Client) *Handlers {
	return &Handlers{checker: checker, store: store, sheets: sheetsClient}
}

func (h *Handlers) HandleStatus(w http.ResponseWriter, r *http.Request) {
	RespondWithJSON(w, http.StatusOK, map[string]any{
		"status":  "online",
		"service": "availability checker",
		"endpoints": map[string]string{
			"check_post": "POST /check (JSON body)",
			"check_get":  "GET /check?checkin=DD/MM/YYYY&checkout=DD/MM/YYYY&guests=N",
			"health":     "GET /health",
		},
	})
}

func (h *Handlers) HandleHealth(w http.ResponseWriter, r *http.Request) {
	payload := map[string]any{
		"status":    "healthy",
		"timestamp": time.Now().Format(time.RFC3339),
	}

	if h.store != nil {
		if health, err := h.store.LastHealth(); err == nil && health != nil {
			payload["site_probe"] = health
		}
	}

	RespondWithJSON(w, http.StatusOK, payload)
}

func (h *Handlers) HandleCheckPost(w http.ResponseWriter, r *http.Request) {
	var req CheckRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if err == io.EOF {
			WriteJSONError(w, http.StatusBadRequest, "Request body is empty")
			return
		}
		WriteJSONError(w, http.StatusBadRequest, fmt.Sprintf("Invalid request body: %v", err))
		return
	}

	h.runCheck(w, r, req)
}

func (h *Handlers) HandleCheckGet(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()

	guests, err := strconv.Atoi(params.Get("guests"))
	if err != nil {
		WriteJSONError(w, http.StatusBadRequest, "Parameter 'guests' must be an integer")
		return
	}

	req := CheckRequestDTO{
		Checkin:   params.Get("checkin"),
		Checkout:  params.Get("checkout"),
		Guests:    guests,
		ContactID: params.Get("contact_id"),
	}

	h.runCheck(w, r, req)
}

func (h *Handlers) runCheck(w http.ResponseWriter, r *http.Request, req CheckRequestDTO) {
	q, err := parseStay(req)
	if err != nil {
		WriteJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.checker.Run(r.Context(), q)
	if err != nil {
		if models.IsInputError(err) {
			WriteJSONError(w, http.StatusBadRequest, err.Error())
			return
		}
		log.Printf("Check failed: %v", err)
		WriteJSONError(w, http.StatusInternalServerError, "Failed to process availability check")
		return
	}

	// Spreadsheet write-back is a downstream consumer: its failure
	// never affects the response.
	if h.sheets != nil && h.sheets.Enabled() && req.ContactID != "" {
		if err := h.sheets.RecordResult(r.Context(), req.ContactID, req.Checkin, req.Checkout, result); err != nil {
			log.Printf("Sheet update failed for contact %s: %v", req.ContactID, err)
		}
	}

	RespondWithJSON(w, http.StatusOK, newCheckResponse(req, result))
}

// parseStay validates the wire request into a StayQuery. Everything
// here fails before any browser session is opened.
func parseStay(req CheckRequestDTO) (models.StayQuery, error) {
	checkin, err := time.Parse(inputDateLayout, req.Checkin)
	if err != nil {
		return models.StayQuery{}, fmt.Errorf("invalid checkin date %q, use DD/MM/YYYY", req.Checkin)
	}

	checkout, err := time.Parse(inputDateLayout, req.Checkout)
	if err != nil {
		return models.StayQuery{}, fmt.Errorf("invalid checkout date %q, use DD/MM/YYYY", req.Checkout)
	}

	return models.NewStayQuery(checkin, checkout, req.Guests)
}
