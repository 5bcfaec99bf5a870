package server

import (
	"encoding/json"
	"net/http"

	"carneiros_checker/models"
)

// CheckRequestDTO is the wire shape the chat platform sends. Dates are
// DD/MM/YYYY; contact_id is optional and only drives the spreadsheet
// write-back.
type CheckRequestDTO struct {
	Checkin   string `json:"checkin"`
	Checkout  string `json:"checkout"`
	Guests    int    `json:"guests"`
	ContactID string `json:"contact_id,omitempty"`
}

// CheckResponseDTO echoes the stay as it was sent and carries one entry
// per configured listing.
type CheckResponseDTO struct {
	Results  map[models.ResultKey]models.ListingResult `json:"results"`
	Nights   int                                       `json:"nights"`
	Checkin  string                                    `json:"checkin"`
	Checkout string                                    `json:"checkout"`
	Guests   int                                       `json:"guests"`
}

func newCheckResponse(req CheckRequestDTO, result *models.QueryResult) CheckResponseDTO {
	return CheckResponseDTO{
		Results:  result.Results,
		Nights:   result.Nights,
		Checkin:  req.Checkin,
		Checkout: req.Checkout,
		Guests:   req.Guests,
	}
}

func WriteJSONError(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}

func RespondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		http.Error(w, "Failed to marshal JSON response", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}
