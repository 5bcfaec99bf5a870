package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"carneiros_checker/models"
)

// fakeRunner returns a canned result and records the queries it saw.
type fakeRunner struct {
	result  *models.QueryResult
	err     error
	queries []models.StayQuery
}

func (f *fakeRunner) Run(ctx context.Context, q models.StayQuery) (*models.QueryResult, error) {
	f.queries = append(f.queries, q)
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

func cannedResult() *models.QueryResult {
	return &models.QueryResult{
		Results: map[models.ResultKey]models.ListingResult{
			models.ResultKeyColina: {Available: true, Price: "R$ 1.234,56", URL: "https://www.airbnb.com.br/book/stays/614621079133481740"},
			models.ResultKeyPraia:  {},
		},
		Nights:   5,
		Checkin:  "2024-12-25",
		Checkout: "2024-12-30",
		Guests:   4,
	}
}

func TestHandleCheckPost(t *testing.T) {
	runner := &fakeRunner{result: cannedResult()}
	h := NewHandlers(runner, nil, nil)

	body := `{"checkin":"25/12/2024","checkout":"30/12/2024","guests":4}`
	req := httptest.NewRequest(http.MethodPost, "/check", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.HandleCheckPost(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp CheckResponseDTO
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}

	// Dates are echoed in the caller's format, not ISO.
	if resp.Checkin != "25/12/2024" || resp.Checkout != "30/12/2024" {
		t.Errorf("Dates echoed wrong: %s / %s", resp.Checkin, resp.Checkout)
	}
	if resp.Nights != 5 {
		t.Errorf("Expected 5 nights, got %d", resp.Nights)
	}
	if !resp.Results[models.ResultKeyColina].Available {
		t.Errorf("Expected colina available in response")
	}

	if len(runner.queries) != 1 {
		t.Fatalf("Expected one pipeline run, got %d", len(runner.queries))
	}
	q := runner.queries[0]
	if q.Guests != 4 || q.Nights() != 5 {
		t.Errorf("Query parsed wrong: %+v", q)
	}
}

func TestHandleCheckGet(t *testing.T) {
	runner := &fakeRunner{result: cannedResult()}
	h := NewHandlers(runner, nil, nil)

	req := httptest.NewRequest(http.MethodGet,
		"/check?checkin=25%2F12%2F2024&checkout=30%2F12%2F2024&guests=4", nil)
	rec := httptest.NewRecorder()

	h.HandleCheckGet(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if len(runner.queries) != 1 {
		t.Fatalf("Expected one pipeline run, got %d", len(runner.queries))
	}
}

func TestHandleCheckGetBadGuests(t *testing.T) {
	runner := &fakeRunner{result: cannedResult()}
	h := NewHandlers(runner, nil, nil)

	req := httptest.NewRequest(http.MethodGet,
		"/check?checkin=25%2F12%2F2024&checkout=30%2F12%2F2024&guests=four", nil)
	rec := httptest.NewRecorder()

	h.HandleCheckGet(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400, got %d", rec.Code)
	}
	if len(runner.queries) != 0 {
		t.Errorf("Pipeline must not run on a malformed request")
	}
}

func TestHandleCheckPostBadDate(t *testing.T) {
	runner := &fakeRunner{result: cannedResult()}
	h := NewHandlers(runner, nil, nil)

	// ISO instead of DD/MM/YYYY.
	body := `{"checkin":"2024-12-25","checkout":"2024-12-30","guests":4}`
	req := httptest.NewRequest(http.MethodPost, "/check", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.HandleCheckPost(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400, got %d", rec.Code)
	}

	var resp map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode error body: %v", err)
	}
	if !strings.Contains(resp["error"], "DD/MM/YYYY") {
		t.Errorf("Error should name the expected format, got %q", resp["error"])
	}
}

func TestHandleCheckPostEmptyBody(t *testing.T) {
	h := NewHandlers(&fakeRunner{result: cannedResult()}, nil, nil)

	req := httptest.NewRequest(http.MethodPost, "/check", strings.NewReader(""))
	rec := httptest.NewRecorder()

	h.HandleCheckPost(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400, got %d", rec.Code)
	}
}

func TestHandleCheckInputErrorMapsTo400(t *testing.T) {
	runner := &fakeRunner{err: models.ErrGuestsOutOfRange}
	h := NewHandlers(runner, nil, nil)

	// Guests pass the DTO but the pipeline rejects them; still a caller
	// mistake, not a 500. Exercised with guests already out of range so
	// parseStay surfaces the sentinel.
	body := `{"checkin":"25/12/2024","checkout":"30/12/2024","guests":50}`
	req := httptest.NewRequest(http.MethodPost, "/check", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.HandleCheckPost(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400, got %d", rec.Code)
	}
}

func TestHandleCheckInternalErrorMapsTo500(t *testing.T) {
	runner := &fakeRunner{err: errors.New("browser exploded")}
	h := NewHandlers(runner, nil, nil)

	body := `{"checkin":"25/12/2024","checkout":"30/12/2024","guests":4}`
	req := httptest.NewRequest(http.MethodPost, "/check", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.HandleCheckPost(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("Expected 500, got %d", rec.Code)
	}

	var resp map[string]string
	json.NewDecoder(rec.Body).Decode(&resp)
	if strings.Contains(resp["error"], "exploded") {
		t.Errorf("Internal error detail must not leak to the caller: %q", resp["error"])
	}
}

func TestHandleStatus(t *testing.T) {
	h := NewHandlers(&fakeRunner{}, nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()

	h.HandleStatus(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode status body: %v", err)
	}
	if resp["status"] != "online" {
		t.Errorf("Expected status online, got %v", resp["status"])
	}
}

func TestHandleHealth(t *testing.T) {
	h := NewHandlers(&fakeRunner{}, nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()

	h.HandleHealth(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode health body: %v", err)
	}
	if resp["status"] != "healthy" {
		t.Errorf("Expected status healthy, got %v", resp["status"])
	}
}
