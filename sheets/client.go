package sheets

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"carneiros_checker/config"
	"carneiros_checker/models"
)

const apiBase = "https://sheets.googleapis.com/v4/spreadsheets"

// Column layout of the operator's tracking sheet. A:C identify the row
// (contact id, checkin, checkout as the chat platform sent them); F:J
// receive the check outcome.
const (
	lookupRange    = "A:C"
	resultColFirst = "F"
	resultColLast  = "J"
)

// Client writes check outcomes into the operator's tracking spreadsheet
// through the Google Sheets values API. Strictly a downstream consumer:
// the check pipeline never depends on it.
type Client struct {
	cfg    *config.SheetsConfig
	client *http.Client
	base   string
}

func NewClient(cfg *config.SheetsConfig, client *http.Client) *Client {
	return &Client{cfg: cfg, client: client, base: apiBase}
}

// Enabled reports whether the integration is configured.
func (c *Client) Enabled() bool {
	return c.cfg.SpreadsheetID != "" && c.cfg.AccessToken != ""
}

// RecordResult locates the row matching the contact and the original
// check-in/check-out strings and writes, per listing, the localized
// availability and formatted price, plus the computed nights.
func (c *Client) RecordResult(ctx context.Context, contactID, checkin, checkout string, result *models.QueryResult) error {
	row, err := c.findRow(ctx, contactID, checkin, checkout)
	if err != nil {
		return err
	}
	if row == 0 {
		return fmt.Errorf("no sheet row for contact %s (%s to %s)", contactID, checkin, checkout)
	}

	colina := result.Results[models.ResultKeyColina]
	praia := result.Results[models.ResultKeyPraia]

	values := []any{
		localizedBool(colina.Available),
		colina.Price,
		localizedBool(praia.Available),
		praia.Price,
		result.Nights,
	}

	updateRange := fmt.Sprintf("%s!%s%d:%s%d", c.cfg.SheetName, resultColFirst, row, resultColLast, row)
	return c.updateRange(ctx, updateRange, values)
}

// findRow scans the lookup columns for the first row whose three cells
// match. Returns the 1-based row number, 0 when absent.
func (c *Client) findRow(ctx context.Context, contactID, checkin, checkout string) (int, error) {
	rangeRef := url.PathEscape(fmt.Sprintf("%s!%s", c.cfg.SheetName, lookupRange))
	reqURL := fmt.Sprintf("%s/%s/values/%s", c.base, c.cfg.SpreadsheetID, rangeRef)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return 0, err
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.AccessToken)

	resp, err := c.client.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		body, _ := io.ReadAll(resp.Body)
		return 0, fmt.Errorf("sheets read error %d: %s", resp.StatusCode, string(body))
	}

	var payload struct {
		Values [][]any `json:"values"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return 0, err
	}

	for i, cells := range payload.Values {
		if len(cells) < 3 {
			continue
		}
		if cellString(cells[0]) == contactID &&
			cellString(cells[1]) == checkin &&
			cellString(cells[2]) == checkout {
			return i + 1, nil
		}
	}
	return 0, nil
}

func (c *Client) updateRange(ctx context.Context, rangeRef string, values []any) error {
	body, err := json.Marshal(map[string]any{
		"range":  rangeRef,
		"values": [][]any{values},
	})
	if err != nil {
		return err
	}

	reqURL := fmt.Sprintf("%s/%s/values/%s?valueInputOption=USER_ENTERED",
		c.base, c.cfg.SpreadsheetID, url.PathEscape(rangeRef))

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, reqURL, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.cfg.AccessToken)

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("sheets update error %d: %s", resp.StatusCode, string(respBody))
	}

	return nil
}

func cellString(v any) string {
	s, _ := v.(string)
	return strings.TrimSpace(s)
}

// localizedBool renders availability the way the sheet's readers expect.
func localizedBool(available bool) string {
	if available {
		return "Sim"
	}
	return "Não"
}
