package checker

import (
	"os"
	"path/filepath"
	"testing"
)

func loadFixture(t *testing.T, name string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", name))
	if err != nil {
		t.Fatalf("Failed to read fixture %s: %v", name, err)
	}
	return string(data)
}

func TestExtractAvailablePage(t *testing.T) {
	document := loadFixture(t, "booking_available.html")
	sourceURL := "https://www.airbnb.com.br/book/stays/614621079133481740"

	signal := Extract(document, sourceURL)

	if !signal.Available {
		t.Fatalf("Expected available, got unavailable")
	}
	if signal.Price == nil {
		t.Fatalf("Expected a price, got nil")
	}
	// First price in document order is the nightly rate, not the total.
	if *signal.Price != 246.91 {
		t.Errorf("Expected price 246.91, got %v", *signal.Price)
	}
	if signal.SourceURL != sourceURL {
		t.Errorf("Expected source URL %s, got %s", sourceURL, signal.SourceURL)
	}
}

func TestExtractUnavailablePhraseWinsOverPrice(t *testing.T) {
	// The fixture shows an unavailability banner and a suggested price
	// for a similar listing. The phrase must win.
	document := loadFixture(t, "booking_unavailable.html")

	signal := Extract(document, "https://example.test/book")

	if signal.Available {
		t.Fatalf("Expected unavailable, got available")
	}
	if signal.Price != nil {
		t.Errorf("Expected nil price on unavailable page, got %v", *signal.Price)
	}
}

func TestExtractNoPriceMeansUnavailable(t *testing.T) {
	document := loadFixture(t, "booking_noprice.html")

	signal := Extract(document, "https://example.test/book")

	if signal.Available {
		t.Fatalf("Expected unavailable when no price is present")
	}
	if signal.Price != nil {
		t.Errorf("Expected nil price, got %v", *signal.Price)
	}
}

func TestExtractEnglishUnavailablePhrase(t *testing.T) {
	document := `<html><body><p>These dates are Not Available.</p>
		<span>R$ 500,00</span></body></html>`

	signal := Extract(document, "https://example.test/book")

	if signal.Available {
		t.Fatalf("Expected English unavailability phrase to be matched")
	}
}

func TestExtractMalformedDocument(t *testing.T) {
	// A page that is not valid HTML still gets scanned as raw text.
	document := "<<<<garbage R$ 1.250,00 more garbage"

	signal := Extract(document, "https://example.test/book")

	if !signal.Available {
		t.Fatalf("Expected available from raw text scan")
	}
	if *signal.Price != 1250.00 {
		t.Errorf("Expected price 1250.00, got %v", *signal.Price)
	}
}

func TestParsePrice(t *testing.T) {
	tests := []struct {
		display string
		want    float64
	}{
		{"R$ 1.234,56", 1234.56},
		{"R$1.234,56", 1234.56},
		{"R$ 987,50", 987.50},
		{"R$ 1.234.567,89", 1234567.89},
	}

	for _, tt := range tests {
		got, err := ParsePrice(tt.display)
		if err != nil {
			t.Fatalf("ParsePrice(%q) error: %v", tt.display, err)
		}
		if got != tt.want {
			t.Errorf("ParsePrice(%q) = %v, want %v", tt.display, got, tt.want)
		}
	}
}

func TestFormatPrice(t *testing.T) {
	tests := []struct {
		amount float64
		want   string
	}{
		{1234.56, "R$ 1.234,56"},
		{1500, "R$ 1.500,00"},
		{987.50, "R$ 987,50"},
		{123.45, "R$ 123,45"},
		{1234567.89, "R$ 1.234.567,89"},
	}

	for _, tt := range tests {
		got := FormatPrice(tt.amount)
		if got != tt.want {
			t.Errorf("FormatPrice(%v) = %q, want %q", tt.amount, got, tt.want)
		}
	}
}

func TestPriceRoundTrip(t *testing.T) {
	display := "R$ 1.384,56"

	amount, err := ParsePrice(display)
	if err != nil {
		t.Fatalf("ParsePrice error: %v", err)
	}
	if got := FormatPrice(amount); got != display {
		t.Errorf("Round trip gave %q, want %q", got, display)
	}
}
