package checker

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"carneiros_checker/models"
)

// Phrases that mark the stay as unavailable, in the site's language and
// in English since the page may localize. Matched case-insensitively.
var unavailablePhrases = []string{
	"não está disponível",
	"não disponível",
	"not available",
	"já está reservada",
	"already booked",
}

// priceRe matches the regional display format: currency symbol,
// optional space, thousands grouped with '.', two decimals after ','.
var priceRe = regexp.MustCompile(`R\$\s?\d{1,3}(\.\d{3})*,\d{2}`)

// Extract derives the availability verdict for one rendered page. An
// unavailability phrase wins over a matched price: the page can show a
// suggested price for dates that are in fact booked. Only the first
// price-like substring in document order is considered; the page
// exposes no stable structured price field.
func Extract(document, sourceURL string) models.AvailabilitySignal {
	signal := models.AvailabilitySignal{SourceURL: sourceURL}

	text := documentText(document)
	lower := strings.ToLower(text)
	for _, phrase := range unavailablePhrases {
		if strings.Contains(lower, phrase) {
			return signal
		}
	}

	match := priceRe.FindString(text)
	if match == "" {
		return signal
	}

	price, err := ParsePrice(match)
	if err != nil {
		return signal
	}

	signal.Available = true
	signal.Price = &price
	return signal
}

// documentText flattens rendered HTML to its text content. A document
// that fails to parse is scanned raw; the heuristics only need
// substrings.
func documentText(document string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(document))
	if err != nil {
		return document
	}
	return doc.Text()
}

// ParsePrice converts a display string like "R$ 1.234,56" to its
// numeric amount.
func ParsePrice(display string) (float64, error) {
	cleaned := strings.NewReplacer("R$", "", ".", "", ",", ".").Replace(display)
	return strconv.ParseFloat(strings.TrimSpace(cleaned), 64)
}

// FormatPrice renders an amount back into the canonical display form,
// e.g. 1234.56 -> "R$ 1.234,56". Round-trips with ParsePrice for
// amounts already in that form.
func FormatPrice(amount float64) string {
	whole, frac, _ := strings.Cut(strconv.FormatFloat(amount, 'f', 2, 64), ".")

	var grouped []string
	for len(whole) > 3 {
		grouped = append([]string{whole[len(whole)-3:]}, grouped...)
		whole = whole[:len(whole)-3]
	}
	grouped = append([]string{whole}, grouped...)

	return "R$ " + strings.Join(grouped, ".") + "," + frac
}
