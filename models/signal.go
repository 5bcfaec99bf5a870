package models

// AvailabilitySignal is the verdict derived from one rendered booking
// page. It lives only long enough to be folded into a QueryResult;
// signals are never cached across runs because price and availability
// drift over time.
type AvailabilitySignal struct {
	Available bool
	Price     *float64 // total in the site's display currency, nil when unavailable
	SourceURL string
}
