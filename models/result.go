package models

const isoDateLayout = "2006-01-02"

// ListingResult is one listing's slot in the aggregate answer.
type ListingResult struct {
	Available bool   `json:"available"`
	Price     string `json:"price"`
	URL       string `json:"url"`
}

// QueryResult is the aggregate returned to the caller: one entry per
// configured listing plus the stay echoed back.
type QueryResult struct {
	Results  map[ResultKey]ListingResult `json:"results"`
	Nights   int                         `json:"nights"`
	Checkin  string                      `json:"checkin"`
	Checkout string                      `json:"checkout"`
	Guests   int                         `json:"guests"`
}

// NewQueryResult builds the default shape: every listing unavailable
// with empty price and URL. A listing whose check fails outright keeps
// these defaults, so the batch always returns a well-formed result.
func NewQueryResult(listings []Listing, q StayQuery) *QueryResult {
	results := make(map[ResultKey]ListingResult, len(listings))
	for _, l := range listings {
		results[l.ResultKey] = ListingResult{}
	}
	return &QueryResult{
		Results:  results,
		Nights:   q.Nights(),
		Checkin:  q.Checkin.Format(isoDateLayout),
		Checkout: q.Checkout.Format(isoDateLayout),
		Guests:   q.Guests,
	}
}
