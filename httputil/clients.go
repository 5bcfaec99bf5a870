package httputil

import (
	"net/http"
	"time"
)

// Clients groups the tuned HTTP clients shared across the daemon.
// Browser traffic never goes through these; they exist for the REST
// collaborators around the core.
type Clients struct {
	Sheets *http.Client // Google Sheets values API
	Probe  *http.Client // lightweight reachability checks against the booking site
}

func NewClients() *Clients {
	probe := &http.Client{
		Timeout: 15 * time.Second,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}

	return &Clients{
		Sheets: &http.Client{Timeout: 30 * time.Second},
		Probe:  probe,
	}
}
