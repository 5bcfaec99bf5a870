package models

import "time"

type RunStatus string

const (
	RunStatusRunning   RunStatus = "running"
	RunStatusCompleted RunStatus = "completed"
	RunStatusPartial   RunStatus = "partial"
)

// CheckRun is the operational record of one batch over the listing
// table. Bookkeeping only; extracted prices are never persisted.
type CheckRun struct {
	ID                int64      `json:"id" db:"id"`
	BatchID           string     `json:"batch_id" db:"batch_id"`
	StartedAt         time.Time  `json:"started_at" db:"started_at"`
	FinishedAt        *time.Time `json:"finished_at" db:"finished_at"`
	Status            RunStatus  `json:"status" db:"status"`
	ListingsChecked   int        `json:"listings_checked" db:"listings_checked"`
	ListingsAvailable int        `json:"listings_available" db:"listings_available"`
	ErrorsCount       int        `json:"errors_count" db:"errors_count"`
}

// SiteHealth is the latest outcome of the periodic reachability probe
// against the booking site.
type SiteHealth struct {
	CheckedAt time.Time `json:"checked_at" db:"checked_at"`
	Healthy   bool      `json:"healthy" db:"healthy"`
	Detail    string    `json:"detail" db:"detail"`
}
