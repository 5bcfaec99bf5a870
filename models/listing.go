package models

// ResultKey routes one listing's extraction outcome into its named
// field of the aggregate result. Keys are unique across the table.
type ResultKey string

const (
	ResultKeyColina ResultKey = "flat_colina"
	ResultKeyPraia  ResultKey = "flat_praia"
)

// Listing is one fixed bookable unit tracked by the service. The table
// is loaded once at startup and never mutated at runtime.
type Listing struct {
	Name       string    `yaml:"name" json:"name"`
	ExternalID string    `yaml:"external_id" json:"external_id"`
	ResultKey  ResultKey `yaml:"result_key" json:"result_key"`
}
