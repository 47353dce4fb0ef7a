// Package store persists feature records as on-disk artifact bundles: one
// directory per feature holding a structured data file and a generated
// Markdown summary.
package store

import (
	"time"

	"github.com/devforge/pmagent/models"
)

// FeatureSummary is a lightweight view of one artifact for listings.
type FeatureSummary struct {
	ID        string               `json:"id"`
	Title     string               `json:"title"`
	Status    models.FeatureStatus `json:"status"`
	CreatedAt time.Time            `json:"created_at"`
}

// FeatureStore defines the persistence contract for feature artifacts.
type FeatureStore interface {
	// AllocateID reserves and returns a new unique feature identifier of
	// the form feat_<YYYYMMDD>_<NNNN>. The sequence counts all prior
	// artifacts regardless of date, so it is monotonically increasing
	// across the lifetime of the artifact root.
	AllocateID(now time.Time) (string, error)

	// Save validates the record and writes both artifact files into the
	// reserved feature directory.
	Save(record *models.FeatureRecord) error

	// Load reads a previously saved record back from disk.
	Load(id string) (*models.FeatureRecord, error)

	// List returns summaries of all artifacts, newest first.
	List() ([]FeatureSummary, error)

	// Dir returns the artifact directory for an identifier.
	Dir(id string) string
}
