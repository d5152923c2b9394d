// Package report renders reconciliation results for download.
package report

import (
	"time"

	"github.com/google/uuid"
)

// Meta identifies one reconciliation run.
type Meta struct {
	RunID       string    `json:"run_id"`
	GeneratedAt time.Time `json:"generated_at"`
	SourceA     string    `json:"source_2b"`
	SourceB     string    `json:"source_3b"`
}

// NewMeta stamps a run over the two named inputs.
func NewMeta(sourceA, sourceB string) Meta {
	return Meta{
		RunID:       uuid.New().String(),
		GeneratedAt: time.Now().UTC(),
		SourceA:     sourceA,
		SourceB:     sourceB,
	}
}
