package entities

import "time"

// DriftLog records a single epigenetic drift application against a
// phenotype. Append-only.
type DriftLog struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	PhenoID     uint    `json:"pheno_id" gorm:"index"`
	Event       string  `json:"event"`
	Trait       string  `json:"trait"` // gate trait the rule nudged
	TraitDelta  float64 `json:"trait_delta"`
	StressDelta float64 `json:"stress_delta"`
	HealthDelta float64 `json:"health_delta"`
	CreatedAt   time.Time
}
