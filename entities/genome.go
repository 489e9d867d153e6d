package entities

import "time"

// SeedGenome is an immutable genetic blueprint. Allele fields are expression
// probabilities in [0,1]; YieldVigor is a multiplier with a floor of 0.5.
// Rows are never updated after creation; crosses insert new rows.
type SeedGenome struct {
	GenomeID              uint    `gorm:"primaryKey" json:"genome_id"`
	StrainName            string  `json:"strain_name" gorm:"index"`
	Species               string  `json:"species"`
	DroughtToleranceAllele float64 `json:"drought_tolerance_allele"`
	HeatShockAllele       float64 `json:"heat_shock_allele"`
	PestResistAllele      float64 `json:"pest_resist_allele"`
	YieldVigor            float64 `json:"yield_vigor"`
	Generation            int     `json:"generation"`
	CrisprEdited          bool    `json:"crispr_edited"`
	ParentID              *uint   `json:"parent_id,omitempty" gorm:"index"`
	CreatedAt             time.Time
}
