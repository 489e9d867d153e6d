package entities

import "time"

// Phenotype status values.
const (
	PhenoGrowing   = "growing"
	PhenoHarvested = "harvested"
	PhenoFailed    = "failed"
)

// CropPhenotype is a deployed instantiation of a genome on a farm. Expressed
// trait scalars, stress and health are always kept in [0,1]. Once health
// drops below 0.1 the status flips to failed and never reverts.
type CropPhenotype struct {
	PhenoID              uint       `gorm:"primaryKey" json:"pheno_id"`
	FarmID               uint       `json:"farm_id" gorm:"index"`
	GenomeID             uint       `json:"genome_id" gorm:"index"`
	ExprDroughtTolerance float64    `json:"expr_drought_tolerance"`
	ExprHeatShock        float64    `json:"expr_heat_shock"`
	ExprPestDefense      float64    `json:"expr_pest_defense"`
	StressFactor         float64    `json:"stress_factor"`
	HealthScore          float64    `json:"health_score"`
	Status               string     `json:"status" gorm:"index"` // growing|harvested|failed
	PlantedAt            time.Time  `json:"planted_at"`
	HarvestedAt          *time.Time `json:"harvested_at,omitempty"`
	CreatedAt            time.Time
	UpdatedAt            time.Time
}
