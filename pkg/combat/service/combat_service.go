package service

import "agrosim/entities"

// EngageResult holds the resolved engagement plus the entities it touched.
type EngageResult struct {
	Log          entities.CombatLog      `json:"log"`
	Strain       *entities.PathogenStrain `json:"strain"`
	Pheno        *entities.CropPhenotype  `json:"phenotype"`
	Mutant       *entities.PathogenStrain `json:"mutant,omitempty"`
	Extinguished bool                     `json:"extinguished"`
}

// SweepReport aggregates one global battle sweep.
type SweepReport struct {
	EngagementsFired int    `json:"engagements_fired"`
	Infections       int    `json:"infections"`
	Mutations        int    `json:"mutations"`
	Extinctions      int    `json:"extinctions"`
	CropFailures     int    `json:"crop_failures"`
	Note             string `json:"note,omitempty"`
}

type CombatService interface {
	Engage(strainID, phenoID uint) (*EngageResult, error)
	Sweep(n int) (*SweepReport, error)
	HistoryByPheno(phenoID uint) ([]entities.CombatLog, error)
	HistoryByStrain(strainID uint) ([]entities.CombatLog, error)
}
