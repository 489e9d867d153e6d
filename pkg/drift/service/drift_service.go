package service

import "agrosim/entities"

type DriftService interface {
	// ProcessBatch applies the drift rule table to every growing phenotype
	// against its farm's recent extreme weather. Returns the number of drift
	// applications performed.
	ProcessBatch() (int, error)
	History(phenoID uint) ([]entities.DriftLog, error)
}
