package repository

import "agrosim/entities"

type DriftLogRepository interface {
	Insert(l *entities.DriftLog) error
	ListByPheno(phenoID uint) ([]entities.DriftLog, error)
}
