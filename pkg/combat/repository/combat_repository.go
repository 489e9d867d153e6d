package repository

import "agrosim/entities"

type CombatLogRepository interface {
	Insert(l *entities.CombatLog) error
	ListByPheno(phenoID uint) ([]entities.CombatLog, error)
	ListByStrain(strainID uint) ([]entities.CombatLog, error)
}
