package service

import "agrosim/entities"

type PhenotypeService interface {
	Spawn(genomeID, farmID uint, precisionIdx float64) (*entities.CropPhenotype, error)
	GetByID(id uint) (*entities.CropPhenotype, error)
	ListByFarm(farmID uint) ([]entities.CropPhenotype, error)
	Harvest(id uint) (*entities.CropPhenotype, error)
}
