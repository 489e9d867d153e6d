package repository

import "agrosim/entities"

type PhenotypeRepository interface {
	Create(p *entities.CropPhenotype) error
	FindByID(id uint) (*entities.CropPhenotype, error)
	ListGrowing() ([]entities.CropPhenotype, error)
	ListByFarm(farmID uint) ([]entities.CropPhenotype, error)
	Update(p *entities.CropPhenotype) error
}
