package repository

import "agrosim/entities"

type GenomeRepository interface {
	Create(g *entities.SeedGenome) error
	FindByID(id uint) (*entities.SeedGenome, error)
	List() ([]entities.SeedGenome, error)
}
