package service

import "agrosim/entities"

type GenomeService interface {
	Register(g *entities.SeedGenome) (*entities.SeedGenome, error)
	GetByID(id uint) (*entities.SeedGenome, error)
	List() ([]entities.SeedGenome, error)
	Cross(fatherID, motherID uint, strainName string) (*entities.SeedGenome, error)
}
