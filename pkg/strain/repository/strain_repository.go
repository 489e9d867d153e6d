package repository

import "agrosim/entities"

type StrainRepository interface {
	Create(s *entities.PathogenStrain) error
	FindByID(id uint) (*entities.PathogenStrain, error)
	// ListActive returns non-extinct strains only; extinct lineages stay in
	// the table as history.
	ListActive() ([]entities.PathogenStrain, error)
	List() ([]entities.PathogenStrain, error)
	Update(s *entities.PathogenStrain) error
}
