package repositoryImp

import (
	"agrosim/entities"
	"agrosim/pkg/strain/repository"
	"gorm.io/gorm"
)

type strainRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.StrainRepository { return &strainRepo{db} }

func (r *strainRepo) Create(s *entities.PathogenStrain) error { return r.db.Create(s).Error }

func (r *strainRepo) FindByID(id uint) (*entities.PathogenStrain, error) {
	var s entities.PathogenStrain
	if err := r.db.First(&s, id).Error; err != nil { return nil, err }
	return &s, nil
}

func (r *strainRepo) ListActive() ([]entities.PathogenStrain, error) {
	var out []entities.PathogenStrain
	if err := r.db.Where("extinct = ?", false).Order("strain_id ASC").Find(&out).Error; err != nil { return nil, err }
	return out, nil
}

func (r *strainRepo) List() ([]entities.PathogenStrain, error) {
	var out []entities.PathogenStrain
	return out, r.db.Order("strain_id ASC").Find(&out).Error
}

func (r *strainRepo) Update(s *entities.PathogenStrain) error { return r.db.Save(s).Error }
