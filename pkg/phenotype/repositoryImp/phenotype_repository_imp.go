package repositoryImp

import (
	"agrosim/entities"
	"agrosim/pkg/phenotype/repository"
	"gorm.io/gorm"
)

type phenoRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.PhenotypeRepository { return &phenoRepo{db} }

func (r *phenoRepo) Create(p *entities.CropPhenotype) error { return r.db.Create(p).Error }

func (r *phenoRepo) FindByID(id uint) (*entities.CropPhenotype, error) {
	var p entities.CropPhenotype
	if err := r.db.First(&p, id).Error; err != nil { return nil, err }
	return &p, nil
}

func (r *phenoRepo) ListGrowing() ([]entities.CropPhenotype, error) {
	var out []entities.CropPhenotype
	if err := r.db.Where("status = ?", entities.PhenoGrowing).Order("pheno_id ASC").Find(&out).Error; err != nil { return nil, err }
	return out, nil
}

func (r *phenoRepo) ListByFarm(farmID uint) ([]entities.CropPhenotype, error) {
	var out []entities.CropPhenotype
	if err := r.db.Where("farm_id = ?", farmID).Order("pheno_id ASC").Find(&out).Error; err != nil { return nil, err }
	return out, nil
}

func (r *phenoRepo) Update(p *entities.CropPhenotype) error { return r.db.Save(p).Error }
