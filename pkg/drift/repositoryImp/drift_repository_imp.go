package repositoryImp

import (
	"agrosim/entities"
	"agrosim/pkg/drift/repository"
	"gorm.io/gorm"
)

type driftRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.DriftLogRepository { return &driftRepo{db} }

func (r *driftRepo) Insert(l *entities.DriftLog) error { return r.db.Create(l).Error }

func (r *driftRepo) ListByPheno(phenoID uint) ([]entities.DriftLog, error) {
	var out []entities.DriftLog
	return out, r.db.Where("pheno_id = ?", phenoID).Order("id ASC").Find(&out).Error
}
