package repositoryImp

import (
	"agrosim/entities"
	"agrosim/pkg/combat/repository"
	"gorm.io/gorm"
)

type combatRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.CombatLogRepository { return &combatRepo{db} }

func (r *combatRepo) Insert(l *entities.CombatLog) error { return r.db.Create(l).Error }

func (r *combatRepo) ListByPheno(phenoID uint) ([]entities.CombatLog, error) {
	var out []entities.CombatLog
	return out, r.db.Where("pheno_id = ?", phenoID).Order("id ASC").Find(&out).Error
}

func (r *combatRepo) ListByStrain(strainID uint) ([]entities.CombatLog, error) {
	var out []entities.CombatLog
	return out, r.db.Where("strain_id = ?", strainID).Order("id ASC").Find(&out).Error
}
