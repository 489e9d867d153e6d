package repositoryImp

import (
	"agrosim/entities"
	"agrosim/pkg/genome/repository"
	"gorm.io/gorm"
)

type genomeRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.GenomeRepository { return &genomeRepo{db} }

func (r *genomeRepo) Create(g *entities.SeedGenome) error { return r.db.Create(g).Error }

func (r *genomeRepo) FindByID(id uint) (*entities.SeedGenome, error) {
	var g entities.SeedGenome
	if err := r.db.First(&g, id).Error; err != nil { return nil, err }
	return &g, nil
}

func (r *genomeRepo) List() ([]entities.SeedGenome, error) {
	var gs []entities.SeedGenome
	return gs, r.db.Order("genome_id ASC").Find(&gs).Error
}
