package serviceImp

import (
	"errors"
	"math/rand"
	"sync"
	"time"

	"gorm.io/gorm"

	"agrosim/entities"
	genomerepo "agrosim/pkg/genome/repository"
	"agrosim/pkg/phenotype/repository"
	"agrosim/pkg/phenotype/service"
	"agrosim/pkg/tuning"
)

var (
	ErrGenomeNotFound    = errors.New("genome not found")
	ErrPhenotypeNotFound = errors.New("phenotype not found")
	ErrNotGrowing        = errors.New("phenotype is not growing")
	ErrBadPrecision      = errors.New("precision index must be positive")
)

type phenoSvc struct {
	phenos  repository.PhenotypeRepository
	genomes genomerepo.GenomeRepository
	par     tuning.Params
	mu      sync.Mutex
	rng     *rand.Rand
}

func New(phenos repository.PhenotypeRepository, genomes genomerepo.GenomeRepository, par tuning.Params, rng *rand.Rand) service.PhenotypeService {
	return &phenoSvc{phenos: phenos, genomes: genomes, par: par, rng: rng}
}

// Spawn collapses a genome's allele probabilities into a concrete deployed
// phenotype. The precision-agriculture index shrinks the environmental noise
// around each allele; each trait is drawn independently.
func (s *phenoSvc) Spawn(genomeID, farmID uint, precisionIdx float64) (*entities.CropPhenotype, error) {
	if precisionIdx <= 0 {
		return nil, ErrBadPrecision
	}
	g, err := s.genomes.FindByID(genomeID)
	if errors.Is(err, gorm.ErrRecordNotFound) { return nil, ErrGenomeNotFound }
	if err != nil { return nil, err }

	s.mu.Lock()
	drought := CollapseAllele(s.rng, g.DroughtToleranceAllele, precisionIdx, s.par.Spawn)
	heat := CollapseAllele(s.rng, g.HeatShockAllele, precisionIdx, s.par.Spawn)
	pest := CollapseAllele(s.rng, g.PestResistAllele, precisionIdx, s.par.Spawn)
	s.mu.Unlock()

	p := &entities.CropPhenotype{
		FarmID:               farmID,
		GenomeID:             g.GenomeID,
		ExprDroughtTolerance: drought,
		ExprHeatShock:        heat,
		ExprPestDefense:      pest,
		StressFactor:         0,
		HealthScore:          1,
		Status:               entities.PhenoGrowing,
		PlantedAt:            time.Now(),
	}
	if err := s.phenos.Create(p); err != nil { return nil, err }
	return p, nil
}

func (s *phenoSvc) GetByID(id uint) (*entities.CropPhenotype, error) {
	p, err := s.phenos.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) { return nil, ErrPhenotypeNotFound }
	return p, err
}

func (s *phenoSvc) ListByFarm(farmID uint) ([]entities.CropPhenotype, error) {
	return s.phenos.ListByFarm(farmID)
}

// Harvest moves a growing phenotype to harvested. Failed and already
// harvested phenotypes stay where they are; both states are terminal.
func (s *phenoSvc) Harvest(id uint) (*entities.CropPhenotype, error) {
	p, err := s.GetByID(id)
	if err != nil { return nil, err }
	if p.Status != entities.PhenoGrowing {
		return nil, ErrNotGrowing
	}
	now := time.Now()
	p.Status = entities.PhenoHarvested
	p.HarvestedAt = &now
	if err := s.phenos.Update(p); err != nil { return nil, err }
	return p, nil
}

// CollapseAllele draws one expressed trait value from a normal distribution
// centered on the allele probability. The base is first clamped away from 0
// and 1 to avoid degenerate zero-variance corners; the sample is clamped to
// [0,1]. Higher precision indices mean tighter draws.
func CollapseAllele(rng *rand.Rand, base, precisionIdx float64, sp tuning.SpawnParams) float64 {
	if base < sp.BaseClampLo {
		base = sp.BaseClampLo
	} else if base > sp.BaseClampHi {
		base = sp.BaseClampHi
	}
	sd := sp.NoiseSD / precisionIdx
	return clamp01(rng.NormFloat64()*sd + base)
}

func clamp01(v float64) float64 {
	if v < 0 { return 0 }
	if v > 1 { return 1 }
	return v
}
