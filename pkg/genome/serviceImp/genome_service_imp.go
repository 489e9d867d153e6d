package serviceImp

import (
	"errors"
	"math/rand"
	"strings"
	"sync"

	"gorm.io/gorm"

	"agrosim/entities"
	"agrosim/pkg/genome/repository"
	"agrosim/pkg/genome/service"
)

var ErrGenomeNotFound = errors.New("genome not found")

const (
	crossNoiseSpan = 0.1  // uniform noise half-width on the drought mid-parent
	dominanceCost  = 0.05 // flat cost on the dominant pest allele
	yieldFloor     = 0.5
)

type genomeSvc struct {
	r   repository.GenomeRepository
	mu  sync.Mutex
	rng *rand.Rand
}

func New(r repository.GenomeRepository, rng *rand.Rand) service.GenomeService {
	return &genomeSvc{r: r, rng: rng}
}

func (s *genomeSvc) Register(g *entities.SeedGenome) (*entities.SeedGenome, error) {
	if strings.TrimSpace(g.StrainName) == "" {
		return nil, errors.New("strain name is required")
	}
	g.DroughtToleranceAllele = clamp01(g.DroughtToleranceAllele)
	g.HeatShockAllele = clamp01(g.HeatShockAllele)
	g.PestResistAllele = clamp01(g.PestResistAllele)
	if g.YieldVigor < yieldFloor {
		g.YieldVigor = yieldFloor
	}
	if g.Generation < 1 {
		g.Generation = 1
	}
	if err := s.r.Create(g); err != nil { return nil, err }
	return g, nil
}

func (s *genomeSvc) GetByID(id uint) (*entities.SeedGenome, error) {
	g, err := s.r.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) { return nil, ErrGenomeNotFound }
	return g, err
}

func (s *genomeSvc) List() ([]entities.SeedGenome, error) { return s.r.List() }

// Cross combines two parent blueprints into a persisted offspring genome.
// Only the drought allele carries noise; the rest is deterministic.
func (s *genomeSvc) Cross(fatherID, motherID uint, strainName string) (*entities.SeedGenome, error) {
	father, err := s.GetByID(fatherID)
	if err != nil { return nil, err }
	mother, err := s.GetByID(motherID)
	if err != nil { return nil, err }

	s.mu.Lock()
	noise := s.rng.Float64()*2*crossNoiseSpan - crossNoiseSpan
	s.mu.Unlock()

	child := CrossBlueprints(father, mother, noise)
	child.StrainName = strainName
	if err := s.r.Create(child); err != nil { return nil, err }
	return child, nil
}

// CrossBlueprints derives the offspring field values from two parents and a
// pre-drawn drought noise term. Pure; exported for tests.
func CrossBlueprints(father, mother *entities.SeedGenome, droughtNoise float64) *entities.SeedGenome {
	drought := clamp01((father.DroughtToleranceAllele+mother.DroughtToleranceAllele)/2 + droughtNoise)
	heat := (father.HeatShockAllele + mother.HeatShockAllele) / 2
	// Dominant pest allele wins, minus a small dominance cost. Clamped so a
	// pair of weak parents cannot yield a negative resistance probability.
	pest := clamp01(maxF(father.PestResistAllele, mother.PestResistAllele) - dominanceCost)
	vigor := father.YieldVigor * mother.YieldVigor
	if vigor < yieldFloor {
		vigor = yieldFloor
	}
	gen := father.Generation
	if mother.Generation > gen {
		gen = mother.Generation
	}
	fatherID := father.GenomeID
	return &entities.SeedGenome{
		Species:                father.Species, // cross-species validation is the caller's problem
		DroughtToleranceAllele: drought,
		HeatShockAllele:        heat,
		PestResistAllele:       pest,
		YieldVigor:             vigor,
		Generation:             gen + 1,
		CrisprEdited:           father.CrisprEdited || mother.CrisprEdited,
		ParentID:               &fatherID,
	}
}

func clamp01(v float64) float64 {
	if v < 0 { return 0 }
	if v > 1 { return 1 }
	return v
}

func maxF(a, b float64) float64 {
	if a > b { return a }
	return b
}
