package serviceImp

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"strings"
	"sync"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"agrosim/entities"
	combatrepo "agrosim/pkg/combat/repository"
	"agrosim/pkg/combat/service"
	phenorepo "agrosim/pkg/phenotype/repository"
	strainrepo "agrosim/pkg/strain/repository"
	"agrosim/pkg/tuning"
)

var (
	ErrStrainNotFound    = errors.New("strain not found")
	ErrPhenotypeNotFound = errors.New("phenotype not found")
)

type combatSvc struct {
	strains strainrepo.StrainRepository
	phenos  phenorepo.PhenotypeRepository
	logs    combatrepo.CombatLogRepository
	par     tuning.Params
	// mu serializes every engagement's read-modify-write so a sweep and an
	// ad-hoc engagement cannot lose a health or extinct update to the same
	// row. Also guards rng.
	mu  sync.Mutex
	rng *rand.Rand
}

func New(strains strainrepo.StrainRepository, phenos phenorepo.PhenotypeRepository, logs combatrepo.CombatLogRepository, par tuning.Params, rng *rand.Rand) service.CombatService {
	return &combatSvc{strains: strains, phenos: phenos, logs: logs, par: par, rng: rng}
}

func (s *combatSvc) Engage(strainID, phenoID uint) (*service.EngageResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engageLocked(strainID, phenoID)
}

// engageLocked resolves one attack/defense interaction. Exactly one combat
// log row is written whatever the outcome. Caller holds s.mu.
func (s *combatSvc) engageLocked(strainID, phenoID uint) (*service.EngageResult, error) {
	st, err := s.strains.FindByID(strainID)
	if errors.Is(err, gorm.ErrRecordNotFound) { return nil, ErrStrainNotFound }
	if err != nil { return nil, err }
	p, err := s.phenos.FindByID(phenoID)
	if errors.Is(err, gorm.ErrRecordNotFound) { return nil, ErrPhenotypeNotFound }
	if err != nil { return nil, err }

	cp := s.par.Combat
	def := DefensePower(st, p, cp)
	env := cp.EnvModMin + s.rng.Float64()*(cp.EnvModMax-cp.EnvModMin)
	// weather variance favors or hinders the pathogen, never the host
	atk := AttackPower(st, p, cp) * env

	res := &service.EngageResult{Strain: st, Pheno: p}
	log := entities.CombatLog{
		StrainID:     st.StrainID,
		PhenoID:      p.PhenoID,
		AttackPower:  atk,
		DefensePower: def,
		EnvModifier:  env,
		Infected:     atk > def,
	}

	if log.Infected {
		log.DamagePct = math.Min(1, cp.BaseDamageUnit*atk/math.Max(0.1, def))
		p.HealthScore = math.Max(0, p.HealthScore-log.DamagePct)
		if p.HealthScore < cp.FailureHealth && p.Status == entities.PhenoGrowing {
			p.Status = entities.PhenoFailed
		}
		if err := s.phenos.Update(p); err != nil { return nil, err }
		if s.rng.Float64() < cp.MutationChance {
			log.Mutated = true
			child := SpawnMutant(s.rng, st, s.par.Mutation)
			if err := s.strains.Create(child); err != nil { return nil, err }
			res.Mutant = child
		}
	} else if s.rng.Float64() < cp.ExtinctionChance {
		// failed lineages gradually extinguish; the row stays as history
		st.Extinct = true
		if err := s.strains.Update(st); err != nil { return nil, err }
		res.Extinguished = true
	}

	if err := s.logs.Insert(&log); err != nil { return nil, err }
	res.Log = log
	return res, nil
}

// Sweep samples strain/phenotype pairs uniformly with replacement from the
// populations fetched at entry and fires n engagements. Empty populations
// are a normal no-op, not an error.
func (s *combatSvc) Sweep(n int) (*service.SweepReport, error) {
	rep := &service.SweepReport{}
	if n <= 0 {
		rep.Note = "no engagements requested"
		return rep, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	strains, err := s.strains.ListActive()
	if err != nil { return nil, err }
	phenos, err := s.phenos.ListGrowing()
	if err != nil { return nil, err }
	if len(strains) == 0 || len(phenos) == 0 {
		rep.Note = "no active combatants"
		return rep, nil
	}

	for i := 0; i < n; i++ {
		st := strains[s.rng.Intn(len(strains))]
		p := phenos[s.rng.Intn(len(phenos))]
		res, err := s.engageLocked(st.StrainID, p.PhenoID)
		if err != nil { return rep, err }
		rep.EngagementsFired++
		if res.Log.Infected {
			rep.Infections++
		}
		if res.Log.Mutated {
			rep.Mutations++
		}
		if res.Extinguished {
			rep.Extinctions++
		}
		if res.Pheno.Status == entities.PhenoFailed {
			rep.CropFailures++
		}
	}
	return rep, nil
}

func (s *combatSvc) HistoryByPheno(phenoID uint) ([]entities.CombatLog, error) {
	return s.logs.ListByPheno(phenoID)
}

func (s *combatSvc) HistoryByStrain(strainID uint) ([]entities.CombatLog, error) {
	return s.logs.ListByStrain(strainID)
}

// AttackPower is the pre-modifier attack scalar. Strains carrying an
// anti-drought exploit punish highly drought-tolerant hosts.
func AttackPower(st *entities.PathogenStrain, p *entities.CropPhenotype, c tuning.CombatParams) float64 {
	atk := st.Infectivity * c.AttackScale
	if p.ExprDroughtTolerance > c.ExploitGate && st.DroughtExploit > 0 {
		atk += p.ExprDroughtTolerance * st.DroughtExploit * c.ExploitScale
	}
	return atk
}

// DefensePower scales genetic pest defense by current health. Sick plants
// defend poorly regardless of genetics.
func DefensePower(st *entities.PathogenStrain, p *entities.CropPhenotype, c tuning.CombatParams) float64 {
	return math.Max(0, p.ExprPestDefense-st.DefenseBypass) * p.HealthScore * c.DefenseScale
}

// SpawnMutant builds a child strain one generation on from the parent. The
// parent keeps fighting alongside the child: branching lineage, not
// replacement.
func SpawnMutant(rng *rand.Rand, parent *entities.PathogenStrain, m tuning.MutationParams) *entities.PathogenStrain {
	tag := strings.SplitN(uuid.NewString(), "-", 2)[0]
	exploit := m.ExploitSeed // first step toward drought specialization
	if parent.DroughtExploit > 0 {
		exploit = math.Min(1, parent.DroughtExploit+m.ExploitStep)
	}
	parentID := parent.StrainID
	return &entities.PathogenStrain{
		Designation:     fmt.Sprintf("%s-g%d-%s", parent.Designation, parent.Generation+1, tag),
		Infectivity:     clamp01(parent.Infectivity + m.InfectivityNoiseLo + rng.Float64()*(m.InfectivityNoiseHi-m.InfectivityNoiseLo)),
		SporeRadiusM:    parent.SporeRadiusM * (m.RadiusFactorLo + rng.Float64()*(m.RadiusFactorHi-m.RadiusFactorLo)),
		PesticideResist: parent.PesticideResist,
		DroughtExploit:  exploit,
		DefenseBypass:   math.Min(1, parent.DefenseBypass+m.BypassStep),
		Generation:      parent.Generation + 1,
		ParentID:        &parentID,
	}
}

func clamp01(v float64) float64 {
	if v < 0 { return 0 }
	if v > 1 { return 1 }
	return v
}
