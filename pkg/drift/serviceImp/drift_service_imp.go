package serviceImp

import (
	"math"
	"time"

	"agrosim/entities"
	driftrepo "agrosim/pkg/drift/repository"
	"agrosim/pkg/drift/service"
	phenorepo "agrosim/pkg/phenotype/repository"
	"agrosim/pkg/tuning"
	weatherrepo "agrosim/pkg/weather/repository"
)

type driftSvc struct {
	phenos   phenorepo.PhenotypeRepository
	weather  weatherrepo.WeatherRepository
	logs     driftrepo.DriftLogRepository
	par      tuning.Params
	lookback time.Duration
}

func New(phenos phenorepo.PhenotypeRepository, weather weatherrepo.WeatherRepository, logs driftrepo.DriftLogRepository, par tuning.Params, lookback time.Duration) service.DriftService {
	if lookback <= 0 {
		lookback = 24 * time.Hour
	}
	return &driftSvc{phenos: phenos, weather: weather, logs: logs, par: par, lookback: lookback}
}

// ProcessBatch walks every growing phenotype and applies one drift per
// qualifying extreme event on its farm within the lookback window. A
// phenotype hit by two events drifts twice and logs twice. Nothing to do is
// a normal zero result.
func (s *driftSvc) ProcessBatch() (int, error) {
	phenos, err := s.phenos.ListGrowing()
	if err != nil { return 0, err }
	if len(phenos) == 0 { return 0, nil }

	cutoff := time.Now().Add(-s.lookback)
	count := 0
	for i := range phenos {
		p := &phenos[i]
		events, err := s.weather.ExtremeSince(p.FarmID, cutoff)
		if err != nil { return count, err }
		for _, ev := range events {
			if p.Status != entities.PhenoGrowing {
				break // failed mid-batch, later events no longer apply
			}
			app, ok := ApplyDrift(p, ev.EventType, s.par)
			if !ok {
				continue
			}
			count++
			if err := s.phenos.Update(p); err != nil { return count, err }
			if app.Loggable(s.par.Drift.TrivialDelta) {
				l := &entities.DriftLog{
					PhenoID:     p.PhenoID,
					Event:       ev.EventType,
					Trait:       app.Trait,
					TraitDelta:  app.TraitDelta,
					StressDelta: app.StressDelta,
					HealthDelta: app.HealthDelta,
				}
				if err := s.logs.Insert(l); err != nil { return count, err }
			}
		}
	}
	return count, nil
}

func (s *driftSvc) History(phenoID uint) ([]entities.DriftLog, error) {
	return s.logs.ListByPheno(phenoID)
}

// DriftApplication records the deltas actually applied (post-clamp).
type DriftApplication struct {
	Trait       string
	TraitDelta  float64
	HealthDelta float64
	StressDelta float64
	Failed      bool
}

// Loggable reports whether the application moved anything beyond the
// trivial-delta floor.
func (a DriftApplication) Loggable(trivial float64) bool {
	return math.Abs(a.TraitDelta) > trivial || math.Abs(a.HealthDelta) > trivial
}

// ApplyDrift mutates the phenotype per the rule for the event type. Returns
// false when the event has no rule or the matching branch is a no-op.
// Stress rises by half the magnitude of the applied health delta and never
// decreases. Health below the failure floor flips status to failed.
func ApplyDrift(p *entities.CropPhenotype, event string, par tuning.Params) (DriftApplication, bool) {
	rule := par.Rule(event)
	if rule == nil {
		return DriftApplication{}, false
	}

	gate := gateValue(p, rule.GateTrait)
	traitDelta, healthDelta := rule.BelowTraitDelta, rule.BelowHealthDelta
	if gate > rule.Threshold || (rule.InclusiveAbove && gate == rule.Threshold) {
		traitDelta, healthDelta = rule.AboveTraitDelta, rule.AboveHealthDelta
	}
	if traitDelta == 0 && healthDelta == 0 {
		return DriftApplication{}, false
	}

	appliedTrait := setGateValue(p, rule.GateTrait, clamp01(gate+traitDelta))
	oldHealth := p.HealthScore
	p.HealthScore = clamp01(p.HealthScore + healthDelta)
	appliedHealth := p.HealthScore - oldHealth

	stressDelta := math.Abs(appliedHealth) / 2
	p.StressFactor = math.Min(1, p.StressFactor+stressDelta)

	app := DriftApplication{
		Trait:       rule.GateTrait,
		TraitDelta:  appliedTrait,
		HealthDelta: appliedHealth,
		StressDelta: stressDelta,
	}
	if p.HealthScore < par.Combat.FailureHealth && p.Status == entities.PhenoGrowing {
		p.Status = entities.PhenoFailed
		app.Failed = true
	}
	return app, true
}

func gateValue(p *entities.CropPhenotype, trait string) float64 {
	switch trait {
	case tuning.TraitHeat:
		return p.ExprHeatShock
	case tuning.TraitPest:
		return p.ExprPestDefense
	default:
		return p.ExprDroughtTolerance
	}
}

// setGateValue writes the new trait value and returns the applied delta.
func setGateValue(p *entities.CropPhenotype, trait string, v float64) float64 {
	switch trait {
	case tuning.TraitHeat:
		d := v - p.ExprHeatShock
		p.ExprHeatShock = v
		return d
	case tuning.TraitPest:
		d := v - p.ExprPestDefense
		p.ExprPestDefense = v
		return d
	default:
		d := v - p.ExprDroughtTolerance
		p.ExprDroughtTolerance = v
		return d
	}
}

func clamp01(v float64) float64 {
	if v < 0 { return 0 }
	if v > 1 { return 1 }
	return v
}
