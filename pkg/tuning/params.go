package tuning

// Params carries every numeric knob of the simulation engines. Services take
// it explicitly instead of reading package globals, so tests can tighten or
// zero individual knobs.
type Params struct {
	Spawn    SpawnParams
	Drift    DriftParams
	Combat   CombatParams
	Mutation MutationParams
}

type SpawnParams struct {
	NoiseSD      float64 // base stddev before dividing by precision index
	BaseClampLo  float64 // allele clamp floor before sampling
	BaseClampHi  float64 // allele clamp ceiling before sampling
}

type DriftParams struct {
	Rules        []DriftRule
	TrivialDelta float64 // applications below this magnitude are not logged
}

// DriftRule gates on one expressed trait of the phenotype. When the trait is
// strictly above Threshold the Above deltas apply, otherwise the Below
// deltas. InclusiveAbove shifts the boundary so a trait exactly at the
// threshold takes the Above branch instead. TraitDelta always targets the
// gate trait.
type DriftRule struct {
	Event            string
	GateTrait        string // drought_tolerance|heat_shock|pest_defense
	Threshold        float64
	InclusiveAbove   bool
	AboveTraitDelta  float64
	AboveHealthDelta float64
	BelowTraitDelta  float64
	BelowHealthDelta float64
}

type CombatParams struct {
	AttackScale      float64 // infectivity multiplier
	ExploitGate      float64 // drought tolerance above which the exploit bonus fires
	ExploitScale     float64
	DefenseScale     float64
	EnvModMin        float64
	EnvModMax        float64
	BaseDamageUnit   float64
	MutationChance   float64
	ExtinctionChance float64
	FailureHealth    float64 // below this a phenotype fails
}

type MutationParams struct {
	InfectivityNoiseLo float64
	InfectivityNoiseHi float64
	RadiusFactorLo     float64
	RadiusFactorHi     float64
	BypassStep         float64
	ExploitStep        float64
	ExploitSeed        float64
}

// Gate trait names used by drift rules.
const (
	TraitDrought = "drought_tolerance"
	TraitHeat    = "heat_shock"
	TraitPest    = "pest_defense"
)

// Defaults returns the production parameter set.
func Defaults() Params {
	return Params{
		Spawn: SpawnParams{NoiseSD: 0.15, BaseClampLo: 0.01, BaseClampHi: 0.99},
		Drift: DriftParams{
			TrivialDelta: 0.01,
			Rules: []DriftRule{
				{
					Event:            "drought",
					GateTrait:        TraitDrought,
					Threshold:        0.5,
					AboveTraitDelta:  0.02,  // adaptive hardening
					AboveHealthDelta: -0.05, // adaptive cost
					BelowTraitDelta:  -0.10, // collapse
					BelowHealthDelta: -0.25,
				},
				{
					Event:     "heat_wave",
					GateTrait: TraitHeat,
					Threshold: 0.4,
					// the cost fires only strictly below the threshold
					InclusiveAbove:   true,
					BelowHealthDelta: -0.20,
				},
			},
		},
		Combat: CombatParams{
			AttackScale:      10,
			ExploitGate:      0.6,
			ExploitScale:     5,
			DefenseScale:     12,
			EnvModMin:        0.8,
			EnvModMax:        1.2,
			BaseDamageUnit:   0.1,
			MutationChance:   0.15,
			ExtinctionChance: 0.05,
			FailureHealth:    0.1,
		},
		Mutation: MutationParams{
			InfectivityNoiseLo: -0.02,
			InfectivityNoiseHi: 0.08,
			RadiusFactorLo:     0.9,
			RadiusFactorHi:     1.15,
			BypassStep:         0.05,
			ExploitStep:        0.10,
			ExploitSeed:        0.02,
		},
	}
}

// Rule returns the drift rule for an event type, or nil when the event has
// no rule (extension point: unknown events drift nothing).
func (p Params) Rule(event string) *DriftRule {
	for i := range p.Drift.Rules {
		if p.Drift.Rules[i].Event == event {
			return &p.Drift.Rules[i]
		}
	}
	return nil
}
