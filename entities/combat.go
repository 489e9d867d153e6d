package entities

import "time"

// CombatLog records one strain-vs-phenotype engagement. AttackPower is the
// post-environmental-modifier value. Append-only.
type CombatLog struct {
	ID           uint    `gorm:"primaryKey" json:"id"`
	StrainID     uint    `json:"strain_id" gorm:"index"`
	PhenoID      uint    `json:"pheno_id" gorm:"index"`
	AttackPower  float64 `json:"attack_power"`
	DefensePower float64 `json:"defense_power"`
	EnvModifier  float64 `json:"env_modifier"`
	Infected     bool    `json:"infected"`
	DamagePct    float64 `json:"damage_pct"`
	Mutated      bool    `json:"mutated"`
	CreatedAt    time.Time
}
