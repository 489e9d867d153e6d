package entities

import "time"

// PathogenStrain is a disease lineage. Extinct strains are excluded from
// battle sampling but are kept as historical record, never deleted.
type PathogenStrain struct {
	StrainID        uint    `gorm:"primaryKey" json:"strain_id"`
	Designation     string  `json:"designation" gorm:"uniqueIndex"`
	Infectivity     float64 `json:"infectivity"`      // 0..1
	SporeRadiusM    float64 `json:"spore_radius_m"`   // >0, unbounded
	PesticideResist float64 `json:"pesticide_resist"` // 0..1
	DroughtExploit  float64 `json:"drought_exploit"`  // 0..1, 0 = no exploit
	DefenseBypass   float64 `json:"defense_bypass"`   // 0..1
	Generation      int     `json:"generation"`
	ParentID        *uint   `json:"parent_id,omitempty" gorm:"index"`
	Extinct         bool    `json:"extinct" gorm:"index"`
	CreatedAt       time.Time
}
