package entities

import "time"

// Weather event types the drift processor reacts to. Other types are
// recorded but currently ignored by the rule table.
const (
	WeatherDrought  = "drought"
	WeatherHeatWave = "heat_wave"
	WeatherStorm    = "storm"
	WeatherFlood    = "flood"
	WeatherFrost    = "frost"
)

type WeatherEvent struct {
	EventID     uint      `gorm:"primaryKey" json:"event_id"`
	FarmID      uint      `json:"farm_id" gorm:"index"`
	EventType   string    `json:"event_type"` // drought|heat_wave|storm|flood|frost
	Extreme     bool      `json:"extreme" gorm:"index"`
	SeverityIdx *float64  `json:"severity_idx,omitempty"`
	Note        string    `json:"note"`
	RecordedAt  time.Time `json:"recorded_at" gorm:"index"`
	CreatedAt   time.Time
}
