package repository

import (
	"time"

	"agrosim/entities"
)

type WeatherRepository interface {
	Create(ev *entities.WeatherEvent) error
	Recent(farmID uint, days int) ([]entities.WeatherEvent, error)
	// ExtremeSince returns extreme-flagged events for one farm recorded at
	// or after the cutoff.
	ExtremeSince(farmID uint, cutoff time.Time) ([]entities.WeatherEvent, error)
}
