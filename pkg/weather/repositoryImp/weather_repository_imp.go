package repositoryImp

import (
	"time"

	"agrosim/entities"
	"agrosim/pkg/weather/repository"
	"gorm.io/gorm"
)

type weatherRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.WeatherRepository { return &weatherRepo{db} }

func (r *weatherRepo) Create(ev *entities.WeatherEvent) error { return r.db.Create(ev).Error }

func (r *weatherRepo) Recent(farmID uint, days int) ([]entities.WeatherEvent, error) {
	var out []entities.WeatherEvent
	cut := time.Now().AddDate(0, 0, -days)
	if err := r.db.Where("farm_id = ? AND recorded_at >= ?", farmID, cut).Order("recorded_at ASC").Find(&out).Error; err != nil { return nil, err }
	return out, nil
}

func (r *weatherRepo) ExtremeSince(farmID uint, cutoff time.Time) ([]entities.WeatherEvent, error) {
	var out []entities.WeatherEvent
	if err := r.db.Where("farm_id = ? AND extreme = ? AND recorded_at >= ?", farmID, true, cutoff).Order("recorded_at ASC").Find(&out).Error; err != nil { return nil, err }
	return out, nil
}
