package serviceImp

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"agrosim/database"
	"agrosim/entities"
	driftRepoImp "agrosim/pkg/drift/repositoryImp"
	"agrosim/pkg/drift/service"
	phenoRepoImp "agrosim/pkg/phenotype/repositoryImp"
	"agrosim/pkg/tuning"
	weatherRepoImp "agrosim/pkg/weather/repositoryImp"
)

func newEnv(t *testing.T) (*gorm.DB, service.DriftService) {
	t.Helper()
	db := database.OpenMemory()
	svc := New(phenoRepoImp.New(db), weatherRepoImp.New(db), driftRepoImp.New(db), tuning.Defaults(), 24*time.Hour)
	return db, svc
}

func plant(t *testing.T, db *gorm.DB, p entities.CropPhenotype) *entities.CropPhenotype {
	t.Helper()
	if p.Status == "" {
		p.Status = entities.PhenoGrowing
	}
	if p.PlantedAt.IsZero() {
		p.PlantedAt = time.Now()
	}
	require.NoError(t, db.Create(&p).Error)
	return &p
}

func record(t *testing.T, db *gorm.DB, farmID uint, eventType string, extreme bool, at time.Time) {
	t.Helper()
	require.NoError(t, db.Create(&entities.WeatherEvent{
		FarmID: farmID, EventType: eventType, Extreme: extreme, RecordedAt: at,
	}).Error)
}

func TestApplyDriftDroughtAdaptive(t *testing.T) {
	par := tuning.Defaults()
	p := &entities.CropPhenotype{
		ExprDroughtTolerance: 0.7, HealthScore: 1, Status: entities.PhenoGrowing,
	}
	app, ok := ApplyDrift(p, entities.WeatherDrought, par)
	require.True(t, ok)
	assert.InDelta(t, 0.72, p.ExprDroughtTolerance, 1e-9)
	assert.InDelta(t, 0.95, p.HealthScore, 1e-9)
	assert.InDelta(t, 0.025, p.StressFactor, 1e-9)
	assert.InDelta(t, 0.02, app.TraitDelta, 1e-9)
	assert.InDelta(t, -0.05, app.HealthDelta, 1e-9)
	assert.False(t, app.Failed)
}

func TestApplyDriftDroughtCollapse(t *testing.T) {
	par := tuning.Defaults()
	p := &entities.CropPhenotype{
		ExprDroughtTolerance: 0.3, HealthScore: 1, Status: entities.PhenoGrowing,
	}
	_, ok := ApplyDrift(p, entities.WeatherDrought, par)
	require.True(t, ok)
	assert.InDelta(t, 0.2, p.ExprDroughtTolerance, 1e-9)
	assert.InDelta(t, 0.75, p.HealthScore, 1e-9)
	assert.InDelta(t, 0.125, p.StressFactor, 1e-9)
}

func TestApplyDriftGateIsStrictlyAbove(t *testing.T) {
	par := tuning.Defaults()
	p := &entities.CropPhenotype{
		ExprDroughtTolerance: 0.5, HealthScore: 1, Status: entities.PhenoGrowing,
	}
	_, ok := ApplyDrift(p, entities.WeatherDrought, par)
	require.True(t, ok)
	// exactly at the threshold takes the collapse branch
	assert.InDelta(t, 0.4, p.ExprDroughtTolerance, 1e-9)
}

func TestApplyDriftHeatWave(t *testing.T) {
	par := tuning.Defaults()

	weak := &entities.CropPhenotype{ExprHeatShock: 0.3, HealthScore: 1, Status: entities.PhenoGrowing}
	_, ok := ApplyDrift(weak, entities.WeatherHeatWave, par)
	require.True(t, ok)
	assert.InDelta(t, 0.8, weak.HealthScore, 1e-9)
	assert.InDelta(t, 0.3, weak.ExprHeatShock, 1e-9, "heat wave only costs health")

	tough := &entities.CropPhenotype{ExprHeatShock: 0.6, HealthScore: 1, Status: entities.PhenoGrowing}
	_, ok = ApplyDrift(tough, entities.WeatherHeatWave, par)
	assert.False(t, ok, "tolerant plants shrug a heat wave off")
	assert.Equal(t, 1.0, tough.HealthScore)

	// the cost fires strictly below 0.4; exactly at it is a no-op
	border := &entities.CropPhenotype{ExprHeatShock: 0.4, HealthScore: 1, Status: entities.PhenoGrowing}
	_, ok = ApplyDrift(border, entities.WeatherHeatWave, par)
	assert.False(t, ok)
	assert.Equal(t, 1.0, border.HealthScore)
}

func TestApplyDriftUnknownEventIsNoop(t *testing.T) {
	par := tuning.Defaults()
	p := &entities.CropPhenotype{ExprDroughtTolerance: 0.7, HealthScore: 1, Status: entities.PhenoGrowing}
	_, ok := ApplyDrift(p, entities.WeatherStorm, par)
	assert.False(t, ok)
	assert.Equal(t, 1.0, p.HealthScore)
}

func TestApplyDriftFailureIsOneWay(t *testing.T) {
	par := tuning.Defaults()
	p := &entities.CropPhenotype{
		ExprDroughtTolerance: 0.2, HealthScore: 0.3, Status: entities.PhenoGrowing,
	}
	app, ok := ApplyDrift(p, entities.WeatherDrought, par)
	require.True(t, ok)
	assert.True(t, app.Failed)
	assert.Equal(t, entities.PhenoFailed, p.Status)
	assert.InDelta(t, 0.05, p.HealthScore, 1e-9)
}

func TestApplyDriftStressCapsAtOne(t *testing.T) {
	par := tuning.Defaults()
	p := &entities.CropPhenotype{
		ExprDroughtTolerance: 0.2, HealthScore: 1, StressFactor: 0.95, Status: entities.PhenoGrowing,
	}
	_, ok := ApplyDrift(p, entities.WeatherDrought, par)
	require.True(t, ok)
	assert.Equal(t, 1.0, p.StressFactor)
}

func TestProcessBatchNoEvents(t *testing.T) {
	db, svc := newEnv(t)
	plant(t, db, entities.CropPhenotype{FarmID: 1, ExprDroughtTolerance: 0.7, HealthScore: 1})

	n, err := svc.ProcessBatch()
	require.NoError(t, err)
	assert.Zero(t, n)

	var logs int64
	db.Model(&entities.DriftLog{}).Count(&logs)
	assert.Zero(t, logs)
}

func TestProcessBatchAppliesAndLogs(t *testing.T) {
	db, svc := newEnv(t)
	p := plant(t, db, entities.CropPhenotype{FarmID: 1, ExprDroughtTolerance: 0.7, HealthScore: 1})
	other := plant(t, db, entities.CropPhenotype{FarmID: 2, ExprDroughtTolerance: 0.7, HealthScore: 1})

	record(t, db, 1, entities.WeatherDrought, true, time.Now().Add(-time.Hour))
	record(t, db, 1, entities.WeatherStorm, true, time.Now().Add(-time.Hour))   // no rule
	record(t, db, 1, entities.WeatherDrought, false, time.Now().Add(-time.Hour)) // not extreme
	record(t, db, 1, entities.WeatherDrought, true, time.Now().Add(-48*time.Hour)) // stale

	n, err := svc.ProcessBatch()
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	got, err := phenoRepoImp.New(db).FindByID(p.PhenoID)
	require.NoError(t, err)
	assert.InDelta(t, 0.72, got.ExprDroughtTolerance, 1e-9)
	assert.InDelta(t, 0.95, got.HealthScore, 1e-9)

	untouched, err := phenoRepoImp.New(db).FindByID(other.PhenoID)
	require.NoError(t, err)
	assert.Equal(t, 1.0, untouched.HealthScore, "events on farm 1 never reach farm 2")

	logs, err := svc.History(p.PhenoID)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, entities.WeatherDrought, logs[0].Event)
	assert.Equal(t, tuning.TraitDrought, logs[0].Trait)
	assert.InDelta(t, 0.02, logs[0].TraitDelta, 1e-9)
}

func TestProcessBatchMultipleEventsCompound(t *testing.T) {
	db, svc := newEnv(t)
	p := plant(t, db, entities.CropPhenotype{FarmID: 1, ExprDroughtTolerance: 0.7, ExprHeatShock: 0.3, HealthScore: 1})

	record(t, db, 1, entities.WeatherDrought, true, time.Now().Add(-2*time.Hour))
	record(t, db, 1, entities.WeatherHeatWave, true, time.Now().Add(-time.Hour))

	n, err := svc.ProcessBatch()
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	got, err := phenoRepoImp.New(db).FindByID(p.PhenoID)
	require.NoError(t, err)
	assert.InDelta(t, 0.75, got.HealthScore, 1e-9)

	logs, err := svc.History(p.PhenoID)
	require.NoError(t, err)
	assert.Len(t, logs, 2)
}

func TestProcessBatchStopsAtFailure(t *testing.T) {
	db, svc := newEnv(t)
	p := plant(t, db, entities.CropPhenotype{FarmID: 1, ExprDroughtTolerance: 0.2, HealthScore: 0.3})

	// first drought fails the phenotype, the second must not apply
	record(t, db, 1, entities.WeatherDrought, true, time.Now().Add(-2*time.Hour))
	record(t, db, 1, entities.WeatherDrought, true, time.Now().Add(-time.Hour))

	n, err := svc.ProcessBatch()
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	got, err := phenoRepoImp.New(db).FindByID(p.PhenoID)
	require.NoError(t, err)
	assert.Equal(t, entities.PhenoFailed, got.Status)
	assert.InDelta(t, 0.05, got.HealthScore, 1e-9)
}
