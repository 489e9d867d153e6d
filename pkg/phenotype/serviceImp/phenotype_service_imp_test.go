package serviceImp

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"agrosim/database"
	"agrosim/entities"
	genomeRepoImp "agrosim/pkg/genome/repositoryImp"
	phenoRepoImp "agrosim/pkg/phenotype/repositoryImp"
	"agrosim/pkg/phenotype/service"
	"agrosim/pkg/tuning"
)

func newEnv(t *testing.T, seed int64) (*gorm.DB, service.PhenotypeService) {
	t.Helper()
	db := database.OpenMemory()
	svc := New(phenoRepoImp.New(db), genomeRepoImp.New(db), tuning.Defaults(), rand.New(rand.NewSource(seed)))
	return db, svc
}

func seedGenome(t *testing.T, db *gorm.DB, g entities.SeedGenome) *entities.SeedGenome {
	t.Helper()
	require.NoError(t, db.Create(&g).Error)
	return &g
}

func TestCollapseAlleleStaysInUnitInterval(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	sp := tuning.Defaults().Spawn
	for _, base := range []float64{0, 0.01, 0.5, 0.99, 1} {
		for i := 0; i < 10000; i++ {
			v := CollapseAllele(rng, base, 1, sp)
			require.GreaterOrEqual(t, v, 0.0)
			require.LessOrEqual(t, v, 1.0)
		}
	}
}

func TestCollapseAllelePrecisionTightensSpread(t *testing.T) {
	sp := tuning.Defaults().Spawn

	spread := func(precision float64) float64 {
		rng := rand.New(rand.NewSource(11))
		var sum, sumSq float64
		n := 5000
		for i := 0; i < n; i++ {
			v := CollapseAllele(rng, 0.5, precision, sp)
			sum += v
			sumSq += v * v
		}
		mean := sum / float64(n)
		return math.Sqrt(sumSq/float64(n) - mean*mean)
	}

	loose := spread(1)
	tight := spread(10)
	assert.Greater(t, loose, tight, "higher precision index means tighter draws")
	assert.InDelta(t, 0.15, loose, 0.02)
	assert.InDelta(t, 0.015, tight, 0.005)
}

func TestCollapseAlleleExtremeBasesAreClamped(t *testing.T) {
	sp := tuning.Defaults().Spawn
	rng := rand.New(rand.NewSource(3))
	// at precision 1000 the noise is negligible, so the draw lands on the
	// clamped base
	assert.InDelta(t, sp.BaseClampLo, CollapseAllele(rng, 0, 1000, sp), 0.002)
	assert.InDelta(t, sp.BaseClampHi, CollapseAllele(rng, 1, 1000, sp), 0.002)
}

func TestSpawn(t *testing.T) {
	db, svc := newEnv(t, 99)
	g := seedGenome(t, db, entities.SeedGenome{
		StrainName: "KhonKaen-3", Species: "sugarcane",
		DroughtToleranceAllele: 0.7, HeatShockAllele: 0.3, PestResistAllele: 0.5,
		YieldVigor: 1, Generation: 1,
	})

	p, err := svc.Spawn(g.GenomeID, 42, 100)
	require.NoError(t, err)
	assert.NotZero(t, p.PhenoID)
	assert.Equal(t, uint(42), p.FarmID)
	assert.Equal(t, entities.PhenoGrowing, p.Status)
	assert.Equal(t, 1.0, p.HealthScore)
	assert.Equal(t, 0.0, p.StressFactor)
	assert.False(t, p.PlantedAt.IsZero())

	// precision 100 keeps each trait within a hair of its allele
	assert.InDelta(t, 0.7, p.ExprDroughtTolerance, 0.02)
	assert.InDelta(t, 0.3, p.ExprHeatShock, 0.02)
	assert.InDelta(t, 0.5, p.ExprPestDefense, 0.02)
}

func TestSpawnErrors(t *testing.T) {
	db, svc := newEnv(t, 1)
	_, err := svc.Spawn(999, 1, 1)
	assert.True(t, errors.Is(err, ErrGenomeNotFound))

	g := seedGenome(t, db, entities.SeedGenome{StrainName: "x", YieldVigor: 1, Generation: 1})
	_, err = svc.Spawn(g.GenomeID, 1, 0)
	assert.True(t, errors.Is(err, ErrBadPrecision))
	_, err = svc.Spawn(g.GenomeID, 1, -2)
	assert.True(t, errors.Is(err, ErrBadPrecision))
}

func TestHarvestLifecycle(t *testing.T) {
	db, svc := newEnv(t, 5)
	g := seedGenome(t, db, entities.SeedGenome{StrainName: "x", YieldVigor: 1, Generation: 1})
	p, err := svc.Spawn(g.GenomeID, 1, 10)
	require.NoError(t, err)

	h, err := svc.Harvest(p.PhenoID)
	require.NoError(t, err)
	assert.Equal(t, entities.PhenoHarvested, h.Status)
	require.NotNil(t, h.HarvestedAt)

	// terminal: a second harvest is rejected
	_, err = svc.Harvest(p.PhenoID)
	assert.True(t, errors.Is(err, ErrNotGrowing))

	_, err = svc.Harvest(999)
	assert.True(t, errors.Is(err, ErrPhenotypeNotFound))
}

func TestHarvestRejectsFailed(t *testing.T) {
	db, svc := newEnv(t, 5)
	g := seedGenome(t, db, entities.SeedGenome{StrainName: "x", YieldVigor: 1, Generation: 1})
	p, err := svc.Spawn(g.GenomeID, 1, 10)
	require.NoError(t, err)

	require.NoError(t, db.Model(&entities.CropPhenotype{}).
		Where("pheno_id = ?", p.PhenoID).
		Update("status", entities.PhenoFailed).Error)

	_, err = svc.Harvest(p.PhenoID)
	assert.True(t, errors.Is(err, ErrNotGrowing))
}

func TestSpawnReproducibleWithSameSeed(t *testing.T) {
	spawnOnce := func() *entities.CropPhenotype {
		db, svc := newEnv(t, 12345)
		g := seedGenome(t, db, entities.SeedGenome{
			StrainName: "x", DroughtToleranceAllele: 0.6, HeatShockAllele: 0.4,
			PestResistAllele: 0.5, YieldVigor: 1, Generation: 1,
		})
		p, err := svc.Spawn(g.GenomeID, 1, 2)
		require.NoError(t, err)
		return p
	}

	a := spawnOnce()
	b := spawnOnce()
	assert.Equal(t, a.ExprDroughtTolerance, b.ExprDroughtTolerance)
	assert.Equal(t, a.ExprHeatShock, b.ExprHeatShock)
	assert.Equal(t, a.ExprPestDefense, b.ExprPestDefense)
}
