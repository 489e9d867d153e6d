package main

import (
	"log"
	"math/rand"
	"os"
	"time"

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"

	"agrosim/config"
	"agrosim/database"
	"agrosim/router"

	// Auth
	authCtrlImp "agrosim/pkg/auth/controllerImp"

	// Genome
	genomeCtrlImp "agrosim/pkg/genome/controllerImp"
	genomeRepoImp "agrosim/pkg/genome/repositoryImp"
	genomeSvcImp "agrosim/pkg/genome/serviceImp"

	// Phenotype
	phenoCtrlImp "agrosim/pkg/phenotype/controllerImp"
	phenoRepoImp "agrosim/pkg/phenotype/repositoryImp"
	phenoSvcImp "agrosim/pkg/phenotype/serviceImp"

	// Weather
	weatherCtrlImp "agrosim/pkg/weather/controllerImp"
	weatherRepoImp "agrosim/pkg/weather/repositoryImp"

	// Drift
	driftCtrlImp "agrosim/pkg/drift/controllerImp"
	driftRepoImp "agrosim/pkg/drift/repositoryImp"
	driftSvcImp "agrosim/pkg/drift/serviceImp"

	// Strain
	strainCtrlImp "agrosim/pkg/strain/controllerImp"
	strainRepoImp "agrosim/pkg/strain/repositoryImp"

	// Combat
	combatCtrlImp "agrosim/pkg/combat/controllerImp"
	combatRepoImp "agrosim/pkg/combat/repositoryImp"
	combatSvcImp "agrosim/pkg/combat/serviceImp"

	// Tuning/LLM
	"agrosim/pkg/ai"
	"agrosim/pkg/tuning"

	// Advisory
	advCtrlImp "agrosim/pkg/advisory/controllerImp"
	advEmbedder "agrosim/pkg/advisory/embedder"
	advRepoImp "agrosim/pkg/advisory/repositoryImp"
	advSvcImp "agrosim/pkg/advisory/serviceImp"

	// Health
	healthCtrlImp "agrosim/pkg/health/controllerImp"
)

func main() {
	// 1) Config
	cfg := config.Load()

	// 2) DB (sqlite) + automigrate
	db := database.OpenSQLite(cfg.DBPath)

	// 3) Tuning tables (compiled defaults + optional file overrides)
	par, err := tuning.LoadFromFiles(cfg.DriftRulesCSV, cfg.CombatTuningXLSX)
	if err != nil {
		log.Printf("tuning warn: %v", err)
	}

	// 4) Simulation RNG
	seed := cfg.SimSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	log.Printf("[sim] seed=%d", seed)
	genomeRng := rand.New(rand.NewSource(seed))
	phenoRng := rand.New(rand.NewSource(seed + 1))
	combatRng := rand.New(rand.NewSource(seed + 2))

	// 5) LLM (mock fallback)
	var llm ai.Client
	if cfg.LLMEndpoint != "" && cfg.LLMAPIKey != "" {
		llm = ai.NewOpenAI(cfg.LLMEndpoint, cfg.LLMAPIKey, cfg.LLMModel)
	} else {
		llm = ai.NewMock()
	}

	// 6) Advisory wiring
	emb := advEmbedder.New(
		os.Getenv("EMB_ENDPOINT"),
		os.Getenv("EMB_API_KEY"),
		os.Getenv("EMB_MODEL"),
	)
	advRepo := advRepoImp.New(db)
	advSvc := advSvcImp.New(advRepo, emb)
	advCtrl := advCtrlImp.New(advSvc)

	// 7) Repos/Services/Controllers
	gRepo := genomeRepoImp.New(db)
	pRepo := phenoRepoImp.New(db)
	wRepo := weatherRepoImp.New(db)
	dRepo := driftRepoImp.New(db)
	sRepo := strainRepoImp.New(db)
	cRepo := combatRepoImp.New(db)

	gSvc := genomeSvcImp.New(gRepo, genomeRng)
	pSvc := phenoSvcImp.New(pRepo, gRepo, par, phenoRng)
	dSvc := driftSvcImp.New(pRepo, wRepo, dRepo, par, time.Duration(cfg.DriftLookbackHrs)*time.Hour)
	cSvc := combatSvcImp.New(sRepo, pRepo, cRepo, par, combatRng)

	gCtrl := genomeCtrlImp.New(gSvc)
	pCtrl := phenoCtrlImp.New(pSvc)
	wCtrl := weatherCtrlImp.New(wRepo)
	dCtrl := driftCtrlImp.New(dSvc)
	sCtrl := strainCtrlImp.New(sRepo)
	cCtrl := combatCtrlImp.New(cSvc, llm, advSvc)

	// Auth + Health
	authCtrl := authCtrlImp.NewAuthController()
	hCtrl := healthCtrlImp.NewHealthCtrl(db)

	// 8) Echo + router
	e := echo.New()
	e.Use(echoMiddleware.Recover())

	r := router.New(
		e,
		cfg.EnableStationAuth,
		gCtrl,
		pCtrl,
		wCtrl,
		dCtrl,
		sCtrl,
		cCtrl,
		authCtrl,
		advCtrl,
		hCtrl,
	)

	// 9) Background simulation loops
	if cfg.DriftEveryMin > 0 {
		go func() {
			t := time.NewTicker(time.Duration(cfg.DriftEveryMin) * time.Minute)
			defer t.Stop()
			for range t.C {
				n, err := dSvc.ProcessBatch()
				if err != nil {
					log.Printf("[drift] batch error: %v", err)
					continue
				}
				log.Printf("[drift] batch applied %d drift events", n)
			}
		}()
	}
	if cfg.SweepEveryMin > 0 {
		go func() {
			t := time.NewTicker(time.Duration(cfg.SweepEveryMin) * time.Minute)
			defer t.Stop()
			for range t.C {
				rep, err := cSvc.Sweep(cfg.SweepSize)
				if err != nil {
					log.Printf("[sweep] error: %v", err)
					continue
				}
				log.Printf("[sweep] fired=%d infections=%d mutations=%d extinctions=%d failures=%d",
					rep.EngagementsFired, rep.Infections, rep.Mutations, rep.Extinctions, rep.CropFailures)
			}
		}()
	}

	// 10) Start
	log.Printf("listening on :%s", cfg.Port)
	if err := r.Start(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
