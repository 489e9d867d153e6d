package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type AppConfig struct {
	Port              string
	Timezone          string
	DBPath            string
	SimSeed           int64 // 0 = seed from wall clock
	DriftLookbackHrs  int
	DriftEveryMin     int // 0 = no periodic drift runs
	SweepEveryMin     int // 0 = no periodic battle sweeps
	SweepSize         int
	DriftRulesCSV     string
	CombatTuningXLSX  string
	LLMEndpoint       string
	LLMAPIKey         string
	LLMModel          string
	EnableStationAuth bool
}

func Load() AppConfig {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Printf("[cfg] No .env file found or error loading: %v", err)
	}

	get := func(k, def string) string {
		if v := os.Getenv(k); v != "" {
			return v
		}
		return def
	}
	getInt := func(k string, def int) int {
		if v := os.Getenv(k); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
		}
		return def
	}
	seed, _ := strconv.ParseInt(get("SIM_SEED", "0"), 10, 64)
	cfg := AppConfig{
		Port:              get("PORT", "8080"),
		Timezone:          get("TZ", "Asia/Bangkok"),
		DBPath:            get("DB_PATH", "agrosim.db"),
		SimSeed:           seed,
		DriftLookbackHrs:  getInt("DRIFT_LOOKBACK_HOURS", 24),
		DriftEveryMin:     getInt("DRIFT_EVERY_MINUTES", 180),
		SweepEveryMin:     getInt("SWEEP_EVERY_MINUTES", 60),
		SweepSize:         getInt("SWEEP_SIZE", 25),
		DriftRulesCSV:     get("DRIFT_RULES_CSV", ""),
		CombatTuningXLSX:  get("COMBAT_TUNING_XLSX", ""),
		LLMEndpoint:       get("LLM_ENDPOINT", ""),
		LLMAPIKey:         get("LLM_API_KEY", ""),
		LLMModel:          get("LLM_MODEL", "gpt-4o-mini"),
		EnableStationAuth: get("ENABLE_STATION_AUTH", "false") == "true",
	}
	log.Printf("[cfg] %+v", cfg)
	return cfg
}
