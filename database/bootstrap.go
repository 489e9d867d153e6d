// database/bootstrap.go
package database

import (
	"database/sql"
	"fmt"
	"log"
	"strings"

	sqlite "github.com/glebarez/sqlite" // CGO-free driver
	"gorm.io/gorm"

	"agrosim/entities"
)

func OpenSQLite(path string) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		log.Fatalf("open sqlite: %v", err)
	}

	// Run the PK repair BEFORE AutoMigrate so GORM doesn't attempt the
	// failing ALTER TABLE on legacy combat_logs tables.
	if err := migrateCombatLogsAddPK(db); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	if err := db.AutoMigrate(
		&entities.SeedGenome{},
		&entities.CropPhenotype{},
		&entities.DriftLog{},
		&entities.PathogenStrain{},
		&entities.CombatLog{}, // now safe: table already has PK
		&entities.WeatherEvent{},
		&entities.AdvisoryDoc{},
		&entities.AdvisoryChunk{},
	); err != nil {
		log.Fatalf("automigrate: %v", err)
	}

	return db
}

// OpenMemory opens a fresh in-memory database with the full schema. Used by
// tests.
func OpenMemory() *gorm.DB {
	return OpenSQLite(":memory:")
}

// migrateCombatLogsAddPK rebuilds combat_logs if it lacks a primary key on id.
func migrateCombatLogsAddPK(db *gorm.DB) error {
	// does table exist?
	var tbl string
	if err := db.Raw(`SELECT name FROM sqlite_master WHERE type='table' AND name='combat_logs'`).Scan(&tbl).Error; err != nil {
		return fmt.Errorf("check table exist: %w", err)
	}
	if tbl == "" {
		// fresh DB, nothing to do
		return nil
	}

	// inspect columns
	type colInfo struct {
		Cid       int
		Name      string
		Type      string
		NotNull   int
		DfltValue sql.NullString
		Pk        int
	}
	var cols []colInfo
	if err := db.Raw(`PRAGMA table_info(combat_logs)`).Scan(&cols).Error; err != nil {
		return fmt.Errorf("table_info: %w", err)
	}

	hasIDasPK := false
	lower := func(s string) string { return strings.ToLower(s) }
	for _, c := range cols {
		if lower(c.Name) == "id" {
			if c.Pk == 1 {
				hasIDasPK = true
			}
			break
		}
	}
	if hasIDasPK {
		// already good
		return nil
	}

	createSQL := `
CREATE TABLE combat_logs_new (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    strain_id INTEGER,
    pheno_id INTEGER,
    attack_power REAL,
    defense_power REAL,
    env_modifier REAL,
    infected NUMERIC,
    damage_pct REAL,
    mutated NUMERIC,
    created_at DATETIME
);
`
	// figure which columns exist in old table
	oldCols := map[string]bool{}
	for _, c := range cols {
		oldCols[lower(c.Name)] = true
	}
	sel := func(name string) string {
		if oldCols[name] {
			return name
		}
		return "NULL AS " + name
	}
	copySQL := fmt.Sprintf(`
INSERT INTO combat_logs_new (strain_id, pheno_id, attack_power, defense_power, env_modifier, infected, damage_pct, mutated, created_at)
SELECT %s, %s, %s, %s, %s, %s, %s, %s, %s FROM combat_logs;
`,
		sel("strain_id"),
		sel("pheno_id"),
		sel("attack_power"),
		sel("defense_power"),
		sel("env_modifier"),
		sel("infected"),
		sel("damage_pct"),
		sel("mutated"),
		sel("created_at"),
	)

	// do it in a transaction
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec(`PRAGMA foreign_keys=OFF`).Error; err != nil {
			return err
		}
		if err := tx.Exec(createSQL).Error; err != nil {
			return err
		}
		if err := tx.Exec(copySQL).Error; err != nil {
			return err
		}
		if err := tx.Exec(`DROP TABLE combat_logs`).Error; err != nil {
			return err
		}
		if err := tx.Exec(`ALTER TABLE combat_logs_new RENAME TO combat_logs`).Error; err != nil {
			return err
		}
		if err := tx.Exec(`PRAGMA foreign_keys=ON`).Error; err != nil {
			return err
		}
		return nil
	})
}
