package infra

import (
	"fmt"

	"github.com/jassler1/el-refugio-de-las-gibas/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase establishes a GORM connection backed by pgx, runs AutoMigrate for
// every model, then applies the idempotent SQL patches that GORM cannot express
// (CHECK constraints, sequences, GIN indexes).
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	if err := RunMigrations(db); err != nil {
		return nil, err
	}
	return db, nil
}

// RunMigrations creates or updates every table and applies the schema patches.
// Also used by integration tests against a throwaway container.
func RunMigrations(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&model.SesionAnonima{},
		&model.Insumo{},
		&model.Kit{},
		&model.Cliente{},
		&model.Venta{},
		&model.ComandaPendiente{},
		&model.Egreso{},
		&model.GastoDiario{},
		&model.MovimientoStock{},
	); err != nil {
		return fmt.Errorf("AutoMigrate: %w", err)
	}
	if err := applySchemaPatches(db); err != nil {
		return fmt.Errorf("schema patches: %w", err)
	}
	return nil
}

// applySchemaPatches runs idempotent DDL statements that AutoMigrate cannot
// handle on its own. Each one is guarded so re-running is a no-op.
func applySchemaPatches(db *gorm.DB) error {
	patches := []struct{ descr, sql string }{
		{"ventas ticket sequence",
			`CREATE SEQUENCE IF NOT EXISTS ventas_numero_ticket_seq START 1`},
		{"insumos cantidad >= 0", `
DO $$ BEGIN
  IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'chk_insumos_cantidad_no_negativa') THEN
    ALTER TABLE insumos ADD CONSTRAINT chk_insumos_cantidad_no_negativa CHECK (cantidad >= 0);
  END IF;
END $$`},
		{"kits cantidad >= 0", `
DO $$ BEGIN
  IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'chk_kits_cantidad_no_negativa') THEN
    ALTER TABLE kits ADD CONSTRAINT chk_kits_cantidad_no_negativa CHECK (cantidad >= 0);
  END IF;
END $$`},
		// kit lookups by component use jsonb containment
		{"kits componentes gin index",
			`CREATE INDEX IF NOT EXISTS idx_kits_componentes ON kits USING GIN (componentes jsonb_path_ops)`},
		{"egresos owner/timestamp index",
			`CREATE INDEX IF NOT EXISTS idx_egresos_owner_ts ON egresos (user_id, "timestamp" DESC)`},
		{"gastos owner/timestamp index",
			`CREATE INDEX IF NOT EXISTS idx_gastos_diarios_owner_ts ON gastos_diarios (user_id, "timestamp" DESC)`},
	}
	for _, p := range patches {
		if err := db.Exec(p.sql).Error; err != nil {
			return fmt.Errorf("patch %q: %w", p.descr, err)
		}
	}
	return nil
}
