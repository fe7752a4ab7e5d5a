package db

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/ramcivil/monitoring-service/internal/config"
)

// Document-store driver keeps every collection in one schemaless table.
// seq preserves arrival order; parent_id mirrors the named foreign key of
// the collection (kontrak_payung_id, spk_id, user_id) so child lookups
// stay indexable without parsing JSON bodies.
var documentStatementsPostgres = []string{
	`CREATE TABLE IF NOT EXISTS documents (
		seq BIGSERIAL PRIMARY KEY,
		collection VARCHAR(64) NOT NULL,
		id CHAR(24) NOT NULL,
		parent_id VARCHAR(64),
		body TEXT NOT NULL
	);`,
	`CREATE UNIQUE INDEX IF NOT EXISTS uq_documents_collection_id ON documents (collection, id);`,
	`CREATE INDEX IF NOT EXISTS idx_documents_parent ON documents (collection, parent_id);`,
}

var documentStatementsSQLite = []string{
	`CREATE TABLE IF NOT EXISTS documents (
		seq INTEGER PRIMARY KEY AUTOINCREMENT,
		collection TEXT NOT NULL,
		id TEXT NOT NULL,
		parent_id TEXT,
		body TEXT NOT NULL
	);`,
	`CREATE UNIQUE INDEX IF NOT EXISTS uq_documents_collection_id ON documents (collection, id);`,
	`CREATE INDEX IF NOT EXISTS idx_documents_parent ON documents (collection, parent_id);`,
}

var relationalStatements = []string{
	`CREATE TABLE IF NOT EXISTS kontrak_payung (
		id VARCHAR(36) PRIMARY KEY,
		owner VARCHAR(64) NOT NULL,
		nama_kontrak_payung TEXT NOT NULL,
		nomor_oas VARCHAR(128) NOT NULL DEFAULT '',
		waktu_perjanjian VARCHAR(128) NOT NULL DEFAULT '',
		periode_kontrak VARCHAR(128) NOT NULL DEFAULT '',
		nilai_kontrak NUMERIC(18,2) NOT NULL DEFAULT 0 CHECK (nilai_kontrak >= 0),
		created_at VARCHAR(40) NOT NULL DEFAULT '',
		updated_at VARCHAR(40) NOT NULL DEFAULT ''
	);`,
	`CREATE TABLE IF NOT EXISTS spk (
		id VARCHAR(36) PRIMARY KEY,
		kontrak_payung_id VARCHAR(36) NOT NULL,
		no_spk VARCHAR(128) NOT NULL DEFAULT '',
		judul_spk TEXT NOT NULL DEFAULT '',
		durasi_spk VARCHAR(128) NOT NULL DEFAULT '',
		nilai_rekapitulasi_estimasi_biaya NUMERIC(18,2) NOT NULL DEFAULT 0,
		realisasi_spk NUMERIC(18,2),
		progress_percentage INTEGER NOT NULL DEFAULT 0 CHECK (progress_percentage BETWEEN 0 AND 100),
		keterangan TEXT,
		image_url_1 TEXT, image_url_2 TEXT, image_url_3 TEXT,
		pdf_url_1 TEXT, pdf_url_2 TEXT, pdf_url_3 TEXT,
		created_at VARCHAR(40) NOT NULL DEFAULT '',
		updated_at VARCHAR(40) NOT NULL DEFAULT ''
	);`,
	`CREATE INDEX IF NOT EXISTS idx_spk_kontrak ON spk (kontrak_payung_id);`,
	`CREATE TABLE IF NOT EXISTS notifikasi (
		id VARCHAR(36) PRIMARY KEY,
		spk_id VARCHAR(36) NOT NULL,
		no_notif VARCHAR(128) NOT NULL DEFAULT '',
		judul_notifikasi TEXT NOT NULL DEFAULT '',
		lokasi TEXT NOT NULL DEFAULT '',
		image_url TEXT, pdf_url TEXT,
		created_at VARCHAR(40) NOT NULL DEFAULT '',
		updated_at VARCHAR(40) NOT NULL DEFAULT ''
	);`,
	`CREATE INDEX IF NOT EXISTS idx_notifikasi_spk ON notifikasi (spk_id);`,
	`CREATE TABLE IF NOT EXISTS profiles (
		id VARCHAR(36) PRIMARY KEY,
		user_id VARCHAR(64) NOT NULL,
		full_name TEXT NOT NULL DEFAULT '',
		role VARCHAR(16) NOT NULL DEFAULT 'guest',
		created_at VARCHAR(40) NOT NULL DEFAULT ''
	);`,
	`CREATE UNIQUE INDEX IF NOT EXISTS uq_profiles_user ON profiles (user_id);`,
}

func runMigrations(db *gorm.DB, storeDriver string) error {
	var statements []string
	switch storeDriver {
	case config.DriverDocument:
		if db.Dialector.Name() == "postgres" {
			statements = documentStatementsPostgres
		} else {
			statements = documentStatementsSQLite
		}
	default:
		statements = relationalStatements
	}

	for i, stmt := range statements {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}
	return nil
}
