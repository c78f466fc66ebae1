package db

import (
	"log"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/mozhnovpn/portal/internal/models"
)

var conn *gorm.DB

func Init(path string) error {
	var err error
	conn, err = gorm.Open(sqlite.Open(path+"?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on"), &gorm.Config{})
	if err != nil {
		return err
	}

	// SQLite works best with a single writer; cap the pool accordingly.
	sqlDB, err := conn.DB()
	if err != nil {
		return err
	}
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetConnMaxLifetime(0)

	if err := conn.AutoMigrate(
		&models.Account{},
		&models.Profile{},
		&models.Tariff{},
		&models.Subscription{},
		&models.ReferralEvent{},
		&models.LinkCode{},
		&models.PendingReferral{},
	); err != nil {
		log.Fatalf("auto-migrate failed: %v", err)
	}

	// Indexes GORM doesn't auto-create from struct tags. The partial unique
	// index keeps at most one live row per code value without blocking
	// reuse of a code string after it has been consumed.
	conn.Exec("CREATE UNIQUE INDEX IF NOT EXISTS idx_link_codes_active_code ON link_codes(code) WHERE used = 0")
	conn.Exec("CREATE INDEX IF NOT EXISTS idx_subs_user_status ON subscriptions(user_id, status)")

	log.Println("database ready (sqlite)")
	return nil
}

func Conn() *gorm.DB {
	return conn
}
