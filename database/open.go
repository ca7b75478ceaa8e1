package database

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/plugin/dbresolver"
	_ "modernc.org/sqlite"

	"github.com/bgpaten/ahyarpattani/config"
)

func newGormLogger() logger.Interface {
	return logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             10 * time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  true,
		},
	)
}

func postgresDSN(cfg config.DatabaseSettings, host string) string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		host, cfg.User, cfg.Password, cfg.Name, cfg.Port, cfg.SSLMode)
}

// Open connects to the database selected by cfg.Type. Hosted Postgres may
// register a read replica, which then serves every query outside a write
// or transaction.
func Open(cfg config.DatabaseSettings) (*gorm.DB, error) {
	switch cfg.Type {
	case "supa", "postgres":
		return openPostgres(cfg)
	case "sqlite":
		return OpenSQLite(cfg.SQLitePath, newGormLogger())
	default:
		return nil, fmt.Errorf("unsupported DB_TYPE %q", cfg.Type)
	}
}

func openPostgres(cfg config.DatabaseSettings) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  postgresDSN(cfg, cfg.Host),
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		PrepareStmt: false,
		Logger:      newGormLogger(),
	})
	if err != nil {
		return nil, err
	}

	if cfg.ReplicaHost != "" {
		err = db.Use(dbresolver.Register(dbresolver.Config{
			Replicas: []gorm.Dialector{postgres.New(postgres.Config{
				DSN:                  postgresDSN(cfg, cfg.ReplicaHost),
				PreferSimpleProtocol: true,
			})},
			Policy: dbresolver.RandomPolicy{},
		}))
		if err != nil {
			return nil, fmt.Errorf("registering read replica: %w", err)
		}
	}

	var result int
	if err := db.Raw("SELECT 1").Scan(&result).Error; err != nil {
		return nil, fmt.Errorf("testing database connection: %w", err)
	}
	return db, nil
}

// OpenSQLite opens a pure Go sqlite database at path. Used for local
// development and tests.
func OpenSQLite(path string, gormLogger logger.Interface) (*gorm.DB, error) {
	sqlDB, err := sql.Open("sqlite", path+"?_pragma=busy_timeout(5000)&_time_format=sqlite")
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)

	if gormLogger == nil {
		gormLogger = logger.Default.LogMode(logger.Silent)
	}
	db, err := gorm.Open(sqlite.Dialector{Conn: sqlDB}, &gorm.Config{Logger: gormLogger})
	if err != nil {
		sqlDB.Close()
		return nil, err
	}
	return db, nil
}
