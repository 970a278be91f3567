package database

import (
	"fmt"
	"log"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newLogger() logger.Interface {
	return logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  true,
		},
	)
}

// ConnectLocal opens the offline store: an embedded SQLite file the app owns
// outright. This is the store every user-facing write hits; it must work with
// no network at all.
func ConnectLocal() *gorm.DB {
	path := os.Getenv("LOCAL_DB_PATH")
	if path == "" {
		path = "pos_local.db"
	}

	db, err := gorm.Open(sqlite.Open(path+"?_foreign_keys=on&_journal_mode=WAL"), &gorm.Config{
		Logger: newLogger(),
	})
	if err != nil {
		log.Fatal("Failed to open local database. \n", err)
	}

	// SQLite is a single-writer store; one connection avoids busy errors
	sqlDB, _ := db.DB()
	sqlDB.SetMaxOpenConns(1)

	log.Println("Local database opened:", path)
	return db
}

// ConnectCentral opens a handle to the central (online) store. The dial is
// deferred: the app must boot and serve while disconnected, so connectivity
// is only probed at the start of each sync pass.
func ConnectCentral() *gorm.DB {
	dsn := os.Getenv("CENTRAL_DATABASE_URL")
	if dsn == "" {
		dsn = fmt.Sprintf(
			"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
			os.Getenv("CENTRAL_DB_HOST"),
			os.Getenv("CENTRAL_DB_USER"),
			os.Getenv("CENTRAL_DB_PASSWORD"),
			os.Getenv("CENTRAL_DB_NAME"),
			os.Getenv("CENTRAL_DB_PORT"),
		)
	}

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  dsn,
		PreferSimpleProtocol: true, // Disables implicit prepared statements for pooled/proxied setups
	}), &gorm.Config{
		Logger:               newLogger(),
		PrepareStmt:          false,
		DisableAutomaticPing: true, // boot offline; the sync orchestrator pings per pass
	})
	if err != nil {
		log.Fatal("Failed to configure central database handle. \n", err)
	}

	// Connection Pooling Setup
	sqlDB, _ := db.DB()
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	log.Println("Central database handle configured")
	return db
}
