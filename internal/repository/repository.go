// Package repository provides methods to work with DB
package repository

import (
	"context"
	"database/sql"
	"log"
	"path/filepath"
	"time"

	"github.com/UnendingLoop/ImageVault/internal/model"
	"github.com/UnendingLoop/ImageVault/internal/repository/imgpostgres"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/wb-go/wbf/config"
	"github.com/wb-go/wbf/dbpg"
)

// ImageRepo is the metadata store contract: CRUD keyed by the upstream image
// ID plus the owner-scoped listing. The image_id column carries a unique
// index, so a duplicate upstream ID is a constraint violation, not a state
// the rest of the code ever has to disambiguate.
type ImageRepo interface {
	Create(ctx context.Context, n *model.Image) error
	Get(ctx context.Context, imageID string) (*model.Image, error)
	GetByOwner(ctx context.Context, ownerID string) ([]model.Image, error)
	Update(ctx context.Context, imageID string, patch *model.ImagePatch) error
	Delete(ctx context.Context, imageID string) error
}

func NewPostgresImageRepo(dbconn *dbpg.DB) ImageRepo {
	return imgpostgres.PostgresRepo{DB: dbconn}
}

func ConnectWithRetries(appConfig *config.Config, retryCount int, idleTime time.Duration) *dbpg.DB {
	dbOptions := dbpg.Options{
		MaxOpenConns:    5,
		MaxIdleConns:    5,
		ConnMaxLifetime: 10 * time.Minute,
	}
	dsnLink := appConfig.GetString("POSTGRES_DSN")
	var dbConn *dbpg.DB
	var err error

	for i := 0; i < retryCount; i++ {
		dbConn, err = dbpg.New(dsnLink, nil, &dbOptions)
		if err == nil {
			break
		}
		log.Printf("Failed to connect to PGDB: %s\nWaiting %v before next retry...", err, idleTime)
		time.Sleep(idleTime)
	}

	if err != nil {
		log.Fatal("Failed to connect to DB. Exiting the app...")
	}

	return dbConn
}

func MigrateWithRetries(db *sql.DB, migrationsPath string, retries int, idle time.Duration) {
	err := withRetries(retries, idle, func() error {
		return runMigrate(db, migrationsPath)
	})
	if err != nil {
		log.Fatalln("Out of retries. Exiting...")
	}
}

func withRetries(retries int, idle time.Duration, attempt func() error) error {
	var err error
	for i := 0; i < retries; i++ {
		log.Printf("Migration try #%d...", i)
		err = attempt()
		if err == nil {
			return nil
		}
		log.Printf("Migration try #%d was unsuccessful. Waiting %v before next try...", i, idle)
		time.Sleep(idle)
	}
	return err
}

func runMigrate(db *sql.DB, migrationsPath string) error {
	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return err
	}

	absPath, err := filepath.Abs(migrationsPath)
	if err != nil {
		return err
	}

	sourceURL := "file://" + absPath
	log.Println("Running migrations from:", sourceURL)

	m, err := migrate.NewWithDatabaseInstance(
		sourceURL,
		"postgres",
		driver,
	)
	if err != nil {
		return err
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return err
	}

	log.Println("Database migrations applied successfully")
	return nil
}
