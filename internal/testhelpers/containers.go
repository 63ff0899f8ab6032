package testhelpers

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	migration "recipe-catalog/cmd/database/migrate"
	"recipe-catalog/entities"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const postgresImage = "postgres:16-alpine"

// TestDB holds a shared PostgreSQL container with the schema migrated.
type TestDB struct {
	Container testcontainers.Container
	DB        *gorm.DB
	DSN       string
}

var (
	sharedTestDB     *TestDB
	sharedTestDBOnce sync.Once
	sharedTestDBErr  error
)

// GetTestDB returns a PostgreSQL container shared by every test in the
// package run. Tests are skipped in short mode since they need Docker.
func GetTestDB(t *testing.T) *TestDB {
	t.Helper()

	if testing.Short() {
		t.Skip("Skipping integration test in short mode (requires Docker)")
	}

	sharedTestDBOnce.Do(func() {
		sharedTestDB, sharedTestDBErr = setupTestDB()
	})

	if sharedTestDBErr != nil {
		t.Fatalf("Failed to setup test database: %v", sharedTestDBErr)
	}

	return sharedTestDB
}

func setupTestDB() (*TestDB, error) {
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        postgresImage,
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_DB":       "recipes",
			"POSTGRES_USER":     "recipes",
			"POSTGRES_PASSWORD": "test_password",
		},
		// postgres logs readiness twice: once for the init run, once for real
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(60 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to start test container: %w", err)
	}

	host, err := container.Host(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get container host: %w", err)
	}

	port, err := container.MappedPort(ctx, "5432")
	if err != nil {
		return nil, fmt.Errorf("failed to get container port: %w", err)
	}

	dsn := fmt.Sprintf("host=%s port=%s user=recipes password=test_password dbname=recipes sslmode=disable TimeZone=UTC",
		host, port.Port())

	var db *gorm.DB
	for i := 0; i < 10; i++ {
		db, err = gorm.Open(postgres.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
		if err == nil {
			break
		}
		time.Sleep(500 * time.Millisecond)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to connect to test database: %w", err)
	}

	if err := migration.Migrate(db); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &TestDB{
		Container: container,
		DB:        db,
		DSN:       dsn,
	}, nil
}

// Reset empties every table so a test starts from a known state.
func (tdb *TestDB) Reset(t *testing.T) {
	t.Helper()

	err := tdb.DB.Exec(`TRUNCATE TABLE recipes_tb.bookmarks, recipes_tb.recipes, users RESTART IDENTITY CASCADE`).Error
	if err != nil {
		t.Fatalf("Failed to reset test database: %v", err)
	}
}

// SeedRecipes inserts recipes with the given names; ids start at 1.
func (tdb *TestDB) SeedRecipes(t *testing.T, names ...string) []*entities.Recipe {
	t.Helper()

	recipes := make([]*entities.Recipe, 0, len(names))
	for i, name := range names {
		recipes = append(recipes, &entities.Recipe{
			RecipeID:       i + 1,
			Name:           name,
			RecipeCategory: "Dessert",
			Calories:       100 * (i + 1),
		})
	}
	if len(recipes) == 0 {
		return recipes
	}
	if err := tdb.DB.CreateInBatches(recipes, 500).Error; err != nil {
		t.Fatalf("Failed to seed recipes: %v", err)
	}
	return recipes
}
