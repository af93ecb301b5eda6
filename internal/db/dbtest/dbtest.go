// Package dbtest sobe um Postgres em container para os testes que usam o
// banco de verdade.
package dbtest

import (
	"context"
	"fmt"
	"io"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/nail-studio/internal/db"
)

type dbContainer struct {
	Container  *postgres.PostgresContainer
	ConnString string
}

func (c *dbContainer) DumpLogs() string {
	logs, err := c.Container.Logs(context.Background())
	if err != nil {
		return fmt.Sprintf("failed to dump container logs: %v", err)
	}
	b, err := io.ReadAll(logs)
	if err != nil {
		return fmt.Sprintf("failed to read container logs: %v", err)
	}
	return string(b)
}

func startDB(ctx context.Context) (*dbContainer, error) {
	c, err := postgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:16-alpine"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("run container: %w", err)
	}

	connStr, err := c.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		_ = c.Terminate(ctx)
		return nil, fmt.Errorf("conn string: %w", err)
	}

	return &dbContainer{Container: c, ConnString: connStr}, nil
}

// NewUnit devolve um banco migrado. O teste é pulado com -short ou quando
// não há Docker disponível. O container é encerrado no Cleanup do teste.
func NewUnit(t *testing.T) *gorm.DB {
	t.Helper()

	if testing.Short() {
		t.Skip("skipping database test in short mode")
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	c, err := startDB(ctx)
	if err != nil {
		t.Skipf("postgres container unavailable: %v", err)
	}
	t.Cleanup(func() {
		_ = c.Container.Terminate(context.Background())
	})

	database, err := db.Open(c.ConnString)
	if err != nil {
		t.Fatalf("opening database: %v", err)
	}

	if err := db.Migrate(database); err != nil {
		t.Logf("Logs for %s\n%s:", c.Container.GetContainerID(), c.DumpLogs())
		t.Fatalf("migrating: %v", err)
	}

	t.Cleanup(func() {
		if sqlDB, err := database.DB(); err == nil {
			sqlDB.Close()
		}
	})

	return database
}
