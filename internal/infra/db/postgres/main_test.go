//go:build integration

package postgres

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
)

var testPool *pgxpool.Pool

// schemaPath walks up to the directory holding go.mod and returns the
// bootstrap schema beneath it.
func schemaPath() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}
	for i := 0; i < 6; i++ {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return filepath.Join(dir, "deploy", "postgres", "init.sql"), nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", errors.New("could not find project root containing go.mod")
}

// startContainer runs a throwaway postgres and returns its DSN and a stop func.
func startContainer() (string, func(), error) {
	const (
		db   = "jobs-test"
		user = "jobs"
		pass = "jobs"
		port = "55432"
	)
	cmd := exec.Command("docker", "run", "-d", "--rm",
		"-p", port+":5432",
		"-e", "POSTGRES_DB="+db,
		"-e", "POSTGRES_USER="+user,
		"-e", "POSTGRES_PASSWORD="+pass,
		"postgres:14",
	)
	var out bytes.Buffer
	cmd.Stdout = &out
	if err := cmd.Run(); err != nil {
		return "", nil, fmt.Errorf("could not start postgres container: %w. Is Docker running?", err)
	}
	id := strings.TrimSpace(out.String())
	if len(id) > 12 {
		id = id[:12]
	}
	stop := func() {
		log.Println("Stopping test container...")
		if err := exec.Command("docker", "stop", id).Run(); err != nil {
			log.Printf("could not stop postgres container %s: %v", id, err)
		}
	}
	return fmt.Sprintf("postgres://%s:%s@localhost:%s/%s?sslmode=disable", user, pass, port, db), stop, nil
}

// TestMain uses TEST_DATABASE_URL when set and a docker container otherwise.
func TestMain(m *testing.M) {
	ctx := context.Background()

	dsn := os.Getenv("TEST_DATABASE_URL")
	stop := func() {}
	if dsn == "" {
		var err error
		dsn, stop, err = startContainer()
		if err != nil {
			log.Fatal(err)
		}
	}

	var err error
	const maxRetries = 15
	for i := 0; i < maxRetries; i++ {
		testPool, err = NewPgxPool(ctx, dsn, 4)
		if err == nil {
			break
		}
		log.Printf("Waiting for database to be ready... (attempt %d/%d)", i+1, maxRetries)
		time.Sleep(2 * time.Second)
	}
	if err != nil {
		stop()
		log.Fatalf("Unable to connect to test database after multiple retries: %v", err)
	}

	path, err := schemaPath()
	if err != nil {
		stop()
		log.Fatalf("Error finding schema: %v", err)
	}
	schema, err := os.ReadFile(path)
	if err != nil {
		stop()
		log.Fatalf("could not read %s: %v", path, err)
	}
	if _, err := testPool.Exec(ctx, string(schema)); err != nil {
		stop()
		log.Fatalf("could not apply schema: %v", err)
	}

	exitCode := m.Run()

	testPool.Close()
	stop()
	os.Exit(exitCode)
}

func cleanup(t *testing.T) {
	t.Helper()
	if _, err := testPool.Exec(context.Background(), `TRUNCATE jobs`); err != nil {
		t.Fatalf("Failed to clean up database: %v", err)
	}
}
