package postgres

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/konstantinfoerster/deck-diff-go/internal/config"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	containerImage = "postgres:17-alpine3.20"
	containerPort  = "5432"
)

// NewRunner creates a runner for the read only catalog schema. The credentials of cfg are used for the
// application user, empty fields fall back to test defaults.
func NewRunner(cfg ...config.Database) *DatabaseRunner {
	dbCfg := config.Database{
		Username: "tester",
		Password: "tester",
		Database: "cards",
	}
	if len(cfg) > 0 {
		dbCfg = withDefaults(cfg[0], dbCfg)
	}

	return &DatabaseRunner{
		cfg: dbCfg,
	}
}

func withDefaults(cfg config.Database, defaults config.Database) config.Database {
	if cfg.Username == "" {
		cfg.Username = defaults.Username
	}
	if cfg.Password == "" {
		cfg.Password = defaults.Password
	}
	if cfg.Database == "" {
		cfg.Database = defaults.Database
	}

	return cfg
}

// DatabaseRunner Starts a postgres container with the catalog schema for integration tests.
// The schema is created by the scripts in testdata/db, in file name order.
type DatabaseRunner struct {
	cfg  config.Database
	conn *DBConnection
}

// Run starts the container, runs the tests and terminates the container afterwards.
func (r *DatabaseRunner) Run(t *testing.T, runTests func(t *testing.T)) {
	t.Helper()

	ctx := context.Background()
	if err := r.withContainer(ctx, func() (err error) {
		conn, err := connect(ctx, r.cfg, false)
		if err != nil {
			return err
		}
		defer func() {
			if cErr := conn.Close(); cErr != nil {
				err = joinErr(err, cErr)
			}
		}()
		r.conn = conn

		runTests(t)

		return nil
	}); err != nil {
		t.Fatalf("failed to run postgres container %v", err)
	}
}

// Connection returns a writable connection to seed test data.
func (r *DatabaseRunner) Connection() *DBConnection {
	return r.conn
}

// Config returns the connection settings of the running container.
func (r *DatabaseRunner) Config() config.Database {
	return r.cfg
}

// Cleanup truncates all catalog tables, meant for t.Cleanup.
func (r *DatabaseRunner) Cleanup(t *testing.T) func() {
	t.Helper()

	return func() {
		if err := r.conn.Cleanup(context.Background()); err != nil {
			t.Fatalf("failed to cleanup database %v", err)
		}
	}
}

func (r *DatabaseRunner) withContainer(ctx context.Context, f func() error) (err error) {
	scripts, err := initScripts()
	if err != nil {
		return err
	}

	c, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        containerImage,
			ExposedPorts: []string{containerPort + "/tcp"},
			Files:        scripts,
			Env: map[string]string{
				"POSTGRES_DB":       "postgres",
				"POSTGRES_PASSWORD": "test",
				"APP_DB_USER":       r.cfg.Username,
				"APP_DB_PASS":       r.cfg.Password,
				"APP_DB_NAME":       r.cfg.Database,
			},
			// the entrypoint restarts the server once after running the init scripts
			WaitingFor: wait.ForLog("database system is ready to accept connections").WithOccurrence(2),
		},
		Started: true,
	})
	if err != nil {
		return fmt.Errorf("failed to start container %w", err)
	}
	defer func() {
		if cErr := c.Terminate(ctx); cErr != nil {
			err = joinErr(err, cErr)
		}
	}()

	if err := logContainer(ctx, c); err != nil {
		return err
	}

	host, err := c.Host(ctx)
	if err != nil {
		return err
	}
	port, err := c.MappedPort(ctx, containerPort)
	if err != nil {
		return err
	}
	r.cfg.Host = host
	r.cfg.Port = port.Port()

	return f()
}

func initScripts() ([]testcontainers.ContainerFile, error) {
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		return nil, fmt.Errorf("failed to get current dir")
	}

	dbDir, err := filepath.EvalSymlinks(filepath.Join(filepath.Dir(file), "testdata", "db"))
	if err != nil {
		return nil, err
	}
	paths, err := filepath.Glob(filepath.Join(dbDir, "*"))
	if err != nil {
		return nil, err
	}

	var scriptPermissions int64 = 0o755
	scripts := make([]testcontainers.ContainerFile, 0, len(paths))
	for _, p := range paths {
		scripts = append(scripts, testcontainers.ContainerFile{
			HostFilePath:      p,
			ContainerFilePath: "/docker-entrypoint-initdb.d/" + filepath.Base(p),
			FileMode:          scriptPermissions,
		})
	}

	return scripts, nil
}

func logContainer(ctx context.Context, c testcontainers.Container) error {
	e := log.Debug()
	if !e.Enabled() {
		return nil
	}

	logs, err := c.Logs(ctx)
	if err != nil {
		return err
	}
	defer logs.Close()

	b, err := io.ReadAll(logs)
	if err != nil {
		return err
	}
	e.Msg(string(b))

	return nil
}

func joinErr(err error, cErr error) error {
	if err == nil {
		return cErr
	}

	return errors.Wrap(err, cErr.Error())
}
