// Package helper runs the SQL migrations under migrations/postgres against the write database.
package helper

//nolint:revive
import (
	"errors"
	"fmt"
	"net/url"

	"afristay/config"
	"afristay/infras/postgres"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/rs/zerolog/log"
)

const (
	ActionUp     = "up"
	ActionDown   = "down"
	ActionStepUp = "step-up"
	ActionDrop   = "drop"

	migrationsSource = "file://migrations/postgres"
)

var ErrUnknownAction = errors.New("unknown migration action")

type step struct {
	run  func(*migrate.Migrate) error
	done string
}

var steps = map[string]step{
	ActionUp:     {run: (*migrate.Migrate).Up, done: "Database migrations completed successfully"},
	ActionStepUp: {run: func(m *migrate.Migrate) error { return m.Steps(1) }, done: "Database migrated one step up"},
	ActionDown:   {run: func(m *migrate.Migrate) error { return m.Steps(-1) }, done: "Database migrations rolled back one step"},
	ActionDrop:   {run: (*migrate.Migrate).Down, done: "Database migrations rolled back completely"},
}

// ConnectionString is the write endpoint DSN with the migrations table set.
func ConnectionString(cfg *config.Config) string {
	params := url.Values{}
	if table := cfg.DB.Postgres.MigrationTable; table != "" {
		params.Set("x-migrations-table", table)
	}

	return postgres.WriteEndpoint(cfg).DSN(params)
}

// Runner applies action. An already current schema is not an error.
func Runner(cfg *config.Config, action string) error {
	act, ok := steps[action]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownAction, action)
	}

	mig, err := migrate.New(migrationsSource, ConnectionString(cfg))
	if err != nil {
		return fmt.Errorf("error creating migrate instance: %w", err)
	}

	defer mig.Close()

	if err := act.run(mig); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("error running %s migration: %w", action, err)
	}

	log.Info().Str("action", action).Msg(act.done)

	return nil
}

func Up(cfg *config.Config) error {
	return Runner(cfg, ActionUp)
}
