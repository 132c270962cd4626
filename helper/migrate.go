// Package helper drives golang-migrate over migrations/postgres for the
// migrate command and for AUTO_MIGRATE on app start.
package helper

//nolint:revive
import (
	"errors"
	"fmt"
	"net/url"
	"slices"
	"strings"

	"campusroom/config"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/rs/zerolog/log"
)

const migrationsSource = "file://migrations/postgres"

type action func(mig *migrate.Migrate) error

var actions = map[string]action{
	"up":      func(mig *migrate.Migrate) error { return mig.Up() },
	"down":    func(mig *migrate.Migrate) error { return mig.Steps(-1) },
	"step-up": func(mig *migrate.Migrate) error { return mig.Steps(1) },
	"drop":    func(mig *migrate.Migrate) error { return mig.Down() },
	"version": func(mig *migrate.Migrate) error {
		version, dirty, err := mig.Version()
		if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
			return err
		}

		log.Info().Uint("version", version).Bool("dirty", dirty).Msg("Current database migration version")

		return nil
	},
}

// Actions lists the accepted action names in a stable order.
func Actions() string {
	names := make([]string, 0, len(actions))
	for name := range actions {
		names = append(names, name)
	}

	slices.Sort(names)

	return strings.Join(names, ", ")
}

func open(cfg *config.Config) (*migrate.Migrate, error) {
	pg := cfg.DB.Postgres

	mig, err := migrate.New(migrationsSource, pg.Write.URL(pg.Prefix, url.Values{"x-migrations-table": {pg.MigrationTable}}))
	if err != nil {
		return nil, fmt.Errorf("error creating migrate instance: %w", err)
	}

	return mig, nil
}

// Runner applies one named action against the write database. Having nothing
// to apply is not an error.
func Runner(cfg *config.Config, name string) error {
	run, ok := actions[name]
	if !ok {
		return fmt.Errorf("unknown migration action %q, use one of %s", name, Actions())
	}

	mig, err := open(cfg)
	if err != nil {
		return err
	}

	defer mig.Close()

	if err = run(mig); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migration %s failed: %w", name, err)
	}

	log.Info().Str("action", name).Msg("Database migration finished")

	return nil
}
