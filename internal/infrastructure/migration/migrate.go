// Package migration applies the embedded schema migrations.
package migration

import (
	"embed"
	"errors"
	"fmt"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	// Blank imports register the database drivers for migrations
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed sql/postgres/*.sql sql/sqlite/*.sql
var migrations embed.FS

const (
	driverPostgres = "postgres"
	driverSQLite   = "sqlite"
)

// Migrator is the subset of migrate.Migrate used here.
type Migrator interface {
	Up() error
	Down() error
	Version() (uint, bool, error)
	Close() (error, error)
}

// MigrationEngine builds a Migrator, so tests can avoid a real database.
type MigrationEngine func(driver, databaseURI string) (Migrator, error)

type Migration struct {
	driver      string
	databaseURI string
	engine      MigrationEngine
}

func NewMigration(driver, databaseURI string, engine MigrationEngine) *Migration {
	return &Migration{
		driver:      driver,
		databaseURI: databaseURI,
		engine:      engine,
	}
}

// DefaultEngine reads the embedded scripts for the driver.
func DefaultEngine(driver, databaseURI string) (Migrator, error) {
	dir, url, err := target(driver, databaseURI)
	if err != nil {
		return nil, err
	}

	src, err := iofs.New(migrations, dir)
	if err != nil {
		return nil, fmt.Errorf("open migrations %s: %w", dir, err)
	}

	return migrate.NewWithSourceInstance("iofs", src, url)
}

func target(driver, databaseURI string) (string, string, error) {
	switch driver {
	case driverPostgres:
		return "sql/postgres", databaseURI, nil
	case driverSQLite:
		if !strings.HasPrefix(databaseURI, "sqlite3://") {
			databaseURI = "sqlite3://" + databaseURI
		}
		return "sql/sqlite", databaseURI, nil
	default:
		return "", "", fmt.Errorf("unsupported migration driver %q", driver)
	}
}

func (mg *Migration) Up() error {
	return mg.run(func(m Migrator) error { return m.Up() })
}

func (mg *Migration) Down() error {
	return mg.run(func(m Migrator) error { return m.Down() })
}

// Version reports the applied schema version. Zero means no migration ran.
func (mg *Migration) Version() (version uint, dirty bool, err error) {
	err = mg.run(func(m Migrator) error {
		v, d, verr := m.Version()
		if errors.Is(verr, migrate.ErrNilVersion) {
			return nil
		}
		version, dirty = v, d
		return verr
	})
	return version, dirty, err
}

func (mg *Migration) run(step func(Migrator) error) (err error) {
	m, err := mg.engine(mg.driver, mg.databaseURI)
	if err != nil {
		return err
	}
	defer func() {
		serr, dberr := m.Close()
		if serr != nil {
			if err != nil {
				err = fmt.Errorf("%w; migration source error: %v", err, serr)
			} else {
				err = serr
			}
		}
		if dberr != nil {
			if err != nil {
				err = fmt.Errorf("%w; migration database error: %v", err, dberr)
			} else {
				err = dberr
			}
		}
	}()

	if err := step(m); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migrate %s: %w", mg.driver, err)
	}
	return nil
}
