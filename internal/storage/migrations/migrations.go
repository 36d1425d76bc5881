package migrations

import (
	"embed"
	"errors"
	"fmt"
	"net/url"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/mongodb"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	"github.com/carson-networks/expense-tracker/internal/storage"
)

//go:embed *.json
var files embed.FS

// Up applies every pending migration against the database named in uri and reports the schema
// version before and after.
func Up(uri string) (preMigrationVersion uint, postMigrationVersion uint, err error) {
	m, err := newMigrate(uri)
	if err != nil {
		return 0, 0, err
	}
	defer m.Close()

	preMigrationVersion, _, err = m.Version()
	if err != nil && errors.Is(err, migrate.ErrNilVersion) {
		preMigrationVersion = 0
	} else if err != nil {
		return 0, 0, fmt.Errorf("migrations: version before: %w", err)
	}

	err = m.Up()
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return preMigrationVersion, 0, fmt.Errorf("migrations: up: %w", err)
	}

	postMigrationVersion, _, err = m.Version()
	if err != nil {
		return preMigrationVersion, 0, fmt.Errorf("migrations: version after: %w", err)
	}

	return preMigrationVersion, postMigrationVersion, nil
}

func newMigrate(uri string) (*migrate.Migrate, error) {
	src, err := iofs.New(files, ".")
	if err != nil {
		return nil, fmt.Errorf("migrations: source: %w", err)
	}

	databaseURL, err := withDatabase(uri)
	if err != nil {
		return nil, err
	}

	m, err := migrate.NewWithSourceInstance("iofs", src, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("migrations: open: %w", err)
	}
	return m, nil
}

// withDatabase makes sure the URI path names the database the service uses.
func withDatabase(uri string) (string, error) {
	u, err := url.Parse(uri)
	if err != nil {
		return "", fmt.Errorf("migrations: parse uri: %w", err)
	}
	u.Path = "/" + storage.DatabaseFromURI(uri)
	return u.String(), nil
}
