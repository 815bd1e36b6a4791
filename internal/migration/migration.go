package migration

import (
	"database/sql"
	"embed"
	"fmt"
	"sisregip-service/internal/pkg/constvars"

	migrate "github.com/rubenv/sql-migrate"
)

//go:embed postgres/*.sql sqlite/*.sql
var migrationFiles embed.FS

type Status struct {
	ID      string
	Applied bool
}

func source(driver string) *migrate.EmbedFileSystemMigrationSource {
	return &migrate.EmbedFileSystemMigrationSource{
		FileSystem: migrationFiles,
		Root:       driver,
	}
}

func dialect(driver string) (string, error) {
	switch driver {
	case constvars.DatabaseDriverPostgres:
		return "postgres", nil
	case constvars.DatabaseDriverSQLite:
		return "sqlite3", nil
	default:
		return "", fmt.Errorf("unsupported database driver %q", driver)
	}
}

// Up applies every pending migration and returns how many ran.
func Up(db *sql.DB, driver string) (int, error) {
	d, err := dialect(driver)
	if err != nil {
		return 0, err
	}
	return migrate.Exec(db, d, source(driver), migrate.Up)
}

// Down rolls back at most steps migrations.
func Down(db *sql.DB, driver string, steps int) (int, error) {
	d, err := dialect(driver)
	if err != nil {
		return 0, err
	}
	return migrate.ExecMax(db, d, source(driver), migrate.Down, steps)
}

func ListStatus(db *sql.DB, driver string) ([]Status, error) {
	d, err := dialect(driver)
	if err != nil {
		return nil, err
	}

	migrations, err := source(driver).FindMigrations()
	if err != nil {
		return nil, err
	}

	records, err := migrate.GetMigrationRecords(db, d)
	if err != nil {
		return nil, err
	}

	applied := make(map[string]bool, len(records))
	for _, record := range records {
		applied[record.Id] = true
	}

	statuses := make([]Status, 0, len(migrations))
	for _, m := range migrations {
		statuses = append(statuses, Status{ID: m.Id, Applied: applied[m.Id]})
	}
	return statuses, nil
}
