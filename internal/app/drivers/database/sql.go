package database

import (
	"database/sql"
	"log"
	"sisregip-service/internal/app/config"
	"sisregip-service/internal/pkg/constvars"
)

// NewSQLDatabase opens the protocol store selected by DB_DRIVER.
func NewSQLDatabase(driverConfig *config.DriverConfig) *sql.DB {
	switch driverConfig.Database.Driver {
	case constvars.DatabaseDriverPostgres:
		return NewPostgresDB(driverConfig)
	case constvars.DatabaseDriverSQLite:
		return NewSQLiteDB(driverConfig)
	default:
		log.Fatalf("Unsupported DB_DRIVER %q, expected %s or %s", driverConfig.Database.Driver, constvars.DatabaseDriverPostgres, constvars.DatabaseDriverSQLite)
		return nil
	}
}
