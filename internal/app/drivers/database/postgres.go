package database

import (
	"database/sql"
	"fmt"
	"log"
	"sisregip-service/internal/app/config"

	_ "github.com/lib/pq"
)

func NewPostgresDB(driverConfig *config.DriverConfig) *sql.DB {
	if driverConfig.Database.Password == "" {
		log.Fatalf("Database password is not configured, set DB_PASSWORD in the .env file")
	}

	connectionString := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable client_encoding=UTF8",
		driverConfig.Database.Host,
		driverConfig.Database.Port,
		driverConfig.Database.Username,
		driverConfig.Database.Password,
		driverConfig.Database.Name)

	db, err := sql.Open("postgres", connectionString)
	if err != nil {
		log.Fatalf("Failed to open postgres database connection: %s", err.Error())
	}

	err = db.Ping()
	if err != nil {
		log.Fatalf("Failed to connect to postgres database: %s", err.Error())
	}

	log.Println("Successfully connected to postgres database")

	return db
}
