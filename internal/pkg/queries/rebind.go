package queries

import (
	"regexp"
	"sisregip-service/internal/pkg/constvars"
)

var postgresPlaceholder = regexp.MustCompile(`\$(\d+)`)

// Rebind rewrites $N placeholders to ?N for SQLite, which binds ?NNN by
// position just like Postgres binds $N.
func Rebind(driver, query string) string {
	if driver != constvars.DatabaseDriverSQLite {
		return query
	}
	return postgresPlaceholder.ReplaceAllString(query, "?$1")
}
