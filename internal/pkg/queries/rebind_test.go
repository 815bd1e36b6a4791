package queries

import (
	"sisregip-service/internal/pkg/constvars"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRebind(t *testing.T) {
	query := "UPDATE protocolo SET pmh = $1 WHERE id = $12"

	assert.Equal(t, query, Rebind(constvars.DatabaseDriverPostgres, query))
	assert.Equal(t, "UPDATE protocolo SET pmh = ?1 WHERE id = ?12", Rebind(constvars.DatabaseDriverSQLite, query))
}
