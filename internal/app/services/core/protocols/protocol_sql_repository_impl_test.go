package protocols

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"sisregip-service/internal/app/drivers/database"
	"sisregip-service/internal/app/models"
	"sisregip-service/internal/migration"
	"sisregip-service/internal/pkg/constvars"
	"sisregip-service/internal/pkg/exceptions"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestRepository(t *testing.T) (*protocolSQLRepository, *sql.DB) {
	t.Helper()
	db, err := database.OpenSQLite(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	_, err = migration.Up(db, constvars.DatabaseDriverSQLite)
	require.NoError(t, err)

	return newProtocolSQLRepository(db, constvars.DatabaseDriverSQLite, zap.NewNop()), db
}

func TestProtocolSQLRepository_CreateAndFind(t *testing.T) {
	ctx := context.Background()
	repo, _ := newTestRepository(t)

	id, err := repo.Create(ctx, &models.Protocol{
		Prot:         "2024-001",
		ProtocolDate: "2024-03-01",
		SubjectName:  "JOAO DA SILVA",
		PMH:          "PMH-9",
		ReceiverName: "",
	})
	require.NoError(t, err)
	assert.Greater(t, id, int64(0))

	found, err := repo.FindActiveByID(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, models.Protocol{
		ID:           id,
		Prot:         "2024-001",
		ProtocolDate: "2024-03-01",
		SubjectName:  "JOAO DA SILVA",
		PMH:          "PMH-9",
	}, *found)
	assert.Equal(t, models.ProtocolStatusPending, found.Status())

	missing, err := repo.FindActiveByID(ctx, id+100)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestProtocolSQLRepository_FindAllActiveOrdering(t *testing.T) {
	ctx := context.Background()
	repo, _ := newTestRepository(t)

	for _, p := range []models.Protocol{
		{Prot: "A", ProtocolDate: "2024-01-10"},
		{Prot: "B"},
		{Prot: "C", ProtocolDate: "2024-05-02"},
	} {
		p := p
		_, err := repo.Create(ctx, &p)
		require.NoError(t, err)
	}

	protocols, err := repo.FindAllActive(ctx)
	require.NoError(t, err)
	require.Len(t, protocols, 3)
	assert.Equal(t, []string{"C", "A", "B"}, []string{protocols[0].Prot, protocols[1].Prot, protocols[2].Prot})
}

func TestProtocolSQLRepository_ReusesSubjectAndReceiver(t *testing.T) {
	ctx := context.Background()
	repo, db := newTestRepository(t)

	for _, prot := range []string{"1", "2"} {
		_, err := repo.Create(ctx, &models.Protocol{Prot: prot, SubjectName: "MARIA", ReceiverName: "ANA"})
		require.NoError(t, err)
	}

	var usuarios, recebedores int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM usuario").Scan(&usuarios))
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM recebedor").Scan(&recebedores))
	assert.Equal(t, 1, usuarios)
	assert.Equal(t, 1, recebedores)
}

func TestProtocolSQLRepository_DuplicateActiveProt(t *testing.T) {
	ctx := context.Background()
	repo, _ := newTestRepository(t)

	id, err := repo.Create(ctx, &models.Protocol{Prot: "DUP"})
	require.NoError(t, err)

	_, err = repo.Create(ctx, &models.Protocol{Prot: "DUP"})
	var customErr *exceptions.CustomError
	require.True(t, errors.As(err, &customErr))
	assert.Equal(t, constvars.StatusConflict, customErr.StatusCode)

	require.NoError(t, repo.SoftDelete(ctx, id))
	_, err = repo.Create(ctx, &models.Protocol{Prot: "DUP"})
	assert.NoError(t, err)
}

func TestProtocolSQLRepository_UpdateKeepsProt(t *testing.T) {
	ctx := context.Background()
	repo, _ := newTestRepository(t)

	id, err := repo.Create(ctx, &models.Protocol{Prot: "P1", SubjectName: "MARIA"})
	require.NoError(t, err)

	err = repo.Update(ctx, &models.Protocol{
		ID:           id,
		Prot:         "IGNORED",
		ProtocolDate: "2024-02-01",
		SubjectName:  "MARIA",
		DeliveryDate: "2024-02-10",
		ReceiverName: "ANA",
	})
	require.NoError(t, err)

	found, err := repo.FindActiveByID(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "P1", found.Prot)
	assert.Equal(t, "2024-02-10", found.DeliveryDate)
	assert.Equal(t, "ANA", found.ReceiverName)
	assert.Equal(t, models.ProtocolStatusDelivered, found.Status())
}

func TestProtocolSQLRepository_MissingRowsAreNotFound(t *testing.T) {
	ctx := context.Background()
	repo, _ := newTestRepository(t)

	for name, err := range map[string]error{
		"update": repo.Update(ctx, &models.Protocol{ID: 99, Prot: "X"}),
		"delete": repo.SoftDelete(ctx, 99),
	} {
		var customErr *exceptions.CustomError
		require.True(t, errors.As(err, &customErr), name)
		assert.Equal(t, constvars.StatusNotFound, customErr.StatusCode, name)
	}
}

func TestProtocolSQLRepository_FindForReport(t *testing.T) {
	ctx := context.Background()
	repo, _ := newTestRepository(t)

	for _, p := range []models.Protocol{
		{Prot: "B", ProtocolDate: "2024-03-31"},
		{Prot: "A", ProtocolDate: "2024-03-01"},
		{Prot: "C", ProtocolDate: "2024-04-01"},
		{Prot: "D"},
	} {
		p := p
		_, err := repo.Create(ctx, &p)
		require.NoError(t, err)
	}

	all, err := repo.FindForReport(ctx, nil, nil)
	require.NoError(t, err)
	assert.Len(t, all, 4)
	assert.Equal(t, "A", all[0].Prot)

	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)
	march, err := repo.FindForReport(ctx, &start, &end)
	require.NoError(t, err)
	require.Len(t, march, 2)
	assert.Equal(t, "A", march[0].Prot)
	assert.Equal(t, "B", march[1].Prot)
}
