package secretaria

import (
	"context"
	"errors"
	"testing"

	"sisregip-service/internal/app/drivers/database"
	"sisregip-service/internal/app/models"
	"sisregip-service/internal/app/services/shared/redis"
	"sisregip-service/internal/migration"
	"sisregip-service/internal/pkg/constvars"
	"sisregip-service/internal/pkg/dto/responses"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type mockSecretaryRepository struct {
	mock.Mock
}

func (m *mockSecretaryRepository) FindAll(ctx context.Context) ([]models.SecretaryRecord, error) {
	args := m.Called(ctx)
	records, _ := args.Get(0).([]models.SecretaryRecord)
	return records, args.Error(1)
}

func TestSecretaryUsecase_CachesSuccessfulLoad(t *testing.T) {
	repo := new(mockSecretaryRepository)
	repo.On("FindAll", mock.Anything).Return([]models.SecretaryRecord{
		{Protocolo: "10", Prontuario: "55", Nome: "ANA", DataProt: "01/02/2024"},
	}, nil).Once()

	uc := &secretaryUsecase{SecretaryRepository: repo, RedisRepository: redis.NewMemoryRepository(), Log: zap.NewNop()}

	for i := 0; i < 2; i++ {
		got, err := uc.FindAll(context.Background())
		require.NoError(t, err)
		assert.Equal(t, []responses.SecretaryRecord{
			{Protocolo: "10", Prontuario: "55", Nome: "ANA", DataProt: "01/02/2024"},
		}, got)
	}
	repo.AssertNumberOfCalls(t, "FindAll", 1)
}

func TestSecretaryUsecase_FailureIsNotCached(t *testing.T) {
	repo := new(mockSecretaryRepository)
	repo.On("FindAll", mock.Anything).Return(nil, errors.New("db down")).Once()
	repo.On("FindAll", mock.Anything).Return([]models.SecretaryRecord{}, nil).Once()

	uc := &secretaryUsecase{SecretaryRepository: repo, RedisRepository: redis.NewMemoryRepository(), Log: zap.NewNop()}

	_, err := uc.FindAll(context.Background())
	assert.Error(t, err)

	got, err := uc.FindAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, got)
	repo.AssertNumberOfCalls(t, "FindAll", 2)
}

func TestSecretarySQLRepository_FindAll(t *testing.T) {
	db, err := database.OpenSQLite(":memory:")
	require.NoError(t, err)
	defer db.Close()
	_, err = migration.Up(db, constvars.DatabaseDriverSQLite)
	require.NoError(t, err)

	_, err = db.Exec(`INSERT INTO secretaria_protocolo (protocolo, prontuario, nome, data_prot, finalidade, alta, obs)
		VALUES ('1', '100', 'ANA', '2024-01-05', 'LAUDO', NULL, 'x < y')`)
	require.NoError(t, err)

	repo := &secretarySQLRepository{DB: db, Log: zap.NewNop()}
	records, err := repo.FindAll(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, models.SecretaryRecord{
		Protocolo: "1", Prontuario: "100", Nome: "ANA", DataProt: "2024-01-05", Finalidade: "LAUDO", Obs: "x < y",
	}, records[0])
}
