package secretaria

import (
	"context"
	"database/sql"
	"sisregip-service/internal/app/contracts"
	"sisregip-service/internal/app/models"
	"sisregip-service/internal/pkg/exceptions"
	"sisregip-service/internal/pkg/queries"
	"sync"

	"go.uber.org/zap"
)

type secretarySQLRepository struct {
	DB  *sql.DB
	Log *zap.Logger
}

var (
	secretarySQLRepositoryInstance contracts.SecretaryRepository
	onceSecretarySQLRepository     sync.Once
)

func NewSecretarySQLRepository(db *sql.DB, logger *zap.Logger) contracts.SecretaryRepository {
	onceSecretarySQLRepository.Do(func() {
		secretarySQLRepositoryInstance = &secretarySQLRepository{
			DB:  db,
			Log: logger,
		}
	})
	return secretarySQLRepositoryInstance
}

func (r *secretarySQLRepository) FindAll(ctx context.Context) ([]models.SecretaryRecord, error) {
	rows, err := r.DB.QueryContext(ctx, queries.GetAllSecretaryRecords)
	if err != nil {
		return nil, exceptions.ErrSQLDBFindData(err)
	}
	defer rows.Close()

	records := make([]models.SecretaryRecord, 0)
	for rows.Next() {
		var record models.SecretaryRecord
		err := rows.Scan(
			&record.Protocolo,
			&record.Prontuario,
			&record.Nome,
			&record.DataProt,
			&record.Finalidade,
			&record.Alta,
			&record.Obs,
		)
		if err != nil {
			return nil, exceptions.ErrSQLDBFindData(err)
		}
		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, exceptions.ErrSQLDBFindData(err)
	}
	return records, nil
}
