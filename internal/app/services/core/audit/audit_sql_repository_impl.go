package audit

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

type auditSQLRepository struct {
	DB     *sql.DB
	Driver string
	Log    *zap.Logger
}

var (
	auditSQLRepositoryInstance contracts.AuditRepository
	onceAuditSQLRepository     sync.Once
)

func NewAuditSQLRepository(db *sql.DB, driver string, logger *zap.Logger) contracts.AuditRepository {
	onceAuditSQLRepository.Do(func() {
		auditSQLRepositoryInstance = &auditSQLRepository{
			DB:     db,
			Driver: driver,
			Log:    logger,
		}
	})
	return auditSQLRepositoryInstance
}

func (r *auditSQLRepository) Create(ctx context.Context, event *models.AuditEvent) (int64, error) {
	var auditID int64
	err := r.DB.QueryRowContext(ctx, queries.Rebind(r.Driver, queries.InsertAudit),
		event.Operator,
		event.Action,
		event.Details,
		event.CreatedAt,
	).Scan(&auditID)
	if err != nil {
		return 0, exceptions.ErrSQLDBInsertData(err)
	}
	return auditID, nil
}
