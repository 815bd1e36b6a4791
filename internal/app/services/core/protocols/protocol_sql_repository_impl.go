package protocols

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sisregip-service/internal/app/contracts"
	"sisregip-service/internal/app/models"
	"sisregip-service/internal/pkg/exceptions"
	"sisregip-service/internal/pkg/queries"
	"sisregip-service/internal/pkg/utils"
	"strings"
	"sync"
	"time"

	"github.com/lib/pq"
	"go.uber.org/zap"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

const (
	postgresUniqueViolation = "23505"
	protocolUniqueIndex     = "protocolo_prot_ativo_idx"
)

type protocolSQLRepository struct {
	DB     *sql.DB
	Driver string
	Log    *zap.Logger
}

var (
	protocolSQLRepositoryInstance contracts.ProtocolRepository
	onceProtocolSQLRepository     sync.Once
)

// NewProtocolSQLRepository serves both postgres and sqlite. Queries are
// written with $N placeholders and rebound for the configured driver.
func NewProtocolSQLRepository(db *sql.DB, driver string, logger *zap.Logger) contracts.ProtocolRepository {
	onceProtocolSQLRepository.Do(func() {
		protocolSQLRepositoryInstance = newProtocolSQLRepository(db, driver, logger)
	})
	return protocolSQLRepositoryInstance
}

func newProtocolSQLRepository(db *sql.DB, driver string, logger *zap.Logger) *protocolSQLRepository {
	return &protocolSQLRepository{
		DB:     db,
		Driver: driver,
		Log:    logger,
	}
}

func (r *protocolSQLRepository) FindAllActive(ctx context.Context) ([]models.Protocol, error) {
	return r.findMany(ctx, queries.GetActiveProtocols)
}

func (r *protocolSQLRepository) FindActiveByID(ctx context.Context, protocolID int64) (*models.Protocol, error) {
	var protocol models.Protocol
	row := r.DB.QueryRowContext(ctx, r.rebind(queries.GetActiveProtocolByID), protocolID)
	err := scanProtocol(row, &protocol)
	if err == sql.ErrNoRows {
		return nil, nil
	} else if err != nil {
		return nil, exceptions.ErrSQLDBFindData(err)
	}
	return &protocol, nil
}

func (r *protocolSQLRepository) FindForReport(ctx context.Context, start, end *time.Time) ([]models.Protocol, error) {
	if start == nil || end == nil {
		return r.findMany(ctx, queries.GetActiveProtocolsForReport)
	}
	return r.findMany(ctx, queries.GetActiveProtocolsForReportInRange, utils.ToISODate(start), utils.ToISODate(end))
}

func (r *protocolSQLRepository) Create(ctx context.Context, protocol *models.Protocol) (int64, error) {
	var protocolID int64
	err := r.withTx(ctx, func(tx *sql.Tx) error {
		subjectID, err := r.findOrCreateUsuario(ctx, tx, protocol.SubjectName, protocol.PMH)
		if err != nil {
			return err
		}
		receiverID, err := r.findOrCreateRecebedor(ctx, tx, protocol.ReceiverName)
		if err != nil {
			return err
		}

		err = tx.QueryRowContext(ctx, r.rebind(queries.InsertProtocol),
			protocol.Prot,
			nullableString(protocol.ProtocolDate),
			subjectID,
			nullableString(protocol.PMH),
			nullableString(protocol.DeliveryDate),
			receiverID,
		).Scan(&protocolID)
		if err != nil {
			if isProtocolUniqueViolation(err) {
				return exceptions.ErrProtocolAlreadyExists(err)
			}
			return exceptions.ErrSQLDBInsertData(err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return protocolID, nil
}

func (r *protocolSQLRepository) Update(ctx context.Context, protocol *models.Protocol) error {
	return r.withTx(ctx, func(tx *sql.Tx) error {
		subjectID, err := r.findOrCreateUsuario(ctx, tx, protocol.SubjectName, protocol.PMH)
		if err != nil {
			return err
		}
		receiverID, err := r.findOrCreateRecebedor(ctx, tx, protocol.ReceiverName)
		if err != nil {
			return err
		}

		result, err := tx.ExecContext(ctx, r.rebind(queries.UpdateProtocolByID),
			nullableString(protocol.ProtocolDate),
			subjectID,
			nullableString(protocol.PMH),
			nullableString(protocol.DeliveryDate),
			receiverID,
			protocol.ID,
		)
		if err != nil {
			return exceptions.ErrSQLDBUpdateData(err)
		}
		return requireAffected(result, protocol.ID)
	})
}

func (r *protocolSQLRepository) SoftDelete(ctx context.Context, protocolID int64) error {
	result, err := r.DB.ExecContext(ctx, r.rebind(queries.SoftDeleteProtocolByID), protocolID)
	if err != nil {
		return exceptions.ErrSQLDBUpdateData(err)
	}
	return requireAffected(result, protocolID)
}

func (r *protocolSQLRepository) findMany(ctx context.Context, query string, args ...interface{}) ([]models.Protocol, error) {
	rows, err := r.DB.QueryContext(ctx, r.rebind(query), args...)
	if err != nil {
		return nil, exceptions.ErrSQLDBFindData(err)
	}
	defer rows.Close()

	protocols := make([]models.Protocol, 0)
	for rows.Next() {
		var protocol models.Protocol
		if err := scanProtocol(rows, &protocol); err != nil {
			return nil, exceptions.ErrSQLDBFindData(err)
		}
		protocols = append(protocols, protocol)
	}

	if err := rows.Err(); err != nil {
		return nil, exceptions.ErrSQLDBFindData(err)
	}
	return protocols, nil
}

// findOrCreateUsuario returns nil for a blank name so the protocol keeps a
// NULL subject.
func (r *protocolSQLRepository) findOrCreateUsuario(ctx context.Context, tx *sql.Tx, name, pmh string) (interface{}, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, nil
	}
	return r.findOrCreate(ctx, tx, queries.GetUsuarioIDByName, queries.InsertUsuario, name, nullableString(pmh))
}

func (r *protocolSQLRepository) findOrCreateRecebedor(ctx context.Context, tx *sql.Tx, name string) (interface{}, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, nil
	}
	return r.findOrCreate(ctx, tx, queries.GetRecebedorIDByName, queries.InsertRecebedor, name)
}

func (r *protocolSQLRepository) findOrCreate(ctx context.Context, tx *sql.Tx, selectQuery, insertQuery, name string, extra ...interface{}) (interface{}, error) {
	var id int64
	err := tx.QueryRowContext(ctx, r.rebind(selectQuery), name).Scan(&id)
	if err == nil {
		return id, nil
	}
	if err != sql.ErrNoRows {
		return nil, exceptions.ErrSQLDBFindData(err)
	}

	args := append([]interface{}{name}, extra...)
	if err := tx.QueryRowContext(ctx, r.rebind(insertQuery), args...).Scan(&id); err != nil {
		return nil, exceptions.ErrSQLDBInsertData(err)
	}
	return id, nil
}

func (r *protocolSQLRepository) withTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return exceptions.ErrSQLDBBeginTx(err)
	}
	if err := fn(tx); err != nil {
		if rollbackErr := tx.Rollback(); rollbackErr != nil {
			r.Log.Error("protocolSQLRepository.withTx error rolling back", zap.Error(rollbackErr))
		}
		return err
	}
	if err := tx.Commit(); err != nil {
		return exceptions.ErrSQLDBCommitTx(err)
	}
	return nil
}

func (r *protocolSQLRepository) rebind(query string) string {
	return queries.Rebind(r.Driver, query)
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanProtocol(row rowScanner, protocol *models.Protocol) error {
	return row.Scan(
		&protocol.ID,
		&protocol.Prot,
		&protocol.ProtocolDate,
		&protocol.SubjectName,
		&protocol.PMH,
		&protocol.DeliveryDate,
		&protocol.ReceiverName,
	)
}

func requireAffected(result sql.Result, protocolID int64) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return exceptions.ErrSQLDBUpdateData(err)
	}
	if affected == 0 {
		return exceptions.ErrProtocolNotFound(fmt.Errorf("protocol %d", protocolID))
	}
	return nil
}

func nullableString(value string) interface{} {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	return value
}

func isProtocolUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == postgresUniqueViolation && pqErr.Constraint == protocolUniqueIndex
	}
	var sqliteErr *sqlite.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE && strings.Contains(sqliteErr.Error(), "protocolo.prot")
	}
	return false
}
