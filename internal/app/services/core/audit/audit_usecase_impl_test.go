package audit

import (
	"context"
	"errors"
	"testing"
	"time"

	"sisregip-service/internal/app/models"
	"sisregip-service/internal/pkg/constvars"
	"sisregip-service/internal/pkg/dto/requests"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type mockAuditRepository struct {
	mock.Mock
}

func (m *mockAuditRepository) Create(ctx context.Context, event *models.AuditEvent) (int64, error) {
	args := m.Called(ctx, event)
	return args.Get(0).(int64), args.Error(1)
}

type mockAuditQueue struct {
	mock.Mock
}

func (m *mockAuditQueue) Publish(ctx context.Context, event *models.AuditEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func newTestAuditUsecase(repo *mockAuditRepository, queue *mockAuditQueue) *auditUsecase {
	uc := &auditUsecase{
		AuditRepository: repo,
		Log:             zap.NewNop(),
		now:             func() time.Time { return time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC) },
	}
	if queue != nil {
		uc.AuditQueue = queue
	}
	return uc
}

func TestAuditUsecase_RegisterStoresAndPublishes(t *testing.T) {
	repo := new(mockAuditRepository)
	queue := new(mockAuditQueue)
	uc := newTestAuditUsecase(repo, queue)

	matchEvent := mock.MatchedBy(func(event *models.AuditEvent) bool {
		return event.Operator == "MARIA" &&
			event.Action == constvars.AuditActionSessionStart &&
			event.Details == constvars.AuditDetailsSessionStart &&
			event.EventID != ""
	})
	repo.On("Create", mock.Anything, matchEvent).Return(int64(7), nil)
	queue.On("Publish", mock.Anything, mock.MatchedBy(func(event *models.AuditEvent) bool {
		return event.ID == 7
	})).Return(nil)

	err := uc.Register(context.Background(), &requests.RegisterAudit{
		Operator: "MARIA",
		Action:   constvars.AuditActionSessionStart,
		Details:  constvars.AuditDetailsSessionStart,
	})
	require.NoError(t, err)
	repo.AssertExpectations(t)
	queue.AssertExpectations(t)
}

func TestAuditUsecase_RegisterRepositoryError(t *testing.T) {
	repo := new(mockAuditRepository)
	queue := new(mockAuditQueue)
	uc := newTestAuditUsecase(repo, queue)

	repo.On("Create", mock.Anything, mock.Anything).Return(int64(0), errors.New("db down"))

	err := uc.Register(context.Background(), &requests.RegisterAudit{Operator: "MARIA", Action: "X"})
	assert.Error(t, err)
	queue.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}

func TestAuditUsecase_PublishFailureIsNotFatal(t *testing.T) {
	repo := new(mockAuditRepository)
	queue := new(mockAuditQueue)
	uc := newTestAuditUsecase(repo, queue)

	repo.On("Create", mock.Anything, mock.Anything).Return(int64(1), nil)
	queue.On("Publish", mock.Anything, mock.Anything).Return(errors.New("broker gone"))

	err := uc.Register(context.Background(), &requests.RegisterAudit{Operator: "MARIA", Action: "X"})
	assert.NoError(t, err)
}

func TestAuditUsecase_RecordSwallowsErrors(t *testing.T) {
	repo := new(mockAuditRepository)
	uc := newTestAuditUsecase(repo, nil)

	repo.On("Create", mock.Anything, mock.Anything).Return(int64(0), errors.New("db down"))

	assert.NotPanics(t, func() {
		uc.Record(context.Background(), "MARIA", constvars.AuditActionProtocolCreated, "PROT: 1")
	})
	repo.AssertNumberOfCalls(t, "Create", 1)
}
