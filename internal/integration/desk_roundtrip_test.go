// Package integration drives the desk components against the real HTTP stack
// backed by an in-memory SQLite database.
package integration

import (
	"context"
	"database/sql"
	"io"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"sisregip-service/internal/app/config"
	"sisregip-service/internal/app/delivery/http/controllers"
	"sisregip-service/internal/app/delivery/http/middlewares"
	"sisregip-service/internal/app/delivery/http/routers"
	"sisregip-service/internal/app/desk/board"
	"sisregip-service/internal/app/desk/gate"
	"sisregip-service/internal/app/desk/session"
	"sisregip-service/internal/app/drivers/database"
	"sisregip-service/internal/app/services/core/audit"
	"sisregip-service/internal/app/services/core/protocols"
	"sisregip-service/internal/migration"
	"sisregip-service/internal/pkg/apiclient"
	"sisregip-service/internal/pkg/constvars"

	"github.com/go-chi/chi/v5"
	"github.com/google/go-cmp/cmp"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type recordingPorts struct {
	mu       sync.Mutex
	alerts   []string
	navigate []string
}

func (r *recordingPorts) Alert(_ context.Context, message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.alerts = append(r.alerts, message)
}

func (r *recordingPorts) Confirm(context.Context, string) bool { return true }

func (r *recordingPorts) Navigate(_ context.Context, target string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.navigate = append(r.navigate, target)
}

func (r *recordingPorts) lastAlert() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.alerts) == 0 {
		return ""
	}
	return r.alerts[len(r.alerts)-1]
}

func newBackend(t *testing.T) (*httptest.Server, *sql.DB) {
	t.Helper()

	db, err := database.OpenSQLite(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	_, err = migration.Up(db, constvars.DatabaseDriverSQLite)
	require.NoError(t, err)

	logger := zap.NewNop()
	auditUsecase := audit.NewAuditUsecase(audit.NewAuditSQLRepository(db, constvars.DatabaseDriverSQLite, logger), nil, logger)
	protocolUsecase := protocols.NewProtocolUsecase(protocols.NewProtocolSQLRepository(db, constvars.DatabaseDriverSQLite, logger), auditUsecase, logger)

	internalConfig := &config.InternalConfig{App: config.App{MaxRequests: 1000}}
	router := chi.NewRouter()
	routers.SetupRoutes(router, internalConfig,
		middlewares.NewMiddlewares(logger, internalConfig, nil),
		middlewares.NewRateLimiter(10, time.Minute, time.Minute, logger),
		routers.Controllers{
			Protocol:  &controllers.ProtocolController{Log: logger, ProtocolUsecase: protocolUsecase, Timeout: 5 * time.Second},
			Audit:     &controllers.AuditController{Log: logger, AuditUsecase: auditUsecase, Timeout: 5 * time.Second},
			Secretary: &controllers.SecretaryController{Log: logger, Timeout: time.Second},
			Report:    &controllers.ReportController{Log: logger, Timeout: time.Second},
			PDF:       &controllers.PDFController{Log: logger, Timeout: time.Second},
			Changelog: &controllers.ChangelogController{Log: logger, Timeout: time.Second},
		},
	)

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)
	return server, db
}

type auditRow struct {
	Operator string
	Action   string
}

func auditRows(t *testing.T, db *sql.DB) []auditRow {
	t.Helper()
	rows, err := db.Query(`SELECT operador, acao FROM auditoria ORDER BY id`)
	require.NoError(t, err)
	defer rows.Close()

	var result []auditRow
	for rows.Next() {
		var row auditRow
		require.NoError(t, rows.Scan(&row.Operator, &row.Action))
		result = append(result, row)
	}
	require.NoError(t, rows.Err())
	return result
}

// The usecases are process-wide singletons, so every scenario shares one
// backend.
func TestDesk(t *testing.T) {
	server, db := newBackend(t)

	log := logrus.New()
	log.SetOutput(io.Discard)

	t.Run("Round Trip", func(t *testing.T) {
		roundTrip(t, server.URL, db, log)
	})
	t.Run("Duplicate Code Surfaces Server Message", func(t *testing.T) {
		duplicateCode(t, server.URL, log)
	})
}

func roundTrip(t *testing.T, origin string, db *sql.DB, log *logrus.Logger) {
	ctx := context.Background()
	store := session.NewStore()
	client := apiclient.New(origin, store.Operator, log)
	ui := &recordingPorts{}

	// Login registers the session start under the typed name.
	g := gate.New(client, store, ui, log)
	g.Input(" maria ")
	require.True(t, g.Submit(ctx))
	assert.Equal(t, "MARIA", store.Operator())

	b := board.New(client, ui, ui, log)
	require.NoError(t, b.List(ctx))
	assert.Empty(t, b.State().Protocols)

	submitted := apiclient.ProtocolFields{
		Prot:       "2024-001",
		Date:       "01/03/2024",
		Name:       "JOAO DA SILVA",
		PMH:        "PMH-9",
		ReceivedAt: "CARLOS",
	}
	require.NoError(t, b.Save(ctx, submitted))
	assert.Equal(t, constvars.ProtocolCreatedSuccessMessage, ui.lastAlert())

	state := b.State()
	require.Len(t, state.Protocols, 1)
	created := state.Protocols[0]
	if diff := cmp.Diff(submitted, created.Fields()); diff != "" {
		t.Errorf("listed fields differ from the submitted ones (-want +got):\n%s", diff)
	}
	assert.Equal(t, board.Chart{Pending: 1, Total: 1, Revision: 2}, state.Chart)
	assert.Equal(t, []int{2024}, state.Years)

	// Edits keep the stored code.
	require.NoError(t, b.Select(created.ID))
	fields := created.Fields()
	fields.Prot = "OUTRO"
	fields.DeliveredAt = "05/03/2024"
	require.NoError(t, b.Save(ctx, fields))
	assert.Equal(t, constvars.ProtocolUpdatedSuccessMessage, ui.lastAlert())

	state = b.State()
	require.Len(t, state.Protocols, 1)
	assert.Equal(t, "2024-001", state.Protocols[0].Prot)
	assert.Equal(t, "05/03/2024", state.Protocols[0].DeliveredAt)
	assert.Equal(t, 1, state.Chart.Delivered)

	require.NoError(t, b.Select(created.ID))
	require.NoError(t, b.Delete(ctx))
	assert.Equal(t, constvars.ProtocolDeletedSuccessMessage, ui.lastAlert())
	assert.Empty(t, b.State().Protocols)

	want := []auditRow{
		{Operator: "MARIA", Action: constvars.AuditActionSessionStart},
		{Operator: "MARIA", Action: constvars.AuditActionProtocolCreated},
		{Operator: "MARIA", Action: constvars.AuditActionProtocolUpdated},
		{Operator: "MARIA", Action: constvars.AuditActionProtocolDeleted},
	}
	if diff := cmp.Diff(want, auditRows(t, db)); diff != "" {
		t.Errorf("audit trail mismatch (-want +got):\n%s", diff)
	}
}

func duplicateCode(t *testing.T, origin string, log *logrus.Logger) {
	ctx := context.Background()
	store := session.NewStore()
	store.SetOperator("ana")
	ui := &recordingPorts{}
	b := board.New(apiclient.New(origin, store.Operator, log), ui, ui, log)

	fields := apiclient.ProtocolFields{Prot: "2024-002", Date: "02/03/2024"}
	require.NoError(t, b.Save(ctx, fields))

	err := b.Save(ctx, fields)
	require.Error(t, err)

	var apiErr *apiclient.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 409, apiErr.StatusCode)
	assert.Equal(t, apiErr.Message, ui.lastAlert())
	assert.Len(t, b.State().Protocols, 1)
}
