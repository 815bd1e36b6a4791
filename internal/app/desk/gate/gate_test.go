package gate

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"sisregip-service/internal/app/desk/session"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockAuditAPI struct{ mock.Mock }

func (m *mockAuditAPI) RegisterAudit(ctx context.Context, operator, action, details string) error {
	return m.Called(ctx, operator, action, details).Error(0)
}

type recordingNavigator struct {
	mu      sync.Mutex
	targets []string
}

func (n *recordingNavigator) Navigate(ctx context.Context, target string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.targets = append(n.targets, target)
}

func (n *recordingNavigator) Targets() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.targets...)
}

func newTestGate(api AuditAPI) (*Gate, *session.Store, *recordingNavigator) {
	log := logrus.New()
	log.SetOutput(io.Discard)
	store := session.NewStore()
	navigator := &recordingNavigator{}
	g := New(api, store, navigator, log)
	g.tick = time.Millisecond
	return g, store, navigator
}

func TestInputEnablesSubmission(t *testing.T) {
	g, _, _ := newTestGate(new(mockAuditAPI))

	g.Input(" a ")
	assert.False(t, g.State().Enabled)
	g.Input("ab")
	assert.True(t, g.State().Enabled)
}

func TestSubmitRefusedWhenDisabled(t *testing.T) {
	api := new(mockAuditAPI)
	g, store, _ := newTestGate(api)

	g.Input("a")
	assert.False(t, g.Submit(context.Background()))
	api.AssertNotCalled(t, "RegisterAudit", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	assert.Equal(t, "", store.Operator())
}

func TestSubmitStoresUpperCasedName(t *testing.T) {
	api := new(mockAuditAPI)
	api.On("RegisterAudit", mock.Anything, "MARIA", "SESSAO_INICIO", "Login no sistema").Return(nil)
	g, store, _ := newTestGate(api)

	var labels []string
	g.OnChange(func(s State) { labels = append(labels, s.ButtonLabel) })

	g.Input("  maria ")
	require.True(t, g.Submit(context.Background()))

	assert.Equal(t, "MARIA", store.Operator())
	assert.Equal(t, PhaseConfirm, g.State().Phase)
	assert.Contains(t, labels, LabelSubmitting)
	api.AssertExpectations(t)
}

func TestAuditFailureNeverBlocksLogin(t *testing.T) {
	api := new(mockAuditAPI)
	api.On("RegisterAudit", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(errors.New("connection refused"))
	g, store, _ := newTestGate(api)

	g.Input("jo")
	require.True(t, g.Submit(context.Background()))
	assert.Equal(t, "JO", store.Operator())
	assert.Equal(t, PhaseConfirm, g.State().Phase)
}

func TestCountdownNavigatesToBoard(t *testing.T) {
	api := new(mockAuditAPI)
	api.On("RegisterAudit", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)
	g, _, navigator := newTestGate(api)

	var counters []int
	g.OnChange(func(s State) {
		if s.Phase == PhaseConfirm {
			counters = append(counters, s.Counter)
		}
	})

	g.Input("ana")
	g.Submit(context.Background())
	require.NoError(t, g.Countdown(context.Background()))

	assert.Equal(t, []string{"board"}, navigator.Targets())
	assert.Equal(t, []int{3, 2, 1, 0}, counters)
	assert.Equal(t, PhaseDone, g.State().Phase)
	assert.Equal(t, 0, g.State().Counter)
}

func TestCountdownCancelled(t *testing.T) {
	api := new(mockAuditAPI)
	api.On("RegisterAudit", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)
	g, _, navigator := newTestGate(api)
	g.tick = time.Hour

	g.Input("ana")
	g.Submit(context.Background())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, g.Countdown(ctx), context.Canceled)
	assert.Empty(t, navigator.Targets())
}

func TestReset(t *testing.T) {
	api := new(mockAuditAPI)
	api.On("RegisterAudit", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)
	g, _, _ := newTestGate(api)

	g.Input("ana")
	g.Submit(context.Background())
	g.Reset()

	assert.Equal(t, initialState(), g.State())
}
