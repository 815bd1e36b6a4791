package gate

import (
	"context"
	"strings"
	"sync"
	"time"

	"sisregip-service/internal/app/desk/ports"
	"sisregip-service/internal/app/desk/session"
	"sisregip-service/internal/pkg/constvars"

	"github.com/sirupsen/logrus"
)

const (
	minNameLength  = 2
	countdownStart = 3

	LabelSubmit     = "ENTRAR"
	LabelSubmitting = "ENTRANDO..."
)

type Phase int

const (
	PhaseLogin Phase = iota
	PhaseConfirm
	PhaseDone
)

type AuditAPI interface {
	RegisterAudit(ctx context.Context, operator, action, details string) error
}

type State struct {
	Phase       Phase
	Name        string
	Enabled     bool
	ButtonLabel string
	Counter     int
}

func initialState() State {
	return State{Phase: PhaseLogin, ButtonLabel: LabelSubmit, Counter: countdownStart}
}

// Gate captures the operator name, registers the session start and hands
// over to the board after a short countdown.
type Gate struct {
	mu        sync.Mutex
	state     State
	api       AuditAPI
	session   *session.Store
	navigator ports.Navigator
	log       *logrus.Logger
	tick      time.Duration
	onChange  func(State)
}

func New(api AuditAPI, store *session.Store, navigator ports.Navigator, log *logrus.Logger) *Gate {
	return &Gate{
		state:     initialState(),
		api:       api,
		session:   store,
		navigator: navigator,
		log:       log,
		tick:      time.Second,
	}
}

// OnChange registers a callback invoked with a snapshot after every state
// change, including each countdown tick.
func (g *Gate) OnChange(fn func(State)) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.onChange = fn
}

func (g *Gate) State() State {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state
}

func (g *Gate) Input(name string) {
	g.update(func(s *State) {
		s.Name = name
		s.Enabled = len([]rune(strings.TrimSpace(name))) >= minNameLength
	})
}

// Submit logs the session start and moves to the confirmation phase. The
// audit call is best effort: its failure is only logged.
func (g *Gate) Submit(ctx context.Context) bool {
	g.mu.Lock()
	if g.state.Phase != PhaseLogin || !g.state.Enabled {
		g.mu.Unlock()
		return false
	}
	operator := strings.ToUpper(strings.TrimSpace(g.state.Name))
	g.state.Name = operator
	g.state.Enabled = false
	g.state.ButtonLabel = LabelSubmitting
	g.mu.Unlock()
	g.notify()

	err := g.api.RegisterAudit(ctx, operator, constvars.AuditActionSessionStart, constvars.AuditDetailsSessionStart)
	if err != nil && g.log != nil {
		g.log.WithError(err).WithField("operator", operator).Warn("Failed to register session start")
	}

	g.session.SetOperator(operator)
	g.update(func(s *State) {
		s.Phase = PhaseConfirm
		s.Counter = countdownStart
	})
	return true
}

// Countdown ticks the visible counter down to zero and navigates to the
// board. A cancelled context stops it without navigating.
func (g *Gate) Countdown(ctx context.Context) error {
	if g.State().Phase != PhaseConfirm {
		return nil
	}

	ticker := time.NewTicker(g.tick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			var remaining int
			g.update(func(s *State) {
				s.Counter--
				remaining = s.Counter
			})
			if remaining > 0 {
				continue
			}
			g.update(func(s *State) { s.Phase = PhaseDone })
			g.navigator.Navigate(ctx, ports.TargetBoard)
			return nil
		}
	}
}

func (g *Gate) Reset() {
	g.update(func(s *State) { *s = initialState() })
}

func (g *Gate) update(fn func(*State)) {
	g.mu.Lock()
	fn(&g.state)
	g.mu.Unlock()
	g.notify()
}

func (g *Gate) notify() {
	g.mu.Lock()
	onChange, snapshot := g.onChange, g.state
	g.mu.Unlock()
	if onChange != nil {
		onChange(snapshot)
	}
}
