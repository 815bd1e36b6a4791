package reportfilter

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"sisregip-service/internal/app/desk/ports"
	"sisregip-service/internal/pkg/apiclient"
	"sisregip-service/internal/pkg/constvars"

	"github.com/sirupsen/logrus"
)

type Phase int

const (
	PhaseClosed Phase = iota
	PhaseOpen
	PhaseSubmitted
)

type Scope string

const (
	ScopeAll   Scope = constvars.ReportFilterAll
	ScopeMonth Scope = constvars.ReportFilterMonth
	ScopeYear  Scope = constvars.ReportFilterYear
)

const (
	MessageMonthRequired = "Selecione o mês e o ano."
	MessageYearRequired  = "Selecione o ano."
	MessageGenerated     = "Relatório gerado! Verifique seu navegador."
)

var (
	ErrMissingFields = errors.New("report scope is incomplete")
	ErrNotOpen       = errors.New("report filter is not open")
)

type PreviewAPI interface {
	PrintPreview(ctx context.Context, filterType, filterValue string) (*apiclient.Result, error)
}

type State struct {
	Phase Phase
	Scope Scope
	// Month is 1-12, zero when not chosen. Year is zero when not chosen.
	Month int
	Year  int
	Years []int
}

// Descriptor builds the {filter_type, filter_value} pair sent to the preview
// endpoint. message is the alert text when a required field is missing.
func Descriptor(scope Scope, month, year int) (filterType, filterValue, message string, err error) {
	switch scope {
	case ScopeMonth:
		if month < 1 || month > 12 || year == 0 {
			return "", "", MessageMonthRequired, ErrMissingFields
		}
		return string(ScopeMonth), fmt.Sprintf("%04d-%02d", year, month), "", nil
	case ScopeYear:
		if year == 0 {
			return "", "", MessageYearRequired, ErrMissingFields
		}
		return string(ScopeYear), fmt.Sprintf("%04d", year), "", nil
	default:
		return string(ScopeAll), "", "", nil
	}
}

type Modal struct {
	mu      sync.Mutex
	state   State
	api     PreviewAPI
	alerter ports.Alerter
	log     *logrus.Logger
}

func New(api PreviewAPI, alerter ports.Alerter, log *logrus.Logger) *Modal {
	return &Modal{state: State{Scope: ScopeAll}, api: api, alerter: alerter, log: log}
}

func (m *Modal) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Open shows the modal with the years offered by the board.
func (m *Modal) Open(years []int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = State{Phase: PhaseOpen, Scope: ScopeAll, Years: append([]int(nil), years...)}
}

func (m *Modal) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = State{Phase: PhaseClosed, Scope: ScopeAll}
}

func (m *Modal) SetScope(scope Scope) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state.Scope = scope
}

func (m *Modal) SetMonth(month int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state.Month = month
}

func (m *Modal) SetYear(year int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state.Year = year
}

// Submit sends the preview request. Missing fields alert without a request
// and keep the modal open, as does a failed request.
func (m *Modal) Submit(ctx context.Context) error {
	m.mu.Lock()
	if m.state.Phase != PhaseOpen {
		m.mu.Unlock()
		return ErrNotOpen
	}
	filterType, filterValue, message, err := Descriptor(m.state.Scope, m.state.Month, m.state.Year)
	if err != nil {
		m.mu.Unlock()
		m.alerter.Alert(ctx, message)
		return err
	}
	m.state.Phase = PhaseSubmitted
	m.mu.Unlock()

	_, err = m.api.PrintPreview(ctx, filterType, filterValue)
	if err != nil {
		if m.log != nil {
			m.log.WithError(err).WithField("filter_type", filterType).Error("Print preview failed")
		}
		m.mu.Lock()
		m.state.Phase = PhaseOpen
		m.mu.Unlock()
		m.alerter.Alert(ctx, apiclient.AlertMessage(err))
		return err
	}

	m.alerter.Alert(ctx, MessageGenerated)
	m.Close()
	return nil
}
