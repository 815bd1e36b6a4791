package board

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"sisregip-service/internal/app/desk/debounce"
	"sisregip-service/internal/app/desk/ports"
	"sisregip-service/internal/pkg/apiclient"
	"sisregip-service/internal/pkg/constvars"

	"github.com/sirupsen/logrus"
)

const (
	HeaderNewRecord = "NOVO REGISTRO"
	FieldProt       = "PROT"

	MessageSelectFirst = "Selecione um protocolo na lista."
)

var (
	ErrProtRequired     = errors.New("protocol code is required")
	ErrNothingSelected  = errors.New("no protocol selected")
	ErrProtocolNotFound = errors.New("protocol not in the current list")
)

type API interface {
	ListProtocols(ctx context.Context) ([]apiclient.Protocol, error)
	AddProtocol(ctx context.Context, fields apiclient.ProtocolFields) (*apiclient.Result, error)
	EditProtocol(ctx context.Context, id apiclient.ID, fields apiclient.ProtocolFields) (*apiclient.Result, error)
	DeleteProtocol(ctx context.Context, id apiclient.ID) (*apiclient.Result, error)
}

type Form struct {
	Header        string
	Fields        apiclient.ProtocolFields
	ProtReadOnly  bool
	DeleteEnabled bool
	Focus         string
}

func blankForm() Form {
	return Form{Header: HeaderNewRecord, Focus: FieldProt}
}

type State struct {
	Protocols    []apiclient.Protocol
	Visible      []apiclient.Protocol
	Selected     apiclient.ID
	HasSelection bool
	SearchTerm   string
	Form         Form
	Chart        Chart
	Years        []int
}

type Board struct {
	mu        sync.Mutex
	state     State
	api       API
	alerter   ports.Alerter
	confirmer ports.Confirmer
	search    *debounce.Debouncer
	log       *logrus.Logger
	now       func() time.Time
	onChange  func(State)
}

func New(api API, alerter ports.Alerter, confirmer ports.Confirmer, log *logrus.Logger) *Board {
	b := &Board{
		api:       api,
		alerter:   alerter,
		confirmer: confirmer,
		search:    debounce.New(debounce.SearchDelay),
		log:       log,
		now:       time.Now,
	}
	b.state = b.initialState()
	return b
}

func (b *Board) initialState() State {
	return State{Form: blankForm(), Years: []int{b.now().Year()}}
}

func (b *Board) OnChange(fn func(State)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.onChange = fn
}

// State returns a snapshot; the slices must not be modified by the caller.
func (b *Board) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}

// List fetches the whole collection and rebuilds everything derived from it.
// On failure the previous state is kept.
func (b *Board) List(ctx context.Context) error {
	protocols, err := b.api.ListProtocols(ctx)
	if err != nil {
		b.logError("list protocols", err)
		b.alerter.Alert(ctx, apiclient.AlertMessage(err))
		return err
	}
	if protocols == nil {
		protocols = []apiclient.Protocol{}
	}

	b.update(func(s *State) {
		s.Protocols = protocols
		s.Visible = Filter(protocols, s.SearchTerm)
		revision := s.Chart.Revision + 1
		s.Chart = Partition(protocols)
		s.Chart.Revision = revision
		s.Years = AvailableYears(protocols, b.now())
	})
	return nil
}

func (b *Board) Select(id apiclient.ID) error {
	var err error
	b.update(func(s *State) {
		for _, protocol := range s.Protocols {
			if protocol.ID != id {
				continue
			}
			s.Selected = id
			s.HasSelection = true
			s.Form = Form{
				Header:        fmt.Sprintf("PROTOCOLO #%s", protocol.Prot),
				Fields:        protocol.Fields(),
				ProtReadOnly:  true,
				DeleteEnabled: true,
			}
			return
		}
		err = ErrProtocolNotFound
	})
	return err
}

func (b *Board) Clear() {
	b.update(func(s *State) {
		s.Selected = 0
		s.HasSelection = false
		s.Form = blankForm()
	})
}

// Save adds a new protocol when nothing is selected and edits the selected
// one otherwise. A blank code is rejected before any request.
func (b *Board) Save(ctx context.Context, fields apiclient.ProtocolFields) error {
	fields.Prot = strings.TrimSpace(fields.Prot)

	state := b.State()
	if state.HasSelection {
		// The code is read-only once created.
		fields.Prot = strings.TrimSpace(state.Form.Fields.Prot)
	}
	if fields.Prot == "" {
		b.alerter.Alert(ctx, constvars.ErrClientProtocolRequired)
		return ErrProtRequired
	}

	var (
		result *apiclient.Result
		err    error
	)
	if state.HasSelection {
		result, err = b.api.EditProtocol(ctx, state.Selected, fields)
	} else {
		result, err = b.api.AddProtocol(ctx, fields)
	}
	if err != nil {
		b.logError("save protocol", err)
		b.alerter.Alert(ctx, apiclient.AlertMessage(err))
		return err
	}

	b.alerter.Alert(ctx, messageOrFallback(result))
	b.Clear()
	return b.List(ctx)
}

// Delete removes the selected protocol after the operator confirmed.
func (b *Board) Delete(ctx context.Context) error {
	state := b.State()
	if !state.HasSelection {
		b.alerter.Alert(ctx, MessageSelectFirst)
		return ErrNothingSelected
	}

	question := fmt.Sprintf("Excluir o protocolo %s? Esta ação não pode ser desfeita.", state.Form.Fields.Prot)
	if !b.confirmer.Confirm(ctx, question) {
		return nil
	}

	result, err := b.api.DeleteProtocol(ctx, state.Selected)
	if err != nil {
		b.logError("delete protocol", err)
		b.alerter.Alert(ctx, apiclient.AlertMessage(err))
		return err
	}

	b.alerter.Alert(ctx, messageOrFallback(result))
	b.Clear()
	return b.List(ctx)
}

// Search applies term after the debounce delay, without fetching.
func (b *Board) Search(term string) {
	b.search.Trigger(func() { b.applySearch(term) })
}

func (b *Board) applySearch(term string) {
	b.update(func(s *State) {
		s.SearchTerm = term
		s.Visible = Filter(s.Protocols, term)
	})
}

// Reset drops the collection, the selection and any pending search.
func (b *Board) Reset() {
	b.search.Cancel()
	b.update(func(s *State) { *s = b.initialState() })
}

func (b *Board) update(fn func(*State)) {
	b.mu.Lock()
	fn(&b.state)
	onChange, snapshot := b.onChange, b.state
	b.mu.Unlock()
	if onChange != nil {
		onChange(snapshot)
	}
}

func (b *Board) logError(operation string, err error) {
	if b.log != nil {
		b.log.WithError(err).Error("Board failed to " + operation)
	}
}

func messageOrFallback(result *apiclient.Result) string {
	if result != nil && result.Message != "" {
		return result.Message
	}
	return constvars.FallbackActionCompletedMessage
}
