package secretaria

import (
	"context"
	"sync"

	"sisregip-service/internal/app/desk/debounce"
	"sisregip-service/internal/app/desk/ports"
	"sisregip-service/internal/pkg/apiclient"
	"sisregip-service/internal/pkg/constvars"

	"github.com/sirupsen/logrus"
)

type API interface {
	ListSecretaria(ctx context.Context) ([]apiclient.SecretaryRecord, error)
}

type Stats struct {
	Total    int
	Filtered int
}

type State struct {
	Loaded      bool
	Placeholder string
	Records     []apiclient.SecretaryRecord
	Visible     []apiclient.SecretaryRecord
	SearchTerm  string
	Buckets     []Bucket
	Stats       Stats
}

// View loads the secretary dataset on first open and keeps it for the rest
// of the session. Only a successful load is kept.
type View struct {
	mu       sync.Mutex
	state    State
	api      API
	alerter  ports.Alerter
	search   *debounce.Debouncer
	log      *logrus.Logger
	onChange func(State)
}

func New(api API, alerter ports.Alerter, log *logrus.Logger) *View {
	return &View{
		api:     api,
		alerter: alerter,
		search:  debounce.New(debounce.SearchDelay),
		log:     log,
	}
}

func (v *View) OnChange(fn func(State)) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.onChange = fn
}

func (v *View) State() State {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.state
}

func (v *View) Open(ctx context.Context) error {
	if v.State().Loaded {
		return nil
	}

	records, err := v.api.ListSecretaria(ctx)
	if err != nil {
		if v.log != nil {
			v.log.WithError(err).Error("Failed to load secretaria records")
		}
		v.update(func(s *State) { s.Placeholder = constvars.ErrClientFetchSecretaria })
		v.alerter.Alert(ctx, apiclient.AlertMessage(err))
		return err
	}
	if records == nil {
		records = []apiclient.SecretaryRecord{}
	}

	v.update(func(s *State) {
		s.Loaded = true
		s.Placeholder = ""
		s.Records = records
		s.Visible = Filter(records, s.SearchTerm)
		s.Buckets = Buckets(records)
		s.Stats = Stats{Total: len(records), Filtered: len(s.Visible)}
	})
	return nil
}

func (v *View) Search(term string) {
	v.search.Trigger(func() {
		v.update(func(s *State) {
			s.SearchTerm = term
			s.Visible = Filter(s.Records, term)
			s.Stats.Filtered = len(s.Visible)
		})
	})
}

// Reset forgets the cached dataset; the next Open fetches again.
func (v *View) Reset() {
	v.search.Cancel()
	v.update(func(s *State) { *s = State{} })
}

func (v *View) update(fn func(*State)) {
	v.mu.Lock()
	fn(&v.state)
	onChange, snapshot := v.onChange, v.state
	v.mu.Unlock()
	if onChange != nil {
		onChange(snapshot)
	}
}
