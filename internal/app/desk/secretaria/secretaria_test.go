package secretaria

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"sisregip-service/internal/pkg/apiclient"

	"github.com/google/go-cmp/cmp"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockAPI struct{ mock.Mock }

func (m *mockAPI) ListSecretaria(ctx context.Context) ([]apiclient.SecretaryRecord, error) {
	args := m.Called(ctx)
	result, _ := args.Get(0).([]apiclient.SecretaryRecord)
	return result, args.Error(1)
}

type fakeAlerter struct{ messages []string }

func (a *fakeAlerter) Alert(ctx context.Context, message string) {
	a.messages = append(a.messages, message)
}

func newTestView(api API) (*View, *fakeAlerter) {
	log := logrus.New()
	log.SetOutput(io.Discard)
	alerter := &fakeAlerter{}
	return New(api, alerter, log), alerter
}

func TestEscape(t *testing.T) {
	assert.Equal(t, "&lt;b&gt;A &amp; B&lt;/b&gt;", Escape("<b>A & B</b>"))
	assert.Equal(t, "&amp;lt;", Escape("&lt;"))
}

func TestMonthKey(t *testing.T) {
	testCases := map[string]string{
		"10/01/2024":          "2024-01",
		"2024-02-29":          "2024-02",
		"2023-12-01 08:30:00": "2023-12",
		"5/1/2024":            "2024-01",
		"2024-1-5":            "2024-01",
		"2024-01":             "2024-01",
	}
	for date, want := range testCases {
		key, ok := MonthKey(date)
		assert.True(t, ok, date)
		assert.Equal(t, want, key, date)
	}

	for _, date := range []string{"", "bad", "10/13/2024", "2024/01/10", "10/01/24", "2024", "24-01-10"} {
		_, ok := MonthKey(date)
		assert.False(t, ok, date)
	}
}

func TestBucketsSameMonth(t *testing.T) {
	records := []apiclient.SecretaryRecord{{DataProt: "10/01/2024"}, {DataProt: "20/01/2024"}, {DataProt: ""}}

	want := []Bucket{{Key: "2024-01", Label: "JAN/24", Count: 2}}
	if diff := cmp.Diff(want, Buckets(records)); diff != "" {
		t.Errorf("buckets mismatch (-want +got):\n%s", diff)
	}
}

func TestBucketsUnpaddedDates(t *testing.T) {
	records := []apiclient.SecretaryRecord{{DataProt: "5/1/2024"}, {DataProt: "20/01/2024"}, {DataProt: "2024-1-30"}}

	want := []Bucket{{Key: "2024-01", Label: "JAN/24", Count: 3}}
	if diff := cmp.Diff(want, Buckets(records)); diff != "" {
		t.Errorf("buckets mismatch (-want +got):\n%s", diff)
	}
}

func TestBucketsKeepLastTwelveAscending(t *testing.T) {
	var records []apiclient.SecretaryRecord
	start := time.Date(2023, 1, 15, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 15; i++ {
		records = append(records, apiclient.SecretaryRecord{DataProt: start.AddDate(0, i, 0).Format("2006-01-02")})
	}
	// Unordered input must not matter.
	records[0], records[14] = records[14], records[0]

	buckets := Buckets(records)
	require.Len(t, buckets, 12)
	assert.Equal(t, "2023-04", buckets[0].Key)
	assert.Equal(t, "ABR/23", buckets[0].Label)
	assert.Equal(t, "2024-03", buckets[11].Key)
	assert.Equal(t, "MAR/24", buckets[11].Label)
	for i := 1; i < len(buckets); i++ {
		assert.Less(t, buckets[i-1].Key, buckets[i].Key)
	}
}

func TestFilterThreeFields(t *testing.T) {
	records := []apiclient.SecretaryRecord{
		{Protocolo: "S-1", Prontuario: "PR77", Nome: "Ana"},
		{Protocolo: "S-2", Prontuario: "PR88", Nome: "Bruno"},
	}
	assert.Equal(t, records[:1], Filter(records, "ana"))
	assert.Equal(t, records[1:], Filter(records, "pr88"))
	assert.Equal(t, records[1:], Filter(records, "s-2"))
	assert.Len(t, Filter(records, ""), 2)
	assert.Empty(t, Filter(records, " ana"))
}

func TestRowEscapesEveryCell(t *testing.T) {
	row := Row(apiclient.SecretaryRecord{Nome: "<script>", Obs: "a & b"})
	assert.Equal(t, "&lt;script&gt;", row[2])
	assert.Equal(t, "a &amp; b", row[6])
}

func TestOpenLoadsOnce(t *testing.T) {
	api := new(mockAPI)
	api.On("ListSecretaria", mock.Anything).Return([]apiclient.SecretaryRecord{{Nome: "Ana", DataProt: "10/01/2024"}}, nil).Once()
	view, _ := newTestView(api)

	require.NoError(t, view.Open(context.Background()))
	require.NoError(t, view.Open(context.Background()))

	state := view.State()
	assert.True(t, state.Loaded)
	assert.Equal(t, Stats{Total: 1, Filtered: 1}, state.Stats)
	assert.Len(t, state.Buckets, 1)
	api.AssertNumberOfCalls(t, "ListSecretaria", 1)
}

func TestFailedOpenIsRetried(t *testing.T) {
	api := new(mockAPI)
	api.On("ListSecretaria", mock.Anything).Return(nil, errors.New("down")).Once()
	api.On("ListSecretaria", mock.Anything).Return([]apiclient.SecretaryRecord{}, nil).Once()
	view, alerter := newTestView(api)

	assert.Error(t, view.Open(context.Background()))
	assert.False(t, view.State().Loaded)
	assert.Equal(t, "Erro ao carregar dados da Secretaria.", view.State().Placeholder)
	assert.Len(t, alerter.messages, 1)

	require.NoError(t, view.Open(context.Background()))
	assert.True(t, view.State().Loaded)
	assert.Empty(t, view.State().Placeholder)
}

func TestSearchUpdatesFilteredCount(t *testing.T) {
	api := new(mockAPI)
	api.On("ListSecretaria", mock.Anything).Return([]apiclient.SecretaryRecord{{Nome: "Ana"}, {Nome: "Bruno"}}, nil)
	view, _ := newTestView(api)
	require.NoError(t, view.Open(context.Background()))

	view.Search("bru")
	assert.Eventually(t, func() bool { return view.State().Stats.Filtered == 1 }, time.Second, 10*time.Millisecond)
	assert.Equal(t, 2, view.State().Stats.Total)
	api.AssertNumberOfCalls(t, "ListSecretaria", 1)
}
