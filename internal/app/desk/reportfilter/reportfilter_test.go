package reportfilter

import (
	"context"
	"errors"
	"io"
	"testing"

	"sisregip-service/internal/pkg/apiclient"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockPreviewAPI struct{ mock.Mock }

func (m *mockPreviewAPI) PrintPreview(ctx context.Context, filterType, filterValue string) (*apiclient.Result, error) {
	args := m.Called(ctx, filterType, filterValue)
	result, _ := args.Get(0).(*apiclient.Result)
	return result, args.Error(1)
}

type fakeAlerter struct{ messages []string }

func (a *fakeAlerter) Alert(ctx context.Context, message string) {
	a.messages = append(a.messages, message)
}

func newTestModal(api PreviewAPI) (*Modal, *fakeAlerter) {
	log := logrus.New()
	log.SetOutput(io.Discard)
	alerter := &fakeAlerter{}
	return New(api, alerter, log), alerter
}

func TestDescriptor(t *testing.T) {
	testCases := []struct {
		name        string
		scope       Scope
		month, year int
		wantType    string
		wantValue   string
		wantMessage string
	}{
		{name: "All", scope: ScopeAll, wantType: "all"},
		{name: "Month", scope: ScopeMonth, month: 3, year: 2024, wantType: "month", wantValue: "2024-03"},
		{name: "Month without year", scope: ScopeMonth, month: 3, wantMessage: MessageMonthRequired},
		{name: "Month without month", scope: ScopeMonth, year: 2024, wantMessage: MessageMonthRequired},
		{name: "Year", scope: ScopeYear, year: 2023, wantType: "year", wantValue: "2023"},
		{name: "Year missing", scope: ScopeYear, wantMessage: MessageYearRequired},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			filterType, filterValue, message, err := Descriptor(tc.scope, tc.month, tc.year)
			if tc.wantMessage != "" {
				assert.ErrorIs(t, err, ErrMissingFields)
				assert.Equal(t, tc.wantMessage, message)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.wantType, filterType)
			assert.Equal(t, tc.wantValue, filterValue)
		})
	}
}

func TestSubmitMissingFieldsKeepsModalOpen(t *testing.T) {
	api := new(mockPreviewAPI)
	modal, alerter := newTestModal(api)

	modal.Open([]int{2024, 2023})
	modal.SetScope(ScopeYear)
	assert.ErrorIs(t, modal.Submit(context.Background()), ErrMissingFields)

	assert.Equal(t, PhaseOpen, modal.State().Phase)
	assert.Equal(t, []string{MessageYearRequired}, alerter.messages)
	api.AssertNotCalled(t, "PrintPreview", mock.Anything, mock.Anything, mock.Anything)
}

func TestSubmitSuccessCloses(t *testing.T) {
	api := new(mockPreviewAPI)
	api.On("PrintPreview", mock.Anything, "month", "2024-03").Return(&apiclient.Result{Success: true}, nil)
	modal, alerter := newTestModal(api)

	modal.Open([]int{2024})
	modal.SetScope(ScopeMonth)
	modal.SetMonth(3)
	modal.SetYear(2024)
	require.NoError(t, modal.Submit(context.Background()))

	assert.Equal(t, PhaseClosed, modal.State().Phase)
	assert.Equal(t, []string{MessageGenerated}, alerter.messages)
	api.AssertExpectations(t)
}

func TestSubmitFailureStaysOpen(t *testing.T) {
	api := new(mockPreviewAPI)
	api.On("PrintPreview", mock.Anything, "all", "").Return(nil, errors.New("timeout"))
	modal, alerter := newTestModal(api)

	modal.Open(nil)
	assert.Error(t, modal.Submit(context.Background()))
	assert.Equal(t, PhaseOpen, modal.State().Phase)
	assert.Equal(t, []string{"Erro de comunicação: timeout"}, alerter.messages)
}

func TestSubmitWhenClosed(t *testing.T) {
	modal, _ := newTestModal(new(mockPreviewAPI))
	assert.ErrorIs(t, modal.Submit(context.Background()), ErrNotOpen)
}

func TestOpenResetsSelection(t *testing.T) {
	modal, _ := newTestModal(new(mockPreviewAPI))
	modal.Open([]int{2024})
	modal.SetScope(ScopeMonth)
	modal.SetMonth(5)
	modal.Close()
	modal.Open([]int{2025})

	state := modal.State()
	assert.Equal(t, ScopeAll, state.Scope)
	assert.Equal(t, 0, state.Month)
	assert.Equal(t, []int{2025}, state.Years)
}
