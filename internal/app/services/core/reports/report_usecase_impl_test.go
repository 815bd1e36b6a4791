package reports

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"sisregip-service/internal/app/models"
	"sisregip-service/internal/pkg/constvars"
	"sisregip-service/internal/pkg/dto/requests"
	"sisregip-service/internal/pkg/exceptions"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type mockProtocolRepository struct {
	mock.Mock
}

func (m *mockProtocolRepository) FindAllActive(ctx context.Context) ([]models.Protocol, error) {
	return nil, nil
}

func (m *mockProtocolRepository) FindActiveByID(ctx context.Context, protocolID int64) (*models.Protocol, error) {
	return nil, nil
}

func (m *mockProtocolRepository) FindForReport(ctx context.Context, start, end *time.Time) ([]models.Protocol, error) {
	args := m.Called(ctx, start, end)
	protocols, _ := args.Get(0).([]models.Protocol)
	return protocols, args.Error(1)
}

func (m *mockProtocolRepository) Create(ctx context.Context, protocol *models.Protocol) (int64, error) {
	return 0, nil
}

func (m *mockProtocolRepository) Update(ctx context.Context, protocol *models.Protocol) error {
	return nil
}

func (m *mockProtocolRepository) SoftDelete(ctx context.Context, protocolID int64) error {
	return nil
}

type recordingAudit struct {
	actions []string
}

func (a *recordingAudit) Register(ctx context.Context, request *requests.RegisterAudit) error {
	return nil
}

func (a *recordingAudit) Record(ctx context.Context, operator, action, details string) {
	a.actions = append(a.actions, operator+":"+action)
}

type stubOpener struct {
	opened []string
	err    error
}

func (o *stubOpener) Open(ctx context.Context, path string) error {
	o.opened = append(o.opened, path)
	return o.err
}

type memoryStorage struct {
	objects map[string]string
}

func (s *memoryStorage) UploadObject(ctx context.Context, objectName, contentType string, reader io.Reader, size int64) (string, error) {
	body, err := io.ReadAll(reader)
	if err != nil {
		return "", err
	}
	s.objects[objectName] = string(body)
	return objectName, nil
}

func (s *memoryStorage) UploadFile(ctx context.Context, objectName, contentType, filePath string) (string, error) {
	return objectName, nil
}

func newTestReportUsecase(t *testing.T, repo *mockProtocolRepository) (*reportUsecase, *recordingAudit, *stubOpener) {
	audit := &recordingAudit{}
	opener := &stubOpener{}
	return &reportUsecase{
		ProtocolRepository: repo,
		AuditUsecase:       audit,
		Opener:             opener,
		OutputDir:          t.TempDir(),
		Location:           time.UTC,
		Log:                zap.NewNop(),
		now:                func() time.Time { return time.Date(2024, 3, 15, 9, 30, 0, 0, time.UTC) },
	}, audit, opener
}

func TestParseReportScope(t *testing.T) {
	march := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	april := time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)
	year := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	nextYear := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		typ, val  string
		wantStart *time.Time
		wantEnd   *time.Time
		wantErr   bool
	}{
		{name: "empty is all", typ: "", val: ""},
		{name: "all ignores value", typ: "all", val: "2024-03"},
		{name: "month", typ: "month", val: "2024-03", wantStart: &march, wantEnd: &april},
		{name: "month without value", typ: "month", val: ""},
		{name: "year", typ: "year", val: "2023", wantStart: &year, wantEnd: &nextYear},
		{name: "bad month", typ: "month", val: "03/2024", wantErr: true},
		{name: "bad year", typ: "year", val: "23", wantErr: true},
		{name: "unknown type", typ: "week", val: "1", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scope, err := ParseReportScope(tt.typ, tt.val)
			if tt.wantErr {
				var customErr *exceptions.CustomError
				require.True(t, errors.As(err, &customErr))
				assert.Equal(t, constvars.StatusBadRequest, customErr.StatusCode)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantStart, scope.Start)
			assert.Equal(t, tt.wantEnd, scope.End)
		})
	}
}

func TestReportUsecase_PreviewWritesEscapedReport(t *testing.T) {
	repo := new(mockProtocolRepository)
	repo.On("FindForReport", mock.Anything, mock.Anything, mock.Anything).Return([]models.Protocol{
		{ID: 1, Prot: "A1", ProtocolDate: "2024-03-01", SubjectName: "<b>Ana & Bia</b>", DeliveryDate: "2024-03-02", ReceiverName: "ANA"},
		{ID: 2, Prot: "A2", ProtocolDate: "2024-03-05", SubjectName: "JOAO"},
		{ID: 3, Prot: "A3", ProtocolDate: "2024-03-09", SubjectName: "PEDRO", DeliveryDate: "  "},
	}, nil)

	uc, audit, opener := newTestReportUsecase(t, repo)
	storage := &memoryStorage{objects: map[string]string{}}
	uc.Storage = storage

	got, err := uc.Preview(context.Background(), &requests.PrintPreview{FilterType: "month", FilterValue: "2024-03", Operator: "MARIA"})
	require.NoError(t, err)

	assert.Equal(t, 3, got.Total)
	assert.Equal(t, 1, got.Delivered)
	assert.Equal(t, 2, got.Pending)
	assert.True(t, got.Opened)
	assert.Equal(t, filepath.Join(uc.OutputDir, constvars.ReportPreviewFileName), got.FilePath)
	assert.Equal(t, []string{got.FilePath}, opener.opened)
	assert.Equal(t, []string{"MARIA:" + constvars.AuditActionReportGenerated}, audit.actions)

	html, err := os.ReadFile(got.FilePath)
	require.NoError(t, err)
	body := string(html)
	assert.Contains(t, body, "&lt;b&gt;Ana &amp; Bia&lt;/b&gt;")
	assert.NotContains(t, body, "<b>Ana")
	assert.Contains(t, body, "01/03/2024")
	assert.Contains(t, body, "15/03/2024 09:30")
	assert.Contains(t, body, "03/2024")

	require.Len(t, storage.objects, 1)
	for name, archived := range storage.objects {
		assert.True(t, strings.HasPrefix(name, constvars.ReportObjectPrefix))
		assert.Equal(t, body, archived)
	}
}

func TestReportUsecase_PreviewOpenerFailureStillSucceeds(t *testing.T) {
	repo := new(mockProtocolRepository)
	repo.On("FindForReport", mock.Anything, mock.Anything, mock.Anything).Return([]models.Protocol{}, nil)

	uc, _, opener := newTestReportUsecase(t, repo)
	opener.err = errors.New("no display")

	got, err := uc.Preview(context.Background(), &requests.PrintPreview{})
	require.NoError(t, err)
	assert.False(t, got.Opened)
	assert.Equal(t, 0, got.Total)
}

func TestReportUsecase_InvalidFilterSkipsRepository(t *testing.T) {
	repo := new(mockProtocolRepository)
	uc, audit, _ := newTestReportUsecase(t, repo)

	_, err := uc.Preview(context.Background(), &requests.PrintPreview{FilterType: "year", FilterValue: "abc"})
	assert.Error(t, err)
	repo.AssertNotCalled(t, "FindForReport", mock.Anything, mock.Anything, mock.Anything)
	assert.Empty(t, audit.actions)
}

func TestReportUsecase_Render(t *testing.T) {
	repo := new(mockProtocolRepository)
	repo.On("FindForReport", mock.Anything, (*time.Time)(nil), (*time.Time)(nil)).Return([]models.Protocol{{ID: 1, Prot: "Z9"}}, nil)
	uc, _, _ := newTestReportUsecase(t, repo)

	html, err := uc.Render(context.Background(), "all", "")
	require.NoError(t, err)
	assert.Contains(t, string(html), "<td>Z9</td>")
}
