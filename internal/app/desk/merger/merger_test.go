package merger

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

type mockAPI struct{ mock.Mock }

func (m *mockAPI) ListPDFs(ctx context.Context, folderPath string) ([]string, error) {
	args := m.Called(ctx, folderPath)
	result, _ := args.Get(0).([]string)
	return result, args.Error(1)
}

func (m *mockAPI) MergePDFs(ctx context.Context, folderPath string, files []string, removeBlank bool) (*apiclient.Result, error) {
	args := m.Called(ctx, folderPath, files, removeBlank)
	result, _ := args.Get(0).(*apiclient.Result)
	return result, args.Error(1)
}

type mockBridge struct{ mock.Mock }

func (m *mockBridge) RequestFolder(ctx context.Context) (string, bool, error) {
	args := m.Called(ctx)
	return args.String(0), args.Bool(1), args.Error(2)
}

func (m *mockBridge) OpenMergeView(ctx context.Context, path string) error {
	return m.Called(ctx, path).Error(0)
}

type fakeAlerter struct{ messages []string }

func (a *fakeAlerter) Alert(ctx context.Context, message string) {
	a.messages = append(a.messages, message)
}

type fakeCloser struct{ closed int }

func (c *fakeCloser) Close() { c.closed++ }

const pageURL = "http://localhost:5500/merge.html?folder_path=%2Fdocs%2Fscan"

func newTestHelper(api API, bridge *mockBridge) (*Helper, *fakeAlerter, *fakeCloser) {
	log := logrus.New()
	log.SetOutput(io.Discard)
	alerter := &fakeAlerter{}
	closer := &fakeCloser{}
	return New(api, alerter, closer, bridge, log), alerter, closer
}

func loadedHelper(t *testing.T, api *mockAPI) (*Helper, *fakeAlerter, *fakeCloser) {
	t.Helper()
	api.On("ListPDFs", mock.Anything, "/docs/scan").Return([]string{"c.pdf", "a.pdf", "b.pdf"}, nil)
	helper, alerter, closer := newTestHelper(api, new(mockBridge))
	require.NoError(t, helper.Load(context.Background(), pageURL))
	return helper, alerter, closer
}

func TestFolderFromURL(t *testing.T) {
	folder, err := FolderFromURL(pageURL)
	require.NoError(t, err)
	assert.Equal(t, "/docs/scan", folder)

	_, err = FolderFromURL("http://localhost/merge.html?folder_path=%20")
	assert.ErrorIs(t, err, ErrNoFolder)
	_, err = FolderFromURL("http://localhost/merge.html")
	assert.ErrorIs(t, err, ErrNoFolder)
}

func TestMergeViewURLRoundTrip(t *testing.T) {
	folder, err := FolderFromURL(MergeViewURL("http://localhost:5500/merge.html", `C:\Scans & Docs`))
	require.NoError(t, err)
	assert.Equal(t, `C:\Scans & Docs`, folder)
}

func TestLoadWithoutFolderShowsPlaceholder(t *testing.T) {
	api := new(mockAPI)
	helper, _, _ := newTestHelper(api, new(mockBridge))

	assert.ErrorIs(t, helper.Load(context.Background(), "http://localhost/merge.html"), ErrNoFolder)
	assert.Equal(t, MessageNoFolder, helper.State().Placeholder)
	api.AssertNotCalled(t, "ListPDFs", mock.Anything, mock.Anything)
}

func TestLoadChecksEveryFile(t *testing.T) {
	helper, _, _ := loadedHelper(t, new(mockAPI))

	assert.Equal(t, []string{"c.pdf", "a.pdf", "b.pdf"}, helper.Selected())
	helper.SelectAll(false)
	assert.Empty(t, helper.Selected())
	helper.SelectAll(true)
	assert.Len(t, helper.Selected(), 3)
}

func TestMergeWithNothingCheckedIssuesNoRequest(t *testing.T) {
	api := new(mockAPI)
	helper, alerter, closer := loadedHelper(t, api)
	helper.SelectAll(false)

	for _, removeBlank := range []bool{false, true} {
		assert.ErrorIs(t, helper.Merge(context.Background(), removeBlank), ErrNoneSelected)
	}
	assert.Equal(t, []string{MessageNoneSelected, MessageNoneSelected}, alerter.messages)
	assert.Zero(t, closer.closed)
	api.AssertNotCalled(t, "MergePDFs", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestMergeSendsCheckedFilesInRenderedOrder(t *testing.T) {
	api := new(mockAPI)
	api.On("MergePDFs", mock.Anything, "/docs/scan", []string{"c.pdf", "b.pdf"}, true).
		Return(&apiclient.Result{Success: true, Message: "Arquivos mesclados!"}, nil)
	helper, alerter, closer := loadedHelper(t, api)

	helper.Toggle(1)
	require.NoError(t, helper.Merge(context.Background(), true))

	assert.Equal(t, []string{"Arquivos mesclados!"}, alerter.messages)
	assert.Equal(t, 1, closer.closed)
	api.AssertExpectations(t)
}

func TestMergeFailureKeepsWindowOpen(t *testing.T) {
	api := new(mockAPI)
	api.On("MergePDFs", mock.Anything, mock.Anything, mock.Anything, false).
		Return(nil, &apiclient.APIError{StatusCode: 400, Message: "Nenhuma página válida encontrada."})
	helper, alerter, closer := loadedHelper(t, api)

	assert.Error(t, helper.Merge(context.Background(), false))
	assert.Equal(t, []string{"Nenhuma página válida encontrada."}, alerter.messages)
	assert.Zero(t, closer.closed)
}

func TestNewFolder(t *testing.T) {
	t.Run("Opens a view for the picked folder", func(t *testing.T) {
		bridge := new(mockBridge)
		bridge.On("RequestFolder", mock.Anything).Return("/docs/other", true, nil)
		bridge.On("OpenMergeView", mock.Anything, "/docs/other").Return(nil)
		helper, _, closer := newTestHelper(new(mockAPI), bridge)

		require.NoError(t, helper.NewFolder(context.Background()))
		assert.Equal(t, 1, closer.closed)
		bridge.AssertExpectations(t)
	})

	t.Run("Cancelled picker", func(t *testing.T) {
		bridge := new(mockBridge)
		bridge.On("RequestFolder", mock.Anything).Return("", false, nil)
		helper, _, closer := newTestHelper(new(mockAPI), bridge)

		require.NoError(t, helper.NewFolder(context.Background()))
		assert.Zero(t, closer.closed)
		bridge.AssertNotCalled(t, "OpenMergeView", mock.Anything, mock.Anything)
	})

	t.Run("Bridge failure", func(t *testing.T) {
		bridge := new(mockBridge)
		bridge.On("RequestFolder", mock.Anything).Return("", false, errors.New("no dialog"))
		helper, alerter, closer := newTestHelper(new(mockAPI), bridge)

		assert.Error(t, helper.NewFolder(context.Background()))
		assert.Len(t, alerter.messages, 1)
		assert.Zero(t, closer.closed)
	})
}
