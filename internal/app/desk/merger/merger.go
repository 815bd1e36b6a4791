package merger

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"sync"

	"sisregip-service/internal/app/desk/ports"
	"sisregip-service/internal/pkg/apiclient"
	"sisregip-service/internal/pkg/constvars"

	"github.com/sirupsen/logrus"
)

const (
	FolderQueryParam = "folder_path"

	MessageNoFolder     = "Nenhuma pasta informada."
	MessageNoneSelected = "Selecione pelo menos um arquivo."
)

var (
	ErrNoFolder     = errors.New("folder_path is missing")
	ErrNoneSelected = errors.New("no file selected")
)

type API interface {
	ListPDFs(ctx context.Context, folderPath string) ([]string, error)
	MergePDFs(ctx context.Context, folderPath string, files []string, removeBlank bool) (*apiclient.Result, error)
}

type File struct {
	Name    string
	Checked bool
}

type State struct {
	Folder      string
	Files       []File
	Placeholder string
}

// FolderFromURL reads the required folder_path query parameter.
func FolderFromURL(pageURL string) (string, error) {
	parsed, err := url.Parse(pageURL)
	if err != nil {
		return "", err
	}
	folder := strings.TrimSpace(parsed.Query().Get(FolderQueryParam))
	if folder == "" {
		return "", ErrNoFolder
	}
	return folder, nil
}

// MergeViewURL is the page address of the merge view for folder.
func MergeViewURL(base, folder string) string {
	return base + "?" + url.Values{FolderQueryParam: {folder}}.Encode()
}

type Helper struct {
	mu      sync.Mutex
	state   State
	api     API
	alerter ports.Alerter
	closer  ports.WindowCloser
	bridge  ports.Bridge
	log     *logrus.Logger
}

func New(api API, alerter ports.Alerter, closer ports.WindowCloser, bridge ports.Bridge, log *logrus.Logger) *Helper {
	return &Helper{api: api, alerter: alerter, closer: closer, bridge: bridge, log: log}
}

func (h *Helper) State() State {
	h.mu.Lock()
	defer h.mu.Unlock()
	state := h.state
	state.Files = append([]File(nil), h.state.Files...)
	return state
}

// Load lists the PDFs of the folder named in pageURL, every file checked.
func (h *Helper) Load(ctx context.Context, pageURL string) error {
	folder, err := FolderFromURL(pageURL)
	if err != nil {
		h.setPlaceholder(MessageNoFolder)
		return err
	}

	names, err := h.api.ListPDFs(ctx, folder)
	if err != nil {
		h.logError("list pdfs", err)
		h.setPlaceholder(constvars.ErrClientListFiles)
		h.alerter.Alert(ctx, apiclient.AlertMessage(err))
		return err
	}

	files := make([]File, 0, len(names))
	for _, name := range names {
		files = append(files, File{Name: name, Checked: true})
	}

	h.mu.Lock()
	h.state = State{Folder: folder, Files: files}
	h.mu.Unlock()
	return nil
}

func (h *Helper) SetChecked(index int, checked bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if index >= 0 && index < len(h.state.Files) {
		h.state.Files[index].Checked = checked
	}
}

func (h *Helper) Toggle(index int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if index >= 0 && index < len(h.state.Files) {
		h.state.Files[index].Checked = !h.state.Files[index].Checked
	}
}

// SelectAll applies checked to every row.
func (h *Helper) SelectAll(checked bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for i := range h.state.Files {
		h.state.Files[i].Checked = checked
	}
}

// Selected returns the checked names in the order they are listed.
func (h *Helper) Selected() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	var names []string
	for _, file := range h.state.Files {
		if file.Checked {
			names = append(names, file.Name)
		}
	}
	return names
}

// Merge asks the backend to merge the checked files. On success the view
// closes itself; on failure it stays open.
func (h *Helper) Merge(ctx context.Context, removeBlank bool) error {
	selected := h.Selected()
	if len(selected) == 0 {
		h.alerter.Alert(ctx, MessageNoneSelected)
		return ErrNoneSelected
	}

	result, err := h.api.MergePDFs(ctx, h.State().Folder, selected, removeBlank)
	if err != nil {
		h.logError("merge pdfs", err)
		h.alerter.Alert(ctx, apiclient.AlertMessage(err))
		return err
	}

	message := constvars.PDFsMergedSuccessMessage
	if result != nil && result.Message != "" {
		message = result.Message
	}
	h.alerter.Alert(ctx, message)
	h.closer.Close()
	return nil
}

// NewFolder lets the operator pick another folder, opens a merge view for it
// and closes this one. A cancelled picker changes nothing.
func (h *Helper) NewFolder(ctx context.Context) error {
	path, ok, err := h.bridge.RequestFolder(ctx)
	if err != nil {
		h.logError("request folder", err)
		h.alerter.Alert(ctx, apiclient.AlertMessage(err))
		return err
	}
	if !ok {
		return nil
	}

	if err := h.bridge.OpenMergeView(ctx, path); err != nil {
		h.logError("open merge view", err)
		h.alerter.Alert(ctx, apiclient.AlertMessage(err))
		return err
	}
	h.closer.Close()
	return nil
}

func (h *Helper) Reset() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.state = State{}
}

func (h *Helper) setPlaceholder(message string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.state = State{Placeholder: message}
}

func (h *Helper) logError(operation string, err error) {
	if h.log != nil {
		h.log.WithError(err).Error("Merge helper failed to " + operation)
	}
}
