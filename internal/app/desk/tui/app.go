// Package tui is the terminal front end of the desk. It renders the gate,
// the board with its report filter and secretary overlays, and the merge
// helper, and feeds the operator's keys to those components.
package tui

import (
	"context"
	"fmt"

	"sisregip-service/internal/app/desk/board"
	"sisregip-service/internal/app/desk/gate"
	"sisregip-service/internal/app/desk/merger"
	"sisregip-service/internal/app/desk/ports"
	"sisregip-service/internal/app/desk/reportfilter"
	"sisregip-service/internal/app/desk/secretaria"
	"sisregip-service/internal/pkg/apiclient"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"
)

type Screen int

const (
	ScreenLogin Screen = iota
	ScreenBoard
	ScreenMerge
)

// Operation names carried by opDoneMsg.
const (
	opLogin      = "login"
	opList       = "list"
	opSave       = "save"
	opDelete     = "delete"
	opReport     = "report"
	opSecretaria = "secretaria"
	opFolder     = "folder"
	opMergeLoad  = "merge-load"
	opMerge      = "merge"
	opNewFolder  = "new-folder"
)

var formLabels = []string{"PROT", "DATA", "NOME", "PMH", "ENTREGA", "RECEBIMENTO"}

// MergeFactory builds a merge helper bound to one merge window.
type MergeFactory func(closer ports.WindowCloser) *merger.Helper

type Deps struct {
	UI           *UI
	Gate         *gate.Gate
	Board        *board.Board
	Report       *reportfilter.Modal
	Secretaria   *secretaria.View
	NewMerger    MergeFactory
	MergeViewURL string
	Log          *logrus.Logger
}

type Options struct {
	Start Screen
	// Folder is the folder opened when Start is ScreenMerge.
	Folder string
}

type Model struct {
	deps      Deps
	ctx       context.Context
	screen    Screen
	mergeOnly bool
	folder    string

	login     textinput.Model
	table     table.Model
	search    textinput.Model
	searching bool

	formOpen  bool
	form      []textinput.Model
	formFocus int

	reportOpen  bool
	reportField int

	secretariaOpen   bool
	secretariaSearch textinput.Model
	secretariaTable  table.Model

	merge       *merger.Helper
	mergeWindow int
	mergeCursor int

	alerts      []alertMsg
	confirm     *confirmMsg
	prompt      *promptMsg
	promptInput textinput.Model

	width  int
	height int
}

// New builds the model. ctx bounds every backend call started from the
// terminal.
func New(ctx context.Context, deps Deps, opts Options) *Model {
	m := &Model{
		deps:      deps,
		ctx:       ctx,
		screen:    opts.Start,
		mergeOnly: opts.Start == ScreenMerge,
		folder:    opts.Folder,
	}

	m.login = textinput.New()
	m.login.Placeholder = "Seu nome"
	m.login.CharLimit = 60
	m.login.Focus()

	m.search = textinput.New()
	m.search.Placeholder = "Buscar nome ou protocolo"

	m.form = make([]textinput.Model, len(formLabels))
	for i, label := range formLabels {
		input := textinput.New()
		input.Placeholder = label
		input.CharLimit = 120
		m.form[i] = input
	}

	m.table = table.New(
		table.WithColumns([]table.Column{
			{Title: "ID", Width: 6},
			{Title: "PROT", Width: 14},
			{Title: "DATA", Width: 10},
			{Title: "NOME", Width: 28},
			{Title: "PMH", Width: 10},
			{Title: "ENTREGA", Width: 10},
			{Title: "RECEBIMENTO", Width: 12},
		}),
		table.WithFocused(true),
		table.WithHeight(12),
	)

	m.secretariaSearch = textinput.New()
	m.secretariaSearch.Placeholder = "Buscar nome, prontuário ou protocolo"

	m.secretariaTable = table.New(
		table.WithColumns([]table.Column{
			{Title: "PROTOCOLO", Width: 12},
			{Title: "PRONTUÁRIO", Width: 11},
			{Title: "NOME", Width: 26},
			{Title: "DATA", Width: 10},
			{Title: "FINALIDADE", Width: 14},
			{Title: "ALTA", Width: 10},
			{Title: "OBS", Width: 16},
		}),
		table.WithFocused(true),
		table.WithHeight(10),
	)

	m.promptInput = textinput.New()
	m.promptInput.Placeholder = "/caminho/da/pasta"

	return m
}

// Watch subscribes the model to the components' state changes so that
// debounced searches and countdown ticks are redrawn.
func (m *Model) Watch() {
	m.deps.Gate.OnChange(func(gate.State) { m.deps.UI.Refresh() })
	m.deps.Board.OnChange(func(board.State) { m.deps.UI.Refresh() })
	m.deps.Secretaria.OnChange(func(secretaria.State) { m.deps.UI.Refresh() })
}

func (m *Model) Init() tea.Cmd {
	switch m.screen {
	case ScreenMerge:
		return m.openMerge(m.folder)
	case ScreenBoard:
		return m.run(opList, m.deps.Board.List)
	default:
		return textinput.Blink
	}
}

func (m *Model) Screen() Screen {
	return m.screen
}

// run executes fn off the update loop. Components may block on alerts while
// it runs.
func (m *Model) run(op string, fn func(ctx context.Context) error) tea.Cmd {
	ctx := m.ctx
	return func() tea.Msg {
		return opDoneMsg{op: op, err: fn(ctx)}
	}
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil

	case alertMsg:
		m.alerts = append(m.alerts, msg)
		return m, nil

	case confirmMsg:
		m.confirm = &msg
		return m, nil

	case promptMsg:
		m.prompt = &msg
		m.promptInput.SetValue("")
		m.promptInput.Focus()
		return m, nil

	case navigateMsg:
		switch msg.target {
		case ports.TargetBoard:
			m.screen = ScreenBoard
			m.login.Blur()
			return m, m.run(opList, m.deps.Board.List)
		case ports.TargetLogin:
			m.screen = ScreenLogin
			m.deps.Gate.Reset()
			m.login.SetValue("")
			m.login.Focus()
		}
		return m, nil

	case openMergeMsg:
		return m, m.openMerge(msg.folder)

	case closeWindowMsg:
		if msg.window != m.mergeWindow {
			return m, nil
		}
		return m, m.closeMerge()

	case refreshMsg:
		m.sync()
		return m, nil

	case opDoneMsg:
		m.finish(msg)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *Model) finish(msg opDoneMsg) {
	if msg.err != nil && m.deps.Log != nil {
		m.deps.Log.WithError(msg.err).WithField("operation", msg.op).Debug("Desk operation ended with error")
	}

	switch msg.op {
	case opSave:
		if msg.err == nil {
			m.closeForm()
		}
	case opDelete:
		if !m.deps.Board.State().HasSelection {
			m.closeForm()
		}
	case opReport:
		if m.deps.Report.State().Phase == reportfilter.PhaseClosed {
			m.reportOpen = false
		}
	}
	m.sync()
}

// sync copies component state into the bubbles widgets.
func (m *Model) sync() {
	state := m.deps.Board.State()
	rows := make([]table.Row, 0, len(state.Visible))
	for _, protocol := range state.Visible {
		rows = append(rows, protocolRow(protocol))
	}
	setRows(&m.table, rows)

	records := m.deps.Secretaria.State().Visible
	secretariaRows := make([]table.Row, 0, len(records))
	for _, record := range records {
		secretariaRows = append(secretariaRows, table.Row(secretaria.Row(record)))
	}
	setRows(&m.secretariaTable, secretariaRows)
}

func setRows(t *table.Model, rows []table.Row) {
	t.SetRows(rows)
	if len(rows) > 0 && t.Cursor() >= len(rows) {
		t.SetCursor(len(rows) - 1)
	}
}

func protocolRow(protocol apiclient.Protocol) table.Row {
	return table.Row{
		fmt.Sprintf("%d", protocol.ID),
		protocol.Prot,
		protocol.Date,
		protocol.Name,
		protocol.PMH,
		protocol.DeliveredAt,
		protocol.ReceivedAt,
	}
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	switch {
	case len(m.alerts) > 0:
		return m.handleAlertKey(msg)
	case m.confirm != nil:
		return m.handleConfirmKey(msg)
	case m.prompt != nil:
		return m.handlePromptKey(msg)
	}

	switch m.screen {
	case ScreenLogin:
		return m.handleLoginKey(msg)
	case ScreenMerge:
		return m.handleMergeKey(msg)
	}

	switch {
	case m.formOpen:
		return m.handleFormKey(msg)
	case m.reportOpen:
		return m.handleReportKey(msg)
	case m.secretariaOpen:
		return m.handleSecretariaKey(msg)
	case m.searching:
		return m.handleSearchKey(msg)
	}
	return m.handleBoardKey(msg)
}

func (m *Model) handleAlertKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter", "esc", " ":
		close(m.alerts[0].done)
		m.alerts = m.alerts[1:]
	}
	return m, nil
}

func (m *Model) handleConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y", "s", "S":
		m.confirm.reply <- true
		m.confirm = nil
	case "n", "N", "esc":
		m.confirm.reply <- false
		m.confirm = nil
	}
	return m, nil
}

func (m *Model) handlePromptKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		path := m.promptInput.Value()
		m.prompt.reply <- folderReply{path: path, ok: path != ""}
		m.prompt = nil
		m.promptInput.Blur()
		return m, nil
	case "esc":
		m.prompt.reply <- folderReply{}
		m.prompt = nil
		m.promptInput.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.promptInput, cmd = m.promptInput.Update(msg)
	return m, cmd
}

func (m *Model) handleLoginKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.deps.Gate.State().Phase != gate.PhaseLogin {
		return m, nil
	}
	if msg.String() == "enter" {
		if !m.deps.Gate.State().Enabled {
			return m, nil
		}
		g := m.deps.Gate
		return m, m.run(opLogin, func(ctx context.Context) error {
			if !g.Submit(ctx) {
				return nil
			}
			return g.Countdown(ctx)
		})
	}

	var cmd tea.Cmd
	m.login, cmd = m.login.Update(msg)
	m.deps.Gate.Input(m.login.Value())
	return m, cmd
}

func (m *Model) handleBoardKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "/":
		m.searching = true
		m.search.Focus()
		return m, textinput.Blink
	case "n":
		m.deps.Board.Clear()
		m.openForm()
		return m, textinput.Blink
	case "enter":
		visible := m.deps.Board.State().Visible
		row := m.table.Cursor()
		if row < 0 || row >= len(visible) {
			return m, nil
		}
		if err := m.deps.Board.Select(visible[row].ID); err != nil {
			return m, nil
		}
		m.openForm()
		return m, textinput.Blink
	case "d":
		return m, m.run(opDelete, m.deps.Board.Delete)
	case "r":
		return m, m.run(opList, m.deps.Board.List)
	case "p":
		m.deps.Report.Open(m.deps.Board.State().Years)
		m.reportOpen = true
		m.reportField = 0
		return m, nil
	case "s":
		m.secretariaOpen = true
		m.secretariaSearch.Focus()
		return m, m.run(opSecretaria, m.deps.Secretaria.Open)
	case "m":
		ui := m.deps.UI
		return m, m.run(opFolder, func(ctx context.Context) error {
			path, ok, err := ui.RequestFolder(ctx)
			if err != nil || !ok {
				return err
			}
			return ui.OpenMergeView(ctx, path)
		})
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m *Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "enter":
		m.searching = false
		m.search.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.deps.Board.Search(m.search.Value())
	return m, cmd
}

func (m *Model) openForm() {
	form := m.deps.Board.State().Form
	values := []string{
		form.Fields.Prot,
		form.Fields.Date,
		form.Fields.Name,
		form.Fields.PMH,
		form.Fields.DeliveredAt,
		form.Fields.ReceivedAt,
	}
	for i := range m.form {
		m.form[i].SetValue(values[i])
		m.form[i].Blur()
	}
	m.formOpen = true
	m.formFocus = m.firstEditableField()
	m.form[m.formFocus].Focus()
}

func (m *Model) closeForm() {
	m.formOpen = false
	for i := range m.form {
		m.form[i].Blur()
	}
}

func (m *Model) firstEditableField() int {
	if m.deps.Board.State().Form.ProtReadOnly {
		return 1
	}
	return 0
}

func (m *Model) moveFocus(delta int) {
	first := m.firstEditableField()
	span := len(m.form) - first
	m.form[m.formFocus].Blur()
	m.formFocus = first + ((m.formFocus-first+delta)%span+span)%span
	m.form[m.formFocus].Focus()
}

func (m *Model) formFields() apiclient.ProtocolFields {
	return apiclient.ProtocolFields{
		Prot:        m.form[0].Value(),
		Date:        m.form[1].Value(),
		Name:        m.form[2].Value(),
		PMH:         m.form[3].Value(),
		DeliveredAt: m.form[4].Value(),
		ReceivedAt:  m.form[5].Value(),
	}
}

func (m *Model) handleFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.closeForm()
		m.deps.Board.Clear()
		return m, nil
	case "tab", "down":
		m.moveFocus(1)
		return m, nil
	case "shift+tab", "up":
		m.moveFocus(-1)
		return m, nil
	case "ctrl+s":
		return m, m.save()
	case "enter":
		if m.formFocus == len(m.form)-1 {
			return m, m.save()
		}
		m.moveFocus(1)
		return m, nil
	case "ctrl+d":
		if !m.deps.Board.State().Form.DeleteEnabled {
			return m, nil
		}
		return m, m.run(opDelete, m.deps.Board.Delete)
	}

	var cmd tea.Cmd
	m.form[m.formFocus], cmd = m.form[m.formFocus].Update(msg)
	return m, cmd
}

func (m *Model) save() tea.Cmd {
	fields := m.formFields()
	b := m.deps.Board
	return m.run(opSave, func(ctx context.Context) error {
		return b.Save(ctx, fields)
	})
}

var reportScopes = []reportfilter.Scope{reportfilter.ScopeAll, reportfilter.ScopeMonth, reportfilter.ScopeYear}

func (m *Model) handleReportKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	state := m.deps.Report.State()
	switch msg.String() {
	case "esc":
		m.deps.Report.Close()
		m.reportOpen = false
		return m, nil
	case "tab", "down":
		m.reportField = (m.reportField + 1) % 3
	case "shift+tab", "up":
		m.reportField = (m.reportField + 2) % 3
	case "left", "right":
		step := 1
		if msg.String() == "left" {
			step = -1
		}
		switch m.reportField {
		case 0:
			m.deps.Report.SetScope(cycleScope(state.Scope, step))
		case 1:
			m.deps.Report.SetMonth((state.Month + step + 13) % 13)
		case 2:
			m.deps.Report.SetYear(cycleYear(state.Years, state.Year, step))
		}
	case "enter":
		return m, m.run(opReport, m.deps.Report.Submit)
	}
	return m, nil
}

func cycleScope(current reportfilter.Scope, step int) reportfilter.Scope {
	index := 0
	for i, scope := range reportScopes {
		if scope == current {
			index = i
		}
	}
	n := len(reportScopes)
	return reportScopes[((index+step)%n+n)%n]
}

// cycleYear walks "none" followed by the offered years.
func cycleYear(years []int, current, step int) int {
	options := append([]int{0}, years...)
	index := 0
	for i, year := range options {
		if year == current {
			index = i
		}
	}
	n := len(options)
	return options[((index+step)%n+n)%n]
}

func (m *Model) handleSecretariaKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.secretariaOpen = false
		m.secretariaSearch.Blur()
		return m, nil
	case "up", "down", "pgup", "pgdown":
		var cmd tea.Cmd
		m.secretariaTable, cmd = m.secretariaTable.Update(msg)
		return m, cmd
	}
	var cmd tea.Cmd
	m.secretariaSearch, cmd = m.secretariaSearch.Update(msg)
	m.deps.Secretaria.Search(m.secretariaSearch.Value())
	return m, cmd
}

func (m *Model) openMerge(folder string) tea.Cmd {
	m.mergeWindow++
	m.merge = m.deps.NewMerger(windowCloser{ui: m.deps.UI, window: m.mergeWindow})
	m.mergeCursor = 0
	m.screen = ScreenMerge

	helper := m.merge
	pageURL := merger.MergeViewURL(m.deps.MergeViewURL, folder)
	return m.run(opMergeLoad, func(ctx context.Context) error {
		return helper.Load(ctx, pageURL)
	})
}

func (m *Model) closeMerge() tea.Cmd {
	m.merge = nil
	if m.mergeOnly {
		return tea.Quit
	}
	m.screen = ScreenBoard
	return nil
}

func (m *Model) handleMergeKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.merge == nil {
		return m, nil
	}
	files := m.merge.State().Files
	helper := m.merge

	switch msg.String() {
	case "esc", "q":
		return m, m.closeMerge()
	case "up", "k":
		if m.mergeCursor > 0 {
			m.mergeCursor--
		}
	case "down", "j":
		if m.mergeCursor < len(files)-1 {
			m.mergeCursor++
		}
	case " ", "x":
		helper.Toggle(m.mergeCursor)
	case "a":
		helper.SelectAll(len(helper.Selected()) != len(files))
	case "enter":
		return m, m.run(opMerge, func(ctx context.Context) error {
			return helper.Merge(ctx, false)
		})
	case "b":
		return m, m.run(opMerge, func(ctx context.Context) error {
			return helper.Merge(ctx, true)
		})
	case "f":
		return m, m.run(opNewFolder, helper.NewFolder)
	}
	return m, nil
}
