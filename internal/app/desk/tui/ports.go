package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
)

type alertMsg struct {
	text string
	done chan struct{}
}

type confirmMsg struct {
	text  string
	reply chan bool
}

type folderReply struct {
	path string
	ok   bool
}

type promptMsg struct {
	text  string
	reply chan folderReply
}

type navigateMsg struct{ target string }

type openMergeMsg struct{ folder string }

type closeWindowMsg struct{ window int }

// refreshMsg only asks for a redraw.
type refreshMsg struct{}

// opDoneMsg reports that a background operation returned.
type opDoneMsg struct {
	op  string
	err error
}

// UI implements the desk ports on top of a running bubbletea program. Every
// blocking call parks the caller until the operator answers in the terminal.
type UI struct {
	send func(tea.Msg)
}

// NewUI builds the ports around send, usually (*tea.Program).Send.
func NewUI(send func(tea.Msg)) *UI {
	return &UI{send: send}
}

func (u *UI) Alert(ctx context.Context, message string) {
	done := make(chan struct{})
	u.send(alertMsg{text: message, done: done})
	select {
	case <-done:
	case <-ctx.Done():
	}
}

func (u *UI) Confirm(ctx context.Context, message string) bool {
	reply := make(chan bool, 1)
	u.send(confirmMsg{text: message, reply: reply})
	select {
	case ok := <-reply:
		return ok
	case <-ctx.Done():
		return false
	}
}

func (u *UI) Navigate(_ context.Context, target string) {
	u.send(navigateMsg{target: target})
}

func (u *UI) RequestFolder(ctx context.Context) (string, bool, error) {
	reply := make(chan folderReply, 1)
	u.send(promptMsg{text: "Pasta com os PDFs:", reply: reply})
	select {
	case answer := <-reply:
		return answer.path, answer.ok, nil
	case <-ctx.Done():
		return "", false, ctx.Err()
	}
}

func (u *UI) OpenMergeView(_ context.Context, path string) error {
	u.send(openMergeMsg{folder: path})
	return nil
}

// Refresh is handed to the components' OnChange hooks. It never blocks the
// caller, which may be the program's own update loop.
func (u *UI) Refresh() {
	go u.send(refreshMsg{})
}

// windowCloser closes one merge window. A close aimed at a window that was
// already replaced is ignored.
type windowCloser struct {
	ui     *UI
	window int
}

func (c windowCloser) Close() {
	c.ui.send(closeWindowMsg{window: c.window})
}
