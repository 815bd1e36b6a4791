// Package ports declares the UI capabilities the desk components depend on.
// The terminal front end and the tests provide the implementations.
package ports

import "context"

// Alerter shows a blocking message and returns once the operator dismissed it.
type Alerter interface {
	Alert(ctx context.Context, message string)
}

// Confirmer asks a yes/no question. Anything but an explicit yes is a decline.
type Confirmer interface {
	Confirm(ctx context.Context, message string) bool
}

type Navigator interface {
	Navigate(ctx context.Context, target string)
}

type WindowCloser interface {
	Close()
}

// Bridge is the host capability used by the merge helper. RequestFolder
// reports ok=false when the operator cancelled the picker.
type Bridge interface {
	RequestFolder(ctx context.Context) (path string, ok bool, err error)
	OpenMergeView(ctx context.Context, path string) error
}

// Navigation targets.
const (
	TargetLogin = "login"
	TargetBoard = "board"
)
