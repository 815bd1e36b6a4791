package apiclient

import (
	"errors"
	"fmt"
)

const communicationErrorPrefix = "Erro de comunicação: "

// APIError is a response the backend answered with success=false or a non-2xx
// status. Message is the server-supplied text shown to the operator.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return e.Message
}

// AlertMessage turns any client error into the text of a blocking alert:
// the server message when there is one, a communication error otherwise.
func AlertMessage(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return communicationErrorPrefix + err.Error()
}

func errUnexpectedStatus(status int) error {
	return fmt.Errorf("unexpected status %d", status)
}
