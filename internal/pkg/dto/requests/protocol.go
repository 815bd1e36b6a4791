package requests

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/goccy/go-json"
)

// ProtocolID accepts the identifier as a JSON number or a numeric string and
// always holds the canonical int64.
type ProtocolID int64

func (id *ProtocolID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = 0
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var raw string
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid protocol id %q: %w", raw, err)
		}
		*id = ProtocolID(parsed)
		return nil
	}
	var number int64
	if err := json.Unmarshal(data, &number); err != nil {
		return fmt.Errorf("invalid protocol id %s: %w", data, err)
	}
	*id = ProtocolID(number)
	return nil
}

type ProtocolFields struct {
	Prot        string `json:"PROT" validate:"not_blank,max=50"`
	Date        string `json:"DATA" validate:"date_br"`
	Name        string `json:"NOME" validate:"max=200"`
	PMH         string `json:"PMH" validate:"max=50"`
	DeliveredAt string `json:"ENTREGA" validate:"date_br"`
	ReceivedAt  string `json:"RECEBIMENTO" validate:"max=200"`
	Operator    string `json:"OPERADOR"`
}

type CreateProtocol struct {
	ProtocolFields
}

type UpdateProtocol struct {
	ID ProtocolID `json:"ID" validate:"gt=0"`
	ProtocolFields
}

type DeleteProtocol struct {
	ID       ProtocolID `json:"ID" validate:"gt=0"`
	Operator string     `json:"OPERADOR"`
}
