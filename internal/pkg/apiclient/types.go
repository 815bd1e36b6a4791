package apiclient

import (
	"sisregip-service/internal/pkg/dto/requests"
	"sisregip-service/internal/pkg/dto/responses"
)

// ID is the canonical protocol identifier. The backend may send it as a
// number or as a numeric string; both decode to the same value.
type ID int64

func (id *ID) UnmarshalJSON(data []byte) error {
	var canonical requests.ProtocolID
	if err := canonical.UnmarshalJSON(data); err != nil {
		return err
	}
	*id = ID(canonical)
	return nil
}

type Protocol struct {
	ID          ID     `json:"ID"`
	Prot        string `json:"PROT"`
	Date        string `json:"DATA"`
	Name        string `json:"NOME"`
	PMH         string `json:"PMH"`
	DeliveredAt string `json:"ENTREGA"`
	ReceivedAt  string `json:"RECEBIMENTO"`
}

// ProtocolFields is the editable part of a protocol, as sent on add and edit.
type ProtocolFields struct {
	Prot        string `json:"PROT"`
	Date        string `json:"DATA"`
	Name        string `json:"NOME"`
	PMH         string `json:"PMH"`
	DeliveredAt string `json:"ENTREGA"`
	ReceivedAt  string `json:"RECEBIMENTO"`
}

func (p Protocol) Fields() ProtocolFields {
	return ProtocolFields{
		Prot:        p.Prot,
		Date:        p.Date,
		Name:        p.Name,
		PMH:         p.PMH,
		DeliveredAt: p.DeliveredAt,
		ReceivedAt:  p.ReceivedAt,
	}
}

type SecretaryRecord = responses.SecretaryRecord

type Changelog = responses.Changelog

// Result is the {success, message} envelope of every mutating endpoint.
type Result struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
