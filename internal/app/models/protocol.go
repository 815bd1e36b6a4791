package models

import (
	"sisregip-service/internal/pkg/dto/responses"
	"sisregip-service/internal/pkg/utils"
	"strings"
)

const (
	ProtocolStatusDelivered = "delivered"
	ProtocolStatusPending   = "pending"
)

// Protocol mirrors a protocolo row joined with its subject and receiver.
// Dates hold the stored ISO form, empty when NULL.
type Protocol struct {
	ID           int64
	Prot         string
	ProtocolDate string
	SubjectName  string
	PMH          string
	DeliveryDate string
	ReceiverName string
}

func (p Protocol) Status() string {
	if strings.TrimSpace(p.DeliveryDate) != "" {
		return ProtocolStatusDelivered
	}
	return ProtocolStatusPending
}

func (p Protocol) ConvertIntoResponse() responses.Protocol {
	return responses.Protocol{
		ID:          p.ID,
		Prot:        p.Prot,
		Date:        utils.FormatDateBR(p.ProtocolDate),
		Name:        p.SubjectName,
		PMH:         p.PMH,
		DeliveredAt: utils.FormatDateBR(p.DeliveryDate),
		ReceivedAt:  p.ReceiverName,
	}
}
