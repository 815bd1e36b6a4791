package utils

import (
	"sisregip-service/internal/pkg/constvars"
	"sisregip-service/internal/pkg/dto/requests"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeProtocolRequest(t *testing.T) {
	t.Run("Trims Code And Dates", func(t *testing.T) {
		request := &requests.ProtocolFields{
			Prot:        "  2024/001 ",
			Date:        " 05/03/2024",
			Name:        "  Maria  ",
			DeliveredAt: "   ",
			Operator:    " joana ",
		}

		SanitizeProtocolRequest(request)

		assert.Equal(t, "2024/001", request.Prot, "protocol code should be trimmed")
		assert.Equal(t, "05/03/2024", request.Date, "date should be trimmed")
		assert.Equal(t, "", request.DeliveredAt, "blank delivery should become empty")
		assert.Equal(t, "  Maria  ", request.Name, "free text name is stored as typed")
		assert.Equal(t, "JOANA", request.Operator, "operator should be upper-cased")
	})

	t.Run("Missing Operator", func(t *testing.T) {
		request := &requests.ProtocolFields{Prot: "1"}

		SanitizeProtocolRequest(request)

		assert.Equal(t, constvars.OperatorUnidentified, request.Operator)
	})
}

func TestSanitizeAuditRequest(t *testing.T) {
	request := &requests.RegisterAudit{
		Operator: "ana",
		Action:   " sessao_inicio ",
		Details:  " Login no sistema ",
	}

	SanitizeAuditRequest(request)

	assert.Equal(t, "ANA", request.Operator)
	assert.Equal(t, constvars.AuditActionSessionStart, request.Action)
	assert.Equal(t, constvars.AuditDetailsSessionStart, request.Details)
}
