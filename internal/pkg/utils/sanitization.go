package utils

import (
	"sisregip-service/internal/pkg/constvars"
	"sisregip-service/internal/pkg/dto/requests"
	"strings"
)

func SanitizeProtocolRequest(input *requests.ProtocolFields) {
	input.Prot = strings.TrimSpace(input.Prot)
	input.Date = strings.TrimSpace(input.Date)
	input.DeliveredAt = strings.TrimSpace(input.DeliveredAt)
	input.Operator = SanitizeOperator(input.Operator)
}

func SanitizeAuditRequest(input *requests.RegisterAudit) {
	input.Operator = SanitizeOperator(input.Operator)
	input.Action = strings.ToUpper(strings.TrimSpace(input.Action))
	input.Details = strings.TrimSpace(input.Details)
}

// SanitizeOperator upper-cases the operator label, falling back to the
// unidentified sentinel.
func SanitizeOperator(operator string) string {
	operator = strings.ToUpper(strings.TrimSpace(operator))
	if operator == "" {
		return constvars.OperatorUnidentified
	}
	return operator
}
