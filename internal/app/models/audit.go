package models

import "time"

type AuditEvent struct {
	ID        int64     `json:"id"`
	EventID   string    `json:"event_id"`
	Operator  string    `json:"operador"`
	Action    string    `json:"acao"`
	Details   string    `json:"detalhes"`
	CreatedAt time.Time `json:"criado_em"`
}
