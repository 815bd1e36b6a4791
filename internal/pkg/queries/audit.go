package queries

const (
	InsertAudit = "INSERT INTO auditoria (operador, acao, detalhes, criado_em) VALUES ($1, $2, $3, $4) RETURNING id"
)
