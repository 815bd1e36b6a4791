package requests

type RegisterAudit struct {
	Operator string `json:"operador" validate:"max=100"`
	Action   string `json:"acao" validate:"not_blank,max=50"`
	Details  string `json:"detalhes" validate:"max=500"`
}
