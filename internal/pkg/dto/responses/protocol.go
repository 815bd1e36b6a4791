package responses

type Protocol struct {
	ID          int64  `json:"ID"`
	Prot        string `json:"PROT"`
	Date        string `json:"DATA"`
	Name        string `json:"NOME"`
	PMH         string `json:"PMH"`
	DeliveredAt string `json:"ENTREGA"`
	ReceivedAt  string `json:"RECEBIMENTO"`
}
