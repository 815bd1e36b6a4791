package requests

type PrintPreview struct {
	FilterType  string `json:"filter_type" validate:"omitempty,oneof=all month year"`
	FilterValue string `json:"filter_value"`
	Operator    string `json:"OPERADOR"`
}
