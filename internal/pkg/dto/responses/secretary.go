package responses

type SecretaryRecord struct {
	Protocolo  string `json:"protocolo"`
	Prontuario string `json:"prontuario"`
	Nome       string `json:"nome"`
	DataProt   string `json:"data_prot"`
	Finalidade string `json:"finalidade"`
	Alta       string `json:"alta"`
	Obs        string `json:"obs"`
}
