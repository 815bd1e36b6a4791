package models

import "sisregip-service/internal/pkg/dto/responses"

type SecretaryRecord struct {
	Protocolo  string `bson:"protocolo" json:"protocolo"`
	Prontuario string `bson:"prontuario" json:"prontuario"`
	Nome       string `bson:"nome" json:"nome"`
	DataProt   string `bson:"data_prot" json:"data_prot"`
	Finalidade string `bson:"finalidade" json:"finalidade"`
	Alta       string `bson:"alta" json:"alta"`
	Obs        string `bson:"obs" json:"obs"`
}

func (s SecretaryRecord) ConvertIntoResponse() responses.SecretaryRecord {
	return responses.SecretaryRecord{
		Protocolo:  s.Protocolo,
		Prontuario: s.Prontuario,
		Nome:       s.Nome,
		DataProt:   s.DataProt,
		Finalidade: s.Finalidade,
		Alta:       s.Alta,
		Obs:        s.Obs,
	}
}
