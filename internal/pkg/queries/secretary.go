package queries

const (
	GetAllSecretaryRecords = `
		SELECT COALESCE(protocolo, ''), COALESCE(prontuario, ''), COALESCE(nome, ''), COALESCE(data_prot, ''),
			COALESCE(finalidade, ''), COALESCE(alta, ''), COALESCE(obs, '')
		FROM secretaria_protocolo
		ORDER BY id`
)
