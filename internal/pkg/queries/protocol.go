package queries

const (
	GetActiveProtocols = `
		SELECT p.id, p.prot, COALESCE(CAST(p.data_protocolo AS TEXT), ''), COALESCE(u.nome, ''), COALESCE(p.pmh, ''),
			COALESCE(CAST(p.data_entrega AS TEXT), ''), COALESCE(r.nome, '')
		FROM protocolo p
		LEFT JOIN usuario u ON p.usuario_id = u.id
		LEFT JOIN recebedor r ON p.recebedor_id = r.id
		WHERE p.ativo = TRUE
		ORDER BY p.data_protocolo DESC NULLS LAST, p.id DESC`

	GetActiveProtocolByID = `
		SELECT p.id, p.prot, COALESCE(CAST(p.data_protocolo AS TEXT), ''), COALESCE(u.nome, ''), COALESCE(p.pmh, ''),
			COALESCE(CAST(p.data_entrega AS TEXT), ''), COALESCE(r.nome, '')
		FROM protocolo p
		LEFT JOIN usuario u ON p.usuario_id = u.id
		LEFT JOIN recebedor r ON p.recebedor_id = r.id
		WHERE p.id = $1 AND p.ativo = TRUE`

	GetActiveProtocolsForReport = `
		SELECT p.id, p.prot, COALESCE(CAST(p.data_protocolo AS TEXT), ''), COALESCE(u.nome, ''), COALESCE(p.pmh, ''),
			COALESCE(CAST(p.data_entrega AS TEXT), ''), COALESCE(r.nome, '')
		FROM protocolo p
		LEFT JOIN usuario u ON p.usuario_id = u.id
		LEFT JOIN recebedor r ON p.recebedor_id = r.id
		WHERE p.ativo = TRUE
		ORDER BY p.prot`

	// Bounds are ISO dates, start inclusive and end exclusive.
	GetActiveProtocolsForReportInRange = `
		SELECT p.id, p.prot, COALESCE(CAST(p.data_protocolo AS TEXT), ''), COALESCE(u.nome, ''), COALESCE(p.pmh, ''),
			COALESCE(CAST(p.data_entrega AS TEXT), ''), COALESCE(r.nome, '')
		FROM protocolo p
		LEFT JOIN usuario u ON p.usuario_id = u.id
		LEFT JOIN recebedor r ON p.recebedor_id = r.id
		WHERE p.ativo = TRUE AND p.data_protocolo >= $1 AND p.data_protocolo < $2
		ORDER BY p.prot`

	InsertProtocol = `
		INSERT INTO protocolo (prot, data_protocolo, usuario_id, pmh, data_entrega, recebedor_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`

	UpdateProtocolByID = `
		UPDATE protocolo
		SET data_protocolo = $1, usuario_id = $2, pmh = $3, data_entrega = $4, recebedor_id = $5
		WHERE id = $6 AND ativo = TRUE`

	SoftDeleteProtocolByID = "UPDATE protocolo SET ativo = FALSE WHERE id = $1 AND ativo = TRUE"

	GetUsuarioIDByName   = "SELECT id FROM usuario WHERE nome = $1"
	InsertUsuario        = "INSERT INTO usuario (nome, prontuario) VALUES ($1, $2) RETURNING id"
	GetRecebedorIDByName = "SELECT id FROM recebedor WHERE nome = $1"
	InsertRecebedor      = "INSERT INTO recebedor (nome) VALUES ($1) RETURNING id"
)
