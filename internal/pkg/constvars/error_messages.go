package constvars

// Validation messages mapper
var CustomValidationErrorMessages = map[string]string{
	"required":  "é obrigatório",
	"min":       "deve ter ao menos %s caracteres",
	"max":       "deve ter no máximo %s caracteres",
	"oneof":     "deve ser um de [%s]",
	"gt":        "deve ser maior que %s",
	"date_br":   "deve estar no formato DD/MM/AAAA",
	"not_blank": "não pode estar em branco",
}

// Tags that require parameter substitution
var TagsWithParams = map[string]bool{
	"min":   true,
	"max":   true,
	"oneof": true,
	"gt":    true,
}

// Client-facing messages
const (
	ErrClientCannotProcessRequest          = "Não foi possível processar a requisição."
	ErrClientSomethingWrongWithApplication = "Erro interno da aplicação."
	ErrClientServerLongRespond             = "O servidor demorou demais para responder."
	ErrClientProtocolRequired              = "O campo PROTOCOLO é obrigatório."
	ErrClientProtocolAlreadyExists         = "Já existe um protocolo ativo com este número."
	ErrClientProtocolNotFound              = "Protocolo não encontrado."
	ErrClientFetchSecretaria               = "Erro ao carregar dados da Secretaria."
	ErrClientInvalidFolder                 = "Pasta inválida."
	ErrClientNoFileSelected                = "Nenhum arquivo selecionado."
	ErrClientNoValidPages                  = "Nenhuma página válida encontrada."
	ErrClientListFiles                     = "Erro ao listar arquivos."
	ErrClientMergeInProgress               = "Já existe uma mesclagem em andamento para esta pasta."
	ErrClientInvalidReportFilter           = "Filtro de relatório inválido."
	ErrClientTooManyRequests               = "Muitas requisições, tente novamente em instantes."
	ErrClientInvalidChangelog              = "Não foi possível carregar as atualizações."
)

// Developer-facing messages
const (
	ErrDevInvalidInput               = "invalid input"
	ErrDevValidationFailed           = "validation failed"
	ErrDevCannotParseJSON            = "cannot parse JSON body"
	ErrDevCannotMarshalJSON          = "cannot marshal JSON"
	ErrDevServerDeadlineExceeded     = "server deadline exceeded"
	ErrDevReadBody                   = "cannot read request body"
	ErrDevDBFailedToFindData         = "failed to find data in database"
	ErrDevDBFailedToInsertData       = "failed to insert data into database"
	ErrDevDBFailedToUpdateData       = "failed to update data in database"
	ErrDevDBFailedToBeginTx          = "failed to begin database transaction"
	ErrDevDBFailedToCommitTx         = "failed to commit database transaction"
	ErrDevDBUniqueViolation          = "unique constraint violated on prot"
	ErrDevDBNoRowsAffected           = "no active row matched"
	ErrDevDBFailedToFindDocument     = "failed to find document in mongo"
	ErrDevDBFailedToIterateDocuments = "failed to iterate mongo cursor"
	ErrDevRedisGet                   = "failed to get key %s from redis"
	ErrDevRedisSet                   = "failed to set key in redis"
	ErrDevRedisDelete                = "failed to delete key from redis"
	ErrDevRedisUnlock                = "failed to release redis lock"
	ErrDevMinioCreateObject          = "failed to create object in bucket %s"
	ErrDevRabbitMQPublishMessage     = "failed to publish message to queue %s"
	ErrDevInvalidDate                = "invalid date %q"
	ErrDevInvalidReportFilter        = "invalid report filter %s=%q"
	ErrDevRenderReport               = "failed to render report template"
	ErrDevWriteReport                = "failed to write report file"
	ErrDevInvalidFolder              = "folder %q is not a directory"
	ErrDevListFolder                 = "failed to list pdf files"
	ErrDevNoFileSelected             = "files_to_merge is empty"
	ErrDevNoValidPages               = "merge produced zero pages"
	ErrDevPDFEngine                  = "pdf engine failure"
	ErrDevMergeLocked                = "merge lock for folder is held"
	ErrDevRenderMarkdown             = "failed to render changelog markdown"
	ErrDevTooManyRequests            = "rate limit exceeded"
	ErrDevPanicRecovered             = "panic recovered"
)
