package constvars

type ContextKey string

const (
	CONTEXT_REQUEST_ID_KEY           ContextKey = "request_id"
	CONTEXT_IS_CLIENT_REQUEST_ID_KEY ContextKey = "is_client_request_id"
	CONTEXT_RAW_BODY                 ContextKey = "raw_body"
)

const (
	EnvironmentDevelopment = "development"
	EnvironmentProduction  = "production"
)

const (
	DatabaseDriverPostgres = "postgres"
	DatabaseDriverSQLite   = "sqlite"
)

const (
	SecretariaSourceSQL   = "sql"
	SecretariaSourceMongo = "mongo"
)

// Operator attached to mutations whose session never identified itself.
const OperatorUnidentified = "NÃO IDENTIFICADO"

// Audit actions written to the auditoria table.
const (
	AuditActionSessionStart     = "SESSAO_INICIO"
	AuditActionProtocolCreated  = "PROTOCOLO_CRIADO"
	AuditActionProtocolUpdated  = "PROTOCOLO_EDITADO"
	AuditActionProtocolDeleted  = "PROTOCOLO_EXCLUIDO"
	AuditActionReportGenerated  = "RELATORIO_GERADO"
	AuditActionPDFsMerged       = "PDFS_MESCLADOS"
	AuditDetailsSessionStart    = "Login no sistema"
	AuditQueueName              = "sisregip_audit_events"
	AuditQueueDeadLetterName    = "sisregip_audit_events_dlq"
	AuditPublishTimeoutInSecond = 5
)

// Protocol field formats.
const (
	DateLayoutBR          = "02/01/2006"
	DateLayoutISO         = "2006-01-02"
	DateLayoutReportStamp = "02/01/2006 15:04"
	MonthFilterLayout     = "2006-01"
)

// Report scopes accepted by the print preview.
const (
	ReportFilterAll   = "all"
	ReportFilterMonth = "month"
	ReportFilterYear  = "year"
)

const (
	ReportPreviewFileName = "relatorio_preview.html"
	ReportObjectPrefix    = "relatorios/"
	MergeObjectPrefix     = "mesclados/"
)

// PDF merge constants.
const (
	MergedPDFFileName           = "_ARQUIVO_FINAL_MESCLADO.pdf"
	PDFExtension                = ".pdf"
	BlankPageContentThreshold   = 100
	PDFAnalysisConcurrency      = 4
	MergeLockExpirationInSecond = 120
)

const (
	RedisKeySecretariaProtocols = "secretaria:protocols"
	RedisKeyMergeLockPrefix     = "lock:merge:"
	SecretariaCacheTTLInMinute  = 5
)

const (
	MongoCollectionSecretariaProtocols = "secretaria_protocols"
)

const (
	APIPrefix   = "/api"
	MetricsPath = "/metrics"
)
