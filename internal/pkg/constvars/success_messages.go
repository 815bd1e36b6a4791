package constvars

const (
	ResponseUnknown = "unknown"

	AuditRegisteredSuccessMessage  = "Auditoria registrada."
	ProtocolCreatedSuccessMessage  = "Protocolo adicionado com sucesso."
	ProtocolUpdatedSuccessMessage  = "Protocolo editado com sucesso."
	ProtocolDeletedSuccessMessage  = "Protocolo excluído com sucesso."
	ReportPreviewOpenedMessage     = "Preview aberto no navegador."
	ReportPreviewGeneratedMessage  = "Relatório gerado."
	PDFsListedSuccessMessage       = "Arquivos listados."
	PDFsMergedSuccessMessage       = "Arquivos mesclados!"
	ChangelogFetchedSuccessMessage = "Atualizações do sistema."
	FallbackActionCompletedMessage = "Ação concluída."
)
