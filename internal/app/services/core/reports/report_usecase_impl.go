package reports

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"sisregip-service/internal/app/contracts"
	"sisregip-service/internal/app/models"
	"sisregip-service/internal/pkg/constvars"
	"sisregip-service/internal/pkg/dto/requests"
	"sisregip-service/internal/pkg/dto/responses"
	"sisregip-service/internal/pkg/exceptions"
	"sisregip-service/internal/pkg/utils"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

//go:embed templates/report.html.tmpl
var templateFS embed.FS

var reportTemplate = template.Must(template.ParseFS(templateFS, "templates/report.html.tmpl"))

type reportView struct {
	GeneratedAt string
	ScopeLabel  string
	Summary     models.ReportSummary
	Rows        []responses.Protocol
}

type reportUsecase struct {
	ProtocolRepository contracts.ProtocolRepository
	AuditUsecase       contracts.AuditUsecase
	Opener             contracts.Opener
	Storage            contracts.Storage
	OutputDir          string
	Location           *time.Location
	Log                *zap.Logger
	now                func() time.Time
}

var (
	reportUsecaseInstance contracts.ReportUsecase
	onceReportUsecase     sync.Once
)

// NewReportUsecase accepts a nil storage when MinIO is not configured. An
// empty outputDir writes previews to the system temp directory.
func NewReportUsecase(
	protocolRepository contracts.ProtocolRepository,
	auditUsecase contracts.AuditUsecase,
	opener contracts.Opener,
	storage contracts.Storage,
	outputDir string,
	location *time.Location,
	logger *zap.Logger,
) contracts.ReportUsecase {
	onceReportUsecase.Do(func() {
		if outputDir == "" {
			outputDir = os.TempDir()
		}
		if location == nil {
			location = time.Local
		}
		reportUsecaseInstance = &reportUsecase{
			ProtocolRepository: protocolRepository,
			AuditUsecase:       auditUsecase,
			Opener:             opener,
			Storage:            storage,
			OutputDir:          outputDir,
			Location:           location,
			Log:                logger,
			now:                time.Now,
		}
	})
	return reportUsecaseInstance
}

func (uc *reportUsecase) Preview(ctx context.Context, request *requests.PrintPreview) (*responses.ReportPreview, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("reportUsecase.Preview called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingFilterTypeKey, request.FilterType),
		zap.String(constvars.LoggingFilterValueKey, request.FilterValue),
	)

	html, summary, err := uc.build(ctx, request.FilterType, request.FilterValue)
	if err != nil {
		return nil, err
	}

	filePath := filepath.Join(uc.OutputDir, constvars.ReportPreviewFileName)
	if err := os.WriteFile(filePath, html, 0o644); err != nil {
		uc.Log.Error("reportUsecase.Preview error writing preview file",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingOutputPathKey, filePath),
			zap.Error(err),
		)
		return nil, exceptions.ErrWriteReport(err)
	}

	response := &responses.ReportPreview{
		FilePath:  filePath,
		Total:     summary.Total,
		Delivered: summary.Delivered,
		Pending:   summary.Pending,
	}

	if err := uc.Opener.Open(ctx, filePath); err != nil {
		uc.Log.Warn("reportUsecase.Preview error opening preview",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
	} else {
		response.Opened = true
	}

	if uc.Storage != nil {
		objectName := constvars.ReportObjectPrefix + utils.GenerateFileName("relatorio", scopeSlug(request.FilterType, request.FilterValue), ".html")
		_, err := uc.Storage.UploadObject(ctx, objectName, constvars.MIMETextHTMLCharsetUTF8, bytes.NewReader(html), int64(len(html)))
		if err != nil {
			uc.Log.Warn("reportUsecase.Preview error archiving report",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingObjectNameKey, objectName),
				zap.Error(err),
			)
		} else {
			response.ObjectName = objectName
		}
	}

	uc.AuditUsecase.Record(ctx, request.Operator, constvars.AuditActionReportGenerated,
		fmt.Sprintf("filtro: %s %s, total: %d", normalizedFilterType(request.FilterType), request.FilterValue, summary.Total))

	uc.Log.Info("reportUsecase.Preview succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingOutputPathKey, filePath),
		zap.Int(constvars.LoggingProtocolsCountKey, summary.Total),
	)
	return response, nil
}

func (uc *reportUsecase) Render(ctx context.Context, filterType, filterValue string) ([]byte, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("reportUsecase.Render called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingFilterTypeKey, filterType),
		zap.String(constvars.LoggingFilterValueKey, filterValue),
	)

	html, _, err := uc.build(ctx, filterType, filterValue)
	if err != nil {
		return nil, err
	}
	return html, nil
}

func (uc *reportUsecase) build(ctx context.Context, filterType, filterValue string) ([]byte, models.ReportSummary, error) {
	scope, err := ParseReportScope(filterType, filterValue)
	if err != nil {
		return nil, models.ReportSummary{}, err
	}

	protocols, err := uc.ProtocolRepository.FindForReport(ctx, scope.Start, scope.End)
	if err != nil {
		return nil, models.ReportSummary{}, err
	}

	summary := models.SummarizeProtocols(protocols)
	view := reportView{
		GeneratedAt: uc.now().In(uc.Location).Format(constvars.DateLayoutReportStamp),
		ScopeLabel:  scope.Label,
		Summary:     summary,
		Rows:        make([]responses.Protocol, len(protocols)),
	}
	for i, eachProtocol := range protocols {
		view.Rows[i] = eachProtocol.ConvertIntoResponse()
	}

	var buf bytes.Buffer
	if err := reportTemplate.Execute(&buf, view); err != nil {
		return nil, models.ReportSummary{}, exceptions.ErrRenderReport(err)
	}
	return buf.Bytes(), summary, nil
}

// ParseReportScope turns the filter pair into date bounds. A scope without a
// value covers every record.
func ParseReportScope(filterType, filterValue string) (*models.ReportScope, error) {
	filterType = normalizedFilterType(filterType)
	filterValue = strings.TrimSpace(filterValue)
	scope := &models.ReportScope{FilterType: filterType, FilterValue: filterValue, Label: "Todos"}

	if filterType == constvars.ReportFilterAll || filterValue == "" {
		return scope, nil
	}

	switch filterType {
	case constvars.ReportFilterMonth:
		start, err := time.Parse(constvars.MonthFilterLayout, filterValue)
		if err != nil {
			return nil, exceptions.ErrInvalidReportFilter(err, filterType, filterValue)
		}
		end := start.AddDate(0, 1, 0)
		scope.Start, scope.End = &start, &end
		scope.Label = start.Format("01/2006")
	case constvars.ReportFilterYear:
		start, err := time.Parse("2006", filterValue)
		if err != nil {
			return nil, exceptions.ErrInvalidReportFilter(err, filterType, filterValue)
		}
		end := start.AddDate(1, 0, 0)
		scope.Start, scope.End = &start, &end
		scope.Label = filterValue
	default:
		return nil, exceptions.ErrInvalidReportFilter(nil, filterType, filterValue)
	}
	return scope, nil
}

func normalizedFilterType(filterType string) string {
	filterType = strings.ToLower(strings.TrimSpace(filterType))
	if filterType == "" {
		return constvars.ReportFilterAll
	}
	return filterType
}

func scopeSlug(filterType, filterValue string) string {
	filterType = normalizedFilterType(filterType)
	if strings.TrimSpace(filterValue) == "" {
		return filterType
	}
	return filterType + "-" + strings.TrimSpace(filterValue)
}
