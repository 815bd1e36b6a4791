package pdfs

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sisregip-service/internal/app/contracts"
	"sisregip-service/internal/app/models"
	"sisregip-service/internal/pkg/constvars"
	"sisregip-service/internal/pkg/dto/requests"
	"sisregip-service/internal/pkg/dto/responses"
	"sisregip-service/internal/pkg/exceptions"
	"sisregip-service/internal/pkg/utils"
	"sort"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type pdfUsecase struct {
	Engine        contracts.PDFEngine
	LockerService contracts.LockerService
	AuditUsecase  contracts.AuditUsecase
	Opener        contracts.Opener
	Storage       contracts.Storage
	Log           *zap.Logger
}

var (
	pdfUsecaseInstance contracts.PDFUsecase
	oncePDFUsecase     sync.Once
)

// NewPDFUsecase accepts a nil storage when MinIO is not configured.
func NewPDFUsecase(
	engine contracts.PDFEngine,
	lockerService contracts.LockerService,
	auditUsecase contracts.AuditUsecase,
	opener contracts.Opener,
	storage contracts.Storage,
	logger *zap.Logger,
) contracts.PDFUsecase {
	oncePDFUsecase.Do(func() {
		pdfUsecaseInstance = &pdfUsecase{
			Engine:        engine,
			LockerService: lockerService,
			AuditUsecase:  auditUsecase,
			Opener:        opener,
			Storage:       storage,
			Log:           logger,
		}
	})
	return pdfUsecaseInstance
}

func (uc *pdfUsecase) List(ctx context.Context, request *requests.ListPDFs) ([]string, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("pdfUsecase.List called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingFolderPathKey, request.FolderPath),
	)

	folder, err := validateFolder(request.FolderPath)
	if err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(folder)
	if err != nil {
		uc.Log.Error("pdfUsecase.List error reading folder",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingFolderPathKey, folder),
			zap.Error(err),
		)
		return nil, exceptions.ErrListFolder(err)
	}

	type pdfFile struct {
		name    string
		modTime time.Time
	}
	files := make([]pdfFile, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), constvars.PDFExtension) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			// Removed between ReadDir and Info.
			continue
		}
		files = append(files, pdfFile{name: entry.Name(), modTime: info.ModTime()})
	}

	sort.SliceStable(files, func(i, j int) bool {
		if files[i].modTime.Equal(files[j].modTime) {
			return files[i].name < files[j].name
		}
		return files[i].modTime.Before(files[j].modTime)
	})

	names := make([]string, len(files))
	for i, file := range files {
		names[i] = file.name
	}

	uc.Log.Info("pdfUsecase.List succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingFilesCountKey, len(names)),
	)
	return names, nil
}

func (uc *pdfUsecase) Merge(ctx context.Context, request *requests.MergePDFs) (*responses.MergePDFs, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("pdfUsecase.Merge called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingFolderPathKey, request.FolderPath),
		zap.Int(constvars.LoggingFilesCountKey, len(request.FilesToMerge)),
		zap.Bool("remove_blank", request.RemoveBlank),
	)

	folder, err := validateFolder(request.FolderPath)
	if err != nil {
		return nil, err
	}
	if len(request.FilesToMerge) == 0 {
		return nil, exceptions.ErrNoFileSelected(nil)
	}

	lockKey := constvars.RedisKeyMergeLockPrefix + folder
	acquired, lockValue, err := uc.LockerService.TryLock(ctx, lockKey, constvars.MergeLockExpirationInSecond*time.Second)
	if err != nil {
		return nil, err
	}
	if !acquired {
		return nil, exceptions.ErrMergeInProgress(fmt.Errorf("folder %s", folder))
	}
	defer func() {
		if err := uc.LockerService.Unlock(context.WithoutCancel(ctx), lockKey, lockValue); err != nil {
			uc.Log.Warn("pdfUsecase.Merge error releasing merge lock",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingRedisKey, lockKey),
				zap.Error(err),
			)
		}
	}()

	analyses, skipped, err := uc.analyze(ctx, folder, request.FilesToMerge, request.RemoveBlank)
	if err != nil {
		return nil, err
	}

	selections := make([]models.PDFSelection, 0, len(analyses))
	blankRemoved := 0
	totalPages := 0
	for _, analysis := range analyses {
		// BlankPages is only populated when blank removal was requested.
		pages := analysis.KeptPages()
		blankRemoved += len(analysis.BlankPages)
		if len(pages) == 0 {
			continue
		}
		totalPages += len(pages)
		selections = append(selections, models.PDFSelection{Path: analysis.Path, Pages: pages})
	}

	if totalPages == 0 {
		return nil, exceptions.ErrNoValidPages(nil)
	}

	outputPath := filepath.Join(folder, constvars.MergedPDFFileName)
	pages, err := uc.Engine.Merge(ctx, selections, outputPath)
	if err != nil {
		uc.Log.Error("pdfUsecase.Merge error merging files",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingOutputPathKey, outputPath),
			zap.Error(err),
		)
		return nil, exceptions.ErrPDFEngine(err)
	}

	response := &responses.MergePDFs{
		OutputPath:        outputPath,
		Pages:             pages,
		BlankPagesRemoved: blankRemoved,
		SkippedFiles:      skipped,
	}

	if err := uc.Opener.Open(ctx, outputPath); err != nil {
		uc.Log.Warn("pdfUsecase.Merge error opening merged file",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
	}

	if uc.Storage != nil {
		objectName := constvars.MergeObjectPrefix + utils.GenerateFileName("mesclado", filepath.Base(folder), constvars.PDFExtension)
		if _, err := uc.Storage.UploadFile(ctx, objectName, constvars.MIMEApplicationPDF, outputPath); err != nil {
			uc.Log.Warn("pdfUsecase.Merge error archiving merged file",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingObjectNameKey, objectName),
				zap.Error(err),
			)
		} else {
			response.ObjectName = objectName
		}
	}

	uc.AuditUsecase.Record(ctx, request.Operator, constvars.AuditActionPDFsMerged,
		fmt.Sprintf("pasta: %s, arquivos: %d, paginas: %d", folder, len(selections), pages))

	uc.Log.Info("pdfUsecase.Merge succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingOutputPathKey, outputPath),
		zap.Int(constvars.LoggingPagesCountKey, pages),
		zap.Int(constvars.LoggingBlankPagesCountKey, blankRemoved),
	)
	return response, nil
}

// analyze scans the selected files concurrently and returns the readable
// ones in request order. Missing or unreadable files are reported as skipped.
func (uc *pdfUsecase) analyze(ctx context.Context, folder string, fileNames []string, detectBlank bool) ([]models.PDFAnalysis, []string, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	results := make([]*models.PDFAnalysis, len(fileNames))
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(constvars.PDFAnalysisConcurrency)

	for i, fileName := range fileNames {
		i, fileName := i, fileName
		group.Go(func() error {
			fullPath := filepath.Join(folder, filepath.Base(fileName))
			if _, err := os.Stat(fullPath); err != nil {
				uc.Log.Warn("pdfUsecase.analyze file not found, skipping",
					zap.String(constvars.LoggingRequestIDKey, requestID),
					zap.String(constvars.LoggingFileNameKey, fileName),
				)
				return nil
			}

			analysis, err := uc.Engine.Analyze(groupCtx, fullPath, detectBlank)
			if err != nil {
				if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
					return err
				}
				uc.Log.Warn("pdfUsecase.analyze error reading file, skipping",
					zap.String(constvars.LoggingRequestIDKey, requestID),
					zap.String(constvars.LoggingFileNameKey, fileName),
					zap.Error(err),
				)
				return nil
			}
			results[i] = analysis
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, nil, err
	}

	analyses := make([]models.PDFAnalysis, 0, len(results))
	skipped := make([]string, 0)
	for i, result := range results {
		if result == nil {
			skipped = append(skipped, fileNames[i])
			continue
		}
		analyses = append(analyses, *result)
	}
	return analyses, skipped, nil
}

func validateFolder(folderPath string) (string, error) {
	folderPath = strings.TrimSpace(folderPath)
	if folderPath == "" {
		return "", exceptions.ErrInvalidFolder(errors.New("empty folder path"), folderPath)
	}
	info, err := os.Stat(folderPath)
	if err != nil {
		return "", exceptions.ErrInvalidFolder(err, folderPath)
	}
	if !info.IsDir() {
		return "", exceptions.ErrInvalidFolder(errors.New("not a directory"), folderPath)
	}
	return filepath.Clean(folderPath), nil
}
