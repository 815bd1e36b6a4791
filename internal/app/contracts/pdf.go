package contracts

import (
	"context"
	"sisregip-service/internal/app/models"
	"sisregip-service/internal/pkg/dto/requests"
	"sisregip-service/internal/pkg/dto/responses"
)

type PDFUsecase interface {
	List(ctx context.Context, request *requests.ListPDFs) ([]string, error)
	Merge(ctx context.Context, request *requests.MergePDFs) (*responses.MergePDFs, error)
}

// PDFEngine isolates the PDF library from the merge workflow.
type PDFEngine interface {
	Analyze(ctx context.Context, path string, detectBlank bool) (*models.PDFAnalysis, error)
	Merge(ctx context.Context, selections []models.PDFSelection, outputPath string) (int, error)
}
