package pdfs

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sisregip-service/internal/app/contracts"
	"sisregip-service/internal/app/models"
	"sisregip-service/internal/pkg/constvars"
	"strconv"
	"sync"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

var disablePDFCPUConfigDir sync.Once

type pdfcpuEngine struct{}

func NewPDFCPUEngine() contracts.PDFEngine {
	disablePDFCPUConfigDir.Do(api.DisableConfigDir)
	return &pdfcpuEngine{}
}

func (e *pdfcpuEngine) Analyze(ctx context.Context, path string, detectBlank bool) (*models.PDFAnalysis, error) {
	pdfCtx, err := api.ReadContextFile(path)
	if err != nil {
		return nil, err
	}

	analysis := &models.PDFAnalysis{Path: path, PageCount: pdfCtx.PageCount}
	if !detectBlank {
		return analysis, nil
	}

	for page := 1; page <= pdfCtx.PageCount; page++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		content, err := pageContent(pdfCtx, page)
		if err != nil {
			return nil, fmt.Errorf("page %d: %w", page, err)
		}
		if IsBlankContent(content) {
			analysis.BlankPages = append(analysis.BlankPages, page)
		}
	}
	return analysis, nil
}

// Merge writes the selected pages of every input into outputPath. Inputs
// that lose pages are trimmed into temporary copies first.
func (e *pdfcpuEngine) Merge(ctx context.Context, selections []models.PDFSelection, outputPath string) (int, error) {
	tempDir, err := os.MkdirTemp("", "sisregip-merge-*")
	if err != nil {
		return 0, err
	}
	defer os.RemoveAll(tempDir)

	inputs := make([]string, 0, len(selections))
	for i, selection := range selections {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		if len(selection.Pages) == 0 {
			continue
		}

		input := selection.Path
		pageCount, err := api.PageCountFile(selection.Path)
		if err != nil {
			return 0, err
		}
		if len(selection.Pages) != pageCount {
			input = filepath.Join(tempDir, fmt.Sprintf("%03d%s", i, constvars.PDFExtension))
			if err := api.TrimFile(selection.Path, input, pageSelectors(selection.Pages), nil); err != nil {
				return 0, err
			}
		}
		inputs = append(inputs, input)
	}

	if len(inputs) == 0 {
		return 0, nil
	}

	tempOutput := filepath.Join(tempDir, constvars.MergedPDFFileName)
	if err := api.MergeCreateFile(inputs, tempOutput, false, nil); err != nil {
		return 0, err
	}
	pages, err := api.PageCountFile(tempOutput)
	if err != nil {
		return 0, err
	}
	if err := moveFile(tempOutput, outputPath); err != nil {
		return 0, err
	}
	return pages, nil
}

func pageContent(pdfCtx *model.Context, page int) ([]byte, error) {
	reader, err := pdfcpu.ExtractPageContent(pdfCtx, page)
	if err != nil {
		return nil, err
	}
	if reader == nil {
		return nil, nil
	}
	return io.ReadAll(reader)
}

// IsBlankContent reports a page as blank when its content stream shows no
// text and is shorter than the blank threshold.
func IsBlankContent(content []byte) bool {
	if hasTextOperator(content) {
		return false
	}
	return len(content) < constvars.BlankPageContentThreshold
}

func hasTextOperator(content []byte) bool {
	for _, operator := range [][]byte{[]byte("Tj"), []byte("TJ")} {
		index := 0
		for {
			found := bytes.Index(content[index:], operator)
			if found < 0 {
				break
			}
			at := index + found
			end := at + len(operator)
			if isDelimiter(content, at-1) && isDelimiter(content, end) {
				return true
			}
			index = end
		}
	}
	return false
}

func isDelimiter(content []byte, at int) bool {
	if at < 0 || at >= len(content) {
		return true
	}
	switch content[at] {
	case ' ', '\n', '\r', '\t', '\f', 0, ')', ']', '>':
		return true
	}
	return false
}

func pageSelectors(pages []int) []string {
	selectors := make([]string, len(pages))
	for i, page := range pages {
		selectors[i] = strconv.Itoa(page)
	}
	return selectors
}

// moveFile falls back to copying when the temp dir sits on another device.
func moveFile(from, to string) error {
	if err := os.Rename(from, to); err == nil {
		return nil
	}
	data, err := os.ReadFile(from)
	if err != nil {
		return err
	}
	return os.WriteFile(to, data, 0o644)
}
