package changelog

import (
	"bytes"
	"context"
	_ "embed"
	"os"
	"sisregip-service/internal/app/contracts"
	"sisregip-service/internal/pkg/constvars"
	"sisregip-service/internal/pkg/dto/responses"
	"sisregip-service/internal/pkg/exceptions"
	"sync"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"go.uber.org/zap"
)

//go:embed CHANGELOG.md
var embeddedChangelog []byte

type changelogUsecase struct {
	Path     string
	Markdown goldmark.Markdown
	Log      *zap.Logger
}

var (
	changelogUsecaseInstance contracts.ChangelogUsecase
	onceChangelogUsecase     sync.Once
)

// NewChangelogUsecase serves the file at path, or the bundled changelog when
// path is empty.
func NewChangelogUsecase(path string, logger *zap.Logger) contracts.ChangelogUsecase {
	onceChangelogUsecase.Do(func() {
		changelogUsecaseInstance = newChangelogUsecase(path, logger)
	})
	return changelogUsecaseInstance
}

func newChangelogUsecase(path string, logger *zap.Logger) *changelogUsecase {
	return &changelogUsecase{
		Path:     path,
		Markdown: goldmark.New(goldmark.WithExtensions(extension.GFM)),
		Log:      logger,
	}
}

func (uc *changelogUsecase) Get(ctx context.Context) (*responses.Changelog, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("changelogUsecase.Get called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	source := embeddedChangelog
	if uc.Path != "" {
		content, err := os.ReadFile(uc.Path)
		if err != nil {
			uc.Log.Warn("changelogUsecase.Get error reading changelog file, using bundled copy",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingFileNameKey, uc.Path),
				zap.Error(err),
			)
		} else {
			source = content
		}
	}

	var html bytes.Buffer
	if err := uc.Markdown.Convert(source, &html); err != nil {
		return nil, exceptions.ErrRenderMarkdown(err)
	}

	return &responses.Changelog{
		Markdown: string(source),
		HTML:     html.String(),
	}, nil
}
