package middlewares

import (
	"bytes"
	"context"
	"io"
	"net/http"

	"sisregip-service/internal/pkg/constvars"
	"sisregip-service/internal/pkg/exceptions"
	"sisregip-service/internal/pkg/utils"
)

const maxBufferedBodyBytes = 1 << 20

// BodyBuffer reads the request body, stores the raw bytes in the context and
// replaces the request body with a new reader so it can be consumed again by
// subsequent middlewares or handlers.
func (m *Middlewares) BodyBuffer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Body == nil || r.Body == http.NoBody {
			next.ServeHTTP(w, r)
			return
		}

		bodyBytes, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBufferedBodyBytes))
		if err != nil {
			utils.BuildErrorResponse(m.Log, w, exceptions.ErrReadBody(err))
			return
		}

		ctx := context.WithValue(r.Context(), constvars.CONTEXT_RAW_BODY, bodyBytes)
		r.Body = io.NopCloser(bytes.NewReader(bodyBytes))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
