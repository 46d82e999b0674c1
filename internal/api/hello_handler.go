package api

import (
	"net/http"

	"github.com/ukp-platform/ukp-api/internal/platform/logger"
)

// HelloHandler answers the root route with a plain-text greeting.
func HelloHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("Hello World!")); err != nil {
		logger.FromContext(r.Context()).Error("failed to write response", "error", err)
	}
}
