package main

import (
	"log/slog"
	"strings"

	"github.com/AutomatedMarketer/flodesk/internal/config"
	"github.com/AutomatedMarketer/flodesk/internal/flodesk"
)

// application holds the shared dependencies of the HTTP layer. It is built
// once at startup and read-only afterwards; per-request state lives in the
// request context.
type application struct {
	config   *config.Config
	logger   *slog.Logger
	gateway  flodesk.Gateway
	segments flodesk.SegmentLister
}

// allowOrigin decides whether a browser origin may call the proxy: exact
// matches from config, or a suffix match for preview-deploy hosts.
func (app *application) allowOrigin(origin string) bool {
	for _, allowed := range app.config.CORS.AllowedOrigins {
		if origin == allowed {
			return true
		}
	}
	for _, suffix := range app.config.CORS.AllowedOriginSuffixes {
		if suffix != "" && strings.HasSuffix(origin, suffix) {
			return true
		}
	}
	return false
}
