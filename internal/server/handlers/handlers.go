// Package handlers implements the HTTP endpoints of the admin API.
package handlers

import (
	"net/http"

	"github.com/crowmatic/perch/internal/config"
	"github.com/crowmatic/perch/internal/functions"
	"github.com/crowmatic/perch/internal/storage"
)

// Handlers bundles the collaborators the endpoints share.
type Handlers struct {
	registry  *functions.Registry
	assembler *functions.Assembler
	extractor *functions.TriggerExtractor
	store     storage.Store
	cfg       *config.Config
}

func New(registry *functions.Registry, assembler *functions.Assembler, extractor *functions.TriggerExtractor, store storage.Store, cfg *config.Config) *Handlers {
	return &Handlers{
		registry:  registry,
		assembler: assembler,
		extractor: extractor,
		store:     store,
		cfg:       cfg,
	}
}

// baseURL picks the configured external base URL, falling back to the
// request's own host. The assembler applies the final localhost default.
func (h *Handlers) baseURL(r *http.Request) string {
	if h.cfg.Server.BaseURL != "" {
		return h.cfg.Server.BaseURL
	}
	if r.Host == "" {
		return ""
	}
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	return scheme + "://" + r.Host
}

func (h *Handlers) hostPaths() functions.HostPaths {
	return h.registry.HostPaths()
}
