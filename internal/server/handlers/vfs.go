package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/crowmatic/perch/internal/storage"
)

// VfsGet handles GET /admin/vfs/{path...}, serving raw file content from the
// backing store. Descriptor hrefs point here for out-of-band fetches (full
// test data, config files, scripts).
func (h *Handlers) VfsGet(w http.ResponseWriter, r *http.Request) {
	path := r.PathValue("path")
	if path == "" || strings.HasSuffix(path, "/") {
		BadRequest(w, "File path is required")
		return
	}

	data, err := h.store.ReadFile(r.Context(), path)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			NotFound(w, "File not found: "+path)
			return
		}
		log.Error().Err(err).Str("path", path).Msg("VFS read failed")
		InternalError(w, "Failed to read file")
		return
	}

	w.Header().Set("Content-Type", "application/octet-stream")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
