package handlers

import (
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/crowmatic/perch/internal/functions"
	"github.com/crowmatic/perch/internal/metrics"
	"github.com/crowmatic/perch/internal/requestctx"
)

// ListFunctions handles GET /admin/functions.
func (h *Handlers) ListFunctions(w http.ResponseWriter, r *http.Request) {
	defs := h.registry.List()
	baseURL := h.baseURL(r)

	descriptors := make([]*functions.FunctionDescriptor, 0, len(defs))
	for _, def := range defs {
		desc, err := h.assembler.Assemble(r.Context(), def, h.hostPaths(), h.cfg.Host.RoutePrefix, baseURL)
		if err != nil {
			metrics.RecordDescriptorBuild("error")
			log.Error().Err(err).Str("function", def.Name).Msg("Descriptor assembly failed")
			InternalError(w, "Failed to assemble descriptor for "+def.Name)
			return
		}
		metrics.RecordDescriptorBuild("ok")
		descriptors = append(descriptors, desc)
	}

	JSON(w, http.StatusOK, map[string]any{
		"functions": descriptors,
		"count":     len(descriptors),
	})
}

// GetFunction handles GET /admin/functions/{name}.
func (h *Handlers) GetFunction(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	if name == "" {
		BadRequest(w, "Function name is required")
		return
	}

	def, ok := h.registry.Get(name)
	if !ok {
		NotFound(w, "Function not found: "+name)
		return
	}

	requestctx.SetFunctionName(r.Context(), def.Name)

	desc, err := h.assembler.Assemble(r.Context(), def, h.hostPaths(), h.cfg.Host.RoutePrefix, h.baseURL(r))
	if err != nil {
		metrics.RecordDescriptorBuild("error")
		log.Error().Err(err).Str("function", def.Name).Msg("Descriptor assembly failed")
		InternalError(w, "Failed to assemble descriptor for "+def.Name)
		return
	}
	metrics.RecordDescriptorBuild("ok")

	JSON(w, http.StatusOK, desc)
}

// FunctionStatus handles GET /admin/functions/{name}/status. It is a
// lightweight probe that avoids touching test data.
func (h *Handlers) FunctionStatus(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")

	def, ok := h.registry.Get(name)
	if !ok {
		NotFound(w, "Function not found: "+name)
		return
	}

	requestctx.SetFunctionName(r.Context(), def.Name)

	JSON(w, http.StatusOK, map[string]any{
		"name":       def.Name,
		"language":   def.Language,
		"isDisabled": def.IsDisabled,
		"isDirect":   def.IsDirect,
	})
}
