package handlers

import (
	"net/http"

	"github.com/crowmatic/perch/internal/metrics"
)

// ScaleTriggers handles GET /admin/host/scale/triggers. It feeds the scale
// controller the trigger binding of every function that has one; functions
// without a trigger are omitted, not errored.
func (h *Handlers) ScaleTriggers(w http.ResponseWriter, r *http.Request) {
	defs := h.registry.List()

	triggers := make([]map[string]any, 0, len(defs))
	for _, def := range defs {
		trigger := h.extractor.Extract(r.Context(), def, h.hostPaths())
		if trigger == nil {
			metrics.RecordTriggerProjection("absent")
			continue
		}
		metrics.RecordTriggerProjection("matched")
		triggers = append(triggers, trigger)
	}

	JSON(w, http.StatusOK, map[string]any{
		"triggers": triggers,
	})
}
