package server

import (
	"net/http"

	"github.com/klauspost/compress/gzhttp"

	"github.com/crowmatic/perch/internal/metrics"
	"github.com/crowmatic/perch/internal/server/handlers"
)

type Router struct {
	server      *Server
	mux         *http.ServeMux
	middlewares []Middleware
	handler     http.Handler
}

type Middleware func(http.Handler) http.Handler

func NewRouter(srv *Server) *Router {
	r := &Router{
		server: srv,
		mux:    http.NewServeMux(),
	}

	r.setupMiddleware()
	r.setupRoutes()
	r.handler = r.wrap(gzhttp.GzipHandler(r.mux))

	return r
}

// wrap applies the registered middlewares so the first one added is
// outermost.
func (r *Router) wrap(h http.Handler) http.Handler {
	for i := len(r.middlewares) - 1; i >= 0; i-- {
		h = r.middlewares[i](h)
	}
	return h
}

func (r *Router) setupMiddleware() {
	r.Use(RecoveryMiddleware)
	r.Use(RequestIDMiddleware)
	r.Use(LoggingMiddleware)
	r.Use(MetricsMiddleware)

	if key := r.server.cfg.Server.AdminKey; key != "" {
		r.Use(AdminKeyMiddleware(key))
	}
}

func (r *Router) Use(mw Middleware) {
	r.middlewares = append(r.middlewares, mw)
}

func (r *Router) setupRoutes() {
	h := handlers.New(r.server.Registry(), r.server.Assembler(), r.server.Extractor(), r.server.Store(), r.server.Config())

	r.mux.HandleFunc("GET /health", h.Health)
	r.mux.Handle("GET /metrics", metrics.Handler())

	r.mux.HandleFunc("GET /admin/functions", h.ListFunctions)
	r.mux.HandleFunc("GET /admin/functions/{name}", h.GetFunction)
	r.mux.HandleFunc("GET /admin/functions/{name}/status", h.FunctionStatus)
	r.mux.HandleFunc("GET /admin/host/scale/triggers", h.ScaleTriggers)
	r.mux.HandleFunc("GET /admin/vfs/{path...}", h.VfsGet)
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.handler.ServeHTTP(w, req)
}
