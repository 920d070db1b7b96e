package server

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/julienschmidt/httprouter"
	"golang.org/x/sync/singleflight"

	"github.com/caasmo/iconfind/favicon"
	"github.com/caasmo/iconfind/topk"
)

type handlers struct {
	resolver *favicon.Resolver
	sketch   *topk.HostSketch
	logger   *slog.Logger

	// flight collapses concurrent lookups for the same page URL into
	// one resolution. The result is shared with the waiting requests
	// and then forgotten; nothing is kept across requests.
	flight singleflight.Group
}

func newHandlers(resolver *favicon.Resolver, sketch *topk.HostSketch, logger *slog.Logger) *handlers {
	return &handlers{
		resolver: resolver,
		sketch:   sketch,
		logger:   logger,
	}
}

func (h *handlers) router() http.Handler {
	rt := httprouter.New()
	rt.Handler(http.MethodGet, "/api/favicon", http.HandlerFunc(h.faviconHandler))
	rt.Handler(http.MethodGet, "/api/stats/hosts", http.HandlerFunc(h.topHostsHandler))
	return rt
}

type faviconResponse struct {
	URL     string `json:"url"`
	Favicon string `json:"favicon"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (h *handlers) faviconHandler(w http.ResponseWriter, r *http.Request) {
	pageURL := r.URL.Query().Get("url")
	if pageURL == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "missing url parameter"})
		return
	}

	result, err, shared := h.flight.Do(pageURL, func() (any, error) {
		return h.resolver.Resolve(r.Context(), []string{pageURL})[0], nil
	})
	if err != nil {
		// The resolve func never returns an error; this guards against
		// future edits to the closure above.
		h.logger.Error("favicon resolution failed", "url", pageURL, "err", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "resolution failed"})
		return
	}
	if shared {
		h.logger.Debug("favicon lookup shared with concurrent request", "url", pageURL)
	}

	h.sketch.Observe(favicon.ParsePage(pageURL).Server)

	writeJSON(w, http.StatusOK, faviconResponse{
		URL:     pageURL,
		Favicon: result.(string),
	})
}

func (h *handlers) topHostsHandler(w http.ResponseWriter, r *http.Request) {
	n := 10
	if raw := r.URL.Query().Get("n"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid n parameter"})
			return
		}
		n = parsed
	}

	hosts := h.sketch.Top(n)
	if hosts == nil {
		hosts = []topk.HostCount{}
	}
	writeJSON(w, http.StatusOK, hosts)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
