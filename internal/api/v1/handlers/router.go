package handlers

import (
	"net/http"
	"strings"
	"time"

	"nmai/sunrise-service/internal/i18n"
	"nmai/sunrise-service/internal/service"
)

const apiPrefix = "/api"

type route struct {
	prefix string
	handle http.HandlerFunc
}

// Router dispatches /api requests to the gateway handlers and everything else
// to the static file server. It holds no mutable state once built.
type Router struct {
	gatewayService service.GatewayService
	translations   i18n.Store
	static         http.Handler
	timeout        time.Duration
	routes         []route
}

func NewRouter(
	gatewayService service.GatewayService,
	translations i18n.Store,
	static http.Handler,
	timeout time.Duration,
) *Router {
	h := &Router{
		gatewayService: gatewayService,
		translations:   translations,
		static:         static,
		timeout:        timeout,
	}

	// most specific prefix first
	h.routes = []route{
		{prefix: "/api/supportedlanguage", handle: h.GetSupportedLanguages},
		{prefix: "/api/language", handle: h.GetLanguage},
		{prefix: "/api/sunrise-sunset", handle: h.GetSunriseSunset},
		{prefix: "/api/timezone", handle: h.GetTimezone},
		{prefix: "/api/geocode", handle: h.GetGeocode},
	}

	return h
}

func (h *Router) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	setCORSHeaders(w.Header())

	switch r.Method {
	case http.MethodGet:
	case http.MethodOptions:
		w.WriteHeader(http.StatusNoContent)
		return
	default:
		respondWithError(w, http.StatusMethodNotAllowed, msgMethodNotAllowed)
		return
	}

	path := r.URL.Path
	for _, rt := range h.routes {
		if strings.HasPrefix(path, rt.prefix) {
			rt.handle(w, r)
			return
		}
	}

	if strings.HasPrefix(path, apiPrefix) {
		respondWithError(w, http.StatusNotFound, msgNotFound)
		return
	}

	h.static.ServeHTTP(w, r)
}
