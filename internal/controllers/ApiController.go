package controllers

import (
	"net/http"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/spf13/cast"

	"homefeed/internal/feed"
	"homefeed/internal/providers"
	"homefeed/internal/services"
)

const maxRequestBodySize = 1 << 20 // 1 MB

const (
	userIDHeader    = "X-User-Id"
	guestCookieName = "guest_id"
)

type ApiController struct {
	logger  providers.Logger
	service services.FeedServiceInterface
	cache   providers.CacheProviderInterface
}

func NewApiController(logger providers.Logger, service services.FeedServiceInterface, cache providers.CacheProviderInterface) *ApiController {
	return &ApiController{
		logger:  logger,
		service: service,
		cache:   cache,
	}
}

// viewerFromRequest trusts the upstream auth collaborator for the user id
// and falls back to the guest cookie.
func viewerFromRequest(r *http.Request) feed.Viewer {
	guestID := ""
	if c, err := r.Cookie(guestCookieName); err == nil {
		guestID = c.Value
	}
	return feed.ResolveViewer(r.Header.Get(userIDHeader), guestID)
}

func (ac *ApiController) writeJSON(w http.ResponseWriter, result any) {
	gson, err := json.Marshal(result)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(gson)
}

func (ac *ApiController) writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case feed.IsValidation(err):
		http.Error(w, "Bad Request", http.StatusBadRequest)
	case feed.IsNotFound(err):
		http.Error(w, "Not Found", http.StatusNotFound)
	default:
		ac.logger.Errorf(providers.GetLogTypeByRequestType(r.Method), "%s failed: %s", r.URL.Path, err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

func (ac *ApiController) serveFromCacheOrCompute(w http.ResponseWriter, r *http.Request, cacheKey string, compute func() (any, error)) {
	if data, ok := ac.cache.Get(cacheKey); ok {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
		return
	}

	result, err := compute()
	if err != nil {
		ac.writeError(w, r, err)
		return
	}

	gson, err := json.Marshal(result)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	ac.cache.Set(cacheKey, gson)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(gson)
}

// GetHomeFeed serves the aggregate home payload. Not response-cached: the
// payload is per-viewer and the featured fallback is sampled per request.
func (ac *ApiController) GetHomeFeed(w http.ResponseWriter, r *http.Request) {
	viewer := viewerFromRequest(r)
	payload, err := ac.service.HomeFeed(r.Context(), viewer, r.URL.Query().Get("category"))
	if err != nil {
		ac.writeError(w, r, err)
		return
	}
	ac.writeJSON(w, payload)
}

func (ac *ApiController) GetTrending(w http.ResponseWriter, r *http.Request) {
	slug := r.URL.Query().Get("category")
	limit := cast.ToInt(r.URL.Query().Get("limit"))
	ac.serveFromCacheOrCompute(w, r, "trending:"+slug+":"+cast.ToString(limit), func() (any, error) {
		return ac.service.Trending(slug, limit)
	})
}

func (ac *ApiController) GetFollowingUpdates(w http.ResponseWriter, r *http.Request) {
	viewer := viewerFromRequest(r)
	var ids []string
	if raw := r.URL.Query().Get("ids"); raw != "" {
		ids = strings.Split(raw, ",")
	}
	updates, err := ac.service.FollowingUpdates(viewer, ids)
	if err != nil {
		ac.writeError(w, r, err)
		return
	}
	ac.writeJSON(w, updates)
}

// SaveProgress upserts one watch event. Clients with no identity get a
// guest id minted and set as a cookie.
func (ac *ApiController) SaveProgress(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	var payload services.ProgressInput
	err := json.NewDecoder(r.Body).Decode(&payload)
	if err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	viewer := viewerFromRequest(r)
	if viewer.IsAnonymous() {
		guestID := uuid.NewString()
		http.SetCookie(w, &http.Cookie{
			Name:     guestCookieName,
			Value:    guestID,
			Path:     "/",
			HttpOnly: true,
		})
		viewer = feed.Guest(guestID)
	}

	if err := ac.service.SaveProgress(viewer, &payload); err != nil {
		ac.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
}
