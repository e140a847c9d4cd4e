package controllers

import (
	"errors"
	"fmt"
	"net/http"

	json "github.com/goccy/go-json"

	"mfd/internal/models"
	"mfd/internal/providers"
	"mfd/internal/services"
)

const maxRequestBodySize = 1 << 20 // 1 MB

type ApiController struct {
	logger  providers.Logger
	service services.AnalysisServiceInterface
	cache   providers.CacheProviderInterface
}

func NewApiController(logger providers.Logger, service services.AnalysisServiceInterface, cache providers.CacheProviderInterface) *ApiController {
	return &ApiController{
		logger:  logger,
		service: service,
		cache:   cache,
	}
}

// serveFromCacheOrCompute serves cached JSON when the store generation has
// not moved, otherwise computes, caches and serves. ErrEmptyInput maps to
// 422: the caller sent no usable data, the server is fine.
func (ac *ApiController) serveFromCacheOrCompute(w http.ResponseWriter, cacheKey string, compute func() (any, error)) {
	key := fmt.Sprintf("%s:%d", cacheKey, ac.service.Generation())
	if data, ok := ac.cache.Get(key); ok {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
		return
	}

	result, err := compute()
	if err != nil {
		if errors.Is(err, models.ErrEmptyInput) {
			http.Error(w, "No Usable Records", http.StatusUnprocessableEntity)
			return
		}
		ac.logger.Errorf(providers.TypeGet, "Compute error: %s", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	gson, err := json.Marshal(result)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	ac.cache.Set(key, gson)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(gson)
}

// ReceiveHistory ingests one user's community activity mapping.
func (ac *ApiController) ReceiveHistory(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	var payload models.UserHistory
	err := json.NewDecoder(r.Body).Decode(&payload)
	if err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	added, err := ac.service.AddHistory(&payload)
	if err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_, _ = fmt.Fprintf(w, `{"added":%d}`, added)
}

func (ac *ApiController) GetGraph(w http.ResponseWriter, r *http.Request) {
	ac.serveFromCacheOrCompute(w, "graph", func() (any, error) {
		doc, err := ac.service.Document()
		if err != nil {
			return nil, err
		}
		return doc.Graph, nil
	})
}

func (ac *ApiController) GetBridges(w http.ResponseWriter, r *http.Request) {
	ac.serveFromCacheOrCompute(w, "bridges", func() (any, error) {
		doc, err := ac.service.Document()
		if err != nil {
			return nil, err
		}
		return doc.BridgeCommunities, nil
	})
}

func (ac *ApiController) GetStats(w http.ResponseWriter, r *http.Request) {
	ac.serveFromCacheOrCompute(w, "stats", func() (any, error) {
		doc, err := ac.service.Document()
		if err != nil {
			return nil, err
		}
		return doc.SummaryStats, nil
	})
}

func (ac *ApiController) GetExport(w http.ResponseWriter, r *http.Request) {
	ac.serveFromCacheOrCompute(w, "export", func() (any, error) {
		return ac.service.Document()
	})
}

type pathResponse struct {
	Source string   `json:"source"`
	Target string   `json:"target"`
	Path   []string `json:"path"`
}

// GetPath answers /path?from=A&to=B with the hop-minimal migration path.
// An unreachable target yields an empty path, not an error.
func (ac *ApiController) GetPath(w http.ResponseWriter, r *http.Request) {
	source := r.URL.Query().Get("from")
	target := r.URL.Query().Get("to")
	if source == "" || target == "" {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	ac.serveFromCacheOrCompute(w, "path:"+source+":"+target, func() (any, error) {
		path, err := ac.service.ShortestPath(source, target)
		if err != nil {
			return nil, err
		}
		if path == nil {
			path = []string{}
		}
		return pathResponse{Source: source, Target: target, Path: path}, nil
	})
}
