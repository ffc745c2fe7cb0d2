package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"github.com/rs/cors"
	"github.com/seoworks/indexable/internal/admin"
	"github.com/seoworks/indexable/internal/builder"
	"github.com/seoworks/indexable/internal/cache"
	"github.com/seoworks/indexable/internal/compress"
	"github.com/seoworks/indexable/internal/config"
	"github.com/seoworks/indexable/internal/content"
	"github.com/seoworks/indexable/internal/frontend"
	"github.com/seoworks/indexable/internal/hierarchy"
	"github.com/seoworks/indexable/internal/jobs"
	"github.com/seoworks/indexable/internal/permalink"
	"github.com/seoworks/indexable/internal/queue"
	"github.com/seoworks/indexable/internal/repository"
	"github.com/seoworks/indexable/internal/service"
	"github.com/seoworks/indexable/internal/store"
	"github.com/sirupsen/logrus"
	"golang.org/x/sys/unix"
)

// Server represents the server
type Server struct {
	httpPort string
}

// NewServer creates a new server
func NewServer(httpPort string) *Server {
	return &Server{
		httpPort: httpPort,
	}
}

// Start starts the server
func (s *Server) Start() {
	if err := Start(s.httpPort); err != nil {
		logrus.Fatalf("error starting server: %v", err)
	}
}

// Start wires all collaborators and serves the admin page and the JSON API
// until SIGINT or SIGTERM.
func Start(httpPort string) error {
	cnf := config.LoadConfig()
	db := config.GetDb(cnf)

	gormStore := store.NewGormStore(db)
	if err := gormStore.Migrate(); err != nil {
		return err
	}

	var events queue.IndexableQueue = queue.NewNop()
	if cnf.KafkaBrokers != "" {
		kq, err := queue.NewKafkaQueue(cnf.KafkaBrokers)
		if err != nil {
			return err
		}
		defer kq.Close()
		events = kq
	}

	source := content.NewStoreSource(gormStore, cnf.SiteURL)
	resolver := permalink.NewResolver(source)
	indexableBuilder := builder.NewStoreBuilder(gormStore, events)
	ancestry := hierarchy.NewRepository(gormStore, indexableBuilder)
	permalinkCache := cache.NewRedisIndexableCache(cnf.RedisAddr, compress.ForName(cnf.CacheCodec))

	repo := repository.New(gormStore, indexableBuilder, resolver, ancestry, permalinkCache, events)
	classifier := frontend.NewStoreClassifier(gormStore)
	indexables := service.NewIndexableService(repo, classifier, gormStore)

	runner := jobs.NewRunner([]jobs.Task{
		jobs.NewPermalinkWarmer("@every 1m", gormStore, repo),
		jobs.NewProminentWordsSweep("@every 10m", repo, 1, cnf.ProminentWordsPostTypes),
	})
	runner.Start()
	defer runner.Stop()

	mux := http.NewServeMux()
	registerRoutes(mux, indexables, admin.NewPage(gormStore))

	handler := cors.AllowAll().Handler(requestLogger(mux))
	httpServer := &http.Server{
		Addr:    ":" + httpPort,
		Handler: handler,
	}

	errCh := make(chan error, 1)
	go func() {
		logrus.Infof("http server listening on :%s", httpPort)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, unix.SIGINT, unix.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-sigCh:
		logrus.Infof("received %v, shutting down", sig)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return httpServer.Shutdown(ctx)
}

func registerRoutes(mux *http.ServeMux, indexables *service.IndexableService, settings *admin.Page) {
	mux.Handle("/admin/settings", settings)

	mux.HandleFunc("GET /api/v1/indexables/resolve", func(w http.ResponseWriter, r *http.Request) {
		ind, err := indexables.ResolveURL(r.Context(), r.URL.Query().Get("url"))
		respond(w, ind, err)
	})

	mux.HandleFunc("GET /api/v1/indexables/permalink", func(w http.ResponseWriter, r *http.Request) {
		ind, err := indexables.GetByPermalink(r.Context(), r.URL.Query().Get("permalink"))
		respond(w, ind, err)
	})

	mux.HandleFunc("GET /api/v1/indexables/{type}/{id}", func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
		if err != nil {
			respond(w, nil, service.ErrInvalidURL)
			return
		}

		create := r.URL.Query().Get("create") != "false"
		ind, err := indexables.GetByObject(r.Context(), id, r.PathValue("type"), create)
		respond(w, ind, err)
	})

	mux.HandleFunc("POST /api/v1/indexables/{type}/batch", func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			IDs    []int64 `json:"ids"`
			Create *bool   `json:"create"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respond(w, nil, service.ErrInvalidURL)
			return
		}

		create := req.Create == nil || *req.Create
		inds, err := indexables.GetByObjects(r.Context(), req.IDs, r.PathValue("type"), create)
		respond(w, inds, err)
	})

	mux.HandleFunc("GET /api/v1/indexables/{type}", func(w http.ResponseWriter, r *http.Request) {
		inds, err := indexables.ListByType(r.Context(), r.PathValue("type"), r.URL.Query().Get("subtype"))
		respond(w, inds, err)
	})

	mux.HandleFunc("GET /api/v1/ancestors/{id}", func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
		if err != nil {
			respond(w, nil, service.ErrInvalidURL)
			return
		}

		inds, err := indexables.Ancestors(r.Context(), id)
		respond(w, inds, err)
	})

	mux.HandleFunc("GET /api/v1/prominent-words/outdated/count", func(w http.ResponseWriter, r *http.Request) {
		version, types := outdatedParams(r)
		count, err := indexables.CountOutdatedProminentWords(r.Context(), version, types)
		respond(w, map[string]int64{"count": count}, err)
	})

	mux.HandleFunc("GET /api/v1/prominent-words/outdated", func(w http.ResponseWriter, r *http.Request) {
		version, types := outdatedParams(r)
		limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
		ids, err := indexables.FindOutdatedProminentWords(r.Context(), version, types, limit)
		if ids == nil {
			ids = []int64{}
		}
		respond(w, map[string][]int64{"ids": ids}, err)
	})
}

func outdatedParams(r *http.Request) (int64, []string) {
	version, _ := strconv.ParseInt(r.URL.Query().Get("version"), 10, 64)

	var types []string
	if raw := r.URL.Query().Get("types"); raw != "" {
		types = strings.Split(raw, ",")
	}

	return version, types
}

func respond(w http.ResponseWriter, payload any, err error) {
	w.Header().Set("Content-Type", "application/json")

	switch {
	case errors.Is(err, store.ErrNotFound):
		w.WriteHeader(http.StatusNotFound)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "not found"})
		return
	case errors.Is(err, service.ErrInvalidURL),
		errors.Is(err, service.ErrEmptyPermalink),
		errors.Is(err, service.ErrUnknownObjectType):
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
		return
	case err != nil:
		logrus.Errorf("request failed: %v", err)
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "internal error"})
		return
	}

	_ = json.NewEncoder(w).Encode(payload)
}
