package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/go-pkgz/rest"
	"github.com/go-pkgz/rest/logger"
	"github.com/go-pkgz/routegroup"

	"github.com/umputun/newsread/pkg/domain"
)

//go:generate moq -out mocks/config.go -pkg mocks -skip-ensure -fmt goimports . ConfigProvider
//go:generate moq -out mocks/coordinator.go -pkg mocks -skip-ensure -fmt goimports . Coordinator
//go:generate moq -out mocks/media_scanner.go -pkg mocks -skip-ensure -fmt goimports . MediaScanner

// Server represents HTTP server instance
type Server struct {
	config  ConfigProvider
	coord   Coordinator
	media   MediaScanner
	version string
	debug   bool

	lock       sync.Mutex
	httpServer *http.Server
	router     *routegroup.Bundle
}

// Coordinator is the sync layer the API reads from
type Coordinator interface {
	ObserveCategory(ctx context.Context, cat domain.Category) <-chan domain.Snapshot
	Refresh(cat domain.Category)
	Synced(cat domain.Category) bool
	Online() bool
	Active() []domain.Category
	WatchSummary(ctx context.Context, article domain.Article) <-chan string
	Summarize(ctx context.Context, article domain.Article) error
	DownloadMedia(url string) bool
}

// MediaScanner finds media files of an article page
type MediaScanner interface {
	Scan(ctx context.Context, pageURL string) ([]string, error)
}

// ConfigProvider provides server configuration
type ConfigProvider interface {
	GetServerConfig() (listen string, timeout time.Duration)
	GetReadWait() time.Duration
}

// New initializes a new server instance
func New(cfg ConfigProvider, coord Coordinator, media MediaScanner, version string, debug bool) *Server {
	s := &Server{
		config:  cfg,
		coord:   coord,
		media:   media,
		version: version,
		debug:   debug,
		router:  routegroup.New(http.NewServeMux()),
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// Run starts the HTTP server and handles graceful shutdown
func (s *Server) Run(ctx context.Context) error {
	listen, timeout := s.config.GetServerConfig()
	log.Printf("[INFO] starting server on %s", listen)

	s.lock.Lock()
	s.httpServer = &http.Server{
		Addr:              listen,
		Handler:           s.router,
		ReadHeaderTimeout: timeout,
		ReadTimeout:       timeout,
		WriteTimeout:      timeout, // event streams lift it per request
	}
	s.lock.Unlock()

	go func() {
		<-ctx.Done()
		log.Printf("[INFO] shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			log.Printf("[WARN] server shutdown error: %v", err)
		}
	}()

	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server error: %w", err)
	}

	return nil
}

// setupMiddleware configures standard middleware for the server
func (s *Server) setupMiddleware() {
	s.router.Use(rest.AppInfo("newsread", "umputun", s.version))
	s.router.Use(rest.Ping)

	if s.debug {
		s.router.Use(logger.New(logger.Log(lgr.Default()), logger.Prefix("[DEBUG]")).Handler)
	}

	s.router.Use(rest.Recoverer(lgr.Default()))
	s.router.Use(rest.Throttle(100))
	s.router.Use(rest.SizeLimit(64 * 1024)) // requests carry an article or a url at most
}

// setupRoutes configures application routes
func (s *Server) setupRoutes() {
	s.router.Mount("/api/v1").Route(func(r *routegroup.Bundle) {
		r.HandleFunc("GET /status", s.statusHandler)
		r.HandleFunc("GET /categories", s.categoriesHandler)
		r.HandleFunc("GET /categories/{category}/articles", s.articlesHandler)
		r.HandleFunc("GET /categories/{category}/stream", s.streamHandler)
		r.HandleFunc("POST /categories/{category}/refresh", s.refreshHandler)
		r.HandleFunc("GET /summary", s.getSummaryHandler)
		r.HandleFunc("POST /summary", s.summarizeHandler)
		r.HandleFunc("POST /media/download", s.downloadHandler)
		r.HandleFunc("GET /media", s.mediaHandler)
	})
}
