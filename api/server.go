package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/meghashyamc/docsearch/config"
	"github.com/meghashyamc/docsearch/db/kvdb"
	"github.com/meghashyamc/docsearch/logger"
	"github.com/meghashyamc/docsearch/services/index"
	"github.com/meghashyamc/docsearch/services/search"
	"github.com/meghashyamc/docsearch/validation"
)

const shutdownTimeout = 10 * time.Second

type server struct {
	cfg          *config.Config
	router       *gin.Engine
	httpServer   *http.Server
	kvdb         kvdb.DB
	searchIndex  *search.Index
	indexService *index.Service
	validator    *validation.Validator
	logger       logger.Logger
	serveErrC    chan error
	stopWatch    context.CancelFunc
	watchers     sync.WaitGroup
}

func Run(ctx context.Context, cfg *config.Config, logger logger.Logger) error {
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt)

	defer cancel()

	s := &server{
		cfg:       cfg,
		logger:    logger,
		serveErrC: make(chan error, 1),
	}
	if err := s.setupDependencies(); err != nil {
		return err
	}
	s.seedIndex()
	s.setupContentWatch(ctx)
	s.setupRouter()
	s.setupHTTPServer()

	return s.setupGracefulShutdown(ctx)
}

func (s *server) setupDependencies() error {
	var err error
	s.kvdb, err = kvdb.New(s.logger, s.cfg)
	if err != nil {
		s.logger.Error("error creating kvDB", "err", err.Error())
		return err
	}
	s.searchIndex = search.New(s.logger, nil)
	s.indexService = index.New(s.logger, s.searchIndex, s.kvdb, s.cfg.GetContentURLPrefix(), s.cfg.GetHistoryMaxRecords())
	s.validator, err = validation.New(s.logger)
	if err != nil {
		s.logger.Error("error creating validator", "err", err.Error())
		return err
	}

	return nil

}

// seedIndex loads the configured content, keeping the built-in documents if
// there is none or it cannot be read.
func (s *server) seedIndex() {
	contentPath := s.cfg.GetContentPath()
	if contentPath == "" {
		s.logger.Info("no content path configured, serving built-in documents")
		return
	}

	if _, err := s.indexService.RebuildFrom(contentPath); err != nil {
		s.logger.Warn("could not seed index from content, serving built-in documents", "path", contentPath, "err", err.Error())
	}
}

func (s *server) setupContentWatch(ctx context.Context) {
	contentPath := s.cfg.GetContentPath()
	if contentPath == "" || !s.cfg.GetContentWatch() {
		return
	}

	watchCtx, cancel := context.WithCancel(ctx)
	s.stopWatch = cancel

	s.watchers.Add(1)
	go func() {
		defer s.watchers.Done()
		if err := s.indexService.Watch(watchCtx, contentPath, s.cfg.GetContentWatchDelay()); err != nil {
			s.logger.Error("content watcher exited", "err", err.Error())
		}
	}()
}

func (s *server) setupRouter() {
	router := newRouter()

	router.Use(loggingMiddleware(s.logger))

	setupRoutes(router, s.logger, s.searchIndex, s.indexService, s.validator)

	s.router = router
}

func (s *server) setupHTTPServer() {

	httpServer := &http.Server{
		Addr:    fmt.Sprintf(":%s", s.cfg.GetPort()),
		Handler: s.router.Handler(),
	}
	s.httpServer = httpServer
	s.logger.Info("starting http server", "addr", httpServer.Addr)
	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("http server failed", "err", err.Error())
			s.serveErrC <- err
		}
	}()
}

func (s *server) setupGracefulShutdown(ctx context.Context) error {

	var serveErr error
	select {
	case <-ctx.Done():
	case serveErr = <-s.serveErrC:
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		s.logger.Info("starting to shut down http server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			s.logger.Error("error shutting down http server", "err", err)
			return
		}
		s.logger.Info("shut down http server successfully")
	}()

	wg.Wait()

	// a rebuild still in flight writes its record to kvDB
	if s.stopWatch != nil {
		s.stopWatch()
	}
	s.watchers.Wait()

	if err := s.kvdb.Close(); err != nil {
		s.logger.Error("error closing kvDB", "err", err.Error())
	}

	return serveErr
}
