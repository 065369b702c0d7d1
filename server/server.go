package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"

	"bikeshare/config"
	"bikeshare/queryhandlers"
	"bikeshare/server/handler"
)

const (
	serverStr       = "server"
	shutdownTimeout = 10 * time.Second
)

type Server struct {
	config     config.ServerConfig
	httpServer *http.Server
}

func NewServer(serverConfig config.ServerConfig, store handler.Store, viewsOptions queryhandlers.Options, version string) *Server {
	return &Server{
		config: serverConfig,
		httpServer: &http.Server{
			Addr:              serverConfig.Address,
			Handler:           NewRouter(store, serverConfig, viewsOptions, version),
			ReadHeaderTimeout: 10 * time.Second,
			ReadTimeout:       serverConfig.ReadTimeout,
			WriteTimeout:      serverConfig.WriteTimeout,
		},
	}
}

func getLogMessage(method string, message string, err error) string {
	if err != nil {
		return fmt.Sprintf("[component: %s][method: %s][status: ERROR] %s: %s", serverStr, method, message, err.Error())
	}
	return fmt.Sprintf("[component: %s][method: %s][status: OK] %s", serverStr, method, message)
}

// Run serves the API until ctx is done, then shuts the server down gracefully
func (s *Server) Run(ctx context.Context) error {
	serverErr := make(chan error, 1)
	go func() {
		log.Info(getLogMessage("Run", "listening on "+s.config.Address, nil))
		err := s.httpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err, ok := <-serverErr:
		if ok {
			log.Error(getLogMessage("Run", "error serving", err))
			return err
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error(getLogMessage("Run", "error shutting down", err))
		return err
	}

	log.Info(getLogMessage("Run", "server stopped", nil))
	return nil
}
