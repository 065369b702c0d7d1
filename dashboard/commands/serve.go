package commands

import (
	"context"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"bikeshare/config"
	"bikeshare/publisher"
	"bikeshare/server"
	"bikeshare/session"
	"bikeshare/utils"
	"bikeshare/watcher"
)

// NewServeCommand serves the API. Depending on the config it also reloads the session when
// the dataset changes and republishes the tables on a schedule
func NewServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the tables and views over HTTP",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := GetConfig(cmd.Context())
			s, err := loadSession(cfg)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()

			go func() {
				signalChannel := utils.GetSignalChannel()
				select {
				case sig := <-signalChannel:
					log.Info(getLogMessage("serve", "received signal "+sig.String()+", shutting down", nil))
					cancel()
				case <-ctx.Done():
				}
			}()

			if cfg.WatchData {
				startWatcher(ctx, cfg, s)
			}

			if cfg.Publisher.Enabled {
				stop, err := startPublisher(ctx, cfg, s)
				if err != nil {
					return err
				}
				defer stop()
			}

			return server.NewServer(cfg.Server, s, cfg.Views, Version).Run(ctx)
		},
	}
}

// startWatcher reloads the session every time the dataset file is written. A dataset that
// can not be watched only disables the reloads
func startWatcher(ctx context.Context, cfg *config.Config, s *session.Session) {
	datasetWatcher, err := watcher.New(cfg.Dataset.Path, watcher.DefaultDebounce)
	if err != nil {
		log.Warn(getLogMessage("startWatcher", "dataset changes will not be detected", err))
		return
	}

	go func() {
		err := datasetWatcher.Watch(ctx, func(string) {
			if _, err := s.Reload(); err != nil {
				log.Error(getLogMessage("startWatcher", "error reloading dataset", err))
			}
		})
		if err != nil {
			log.Error(getLogMessage("startWatcher", "watcher stopped", err))
		}
	}()
}

// startPublisher publishes the current session and, if a schedule is configured, keeps
// republishing it. The returned function stops the schedule and closes the connection
func startPublisher(ctx context.Context, cfg *config.Config, s *session.Session) (func(), error) {
	tablesPublisher, err := newPublisher(ctx, cfg)
	if err != nil {
		return nil, err
	}

	if _, err := tablesPublisher.PublishSession(ctx, s); err != nil {
		log.Error(getLogMessage("startPublisher", "error publishing tables", err))
	}

	if cfg.Publisher.Schedule == "" {
		return func() { closePublisher(tablesPublisher) }, nil
	}

	scheduler, err := publisher.NewScheduler(ctx, cfg.Publisher.Schedule, tablesPublisher, s)
	if err != nil {
		closePublisher(tablesPublisher)
		return nil, err
	}
	scheduler.Start()

	return func() {
		scheduler.Stop()
		closePublisher(tablesPublisher)
	}, nil
}
