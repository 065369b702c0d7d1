package commands

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"bikeshare/communication"
	"bikeshare/config"
	"bikeshare/publisher"
)

// NewPublishCommand publishes the tables and the configured views once
func NewPublishCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "publish",
		Short: "Publish the usage tables to RabbitMQ",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := GetConfig(cmd.Context())
			s, err := loadSession(cfg)
			if err != nil {
				return err
			}

			tablesPublisher, err := newPublisher(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer closePublisher(tablesPublisher)

			sent, err := tablesPublisher.PublishSession(cmd.Context(), s)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Published %v messages to %s\n", sent, cfg.Publisher.Queue.Name)
			return nil
		},
	}
}

// newPublisher connects to RabbitMQ and declares the output queue
func newPublisher(ctx context.Context, cfg *config.Config) (*publisher.Publisher, error) {
	if cfg.Publisher.Queue.Name == "" {
		return nil, fmt.Errorf("%w: publisher queue name is required", config.ErrInvalidConfig)
	}

	rabbitMQ, err := communication.NewRabbitMQ(ctx, cfg.Rabbit)
	if err != nil {
		return nil, err
	}

	tablesPublisher := publisher.New(rabbitMQ, cfg.Publisher, cfg.Views)
	if err := tablesPublisher.DeclareQueues(); err != nil {
		closePublisher(tablesPublisher)
		return nil, err
	}
	return tablesPublisher, nil
}

func closePublisher(tablesPublisher *publisher.Publisher) {
	if err := tablesPublisher.Close(); err != nil {
		log.Error(getLogMessage("closePublisher", "error closing RabbitMQ connection", err))
	}
}
