package commands

import (
	"context"
	"errors"
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"bikeshare/config"
	"bikeshare/loader"
	"bikeshare/session"
)

const commandsStr = "dashboard"

// Version of the binary, set at build time
var Version = "0.1.0"

type configKey struct{}

// InitLogger Receives the log level to be set in logrus as a string. This method
// parses the string and set the level to the logger. If the level string is not
// valid an error is returned
func InitLogger(logLevel string) error {
	level, err := log.ParseLevel(logLevel)
	if err != nil {
		return err
	}

	customFormatter := &log.TextFormatter{
		TimestampFormat: "2006-01-02 15:04:05",
		FullTimestamp:   false,
	}
	log.SetFormatter(customFormatter)
	log.SetLevel(level)
	return nil
}

func getLogMessage(method string, message string, err error) string {
	if err != nil {
		return fmt.Sprintf("[component: %s][method: %s][status: ERROR] %s: %s", commandsStr, method, message, err.Error())
	}
	return fmt.Sprintf("[component: %s][method: %s][status: OK] %s", commandsStr, method, message)
}

// NewRootCmd returns the dashboard command with every subcommand
func NewRootCmd() *cobra.Command {
	var (
		configPath string
		dataPath   string
	)

	rootCmd := &cobra.Command{
		Use:     "dashboard",
		Short:   "Bike-share trip analytics",
		Long:    `Loads a bike-share trip dataset, cleans it and serves the usage tables and views derived from it.`,
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Name() == "help" || cmd.Name() == "version" {
				return nil
			}

			cfg, err := loadConfig(configPath, cmd.Flags().Changed("config"))
			if err != nil {
				return err
			}
			if dataPath != "" {
				cfg.Dataset.Path = dataPath
			}

			if err := InitLogger(cfg.LogLevel); err != nil {
				return fmt.Errorf("error initializing logger: %w", err)
			}

			cmd.SetContext(context.WithValue(cmd.Context(), configKey{}, cfg))
			return nil
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", config.DefaultConfigFilepath, "config file")
	rootCmd.PersistentFlags().StringVar(&dataPath, "data", "", "dataset path, .csv or .xlsx (overrides the config)")

	rootCmd.AddCommand(NewReportCommand())
	rootCmd.AddCommand(NewExportCommand())
	rootCmd.AddCommand(NewServeCommand())
	rootCmd.AddCommand(NewPublishCommand())
	rootCmd.AddCommand(NewVersionCommand(Version))

	return rootCmd
}

// Execute runs the root command
func Execute() error {
	return NewRootCmd().Execute()
}

// loadConfig reads the config file. The default file is optional: if it does not exist the
// default configuration is used. A file given explicitly must exist
func loadConfig(path string, explicit bool) (*config.Config, error) {
	cfg, err := config.LoadConfig(path)
	if err == nil {
		return cfg, nil
	}
	if !explicit && errors.Is(err, os.ErrNotExist) {
		return config.Default(), nil
	}
	return nil, err
}

// GetConfig returns the configuration stored in ctx by the root command
func GetConfig(ctx context.Context) *config.Config {
	if cfg, ok := ctx.Value(configKey{}).(*config.Config); ok {
		return cfg
	}
	return config.Default()
}

// loadSession builds a session over the configured dataset and runs the first load
func loadSession(cfg *config.Config) (*session.Session, error) {
	datasetLoader, err := loader.NewLoader(cfg.Dataset)
	if err != nil {
		return nil, err
	}

	s := session.NewFromLoader(datasetLoader, cfg.Aggregator)
	info, err := s.Load()
	if err != nil {
		return nil, err
	}

	if !info.Available {
		log.Warn(getLogMessage("loadSession", "dataset "+info.Source+" is not available, serving empty tables", nil))
	}
	return s, nil
}
