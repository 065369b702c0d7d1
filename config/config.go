package config

import (
	"errors"
	"fmt"
	"time"

	"gopkg.in/yaml.v3"

	"bikeshare/aggregator"
	"bikeshare/communication"
	"bikeshare/loader"
	"bikeshare/queryhandlers"
	"bikeshare/utils"
)

const (
	DefaultConfigFilepath = "./config/config.yaml"
	defaultLogLevel       = "info"
	defaultDatasetPath    = "./data/trips.csv"
	defaultServerAddress  = ":8080"
	defaultRateLimit      = 100
	defaultRateWindow     = time.Minute
	defaultPublishTimeout = 5 * time.Second
	defaultSender         = "dashboard"
)

var ErrInvalidConfig = errors.New("invalid config")

var validExchangeTypes = []string{"direct", "fanout", "topic", "headers"}

// ServerConfig parameters of the HTTP API
// + Address: address in which the server listens
// + RateLimit: max amount of requests per IP in RateWindow
// + RateWindow: window of the rate limit
// + ReadTimeout, WriteTimeout: timeouts of the underlying http.Server
type ServerConfig struct {
	Address      string        `yaml:"address"`
	RateLimit    int           `yaml:"rate_limit"`
	RateWindow   time.Duration `yaml:"rate_window"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
}

// PublisherConfig parameters of the publication of tables and views through RabbitMQ
// + Enabled: if false serve does not connect to RabbitMQ
// + Sender: stage name written in the metadata of each message
// + Queue: queue in which the messages are published
// + Exchange: optional exchange. If its name is empty messages go straight to Queue
// + RoutingKey: routing key used when publishing in Exchange
// + Views: names of the views published next to the tables
// + Schedule: cron spec of the periodic republication, e.g. "@every 10m". Empty disables it
// + Timeout: max time to publish one message
type PublisherConfig struct {
	Enabled    bool                                    `yaml:"enabled"`
	Sender     string                                  `yaml:"sender"`
	Queue      communication.QueueDeclarationConfig    `yaml:"queue"`
	Exchange   communication.ExchangeDeclarationConfig `yaml:"exchange"`
	RoutingKey string                                  `yaml:"routing_key"`
	Views      []string                                `yaml:"views"`
	Schedule   string                                  `yaml:"schedule"`
	Timeout    time.Duration                           `yaml:"timeout"`
}

// Config configuration of the whole service
type Config struct {
	LogLevel   string                         `yaml:"log_level"`
	Dataset    loader.Config                  `yaml:"dataset"`
	WatchData  bool                           `yaml:"watch_dataset"`
	Aggregator aggregator.Options             `yaml:"aggregator"`
	Views      queryhandlers.Options          `yaml:"views"`
	Server     ServerConfig                   `yaml:"server"`
	Rabbit     communication.ConnectionConfig `yaml:"rabbit_mq"`
	Publisher  PublisherConfig                `yaml:"publisher"`
}

// LoadConfig reads the yaml file located in filepath, applies the environment overrides and
// fills the missing values with their defaults
func LoadConfig(filepath string) (*Config, error) {
	configFile, err := utils.GetConfigFile(filepath)
	if err != nil {
		return nil, err
	}

	return ParseConfig(configFile)
}

// ParseConfig same as LoadConfig but over the content of the file
func ParseConfig(content []byte) (*Config, error) {
	var config Config
	err := yaml.Unmarshal(content, &config)
	if err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	config.applyEnv()
	config.applyDefaults()

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

// Default returns the configuration used when no file is given
func Default() *Config {
	config := &Config{}
	config.applyEnv()
	config.applyDefaults()
	return config
}

func (c *Config) applyEnv() {
	c.Dataset.Path = utils.GetEnv("DATASET_PATH", c.Dataset.Path)
	c.LogLevel = utils.GetEnv("LOG_LEVEL", c.LogLevel)
	c.Rabbit.URL = utils.GetEnv("RABBIT_URL", c.Rabbit.URL)
	c.Server.Address = utils.GetEnv("SERVER_ADDRESS", c.Server.Address)
}

func (c *Config) applyDefaults() {
	if c.LogLevel == "" {
		c.LogLevel = defaultLogLevel
	}

	if c.Dataset.Path == "" {
		c.Dataset.Path = defaultDatasetPath
	}
	c.Dataset = c.Dataset.WithDefaults()
	if c.Aggregator.TopStations <= 0 {
		c.Aggregator.TopStations = aggregator.DefaultTopStations
	}
	c.Views = c.Views.WithDefaults()

	if c.Server.Address == "" {
		c.Server.Address = defaultServerAddress
	}
	if c.Server.RateLimit <= 0 {
		c.Server.RateLimit = defaultRateLimit
	}
	if c.Server.RateWindow <= 0 {
		c.Server.RateWindow = defaultRateWindow
	}

	if c.Publisher.Sender == "" {
		c.Publisher.Sender = defaultSender
	}
	if c.Publisher.Timeout <= 0 {
		c.Publisher.Timeout = defaultPublishTimeout
	}
}

// Validate checks the values that can not be fixed with a default
func (c *Config) Validate() error {
	for _, view := range c.Publisher.Views {
		if _, err := queryhandlers.ParseKind(view); err != nil {
			return fmt.Errorf("%w: publisher views: %w", ErrInvalidConfig, err)
		}
	}

	exchangeType := c.Publisher.Exchange.Type
	if c.Publisher.Exchange.Name != "" && !utils.ContainsString(exchangeType, validExchangeTypes) {
		return fmt.Errorf("%w: invalid exchange type %q", ErrInvalidConfig, exchangeType)
	}

	if c.Publisher.Enabled && c.Publisher.Queue.Name == "" {
		return fmt.Errorf("%w: publisher queue name is required", ErrInvalidConfig)
	}

	return nil
}
