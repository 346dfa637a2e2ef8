package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/ABHINAV-SUREKA/aws-lambda-slack-relay/constants"
	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// LookupFunc has the signature of os.LookupEnv.
type LookupFunc func(key string) (string, bool)

// DeliveryConfig identifies where and as whom a message is posted.
type DeliveryConfig struct {
	WebhookURL string
	Channel    string
	Username   string
	IconEmoji  string
}

type Config struct {
	Delivery DeliveryConfig
	LogLevel log.Level
}

// Resolve builds the invocation config from lookup. It fails on the first
// required variable that is unset or blank.
func Resolve(lookup LookupFunc) (Config, error) {
	if lookup == nil {
		lookup = os.LookupEnv
	}

	get := func(name string) string {
		val, _ := lookup(name)
		return strings.TrimSpace(val)
	}

	cfg := Config{
		Delivery: DeliveryConfig{
			WebhookURL: get(constants.EnvSlackWebhook),
			Channel:    get(constants.EnvChannelName),
			Username:   get(constants.EnvUsername),
			IconEmoji:  constants.IconEmoji,
		},
		LogLevel: parseLogLevel(get(constants.EnvLogLevel)),
	}

	if cfg.Delivery.WebhookURL == "" {
		return Config{}, &ConfigError{Name: constants.EnvSlackWebhook}
	}
	if cfg.Delivery.Channel == "" {
		return Config{}, &ConfigError{Name: constants.EnvChannelName}
	}
	if cfg.Delivery.Username == "" {
		cfg.Delivery.Username = constants.DefaultUsername
	}

	return cfg, nil
}

func parseLogLevel(level string) log.Level {
	if level == "" {
		level = constants.DefaultLogLevel
	}
	switch strings.ToLower(level) {
	case "trace":
		return log.TraceLevel
	case "debug":
		return log.DebugLevel
	case "warn":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	default:
		return log.InfoLevel
	}
}

// LoadEnvFile exports the NAME: value pairs of a YAML file into the process
// environment. Variables that are already set are left alone and a missing
// file is ignored.
func LoadEnvFile(path string) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read env file %s: %w", path, err)
	}

	vars := map[string]string{}
	if err := yaml.Unmarshal(data, &vars); err != nil {
		return fmt.Errorf("parse env file %s: %w", path, err)
	}

	for key, val := range vars {
		if _, ok := os.LookupEnv(key); ok {
			continue
		}
		if err := os.Setenv(key, val); err != nil {
			return fmt.Errorf("set %s from env file: %w", key, err)
		}
	}
	return nil
}

type Relay interface {
	Handler() (string, error)
}

type config struct {
	ctx      context.Context
	event    json.RawMessage
	lookup   LookupFunc
	notifier Notifier
}

type Option func(*config)

func WithLookup(lookup LookupFunc) Option {
	return func(c *config) {
		c.lookup = lookup
	}
}

func WithNotifier(notifier Notifier) Option {
	return func(c *config) {
		c.notifier = notifier
	}
}

func New(ctx context.Context, event json.RawMessage, opts ...Option) Relay {
	c := &config{
		ctx:   ctx,
		event: event,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.lookup == nil {
		c.lookup = os.LookupEnv
	}
	if c.notifier == nil {
		c.notifier = NewSlackNotifier(nil)
	}
	return c
}
