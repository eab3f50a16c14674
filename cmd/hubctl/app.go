package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/goliatone/go-users/pkg/types"
	"github.com/sirupsen/logrus"

	hub "github.com/goliatone/go-contact-hub/components/hub"
	"github.com/goliatone/go-contact-hub/pkg/activity"
	"github.com/goliatone/go-contact-hub/pkg/activity/usersink"
	hubpkg "github.com/goliatone/go-contact-hub/pkg/hub"
	"github.com/goliatone/go-contact-hub/pkg/telemetry"
)

// app holds the collaborators shared by every subcommand.
type app struct {
	ctx     context.Context
	cfg     Config
	logger  *logrus.Logger
	metrics *telemetry.Prometheus
	service *hubpkg.Service
	out     io.Writer
}

func newLogger(cfg LogConfig, out io.Writer) (*logrus.Logger, error) {
	logger := logrus.New()
	logger.SetOutput(out)
	level, err := logrus.ParseLevel(strings.TrimSpace(cfg.Level))
	if err != nil {
		return nil, fmt.Errorf("hubctl: log level: %w", err)
	}
	logger.SetLevel(level)
	switch strings.ToLower(strings.TrimSpace(cfg.Format)) {
	case "json":
		logger.SetFormatter(&logrus.JSONFormatter{})
	case "", "text":
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	default:
		return nil, fmt.Errorf("hubctl: unknown log format %q", cfg.Format)
	}
	return logger, nil
}

func newApp(ctx context.Context, cfg Config, logOut, out io.Writer) (*app, error) {
	logger, err := newLogger(cfg.Log, logOut)
	if err != nil {
		return nil, err
	}
	metrics := telemetry.NewPrometheus("contact_hub")
	emitter, err := hub.NewEmitter(hub.EmitterConfig{
		Cache: hub.NewScriptCache(cfg.Emitter.CacheTTL),
		Delays: map[hub.EmitMode]time.Duration{
			hub.ModeEmbed:   cfg.Emitter.EmbedDelay,
			hub.ModePreview: cfg.Emitter.PreviewDelay,
		},
		SimulateDelay: cfg.Emitter.SimulateDelay,
		Endpoint:      cfg.Telegram.Endpoint,
	})
	if err != nil {
		return nil, err
	}
	live := hub.NewTelegramTransport(hub.TelegramConfig{
		Endpoint:   cfg.Telegram.Endpoint,
		HTTPClient: &http.Client{Timeout: cfg.Telegram.Timeout},
		Logger:     logger,
	})
	service := hubpkg.NewService(hub.Options{
		Store:         hub.NewFileWidgetStore(cfg.Store),
		Transport:     hub.NewRelay(live, hub.NewSimulatedTransport(cfg.Emitter.SimulateDelay)),
		Emitter:       emitter,
		Telemetry:     metrics,
		ActivityHooks: activity.Hooks{usersink.Hook{Sink: logSink{logger: logger}}},
		ActivityConfig: activity.Config{
			Enabled: cfg.Activity.Enabled,
			Verbs:   cfg.Activity.Verbs,
		},
		Logger: logger,
	})
	return &app{
		ctx:     ctx,
		cfg:     cfg,
		logger:  logger,
		metrics: metrics,
		service: service,
		out:     out,
	}, nil
}

// logSink writes go-users activity records to the log.
type logSink struct {
	logger logrus.FieldLogger
}

func (s logSink) Log(_ context.Context, record types.ActivityRecord) error {
	s.logger.WithFields(logrus.Fields{
		"verb":        record.Verb,
		"object_type": record.ObjectType,
		"object_id":   record.ObjectID,
		"channel":     record.Channel,
	}).Info("activity")
	return nil
}
