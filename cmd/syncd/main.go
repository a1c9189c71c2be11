package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/govradar/govradar/pkg/alerts"
	"github.com/govradar/govradar/pkg/api"
	"github.com/govradar/govradar/pkg/channels"
	"github.com/govradar/govradar/pkg/config"
	"github.com/govradar/govradar/pkg/db"
	"github.com/govradar/govradar/pkg/engine"
	"github.com/govradar/govradar/pkg/fetch"
	"github.com/govradar/govradar/pkg/lifecycle"
	"github.com/govradar/govradar/pkg/models"
)

var (
	errFailedToLoadConfig = fmt.Errorf("failed to load config")
	errListenAddrRequired = errors.New("listen_addr is required")
	errBackendURLRequired = errors.New("backend_url is required when polling is enabled")
)

// Config is the syncd daemon configuration.
type Config struct {
	ListenAddr       string                 `json:"listen_addr"`
	GrpcAddr         string                 `json:"grpc_addr,omitempty"`
	BackendURL       string                 `json:"backend_url"`
	DBPath           string                 `json:"db_path,omitempty"`
	HistoryRetention config.Duration        `json:"history_retention,omitempty"`
	Webhooks         []alerts.WebhookConfig `json:"webhooks,omitempty"`
	Sync             engine.Config          `json:"sync"`
}

func (c *Config) Validate() error {
	if c.ListenAddr == "" {
		return errListenAddrRequired
	}

	if c.Sync.EnablePolling && c.BackendURL == "" {
		return errBackendURLRequired
	}

	return nil
}

func main() {
	if err := run(); err != nil {
		log.Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log.Printf("Starting dashboard sync daemon...")

	configPath := flag.String("config", "/etc/govradar/syncd.json", "Path to config file")
	flag.Parse()

	var cfg Config

	if err := config.LoadAndValidate(*configPath, &cfg); err != nil {
		return fmt.Errorf("%w: %w", errFailedToLoadConfig, err)
	}

	registry := channels.NewRegistry()
	source := fetch.NewClient(cfg.BackendURL, time.Duration(cfg.Sync.FetchTimeout))
	syncEngine := engine.New(cfg.Sync, source, registry)

	services := make([]lifecycle.Service, 0, 3)

	var store db.Service

	if cfg.DBPath != "" {
		database, err := db.New(cfg.DBPath)
		if err != nil {
			return fmt.Errorf("failed to open history database: %w", err)
		}

		store = database

		services = append(services, &historyService{
			store:     database,
			registry:  registry,
			retention: time.Duration(cfg.HistoryRetention),
		})
	}

	for i := range cfg.Webhooks {
		alerter := alerts.NewWebhookAlerter(cfg.Webhooks[i])
		if !alerter.IsEnabled() {
			continue
		}

		registry.Subscribe(models.ChannelCompliance, func(payload interface{}) {
			status, ok := payload.(models.ComplianceStatus)
			if !ok {
				return
			}

			alerter.Evaluate(status)
		})
	}

	services = append(services, syncEngine)

	apiServer := api.NewServer(syncEngine, registry, store)
	services = append(services, &httpService{api: apiServer, addr: cfg.ListenAddr})

	opts := lifecycle.ServerOptions{
		ServiceName: "syncd",
		GrpcAddr:    cfg.GrpcAddr,
		Services:    services,
	}

	if err := lifecycle.RunServer(context.Background(), &opts); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}

// httpService adapts the API server to the lifecycle Service interface.
type httpService struct {
	api  *api.Server
	addr string
}

func (h *httpService) Start(context.Context) error {
	log.Printf("Starting HTTP server on %s", h.addr)

	if err := h.api.Start(h.addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}

func (h *httpService) Stop(ctx context.Context) error {
	return h.api.Shutdown(ctx)
}

// historyService records every derived compliance status into the SQLite
// store and prunes old rows at boot.
type historyService struct {
	store     db.Service
	registry  *channels.Registry
	retention time.Duration
	unsub     func()
}

func (s *historyService) Start(context.Context) error {
	if s.retention > 0 {
		if err := s.store.CleanOldData(s.retention); err != nil {
			log.Printf("Failed to prune compliance history: %v", err)
		}
	}

	s.unsub = s.registry.Subscribe(models.ChannelCompliance, func(payload interface{}) {
		status, ok := payload.(models.ComplianceStatus)
		if !ok {
			return
		}

		if err := s.store.RecordCompliance(time.Now(), status); err != nil {
			log.Printf("Failed to record compliance history: %v", err)
		}
	})

	return nil
}

func (s *historyService) Stop(context.Context) error {
	if s.unsub != nil {
		s.unsub()
	}

	return s.store.Close()
}
