// Package app wires the coordinator, roster client and side channels into a
// runnable service.
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/skyops/dronecoord/api/missions"
	apiroster "github.com/skyops/dronecoord/api/roster"
	"github.com/skyops/dronecoord/config"
	"github.com/skyops/dronecoord/core/assign"
	coremetrics "github.com/skyops/dronecoord/core/metrics"
	"github.com/skyops/dronecoord/core/query"
	"github.com/skyops/dronecoord/infra/logger"
	"github.com/skyops/dronecoord/infra/metrics"
	"github.com/skyops/dronecoord/infra/notify"
	"github.com/skyops/dronecoord/infra/sheets"
	"github.com/skyops/dronecoord/internal/eventbus"
)

// Service holds the assembled coordinator and its HTTP surface.
type Service struct {
	Coordinator *assign.Coordinator
	Interpreter *query.Interpreter
	bus         eventbus.EventBus
	log         logger.Logger
	srv         *http.Server
	notifier    *notify.PahoNotifier
	influx      *metrics.InfluxSink
	promEnabled bool
	promPort    string
}

// New creates a Service from the configuration.
func New(cfg *config.Config) (*Service, error) {
	logg := logger.New("service")

	store, err := sheets.NewClient(cfg.Sheets)
	if err != nil {
		return nil, fmt.Errorf("sheets client: %w", err)
	}

	var sinks []coremetrics.Sink
	var influx *metrics.InfluxSink
	if cfg.Metrics.PrometheusEnabled {
		sink, err := metrics.NewPromSink(nil)
		if err != nil {
			return nil, fmt.Errorf("prom sink: %w", err)
		}
		sinks = append(sinks, sink)
	}
	if cfg.Metrics.InfluxEnabled {
		sink := metrics.NewInfluxSinkWithFallback(cfg.Metrics)
		if is, ok := sink.(*metrics.InfluxSink); ok {
			influx = is
		}
		sinks = append(sinks, sink)
	}
	var sink coremetrics.Sink
	if len(sinks) == 1 {
		sink = sinks[0]
	} else if len(sinks) > 1 {
		sink = metrics.NewMultiSink(sinks...)
	}

	var notifier *notify.PahoNotifier
	var coordNotifier assign.Notifier
	if cfg.Notify.Enabled {
		notifier, err = notify.NewPahoNotifier(cfg.Notify)
		if err != nil {
			return nil, fmt.Errorf("mqtt notifier: %w", err)
		}
		coordNotifier = notifier
	}

	bus := eventbus.New()
	coord, err := assign.NewCoordinator(store, logg, sink, bus, coordNotifier)
	if err != nil {
		return nil, fmt.Errorf("coordinator: %w", err)
	}
	interp, err := query.NewInterpreter(store, coord, logg)
	if err != nil {
		return nil, fmt.Errorf("interpreter: %w", err)
	}

	mux := http.NewServeMux()
	mux.Handle("/api/missions/assign", missions.NewAssignHandler(coord))
	mux.Handle("/api/missions/validate", missions.NewValidateHandler(coord))
	mux.Handle("/api/pilots/available", apiroster.NewPilotsHandler(store))
	mux.Handle("/api/drones/available", apiroster.NewDronesHandler(store))
	mux.Handle("/api/query", apiroster.NewQueryHandler(interp))

	return &Service{
		Coordinator: coord,
		Interpreter: interp,
		bus:         bus,
		log:         logg,
		srv:         &http.Server{Addr: cfg.API.Addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second},
		notifier:    notifier,
		influx:      influx,
		promEnabled: cfg.Metrics.PrometheusEnabled,
		promPort:    cfg.Metrics.PrometheusPort,
	}, nil
}

// Run starts the HTTP listeners and blocks until the context is cancelled.
func (s *Service) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.log.Infof("api listening on %s", s.srv.Addr)
		if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()
	if s.promEnabled {
		go func() {
			if err := metrics.StartPromServer(ctx, s.promPort); err != nil {
				s.log.Errorf("prom server: %v", err)
			}
		}()
	}
	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.srv.Shutdown(shutdownCtx)
}

// Close releases resources held by the service.
func (s *Service) Close() error {
	if s.bus != nil {
		s.bus.Close()
	}
	if s.notifier != nil {
		s.notifier.Close()
	}
	if s.influx != nil {
		s.influx.Close()
	}
	return nil
}
