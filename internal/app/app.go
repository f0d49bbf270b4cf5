package app

import (
	"context"
	"errors"
	"log"
	"log/slog"

	"github.com/lcalzada-xor/hsmap/internal/adapters/sniffer"
	"github.com/lcalzada-xor/hsmap/internal/adapters/sniffer/ie"
	"github.com/lcalzada-xor/hsmap/internal/adapters/storage"
	webserver "github.com/lcalzada-xor/hsmap/internal/adapters/web/server"
	"github.com/lcalzada-xor/hsmap/internal/config"
	"github.com/lcalzada-xor/hsmap/internal/core/domain"
	"github.com/lcalzada-xor/hsmap/internal/core/ports"
	"github.com/lcalzada-xor/hsmap/internal/core/services/registry"
	"github.com/lcalzada-xor/hsmap/internal/telemetry"
)

// Application wires the capture source, the network registry, persistence
// and the web surface together.
type Application struct {
	Config    *config.Config
	Registry  *registry.NetworkRegistry
	Store     *storage.SQLiteAdapter
	Operators ports.OperatorRepository
	WebServer *webserver.Server
	Source    ports.FrameSource
}

// New builds the application from configuration.
func New(cfg *config.Config) (*Application, error) {
	telemetry.InitMetrics()

	store, err := storage.NewSQLiteAdapter(cfg.DBPath)
	if err != nil {
		return nil, err
	}

	// The operator registry is optional: lookups degrade to raw OI values.
	var operators ports.OperatorRepository
	if oiRegistry, err := storage.NewOIRegistry(cfg.OIDBPath); err != nil {
		slog.Warn("Operator registry unavailable", "path", cfg.OIDBPath, "error", err)
	} else {
		operators = oiRegistry
	}

	reg := registry.NewNetworkRegistry(nil)
	store.SetSessionID(reg.SessionID())
	reg.Attach(&persistenceObserver{store: store})

	app := &Application{
		Config:    cfg,
		Registry:  reg,
		Store:     store,
		Operators: operators,
		WebServer: webserver.NewServer(cfg.Addr, cfg.APIKeyHash, reg, operators),
	}

	switch {
	case cfg.PcapPath != "":
		app.Source = sniffer.NewOffline(cfg.PcapPath, cfg.Debug)
	case len(cfg.Interfaces) > 0:
		app.Source = sniffer.NewLive(cfg.Interfaces[0], cfg.Debug)
	}

	return app, nil
}

// Run starts the capture source and the web server and blocks until the
// context is cancelled.
func (a *Application) Run(ctx context.Context) error {
	if a.Source != nil {
		go func() {
			if err := a.Source.Run(ctx, a.handleFrame); err != nil {
				slog.Error("Capture source stopped", "error", err)
			}
		}()
	}

	return a.WebServer.Run(ctx)
}

// handleFrame decodes one captured frame into the registry. Rejected buffers
// are counted and dropped; over-the-air data is adversarial and a bad frame
// must not stop the scan.
func (a *Application) handleFrame(bssid, infoElements string) {
	nd, err := ie.ParseNetworkDescriptor(bssid, infoElements, nil)
	if err != nil {
		telemetry.DecodeErrors.WithLabelValues(decodeErrorReason(err)).Inc()
		if a.Config.Debug {
			slog.Debug("Frame rejected", "bssid", bssid, "error", err)
		}
		return
	}
	a.Registry.Process(nd)
}

func decodeErrorReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrInvalidAddress):
		return "invalid_address"
	case errors.Is(err, domain.ErrMalformedElement):
		return "malformed_element"
	default:
		return "invalid_input"
	}
}

// Close releases persistent resources.
func (a *Application) Close() {
	if a.Operators != nil {
		if err := a.Operators.Close(); err != nil {
			log.Printf("Error closing operator registry: %v", err)
		}
	}
	if err := a.Store.Close(); err != nil {
		log.Printf("Error closing network store: %v", err)
	}
}

// persistenceObserver saves every discovery and update through the store.
type persistenceObserver struct {
	store ports.NetworkStore
}

func (p *persistenceObserver) OnNetworkDiscovered(nd domain.NetworkDescriptor) {
	if err := p.store.SaveNetwork(nd); err != nil {
		log.Printf("Error persisting network %s: %v", nd.KeyString(), err)
	}
}

func (p *persistenceObserver) OnNetworkUpdated(nd domain.NetworkDescriptor) {
	if err := p.store.SaveNetwork(nd); err != nil {
		log.Printf("Error persisting network %s: %v", nd.KeyString(), err)
	}
}
