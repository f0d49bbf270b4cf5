package server

import (
	"context"
	"log"
	"net/http"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/lcalzada-xor/hsmap/internal/adapters/reporting"
	"github.com/lcalzada-xor/hsmap/internal/adapters/web/handlers"
	"github.com/lcalzada-xor/hsmap/internal/adapters/web/websocket"
	"github.com/lcalzada-xor/hsmap/internal/core/ports"
	"github.com/lcalzada-xor/hsmap/internal/core/services/registry"
)

// Server handles HTTP and WebSocket connections.
type Server struct {
	Addr       string
	APIKeyHash string

	NetworkHandler *handlers.NetworkHandler
	ReportHandler  *handlers.ReportHandler
	WSManager      *websocket.WSManager

	srv *http.Server
}

// NewServer creates a new web server over the given registry. operators may
// be nil when no OI registry is configured.
func NewServer(addr, apiKeyHash string, reg *registry.NetworkRegistry, operators ports.OperatorRepository) *Server {
	wsManager := websocket.NewWSManager(operators)
	reg.Attach(wsManager)

	return &Server{
		Addr:           addr,
		APIKeyHash:     apiKeyHash,
		NetworkHandler: handlers.NewNetworkHandler(reg, operators),
		ReportHandler:  handlers.NewReportHandler(reg, reporting.NewPDFExporter()),
		WSManager:      wsManager,
	}
}

// Run starts the server and blocks until the context is cancelled.
func (s *Server) Run(ctx context.Context) error {
	handler := SetupRoutes(s)

	// Instrument with OpenTelemetry
	instrumentedHandler := otelhttp.NewHandler(handler, "hsmap-server")

	s.srv = &http.Server{
		Addr:              s.Addr,
		Handler:           instrumentedHandler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Graceful Shutdown implementation
	go func() {
		<-ctx.Done()
		log.Println("Web Server shutting down...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("Web Server shutdown error: %v", err)
		}
	}()

	log.Printf("Web server listening on %s", s.Addr)
	if err := s.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}
