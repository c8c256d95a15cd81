package mcp

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/photoreport-cli/internal/logger"
)

// DefaultVersion is reported to clients when no version is configured.
const DefaultVersion = "dev"

// shutdownTimeout bounds how long RunHTTP waits for open requests.
const shutdownTimeout = 5 * time.Second

const instructions = `Photo report tools. Photos are grouped by the leading letters and digits
of their file name (CR5681.jpg, cr5681-1.png and CR5681_02.jpeg form group
CR5681) and groups are ordered by the number in their key. Use group_photos
or plan_layout to preview a set of file names, list_reports to find stored
reports and export_report to write one as PDF.`

// Option configures a Server.
type Option func(*Server)

// WithVersion sets the version reported during initialisation.
func WithVersion(version string) Option {
	return func(s *Server) {
		if version != "" {
			s.version = version
		}
	}
}

// Server exposes photo grouping, layout and report export over MCP.
type Server struct {
	ports   *Ports
	version string
	server  *mcp.Server
}

// NewServer creates a new MCP server with the given ports.
func NewServer(ports *Ports, opts ...Option) (*Server, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("validating ports: %w", err)
	}

	s := &Server{
		ports:   ports,
		version: DefaultVersion,
	}
	for _, opt := range opts {
		opt(s)
	}

	s.server = mcp.NewServer(
		&mcp.Implementation{Name: "photoreport", Version: s.version},
		&mcp.ServerOptions{Instructions: instructions},
	)
	s.registerTools()
	s.registerResources()

	return s, nil
}

// Version returns the version reported to clients.
func (s *Server) Version() string {
	return s.version
}

// Run serves over stdio until ctx is cancelled or the client disconnects.
func (s *Server) Run(ctx context.Context) error {
	logger.Debug("mcp: serving over stdio")
	return s.server.Run(ctx, &mcp.StdioTransport{})
}

// RunHTTP serves the streamable HTTP transport on addr until ctx is
// cancelled. Open requests get shutdownTimeout to finish.
func (s *Server) RunHTTP(ctx context.Context, addr string) error {
	handler := mcp.NewStreamableHTTPHandler(func(_ *http.Request) *mcp.Server {
		return s.server
	}, nil)

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Warn("mcp: shutdown: %v", err)
		}
	}()

	logger.Debug("mcp: serving over http on %s", addr)
	if err := httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
