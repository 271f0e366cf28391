package mcp

import (
	"context"
	"encoding/json"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog/log"

	"migmap/internal/atlas"
	"migmap/internal/config"
)

// Server exposes a loaded dataset as MCP tools.
type Server struct {
	ds                  *atlas.Dataset
	enableMermaidCharts bool
	server              *sdk.Server
}

// NewServer creates a new MCP server and registers its tools.
func NewServer(cfg *config.AppConfig, ds *atlas.Dataset, version string) *Server {
	s := &Server{
		ds:                  ds,
		enableMermaidCharts: cfg.EnableMermaidCharts,
		server:              sdk.NewServer(&sdk.Implementation{Name: "migmap", Version: version}, nil),
	}
	s.registerTools()
	return s
}

// Start serves MCP over stdin/stdout until the client disconnects or ctx is done.
func (s *Server) Start(ctx context.Context) error {
	log.Info().Msg("MCP Server starting Stdio loop")
	return s.server.Run(ctx, &sdk.StdioTransport{})
}

// Connect serves a single session over t.
func (s *Server) Connect(ctx context.Context, t sdk.Transport) (*sdk.ServerSession, error) {
	return s.server.Connect(ctx, t, nil)
}

func (s *Server) formatResult(data interface{}) string {
	out, _ := json.MarshalIndent(data, "", "  ")
	return string(out)
}
