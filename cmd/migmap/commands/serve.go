package commands

import (
	"fmt"
	"net"
	"strings"

	"github.com/pkg/browser"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"migmap/internal/httpapi"
)

var (
	serveAddr string
	serveOpen bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the map queries as a JSON HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		addr := serveAddr
		if addr == "" {
			addr = cfg.HTTPAddr
		}

		srv := httpapi.NewServer(addr, httpapi.NewRouter(dataset, registry), cfg.HTTPReadHeaderTimeout)

		if serveOpen {
			url := browserURL(addr) + "/api/state"
			if err := browser.OpenURL(url); err != nil {
				log.Warn().Err(err).Str("url", url).Msg("Failed to open browser")
			}
		}

		return httpapi.Serve(cmd.Context(), srv)
	},
}

// browserURL turns a listen address into a URL a local browser can reach.
func browserURL(addr string) string {
	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		return "http://" + addr
	}
	if host == "" || host == "0.0.0.0" || host == "::" {
		host = "localhost"
	}
	if strings.Contains(host, ":") {
		host = "[" + host + "]"
	}
	return fmt.Sprintf("http://%s:%s", host, port)
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default HTTP_ADDR)")
	serveCmd.Flags().BoolVar(&serveOpen, "open", false, "open the API in the default browser")
	rootCmd.AddCommand(serveCmd)
}
