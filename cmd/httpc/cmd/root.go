// Package cmd implements the httpc command line.
package cmd

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/philippludwig/libsimplehttp/client"
	"github.com/philippludwig/libsimplehttp/config"
	"github.com/philippludwig/libsimplehttp/logger"
	"github.com/philippludwig/libsimplehttp/transport"
)

// NewCommand returns the root command for the httpc CLI
func NewCommand() (cmd *cobra.Command) {
	var engine, unixSocket, caFile string
	var cl *client.HttpClient

	cmd = &cobra.Command{
		Use:          "httpc",
		Short:        "minimal HTTP/HTTPS client",
		Long:         `httpc performs single blocking HTTP and HTTPS requests and prints the reply.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			envFile := os.Getenv("ENV_FILE")
			if envFile == "" {
				envFile = ".env"
			}
			_ = godotenv.Load(envFile)

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if cmd.Flag("engine").Changed {
				cfg.Engine = engine
			}
			if cmd.Flag("unix-socket").Changed {
				cfg.UnixSocket = unixSocket
			}
			if cmd.Flag("cacert").Changed {
				cfg.CAFile = caFile
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			rootCAs, err := cfg.RootCAs()
			if err != nil {
				return err
			}

			log := logger.InitLogger(cfg.Environment, cfg.UseJSONLogs())
			log.Debug("configuration loaded",
				zap.String("engine", cfg.Engine),
				zap.String("unix_socket", cfg.UnixSocket),
				zap.String("ca_file", cfg.CAFile),
			)

			opts := []client.Option{
				client.WithEngine(cfg.TransportEngine()),
				client.WithLogger(log),
			}
			if cfg.UnixSocket != "" {
				opts = append(opts, client.WithUnixSocket(cfg.UnixSocket))
			}
			if rootCAs != nil {
				opts = append(opts, client.WithRootCAs(rootCAs))
			}
			cl = client.NewHttpClient(opts...)

			return nil
		},
	}

	cmd.AddCommand(
		NewGetCommand(&cl),
		NewPostCommand(&cl),
		NewDemoCommand(&cl),
	)

	cmd.PersistentFlags().StringVar(&engine, "engine", string(transport.EngineNet), "socket engine: net, iouring or uring")
	cmd.PersistentFlags().StringVar(&unixSocket, "unix-socket", "", "send requests to this Unix domain socket")
	cmd.PersistentFlags().StringVar(&caFile, "cacert", "", "PEM file with additional trusted CA certificates")

	return cmd
}

// joinHeaders turns repeated -H values into one CRLF-separated header block.
func joinHeaders(headers []string) string {
	return strings.Join(headers, "\r\n")
}
