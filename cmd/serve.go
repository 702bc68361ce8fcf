package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/seqslice/seqslice/config"
	"github.com/seqslice/seqslice/internal/api"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve subgraph extraction over HTTP",
	Long: `Serve the extraction API

POST /extract takes a GFA graph with two positions and responds with
the sliced graph and the id translation; GET /healthz reports liveness`,
	Run: runServe,
}

func init() {
	RootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringP("addr", "a", ":8723", "Address to listen on")
	must(viper.BindPFlag("server.addr", serveCmd.Flags().Lookup("addr")))
}

func runServe(cmd *cobra.Command, args []string) {
	c := config.New()

	logger, err := zap.NewProduction()
	if err != nil {
		stderr.Fatalf("failed to build logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	server := api.NewServer(logger)
	if err := server.Listen(c.Server.Addr); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
