// Command carrentalctl runs maintenance tasks against the car rental database.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/linesmerrill/car-rental-api/config"
	"github.com/linesmerrill/car-rental-api/databases"
)

// Version is reported by --version. Release builds set it with
// -ldflags "-X main.Version=<tag>".
var Version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "carrentalctl",
		Short:         "Maintenance tasks for the car rental catalog and order records",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.AddCommand(seedCmd())
	rootCmd.AddCommand(ordersCmd())
	rootCmd.AddCommand(completeExpiredCmd())
	return rootCmd
}

// connect opens the database named by the environment. The returned func
// disconnects the client.
func connect(ctx context.Context) (*config.Config, databases.DatabaseHelper, func(), error) {
	conf := config.New()
	client, err := databases.NewClient(conf)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to create database client: %w", err)
	}
	if err := client.Connect(ctx); err != nil {
		return nil, nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	closeFn := func() {
		if err := client.Disconnect(context.Background()); err != nil {
			zap.S().Warnw("failed to disconnect from database", "error", err)
		}
	}
	return conf, databases.NewDatabase(conf, client), closeFn, nil
}
