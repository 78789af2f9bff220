package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/skyops/dronecoord/app"
	"github.com/skyops/dronecoord/config"
	"github.com/skyops/dronecoord/infra/logger"
)

var queryCmd = &cobra.Command{
	Use:   "query TEXT...",
	Short: "Run a free-text request, e.g. \"show pilots in Pune\"",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runQuery,
}

func init() {
	rootCmd.AddCommand(queryCmd)
}

func runQuery(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	svc, err := app.New(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := svc.Close(); err != nil {
			logger.New("query-command").Errorf("service close: %v", err)
		}
	}()

	reply := svc.Interpreter.Handle(ctx, strings.Join(args, " "))
	fmt.Println(reply.Message)
	if reply.Status == "error" {
		return fmt.Errorf("query failed")
	}
	return nil
}
