package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/skyops/dronecoord/app"
	"github.com/skyops/dronecoord/config"
	"github.com/skyops/dronecoord/infra/logger"
)

var assignUrgent bool

var assignCmd = &cobra.Command{
	Use:   "assign MISSION_ID",
	Short: "Run a single assignment attempt and print the result",
	Args:  cobra.ExactArgs(1),
	RunE:  assignMission,
}

func init() {
	assignCmd.Flags().BoolVarP(&assignUrgent, "urgent", "u", false, "relax the location preference")
	rootCmd.AddCommand(assignCmd)
}

func assignMission(cmd *cobra.Command, args []string) error {
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
			logger.New("assign-command").Errorf("service close: %v", err)
		}
	}()

	res, err := svc.Coordinator.Assign(ctx, args[0], assignUrgent)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(res)
}
