package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bondar-aleksandr/sros_device_info/internal/app"
	"github.com/bondar-aleksandr/sros_device_info/internal/connection"
	"github.com/bondar-aleksandr/sros_device_info/internal/worker"
	"github.com/spf13/cobra"
)

const defaultConfigPath = "./config/config.yml"

func newRootCmd() *cobra.Command {
	var cfgPath string

	rootCmd := &cobra.Command{
		Use:           "sros-device-info",
		Short:         "Collects identity facts (OS, hostname, model, version, config mode) from Nokia SR OS devices",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), cfgPath)
		},
	}
	rootCmd.Flags().StringVarP(&cfgPath, "config", "c", defaultConfigPath, "Path to config file")

	return rootCmd
}

func run(parent context.Context, cfgPath string) error {
	start := time.Now()
	a, err := app.NewApp(cfgPath)
	if err != nil {
		return err
	}
	defer a.Logger.Sync() //nolint:errcheck

	//graceful shutdown setup
	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		select {
		case s := <-quit:
			a.Logger.Errorf("Caught signal: %q, exiting...", s.String())
			cancel()
		case <-ctx.Done():
		}
		signal.Stop(quit)
	}()

	devices, err := a.LoadDevices()
	if err != nil {
		a.Logger.Error(err)
		return err
	}

	worker.RunAll(ctx, a, devices, connection.NewOpener(a.Config.Client, a.Logger))

	summary, err := a.WriteSummary(devices)
	fmt.Println(summary)
	if err != nil {
		return err
	}

	a.Logger.Infof("Finished! Time taken: %s", time.Since(start))
	return nil
}
