package main

import (
	"fmt"

	"github.com/ruminaider/devprofile/internal/config"
	"github.com/ruminaider/devprofile/internal/paths"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show local CLI configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(paths.ConfigFile())
		if err != nil {
			return err
		}
		fmt.Printf("server: %s\n", cfg.Server)
		if cfg.TimeoutSeconds > 0 {
			fmt.Printf("timeout_seconds: %d\n", cfg.TimeoutSeconds)
		}
		return nil
	},
}

var configSetServerCmd = &cobra.Command{
	Use:   "set-server <url>",
	Short: "Set the controller address",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(paths.ConfigFile())
		if err != nil {
			return err
		}
		cfg.Server = args[0]
		if err := config.Save(paths.ConfigFile(), cfg); err != nil {
			return err
		}
		fmt.Printf("Controller address set to %s\n", cfg.Server)
		return nil
	},
}

func init() {
	configCmd.AddCommand(configSetServerCmd)
}
