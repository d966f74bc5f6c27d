package main

import (
	"fmt"

	"github.com/ruminaider/devprofile/internal/api"
	"github.com/ruminaider/devprofile/internal/config"
	"github.com/ruminaider/devprofile/internal/model"
	"github.com/ruminaider/devprofile/internal/paths"
	"github.com/ruminaider/devprofile/internal/syncer"
)

// newController builds a sync controller from the local CLI configuration.
func newController() (*syncer.Controller, error) {
	cfg, err := config.Load(paths.ConfigFile())
	if err != nil {
		return nil, err
	}
	client := api.New(cfg.Server, cfg.Timeout())
	return syncer.New(client, model.NewSession()), nil
}

// printStatus renders an advisory status line with a marker for warnings
// and errors.
func printStatus(st syncer.Status) {
	switch st.Level {
	case syncer.Error:
		fmt.Printf("✗ %s\n", st.Text)
	case syncer.Warn:
		fmt.Printf("! %s\n", st.Text)
	default:
		fmt.Println(st.Text)
	}
}
