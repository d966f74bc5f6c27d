package main

import (
	"encoding/json"
	"fmt"

	"github.com/ruminaider/devprofile/internal/syncer"
	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Print the controller configuration as JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctrl, err := newController()
		if err != nil {
			return err
		}
		if st := ctrl.Load(cmd.Context()); st.Level == syncer.Error {
			printStatus(st)
			return nil
		}
		data, err := json.MarshalIndent(ctrl.Session().Document(), "", "  ")
		if err != nil {
			return fmt.Errorf("encoding document: %w", err)
		}
		fmt.Println(string(data))
		return nil
	},
}
