package main

import (
	"fmt"

	"github.com/ruminaider/devprofile/internal/editor"
	"github.com/ruminaider/devprofile/internal/syncer"
	"github.com/ruminaider/devprofile/internal/templates"
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show profiles and devices on the controller",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctrl, err := newController()
		if err != nil {
			return err
		}

		if st := ctrl.Load(cmd.Context()); st.Level == syncer.Error {
			printStatus(st)
			return nil
		}
		sess := ctrl.Session()

		profiles := sess.Profiles()
		if len(profiles) == 0 {
			fmt.Println("No profiles configured.")
		} else {
			fmt.Println("Profiles:")
			for _, p := range profiles {
				marker := " "
				if p.ID == sess.ActiveProfileID() {
					marker = "*"
				}
				fmt.Printf("%s %s (%s)\n", marker, p.Name, p.ID)
			}
		}

		devices := sess.Devices()
		fmt.Println()
		if len(devices) == 0 {
			fmt.Println("No devices configured.")
			return nil
		}
		fmt.Printf("Devices (%d/%d):\n", len(devices), editor.MaxDevices)
		for _, dev := range devices {
			kind := "none"
			if dev.Template != nil {
				kind = templates.LabelFor(dev.Template.Type)
			}
			name := dev.DisplayName
			if name == "" {
				name = dev.ID
			}
			fmt.Printf("  %s [%s]\n", name, kind)
		}
		return nil
	},
}
