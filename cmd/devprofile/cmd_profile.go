package main

import (
	"fmt"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Manage device profiles",
}

var profileListCmd = &cobra.Command{
	Use:   "list",
	Short: "List profiles on the controller",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctrl, err := newController()
		if err != nil {
			return err
		}
		st := ctrl.Load(cmd.Context())
		sess := ctrl.Session()

		if len(sess.Profiles()) == 0 {
			printStatus(st)
			fmt.Println("No profiles configured.")
			return nil
		}
		for _, p := range sess.Profiles() {
			if p.ID == sess.ActiveProfileID() {
				fmt.Printf("* %s (%s)\n", p.Name, p.ID)
			} else {
				fmt.Printf("  %s (%s)\n", p.Name, p.ID)
			}
		}
		return nil
	},
}

var profileCreateClone string

var profileCreateCmd = &cobra.Command{
	Use:   "create [id] [name]",
	Short: "Create a profile",
	Args:  cobra.MaximumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		var id, name string
		if len(args) > 0 {
			id = args[0]
		}
		if len(args) > 1 {
			name = args[1]
		}
		if id == "" {
			id = fmt.Sprintf("profile_%x", time.Now().UnixMilli())
			err := huh.NewForm(
				huh.NewGroup(
					huh.NewInput().Title("Profile id").Value(&id),
					huh.NewInput().Title("Display name").Value(&name),
				),
			).Run()
			if err != nil {
				return err
			}
		}

		ctrl, err := newController()
		if err != nil {
			return err
		}
		printStatus(ctrl.CreateProfile(cmd.Context(), id, name, profileCreateClone))
		return nil
	},
}

var profileRenameCmd = &cobra.Command{
	Use:   "rename <id> [new-name]",
	Short: "Rename a profile",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id := args[0]
		var name string
		if len(args) > 1 {
			name = args[1]
		} else {
			err := huh.NewForm(
				huh.NewGroup(
					huh.NewInput().Title("New profile name").Value(&name),
				),
			).Run()
			if err != nil {
				return err
			}
		}
		if name == "" {
			fmt.Println("No name given, nothing to do.")
			return nil
		}

		ctrl, err := newController()
		if err != nil {
			return err
		}
		printStatus(ctrl.RenameProfile(cmd.Context(), id, name))
		return nil
	},
}

var profileDeleteForce bool

var profileDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a profile",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id := args[0]
		if !profileDeleteForce {
			confirmed := false
			err := huh.NewForm(
				huh.NewGroup(
					huh.NewConfirm().
						Title(fmt.Sprintf("Delete profile %s?", id)).
						Value(&confirmed),
				),
			).Run()
			if err != nil {
				return err
			}
			if !confirmed {
				fmt.Println("Cancelled.")
				return nil
			}
		}

		ctrl, err := newController()
		if err != nil {
			return err
		}
		printStatus(ctrl.DeleteProfile(cmd.Context(), id))
		return nil
	},
}

var profileActivateCmd = &cobra.Command{
	Use:   "activate <id>",
	Short: "Make a profile the active one",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctrl, err := newController()
		if err != nil {
			return err
		}
		printStatus(ctrl.ActivateProfile(cmd.Context(), args[0]))
		return nil
	},
}

func init() {
	profileCreateCmd.Flags().StringVar(&profileCreateClone, "clone", "", "clone an existing profile by id")
	profileDeleteCmd.Flags().BoolVarP(&profileDeleteForce, "force", "f", false, "skip confirmation")
	profileCmd.AddCommand(profileListCmd)
	profileCmd.AddCommand(profileCreateCmd)
	profileCmd.AddCommand(profileRenameCmd)
	profileCmd.AddCommand(profileDeleteCmd)
	profileCmd.AddCommand(profileActivateCmd)
}
