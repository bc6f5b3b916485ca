package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Show or edit the user profile",
}

var profileShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the profile and current age",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.close()

		profile, err := a.profile.Get(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Printf("%s\nborn %s\nage %.8f\n",
			profile.Name, profile.Birthdate.Format("2006-01-02"), profile.Age(time.Now()))
		return nil
	},
}

var profileSetCmd = &cobra.Command{
	Use:   "set <name> <birthdate>",
	Short: "Set the profile name and birthdate (YYYY-MM-DD)",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.close()

		birth, err := time.Parse("2006-01-02", args[1])
		if err != nil {
			return fmt.Errorf("invalid birthdate %q: %w", args[1], err)
		}

		profile, err := a.profile.Update(cmd.Context(), args[0], birth)
		if err != nil {
			return err
		}
		fmt.Printf("saved %s, born %s\n", profile.Name, profile.Birthdate.Format("2006-01-02"))
		return nil
	},
}

func init() {
	profileCmd.AddCommand(profileShowCmd)
	profileCmd.AddCommand(profileSetCmd)
}
