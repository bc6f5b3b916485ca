package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var projectCmd = &cobra.Command{
	Use:   "project",
	Short: "Manage bookmarked projects",
}

var projectAddCmd = &cobra.Command{
	Use:   "add <title> <link>",
	Short: "Bookmark a project",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.close()

		project, err := a.projects.Create(cmd.Context(), args[0], args[1])
		if err != nil {
			return err
		}
		fmt.Printf("added %s (%s)\n", project.Title, project.ID)
		return nil
	},
}

var projectListCmd = &cobra.Command{
	Use:   "list",
	Short: "List projects, most clicked first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.close()

		projects, err := a.projects.List(cmd.Context())
		if err != nil {
			return err
		}
		if len(projects) == 0 {
			fmt.Println("No projects yet.")
			return nil
		}
		for _, p := range projects {
			fmt.Printf("%4d  %s  %s  %s\n", p.NoClick, p.ID, p.Title, p.Link)
		}
		return nil
	},
}

var projectOpenCmd = &cobra.Command{
	Use:   "open <id>",
	Short: "Record a visit to a project and print its link",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.close()

		project, err := a.projects.Open(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		fmt.Println(project.Link)
		return nil
	},
}

var projectRmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Delete a project",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.close()

		return a.projects.Delete(cmd.Context(), args[0])
	},
}

func init() {
	projectCmd.AddCommand(projectAddCmd)
	projectCmd.AddCommand(projectListCmd)
	projectCmd.AddCommand(projectOpenCmd)
	projectCmd.AddCommand(projectRmCmd)
}
