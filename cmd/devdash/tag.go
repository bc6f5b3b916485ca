package main

import (
	"fmt"
	"hash/fnv"

	"github.com/spf13/cobra"

	"github.com/devdash/dev-dashboard/internal/model"
	"github.com/devdash/dev-dashboard/internal/service"
)

var tagCmd = &cobra.Command{
	Use:   "tag",
	Short: "Manage tags",
}

var (
	tagAddColor       string
	tagAddDescription string
)

var tagAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Create a tag",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.close()

		color := tagAddColor
		if color == "" {
			color = paletteColor(args[0])
		}
		tag, err := a.tags.Create(cmd.Context(), service.TagInput{
			Name:        args[0],
			Color:       color,
			Description: tagAddDescription,
		})
		if err != nil {
			return err
		}
		fmt.Printf("added %s %s (%s)\n", tag.Name, tag.Color, tag.ID)
		return nil
	},
}

var tagListCmd = &cobra.Command{
	Use:   "list",
	Short: "List tags, newest first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.close()

		tags, err := a.tags.List(cmd.Context())
		if err != nil {
			return err
		}
		if len(tags) == 0 {
			fmt.Println("No tags yet.")
			return nil
		}
		for _, t := range tags {
			fmt.Printf("%s  %s  %s  %s\n", t.Color, t.ID, t.Name, t.Description)
		}
		return nil
	},
}

var tagRmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Delete a tag and detach it from every task",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.close()

		return a.tags.DeleteCascade(cmd.Context(), args[0])
	},
}

var tagAttachCmd = &cobra.Command{
	Use:   "attach <todo-id> <tag-id>",
	Short: "Attach a tag to a task",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.close()

		return a.tags.Attach(cmd.Context(), args[0], args[1])
	},
}

var tagDetachCmd = &cobra.Command{
	Use:   "detach <todo-id> <tag-id>",
	Short: "Detach a tag from a task",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.close()

		return a.tags.Detach(cmd.Context(), args[0], args[1])
	},
}

func init() {
	tagAddCmd.Flags().StringVarP(&tagAddColor, "color", "c", "",
		"tag color (defaults to a palette color picked from the name)")
	tagAddCmd.Flags().StringVarP(&tagAddDescription, "description", "d", "", "tag description")

	tagCmd.AddCommand(tagAddCmd)
	tagCmd.AddCommand(tagListCmd)
	tagCmd.AddCommand(tagRmCmd)
	tagCmd.AddCommand(tagAttachCmd)
	tagCmd.AddCommand(tagDetachCmd)
}

// paletteColor picks a stable palette color for a tag name, so the same
// name gets the same color on every machine.
func paletteColor(name string) string {
	h := fnv.New32a()
	h.Write([]byte(name))
	return model.TagPalette[int(h.Sum32())%len(model.TagPalette)]
}
