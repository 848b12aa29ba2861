package main

import (
	"fmt"
	"strings"

	"process-maps-backend/internal/editor"
	"process-maps-backend/internal/models"

	"github.com/spf13/cobra"
)

var (
	addType    string
	addLabel   string
	addConnect string
	dryRun     bool
)

var addCmd = &cobra.Command{
	Use:   "add BOARD_ID",
	Short: "Add a shape to a board",
	Long: `Load the board, add one shape at the default position and save the board.

With --from the new shape is connected to an existing node.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ed := editor.New(newClient(), args[0])
		if err := ed.Load(cmd.Context()); err != nil {
			return fmt.Errorf("%s: %w", ed.Error(), err)
		}

		shapeType := models.ShapeType(addType)
		if !shapeType.Valid() {
			return fmt.Errorf("unknown shape type %q", addType)
		}
		node := ed.AddNode(shapeType)
		if addLabel != "" {
			ed.UpdateLabel(node.ID, addLabel)
		}
		if addConnect != "" {
			if _, ok := ed.Connect(addConnect, node.ID); !ok {
				return fmt.Errorf("node %q not found on board", addConnect)
			}
		}

		if err := ed.Save(cmd.Context()); err != nil {
			return fmt.Errorf("%s: %w", ed.Error(), err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), node.ID)
		return nil
	},
}

var generateCmd = &cobra.Command{
	Use:   "generate BOARD_ID PROMPT...",
	Short: "Generate a diagram from a prompt and append it to a board",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ed := editor.New(newClient(), args[0])
		if err := ed.Load(cmd.Context()); err != nil {
			return fmt.Errorf("%s: %w", ed.Error(), err)
		}

		before := len(ed.Nodes())
		if err := ed.Generate(cmd.Context(), strings.Join(args[1:], " ")); err != nil {
			return fmt.Errorf("%s: %w", ed.Error(), err)
		}
		added := len(ed.Nodes()) - before

		if dryRun {
			fmt.Fprintf(cmd.OutOrStdout(), "would add %d nodes (dry run)\n", added)
			return nil
		}
		if err := ed.Save(cmd.Context()); err != nil {
			return fmt.Errorf("%s: %w", ed.Error(), err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "added %d nodes\n", added)
		return nil
	},
}

func init() {
	addCmd.Flags().StringVar(&addType, "type", string(models.ShapeRectangle), "shape type: rectangle, diamond, circle or sticky")
	addCmd.Flags().StringVar(&addLabel, "label", "", "label of the new shape")
	addCmd.Flags().StringVar(&addConnect, "from", "", "connect an existing node to the new shape")

	generateCmd.Flags().BoolVar(&dryRun, "dry-run", false, "generate without saving")
}
