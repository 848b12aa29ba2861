package main

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var boardsCmd = &cobra.Command{
	Use:   "boards",
	Short: "List, create, show and delete boards",
}

var boardsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List your boards, most recently updated first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		boards, err := newClient().ListBoards(cmd.Context())
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tUPDATED")
		for _, b := range boards {
			fmt.Fprintf(w, "%s\t%s\t%s\n", b.ID, b.Name, b.UpdatedAt.Format("2006-01-02 15:04"))
		}
		return w.Flush()
	},
}

var boardsCreateCmd = &cobra.Command{
	Use:   "create NAME",
	Short: "Create an empty board",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		board, err := newClient().CreateBoard(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), board.ID)
		return nil
	},
}

var boardsShowCmd = &cobra.Command{
	Use:   "show BOARD_ID",
	Short: "Print a board's nodes and edges as JSON",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		view, err := newClient().GetBoard(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(view)
	},
}

var boardsDeleteCmd = &cobra.Command{
	Use:   "delete BOARD_ID",
	Short: "Delete a board and its content",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := newClient().DeleteBoard(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", args[0])
		return nil
	},
}

func init() {
	boardsCmd.AddCommand(boardsListCmd, boardsCreateCmd, boardsShowCmd, boardsDeleteCmd)
}
