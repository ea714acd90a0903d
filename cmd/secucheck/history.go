package main

import (
	"context"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List stored evaluations, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := openServices(cmd)
		if err != nil {
			return err
		}
		defer svc.close(context.Background())

		summaries, err := svc.queries.List(cmd.Context())
		if err != nil {
			return err
		}
		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			return printJSON(cmd.OutOrStdout(), summaries)
		}

		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tDATE\tNAME\tSCORE")
		for _, s := range summaries {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%d\n", s.ID, s.Timestamp.Local().Format(time.DateTime), s.Name, s.Score)
		}
		return tw.Flush()
	},
}

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Print one evaluation as JSON",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := openServices(cmd)
		if err != nil {
			return err
		}
		defer svc.close(context.Background())

		evaluation, err := svc.queries.Detail(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), evaluation)
	},
}

func init() {
	historyCmd.Flags().Bool("json", false, "Print the list as JSON")
}
