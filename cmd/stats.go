package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats <kind>",
	Short: "Show the items with the most mistakes",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		kind, err := parseKind(args[0])
		if err != nil {
			return err
		}
		limit, _ := cmd.Flags().GetInt("limit")

		st, _, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		rows, err := st.StatsRepo(kind).Worst(cmd.Context(), limit)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if len(rows) == 0 {
			fmt.Fprintln(out, "No attempts recorded yet.")
			return nil
		}

		fmt.Fprintf(out, "%-32s  %7s  %7s  %7s\n", "Item", "Correct", "Wrong", "Score")
		fmt.Fprintln(out, strings.Repeat("─", 59))
		for _, r := range rows {
			fmt.Fprintf(out, "%-32s  %7d  %7d  %7d\n", truncate(r.Item, 32), r.Correct, r.Wrong, r.Score())
		}
		return nil
	},
}

func init() {
	statsCmd.Flags().IntP("limit", "n", 20, "Number of items to show (0 for all)")
}
