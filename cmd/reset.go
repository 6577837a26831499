package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	prac "github.com/abhisek/italiano/internal/practice"
	"github.com/abhisek/italiano/internal/stats"
	"github.com/abhisek/italiano/internal/store"
	"github.com/abhisek/italiano/internal/vocab"
)

var resetCmd = &cobra.Command{
	Use:   "reset <kind> <id>",
	Short: "Forget the statistics of one item",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		kind, err := parseKind(args[0])
		if err != nil {
			return err
		}
		yes, _ := cmd.Flags().GetBool("yes")

		st, cfg, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		confirm := func(label string) bool {
			if yes {
				return true
			}
			return askYesNo(cmd.InOrStdin(), cmd.OutOrStdout(),
				fmt.Sprintf("Reset statistics for %q? [y/N] ", label))
		}

		ctx := cmd.Context()
		src := st.StatsRepo(kind)
		repo := st.VocabRepo()
		switch kind {
		case vocab.KindNoun:
			items, err := repo.Nouns(ctx)
			if err != nil {
				return err
			}
			return resetItem(ctx, cmd.OutOrStdout(), prac.NounKind, items, src, args[1], confirm)
		case vocab.KindAdjective:
			items, err := repo.Adjectives(ctx)
			if err != nil {
				return err
			}
			return resetItem(ctx, cmd.OutOrStdout(), prac.AdjectiveKind, items, src, args[1], confirm)
		case vocab.KindVerb:
			items, err := repo.Verbs(ctx)
			if err != nil {
				return err
			}
			return resetItem(ctx, cmd.OutOrStdout(), prac.VerbKind, items, src, args[1], confirm)
		default:
			items, err := repo.Conjugations(ctx, cfg.MoodTenses)
			if err != nil {
				return err
			}
			return resetItem(ctx, cmd.OutOrStdout(), prac.ConjugationKind, items, src, args[1], confirm)
		}
	},
}

// resetItem runs the reset dialog of an engine built over items: open for
// id, confirm, then clear.
func resetItem[T any](ctx context.Context, out io.Writer, kind prac.Kind[T], items []T, src stats.Source, id string, confirm func(label string) bool) error {
	e := prac.New(kind, items, stats.NewCache(src))
	defer e.Wait()

	e.OpenReset(id)
	d := e.ResetDialog()
	if !d.Open {
		return fmt.Errorf("%w: no %s with id %q", store.ErrNotFound, kind.Name, id)
	}
	if !confirm(d.Label) {
		e.CancelReset()
		fmt.Fprintln(out, "Cancelled.")
		return nil
	}
	if err := e.ConfirmReset(ctx); err != nil {
		return err
	}
	fmt.Fprintf(out, "Statistics for %q cleared.\n", d.Label)
	return nil
}

func askYesNo(in io.Reader, out io.Writer, prompt string) bool {
	fmt.Fprint(out, prompt)
	line, _ := bufio.NewReader(in).ReadString('\n')
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	}
	return false
}

func init() {
	resetCmd.Flags().BoolP("yes", "y", false, "Skip the confirmation prompt")
}
