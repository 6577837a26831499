package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/italiano/internal/vocab"
)

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import a vocabulary document (JSON)",
	Long: `Import a vocabulary document. Items are upserted by id, so importing
the same file twice is harmless. Use "-" to read from standard input.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		in := cmd.InOrStdin()
		if args[0] != "-" {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()
			in = f
		}

		doc, err := vocab.ReadDocument(in)
		if err != nil {
			return fmt.Errorf("read %s: %w", args[0], err)
		}

		st, _, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		res, err := st.VocabRepo().Import(cmd.Context(), doc)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Imported %d nouns, %d adjectives, %d verbs, %d conjugation forms.\n",
			res.Nouns, res.Adjectives, res.Verbs, res.Conjugations)
		return nil
	},
}
