package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/italiano/internal/vocab"
)

var practiceCmd = &cobra.Command{
	Use:       "practice <kind>",
	Short:     "Open the practice list of one kind",
	Args:      cobra.ExactArgs(1),
	ValidArgs: kindNames(),
	RunE: func(cmd *cobra.Command, args []string) error {
		kind, err := parseKind(args[0])
		if err != nil {
			return err
		}
		return runApp(cmd, kind)
	},
}

func kindNames() []string {
	names := make([]string, len(vocab.AllKinds))
	for i, k := range vocab.AllKinds {
		names[i] = string(k)
	}
	return names
}

func parseKind(s string) (vocab.Kind, error) {
	kind, ok := vocab.ParseKind(s)
	if !ok {
		return "", fmt.Errorf("unknown kind %q (want one of %s)", s, strings.Join(kindNames(), ", "))
	}
	return kind, nil
}
