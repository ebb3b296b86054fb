package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tcfw/powledger/internal/export"
)

var (
	findCmd = &cobra.Command{
		Use:   "find <file> <hash>",
		Args:  cobra.ExactArgs(2),
		RunE:  runFind,
		Short: "look up a transaction in a snapshot file",
	}
)

func runFind(cmd *cobra.Command, args []string) error {
	s, err := export.Read(args[0])
	if err != nil {
		return err
	}

	t, index, err := export.FindTx(s, args[1])
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "block %d: %s -> %s %s\n", index, sender(t), t.To, formatAmount(t.Amount))

	return nil
}
