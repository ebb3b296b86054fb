package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tcfw/powledger/internal/export"
)

var (
	verifyCmd = &cobra.Command{
		Use:   "verify <file>",
		Args:  cobra.ExactArgs(1),
		RunE:  runVerify,
		Short: "verify the chain held in a snapshot file",
	}
)

func init() {
	verifyCmd.Flags().Bool("check-work", false, "also require every block to meet the recorded difficulty")
}

func runVerify(cmd *cobra.Command, args []string) error {
	checkWork, _ := cmd.Flags().GetBool("check-work")

	s, err := export.Read(args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%d blocks, difficulty %d, recorded valid %t\n", len(s.Blocks), s.Difficulty, s.Valid)

	err = export.Verify(s, checkWork)
	printValidity(out, err)

	return err
}
