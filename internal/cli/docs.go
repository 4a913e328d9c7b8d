package cli

import (
	"fmt"
	"strings"

	"thirdeye/internal/docs"

	"github.com/spf13/cobra"
)

func newDocsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "docs [topic]",
		Short: "Print built-in documentation",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), strings.Join(docs.Topics(), "\n"))
				return err
			}
			s, ok := docs.Get(args[0])
			if !ok {
				return writeErr(cmd, fmt.Errorf("unknown topic %q (available: %s)", args[0], strings.Join(docs.Topics(), ", ")))
			}
			_, err := fmt.Fprint(cmd.OutOrStdout(), s)
			return err
		},
	}
}
