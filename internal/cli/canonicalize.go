package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"lrn/internal/canonical"
)

// NewCanonicalizeCommand creates the canonicalize command, used when curating
// the variant table.
func NewCanonicalizeCommand() *cobra.Command {
	var list bool

	cmd := &cobra.Command{
		Use:   "canonicalize [name...]",
		Short: "Print the canonical lottery name for each argument",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if list {
				table := canonical.Variants()
				keys := make([]string, 0, len(table))
				for k := range table {
					keys = append(keys, k)
				}
				sort.Strings(keys)
				for _, k := range keys {
					fmt.Fprintf(out, "%s\t%s\n", k, table[k])
				}
				return nil
			}
			if len(args) == 0 {
				return fmt.Errorf("at least one name is required unless --list is set")
			}
			for _, name := range args {
				fmt.Fprintf(out, "%s\t%s\t%s\n", name, canonical.Canonicalize(name), canonical.Slug(canonical.Canonicalize(name)))
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&list, "list", "l", false, "print the whole variant table")
	return cmd
}
