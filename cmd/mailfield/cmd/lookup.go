package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newLookupCmd(e *env) *cobra.Command {
	var all bool

	lookupCmd := &cobra.Command{
		Use:   "lookup [name...]",
		Short: "Show the kind of value and multiplicity the registry gives a field",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			if all {
				for _, en := range e.reg.Entries() {
					_, _ = fmt.Fprintf(out, "%s\t%s\t%s\n", en.Name, en.Kind, en.Multiplicity)
				}
				return nil
			}

			if len(args) == 0 {
				return fmt.Errorf("lookup needs a field name or --all")
			}

			for _, name := range args {
				if en, ok := e.reg.Entry(name); ok {
					_, _ = fmt.Fprintf(out, "%s\t%s\t%s\n", en.Name, en.Kind, en.Multiplicity)
					continue
				}

				k, m := e.reg.Lookup(name)
				_, _ = fmt.Fprintf(out, "%s\t%s\t%s\n", name, k, m)
			}
			return nil
		},
	}

	lookupCmd.Flags().BoolVarP(&all, "all", "a", false, "list every registered field")

	return lookupCmd
}
