package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zostay/go-mailfield/header"
)

func newParseCmd(e *env) *cobra.Command {
	var validate bool

	parseCmd := &cobra.Command{
		Use:   "parse [file]",
		Short: "Parse every field of a message header and show its typed value",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			hb, err := readInput(cmd.InOrStdin(), args)
			if err != nil {
				return err
			}

			h, err := e.parseHeader(hb)
			if err != nil {
				return err
			}

			return runParse(e, cmd, h, validate)
		},
	}

	parseCmd.Flags().BoolVar(&validate, "validate", false, "check the fields against the registry multiplicities")

	return parseCmd
}

// runParse prints one line per field: the name, the kind of value and the
// value rendered without folding. Fields that fail to parse are reported
// and make the command fail.
func runParse(e *env, cmd *cobra.Command, h *header.Header, validate bool) error {
	out := cmd.OutOrStdout()

	failed := 0
	for _, r := range h.ParseValues() {
		name := r.Field.Name()
		if r.Err != nil {
			failed++
			e.logger.Warn("field failed to parse", "index", r.Index, "name", name, "error", r.Err)
			_, _ = fmt.Fprintf(out, "%s\t!\t%v\n", name, r.Err)
			continue
		}

		e.logger.Debug("parsed field", "index", r.Index, "name", name, "kind", r.Value.Kind())
		_, _ = fmt.Fprintf(out, "%s\t%s\t%s\n", name, r.Value.Kind(), r.Value)
	}

	if validate {
		if err := h.Validate(); err != nil {
			var joined interface{ Unwrap() []error }
			errs := []error{err}
			if errors.As(err, &joined) {
				errs = joined.Unwrap()
			}

			for _, verr := range errs {
				failed++
				_, _ = fmt.Fprintf(out, "invalid: %v\n", verr)
			}
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d problems found in header", failed)
	}
	return nil
}
