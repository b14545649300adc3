package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
	"github.com/spf13/cobra"

	"github.com/zostay/go-mailfield/header"
)

// ErrRoundTripDiffers is returned by the roundtrip command when the header
// written back out does not match the input.
var ErrRoundTripDiffers = errors.New("round-tripped header differs from input")

func newRoundTripCmd(e *env) *cobra.Command {
	var render bool

	roundTripCmd := &cobra.Command{
		Use:   "roundtrip [file]",
		Short: "Shows the diff of a single header round-trip",
		Long: `Parses the header and writes it back out, showing the difference
from the input. With --render every field is parsed into its typed value and
rendered again from that value instead of being written from its raw form.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			hb, err := readInput(cmd.InOrStdin(), args)
			if err != nil {
				return err
			}

			h, err := e.parseHeader(hb)
			if err != nil {
				return err
			}

			var out string
			if render {
				out = e.rerender(h)
			} else {
				out = h.String()
			}
			out = strings.TrimSuffix(out, h.Break().String())

			return showDiff(cmd, string(hb), out)
		},
	}

	roundTripCmd.Flags().BoolVarP(&render, "render", "r", false, "render every field from its parsed value")

	return roundTripCmd
}

// rerender writes out every field from its parsed value. Fields that fail
// to parse or render are written as they were read.
func (e *env) rerender(h *header.Header) string {
	brk := h.Break().String()

	var buf strings.Builder
	for _, r := range h.ParseValues() {
		name := r.Field.Name()
		if r.Err != nil {
			e.logger.Warn("field failed to parse, keeping it as is", "index", r.Index, "name", name, "error", r.Err)
			buf.WriteString(r.Field.String())
			buf.WriteString(brk)
			continue
		}

		lines, err := e.reg.RenderField(name, r.Value, h.RenderOptions())
		if err != nil {
			e.logger.Warn("field failed to render, keeping it as is", "index", r.Index, "name", name, "error", err)
			buf.WriteString(r.Field.String())
			buf.WriteString(brk)
			continue
		}

		buf.WriteString(strings.Join(lines, brk))
		buf.WriteString(brk)
	}
	buf.WriteString(brk)

	return buf.String()
}

func showDiff(cmd *cobra.Command, in, out string) error {
	w := cmd.OutOrStdout()
	if in == out {
		_, _ = fmt.Fprintln(w, "identical")
		return nil
	}

	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(in, out, false)
	diffs = dmp.DiffCleanupSemantic(diffs)
	_, _ = fmt.Fprintln(w, dmp.DiffPrettyText(diffs))

	return ErrRoundTripDiffers
}
