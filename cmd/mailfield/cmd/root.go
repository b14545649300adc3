package cmd

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	// every IANA charset for encoded-words and parameter values
	_ "github.com/zostay/go-mailfield/header/encoding"

	"github.com/zostay/go-mailfield/header"
)

// env is what every subcommand works with once the configuration is loaded.
type env struct {
	config *Config
	reg    *header.Registry
	logger *slog.Logger
}

// NewRootCommand builds the mailfield command with all of its subcommands.
func NewRootCommand() *cobra.Command {
	var (
		configPath string
		verbose    bool
		intl       bool
	)

	e := &env{}

	rootCmd := &cobra.Command{
		Use:           "mailfield",
		Short:         "Parse, render and inspect email header fields",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			c, err := LoadConfig(configPath)
			if err != nil {
				return err
			}

			if cmd.Flags().Changed("verbose") {
				c.Verbose = verbose
			}
			if cmd.Flags().Changed("internationalized") {
				c.Internationalized = intl
			}

			reg, err := c.Registry()
			if err != nil {
				return err
			}

			e.config = c
			e.reg = reg
			e.logger = newLogger(cmd.ErrOrStderr(), c.Verbose)
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "TOML configuration file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log every field that fails to parse")
	rootCmd.PersistentFlags().BoolVarP(&intl, "internationalized", "u", false, "render non-ASCII text as raw UTF-8")

	rootCmd.AddCommand(newParseCmd(e))
	rootCmd.AddCommand(newRoundTripCmd(e))
	rootCmd.AddCommand(newLookupCmd(e))

	return rootCmd
}

// Execute runs the mailfield command.
func Execute() error {
	return NewRootCommand().Execute()
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	if !verbose {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

// readInput reads the named file, or in when no name or "-" is given, and
// returns the header part of it. Anything after the first blank line is
// dropped.
func readInput(in io.Reader, args []string) ([]byte, error) {
	var (
		b   []byte
		err error
	)
	if len(args) == 0 || args[0] == "-" {
		b, err = io.ReadAll(in)
	} else {
		b, err = os.ReadFile(args[0])
	}
	if err != nil {
		return nil, err
	}
	return headerBytes(b), nil
}

// headerBytes cuts b just after the line break that ends the last field.
func headerBytes(b []byte) []byte {
	end := len(b)
	for _, sep := range []string{"\r\n\r\n", "\n\n", "\r\r"} {
		if i := bytes.Index(b, []byte(sep)); i >= 0 && i+len(sep)/2 < end {
			end = i + len(sep)/2
		}
	}
	return b[:end]
}

// parseHeader parses hb and sets the header up with the configured registry
// and rendering settings.
func (e *env) parseHeader(hb []byte) (*header.Header, error) {
	h, err := header.Parse(hb, header.Meh)
	if h == nil {
		return nil, err
	}
	if err != nil {
		e.logger.Warn("skipped lines before the header", "error", err)
	}

	vf, err := e.config.FoldEncoding()
	if err != nil {
		return nil, fmt.Errorf("bad fold settings: %w", err)
	}

	h.SetRegistry(e.reg)
	h.SetFoldEncoding(vf)
	h.SetInternationalized(e.config.Internationalized)
	return h, nil
}
