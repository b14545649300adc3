package cmd

import (
	"fmt"

	"github.com/BurntSushi/toml"

	"github.com/zostay/go-mailfield/header"
	"github.com/zostay/go-mailfield/header/field"
	"github.com/zostay/go-mailfield/header/value"
)

// Config is the optional TOML configuration of the mailfield command. A
// file looks like this:
//
//	verbose = true
//	internationalized = false
//
//	[fold]
//	indent = "\t"
//	preferred = 78
//	forced = 998
//
//	[[field]]
//	name = "X-Sent"
//	kind = "DateTime"
//	multiplicity = "AtMostOne"
type Config struct {
	Verbose           bool          `toml:"verbose"`
	Internationalized bool          `toml:"internationalized"`
	Fold              FoldConfig    `toml:"fold"`
	Fields            []FieldConfig `toml:"field"`
}

// FoldConfig sets up the fold encoding used when fields are rendered.
type FoldConfig struct {
	Indent    string `toml:"indent"`
	Preferred int    `toml:"preferred"`
	Forced    int    `toml:"forced"`
}

// FieldConfig adds a field to the registry on top of the standard fields.
type FieldConfig struct {
	Name         string `toml:"name"`
	Kind         string `toml:"kind"`
	Multiplicity string `toml:"multiplicity"`
	Trace        bool   `toml:"trace"`
}

// DefaultConfig is the configuration used when no file is given.
var DefaultConfig = Config{
	Fold: FoldConfig{
		Indent:    field.DefaultFoldIndent,
		Preferred: field.DefaultPreferredFoldLength,
		Forced:    field.DefaultForcedFoldLength,
	},
}

// LoadConfig reads the configuration file at path over the defaults. An
// empty path gives the defaults.
func LoadConfig(path string) (*Config, error) {
	c := DefaultConfig
	if path == "" {
		return &c, nil
	}

	md, err := toml.DecodeFile(path, &c)
	if err != nil {
		return nil, fmt.Errorf("unable to read config %s: %w", path, err)
	}

	if undec := md.Undecoded(); len(undec) > 0 {
		return nil, fmt.Errorf("unknown key %q in config %s", undec[0].String(), path)
	}

	return &c, nil
}

// FoldEncoding returns the fold encoding described by the configuration.
func (c *Config) FoldEncoding() (*field.FoldEncoding, error) {
	return field.NewFoldEncoding(c.Fold.Indent, c.Fold.Preferred, c.Fold.Forced)
}

// Registry returns the standard registry extended with the configured
// fields.
func (c *Config) Registry() (*header.Registry, error) {
	if len(c.Fields) == 0 {
		return header.Default, nil
	}

	es := header.Default.Entries()
	for _, fc := range c.Fields {
		k, err := value.ParseKind(fc.Kind)
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", fc.Name, err)
		}

		var m header.Multiplicity
		if fc.Multiplicity != "" {
			m, err = header.ParseMultiplicity(fc.Multiplicity)
			if err != nil {
				return nil, fmt.Errorf("field %s: %w", fc.Name, err)
			}
		}

		es = append(es, header.Entry{
			Name:         fc.Name,
			Kind:         k,
			Multiplicity: m,
			Trace:        fc.Trace,
		})
	}

	return header.NewRegistry(es...)
}
