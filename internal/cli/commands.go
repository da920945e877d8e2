package cli

import (
	"fmt"

	qcli "github.com/codalotl/seqdiff/internal/q/cli"
)

// configFlags are the flags that override Config. Their defaults only document the built-in defaults in help; an unset flag never overrides a config file or
// the environment.
type configFlags struct {
	fs *qcli.FlagSet

	format      *string
	granularity *string
	context     *int
	color       *string
	spans       *string
	width       *int
	maxEdits    *int
	maxTokens   *int
}

func newConfigFlags(fs *qcli.FlagSet) *configFlags {
	return &configFlags{
		fs:          fs,
		format:      fs.String("format", 'f', "unified", "Output format: unified, pretty, split, markdown, html, json, or edits"),
		granularity: fs.String("granularity", 'g', "line", "Token unit for --format=edits: line, word, char, or rune"),
		context:     fs.Int("context", 'U', 3, "Unchanged lines shown around each change"),
		color:       fs.String("color", 0, "auto", "Colorize output: auto, always, or never"),
		spans:       fs.String("spans", 0, "chars", "Highlight changes within lines by chars, words, or none"),
		width:       fs.Int("width", 0, 0, "Total width of --format=split (default: terminal width)"),
		maxEdits:    fs.Int("max-edits", 0, 0, "Give up when the edit distance exceeds this (0 = unlimited)"),
		maxTokens:   fs.Int("max-tokens", 0, 0, "Give up when the inputs hold more tokens than this (0 = unlimited)"),
	}
}

// values returns the explicitly set flags keyed by config key.
func (f *configFlags) values() map[string]any {
	all := map[string]any{
		"format":      *f.format,
		"granularity": *f.granularity,
		"context":     *f.context,
		"color":       *f.color,
		"spans":       *f.spans,
		"width":       *f.width,
		"max-edits":   *f.maxEdits,
		"max-tokens":  *f.maxTokens,
	}
	keys := map[string]string{"max-edits": "maxedits", "max-tokens": "maxtokens"}

	out := map[string]any{}
	f.fs.Visit(func(name string) {
		key := name
		if k, ok := keys[name]; ok {
			key = k
		}
		out[key] = all[name]
	})
	return out
}

func newRootCommand() *qcli.Command {
	root := &qcli.Command{
		Name:  "seqdiff",
		Short: "seqdiff compares two files and prints a minimal diff.",
		Long: `OLD or NEW may be "-" to read standard input.

Exit status is 0 if the inputs are the same, 1 if they differ, and 2 on trouble.

Defaults come from ~/.seqdiff/config.json, the nearest .seqdiff/config.json, and the
SEQDIFF_CONTEXT, SEQDIFF_FORMAT, SEQDIFF_COLOR, and SEQDIFF_MAX_EDITS environment variables.
Flags override all of them. Run "seqdiff config" to see the effective settings.`,
		Example: `seqdiff old.go new.go
seqdiff -f split --width 160 old.go new.go
git show HEAD:main.go | seqdiff -f markdown - main.go
seqdiff -f edits -g word a.txt b.txt`,
		Usage: "OLD NEW",
		Args:  qcli.ExactArgs(2),
	}
	flags := newConfigFlags(root.PersistentFlags())

	loadForRun := func() (Config, error) {
		cfg, _, err := loadConfig(flags.values())
		if err != nil {
			return Config{}, qcli.ExitError{Code: 2, Err: err}
		}
		return cfg, nil
	}

	root.Run = func(c *qcli.Context) error {
		cfg, err := loadForRun()
		if err != nil {
			return err
		}
		return runDiff(c, cfg, c.Args[0], c.Args[1])
	}

	configCmd := &qcli.Command{
		Name:  "config",
		Short: "Print the effective configuration and where each setting came from.",
		Args:  qcli.NoArgs,
		Run: func(c *qcli.Context) error {
			cfg, prov, err := loadConfig(flags.values())
			if err != nil {
				return qcli.ExitError{Code: 2, Err: err}
			}
			if err := writeConfigJSON(c.Out, cfg, prov); err != nil {
				return qcli.ExitError{Code: 2, Err: err}
			}
			return nil
		},
	}

	versionCmd := &qcli.Command{
		Name:  "version",
		Short: "Print the seqdiff version.",
		Args:  qcli.NoArgs,
		Run: func(c *qcli.Context) error {
			if _, err := fmt.Fprintf(c.Out, "seqdiff %s\n", Version); err != nil {
				return qcli.ExitError{Code: 2, Err: err}
			}
			return nil
		},
	}

	root.AddCommand(configCmd, versionCmd)
	return root
}
