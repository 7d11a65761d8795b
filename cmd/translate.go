package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"maps"
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/jinzhu/inflection"
	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/cmmoran/haxedts/internal/parser"
	"github.com/cmmoran/haxedts/pkg/action/translate"
)

// optionKeys maps translation flag names to the viper keys matching the
// mapstructure tags of parser.Options.
var optionKeys = map[string]string{
	"input":          "input",
	"output":         "output",
	"include":        "include",
	"alias":          "type_aliases",
	"array-path":     "array_paths",
	"on-duplicate":   "on_duplicate",
	"static-methods": "emit_static_methods",
}

func addOptionFlags(fs *pflag.FlagSet) {
	d := parser.NewOptions()
	fs.StringP("input", "i", "", "type dump (xml) to read")
	fs.StringP("output", "o", "", "declaration file to write")
	fs.StringSliceP("include", "I", d.Include, "top-level namespaces to emit")
	fs.StringToStringP("alias", "a", map[string]string{}, "extra type aliases, ex: Dynamic=unknown")
	fs.StringSlice("array-path", d.ArrayPaths, "paths that mark an array wrapper")
	fs.String("on-duplicate", d.OnDuplicate, "policy for repeated definition paths (overwrite, reject)")
	fs.Bool("static-methods", false, "also emit public static methods")
}

// bindOptionFlags binds at run time so the executing command's flags win
// over sibling commands that define the same keys.
func bindOptionFlags(fs *pflag.FlagSet) error {
	for name, key := range optionKeys {
		if err := viper.BindPFlag(key, fs.Lookup(name)); err != nil {
			return errors.Wrapf(err, "bind flag %s", name)
		}
	}
	return nil
}

// caseSensitiveOptions holds the option maps whose keys are type paths or
// namespace names. viper folds map keys to lower case, so these are decoded
// from the config files directly.
type caseSensitiveOptions struct {
	TypeAliases map[string]string   `yaml:"type_aliases" toml:"type_aliases"`
	Imports     map[string][]string `yaml:"imports" toml:"imports"`
}

func readCaseSensitiveOptions(file string) (*caseSensitiveOptions, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, errors.Wrapf(err, "read config %s", file)
	}
	cs := &caseSensitiveOptions{}
	switch strings.ToLower(filepath.Ext(file)) {
	case ".toml":
		err = toml.Unmarshal(data, cs)
	default:
		err = yaml.Unmarshal(data, cs)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "decode config %s", file)
	}
	return cs, nil
}

// loadOptions builds Options from defaults, config files, environment and flags.
func loadOptions(fs *pflag.FlagSet) (*parser.Options, error) {
	opts := parser.NewOptions()
	if err := viper.Unmarshal(opts); err != nil {
		return nil, errors.Wrap(err, "decode options")
	}

	opts.TypeAliases = map[string]string{}
	opts.Imports = map[string][]string{}
	for _, file := range loadedConfigFiles {
		cs, err := readCaseSensitiveOptions(file)
		if err != nil {
			return nil, err
		}
		maps.Copy(opts.TypeAliases, cs.TypeAliases)
		maps.Copy(opts.Imports, cs.Imports)
	}
	if fs.Changed("alias") {
		aliases, err := fs.GetStringToString("alias")
		if err != nil {
			return nil, errors.Wrap(err, "alias")
		}
		maps.Copy(opts.TypeAliases, aliases)
	}

	opts.Logger = slog.Default()
	return opts, nil
}

func NewTranslateCommand() *cobra.Command {
	// translateCmd represents the haxedts translate command
	var translateCmd = &cobra.Command{
		Use:   "translate",
		Short: "translate a type dump",
		Long:  "Translate a Haxe XML type dump into a TypeScript declaration file",
		PreRunE: func(c *cobra.Command, args []string) error {
			return bindOptionFlags(c.Flags())
		},
		RunE: func(c *cobra.Command, args []string) error {
			opts, err := loadOptions(c.Flags())
			if err != nil {
				return err
			}
			res, err := translate.Generate(opts)
			if err != nil {
				return err
			}
			printSummary(c.OutOrStdout(), res)
			return nil
		},
	}
	addOptionFlags(translateCmd.Flags())

	return translateCmd
}

func printSummary(w io.Writer, res *translate.Result) {
	classes := inflection.Plural("class")
	if res.Classes == 1 {
		classes = "class"
	}
	namespaces := inflection.Plural("namespace")
	if res.Namespaces == 1 {
		namespaces = "namespace"
	}
	_, _ = fmt.Fprintf(w, "wrote %s: %d %s in %d %s\n", res.Output, res.Classes, classes, res.Namespaces, namespaces)
	for _, d := range res.Diagnostics {
		_, _ = fmt.Fprintf(w, "skipped %s\n", d)
	}
}
