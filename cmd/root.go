package cmd

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/viper"

	"github.com/spf13/cobra"

	"github.com/cmmoran/langgen/pkg/options"
)

const levelTrace = slog.Level(-8)

var (
	configFiles    []string
	level, version string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:           "langgen",
	Short:         "render source files from documents",
	Long:          "Render Go and Java source files with resolved imports from YAML, TOML or JSON documents",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		if hint := errors.FlattenHints(err); hint != "" {
			fmt.Fprintln(os.Stderr, "Hint:", hint)
		}
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVarP(&level, "level", "l", "info", "log level (trace, debug, info, warn, error, debug+1, etc)")
	rootCmd.PersistentFlags().StringSliceVar(&configFiles, "config", []string{}, "config file(s) - multiple config files are merged with last specified file having highest priority")

	flags := rootCmd.PersistentFlags()
	flags.StringP("output-directory", "o", "gen", "directory generated files are written to")
	flags.StringP("manifest", "m", "", "manifest recording generated files (default <output-directory>/.langgen.yaml)")
	flags.String("language", "", "language of documents that do not declare one (go, java)")
	flags.StringP("package", "p", "", "package of documents that do not declare one")
	flags.Bool("tabs", false, "indent with tabs")
	flags.Int("spaces", 0, "indent with this many spaces")
	flags.Bool("go-format", true, "run gofmt over generated go files")
	for key, flag := range map[string]string{
		"render.out_dir":   "output-directory",
		"render.manifest":  "manifest",
		"render.language":  "language",
		"render.package":   "package",
		"render.tabs":      "tabs",
		"render.spaces":    "spaces",
		"render.go_format": "go-format",
	} {
		_ = viper.BindPFlag(key, flags.Lookup(flag))
	}
}

func parseLevel(s string) (slog.Level, error) {
	if strings.EqualFold(s, "trace") {
		return levelTrace, nil
	}
	var ll slog.Level
	if err := ll.UnmarshalText([]byte(s)); err != nil {
		return 0, errors.Wrapf(err, "invalid log level %q", s)
	}
	return ll, nil
}

func setLogger(ll slog.Level) *slog.Logger {
	l := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		AddSource:   false,
		Level:       ll,
		ReplaceAttr: nil,
	}))
	slog.SetDefault(l)
	return l
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	ll, err := parseLevel(level)
	if err != nil {
		panic(err)
	}
	l := setLogger(ll)

	if len(configFiles) > 0 {
		// Use config file from the flag.
		viper.SetConfigFile(configFiles[0])
	} else {
		viper.AddConfigPath(".")
		viper.AddConfigPath("/etc")
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	viper.SetEnvPrefix("langgen")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		l.With("config", viper.ConfigFileUsed()).Debug("using config file(s)")
	} else {
		l.With("error", err, "config", viper.ConfigFileUsed()).Debug("unable to use config file(s)")
	}
	if len(configFiles) > 1 {
		for _, file := range configFiles[1:] {
			if configBytes, err := os.ReadFile(file); err == nil {
				if err = viper.MergeConfig(bytes.NewReader(configBytes)); err != nil {
					l.With("error", err, "file", file).Warn("failed to merge config file")
				} else {
					l.With("file", file).Debug("merged config file")
				}
			}
		}
	}
	if len(version) > 0 {
		viper.Set("version", version)
	}

	// the config file only applies when the flag was left alone
	if llstr := viper.GetString("common.log.level"); llstr != "" && !rootCmd.PersistentFlags().Changed("level") {
		if ll, err = parseLevel(llstr); err != nil {
			panic(err)
		}
		setLogger(ll)
	}
}

// loadOptions builds render options from configuration and flags, adding
// docs to the configured documents.
func loadOptions(docs []string) (*options.Options, error) {
	opts := options.NewOptions(
		options.WithDocuments(viper.GetStringSlice("render.documents")...),
		options.WithDocuments(docs...),
		options.WithOutDir(viper.GetString("render.out_dir")),
		options.WithManifest(viper.GetString("render.manifest")),
		options.WithLanguage(viper.GetString("render.language")),
		options.WithPackage(viper.GetString("render.package")),
		options.WithGoFormat(viper.GetBool("render.go_format")),
	)
	opts.Tabs = viper.GetBool("render.tabs")
	opts.Spaces = viper.GetInt("render.spaces")
	if err := opts.Normalize(); err != nil {
		return nil, err
	}
	return opts, nil
}
