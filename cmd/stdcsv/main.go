// Command stdcsv parses CSV files and prints their records as JSON, YAML or an
// aligned table.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/fatih/color"
	"github.com/go-logr/logr"
	pkgerrors "github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"
	"golang.org/x/term"

	"github.com/shapestone/stdcsv/internal/config"
	"github.com/shapestone/stdcsv/internal/input"
	"github.com/shapestone/stdcsv/internal/logging"
	"github.com/shapestone/stdcsv/internal/output"
	"github.com/shapestone/stdcsv/pkg/csv"
)

const envPrefix = "STDCSV"

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	err := newRootCommand().ExecuteContext(ctx)
	handleError(os.Stderr, err)
	if err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	opts := config.NewOptions()
	var configPath string
	cmd := &cobra.Command{
		Use:   "stdcsv [FILE...]",
		Short: "Parse RFC 4180 CSV files",
		Long: "stdcsv parses CSV files (or stdin when no file or \"-\" is given) and prints the records.\n" +
			"With --skip-first-row or --columns the records are mapped onto column names.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return bindViper(cmd, configPath)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout(), args, opts)
		},
	}
	cmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a config file (default: $XDG_CONFIG_HOME/stdcsv/config.*)")
	opts.AddFlags(cmd.Flags())
	return cmd
}

// bindViper fills every flag the user did not pass from STDCSV_* environment
// variables or the config file.
func bindViper(cmd *cobra.Command, configPath string) error {
	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	if configPath == "" {
		configPath = os.Getenv(envPrefix + "_CONFIG")
	}
	configureConfigFile(v, configPath)

	flagSets := []*pflag.FlagSet{cmd.Flags(), cmd.PersistentFlags()}
	for _, fs := range flagSets {
		if err := v.BindPFlags(fs); err != nil {
			return err
		}
	}
	if err := readConfigFile(v, configPath != ""); err != nil {
		return err
	}

	var setErr error
	for _, fs := range flagSets {
		fs.VisitAll(func(f *pflag.Flag) {
			if f.Changed || !v.IsSet(f.Name) || setErr != nil {
				return
			}
			val := fmt.Sprintf("%v", v.Get(f.Name))
			if f.Value.Type() == "stringSlice" {
				val = strings.Join(v.GetStringSlice(f.Name), ",")
			}
			if val == "" {
				return
			}
			if err := f.Value.Set(val); err != nil {
				setErr = pkgerrors.Wrapf(err, "invalid value %q for --%s", val, f.Name)
			}
		})
	}
	return setErr
}

func configureConfigFile(v *viper.Viper, explicitPath string) {
	if explicitPath != "" {
		v.SetConfigFile(explicitPath)
		return
	}
	v.SetConfigName("config")
	for _, dir := range configSearchDirs() {
		v.AddConfigPath(dir)
	}
}

func readConfigFile(v *viper.Viper, strict bool) error {
	if err := v.ReadInConfig(); err != nil {
		var cfgErr viper.ConfigFileNotFoundError
		if errors.As(err, &cfgErr) && !strict {
			return nil
		}
		return err
	}
	return nil
}

func configSearchDirs() []string {
	var dirs []string
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		dirs = append(dirs, filepath.Join(xdg, "stdcsv"))
	}
	if home, err := os.UserHomeDir(); err == nil && home != "" {
		dirs = append(dirs, filepath.Join(home, ".config", "stdcsv"))
	}
	return dirs
}

func run(ctx context.Context, stdin io.Reader, stdout io.Writer, args []string, opts *config.Options) error {
	if err := opts.Validate(); err != nil {
		return err
	}
	logger, err := logging.New(opts.LogLevel)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		args = []string{input.Stdin}
	}

	results := make([]output.Result, len(args))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Jobs)
	for i, name := range args {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			result, err := parseInput(name, stdin, opts, logger.WithValues("source", name))
			if err != nil {
				return err
			}
			results[i] = result
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	return output.Write(stdout, opts.Output, results)
}

// parseInput reads one file (or stdin for "-") into a Result.
func parseInput(name string, stdin io.Reader, opts *config.Options, logger logr.Logger) (output.Result, error) {
	result := output.Result{Source: name}

	src, err := input.Open(name, stdin)
	if err != nil {
		return result, pkgerrors.Wrapf(err, "open %s", name)
	}
	defer src.Close()
	logger.V(1).Info("opened input", "mapped", src.Mapped)
	var r io.Reader = src

	readOpts, err := opts.ReadOptions(logger)
	if err != nil {
		return result, err
	}
	if opts.AutoSeparator() {
		sniffer, sniffed, err := csv.SniffReader(r, 0)
		if err != nil {
			return result, pkgerrors.Wrapf(err, "read %s", name)
		}
		r = sniffed
		readOpts.Comma = sniffer.DetectDelimiter()
		if readOpts.Comma == readOpts.Comment {
			return result, &csv.OptionsError{Field: "Comma"}
		}
		logger.V(1).Info("detected separator", "separator", string(readOpts.Comma), "header", sniffer.HasHeader())
	}

	table, err := csv.ReadAllReader(r, readOpts.ReaderOptions)
	if err != nil {
		return result, pkgerrors.Wrapf(err, "parse %s", name)
	}
	if !readOpts.MapsHeaders() {
		result.Records = table
		return result, nil
	}

	objects, err := csv.MapRecords(table, readOpts.SkipFirstRow, readOpts.Columns)
	if err != nil {
		return result, pkgerrors.Wrapf(err, "map %s", name)
	}
	result.Mapped = true
	result.Objects = objects
	switch {
	case len(opts.Columns) > 0:
		result.Columns = opts.Columns
	case len(table) > 0:
		result.Columns = table[0]
	}
	return result, nil
}

func handleError(w *os.File, err error) {
	if err == nil || errors.Is(err, pflag.ErrHelp) {
		return
	}
	message := err.Error()
	var parseErr *csv.ParseError
	var headerErr *csv.HeaderError
	switch {
	case errors.Is(err, csv.ErrFieldCount):
		message = fmt.Sprintf("%s\nHint: --fields-per-record -1 disables the field count check.", err)
	case errors.As(err, &parseErr):
		message = fmt.Sprintf("%s\nHint: --lazy-quotes accepts stray quotes.", err)
	case errors.As(err, &headerErr):
		message = fmt.Sprintf("%s\nHint: every record needs one field per column name.", err)
	case errors.Is(err, csv.ErrInvalidDelim):
		message = fmt.Sprintf("%s\nHint: --separator and --comment take one character each and must differ.", err)
	}

	prefix := color.New(color.FgRed, color.Bold)
	if term.IsTerminal(int(w.Fd())) {
		prefix.EnableColor()
	} else {
		prefix.DisableColor()
	}
	fmt.Fprintf(w, "%s %s\n", prefix.Sprint("Error:"), message)
}
