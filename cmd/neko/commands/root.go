package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/sysbio-curie/Neko-sub000/pkg/config"
	"github.com/sysbio-curie/Neko-sub000/pkg/telemetry"
	"github.com/sysbio-curie/Neko-sub000/pkg/version"
)

var (
	cfgFile  string
	cfg      = config.Default()
	logger   = slog.Default()
	provider *telemetry.Provider
)

var rootCmd = &cobra.Command{
	Use:   "neko",
	Short: "Signed interaction network builder",
	Long: `NeKo - Network Konstructor

Grow signed, directed networks from seed genes against an interaction database.`,
	Version:           version.Current,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if provider == nil {
			return nil
		}
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return provider.Shutdown(ctx)
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "Config file (default $HOME/.neko.yaml)")
	pf.StringP("resource", "r", "", "Interaction table (TSV or CSV)")
	pf.String("rules", "", "CEL rules file applied to the resource")
	pf.String("translation", "", "Identifier translation table (TSV or YAML)")
	pf.String("markers", "", "Phenotype marker file (YAML)")
	pf.String("store", "", "History and export store: a directory or s3://bucket/prefix")
	pf.String("log-level", cfg.Log.Level, "Log level (debug, info, warn, error)")
	pf.Bool("json-logs", false, "Emit JSON logs")
	pf.String("otel-endpoint", "", "OTLP/HTTP collector endpoint")

	bind(pf, map[string]string{
		"resource.path":              "resource",
		"resource.rules_file":        "rules",
		"resource.translation_file":  "translation",
		"resource.phenotype_markers": "markers",
		"history.store":              "store",
		"log.level":                  "log-level",
		"log.json":                   "json-logs",
		"telemetry.endpoint":         "otel-endpoint",
	})

	rootCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		renderHelp(cmd.OutOrStdout(), cmd)
	})

	rootCmd.AddCommand(growCmd, pathsCmd, coverCmd, compareCmd, historyCmd, exportCmd, versionCmd, completionCmd)
}

func bind(fs *pflag.FlagSet, keys map[string]string) {
	for key, name := range keys {
		if err := viper.BindPFlag(key, fs.Lookup(name)); err != nil {
			panic(err)
		}
	}
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			viper.SetConfigFile(filepath.Join(home, ".neko.yaml"))
			viper.SetConfigType("yaml")
		}
	}
	viper.SetEnvPrefix("NEKO")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	_ = viper.ReadInConfig()
}

// setup decodes the layered configuration and installs logging and
// telemetry for the command.
func setup(cmd *cobra.Command, args []string) error {
	c := config.Default()
	if err := viper.Unmarshal(&c); err != nil {
		return fmt.Errorf("decode config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return err
	}
	cfg = c

	opts := &slog.HandlerOptions{Level: cfg.Log.SlogLevel()}
	var h slog.Handler = slog.NewTextHandler(os.Stderr, opts)
	if cfg.Log.JSON {
		h = slog.NewJSONHandler(os.Stderr, opts)
	}
	logger = slog.New(h)
	slog.SetDefault(logger)
	if used := viper.ConfigFileUsed(); used != "" {
		logger.Debug("config loaded", "file", used)
	}

	p, err := telemetry.Init(cmd.Context(), telemetry.Options{
		ServiceName:    cfg.Telemetry.ServiceName,
		ServiceVersion: version.Current,
		Endpoint:       cfg.Telemetry.Endpoint,
	})
	if err != nil {
		logger.Warn("telemetry disabled", "error", err)
		return nil
	}
	provider = p
	return nil
}

func titleStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#00FF99")).
		MarginBottom(1)
}

func renderHelp(w io.Writer, cmd *cobra.Command) {
	title := titleStyle()
	flagStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#AAAAAA"))

	fmt.Fprintln(w, title.Render(fmt.Sprintf("%s %s", strings.ToUpper(version.AppName), version.Current)))
	if cmd.Long != "" {
		fmt.Fprintln(w, cmd.Long)
	} else {
		fmt.Fprintln(w, cmd.Short)
	}

	fmt.Fprintln(w, title.Render("USAGE"))
	fmt.Fprintf(w, "  %s\n\n", cmd.UseLine())

	if cmd.HasAvailableSubCommands() {
		fmt.Fprintln(w, title.Render("COMMANDS"))
		for _, c := range cmd.Commands() {
			if c.IsAvailableCommand() {
				fmt.Fprintf(w, "  %-12s %s\n", c.Name(), c.Short)
			}
		}
		fmt.Fprintln(w)
	}

	if cmd.Example != "" {
		fmt.Fprintln(w, title.Render("EXAMPLES"))
		fmt.Fprintln(w, cmd.Example)
		fmt.Fprintln(w)
	}

	fmt.Fprintln(w, title.Render("FLAGS"))
	visit := func(f *pflag.Flag) {
		if f.Hidden {
			return
		}
		line := fmt.Sprintf("  --%-18s %s", f.Name, f.Usage)
		if f.DefValue != "" && f.DefValue != "false" && f.DefValue != "0" && f.DefValue != "[]" {
			line += fmt.Sprintf(" (default %s)", f.DefValue)
		}
		fmt.Fprintln(w, flagStyle.Render(line))
	}
	cmd.LocalFlags().VisitAll(visit)
	cmd.InheritedFlags().VisitAll(visit)
	fmt.Fprintln(w)
}
