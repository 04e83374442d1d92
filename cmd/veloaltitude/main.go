package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Alexandredadadadada/velo-altitude-sub000/internal/config"
	"github.com/Alexandredadadadada/velo-altitude-sub000/internal/logging"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// app carries the state shared by all subcommands once the root's
// PersistentPreRunE has run.
type app struct {
	configPath string
	logLevel   string
	logFormat  string

	cfg *config.Config
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "veloaltitude",
		Short:         "Climb analysis and 2D/3D visualization of mountain passes",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(a.configPath)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("log-level") {
				cfg.Log.Level = a.logLevel
			}
			if cmd.Flags().Changed("log-format") {
				cfg.Log.Format = a.logFormat
			}
			logging.Init(cfg.Logging())
			a.cfg = cfg
			return nil
		},
	}

	root.PersistentFlags().StringVar(&a.configPath, "config", "", fmt.Sprintf("config file (default $%s or ./%s)", config.ConfigPathEnvVar, config.DefaultConfigFile))
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level: trace, debug, info, warn, error (overrides config)")
	root.PersistentFlags().StringVar(&a.logFormat, "log-format", "", "log format: json or console (overrides config)")

	root.AddCommand(a.analyzeCmd())
	root.AddCommand(a.visualizeCmd())
	root.AddCommand(a.sceneCmd())
	root.AddCommand(a.chartCmd())
	root.AddCommand(a.validateCmd())
	root.AddCommand(a.enrichCmd())
	root.AddCommand(a.serveCmd())

	return root
}

func (a *app) analyzeCmd() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "analyze [pass.yaml]",
		Short: "Segment a pass profile and print its difficulty analysis",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runAnalyze(cmd.Context(), cmd.OutOrStdout(), args[0], asJSON)
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the analysis as JSON")
	return cmd
}

func (a *app) visualizeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "visualize [pass.yaml]",
		Short: "Print the colour-segmented profile as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runVisualize(cmd.Context(), cmd.OutOrStdout(), args[0])
		},
	}
}

func (a *app) sceneCmd() *cobra.Command {
	var (
		mode       string
		resolution int
	)
	cmd := &cobra.Command{
		Use:   "scene [pass.yaml]",
		Short: "Synthesize the 3D scene descriptor of a pass as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("resolution") {
				a.cfg.Terrain.GridResolution = resolution
			}
			return a.runScene(cmd.Context(), cmd.OutOrStdout(), args[0], mode)
		},
	}
	cmd.Flags().StringVar(&mode, "mode", "day", "lighting mode: day or night")
	cmd.Flags().IntVarP(&resolution, "resolution", "r", 0, "terrain grid resolution (overrides config)")
	return cmd
}

func (a *app) chartCmd() *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "chart [pass.yaml]",
		Short: "Render the elevation profile as an HTML chart",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runChart(cmd.Context(), cmd.OutOrStdout(), args[0], out)
		},
	}
	cmd.Flags().StringVarP(&out, "output", "o", "", "output file (default stdout)")
	return cmd
}

func (a *app) validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [pass.yaml|dir]",
		Short: "Check pass records without running the pipelines",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runValidate(cmd.OutOrStdout(), args[0])
		},
	}
}

func (a *app) enrichCmd() *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "enrich [pass.yaml]",
		Short: "Fill coordinates_3d from the elevation profile and print the record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runEnrich(cmd.Context(), cmd.OutOrStdout(), args[0], out)
		},
	}
	cmd.Flags().StringVarP(&out, "output", "o", "", "output file (default stdout)")
	return cmd
}

func (a *app) serveCmd() *cobra.Command {
	var port int
	cmd := &cobra.Command{
		Use:   "serve [data-dir]",
		Short: "Serve the passes of a directory over HTTP",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := a.cfg.DataDir
			if len(args) == 1 {
				dir = args[0]
			}
			if cmd.Flags().Changed("port") {
				a.cfg.Server.Port = port
			}
			return a.runServe(cmd.Context(), dir)
		},
	}
	cmd.Flags().IntVarP(&port, "port", "p", 3000, "HTTP server port")
	return cmd
}
