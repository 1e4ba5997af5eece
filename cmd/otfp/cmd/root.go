package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/OpenTraceLab/OpenTraceFootprint/internal/config"
	"github.com/OpenTraceLab/OpenTraceFootprint/internal/observability"
	"github.com/OpenTraceLab/OpenTraceFootprint/pkg/fpd"
	"github.com/OpenTraceLab/OpenTraceFootprint/pkg/inst"
	"github.com/OpenTraceLab/OpenTraceFootprint/pkg/model"
)

var (
	// Global flags
	cfgFile string
	verbose bool
	jsonLog bool

	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "otfp",
	Short: "OpenTraceFootprint - parametric PCB footprint generator",
	Long: `OpenTraceFootprint (otfp) instantiates parametric footprint definitions
(.fpd files) and exports the resulting footprints.

Examples:
  otfp inst sot23.fpd                       # Instantiate and summarize
  otfp export kicad -o lib.pretty sot23.fpd # One .kicad_mod per package
  otfp export gnuplot sot23.fpd > sot23.gp  # Silk screen as gnuplot data
  otfp view sot23.fpd                       # Interactive viewer`,
	Version:           "0.1.0",
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

// Execute runs the root command
func Execute() {
	err := rootCmd.Execute()
	observability.Sync()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (YAML)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVar(&jsonLog, "json", false, "log as JSON")
}

func setup(cmd *cobra.Command, args []string) error {
	var err error
	if cfg, err = config.Load(cfgFile); err != nil {
		return err
	}
	if verbose {
		cfg.Logger.Level = "debug"
	}
	if jsonLog {
		cfg.Logger.Format = "json"
	}
	observability.InitializeLogger(cfg.Logger)
	return nil
}

func newEngine() (*inst.Engine, error) {
	w, err := cfg.SilkWidth()
	if err != nil {
		return nil, err
	}
	return inst.NewEngine(
		inst.WithLogger(observability.GetLogger().Named("inst")),
		inst.WithMaxIterations(cfg.Engine.MaxIterations),
		inst.WithDefaultSilkWidth(w),
	), nil
}

// load parses filename and instantiates it.
func load(filename string) (*model.Document, *inst.Engine, *inst.Result, error) {
	p, err := fpd.NewParser()
	if err != nil {
		return nil, nil, nil, err
	}
	doc, err := p.ParseFile(filename)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("error parsing %s: %w", filename, err)
	}
	e, err := newEngine()
	if err != nil {
		return nil, nil, nil, err
	}
	res, err := e.Instantiate(doc)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("error instantiating %s: %w", filename, err)
	}
	observability.GetLogger().Debug("loaded", zap.String("file", filename), zap.Int("packages", len(res.Packages())))
	return doc, e, res, nil
}
