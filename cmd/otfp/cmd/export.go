package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/OpenTraceLab/OpenTraceFootprint/internal/config"
	"github.com/OpenTraceLab/OpenTraceFootprint/internal/observability"
	"github.com/OpenTraceLab/OpenTraceFootprint/pkg/export"
	"github.com/OpenTraceLab/OpenTraceFootprint/pkg/export/gnuplot"
	"github.com/OpenTraceLab/OpenTraceFootprint/pkg/export/kicad"
	"github.com/OpenTraceLab/OpenTraceFootprint/pkg/export/pcb"
	"github.com/OpenTraceLab/OpenTraceFootprint/pkg/inst"
)

var (
	outPath     string
	packageName string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write instantiated footprints to a file format",
	Long:  `Commands for exporting the packages of a footprint definition`,
}

var exportKiCadCmd = &cobra.Command{
	Use:   "kicad <file.fpd>",
	Short: "Export KiCad footprints (.kicad_mod)",
	Long: `Writes one .kicad_mod footprint per package. With -o naming a directory
(for example lib.pretty) one file per package is created in it; without -o
the footprints are written to stdout.`,
	Args: cobra.ExactArgs(1),
	RunE: runExportKiCad,
}

var exportGnuplotCmd = &cobra.Command{
	Use:   "gnuplot <file.fpd>",
	Short: "Export silk screen outlines as gnuplot data",
	Args:  cobra.ExactArgs(1),
	RunE:  runExportGnuplot,
}

var exportPCBCmd = &cobra.Command{
	Use:   "pcb <file.fpd>",
	Short: "Export gEDA PCB elements",
	Args:  cobra.ExactArgs(1),
	RunE:  runExportPCB,
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.AddCommand(exportKiCadCmd)
	exportCmd.AddCommand(exportGnuplotCmd)
	exportCmd.AddCommand(exportPCBCmd)

	exportCmd.PersistentFlags().StringVarP(&outPath, "output", "o", "", "output file or directory (default stdout)")
	exportCmd.PersistentFlags().StringVarP(&packageName, "package", "p", "", "export only this package")
}

func loadPackages(filename string) (*inst.Result, []*inst.Package, error) {
	_, _, res, err := load(filename)
	if err != nil {
		return nil, nil, err
	}
	pkgs, err := export.Packages(res, packageName)
	if err != nil {
		return nil, nil, err
	}
	return res, pkgs, nil
}

// writeOutput runs fn on the file at path, or on stdout if path is empty.
func writeOutput(cmd *cobra.Command, path string, fn func(io.Writer) error) error {
	if path == "" {
		return fn(cmd.OutOrStdout())
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	bw := bufio.NewWriter(f)
	if err := fn(bw); err != nil {
		f.Close()
		return err
	}
	if err := bw.Flush(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// fileName turns a package name into a file name.
func fileName(pkg string) string {
	return strings.NewReplacer("/", "_", "\\", "_", " ", "_").Replace(pkg) + kicad.Extension
}

func runExportKiCad(cmd *cobra.Command, args []string) error {
	res, pkgs, err := loadPackages(args[0])
	if err != nil {
		return err
	}
	opts := kicad.Options{SilkLayer: cfg.Export.KiCadSilkLayer}

	if outPath == "" {
		for _, p := range pkgs {
			if err := kicad.Write(cmd.OutOrStdout(), res, p, opts); err != nil {
				return err
			}
		}
		return nil
	}

	if err := os.MkdirAll(outPath, 0o755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	log := observability.GetLogger().Named("export")
	for _, p := range pkgs {
		path := filepath.Join(outPath, fileName(p.Name))
		err := writeOutput(cmd, path, func(w io.Writer) error {
			return kicad.Write(w, res, p, opts)
		})
		if err != nil {
			return err
		}
		log.Info("wrote footprint", zap.String("package", p.Name), zap.String("file", path))
	}
	return nil
}

func runExportGnuplot(cmd *cobra.Command, args []string) error {
	res, pkgs, err := loadPackages(args[0])
	if err != nil {
		return err
	}
	return writeOutput(cmd, outPath, func(w io.Writer) error {
		return gnuplot.Write(w, res, pkgs, gnuplot.Options{ArcStep: cfg.Export.ArcStep})
	})
}

func runExportPCB(cmd *cobra.Command, args []string) error {
	res, pkgs, err := loadPackages(args[0])
	if err != nil {
		return err
	}
	clearance, err := config.Length(cfg.Export.PCBClearance)
	if err != nil {
		return err
	}
	return writeOutput(cmd, outPath, func(w io.Writer) error {
		return pcb.Write(w, res, pkgs, pcb.Options{Clearance: clearance})
	})
}
