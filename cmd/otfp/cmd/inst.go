package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/OpenTraceFootprint/pkg/coord"
	"github.com/OpenTraceLab/OpenTraceFootprint/pkg/expr"
	"github.com/OpenTraceLab/OpenTraceFootprint/pkg/inst"
	"github.com/OpenTraceLab/OpenTraceFootprint/pkg/model"
)

var instCmd = &cobra.Command{
	Use:   "inst <file.fpd>",
	Short: "Instantiate a definition and summarize the result",
	Long: `Parses and instantiates a footprint definition, then lists every package
with its instance counts, the overall bounding box and the values printed
by %iprint statements.`,
	Args: cobra.ExactArgs(1),
	RunE: runInst,
}

func init() {
	rootCmd.AddCommand(instCmd)
}

func runInst(cmd *cobra.Command, args []string) error {
	_, _, res, err := load(args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%-24s", "Package")
	for _, prio := range inst.Prios() {
		fmt.Fprintf(out, " %8s", prio)
	}
	fmt.Fprintln(out)
	for _, p := range append([]*inst.Package{res.Common()}, res.Packages()...) {
		name := p.Name
		if name == "" {
			name = "(common)"
		}
		fmt.Fprintf(out, "%-24s", name)
		for _, prio := range inst.Prios() {
			fmt.Fprintf(out, " %8d", len(p.Insts(prio)))
		}
		fmt.Fprintln(out)
	}

	if bbox := res.BBox(); !bbox.IsEmpty() {
		fmt.Fprintf(out, "\nSize: %.3f x %.3f mm\n", mm(bbox.Width()), mm(bbox.Height()))
		fmt.Fprintf(out, "Box:  (%.3f, %.3f) - (%.3f, %.3f) mm\n",
			mm(bbox.Min.X), mm(bbox.Min.Y), mm(bbox.Max.X), mm(bbox.Max.Y))
	}

	if prints := res.Prints(); len(prints) > 0 {
		fmt.Fprintln(out)
		for _, pr := range prints {
			ip := pr.Obj.Shape.(*model.Iprint)
			fmt.Fprintf(out, "line %d: %s = %s\n", pr.Obj.Lineno, expr.Unparse(ip.Expr), pr.Value)
		}
	}
	return nil
}

func mm(u float64) float64 { return coord.UnitsToMM(u, 1) }
