package cmd

import (
	"fmt"
	"log"
	"math"
	"os"

	"gioui.org/app"
	"gioui.org/io/event"
	"gioui.org/io/key"
	"gioui.org/io/pointer"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/unit"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/OpenTraceLab/OpenTraceFootprint/internal/observability"
	"github.com/OpenTraceLab/OpenTraceFootprint/pkg/coord"
	"github.com/OpenTraceLab/OpenTraceFootprint/pkg/fpd"
	"github.com/OpenTraceLab/OpenTraceFootprint/pkg/inst"
	"github.com/OpenTraceLab/OpenTraceFootprint/pkg/viewer"
)

var viewCmd = &cobra.Command{
	Use:   "view <file.fpd>",
	Short: "View a footprint definition in an interactive viewer",
	Long: `Opens a footprint definition in a Gio-based viewer.

Controls:
  Left Click      - Select; clicking an inactive item activates it
  Scroll Wheel    - Zoom in/out
  Space           - Fit active frame to window
  R               - Reload the file
  V / F / M       - Toggle vectors, frames, measurements
  Q / Escape      - Quit`,
	Args: cobra.ExactArgs(1),
	RunE: runView,
}

func init() {
	rootCmd.AddCommand(viewCmd)
}

// scrollLimit bounds the scroll distance taken from one wheel event.
const scrollLimit = 1000

// viewState is what the viewer window works on.
type viewState struct {
	filename string
	session  *inst.Session
	selected *inst.Instance
	camera   *viewer.Camera
	renderer *viewer.Renderer
	log      *zap.Logger
}

func runView(cmd *cobra.Command, args []string) error {
	filename := args[0]
	doc, e, res, err := load(filename)
	if err != nil {
		return err
	}
	fmt.Printf("Loaded %s: %d packages, %d instances\n", filename, len(res.Packages()), res.Count())

	st := &viewState{
		filename: filename,
		session:  inst.NewSession(e, doc),
		camera:   viewer.NewCamera(cfg.Viewer.Width, cfg.Viewer.Height),
		renderer: viewer.NewRenderer(viewer.Options{
			ShowVectors:      cfg.Viewer.ShowVectors,
			ShowFrames:       cfg.Viewer.ShowFrames,
			ShowMeasurements: cfg.Viewer.ShowMeasurements,
		}),
		log: observability.GetLogger().Named("viewer"),
	}
	if err := st.session.Instantiate(); err != nil {
		return err
	}
	st.fit()

	go func() {
		w := new(app.Window)
		w.Option(app.Title("Footprint Viewer - " + filename))
		w.Option(app.Size(unit.Dp(float32(cfg.Viewer.Width)), unit.Dp(float32(cfg.Viewer.Height))))

		if err := st.run(w); err != nil {
			log.Fatal(err)
		}
		os.Exit(0)
	}()
	app.Main()
	return nil
}

// fit shows the active frame, or everything if it is empty.
func (st *viewState) fit() {
	res := st.session.Result()
	if res == nil {
		return
	}
	bbox := res.ActiveFrameBBox()
	if bbox.IsEmpty() {
		bbox = res.BBox()
	}
	st.camera.Fit(bbox)
}

// reload parses the file again. On error the current document stays.
func (st *viewState) reload() {
	p, err := fpd.NewParser()
	if err != nil {
		st.log.Error("reload failed", zap.Error(err))
		return
	}
	doc, err := p.ParseFile(st.filename)
	if err != nil {
		st.log.Error("reload failed", zap.Error(err))
		return
	}
	e, err := newEngine()
	if err != nil {
		st.log.Error("reload failed", zap.Error(err))
		return
	}
	s := inst.NewSession(e, doc)
	if err := s.Instantiate(); err != nil {
		st.log.Error("reload failed", zap.Error(err))
		return
	}
	st.session = s
	st.selected = nil
	st.log.Info("reloaded", zap.String("file", st.filename))
}

// click selects the item under the cursor. An inactive item first has its
// table rows, loop values and frame reference made active.
func (st *viewState) click(x, y float64) {
	res := st.session.Result()
	pos := st.camera.ToWorld(x, y)
	scale := st.camera.PixelSize()

	i := res.SelectAny(pos, scale)
	if i == nil {
		st.selected = nil
		return
	}
	if i.Active {
		st.selected = i
		return
	}
	ok, err := st.session.Activate(inst.TargetOf(i))
	if err != nil {
		st.log.Warn("activation failed", zap.Error(err))
		return
	}
	if !ok {
		st.log.Debug("no combination produces the selection")
		return
	}
	st.selected = st.session.Result().Select(pos, scale)
	st.log.Debug("activated", zap.Stringer("prio", i.Prio()), zap.Stringer("at", coordMM(i.Base)))
}

func (st *viewState) run(w *app.Window) error {
	var ops op.Ops

	for {
		switch e := w.Event().(type) {
		case app.DestroyEvent:
			return e.Err

		case app.FrameEvent:
			ops.Reset()

			gtx := layout.Context{
				Ops:         &ops,
				Constraints: layout.Exact(e.Size),
				Metric:      e.Metric,
				Now:         e.Now,
				Source:      e.Source,
			}

			if st.frame(gtx) {
				return nil
			}
			e.Frame(&ops)
		}
	}
}

// frame handles the queued input, registers the canvas as the pointer
// target and draws. It reports whether the viewer should close.
func (st *viewState) frame(gtx layout.Context) bool {
	size := gtx.Constraints.Max
	st.camera.UpdateScreenSize(size.X, size.Y)

	for {
		ev, ok := gtx.Event(key.Filter{})
		if !ok {
			break
		}
		if ke, ok := ev.(key.Event); ok && ke.State == key.Press {
			if st.handleKeyPress(ke.Name) {
				return true
			}
			gtx.Execute(op.InvalidateCmd{})
		}
	}

	for {
		ev, ok := gtx.Event(pointer.Filter{
			Target:  st,
			Kinds:   pointer.Press | pointer.Scroll,
			ScrollY: pointer.ScrollRange{Min: -scrollLimit, Max: scrollLimit},
		})
		if !ok {
			break
		}
		pe, ok := ev.(pointer.Event)
		if !ok {
			continue
		}
		switch pe.Kind {
		case pointer.Press:
			if pe.Buttons == pointer.ButtonPrimary {
				st.click(float64(pe.Position.X), float64(pe.Position.Y))
			}
		case pointer.Scroll:
			zoomFactor := math.Exp(-float64(pe.Scroll.Y) * 0.01)
			st.camera.ZoomAt(float64(pe.Position.X), float64(pe.Position.Y), zoomFactor)
		}
		gtx.Execute(op.InvalidateCmd{})
	}

	paint.Fill(gtx.Ops, viewer.ColorBackground)
	st.renderer.Render(gtx, st.camera, st.session.Result(), st.selected)

	// input area over the whole canvas
	area := clip.Rect{Max: size}.Push(gtx.Ops)
	event.Op(gtx.Ops, st)
	area.Pop()
	return false
}

func (st *viewState) handleKeyPress(k key.Name) bool {
	switch k {
	case key.NameEscape, "Q":
		return true
	case key.NameSpace:
		st.fit()
	case "R":
		st.reload()
	case "V":
		st.renderer.ShowVectors = !st.renderer.ShowVectors
	case "F":
		st.renderer.ShowFrames = !st.renderer.ShowFrames
	case "M":
		st.renderer.ShowMeasurements = !st.renderer.ShowMeasurements
	}
	return false
}

type coordMM coord.Coord

func (c coordMM) String() string {
	return fmt.Sprintf("(%.3f, %.3f)mm", mm(c.X), mm(c.Y))
}
