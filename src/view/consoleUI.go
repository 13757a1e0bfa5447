package view

import (
	"bytes"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/jroimartin/gocui"
	"github.com/logrusorgru/aurora"

	"chunklife/src/universe"
)

const (
	leftColumnWidth = 28
	minWindowHeight = 20
	scrollStep      = 5
)

type keyBindings struct {
	key      interface{}
	name     string
	descr    string
	handler  func(v *gocui.View) error
	viewName string
}

//ConsoleUI is the interactive terminal viewer
//the field is drawn from the camera offset, the cells are edited with the mouse
type ConsoleUI struct {
	u universe.Universe
	g *gocui.Gui
	k []keyBindings

	liveFiller   string
	deadFiller   string
	activeFiller string

	mu         sync.Mutex
	offsetX    int
	offsetY    int
	showChunks bool
}

var (
	runningStateDescr = map[universe.RunningState]string{
		universe.ModeEdit:     aurora.Colorize("edit", aurora.BlueFg).String(),
		universe.ModeStep:     "do the step",
		universe.ModeRun:      aurora.Colorize("running", aurora.CyanFg).String(),
		universe.ModePause:    aurora.Colorize("paused", aurora.YellowFg).String(),
		universe.ModeFinished: aurora.Colorize("finished", aurora.RedFg).String(),
	}
)

func NewViewTerminal() *ConsoleUI {

	var err error
	t := ConsoleUI{
		liveFiller:   aurora.Green("█").BgBrightGreen().String(),
		deadFiller:   "░",
		activeFiller: aurora.Gray(12, "░").String(),
	}

	t.g, err = gocui.NewGui(gocui.OutputNormal)
	if err != nil {
		log.Panicln(err)
	}

	t.g.Mouse = true
	t.k = []keyBindings{
		{gocui.KeyCtrlC, "^C", "Exit", t.cmdQuit, ""},
		{gocui.KeyEsc, "ESC", "Exit", t.cmdQuit, ""},
		{gocui.KeySpace, "SPACE", "Run/Pause", t.cmdToggleRun, ""},
		{'n', "N", "Next step", t.cmdNextRound, ""},
		{'c', "C", "Clear", t.cmdClear, ""},
		{'w', "W", "Settle with random", t.cmdSettleWithRandom, ""},
		{'k', "K", "Chunks", t.cmdToggleChunks, ""},
		{gocui.KeyArrowLeft, "ARROWS", "Scroll", t.scroll(-scrollStep, 0), ""},
		{gocui.KeyArrowRight, "", "", t.scroll(scrollStep, 0), ""},
		{gocui.KeyArrowUp, "", "", t.scroll(0, -scrollStep), ""},
		{gocui.KeyArrowDown, "", "", t.scroll(0, scrollStep), ""},
		{gocui.MouseLeft, "MOUSE", "Toggle the cell (edit, pause)", t.cmdMouseClick, "battlefield"},
	}
	t.g.SetManagerFunc(t.layout)

	t.initKeyBindings(t.k)

	return &t
}

//FieldSize returns the field dimensions which fit the battlefield view of the current terminal
func (t *ConsoleUI) FieldSize() (width int, height int) {
	maxX, maxY := t.g.Size()
	width = maxX - leftColumnWidth - 3
	height = maxY - 5 - 3 - 1
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	return
}

func (t *ConsoleUI) initKeyBindings(k []keyBindings) {
	for _, kb := range k {
		h := kb.handler
		if err := t.g.SetKeybinding(kb.viewName, kb.key, gocui.ModNone, func(gui *gocui.Gui, view *gocui.View) error { return h(view) }); err != nil {
			log.Panicln(err)
		}
	}
}

func (t *ConsoleUI) Register(u universe.Universe) {
	t.u = u
}

func (t *ConsoleUI) Start() {
	if err := t.g.MainLoop(); err != nil && err != gocui.ErrQuit {
		log.Panicln(err)
	}
	t.g.Close()
}

//Close restores the terminal when the viewer is dropped without Start
func (t *ConsoleUI) Close() {
	t.g.Close()
}

func (t *ConsoleUI) Refresh() {
	t.renderField(t.u.Area())
	t.renderConfiguration()
	t.renderStatus()
}

//camera returns the scroll offset and the chunk overlay flag
func (t *ConsoleUI) camera() (int, int, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.offsetX, t.offsetY, t.showChunks
}

func (t *ConsoleUI) renderField(a universe.Grid) {
	offsetX, offsetY, showChunks := t.camera()
	chunkSize := t.u.Options().ChunkSize
	var active universe.ActiveSet
	if showChunks {
		active = universe.ComputeActiveChunks(a, chunkSize)
	}

	t.g.Update(func(g *gocui.Gui) error {
		v, e := g.View("battlefield")
		if e != nil {
			//hidden while the terminal is too small
			return nil
		}
		//the entire field is redrawing at once now
		v.Clear()

		maxW, maxH := v.Size()
		crop := a.Width-offsetX > maxW || a.Height-offsetY > maxH

		var b bytes.Buffer

		for i := 0; i < maxH && offsetY+i < a.Height; i++ {
			y := offsetY + i
			//line feed char
			if i != 0 {
				b.WriteByte(10)
			}
			if crop && i == (maxH-1) {
				b.WriteString(aurora.Red("The field is larger than the view, scroll with the arrows").BgBlack().String())
				break
			}
			for j := 0; j < maxW && offsetX+j < a.Width; j++ {
				x := offsetX + j
				switch {
				case a.IsAlive(x, y):
					b.WriteString(t.liveFiller)
				case showChunks && active.Has(universe.ChunkOf(x, y, chunkSize)):
					b.WriteString(t.activeFiller)
				default:
					b.WriteString(t.deadFiller)
				}
			}
		}
		_, _ = fmt.Fprint(v, b.String())
		return nil
	})
}

func (t *ConsoleUI) renderStatus() {
	s := t.u.Status()
	offsetX, offsetY, _ := t.camera()
	t.g.Update(func(g *gocui.Gui) error {
		if v, e := t.g.View("status"); e == nil {
			v.Clear()
			_, _ = fmt.Fprintln(v, t.renderProp("Step", "%v", s.IterationNum))
			_, _ = fmt.Fprintln(v, t.renderProp("Live Cells", "%v", s.LiveCells))
			_, _ = fmt.Fprintln(v, t.renderProp("Active chunks", "%v", s.ActiveChunks))
			_, _ = fmt.Fprintln(v, t.renderProp("Evaluated cells", "%v", s.EvaluatedCells))
			_, _ = fmt.Fprintln(v, t.renderProp("Evaluation time", "%v", s.IterationTime.Round(time.Microsecond)))
			_, _ = fmt.Fprintln(v, t.renderProp("Mode", "%v", runningStateDescr[s.RunningMode]))
			_, _ = fmt.Fprintln(v, t.renderProp("Offset", "%v, %v", offsetX, offsetY))
		}
		return nil
	})
}

func (t *ConsoleUI) renderConfiguration() {
	//it needs to call Update when calls from goroutine
	t.g.Update(func(g *gocui.Gui) error {
		c := t.u.Options()
		if v, e := g.View("configuration"); e == nil {
			v.Clear()
			_, _ = fmt.Fprintln(v, t.renderProp("Dimension", "%v x %v", c.Width, c.Height))
			_, _ = fmt.Fprintln(v, t.renderProp("Chunk", "%v", c.ChunkSize))
			_, _ = fmt.Fprintln(v, t.renderProp("Engine", "%v", c.Advanced["engine"]))
			_, _ = fmt.Fprintln(v, t.renderProp("Interval", "%v", c.Interval))
			if c.MaxSteps != 0 {
				_, _ = fmt.Fprintln(v, t.renderProp("Iterations", "%v steps", c.MaxSteps))
			}
		}
		return nil
	})
}

func (t *ConsoleUI) renderProp(name string, valueformat string, values ...interface{}) string {
	return fmt.Sprintf(" "+aurora.Colorize(name, aurora.GreenFg).String()+": "+valueformat, values...)
}

func (t *ConsoleUI) layout(g *gocui.Gui) error {

	maxX, maxY := g.Size()

	if maxY < minWindowHeight {
		if _, err := t.headerLayout(g, maxY, "Terminal height too small"); err != nil {
			if err != gocui.ErrUnknownView {
				return err
			}
		}
		_ = g.DeleteView("configuration")
		_ = g.DeleteView("status")
		_ = g.DeleteView("battlefield")
		return nil

	}
	if _, err := t.headerLayout(g, 3, "This is \"The Life\" game simulation"); err != nil {
		if err != gocui.ErrUnknownView {
			return err
		}
	}

	if v, err := g.SetView("configuration", 0, 3, leftColumnWidth, 3+(maxY-5-3)/2); err != nil {
		if err != gocui.ErrUnknownView || v == nil {
			return err
		}
		v.Title = "Configuration"
		v.Frame = true
		t.renderConfiguration()
	}

	if v, err := g.SetView("status", 0, 3+(maxY-5-3)/2+1, leftColumnWidth, maxY-5); err != nil {
		if err != gocui.ErrUnknownView || v == nil {
			return err
		}
		v.Title = "Status"
		v.Frame = true
		t.renderStatus()
	}

	if v, err := g.SetView("battlefield", leftColumnWidth+1, 3, maxX-1, maxY-5); err != nil {
		if err != gocui.ErrUnknownView || v == nil {
			return err
		}
		v.Title = "Battle Field"
		v.Frame = true
		t.renderField(t.u.Area())
	}

	if v, err := g.SetView("help", -1, maxY-5, maxX, maxY-3); err != nil {
		if err != gocui.ErrUnknownView || v == nil {
			return err
		}
		v.Frame = false
		v.Wrap = true
		b := bytes.Buffer{}
		b.WriteString("KEYBINDINGS: ")
		first := true
		for _, k := range t.k {
			if k.name == "" {
				continue
			}
			if !first {
				b.WriteString(", ")
			}
			first = false
			b.WriteString(aurora.Green(k.name).String())
			b.WriteString(": ")
			b.WriteString(k.descr)
		}
		_, _ = fmt.Fprintln(v, b.String())
	}

	return nil
}

func (t *ConsoleUI) headerLayout(g *gocui.Gui, height int, text string) (v *gocui.View, err error) {
	maxX, _ := g.Size()
	if v, err = g.SetView("header", -1, -1, maxX+1, height); err != nil {
		if err == gocui.ErrUnknownView && v != nil {
			v.Frame = false
			v.BgColor = gocui.ColorCyan
			v.FgColor = gocui.ColorBlack
		}
	}
	if v != nil {
		v.Clear()
		pad := 0
		if maxX > len(text) {
			pad = (maxX - len(text)) / 2
		}
		_, _ = fmt.Fprintln(v, strings.Repeat("\n", height/2+1)+strings.Repeat(" ", pad)+text)
	}
	return
}

func (t *ConsoleUI) cmdQuit(_ *gocui.View) error {
	return gocui.ErrQuit
}

func (t *ConsoleUI) cmdNextRound(_ *gocui.View) error {
	t.u.Step()
	return nil
}

func (t *ConsoleUI) cmdToggleRun(_ *gocui.View) error {
	t.u.ToggleRun()
	return nil
}

func (t *ConsoleUI) cmdClear(_ *gocui.View) error {
	t.u.Clear()
	return nil
}

func (t *ConsoleUI) cmdSettleWithRandom(_ *gocui.View) error {
	t.u.SettleWithRandomData(-1)
	return nil
}

func (t *ConsoleUI) cmdToggleChunks(_ *gocui.View) error {
	t.mu.Lock()
	t.showChunks = !t.showChunks
	t.mu.Unlock()
	t.renderField(t.u.Area())
	return nil
}

//scroll returns the handler moving the camera by dx, dy cells
func (t *ConsoleUI) scroll(dx int, dy int) func(v *gocui.View) error {
	return func(_ *gocui.View) error {
		o := t.u.Options()
		w, h := 0, 0
		if v, err := t.g.View("battlefield"); err == nil {
			w, h = v.Size()
		}
		t.mu.Lock()
		t.offsetX = clampOffset(t.offsetX+dx, o.Width-w)
		t.offsetY = clampOffset(t.offsetY+dy, o.Height-h)
		t.mu.Unlock()
		t.renderField(t.u.Area())
		t.renderStatus()
		return nil
	}
}

//clampOffset keeps the camera inside the field
func clampOffset(offset int, max int) int {
	if offset > max {
		offset = max
	}
	if offset < 0 {
		offset = 0
	}
	return offset
}

func (t *ConsoleUI) cmdMouseClick(v *gocui.View) error {
	cx, cy := v.Cursor()
	offsetX, offsetY, _ := t.camera()
	//the universe ignores edits in the modes which don't accept them
	t.u.InverseCell(cx+offsetX, cy+offsetY)
	return nil
}
