package view

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/logrusorgru/aurora"

	"chunklife/src/universe"
)

//DefReportEvery is the number of iterations between two progress lines
const DefReportEvery = 10

//ConsoleOut is the headless viewer, it reports the progress of the run as plain text
type ConsoleOut struct {
	u            universe.Universe
	w            io.Writer
	au           aurora.Aurora
	startTime    time.Time
	every        int
	lastReported int
	finished     bool
	printField   bool
}

//NewConsoleOut creates the viewer writing to w
//colors are used only when colored is true, the final field is printed when printField is true
func NewConsoleOut(w io.Writer, colored bool, printField bool) *ConsoleOut {
	return &ConsoleOut{
		w:          w,
		au:         aurora.NewAurora(colored),
		every:      DefReportEvery,
		printField: printField,
	}
}

func (c *ConsoleOut) Refresh() {
	st := c.u.Status()
	switch st.RunningMode {
	case universe.ModeFinished:
		if c.finished {
			return
		}
		c.finished = true
		totalTime := time.Since(c.startTime).Round(time.Millisecond)
		resultData := map[string]interface{}{
			"Last iteration": st.IterationNum,
			"Total time":     totalTime,
			"Live cells":     st.LiveCells,
			"Active chunks":  st.ActiveChunks,
		}
		fmt.Fprintln(c.w, c.au.Red("\nFinished:"))
		c.printHashData(resultData)
		if c.printField {
			fmt.Fprintln(c.w, c.u.Area().String())
		}
	case universe.ModeRun:
		c.finished = false
		if st.IterationNum != c.lastReported && st.IterationNum%c.every == 0 {
			c.lastReported = st.IterationNum
			fmt.Fprintf(c.w, "  Iterations done: %v, live cells: %v, evaluated cells: %v\n", st.IterationNum, st.LiveCells, st.EvaluatedCells)
		}
	}
}

func (c *ConsoleOut) Register(u universe.Universe) {
	c.u = u
	o := c.u.Options()
	fmt.Fprintln(c.w, c.au.Green("Running configuration:"))
	fmt.Fprintf(c.w, "  Dimension: %v x %v\n", o.Width, o.Height)
	fmt.Fprintf(c.w, "  Interval: %v\n", o.Interval)
	fmt.Fprintf(c.w, "  Max iterations: %v steps\n", o.MaxSteps)
	c.printHashData(o.Advanced)
}

func (c *ConsoleOut) Start() {
	c.startTime = time.Now()
	fmt.Fprintln(c.w, c.au.Cyan("\nSimulation started..."))
}

func (c *ConsoleOut) printHashData(d map[string]interface{}) {
	propNames := make([]string, 0, len(d))
	for k := range d {
		propNames = append(propNames, k)
	}
	sort.Strings(propNames)
	for _, propName := range propNames {
		fmt.Fprintf(c.w, "  %s: %v\n", propName, d[propName])
	}
}
