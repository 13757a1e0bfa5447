package universe

import "time"

type Universe interface {
	Status() Status
	Options() Options
	Area() Grid
	Snapshot() (Grid, ActiveSet, Status)
	StateCh() chan Status
	AddTemplate(tmpl Template)
	Templates() []Template
	SettleTemplate(name string)
	SettleWithRandomData(density float64)
	Settle(vc [][]int)
	InverseCell(x int, y int)
	SetCell(x int, y int, c Cell)
	RegisterViewer(v Viewer)
	ToggleRun()
	Run()
	Stop()
	Step()
	Clear()
	Close()
}

//Options represents the Universe's configurable options
type Options struct {
	Width          int
	Height         int
	ChunkSize      int
	Density        float64 //density used by SettleWithRandomData when called with a negative value
	Interval       time.Duration
	MaxSteps       int   //0 - unlimited
	StopWhenStable bool  //finish the run when a generation changes nothing
	Seed           int64 //0 - seeded from the clock
	Advanced       map[string]interface{} //advanced options (engine specific)
}

//Status represents the status of the Universe at concrete moment
type Status struct {
	IterationNum   int
	RunningMode    RunningState
	LiveCells      int
	ActiveChunks   int
	EvaluatedCells int
	IterationTime  time.Duration
}

//Viewer is the interface to any Viewer - the object who can display simulation data or control the engine
type Viewer interface {
	Refresh()
	Register(u Universe)
	Start()
}

//Template represent the seeding template which can used to settle the universe with predefined data
type Template struct {
	Name        string  //template name
	Descr       string  //template descr
	Coordinates [][]int //array of [x,y] coordinates
}

//The universe running status at the concrete moment
type RunningState int

//default options
const (
	DefSimulationInterval = time.Millisecond * 100
	DefMaxSteps           = 0
	DefWidth              = 40
	DefHeight             = 15
	DefDensity            = 0.3
)

const (
	ModeEdit     RunningState = 0x0
	ModeStep     RunningState = 0x1
	ModeRun      RunningState = 0x2
	ModePause    RunningState = 0x3
	ModeFinished RunningState = 0x4
)

func (s RunningState) String() string {
	switch s {
	case ModeEdit:
		return "edit"
	case ModeStep:
		return "step"
	case ModeRun:
		return "run"
	case ModePause:
		return "pause"
	case ModeFinished:
		return "finished"
	}
	return "unknown"
}

var DefaultUniverseOptions = Options{
	Width:     DefWidth,
	Height:    DefHeight,
	ChunkSize: DefChunkSize,
	Density:   DefDensity,
	Interval:  DefSimulationInterval,
	MaxSteps:  DefMaxSteps,
}
