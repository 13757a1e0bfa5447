package universe

import (
	"fmt"
	"log"
	"math/rand"
	"sort"
	"sync"
	"time"
)

//BaseUniverse is the base universe's engine
//implements Universe interface
//can be used to create different implementations by redefining nextIteration func
//
//The grid and its active chunks are owned by the main loop goroutine:
//every edit and every generation is a command executed by this loop, so they never overlap.
type BaseUniverse struct {
	options Options
	state   struct {
		Status
		sync.Mutex
	}
	area struct {
		Grid
		active ActiveSet
		sync.Mutex
	}
	rng       *rand.Rand
	stateCh   chan Status
	views     []Viewer
	templates map[string]Template
	controlCh chan func()
	closeCh   chan bool
	closeOnce sync.Once
	done      chan struct{}
	runStop   chan struct{} //not nil while the run ticker is working, touched by the main loop only
	//nextIteration calculates the next generation of u.area, the area lock is held by the caller
	nextIteration func() (Stats, error)
}

//NewBaseUniverse creates the BaseUniverse instance
func NewBaseUniverse(o *Options, stateCh chan Status) (*BaseUniverse, error) {
	if o == nil {
		def := DefaultUniverseOptions
		o = &def
	}
	opts := *o
	if opts.ChunkSize < 1 {
		return nil, fmt.Errorf("universe: chunk size %d: %w", opts.ChunkSize, ErrInvalidChunkSize)
	}
	g, err := NewGrid(opts.Width, opts.Height)
	if err != nil {
		return nil, fmt.Errorf("universe: %w", err)
	}
	opts.Advanced = map[string]interface{}{
		"engine":     "chunked",
		"Chunk size": opts.ChunkSize,
	}
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	u := BaseUniverse{
		options:   opts,
		rng:       rand.New(rand.NewSource(seed)),
		controlCh: make(chan func(), 1),
		closeCh:   make(chan bool, 1),
		done:      make(chan struct{}),
		stateCh:   stateCh,
		templates: map[string]Template{},
	}
	//nextIteration can be implemented by successor
	u.nextIteration = u._nextIteration
	u.state.RunningMode = ModeEdit

	u.area.Grid = g
	u.area.active = ActiveSet{}
	for _, t := range DefaultTemplates {
		u.templates[t.Name] = t
	}
	go u.mainLoop()
	return &u, nil
}

//AddTemplate adds the seeding template to the internal storage
//the universe can be populated with this template by call SettleTemplate
func (u *BaseUniverse) AddTemplate(tmpl Template) {
	u.send(func() {
		u.templates[tmpl.Name] = tmpl
	})
}

//Templates returns the registered templates ordered by name
func (u *BaseUniverse) Templates() []Template {
	var ts []Template
	u.call(func() {
		ts = make([]Template, 0, len(u.templates))
		for _, t := range u.templates {
			ts = append(ts, t)
		}
	})
	sort.Slice(ts, func(i, j int) bool { return ts[i].Name < ts[j].Name })
	return ts
}

//Settle settles the universe with data
//vc - array of x,y coordinates
func (u *BaseUniverse) Settle(vc [][]int) {
	u.send(func() {
		if !u.editable(false) {
			return
		}
		u.area.Lock()
		u.settle(vc, Alive)
		u.area.Unlock()
		u.resync()
		u.refreshView()
	})
}

//SettleTemplate populates the universe with the seeding template
func (u *BaseUniverse) SettleTemplate(name string) {
	u.send(func() {
		tmpl, ok := u.templates[name]
		if !ok || !u.editable(false) {
			return
		}
		u.area.Lock()
		u.settle(tmpl.Coordinates, Alive)
		u.area.Unlock()
		u.resync()
		u.refreshView()
	})
}

//SettleWithRandomData clears the universe and populates it with random data
//a negative density means Options.Density, the universe is paused afterwards
func (u *BaseUniverse) SettleWithRandomData(density float64) {
	if density < 0 {
		density = u.options.Density
	}
	u.send(func() {
		if !u.editable(true) {
			return
		}
		u.area.Lock()
		err := u.area.Randomize(density, u.rng)
		u.area.Unlock()
		if err != nil {
			log.Printf("settle with random data: %v", err)
			return
		}
		u.state.Lock()
		u.state.IterationNum = 0
		u.state.Unlock()
		u.resync()
		u.switchRunningState(ModePause)
		u.refreshView()
	})
}

//InverseCell inverses the cell state at point x, y
func (u *BaseUniverse) InverseCell(x int, y int) {
	u.send(func() {
		if !u.editable(false) {
			return
		}
		u.area.Lock()
		ok := u.area.Toggle(x, y)
		u.area.Unlock()
		if ok {
			u.resync()
			u.refreshView()
		}
	})
}

//SetCell places c at point x, y
func (u *BaseUniverse) SetCell(x int, y int, c Cell) {
	u.send(func() {
		if !u.editable(false) {
			return
		}
		u.area.Lock()
		ok := u.area.Set(x, y, c)
		u.area.Unlock()
		if ok {
			u.resync()
			u.refreshView()
		}
	})
}

//RegisterViewer registers the viewer - the universe will call the viewer when the state is changed
func (u *BaseUniverse) RegisterViewer(v Viewer) {
	v.Register(u)
	u.send(func() {
		u.views = append(u.views, v)
	})
}

//StateCh returns the channel with the universe's status updates
func (u *BaseUniverse) StateCh() chan Status {
	return u.stateCh
}

//Status returns current universe status represented by Status struct
func (u *BaseUniverse) Status() Status {
	u.state.Lock()
	defer u.state.Unlock()
	return u.state.Status
}

//Options returns current universe configuration represented by Options struct
func (u *BaseUniverse) Options() Options {
	return u.options
}

//Area returns the copy of current universe area (field where cells is living)
func (u *BaseUniverse) Area() Grid {
	u.area.Lock()
	defer u.area.Unlock()
	return u.area.Clone()
}

//Snapshot waits for all queued commands and returns the copy of the grid, its active chunks and the status
func (u *BaseUniverse) Snapshot() (Grid, ActiveSet, Status) {
	var (
		g  Grid
		a  ActiveSet
		st Status
	)
	read := func() {
		u.area.Lock()
		g = u.area.Clone()
		a = make(ActiveSet, len(u.area.active))
		for c := range u.area.active {
			a.Add(c)
		}
		u.area.Unlock()
		st = u.Status()
	}
	if !u.call(read) {
		read()
	}
	return g, a, st
}

//ToggleRun switches the modes: edit -> run -> pause -> run, a finished universe goes back to edit
func (u *BaseUniverse) ToggleRun() {
	u.send(func() {
		switch u.mode() {
		case ModeEdit, ModePause:
			u.run()
		case ModeRun:
			u.stop()
		case ModeFinished:
			u.switchRunningState(ModeEdit)
			u.refreshView()
		}
	})
}

//Run starts the universe simulation, returns immediately
func (u *BaseUniverse) Run() {
	u.send(func() {
		if m := u.mode(); m == ModeEdit || m == ModePause {
			u.run()
		}
	})
}

//Stop pauses the universe simulation, returns immediately
//the Status struct will be written the stateCh on finish
func (u *BaseUniverse) Stop() {
	u.send(u.stop)
}

//Step do one simulation step, returns immediately
//in the edit mode the universe is paused first, the running universe ignores it
//the Status struct will be written to the stateCh on start and on finish
func (u *BaseUniverse) Step() {
	u.send(func() {
		switch u.mode() {
		case ModeEdit:
			u.switchRunningState(ModePause)
			u.step(ModePause)
		case ModePause:
			u.step(ModePause)
		}
	})
}

//Clear clears the universe (kill all cells and reset all counters), returns immediately
//the Status struct will be written to the stateCh on finish
func (u *BaseUniverse) Clear() {
	u.send(u.clear)
}

//Close stops the main loop and waits for it, queued commands are dropped
//the stateCh must be drained by the caller, otherwise the loop can't reach the close
func (u *BaseUniverse) Close() {
	u.closeOnce.Do(func() {
		u.closeCh <- true
	})
	<-u.done
}

//send queues the command for the main loop
//returns false when the universe is closed
func (u *BaseUniverse) send(cmd func()) bool {
	select {
	case <-u.done:
		return false
	default:
	}
	select {
	case u.controlCh <- cmd:
		return true
	case <-u.done:
		return false
	}
}

//call queues the command and waits until the main loop executes it
//returns false when the universe is closed before the command is executed
func (u *BaseUniverse) call(cmd func()) bool {
	executed := make(chan struct{})
	if !u.send(func() {
		cmd()
		close(executed)
	}) {
		return false
	}
	select {
	case <-executed:
		return true
	case <-u.done:
		//the loop is gone, the command either ran before it or never will
		select {
		case <-executed:
			return true
		default:
			return false
		}
	}
}

//mainLoop - the main cycle, should start as a goroutine
//waits for command and executes
func (u *BaseUniverse) mainLoop() {
	var c = false
	for !c {
		select {
		case cmd := <-u.controlCh:
			cmd()
		case c = <-u.closeCh:
		}
	}
	u.stopTicker()
	close(u.done)
}

//mode returns the current running mode
func (u *BaseUniverse) mode() RunningState {
	u.state.Lock()
	defer u.state.Unlock()
	return u.state.RunningMode
}

//editable reports whether the grid can be changed out of band in the current mode
//random data replaces the whole field, so it is also accepted by the finished universe
func (u *BaseUniverse) editable(replaces bool) bool {
	switch u.mode() {
	case ModeEdit, ModePause:
		return true
	case ModeFinished:
		return replaces
	}
	return false
}

//settle places the Cell at position x,y
func (u *BaseUniverse) settle(vc [][]int, entity Cell) {
	for _, v := range vc {
		if len(v) < 2 {
			continue
		}
		u.area.Set(v[0], v[1], entity)
	}
}

//resync recomputes the active chunks after the grid was changed out of band
func (u *BaseUniverse) resync() {
	u.area.Lock()
	u.area.active = ComputeActiveChunks(u.area.Grid, u.options.ChunkSize)
	chunks := u.area.active.Len()
	live := u.area.LiveCells()
	u.area.Unlock()

	u.state.Lock()
	u.state.LiveCells = live
	u.state.ActiveChunks = chunks
	u.state.Unlock()
}

//switchRunningState switch the state of the universe to RunningState
//also writes the new state to the stateCh to signal upper control software
func (u *BaseUniverse) switchRunningState(to RunningState) {
	u.state.Lock()
	u.state.RunningMode = to
	st := u.state.Status
	u.state.Unlock()
	if u.stateCh != nil {
		u.stateCh <- st
	}
}

//run starts the universe simulation
//simulation will stop on Stop() calling or when the boundary conditions are reached
func (u *BaseUniverse) run() {
	u.switchRunningState(ModeRun)
	u.refreshView()
	stop := make(chan struct{})
	u.runStop = stop
	tick := func() {
		//the tick could be queued by the ticker which is already stopped
		if u.runStop != stop || u.mode() != ModeRun {
			return
		}
		u.step(ModeRun)
	}
	interval := u.options.Interval
	go func() {
		var c <-chan time.Time
		if interval > 0 {
			t := time.NewTicker(interval)
			defer t.Stop()
			c = t.C
		}
		for {
			if c != nil {
				select {
				case <-c:
				case <-stop:
					return
				}
			}
			select {
			case u.controlCh <- tick:
			case <-stop:
				return
			case <-u.done:
				return
			}
		}
	}()
}

//stopTicker stops the goroutine feeding the run ticks
func (u *BaseUniverse) stopTicker() {
	if u.runStop != nil {
		close(u.runStop)
		u.runStop = nil
	}
}

//stop pauses the universe running cycle
func (u *BaseUniverse) stop() {
	if u.mode() == ModeRun {
		u.stopTicker()
		u.switchRunningState(ModePause)
		u.refreshView()
	}
}

//step does the new one state calculation for entire universe and returns to the mode back
func (u *BaseUniverse) step(back RunningState) {
	u.switchRunningState(ModeStep)

	u.area.Lock()
	start := time.Now()
	st, err := u.nextIteration()
	elapsed := time.Since(start)
	u.area.Unlock()

	u.state.Lock()
	if err == nil {
		u.state.IterationNum++
		u.state.LiveCells = st.LiveCells
		u.state.ActiveChunks = st.ActiveChunks
		u.state.EvaluatedCells = st.EvaluatedCells
		u.state.IterationTime = elapsed
	}
	iter := u.state.IterationNum
	u.state.Unlock()

	finished := false
	switch {
	case err != nil:
		log.Printf("generation %d: %v", iter+1, err)
		finished = true
	case u.options.MaxSteps != 0 && iter >= u.options.MaxSteps:
		finished = true
	case u.options.StopWhenStable && (!st.Changed || st.LiveCells == 0):
		finished = true
	}
	if finished {
		u.stopTicker()
		u.switchRunningState(ModeFinished)
	} else {
		u.switchRunningState(back)
	}
	u.refreshView()
}

//clear clears the unvierse data, reset all counters
func (u *BaseUniverse) clear() {
	u.stopTicker()
	u.area.Lock()
	u.area.Clear()
	u.area.active = ActiveSet{}
	u.area.Unlock()

	u.state.Lock()
	u.state.IterationNum = 0
	u.state.LiveCells = 0
	u.state.ActiveChunks = 0
	u.state.EvaluatedCells = 0
	u.state.IterationTime = 0
	u.state.Unlock()
	u.switchRunningState(ModeEdit)
	u.refreshView()
}

//_nextIteration does one simulation cycle over the active chunks
//the simplest implementation: creates the new grid on each call,
//the new grid is stored to the universe replacing the old one
func (u *BaseUniverse) _nextIteration() (Stats, error) {
	next, active, st, err := StepWithStats(u.area.Grid, u.options.ChunkSize)
	if err != nil {
		return st, err
	}
	u.area.Grid = next
	u.area.active = active
	return st, nil
}

//refreshView calls Refresh event for all registered views
func (u *BaseUniverse) refreshView() {
	for _, v := range u.views {
		v.Refresh()
	}
}
