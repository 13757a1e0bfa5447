package main

import (
	"fmt"
	"log"
	"os"

	"github.com/integrii/flaggy"

	"chunklife/src/config"
	"chunklife/src/universe"
	"chunklife/src/view"
)

func main() {
	cfg, err := config.Parse(flaggy.DefaultParser, os.Args[1:])
	if err != nil {
		flaggy.ShowHelpAndExit(err.Error())
	}

	if cfg.Interactive {
		runInteractive(cfg)
		return
	}
	runHeadless(cfg)
}

func runInteractive(cfg config.Config) {
	v := view.NewViewTerminal()
	w, h := v.FieldSize()
	o := cfg.UniverseOptions(w, h)

	u, err := universe.Engines[cfg.Engine](&o, nil)
	if err != nil {
		v.Close()
		log.Fatalf("create universe: %v", err)
	}
	settle(u, cfg)
	u.RegisterViewer(v)
	v.Start()
	u.Close()
}

func runHeadless(cfg config.Config) {
	o := cfg.UniverseOptions(universe.DefWidth, universe.DefHeight)
	stateCh := make(chan universe.Status, 10) //the buffered channel to getting the universe status

	u, err := universe.Engines[cfg.Engine](&o, stateCh)
	if err != nil {
		log.Fatalf("create universe: %v", err)
	}
	if cfg.Template == "" && !cfg.Random {
		cfg.Template = "testSample1"
	}
	settle(u, cfg)

	out := view.NewConsoleOut(os.Stdout, true, o.Width <= 80 && o.Height <= 40)
	u.RegisterViewer(out)
	fmt.Printf("\"The Life\" game simulation started...\n")
	out.Start()
	u.Run()
	for st := range stateCh {
		if st.RunningMode == universe.ModeFinished {
			break
		}
	}
	u.Close()
}

//settle populates the field, random data pauses the universe
func settle(u universe.Universe, cfg config.Config) {
	if cfg.Template != "" {
		u.SettleTemplate(cfg.Template)
	}
	if cfg.Random {
		u.SettleWithRandomData(cfg.Density)
	}
}
