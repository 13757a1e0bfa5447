package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strings"
	"time"

	"github.com/integrii/flaggy"
	"gopkg.in/yaml.v3"

	"chunklife/src/universe"
)

var (
	ErrUnknownEngine   = errors.New("unknown engine")
	ErrUnknownTemplate = errors.New("unknown template")
	ErrInvalidValue    = errors.New("invalid value")
)

//DefHeadlessSteps limits the headless run when max steps is not configured
const DefHeadlessSteps = 1000

//Config is the application configuration
//the sources are applied in order: defaults, the yaml file, the command line
type Config struct {
	ConfigFile     string        `yaml:"-"`
	Width          int           `yaml:"width"`      //0 - derive from the terminal size
	Height         int           `yaml:"height"`     //0 - derive from the terminal size
	ChunkSize      int           `yaml:"chunk_size"` //performance only, no effect on the simulation
	Random         bool          `yaml:"random"`     //settle the field with random data on start
	Density        float64       `yaml:"density"`
	Interval       time.Duration `yaml:"interval"`
	MaxSteps       int           `yaml:"max_steps"`
	StopWhenStable bool          `yaml:"stop_when_stable"`
	Seed           int64         `yaml:"seed"`
	Engine         string        `yaml:"engine"`
	Template       string        `yaml:"template"`
	Interactive    bool          `yaml:"interactive"`
}

//Default returns the configuration with default values
func Default() Config {
	o := universe.DefaultUniverseOptions
	return Config{
		ChunkSize: o.ChunkSize,
		Density:   o.Density,
		Interval:  o.Interval,
		MaxSteps:  o.MaxSteps,
		Engine:    universe.DefEngine,
	}
}

//Bind registers the command line flags writing into c
func (c *Config) Bind(p *flaggy.Parser) {
	p.ShowHelpOnUnexpected = true
	p.String(&c.ConfigFile, "f", "config", "Path to the yaml configuration file")
	p.Int(&c.Width, "x", "width", "Width of a simulation field, 0 to fit the terminal")
	p.Int(&c.Height, "y", "height", "Height of a simulation field, 0 to fit the terminal")
	p.Int(&c.ChunkSize, "c", "chunk", "Chunk size in cells, tunes the skipping of quiet areas")
	p.Duration(&c.Interval, "i", "interval", "Simulation speed (interval between the steps) in format the number with 'ms' suffix, for example 150ms")
	p.Int(&c.MaxSteps, "s", "maxSteps", "Limit the simulation to maxSteps, 0 - unlimited")
	p.Bool(&c.StopWhenStable, "", "stable", "Finish the run when a generation changes nothing")
	p.Bool(&c.Interactive, "n", "interactive", "Start interactive mode")
	p.Bool(&c.Random, "r", "random", "Settle with random data")
	p.Float64(&c.Density, "d", "density", "Density of the random data between 0 and 1")
	p.Int64(&c.Seed, "", "seed", "Seed of the random data, 0 - seeded from the clock")
	p.String(&c.Engine, "e", "engine", "Engine to use ["+strings.Join(universe.EngineNames(), "|")+"]")
	p.String(&c.Template, "t", "template", "Settle the template on start ["+strings.Join(templateNames(), "|")+"]")
}

//Parse applies the yaml file and the command line arguments over the defaults
//only the flags present in args override the file, even when given the default value
func Parse(p *flaggy.Parser, args []string) (Config, error) {
	cli := Default()
	cli.Bind(p)
	if err := p.ParseArgs(args); err != nil {
		return Config{}, err
	}
	if cli.ConfigFile == "" {
		return cli, cli.Validate()
	}
	file, err := Load(cli.ConfigFile)
	if err != nil {
		return Config{}, err
	}
	c := Overlay(file, cli, setFlags(args))
	return c, c.Validate()
}

//flagNames maps the short and long flag names of Bind to the long ones
var flagNames = map[string]string{
	"f": "config", "config": "config",
	"x": "width", "width": "width",
	"y": "height", "height": "height",
	"c": "chunk", "chunk": "chunk",
	"i": "interval", "interval": "interval",
	"s": "maxSteps", "maxSteps": "maxSteps",
	"stable": "stable",
	"n": "interactive", "interactive": "interactive",
	"r": "random", "random": "random",
	"d": "density", "density": "density",
	"seed": "seed",
	"e": "engine", "engine": "engine",
	"t": "template", "template": "template",
}

//setFlags collects the long names of the flags given in args
//both -name and --name are accepted, with the value inline after '=' or as the next argument
func setFlags(args []string) map[string]bool {
	set := map[string]bool{}
	for _, a := range args {
		if a == "--" {
			break
		}
		if !strings.HasPrefix(a, "-") {
			continue
		}
		name := strings.TrimLeft(a, "-")
		if i := strings.IndexByte(name, '='); i >= 0 {
			name = name[:i]
		}
		if long, ok := flagNames[name]; ok {
			set[long] = true
		}
	}
	return set
}

//Overlay returns base with the fields of cli whose flags are in set
//set holds long flag names, as returned by setFlags
func Overlay(base Config, cli Config, set map[string]bool) Config {
	c := base
	if set["config"] {
		c.ConfigFile = cli.ConfigFile
	}
	if set["width"] {
		c.Width = cli.Width
	}
	if set["height"] {
		c.Height = cli.Height
	}
	if set["chunk"] {
		c.ChunkSize = cli.ChunkSize
	}
	if set["random"] {
		c.Random = cli.Random
	}
	if set["density"] {
		c.Density = cli.Density
	}
	if set["interval"] {
		c.Interval = cli.Interval
	}
	if set["maxSteps"] {
		c.MaxSteps = cli.MaxSteps
	}
	if set["stable"] {
		c.StopWhenStable = cli.StopWhenStable
	}
	if set["seed"] {
		c.Seed = cli.Seed
	}
	if set["engine"] {
		c.Engine = cli.Engine
	}
	if set["template"] {
		c.Template = cli.Template
	}
	if set["interactive"] {
		c.Interactive = cli.Interactive
	}
	return c
}

//Validate checks the values, the errors wrap the universe errors where they apply
func (c Config) Validate() error {
	if c.Width < 0 || c.Height < 0 {
		return fmt.Errorf("field %dx%d: %w", c.Width, c.Height, universe.ErrInvalidDimension)
	}
	if c.ChunkSize < 1 {
		return fmt.Errorf("chunk %d: %w", c.ChunkSize, universe.ErrInvalidChunkSize)
	}
	if c.Density < 0 || c.Density > 1 || math.IsNaN(c.Density) {
		return fmt.Errorf("density %v: %w", c.Density, universe.ErrInvalidDensity)
	}
	if c.Interval < 0 {
		return fmt.Errorf("interval %v: %w", c.Interval, ErrInvalidValue)
	}
	if c.MaxSteps < 0 {
		return fmt.Errorf("maxSteps %d: %w", c.MaxSteps, ErrInvalidValue)
	}
	if _, ok := universe.Engines[c.Engine]; !ok {
		return fmt.Errorf("%q: %w", c.Engine, ErrUnknownEngine)
	}
	if c.Template != "" {
		if _, ok := universe.TemplateByName(c.Template); !ok {
			return fmt.Errorf("%q: %w", c.Template, ErrUnknownTemplate)
		}
	}
	return nil
}

//UniverseOptions converts the configuration, zero dimensions are replaced with the given field size
func (c Config) UniverseOptions(fieldWidth int, fieldHeight int) universe.Options {
	o := universe.DefaultUniverseOptions
	o.Width, o.Height = c.Width, c.Height
	if o.Width == 0 {
		o.Width = fieldWidth
	}
	if o.Height == 0 {
		o.Height = fieldHeight
	}
	o.ChunkSize = c.ChunkSize
	o.Density = c.Density
	o.Interval = c.Interval
	o.MaxSteps = c.MaxSteps
	o.StopWhenStable = c.StopWhenStable
	o.Seed = c.Seed
	if !c.Interactive && o.MaxSteps == 0 {
		o.MaxSteps = DefHeadlessSteps
	}
	return o
}

func templateNames() []string {
	names := make([]string, 0, len(universe.DefaultTemplates))
	for _, t := range universe.DefaultTemplates {
		names = append(names, t.Name)
	}
	return names
}
