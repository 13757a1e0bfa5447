package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/integrii/flaggy"

	"chunklife/src/universe"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "life.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDecode(t *testing.T) {
	c, err := Decode([]byte(`
width: 120
height: 80
chunk_size: 16
random: true
density: 0.25
interval: 50ms
engine: doubleBuffer
`))
	if err != nil {
		t.Fatal(err)
	}
	if c.Width != 120 || c.Height != 80 || c.ChunkSize != 16 || !c.Random || c.Density != 0.25 {
		t.Fatalf("unexpected config %+v", c)
	}
	if c.Interval != 50*time.Millisecond || c.Engine != "doubleBuffer" {
		t.Fatalf("unexpected config %+v", c)
	}
	//keys absent from the file keep their defaults
	if c.MaxSteps != Default().MaxSteps {
		t.Fatalf("maxSteps %d, want default", c.MaxSteps)
	}
}

func TestDecode_Empty(t *testing.T) {
	c, err := Decode(nil)
	if err != nil {
		t.Fatal(err)
	}
	if c != Default() {
		t.Fatalf("empty file gives %+v", c)
	}
}

func TestDecode_UnknownKey(t *testing.T) {
	if _, err := Decode([]byte("wraparound: true\n")); err == nil {
		t.Fatal("unknown key accepted")
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("error = %v, want not exist", err)
	}
}

func TestParse_FlagsOverrideFile(t *testing.T) {
	path := writeConfig(t, "width: 100\nheight: 50\nchunk_size: 8\nengine: full\n")
	c, err := Parse(flaggy.NewParser("test"), []string{"-f", path, "-x", "64", "--engine", "chunked", "-r", "-d", "0.5"})
	if err != nil {
		t.Fatal(err)
	}
	if c.Width != 64 || c.Height != 50 || c.ChunkSize != 8 {
		t.Fatalf("dimensions %dx%d chunk %d", c.Width, c.Height, c.ChunkSize)
	}
	if !c.Random || c.Density != 0.5 {
		t.Fatalf("random %v density %v", c.Random, c.Density)
	}
	//chunked is the default value, the given flag still overrides the file
	if c.Engine != "chunked" {
		t.Fatalf("engine %q, want the flag value", c.Engine)
	}
	if c.ConfigFile != path {
		t.Fatalf("config file %q", c.ConfigFile)
	}
}

func TestParse_DefaultValuedFlagsOverrideFile(t *testing.T) {
	path := writeConfig(t, "width: 100\nmax_steps: 50\nseed: 9\n")
	c, err := Parse(flaggy.NewParser("test"), []string{"--config", path, "-x", "0", "--maxSteps=0"})
	if err != nil {
		t.Fatal(err)
	}
	if c.Width != 0 || c.MaxSteps != 0 {
		t.Fatalf("width %d maxSteps %d, want the flag values", c.Width, c.MaxSteps)
	}
	if c.Seed != 9 {
		t.Fatalf("seed %d, want the file value", c.Seed)
	}
}

func TestSetFlags(t *testing.T) {
	set := setFlags([]string{"-x=5", "--random=false", "-y", "7", "--seed", "-3", "-stable", "--", "-e"})
	want := map[string]bool{"width": true, "random": true, "height": true, "seed": true, "stable": true}
	if len(set) != len(want) {
		t.Fatalf("set flags %v, want %v", set, want)
	}
	for name := range want {
		if !set[name] {
			t.Errorf("%s is not reported as set", name)
		}
	}
}

func TestOverlay(t *testing.T) {
	base := Default()
	base.Width, base.Random = 100, true
	cli := Default()
	cli.Width, cli.Height = 0, 30
	c := Overlay(base, cli, map[string]bool{"width": true, "random": true})
	if c.Width != 0 || c.Random || c.Height != 0 {
		t.Fatalf("overlay %+v", c)
	}
}

func TestParse_WithoutFile(t *testing.T) {
	c, err := Parse(flaggy.NewParser("test"), []string{"-x", "10", "-y", "12", "-s", "7", "--stable", "--seed", "3", "-t", "glider", "-i", "20ms"})
	if err != nil {
		t.Fatal(err)
	}
	want := Default()
	want.Width, want.Height, want.MaxSteps, want.StopWhenStable, want.Seed, want.Template = 10, 12, 7, true, 3, "glider"
	want.Interval = 20 * time.Millisecond
	if c != want {
		t.Fatalf("config %+v, want %+v", c, want)
	}
}

func TestValidate(t *testing.T) {
	for _, tc := range []struct {
		name   string
		mutate func(c *Config)
		want   error
	}{
		{"negative width", func(c *Config) { c.Width = -1 }, universe.ErrInvalidDimension},
		{"zero chunk", func(c *Config) { c.ChunkSize = 0 }, universe.ErrInvalidChunkSize},
		{"density above one", func(c *Config) { c.Density = 1.5 }, universe.ErrInvalidDensity},
		{"negative density", func(c *Config) { c.Density = -0.5 }, universe.ErrInvalidDensity},
		{"negative interval", func(c *Config) { c.Interval = -time.Second }, ErrInvalidValue},
		{"negative max steps", func(c *Config) { c.MaxSteps = -2 }, ErrInvalidValue},
		{"unknown engine", func(c *Config) { c.Engine = "multithreaded" }, ErrUnknownEngine},
		{"unknown template", func(c *Config) { c.Template = "spaceship" }, ErrUnknownTemplate},
	} {
		t.Run(tc.name, func(t *testing.T) {
			c := Default()
			tc.mutate(&c)
			if err := c.Validate(); !errors.Is(err, tc.want) {
				t.Fatalf("Validate() = %v, want %v", err, tc.want)
			}
		})
	}
	if err := Default().Validate(); err != nil {
		t.Fatalf("defaults are invalid: %v", err)
	}
}

func TestUniverseOptions(t *testing.T) {
	c := Default()
	c.Width = 30
	c.ChunkSize = 4
	o := c.UniverseOptions(200, 60)
	if o.Width != 30 || o.Height != 60 || o.ChunkSize != 4 {
		t.Fatalf("options %+v", o)
	}
	if o.MaxSteps != DefHeadlessSteps {
		t.Fatalf("headless run is not limited: %d", o.MaxSteps)
	}

	c.Interactive = true
	if o := c.UniverseOptions(200, 60); o.MaxSteps != 0 {
		t.Fatalf("interactive run is limited to %d steps", o.MaxSteps)
	}
	c.Interactive = false
	c.MaxSteps = 40
	if o := c.UniverseOptions(200, 60); o.MaxSteps != 40 {
		t.Fatalf("configured max steps replaced with %d", o.MaxSteps)
	}
}
