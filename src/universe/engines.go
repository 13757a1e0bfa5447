package universe

import (
	"sort"
)

//Engines maps the engine name to its constructor
var Engines = map[string]func(o *Options, stateCh chan Status) (Universe, error){
	"chunked": func(o *Options, stateCh chan Status) (Universe, error) {
		u, err := NewBaseUniverse(o, stateCh)
		if err != nil {
			return nil, err
		}
		return u, nil
	},
	"full":         NewFullScanUniverse,
	"doubleBuffer": NewDoubleBufferUniverse,
}

//DefEngine is used when no engine is configured
const DefEngine = "chunked"

//EngineNames returns the sorted engine names
func EngineNames() (engineNames []string) {
	engineNames = make([]string, 0, len(Engines))
	for k := range Engines {
		engineNames = append(engineNames, k)
	}
	sort.Strings(engineNames)
	return
}
