package pipeline

import (
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/heatsvg/pkg/errors"
)

// LoadOptions reads options from a TOML file:
//
//	preset = "Heated Metal"
//	radius = 30
//	blur = 12
//
//	[fields]
//	x = "lon"
//	y = "lat"
//	weight = "count"
//
//	[output]
//	formats = ["svg", "png"]
//	background = "#ffffff"
//
// Explicit stops replace the preset:
//
//	[[gradient]]
//	stop = 0.0
//	color = "#000080"
//
// Unknown keys are rejected so typos do not silently fall back to defaults.
// The result is not yet validated.
func LoadOptions(path string) (Options, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return Options{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "config file %s", path)
		}
		return Options{}, fmt.Errorf("stat %s: %w", path, err)
	}

	var opts Options
	md, err := toml.DecodeFile(path, &opts)
	if err != nil {
		return Options{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Options{}, errors.New(errors.ErrCodeInvalidConfig, "%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	return opts, nil
}
