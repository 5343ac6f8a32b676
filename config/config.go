// Package config loads the small set of tunable almanac limits (slot
// capacity, lookup-table capacity, frame-tree depth) and a default
// planetary-constants dataset path from environment variables or an
// optional config file.
//
// This is scaffolding around the engine, not a CLI front end (the CLI
// itself stays an external collaborator): it exists so a caller can build
// an Almanac with non-default bounds without editing source constants.
package config

import (
	"github.com/pkg/errors"
	"github.com/spf13/viper"

	"github.com/haldring/daffodil/internal/frametree"
	"github.com/haldring/daffodil/internal/xlog"
	"github.com/haldring/daffodil/lut"
)

// Limits holds the almanac's fixed-capacity bounds.
type Limits struct {
	MaxLoaded     int
	MaxLUTEntries int
	MaxTreeDepth  int
	DatasetPath   string
}

// defaultMaxLoaded is the conventional almanac slot count (32 simultaneously
// loaded kernel files).
const defaultMaxLoaded = 32

// Defaults returns the engine's built-in limits, used when no
// configuration source overrides them.
func Defaults() Limits {
	return Limits{
		MaxLoaded:     defaultMaxLoaded,
		MaxLUTEntries: lut.MaxEntries,
		MaxTreeDepth:  frametree.MaxTreeDepth,
		DatasetPath:   "",
	}
}

// Load reads limits from environment variables (prefix DAFFODIL_, e.g.
// DAFFODIL_MAX_LOADED) and, if present, an optional config file named
// "daffodil" in configPaths (any of yaml/json/toml viper supports).
// Unset values fall back to Defaults(). A missing config file is not an
// error — env vars and built-in defaults are sufficient on their own.
func Load(configPaths ...string) (Limits, error) {
	v := viper.New()
	v.SetEnvPrefix("DAFFODIL")
	v.AutomaticEnv()

	d := Defaults()
	v.SetDefault("max_loaded", d.MaxLoaded)
	v.SetDefault("max_lut_entries", d.MaxLUTEntries)
	v.SetDefault("max_tree_depth", d.MaxTreeDepth)
	v.SetDefault("dataset_path", d.DatasetPath)

	v.SetConfigName("daffodil")
	for _, p := range configPaths {
		v.AddConfigPath(p)
	}
	if len(configPaths) > 0 {
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return Limits{}, errors.Wrap(err, "reading daffodil config file")
			}
			xlog.Debugf("config: no daffodil config file found in %v, using env/defaults", configPaths)
		}
	}

	limits := Limits{
		MaxLoaded:     v.GetInt("max_loaded"),
		MaxLUTEntries: v.GetInt("max_lut_entries"),
		MaxTreeDepth:  v.GetInt("max_tree_depth"),
		DatasetPath:   v.GetString("dataset_path"),
	}
	if limits.MaxLoaded <= 0 || limits.MaxLUTEntries <= 0 || limits.MaxTreeDepth <= 0 {
		return Limits{}, errors.New("config: limits must be positive")
	}
	if limits.MaxTreeDepth > frametree.MaxTreeDepth {
		return Limits{}, errors.Errorf("config: max_tree_depth %d exceeds the engine's compiled maximum %d", limits.MaxTreeDepth, frametree.MaxTreeDepth)
	}
	return limits, nil
}
