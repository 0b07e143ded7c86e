package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

const (
	CFG_OP             = "op"
	CFG_WINDOW_SIZE    = "window_size"
	CFG_THRESHOLD      = "threshold"
	CFG_VERIFY         = "verify"
	CFG_HISTOGRAM_BINS = "histogram_bins"
	CFG_OUTPUT         = "output"
	CFG_COLOR          = "color"
	CFG_MAX_RUNS       = "max_runs"
)

// EnvPrefix is prepended to every key when reading the environment, so
// window_size is read from MONOWINDOW_WINDOW_SIZE.
const EnvPrefix = "MONOWINDOW"

var (
	Ops     = []string{"max", "min", "shortest", "constrained", "jump", "limit", "equation"}
	Outputs = []string{"text", "json"}
)

var ErrInvalidConfig = errors.New("config: invalid value")

type Config struct {
	Op            string
	WindowSize    int64
	Threshold     float64
	Verify        bool
	HistogramBins int
	Output        string
	Color         bool
	MaxRuns       int
}

type LoadOptions struct {
	// ConfigFile is an optional yaml file.
	ConfigFile string
	// EnvFiles are loaded into the environment before it is read. Missing
	// files are skipped. Defaults to .env.
	EnvFiles []string
	// Overrides win over every other source, the cli passes the flags it saw.
	Overrides map[string]interface{}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(CFG_OP, "max")
	v.SetDefault(CFG_WINDOW_SIZE, 3)
	v.SetDefault(CFG_THRESHOLD, 0)
	v.SetDefault(CFG_VERIFY, false)
	v.SetDefault(CFG_HISTOGRAM_BINS, 0)
	v.SetDefault(CFG_OUTPUT, "text")
	v.SetDefault(CFG_COLOR, true)
	v.SetDefault(CFG_MAX_RUNS, 1024)
}

// Load resolves the configuration. Precedence from low to high: defaults,
// config file, environment (including env files), overrides.
func Load(opts LoadOptions) (*Config, error) {
	envFiles := opts.EnvFiles
	if envFiles == nil {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if _, err := os.Stat(f); err != nil {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return nil, errors.Wrapf(err, "load env file %s", f)
		}
	}

	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
		if ext := strings.ToLower(opts.ConfigFile); !strings.HasSuffix(ext, ".yaml") && !strings.HasSuffix(ext, ".yml") {
			v.SetConfigType("yaml")
		}
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "read config %s", opts.ConfigFile)
		}
	}
	for key, value := range opts.Overrides {
		v.Set(key, value)
	}

	c := &Config{
		Op:            strings.ToLower(v.GetString(CFG_OP)),
		WindowSize:    v.GetInt64(CFG_WINDOW_SIZE),
		Threshold:     v.GetFloat64(CFG_THRESHOLD),
		Verify:        v.GetBool(CFG_VERIFY),
		HistogramBins: v.GetInt(CFG_HISTOGRAM_BINS),
		Output:        strings.ToLower(v.GetString(CFG_OUTPUT)),
		Color:         v.GetBool(CFG_COLOR),
		MaxRuns:       v.GetInt(CFG_MAX_RUNS),
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func stringExists(s string, list []string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}

func (c *Config) Validate() error {
	if !stringExists(c.Op, Ops) {
		return errors.Wrapf(ErrInvalidConfig, "%s %q, want one of %s", CFG_OP, c.Op, strings.Join(Ops, "|"))
	}
	if !stringExists(c.Output, Outputs) {
		return errors.Wrapf(ErrInvalidConfig, "%s %q, want one of %s", CFG_OUTPUT, c.Output, strings.Join(Outputs, "|"))
	}
	if c.HistogramBins < 0 {
		return errors.Wrapf(ErrInvalidConfig, "%s %d is negative", CFG_HISTOGRAM_BINS, c.HistogramBins)
	}
	if c.MaxRuns < 0 {
		return errors.Wrapf(ErrInvalidConfig, "%s %d is negative", CFG_MAX_RUNS, c.MaxRuns)
	}
	return nil
}
