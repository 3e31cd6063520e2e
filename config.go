package main

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"qfield/quantum"
)

// Config holds the viewer settings.
type Config struct {
	Qubits    int     // initial register size when no circuit is loaded
	MaxQubits int     // upper bound for the +/- control and the simulator
	Circuit   string  // optional OpenQASM file to load at start
	LogLevel  string  // debug, info, warn, error
	LogFile   string  // log destination while the TUI owns the terminal
	Headless  bool    // print the final state and exit
	Threshold float64 // magnitude below which a basis state is not drawn
	K         float64 // field wave number
	Omega     float64 // field angular frequency
}

func NewConfig() *Config {
	return &Config{
		Qubits:    3,
		MaxQubits: 10,
		LogLevel:  "info",
		Threshold: 1e-3,
		K:         40,
		Omega:     5,
	}
}

// LoadConfig resolves flags, QFIELD_* environment variables and an optional
// config file, in that order of precedence, over NewConfig defaults.
func LoadConfig(args []string) (*Config, error) {
	def := NewConfig()

	fs := pflag.NewFlagSet("qfield", pflag.ContinueOnError)
	fs.Int("qubits", def.Qubits, "initial number of qubits")
	fs.Int("max-qubits", def.MaxQubits, "largest register the viewer will simulate")
	fs.String("circuit", def.Circuit, "OpenQASM 2.0 file to load")
	fs.String("log-level", def.LogLevel, "log level (debug, info, warn, error)")
	fs.String("log-file", def.LogFile, "write logs to this file")
	fs.Bool("headless", def.Headless, "print the final state vector and exit")
	fs.Float64("threshold", def.Threshold, "hide basis states with smaller magnitude")
	fs.Float64("k", def.K, "interference field wave number")
	fs.Float64("omega", def.Omega, "interference field angular frequency")
	configFile := fs.String("config", "", "config file (yaml, toml or json)")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	v := viper.New()
	v.SetEnvPrefix("QFIELD")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindPFlags(fs); err != nil {
		return nil, errors.Wrap(err, "bind flags")
	}
	if *configFile != "" {
		v.SetConfigFile(*configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "read config %s", *configFile)
		}
	}

	cfg := &Config{
		Qubits:    v.GetInt("qubits"),
		MaxQubits: v.GetInt("max-qubits"),
		Circuit:   v.GetString("circuit"),
		LogLevel:  v.GetString("log-level"),
		LogFile:   v.GetString("log-file"),
		Headless:  v.GetBool("headless"),
		Threshold: v.GetFloat64("threshold"),
		K:         v.GetFloat64("k"),
		Omega:     v.GetFloat64("omega"),
	}
	cfg.clamp()
	return cfg, nil
}

// clamp keeps the register sizes within what the engine will allocate.
func (c *Config) clamp() {
	c.MaxQubits = min(max(c.MaxQubits, 1), quantum.MaxQubits)
	c.Qubits = clampQubits(c.Qubits, c.MaxQubits)
	if c.Threshold < 0 {
		c.Threshold = 0
	}
}

func clampQubits(n, maxQubits int) int {
	return min(max(n, 1), maxQubits)
}
