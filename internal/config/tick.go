package config

import "github.com/spf13/pflag"

// TickConfig holds configuration for the tick command.
type TickConfig struct {
	Price       string
	Tick        string
	TickSpacing int
	LogLevel    string
}

// LoadTick merges config file, environment variables, and flags into TickConfig.
func LoadTick(cfgFile string, flags *pflag.FlagSet) (TickConfig, error) {
	v, err := newViper(cfgFile, flags, map[string]interface{}{
		"tick-spacing": 200,
		"log-level":    "info",
	})
	if err != nil {
		return TickConfig{}, err
	}

	return TickConfig{
		Price:       v.GetString("price"),
		Tick:        v.GetString("tick"),
		TickSpacing: v.GetInt("tick-spacing"),
		LogLevel:    v.GetString("log-level"),
	}, nil
}
