package orderkit

import (
	"fmt"

	"github.com/BurntSushi/toml"
	"github.com/orderkit/orderkit/envkit"
)

// Config holds the settings an Ordering is created with.
type Config struct {
	OrderParam       string `toml:"order_param"`
	DirectionParam   string `toml:"direction_param"`
	DefaultDirection string `toml:"default_direction"`
	View             string `toml:"view"`
	Locale           string `toml:"locale"`
}

// DefaultConfig returns the settings New uses.
func DefaultConfig() Config {
	return Config{
		OrderParam:       DefaultOrderName,
		DirectionParam:   DefaultDirectionName,
		DefaultDirection: string(Ascending),
		View:             DefaultView,
	}
}

// LoadConfig reads the toml file at path on top of DefaultConfig. Keys missing from the file keep their default.
func LoadConfig(path string) (Config, error) {
	config := DefaultConfig()
	if _, err := toml.DecodeFile(path, &config); err != nil {
		return config, fmt.Errorf("orderkit: could not read config %v: %w", path, err)
	}
	if err := config.Validate(); err != nil {
		return config, fmt.Errorf("orderkit: invalid config %v: %w", path, err)
	}
	return config, nil
}

// FromEnv overrides the settings from ORDERKIT_* environment variables.
func (c Config) FromEnv() Config {
	c.OrderParam = envkit.String("ORDERKIT_ORDER_PARAM", c.OrderParam)
	c.DirectionParam = envkit.String("ORDERKIT_DIRECTION_PARAM", c.DirectionParam)
	c.DefaultDirection = envkit.String("ORDERKIT_DEFAULT_DIRECTION", c.DefaultDirection)
	c.View = envkit.String("ORDERKIT_VIEW", c.View)
	c.Locale = envkit.String("ORDERKIT_LOCALE", c.Locale)
	return c
}

func (c Config) Validate() error {
	if c.OrderParam == "" {
		return fmt.Errorf("order_param must be set")
	}
	if c.DirectionParam == "" {
		return fmt.Errorf("direction_param must be set")
	}
	if c.OrderParam == c.DirectionParam {
		return fmt.Errorf("order_param and direction_param must differ, both are %q", c.OrderParam)
	}
	if c.DefaultDirection != "" {
		if _, ok := ParseDirection(c.DefaultDirection); !ok {
			return fmt.Errorf("default_direction must be ASC or DESC, got %q", c.DefaultDirection)
		}
	}
	return nil
}

// Apply sets the configured parameter names, default direction, view and locale on o.
// Empty settings leave o unchanged.
func (c Config) Apply(o *Ordering) {
	if c.OrderParam != "" {
		o.SetOrderName(c.OrderParam)
	}
	if c.DirectionParam != "" {
		o.SetDirectionName(c.DirectionParam)
	}
	if direction, ok := ParseDirection(c.DefaultDirection); ok {
		o.SetDefaultDirection(direction)
	}
	if c.View != "" {
		o.SetViewName(c.View)
	}
	if c.Locale != "" {
		o.SetLocale(c.Locale)
	}
}
