package domain

import (
	"fmt"
	"path/filepath"
	"time"
)

// ReplyTimeout parses the assistant timeout, falling back to DefaultReplyTimeout.
func (c *Config) ReplyTimeout() time.Duration {
	return parseDurationOr(c.Assistant.Timeout, DefaultReplyTimeout)
}

// Interval parses the schedule interval, falling back to DefaultInterval.
func (c *Config) Interval() time.Duration {
	return parseDurationOr(c.Schedule.Interval, DefaultInterval)
}

// FindModel searches the model catalog by name.
// Returns the option and true if found, empty option and false otherwise
func (c *Config) FindModel(name string) (ModelOption, bool) {
	for _, model := range c.Models {
		if model.Name == name {
			return model, true
		}
	}
	return ModelOption{}, false
}

// HasModel checks if a model with the given name exists in the catalog
func (c *Config) HasModel(name string) bool {
	_, exists := c.FindModel(name)
	return exists
}

// ModelNames returns the catalog names in declaration order.
func (c *Config) ModelNames() []string {
	names := make([]string, 0, len(c.Models))
	for _, model := range c.Models {
		names = append(names, model.Name)
	}
	return names
}

// InteractiveModel is the model the interactive shell starts with: the
// configured model, else the first catalog entry.
func (c *Config) InteractiveModel() string {
	if c.Assistant.Model != "" {
		return c.Assistant.Model
	}
	if len(c.Models) > 0 {
		return c.Models[0].Name
	}
	return ""
}

// AnswersPath is the full path of the answers log.
func (c *Config) AnswersPath() string {
	return filepath.Join(c.Logging.Dir, c.Logging.AnswersFile)
}

// DebugPath is the full path of the debug log.
func (c *Config) DebugPath() string {
	return filepath.Join(c.Logging.Dir, c.Logging.DebugFile)
}

// IntervalPresetDurations converts the minute presets into durations.
func (c *Config) IntervalPresetDurations() []time.Duration {
	out := make([]time.Duration, 0, len(c.Schedule.IntervalPresets))
	for _, minutes := range c.Schedule.IntervalPresets {
		if minutes > 0 {
			out = append(out, time.Duration(minutes)*time.Minute)
		}
	}
	return out
}

// SetInterval stores d in the config's string form.
func (c *Config) SetInterval(d time.Duration) error {
	if d <= 0 {
		return fmt.Errorf("interval must be > 0, got %s", d)
	}
	c.Schedule.Interval = d.String()
	return nil
}

// SetReplyTimeout stores d in the config's string form.
func (c *Config) SetReplyTimeout(d time.Duration) error {
	if d <= 0 {
		return fmt.Errorf("timeout must be > 0, got %s", d)
	}
	c.Assistant.Timeout = d.String()
	return nil
}

func parseDurationOr(value string, fallback time.Duration) time.Duration {
	if value == "" {
		return fallback
	}
	d, err := time.ParseDuration(value)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}
