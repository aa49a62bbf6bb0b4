package config

import (
	"fmt"
	"time"

	"go.yaml.in/yaml/v4"
)

// Duration reads Go duration strings such as "30s" from YAML.
type Duration time.Duration

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}

	duration, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("couldn't parse duration: %w", err)
	}

	*d = Duration(duration)
	return nil
}

func (d Duration) Duration() time.Duration {
	return time.Duration(d)
}
