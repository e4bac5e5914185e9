package config

import (
	"fmt"
	"strings"

	"github.com/gobwas/glob"
)

// Validate checks a configuration and returns an error describing every
// invalid field.
func Validate(cfg *Config) error {
	var problems []string

	if len(cfg.Paths.Source) == 0 {
		problems = append(problems, "paths.source must contain at least one pattern")
	}

	for _, pattern := range cfg.Paths.Source {
		if _, err := glob.Compile(pattern, '/'); err != nil {
			problems = append(problems, fmt.Sprintf("paths.source pattern %q is invalid: %v", pattern, err))
		}
	}
	for _, pattern := range cfg.Paths.Ignore {
		if _, err := glob.Compile(pattern, '/'); err != nil {
			problems = append(problems, fmt.Sprintf("paths.ignore pattern %q is invalid: %v", pattern, err))
		}
	}

	if len(problems) > 0 {
		return fmt.Errorf("%s", strings.Join(problems, "; "))
	}
	return nil
}
