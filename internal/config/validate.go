package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gobwas/glob"
)

var (
	// ErrInvalidFormat indicates an unsupported output format
	ErrInvalidFormat = errors.New("invalid output format")

	// ErrInvalidWidth indicates a negative output width
	ErrInvalidWidth = errors.New("invalid output width")

	// ErrInvalidPattern indicates a filter pattern that does not compile
	ErrInvalidPattern = errors.New("invalid filter pattern")

	// ErrInvalidDebounce indicates a non-positive watch debounce
	ErrInvalidDebounce = errors.New("invalid watch debounce")

	// ErrInvalidCapacity indicates a non-positive cache capacity
	ErrInvalidCapacity = errors.New("invalid cache capacity")

	// ErrEmptyServerName indicates a missing MCP server name
	ErrEmptyServerName = errors.New("empty mcp server name")
)

// Validate checks that the configuration is valid and complete.
// Every problem is reported, not just the first.
func Validate(cfg *Config) error {
	var errs []error

	if err := validateOutput(&cfg.Output); err != nil {
		errs = append(errs, err)
	}
	if err := validateFilter(&cfg.Filter); err != nil {
		errs = append(errs, err)
	}

	if cfg.Watch.Debounce <= 0 {
		errs = append(errs, fmt.Errorf("%w: debounce must be positive, got %s", ErrInvalidDebounce, cfg.Watch.Debounce))
	}
	if cfg.Cache.Capacity <= 0 {
		errs = append(errs, fmt.Errorf("%w: capacity must be positive, got %d", ErrInvalidCapacity, cfg.Cache.Capacity))
	}
	if strings.TrimSpace(cfg.MCP.Name) == "" {
		errs = append(errs, fmt.Errorf("%w: name is required", ErrEmptyServerName))
	}

	return joinErrors(errs)
}

func validateOutput(cfg *OutputConfig) error {
	var errs []error

	switch strings.ToLower(cfg.Format) {
	case FormatText, FormatJSON, FormatYAML:
	default:
		errs = append(errs, fmt.Errorf("%w: must be 'text', 'json' or 'yaml', got '%s'", ErrInvalidFormat, cfg.Format))
	}

	if cfg.MaxWidth < 0 {
		errs = append(errs, fmt.Errorf("%w: max_width cannot be negative, got %d", ErrInvalidWidth, cfg.MaxWidth))
	}

	return joinErrors(errs)
}

func validateFilter(cfg *FilterConfig) error {
	var errs []error

	for _, pattern := range cfg.Include {
		if _, err := glob.Compile(pattern); err != nil {
			errs = append(errs, fmt.Errorf("%w: include %q: %v", ErrInvalidPattern, pattern, err))
		}
	}
	for _, pattern := range cfg.Exclude {
		if _, err := glob.Compile(pattern); err != nil {
			errs = append(errs, fmt.Errorf("%w: exclude %q: %v", ErrInvalidPattern, pattern, err))
		}
	}

	return joinErrors(errs)
}

// validationErrors formats several problems as one error while keeping each
// reachable through errors.Is.
type validationErrors []error

func (e validationErrors) Error() string {
	msgs := make([]string, len(e))
	for i, err := range e {
		msgs[i] = err.Error()
	}
	return fmt.Sprintf("validation failed:\n  - %s", strings.Join(msgs, "\n  - "))
}

func (e validationErrors) Unwrap() []error { return e }

// joinErrors combines multiple errors into a single error with clear formatting.
func joinErrors(errs []error) error {
	switch len(errs) {
	case 0:
		return nil
	case 1:
		return errs[0]
	}

	// Flatten nested groups so the list stays one level deep.
	var flat validationErrors
	for _, err := range errs {
		var group validationErrors
		if errors.As(err, &group) {
			flat = append(flat, group...)
			continue
		}
		flat = append(flat, err)
	}
	return flat
}
