package grammar

import (
	"io"
	"log/slog"
	"regexp"
)

var defaultWhitespace = regexp.MustCompile(`\A\s+`)

type Config struct {
	// Whitespace is skipped before every token and pattern. Nil disables skipping.
	Whitespace *regexp.Regexp
	// ParseInfo makes rules that produce a node record their position in it.
	ParseInfo bool
	// IgnoreCase makes tokens match case-insensitively.
	IgnoreCase bool
	// RequireEOF fails the parse when input remains after the start rule.
	RequireEOF bool
	// Trace logs rule entry, success and failure at debug level.
	Trace  bool
	Logger *slog.Logger
}

type Option func(*Config)

func defaultConfig() Config {
	return Config{
		Whitespace: defaultWhitespace,
		RequireEOF: true,
		Logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// WithWhitespace sets the whitespace pattern. The pattern is anchored at the
// current position.
func WithWhitespace(re *regexp.Regexp) Option {
	return func(c *Config) {
		if re == nil {
			c.Whitespace = nil
			return
		}
		c.Whitespace = regexp.MustCompile(`\A(?:` + re.String() + `)`)
	}
}

func WithParseInfo(enabled bool) Option {
	return func(c *Config) {
		c.ParseInfo = enabled
	}
}

func WithIgnoreCase(enabled bool) Option {
	return func(c *Config) {
		c.IgnoreCase = enabled
	}
}

func WithRequireEOF(enabled bool) Option {
	return func(c *Config) {
		c.RequireEOF = enabled
	}
}

func WithTrace(enabled bool) Option {
	return func(c *Config) {
		c.Trace = enabled
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(c *Config) {
		if logger != nil {
			c.Logger = logger
		}
	}
}
