// Package config reads job configuration from environment variables
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"remd/internal/platform/logger"
)

// Conf is a namespaced view over environment variables (e.g., "CORE_NAPR_", "SERVICE_PGSQL_")
// Use New() for global access, or Prefix("CORE_NAPR_") for module scopes.
type Conf struct{ prefix string }

// New creates a root Conf (no prefix)
func New() Conf { return Conf{} }

// Prefix creates a child Conf with an additional prefix, e.g. cfg.Prefix("CORE_NAPR_")
func (c Conf) Prefix(p string) Conf { return Conf{prefix: c.prefix + p} }

// Key returns the fully-qualified env var name, useful in operator-facing messages
func (c Conf) Key(k string) string { return c.prefix + k }

func (c Conf) lookup(k string) string { return strings.TrimSpace(os.Getenv(c.Key(k))) }

// Has reports whether the key is set to a non-empty value
func (c Conf) Has(key string) bool { return c.lookup(key) != "" }

// MayString returns the value or def if missing/empty
func (c Conf) MayString(key, def string) string {
	if v := c.lookup(key); v != "" {
		return v
	}
	return def
}

// MayInt returns the value or def if missing/empty; logs and returns def if invalid
func (c Conf) MayInt(key string, def int) int {
	s := c.lookup(key)
	if s == "" {
		return def
	}
	if v, err := strconv.Atoi(s); err == nil {
		return v
	}
	logger.Get().Warn().Str("key", c.Key(key)).Str("value", s).Int("default", def).Msg("invalid int; using default")
	return def
}

// MayBool returns the value or def if missing/empty; logs and returns def if invalid
func (c Conf) MayBool(key string, def bool) bool {
	s := c.lookup(key)
	if s == "" {
		return def
	}
	if v, err := strconv.ParseBool(s); err == nil {
		return v
	}
	logger.Get().Warn().Str("key", c.Key(key)).Str("value", s).Bool("default", def).Msg("invalid bool; using default")
	return def
}

// MayDuration returns the value or def if missing/empty; logs and returns def if invalid
func (c Conf) MayDuration(key string, def time.Duration) time.Duration {
	s := c.lookup(key)
	if s == "" {
		return def
	}
	if d, err := time.ParseDuration(s); err == nil {
		return d
	}
	logger.Get().Warn().Str("key", c.Key(key)).Str("value", s).Dur("default", def).Msg("invalid duration; using default")
	return def
}

// MayLocation resolves an IANA zone name ("Europe/Moscow", "UTC", "Local").
// Missing or unknown zones log a warning and fall back to time.Local
func (c Conf) MayLocation(key string) *time.Location {
	s := c.lookup(key)
	if s == "" || strings.EqualFold(s, "local") {
		return time.Local
	}
	loc, err := time.LoadLocation(s)
	if err != nil {
		logger.Get().Warn().Str("key", c.Key(key)).Str("value", s).Err(err).Msg("unknown time zone; using local")
		return time.Local
	}
	return loc
}

// MayEnum returns the lowercased value if it is one of allowed (case-insensitive).
// Missing values return def; unknown values log a warning and return def
func (c Conf) MayEnum(key, def string, allowed ...string) string {
	s := c.lookup(key)
	if s == "" {
		return def
	}
	for _, a := range allowed {
		if strings.EqualFold(s, a) {
			return strings.ToLower(a)
		}
	}
	logger.Get().Warn().Str("key", c.Key(key)).Str("value", s).Strs("allowed", allowed).Str("default", def).Msg("invalid enum value; using default")
	return def
}
