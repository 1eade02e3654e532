package generate

import (
	"errors"
	"fmt"
	"hash/fnv"
	"log/slog"
	"math/rand"
	"strconv"
	"time"
)

var (
	// ErrInvalidConfig is wrapped by every *ConfigError.
	ErrInvalidConfig = errors.New("generate: invalid configuration")
	// ErrNoViableRooms indicates no floor region reached RoomThreshold.
	ErrNoViableRooms = errors.New("generate: no viable rooms survived pruning")
)

// ConfigError describes one rejected Config field.
type ConfigError struct {
	Field  string
	Value  int
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("generate: %s=%d: %s", e.Field, e.Value, e.Reason)
}

func (e *ConfigError) Unwrap() error { return ErrInvalidConfig }

// DefaultBorderSize is the wall frame added around every generated cave.
const DefaultBorderSize = 5

// Config drives cave generation.
type Config struct {
	Width, Height       int
	Seed                string
	UseRandomSeed       bool // replace Seed with a time-derived one
	RandomFillPercent   int  // 0–100
	SmoothingIterations int
	WallThreshold       int // wall regions smaller than this become floor
	RoomThreshold       int // floor regions smaller than this become wall
	PassageRadius       int
	BorderSize          int
	Logger              *slog.Logger // nil discards
}

// DefaultConfig returns the standard tuning for an 80×48 cave.
func DefaultConfig() *Config {
	return &Config{
		Width:               80,
		Height:              48,
		UseRandomSeed:       true,
		RandomFillPercent:   47,
		SmoothingIterations: 5,
		WallThreshold:       50,
		RoomThreshold:       50,
		PassageRadius:       1,
		BorderSize:          DefaultBorderSize,
	}
}

// Validate reports the first field that would make generation meaningless.
func (c *Config) Validate() error {
	switch {
	case c.Width <= 0:
		return &ConfigError{"Width", c.Width, "must be positive"}
	case c.Height <= 0:
		return &ConfigError{"Height", c.Height, "must be positive"}
	case c.RandomFillPercent < 0 || c.RandomFillPercent > 100:
		return &ConfigError{"RandomFillPercent", c.RandomFillPercent, "must be within 0..100"}
	case c.SmoothingIterations < 0:
		return &ConfigError{"SmoothingIterations", c.SmoothingIterations, "must not be negative"}
	case c.WallThreshold < 0:
		return &ConfigError{"WallThreshold", c.WallThreshold, "must not be negative"}
	case c.RoomThreshold < 0:
		return &ConfigError{"RoomThreshold", c.RoomThreshold, "must not be negative"}
	case c.PassageRadius < 0:
		return &ConfigError{"PassageRadius", c.PassageRadius, "must not be negative"}
	case c.BorderSize < 0:
		return &ConfigError{"BorderSize", c.BorderSize, "must not be negative"}
	}
	return nil
}

func (c *Config) logger() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return slog.New(slog.DiscardHandler)
}

// resolveSeed returns the seed string this run will use.
func (c *Config) resolveSeed() string {
	if c.UseRandomSeed {
		return strconv.FormatInt(time.Now().UnixNano(), 10)
	}
	return c.Seed
}

// newRand derives a reproducible generator from a seed string.
func newRand(seed string) *rand.Rand {
	h := fnv.New64a()
	h.Write([]byte(seed)) //nolint:errcheck
	return rand.New(rand.NewSource(int64(h.Sum64())))
}
