package config

import (
	"fmt"
	"time"
)

const (
	// DefaultMaxLineBytes is the longest line the scanner accepts (16 MiB).
	DefaultMaxLineBytes = 16 * 1024 * 1024

	// DefaultInitialBufferBytes is the scanner's starting buffer (64 KiB).
	DefaultInitialBufferBytes = 64 * 1024

	// DefaultMatchTimeout bounds the regex work spent on one line.
	DefaultMatchTimeout = 10 * time.Second

	// minBufferBytes keeps tiny buffers from turning every line into a grow.
	minBufferBytes = 16
)

// ScanConfig holds tuning knobs for reading a log file line by line
type ScanConfig struct {
	// MaxLineBytes is the maximum length of a single line, terminator
	// ("\n", "\r\n" or "\r") excluded. A longer line aborts the scan.
	// Default: 16 MiB
	MaxLineBytes int

	// InitialBufferBytes is the size of the first read buffer.
	// The buffer grows up to MaxLineBytes as needed.
	// Default: 64 KiB, must be <= MaxLineBytes
	InitialBufferBytes int

	// MatchTimeout bounds how long the pattern may spend on one line.
	// A timeout aborts the scan.
	// Default: 10s
	MatchTimeout time.Duration
}

// DefaultScanConfig returns the configuration the CLI runs with
func DefaultScanConfig() ScanConfig {
	return ScanConfig{
		MaxLineBytes:       DefaultMaxLineBytes,
		InitialBufferBytes: DefaultInitialBufferBytes,
		MatchTimeout:       DefaultMatchTimeout,
	}
}

// Validate checks if the configuration has valid values
func (c ScanConfig) Validate() error {
	if c.MaxLineBytes < minBufferBytes {
		return fmt.Errorf("max_line_bytes must be at least %d (got %d)", minBufferBytes, c.MaxLineBytes)
	}
	if c.InitialBufferBytes < minBufferBytes {
		return fmt.Errorf("initial_buffer_bytes must be at least %d (got %d)",
			minBufferBytes, c.InitialBufferBytes)
	}
	if c.InitialBufferBytes > c.MaxLineBytes {
		return fmt.Errorf("initial_buffer_bytes (%d) must be <= max_line_bytes (%d)",
			c.InitialBufferBytes, c.MaxLineBytes)
	}
	if c.MatchTimeout < 0 {
		return fmt.Errorf("match_timeout must not be negative (got %v)", c.MatchTimeout)
	}
	return nil
}

// WithDefaults returns a copy where zero fields are replaced by defaults
func (c ScanConfig) WithDefaults() ScanConfig {
	if c.MaxLineBytes == 0 {
		c.MaxLineBytes = DefaultMaxLineBytes
	}
	if c.InitialBufferBytes == 0 {
		c.InitialBufferBytes = DefaultInitialBufferBytes
		if c.InitialBufferBytes > c.MaxLineBytes {
			c.InitialBufferBytes = c.MaxLineBytes
		}
	}
	if c.MatchTimeout == 0 {
		c.MatchTimeout = DefaultMatchTimeout
	}
	return c
}

// String returns a human-readable representation of the config
func (c ScanConfig) String() string {
	return fmt.Sprintf("ScanConfig{MaxLineBytes: %d, InitialBufferBytes: %d, MatchTimeout: %v}",
		c.MaxLineBytes, c.InitialBufferBytes, c.MatchTimeout)
}
