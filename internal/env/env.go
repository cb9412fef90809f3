// Package env reads process environment variables with defaults and
// required-value validation. Reads are always live: a value changed between
// two calls is reflected by the second call. Later setup steps (deploy
// preview parsing, branch selection) mutate the environment and expect
// earlier readers to observe the new values.
package env

import (
	"fmt"
	"os"
	"strings"
)

// Get returns the current value of name, or fallback if unset or empty.
func Get(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}

// Require returns the current value of name, failing with a configuration
// error identifying the variable when neither the environment nor fallback
// yields a non-empty value.
func Require(name, fallback string) (string, error) {
	if v := Get(name, fallback); v != "" {
		return v, nil
	}
	return "", fmt.Errorf("required environment variable %s is not set", name)
}

// Bool interprets name as a boolean. Unset or empty returns fallback.
// Accepted true values: "true", "1", "yes" (case-insensitive).
func Bool(name string, fallback bool) bool {
	v := os.Getenv(name)
	if v == "" {
		return fallback
	}
	switch strings.ToLower(v) {
	case "true", "1", "yes":
		return true
	default:
		return false
	}
}
