package config

import (
	"errors"
	"fmt"
)

// ErrConfigurationMissing marks a required credential that is not configured.
// It is never retried; callers surface the message as a setup instruction.
var ErrConfigurationMissing = errors.New("configuration missing")

// MissingError names the missing key and the env var that can provide it.
type MissingError struct {
	Key string
	Env string
}

func (e *MissingError) Error() string {
	return fmt.Sprintf("%s is not configured: set %s in .env.local or %s in the config file", e.Key, e.Env, e.Key)
}

// Is makes errors.Is(err, ErrConfigurationMissing) match any MissingError.
func (e *MissingError) Is(target error) bool {
	return target == ErrConfigurationMissing
}
