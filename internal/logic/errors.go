package logic

import "fmt"

// ConfigError reports an invalid palette, color name or hardware assignment.
// It is fatal at startup.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config: %s: %s", e.Field, e.Reason)
}

// HardwareError reports a failed pin read or LED write.
type HardwareError struct {
	Op  string // e.g. "read button", "flush"
	Err error
}

func (e *HardwareError) Error() string {
	return fmt.Sprintf("hardware: %s: %v", e.Op, e.Err)
}

func (e *HardwareError) Unwrap() error {
	return e.Err
}
