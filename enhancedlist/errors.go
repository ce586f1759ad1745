package enhancedlist

import "fmt"

// ConfigurationError reports a call made while a precondition of the list
// configuration is not met, such as enabling swipe-to-dismiss without a
// dismiss callback. It is never retried.
type ConfigurationError struct {
	Op     string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("enhancedlist: %s: %s", e.Op, e.Reason)
}

// BoundsError reports a row position outside the data source.
type BoundsError struct {
	Position int
	Length   int
}

func (e *BoundsError) Error() string {
	return fmt.Sprintf("enhancedlist: position %d out of range [0, %d)", e.Position, e.Length)
}

func configError(op, reason string) error {
	return &ConfigurationError{Op: op, Reason: reason}
}
