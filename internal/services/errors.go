package services

import "fmt"

// UnsupportedFeatureError reports that a resolved driver does not implement
// an optional capability the caller asked for.
type UnsupportedFeatureError struct {
	Driver  string
	Feature string
}

func (e *UnsupportedFeatureError) Error() string {
	return fmt.Sprintf("driver %q does not support %s", e.Driver, e.Feature)
}
