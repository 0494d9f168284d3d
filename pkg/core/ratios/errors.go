package ratios

import "fmt"

// UnknownRatioError signals a caller bug: the requested ratio name is not in
// the formula library. Missing data never produces this error; it produces a
// nil result value instead.
type UnknownRatioError struct {
	Name string
}

func (e *UnknownRatioError) Error() string {
	return fmt.Sprintf("unknown ratio %q: not in the formula library", e.Name)
}
