package stats

import "fmt"

// InsufficientDataError reports that an operation received fewer aligned data
// points than it needs. Callers render Needed so the client can show
// "Need at least N data points" instead of a generic failure.
type InsufficientDataError struct {
	Op     string
	Needed int
	Got    int
}

func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("%s needs at least %d data points, got %d", e.Op, e.Needed, e.Got)
}

// UndefinedCorrelationError reports that a series has zero variance, so the
// statistic is undefined. This is distinct from a valid coefficient of 0:
// "no correlation" and "correlation cannot be computed" must not be conflated.
type UndefinedCorrelationError struct {
	Series string
}

func (e *UndefinedCorrelationError) Error() string {
	return fmt.Sprintf("zero variance in %s series: statistic is undefined", e.Series)
}
