package validate

import (
	"errors"
	"fmt"
	"strconv"
)

// ErrNotANumber is returned when a path identifier is not an integer.
var ErrNotANumber = errors.New("input must be a number")

// ParseID converts a path segment into an integer identifier. The whole segment
// must be numeric: "12abc" is rejected just like "foo".
func ParseID(s string) (int, error) {
	id, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrNotANumber, s)
	}
	return id, nil
}
