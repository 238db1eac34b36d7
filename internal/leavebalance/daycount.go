package leavebalance

import (
	"math"
	"time"
)

// InclusiveLeaveDays counts both boundary dates: a leave from Monday to
// Tuesday consumes 2 days. This is one more than the exclusive duration on
// purpose; contract expiry uses the exclusive convention (see the contract
// package), and the two must not be unified.
func InclusiveLeaveDays(start, end time.Time) int {
	return int(math.Ceil(end.Sub(start).Hours()/24)) + 1
}
