package contract

import (
	"math"
	"time"
)

// DaysUntilExpiry is the exclusive day count used for contract expiry: a
// contract ending tomorrow has 1 day remaining. This deliberately differs
// from the inclusive convention used for leave consumption
// (leavebalance.InclusiveLeaveDays); keep the two apart.
func DaysUntilExpiry(today, end time.Time) int {
	return int(math.Ceil(end.Sub(today).Hours() / 24))
}
