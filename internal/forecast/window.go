package forecast

// Window selects how much of the forecast a reply covers.
type Window int

const (
	// Window24h summarizes the current UTC calendar date.
	Window24h Window = iota
	// Window3Days summarizes up to three distinct dates.
	Window3Days
)

// Days returns the length of the upstream request window in days.
func (w Window) Days() int {
	if w == Window3Days {
		return 3
	}
	return 1
}

func (w Window) String() string {
	if w == Window3Days {
		return "3d"
	}
	return "24h"
}
