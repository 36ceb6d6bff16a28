package core

import (
	"strconv"
	"strings"
)

// FlexInt is a non-negative integer decoded leniently from JSON: it accepts
// a number, a numeric string, null, or garbage. Non-numeric input becomes 0
// and negative values are clamped to 0, so a decoded FlexInt is always a
// valid headcount.
type FlexInt int

func (i *FlexInt) UnmarshalJSON(b []byte) error {
	s := strings.Trim(strings.TrimSpace(string(b)), `"`)
	if s == "" || s == "null" {
		*i = 0
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		// "12.7" style input truncates like integer parsing would
		f, ferr := strconv.ParseFloat(s, 64)
		if ferr != nil {
			*i = 0
			return nil
		}
		n = int(f)
	}
	if n < 0 {
		n = 0
	}
	*i = FlexInt(n)
	return nil
}

func (i FlexInt) Int() int { return int(i) }
