package model1

import (
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/fvbommel/sortorder"
)

// Less returns true if v1 sorts before v2 for the given value kind.
// Equal values fall back to the row ids to keep orderings stable.
func Less(kind Kind, id1, id2, v1, v2 string) bool {
	if v1 == v2 {
		return sortorder.NaturalLess(id1, id2)
	}
	switch kind {
	case KindNumber:
		return lessNumber(v1, v2)
	case KindDuration:
		return durationToSeconds(v1) < durationToSeconds(v2)
	case KindCapacity:
		return lessCapacity(v1, v2)
	default:
		return sortorder.NaturalLess(v1, v2)
	}
}

func lessCapacity(s1, s2 string) bool {
	b1, err1 := humanize.ParseBytes(s1)
	b2, err2 := humanize.ParseBytes(s2)
	if err1 != nil || err2 != nil {
		return sortorder.NaturalLess(s1, s2)
	}
	return b1 < b2
}

func lessNumber(s1, s2 string) bool {
	v1, v2 := strings.ReplaceAll(s1, ",", ""), strings.ReplaceAll(s2, ",", "")
	f1, err1 := strconv.ParseFloat(v1, 64)
	f2, err2 := strconv.ParseFloat(v2, 64)
	if err1 != nil || err2 != nil {
		return sortorder.NaturalLess(v1, v2)
	}
	return f1 < f2
}

var durationUnits = map[rune]int64{
	'y': 365 * 24 * 3600,
	'd': 24 * 3600,
	'h': 3600,
	'm': 60,
	's': 1,
}

// durationToSeconds reads compact ages such as 2d3h. Anything else is 0.
func durationToSeconds(d string) int64 {
	var total, acc int64
	for _, r := range d {
		if r >= '0' && r <= '9' {
			acc = acc*10 + int64(r-'0')
			continue
		}
		unit, ok := durationUnits[r]
		if !ok {
			return 0
		}
		total, acc = total+acc*unit, 0
	}
	return total
}

// Truncate cuts s to width runes, marking the cut with an ellipsis.
func Truncate(s string, width int) string {
	if width <= 0 {
		return s
	}
	rr := []rune(s)
	if len(rr) <= width {
		return s
	}
	if width == 1 {
		return "…"
	}
	return string(rr[:width-1]) + "…"
}
