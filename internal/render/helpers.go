package render

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

var (
	hundred = decimal.NewFromInt(100)
	million = decimal.NewFromInt(1_000_000)
	billion = decimal.NewFromInt(1_000_000_000)
)

// MajorUnit renders an amount stored in minor units, e.g. cents.
func MajorUnit(minor int64) string {
	return decimal.NewFromInt(minor).Div(hundred).StringFixed(2)
}

// MinorUnit parses a major unit amount back into minor units.
func MinorUnit(major string) (int64, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(major))
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q: %w", major, err)
	}
	return d.Mul(hundred).Round(0).IntPart(), nil
}

// Bytes renders a byte count with SI units. Zero means no limit.
func Bytes(n int64) string {
	if n <= 0 {
		return Unlimited
	}
	return humanize.Bytes(uint64(n))
}

// Megabits renders a bit rate in Mbps. Zero means no limit.
func Megabits(bits int64) string {
	if bits <= 0 {
		return Unlimited
	}
	return decimal.NewFromInt(bits).Div(million).String() + " Mbps"
}

// GigaBytes renders a byte count in GB. Zero means no limit.
func GigaBytes(n int64) string {
	if n <= 0 {
		return Unlimited
	}
	return decimal.NewFromInt(n).Div(billion).String() + " GB"
}

// Date renders a unix millisecond timestamp.
func Date(ms int64) string {
	if ms <= 0 {
		return MissingValue
	}
	return time.UnixMilli(ms).Format(DateFormat)
}

// Age renders the time elapsed since a unix millisecond timestamp.
func Age(ms int64) string {
	if ms <= 0 {
		return MissingValue
	}
	return HumanDuration(time.Since(time.UnixMilli(ms)))
}

// HumanDuration converts duration to human readable format (e.g., "5d", "3h", "2m")
func HumanDuration(d time.Duration) string {
	if d < time.Second {
		return "0s"
	}

	days := int(d.Hours() / 24)
	hours := int(d.Hours()) % 24
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60

	if days > 365 {
		return fmt.Sprintf("%dy", days/365)
	}
	if days > 0 {
		return fmt.Sprintf("%dd", days)
	}
	if hours > 0 {
		return fmt.Sprintf("%dh", hours)
	}
	if minutes > 0 {
		return fmt.Sprintf("%dm", minutes)
	}
	return fmt.Sprintf("%ds", seconds)
}

// Missing returns MissingValue if string is empty
func Missing(s string) string {
	if s == "" {
		return MissingValue
	}
	return s
}

// BoolToYesNo converts bool to Yes/No string
func BoolToYesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

// OnOff renders a switch state.
func OnOff(b bool) string {
	if b {
		return On
	}
	return Off
}

// ID renders a record id.
func ID(id int64) string {
	return strconv.FormatInt(id, 10)
}

// Count renders a count where a negative value means unlimited.
func Count(n int64) string {
	if n < 0 {
		return Unlimited
	}
	return humanize.Comma(n)
}

// Limit renders a limit where zero means unlimited.
func Limit(n int64) string {
	if n <= 0 {
		return Unlimited
	}
	return humanize.Comma(n)
}

// EmailHandle returns the local part of an email, prefixed with @.
func EmailHandle(email string) string {
	local, _, _ := strings.Cut(email, "@")
	if local == "" {
		return MissingValue
	}
	return "@" + local
}

// OneLine collapses whitespace so multi line text fits a cell.
func OneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
