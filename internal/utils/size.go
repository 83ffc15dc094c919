package utils

import (
	"errors"
	"fmt"
	"math"
	"strconv"
)

// ErrInvalidInput is returned for byte counts that cannot be formatted.
var ErrInvalidInput = errors.New("invalid input")

// Unit is a binary size unit, each step 1024 times the previous.
type Unit int

const (
	Byte Unit = iota
	Kilobyte
	Megabyte
	Gigabyte
	Terabyte
)

var unitSymbols = [...]string{"B", "KB", "MB", "GB", "TB"}

func (u Unit) String() string {
	if u < Byte || u > Terabyte {
		return "Unit(" + strconv.Itoa(int(u)) + ")"
	}
	return unitSymbols[u]
}

// ScaleBytes picks the largest unit that keeps n below 1024, stopping at TB.
func ScaleBytes(n float64) (float64, Unit) {
	unit := Byte
	for n >= 1024 && unit < Terabyte {
		n /= 1024
		unit++
	}
	return n, unit
}

// FormatBytes converts a byte count to a human-readable string like "1.5 KB".
// Rounding to two places happens after the unit is chosen, so a value such as
// 1023.999 KB is shown as "1024 KB" rather than promoted to MB.
func FormatBytes(n float64) string {
	value, unit := ScaleBytes(n)
	value = math.Round(value*100) / 100
	return strconv.FormatFloat(value, 'f', -1, 64) + " " + unit.String()
}

// FormatUint is FormatBytes for the unsigned counters gopsutil reports.
func FormatUint(n uint64) string {
	return FormatBytes(float64(n))
}

// CheckedFormatBytes is FormatBytes with negative and NaN input rejected.
func CheckedFormatBytes(n float64) (string, error) {
	if n < 0 || math.IsNaN(n) {
		return "", fmt.Errorf("format %v bytes: %w", n, ErrInvalidInput)
	}
	return FormatBytes(n), nil
}
