package spreadsheet

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

const (
	dateLayout      = "2006-01-02"
	timestampLayout = "2006-01-02 15:04:05"
)

// layouts accepted on import, beyond Excel serial numbers.
var layouts = []string{
	dateLayout,
	timestampLayout,
	time.RFC3339,
	"02/01/2006",
	"02/01/2006 15:04:05",
	"01-02-06",
}

func formatDate(t time.Time) string {
	return t.UTC().Format(dateLayout)
}

func formatTimestamp(t time.Time) string {
	return t.UTC().Format(timestampLayout)
}

func stringOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func intOrEmpty(n *int) interface{} {
	if n == nil {
		return ""
	}
	return *n
}

// costCell renders cents as a currency amount.
func costCell(cents *int64) interface{} {
	if cents == nil {
		return ""
	}
	return float64(*cents) / 100
}

func parseTime(v string) (time.Time, error) {
	for _, layout := range layouts {
		if t, err := time.ParseInLocation(layout, v, time.UTC); err == nil {
			return t.UTC(), nil
		}
	}
	if serial, err := strconv.ParseFloat(v, 64); err == nil {
		return excelize.ExcelDateToTime(serial, false)
	}
	return time.Time{}, fmt.Errorf("unrecognised date %q", v)
}

func parseOptionalInt(v string) (*int, error) {
	if v == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || f != math.Trunc(f) || f < 0 {
		return nil, fmt.Errorf("%q is not a positive whole number", v)
	}
	n := int(f)
	return &n, nil
}

func parseCost(v string) (*int64, error) {
	if v == "" {
		return nil, nil
	}
	cleaned := strings.NewReplacer(",", ".", "€", "", " ", "").Replace(v)
	f, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || f < 0 {
		return nil, fmt.Errorf("%q is not a valid amount", v)
	}
	cents := int64(math.Round(f * 100))
	return &cents, nil
}

// softEnum returns the allowed value matching v, ignoring case, or fallback
// when nothing matches.
func softEnum(v string, allowed []string, fallback string) string {
	for _, a := range allowed {
		if strings.EqualFold(v, a) {
			return a
		}
	}
	return fallback
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, strings.TrimSpace(listSeparator)) {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
