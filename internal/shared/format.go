package shared

import (
	"encoding/json"
	"fmt"
)

// FormatDuration converts a track duration in milliseconds to a "M:SS" or
// "H:MM:SS" string. Trailing units are zero-padded, the leading unit is not.
// A nil input yields nil, which serializes as JSON null.
func FormatDuration(ms *int) *string {
	if ms == nil {
		return nil
	}

	totalSeconds := *ms / 1000
	hours := totalSeconds / 3600
	minutes := (totalSeconds % 3600) / 60
	seconds := totalSeconds % 60

	var s string
	if hours > 0 {
		s = fmt.Sprintf("%d:%02d:%02d", hours, minutes, seconds)
	} else {
		s = fmt.Sprintf("%d:%02d", minutes, seconds)
	}
	return &s
}

// MarshalJSON serializes data to JSON, optionally pretty-printed.
func MarshalJSON(data any, pretty bool) ([]byte, error) {
	if pretty {
		return json.MarshalIndent(data, "", "  ")
	}
	return json.Marshal(data)
}
