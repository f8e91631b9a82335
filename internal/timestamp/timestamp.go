package timestamp

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrMalformedTimestamp is returned when text is not MM:SS or HH:MM:SS.
var ErrMalformedTimestamp = errors.New("malformed timestamp")

// maxSeconds caps parsed values so they fit any int.
const maxSeconds = math.MaxInt32

// Parse converts a MM:SS or HH:MM:SS timestamp into seconds.
func Parse(text string) (int, error) {
	s := strings.TrimSpace(text)

	// "0:01:30" -> "01:30"; "0:30" keeps its minutes field
	if rest, ok := strings.CutPrefix(s, "0:"); ok && strings.Contains(rest, ":") {
		s = rest
	}

	parts := strings.Split(s, ":")
	if len(parts) != 2 && len(parts) != 3 {
		return 0, fmt.Errorf("%w: %q", ErrMalformedTimestamp, text)
	}

	total := 0
	for _, part := range parts {
		n, err := parsePart(part)
		if err != nil || total > (maxSeconds-n)/60 {
			return 0, fmt.Errorf("%w: %q", ErrMalformedTimestamp, text)
		}
		total = total*60 + n
	}

	return total, nil
}

func parsePart(part string) (int, error) {
	if part == "" {
		return 0, ErrMalformedTimestamp
	}
	for _, r := range part {
		if r < '0' || r > '9' {
			return 0, ErrMalformedTimestamp
		}
	}
	return strconv.Atoi(part)
}

// Format renders seconds as MM:SS. Minutes are not wrapped at the hour.
func Format(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}
