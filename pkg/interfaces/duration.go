package interfaces

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Duration is the estimated completion time attached to tutorials and steps.
// The canonical wire form is MM:SS; authors may also write H:MM:SS or a bare
// minute count. The zero value renders as "00:00".
type Duration time.Duration

// ParseDuration converts an authored duration string into a Duration.
func ParseDuration(value string) (Duration, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return 0, nil
	}

	parts := strings.Split(trimmed, ":")
	switch len(parts) {
	case 1:
		minutes, err := strconv.Atoi(parts[0])
		if err != nil || minutes < 0 {
			return 0, fmt.Errorf("duration: invalid minute count %q", value)
		}
		return Duration(time.Duration(minutes) * time.Minute), nil
	case 2:
		minutes, errM := strconv.Atoi(parts[0])
		seconds, errS := strconv.Atoi(parts[1])
		if errM != nil || errS != nil || minutes < 0 || seconds < 0 || seconds > 59 {
			return 0, fmt.Errorf("duration: invalid MM:SS value %q", value)
		}
		return Duration(time.Duration(minutes)*time.Minute + time.Duration(seconds)*time.Second), nil
	case 3:
		hours, errH := strconv.Atoi(parts[0])
		minutes, errM := strconv.Atoi(parts[1])
		seconds, errS := strconv.Atoi(parts[2])
		if errH != nil || errM != nil || errS != nil ||
			hours < 0 || minutes < 0 || minutes > 59 || seconds < 0 || seconds > 59 {
			return 0, fmt.Errorf("duration: invalid H:MM:SS value %q", value)
		}
		return Duration(time.Duration(hours)*time.Hour + time.Duration(minutes)*time.Minute + time.Duration(seconds)*time.Second), nil
	default:
		return 0, fmt.Errorf("duration: unrecognised value %q", value)
	}
}

// String renders the duration in the canonical MM:SS form. Durations of an
// hour or more keep accumulating minutes rather than rolling into hours so
// the display stays aligned with the authored format.
func (d Duration) String() string {
	total := int(time.Duration(d).Round(time.Second) / time.Second)
	if total < 0 {
		total = 0
	}
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}

// Minutes reports the duration in whole minutes, rounding up partial minutes
// so "about a minute" never displays as zero.
func (d Duration) Minutes() int {
	if d <= 0 {
		return 0
	}
	seconds := int(time.Duration(d).Round(time.Second) / time.Second)
	return (seconds + 59) / 60
}

// IsZero reports whether no duration was authored.
func (d Duration) IsZero() bool { return d == 0 }

// UnmarshalYAML accepts duration scalars from front matter. String scalars
// go through ParseDuration. Integer scalars are total seconds: YAML 1.1
// parsers resolve an unquoted MM:SS scalar to a sexagesimal integer, which
// is exactly the second count of the authored value.
//
// The integer branch must run first. yaml.v3 fills a string target with the
// literal text of an int node, so probing for a string first would turn a
// second count into a bare minute count. Decoding an str node into an int
// fails under both yaml.v2 and yaml.v3, which keeps this ordering safe for
// quoted values.
func (d *Duration) UnmarshalYAML(unmarshal func(any) error) error {
	var seconds int
	if err := unmarshal(&seconds); err == nil {
		if seconds < 0 {
			return fmt.Errorf("duration: negative second count %d", seconds)
		}
		*d = Duration(time.Duration(seconds) * time.Second)
		return nil
	}

	var raw string
	if err := unmarshal(&raw); err != nil {
		return err
	}
	parsed, err := ParseDuration(raw)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// MarshalYAML emits the canonical MM:SS representation.
func (d Duration) MarshalYAML() (any, error) {
	return d.String(), nil
}
