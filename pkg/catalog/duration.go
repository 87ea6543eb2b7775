package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sosodev/duration"
	"gopkg.in/yaml.v3"
)

// ErrCalendarDuration is returned for durations that use years or months.
var ErrCalendarDuration = errors.New("years and months have no fixed length")

// Duration is a time span written in ISO-8601 form ("PT30M", "P1DT2H",
// "P2W"). Years and months are rejected because they have no fixed length.
type Duration time.Duration

// ParseDuration parses an ISO-8601 duration.
func ParseDuration(s string) (Duration, error) {
	norm := strings.ToUpper(strings.TrimSpace(s))
	if !strings.HasPrefix(norm, "P") || strings.HasSuffix(norm, "T") || !strings.ContainsAny(norm, "0123456789") {
		return 0, fmt.Errorf("invalid ISO-8601 duration %q", s)
	}
	date, _, _ := strings.Cut(norm, "T")
	if strings.ContainsAny(date, "YM") {
		return 0, fmt.Errorf("invalid ISO-8601 duration %q: %w", s, ErrCalendarDuration)
	}
	d, err := duration.Parse(norm)
	if err != nil {
		return 0, fmt.Errorf("invalid ISO-8601 duration %q: %w", s, err)
	}
	return Duration(d.ToTimeDuration()), nil
}

// Std returns the duration as a time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// String formats the duration in ISO-8601 form using days, hours, minutes
// and seconds.
func (d Duration) String() string {
	td := time.Duration(d)
	if td == 0 {
		return "PT0S"
	}
	iso := &duration.Duration{Negative: td < 0}
	if td < 0 {
		td = -td
	}
	days := td / (24 * time.Hour)
	td -= days * 24 * time.Hour
	hours := td / time.Hour
	td -= hours * time.Hour
	minutes := td / time.Minute
	td -= minutes * time.Minute

	iso.Days = float64(days)
	iso.Hours = float64(hours)
	iso.Minutes = float64(minutes)
	iso.Seconds = td.Seconds()
	return iso.String()
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Duration) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("duration must be an ISO-8601 string: %w", err)
	}
	parsed, err := ParseDuration(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func (d Duration) MarshalYAML() (any, error) {
	return d.String(), nil
}

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return fmt.Errorf("duration must be an ISO-8601 string: %w", err)
	}
	parsed, err := ParseDuration(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
