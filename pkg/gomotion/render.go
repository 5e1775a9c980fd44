package gomotion

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

const unknownValue = "None"

// String renders the three-line report printed by the CLI.
func (r Reading) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Bat. voltage = %s V\n", formatOptional(r.Voltage))
	fmt.Fprintf(&b, "Temperature  = %s °C\n", formatOptional(r.Temperature))
	fmt.Fprintf(&b, "Motion count = %d", r.MotionCount)
	return b.String()
}

// Fields returns the reading as a flat map. Unknown channels map to nil.
func (r Reading) Fields() map[string]any {
	fields := map[string]any{
		"raw_hex":       r.Raw,
		"voltage_v":     nil,
		"temperature_c": nil,
		"motion_count":  int(r.MotionCount),
	}
	if r.Voltage != nil {
		fields["voltage_v"] = *r.Voltage
	}
	if r.Temperature != nil {
		fields["temperature_c"] = *r.Temperature
	}
	return fields
}

// JSON renders Fields as indented JSON. Numbers keep the text report's form,
// so 50 °C is written as 50.0.
func (r Reading) JSON() (string, error) {
	fields := r.Fields()
	for _, key := range []string{"voltage_v", "temperature_c"} {
		if v, ok := fields[key].(float64); ok {
			fields[key] = json.Number(formatFloat(v))
		}
	}
	data, err := json.MarshalIndent(fields, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal reading: %w", err)
	}
	return string(data), nil
}

func formatOptional(v *float64) string {
	if v == nil {
		return unknownValue
	}
	return formatFloat(*v)
}

// formatFloat prints the shortest representation that round-trips, always
// with a decimal point.
func formatFloat(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
