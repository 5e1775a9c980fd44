package gomotion

import (
	"encoding/hex"
	"errors"
	"fmt"
	"math"

	"github.com/d21d3q/gomotion/internal/frame"
)

// PayloadLen is the number of hex digits in one uplink.
const PayloadLen = frame.Size * 2

// ErrInvalidData is returned by Decode for anything but PayloadLen hex digits.
// The text is what the CLI prints.
var ErrInvalidData = errors.New("Invalid DATA provided")

// Reading is one decoded uplink. Nil channels were not sampled by the node.
type Reading struct {
	Raw         string
	Voltage     *float64
	Temperature *float64
	MotionCount uint16
	Frame       frame.Frame
}

// Decode validates raw and maps it to a Reading. Validation is all or nothing.
func Decode(raw string) (Reading, error) {
	if !validPayload(raw) {
		return Reading{}, ErrInvalidData
	}
	data, err := hex.DecodeString(raw)
	if err != nil {
		return Reading{}, fmt.Errorf("decode payload: %w", err)
	}
	return decodeBytes(data)
}

func decodeBytes(data []byte) (Reading, error) {
	f, err := frame.Parse(data)
	if err != nil {
		return Reading{}, fmt.Errorf("decode payload: %w", err)
	}
	r := Reading{
		Raw:         hex.EncodeToString(data),
		MotionCount: f.MotionCount,
		Frame:       f,
	}
	if v, ok := f.Voltage(); ok {
		r.Voltage = &v
	}
	if t, ok := f.Temperature(); ok {
		r.Temperature = &t
	}
	return r, nil
}

// Encode builds the payload a node would send for r, quantising the way the
// firmware does: voltage rounded up to 0.1 V, temperature truncated to 0.1 °C
// and written as int16. Negative temperatures therefore do not survive Decode.
func Encode(r Reading) string {
	f := frame.Frame{
		VoltageCode:     frame.VoltageUnknown,
		TemperatureCode: frame.TemperatureUnknown,
		MotionCount:     r.MotionCount,
	}
	if r.Voltage != nil {
		f.VoltageCode = voltageCode(*r.Voltage)
	}
	if r.Temperature != nil {
		f.TemperatureCode = temperatureCode(*r.Temperature)
	}
	return f.Hex()
}

func voltageCode(v float64) byte {
	c := math.Ceil(v * 10)
	switch {
	case math.IsNaN(c) || c < 0:
		return 0
	case c >= float64(frame.VoltageUnknown):
		return frame.VoltageUnknown - 1
	}
	return byte(c)
}

func temperatureCode(t float64) uint16 {
	c := math.Trunc(t * 10)
	switch {
	case math.IsNaN(c):
		return 0
	case c < math.MinInt16:
		c = math.MinInt16
	case c >= float64(frame.TemperatureUnknown):
		c = float64(frame.TemperatureUnknown - 1)
	}
	return uint16(int16(c))
}

func validPayload(s string) bool {
	if len(s) != PayloadLen {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= '0' && c <= '9', c >= 'a' && c <= 'f', c >= 'A' && c <= 'F':
		default:
			return false
		}
	}
	return true
}
