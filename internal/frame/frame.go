package frame

import (
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"
)

// Size is the length of a PIR node uplink in bytes.
const Size = 5

// Codes the node sends when it has no sample for a channel.
const (
	VoltageUnknown     byte   = 0xff
	TemperatureUnknown uint16 = 0x7fff
)

// ErrFrameLength is returned when the raw frame is not exactly Size bytes.
var ErrFrameLength = errors.New("frame length mismatch")

// Frame holds the raw channel codes of one uplink.
type Frame struct {
	Raw             []byte
	VoltageCode     byte
	TemperatureCode uint16
	MotionCount     uint16
}

// Parse splits the fixed five-byte uplink into its channel codes.
func Parse(raw []byte) (Frame, error) {
	if len(raw) != Size {
		return Frame{}, fmt.Errorf("%w: expected %d bytes, got %d", ErrFrameLength, Size, len(raw))
	}
	return Frame{
		Raw:             raw,
		VoltageCode:     raw[0],
		TemperatureCode: binary.BigEndian.Uint16(raw[1:3]),
		MotionCount:     binary.BigEndian.Uint16(raw[3:5]),
	}, nil
}

// Voltage returns the battery voltage in volts. The boolean is false when the
// node reported no sample.
func (f Frame) Voltage() (float64, bool) {
	if f.VoltageCode == VoltageUnknown {
		return 0, false
	}
	return float64(f.VoltageCode) / 10.0, true
}

// Temperature returns the temperature in °C read as an unsigned code.
// The boolean is false when the node reported no sample.
func (f Frame) Temperature() (float64, bool) {
	if f.TemperatureCode == TemperatureUnknown {
		return 0, false
	}
	return float64(f.TemperatureCode) / 10.0, true
}

// SignedTemperature interprets the temperature code as the int16 the
// firmware writes. Temperature keeps the unsigned reading.
func (f Frame) SignedTemperature() (float64, bool) {
	if f.TemperatureCode == TemperatureUnknown {
		return 0, false
	}
	return float64(int16(f.TemperatureCode)) / 10.0, true
}

// SignBitSet reports whether the temperature code would be negative as int16.
func (f Frame) SignBitSet() bool {
	return f.TemperatureCode&0x8000 != 0
}

// Bytes rebuilds the wire form from the codes.
func (f Frame) Bytes() []byte {
	out := make([]byte, Size)
	out[0] = f.VoltageCode
	binary.BigEndian.PutUint16(out[1:3], f.TemperatureCode)
	binary.BigEndian.PutUint16(out[3:5], f.MotionCount)
	return out
}

// Hex returns the lower-case hex form of Bytes.
func (f Frame) Hex() string {
	return hex.EncodeToString(f.Bytes())
}
