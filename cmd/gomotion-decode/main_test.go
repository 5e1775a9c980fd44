package main

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	if args == nil {
		args = []string{}
	}
	code := execute("gomotion-decode", args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestDecodeReference(t *testing.T) {
	code, out, errOut := run(t, "1901f40032")
	require.Equal(t, 0, code)
	require.Equal(t, "Bat. voltage = 2.5 V\nTemperature  = 50.0 °C\nMotion count = 50\n", out)
	require.Empty(t, errOut)
}

func TestDecodeUnknownChannels(t *testing.T) {
	code, out, _ := run(t, "FF7FFF0000")
	require.Equal(t, 0, code)
	require.Equal(t, "Bat. voltage = None V\nTemperature  = None °C\nMotion count = 0\n", out)
}

func TestUsage(t *testing.T) {
	for _, args := range [][]string{nil, {"1901f40032", "1901f40032"}} {
		code, out, errOut := run(t, args...)
		require.Equal(t, 1, code)
		require.Empty(t, out)
		require.Equal(t, "Usage: gomotion-decode DATA\n", errOut)
	}
}

func TestInvalidData(t *testing.T) {
	for _, data := range []string{"", "1901f4003", "1901f4003z", "1901f400321", "-123456789", "-h", "--help", "-v", "--format=json"} {
		code, out, errOut := run(t, data)
		require.Equal(t, 1, code, data)
		require.Empty(t, out)
		require.Equal(t, "Invalid DATA provided\n", errOut)
	}
}

func TestUsageWithFlags(t *testing.T) {
	for _, args := range [][]string{
		{"-v", "--format", "json"},
		{"--bogus", "1901f40032", "1901f40032"},
		{"-h", "1901f40032"},
		{"--help", "-v"},
	} {
		code, out, errOut := run(t, args...)
		require.Equal(t, 1, code, args)
		require.Empty(t, out)
		require.Equal(t, "Usage: gomotion-decode DATA\n", errOut, args)
	}
}

func TestUnknownFlagWithData(t *testing.T) {
	code, out, errOut := run(t, "-x", "1901f40032")
	require.Equal(t, 1, code)
	require.Empty(t, out)
	require.Equal(t, "Invalid DATA provided\n", errOut)
}

func TestFlagsWithData(t *testing.T) {
	code, out, _ := run(t, "-v", "--", "1901f40032")
	require.Equal(t, 0, code)
	require.Equal(t, "Bat. voltage = 2.5 V\nTemperature  = 50.0 °C\nMotion count = 50\n", out)
}

func TestPositionalArgs(t *testing.T) {
	require.Equal(t, []string{"1901f40032"}, positionalArgs([]string{"--format", "json", "-v", "1901f40032"}))
	require.Equal(t, []string{"a", "-b"}, positionalArgs([]string{"a", "--", "-b"}))
	require.Empty(t, positionalArgs([]string{"-v", "--format=json"}))
}

func TestJSONFormat(t *testing.T) {
	code, out, _ := run(t, "--format", "json", "ff00d2000c")
	require.Equal(t, 0, code)
	var fields map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &fields))
	require.Nil(t, fields["voltage_v"])
	require.InDelta(t, 21.0, fields["temperature_c"], 1e-9)
	require.InDelta(t, 12.0, fields["motion_count"], 1e-9)
}

func TestUnknownFormat(t *testing.T) {
	code, out, errOut := run(t, "--format", "xml", "1901f40032")
	require.Equal(t, 1, code)
	require.Empty(t, out)
	require.Contains(t, errOut, "unknown output format")
}

func TestVerboseLogsToStderr(t *testing.T) {
	code, out, errOut := run(t, "-v", "21ff970001")
	require.Equal(t, 0, code)
	require.Equal(t, "Bat. voltage = 3.3 V\nTemperature  = 6543.1 °C\nMotion count = 1\n", out)
	require.Contains(t, errOut, "payload decoded")
	require.Contains(t, errOut, "temperature_code=0xff97")
	require.Contains(t, errOut, "sign bit")
}
