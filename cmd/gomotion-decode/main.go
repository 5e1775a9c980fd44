package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/d21d3q/gomotion/internal/options"
	"github.com/d21d3q/gomotion/pkg/gomotion"
)

type usageError struct {
	program string
}

func (e usageError) Error() string {
	return fmt.Sprintf("Usage: %s DATA", e.program)
}

func main() {
	os.Exit(execute(filepath.Base(os.Args[0]), os.Args[1:], os.Stdout, os.Stderr))
}

// execute runs the command and maps any error to exit status 1.
func execute(program string, args []string, stdout, stderr io.Writer) int {
	cmd := newRootCmd(program, args, stdout, stderr)
	helpRequested := false
	cmd.SetHelpFunc(func(*cobra.Command, []string) { helpRequested = true })
	err := cmd.ExecuteContext(context.Background())
	if err == nil && helpRequested {
		err = usageError{program: program}
	}
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	return 0
}

func newRootCmd(program string, args []string, stdout, stderr io.Writer) *cobra.Command {
	var (
		format  string
		verbose bool
	)
	log := logrus.New()
	log.SetOutput(stderr)
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	log.SetLevel(logrus.WarnLevel)

	cmd := &cobra.Command{
		Use:   program + " DATA",
		Short: "Decode a PIR node Sigfox payload",
		Long: "Decodes the 10 hex digit uplink of a PIR motion node into battery voltage,\n" +
			"temperature and motion count.",
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) != 1 {
				return usageError{program: program}
			}
			return nil
		},
		// A lone argument is always DATA, even when it looks like a flag.
		DisableFlagParsing: len(args) == 1,
		SilenceErrors:      true,
		SilenceUsage:       true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if verbose {
				log.SetLevel(logrus.DebugLevel)
			}
			outFormat, err := options.ParseFormat(format)
			if err != nil {
				return err
			}
			return runDecode(cmd.OutOrStdout(), log, outFormat, args[0])
		},
	}
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetFlagErrorFunc(func(*cobra.Command, error) error {
		if len(positionalArgs(args)) == 1 {
			return gomotion.ErrInvalidData
		}
		return usageError{program: program}
	})
	cmd.Flags().StringVar(&format, "format", string(options.FormatText), "output format (text or json)")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "log decoding details to stderr")
	return cmd
}

// positionalArgs returns the tokens flag parsing would leave as positionals.
func positionalArgs(args []string) []string {
	var out []string
	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch {
		case arg == "--":
			return append(out, args[i+1:]...)
		case arg == "--format":
			i++
		case len(arg) > 1 && strings.HasPrefix(arg, "-"):
		default:
			out = append(out, arg)
		}
	}
	return out
}

func runDecode(out io.Writer, log logrus.FieldLogger, format options.Format, data string) error {
	reading, err := gomotion.Decode(data)
	if err != nil {
		log.WithError(err).WithField("data", data).Debug("payload rejected")
		return err
	}
	entry := log.WithFields(logrus.Fields{
		"voltage_code":     fmt.Sprintf("0x%02x", reading.Frame.VoltageCode),
		"temperature_code": fmt.Sprintf("0x%04x", reading.Frame.TemperatureCode),
		"motion_count":     reading.MotionCount,
	})
	entry.Debug("payload decoded")
	if reading.Frame.SignBitSet() {
		// The node writes int16; the value is still reported unsigned.
		entry.Debug("temperature code has the int16 sign bit set, reported as unsigned")
	}

	switch format {
	case options.FormatJSON:
		rendered, err := reading.JSON()
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(out, rendered)
		return err
	default:
		_, err = fmt.Fprintln(out, reading.String())
		return err
	}
}
