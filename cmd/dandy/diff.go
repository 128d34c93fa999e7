package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sanity-io/dandy"
	"github.com/sanity-io/dandy/pkg/dandymsgpack"
)

var diffCmd = &cobra.Command{
	Use:   "diff [flags] <left.json> <right.json>",
	Short: "Print the patch which turns left into right",
	Args:  cobra.ExactArgs(2),
	RunE:  runDiff,
}

func init() {
	diffCmd.Flags().String("format", "json", "output format (json|msgpack|text)")
	diffCmd.Flags().Bool("trace", false, "print the document after every operation to stderr")
}

// traceReporter prints the working copy of the differ after each operation.
type traceReporter struct {
	enc *json.Encoder
}

func (r traceReporter) Report(op dandy.Op, doc interface{}) {
	_ = r.enc.Encode(map[string]interface{}{"op": op.Type(), "path": op.Pointer(), "doc": doc})
}

func runDiff(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true

	outputFormat, err := cmd.Flags().GetString("format")
	if err != nil {
		return err
	}

	trace, err := cmd.Flags().GetBool("trace")
	if err != nil {
		return err
	}

	left, err := readJSON(args[0])
	if err != nil {
		return err
	}
	right, err := readJSON(args[1])
	if err != nil {
		return err
	}

	opts := dandy.DefaultOptions
	if trace {
		opts = opts.WithReporter(traceReporter{enc: json.NewEncoder(os.Stderr)})
	}

	patch, err := opts.Diff(left, right)
	if err != nil {
		return err
	}

	switch outputFormat {
	case "json":
		return json.NewEncoder(os.Stdout).Encode(patch)
	case "msgpack":
		data, err := dandymsgpack.Marshal(patch)
		if err != nil {
			return err
		}
		_, err = os.Stdout.Write(data)
		return err
	case "text":
		colored, err := useColor(cmd)
		if err != nil {
			return err
		}
		return writeText(os.Stdout, patch, newPalette(colored))
	default:
		return fmt.Errorf("diff: unknown format %q", outputFormat)
	}
}
