package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sanity-io/dandy"
	"github.com/sanity-io/dandy/pkg/dandymsgpack"
)

var applyCmd = &cobra.Command{
	Use:   "apply [flags] <doc.json> <patch>",
	Short: "Apply a patch to a document and print the result",
	Args:  cobra.ExactArgs(2),
	RunE:  runApply,
}

func init() {
	applyCmd.Flags().String("format", "json", "patch format (json|msgpack)")
}

func readPatch(path, format string) (dandy.Patch, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	switch format {
	case "json":
		var patch dandy.Patch
		if err := json.Unmarshal(data, &patch); err != nil {
			return nil, err
		}
		return patch, nil
	case "msgpack":
		return dandymsgpack.Unmarshal(data)
	default:
		return nil, fmt.Errorf("apply: unknown format %q", format)
	}
}

func runApply(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true

	patchFormat, err := cmd.Flags().GetString("format")
	if err != nil {
		return err
	}

	doc, err := readJSON(args[0])
	if err != nil {
		return err
	}

	patch, err := readPatch(args[1], patchFormat)
	if err != nil {
		return err
	}

	result, err := dandy.ApplyPatch(doc, patch)
	if err != nil {
		return err
	}

	return json.NewEncoder(os.Stdout).Encode(result)
}
