package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/sanity-io/dandy"
)

type palette struct {
	add, remove, replace, relocate, test *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		add:      color.New(color.FgGreen),
		remove:   color.New(color.FgRed),
		replace:  color.New(color.FgYellow),
		relocate: color.New(color.FgCyan),
		test:     color.New(color.FgBlue, color.Faint),
	}
	for _, c := range []*color.Color{p.add, p.remove, p.replace, p.relocate, p.test} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func compactJSON(value interface{}) string {
	b, err := json.Marshal(value)
	if err != nil {
		return fmt.Sprintf("%v", value)
	}
	return string(b)
}

// writeText prints one line per operation.
func writeText(w io.Writer, patch dandy.Patch, p palette) error {
	for _, op := range patch {
		var line string
		switch op := op.(type) {
		case dandy.OpAdd:
			line = p.add.Sprintf("+ %s %s", op.Path, compactJSON(op.Value))
		case dandy.OpRemove:
			line = p.remove.Sprintf("- %s", op.Path)
		case dandy.OpReplace:
			line = p.replace.Sprintf("~ %s %s", op.Path, compactJSON(op.Value))
		case dandy.OpCopy:
			line = p.relocate.Sprintf("= %s <- %s", op.Path, op.From)
		case dandy.OpMove:
			line = p.relocate.Sprintf("> %s <- %s", op.Path, op.From)
		case dandy.OpTest:
			line = p.test.Sprintf("? %s %s", op.Path, compactJSON(op.Value))
		default:
			return fmt.Errorf("unknown op: %T", op)
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
