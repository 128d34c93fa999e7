package fuzz

import (
	"bytes"
	"encoding/json"

	"github.com/sanity-io/dandy"
)

// Fuzz decodes two JSON documents from data and checks that the patches between them
// round-trip in both directions.
func Fuzz(data []byte) int {
	dec := json.NewDecoder(bytes.NewReader(data))
	var left, right interface{}

	err := dec.Decode(&left)
	if err != nil {
		return -1
	}

	err = dec.Decode(&right)
	if err != nil {
		return -1
	}

	patch1, patch2, err := dandy.DoubleDiff(left, right)
	if err != nil {
		panic(err)
	}

	constructedRight, err := dandy.ApplyPatch(left, patch1)
	if err != nil {
		panic(err)
	}
	if !dandy.Equal(right, constructedRight) {
		panic("up patch is incorrect")
	}

	constructedLeft, err := dandy.ApplyPatch(right, patch2)
	if err != nil {
		panic(err)
	}
	if !dandy.Equal(left, constructedLeft) {
		panic("down patch is incorrect")
	}

	return 1
}
