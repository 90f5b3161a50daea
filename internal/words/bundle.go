package words

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// bundleMarker precedes the word array inside the upstream JS bundle:
//
//	[...noise] const o=[ "aback","abase",... ] [...noise]
const bundleMarker = "const o=["

// ErrNoWordArray is returned when a bundle carries no recognizable word array.
var ErrNoWordArray = errors.New("words: word array not found in bundle")

// ExtractBundle pulls the word array out of a JS bundle and returns it as
// normalized uppercase words.
func ExtractBundle(src string) ([]string, error) {
	_, rest, ok := strings.Cut(src, bundleMarker)
	if !ok {
		return nil, ErrNoWordArray
	}
	body, _, ok := strings.Cut(rest, "]")
	if !ok {
		return nil, ErrNoWordArray
	}

	var raw []string
	if err := json.Unmarshal([]byte("["+body+"]"), &raw); err != nil {
		return nil, fmt.Errorf("words: parse word array: %w", err)
	}
	out := ParseLines(raw)
	if len(out) == 0 {
		return nil, ErrNoWordArray
	}
	return out, nil
}

// RenderBundle produces a minimal bundle that ExtractBundle can read back.
// The puzzle server serves this so the upstream client code works against it.
func RenderBundle(list []string) ([]byte, error) {
	lower := make([]string, len(list))
	for i, w := range list {
		lower[i] = strings.ToLower(w)
	}
	arr, err := json.Marshal(lower)
	if err != nil {
		return nil, err
	}
	// arr is `["a","b"]`; splice its body after the marker.
	body := arr[1 : len(arr)-1]
	out := make([]byte, 0, len(body)+64)
	out = append(out, "\"use strict\";(self.wordle=self.wordle||[]).push(function(){"...)
	out = append(out, bundleMarker...)
	out = append(out, body...)
	out = append(out, "];return o});\n"...)
	return out, nil
}
