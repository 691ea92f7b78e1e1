package network

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadInput reads a YAML (or JSON) network description.
// Uses strict parsing: unrecognized keys (typos) are rejected.
func LoadInput(path string) (*Input, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading network input: %w", err)
	}
	return DecodeInput(bytes.NewReader(data))
}

// DecodeInput parses a network description from r with strict field checking.
func DecodeInput(r io.Reader) (*Input, error) {
	var in Input
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(&in); err != nil {
		if err == io.EOF {
			return &in, nil
		}
		return nil, fmt.Errorf("parsing network input: %w", err)
	}
	return &in, nil
}
