package cmd

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/inventory-sim/inventory-sim/sim/sweep"
)

// LoadRunConfig reads sweep options from a YAML file.
// Uses strict parsing: unrecognized keys (typos) are rejected.
func LoadRunConfig(path string) (sweep.Options, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return sweep.Options{}, fmt.Errorf("reading run config: %w", err)
	}
	var opts sweep.Options
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&opts); err != nil && err != io.EOF {
		return sweep.Options{}, fmt.Errorf("parsing run config: %w", err)
	}
	return opts, nil
}

// newValidator returns a validator that reports fields by their JSON names.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return fld.Name
		}
		return name
	})
	return v
}

// validateOptions applies the same bounds the HTTP API enforces.
func validateOptions(v *validator.Validate, opts sweep.Options) error {
	err := v.Struct(opts)
	if err == nil {
		return nil
	}
	fields := validationFields(err)
	if len(fields) == 0 {
		return err
	}
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)
	parts := make([]string, len(names))
	for i, name := range names {
		parts[i] = name + ": " + fields[name]
	}
	return fmt.Errorf("invalid run options: %s", strings.Join(parts, ", "))
}
