// Package config loads input files for the cgraph command.
//
// An input file is YAML:
//
//	expression: (x*y + 3) / (z - 2)
//	format: json
//	inputs:
//	  x: 3
//	  y: [4, 5, 6]
//	  z: 4
//
// Each input is a number or a non-empty list of numbers. Expression and
// format are optional; command-line flags take precedence over them.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/born-ml/cgraph/internal/tensor"
)

// ErrInvalid is wrapped by every validation error.
var ErrInvalid = errors.New("invalid config")

// Output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// File is the content of an input file.
type File struct {
	Expression string           `yaml:"expression,omitempty"`
	Format     string           `yaml:"format,omitempty"`
	Inputs     map[string]Input `yaml:"inputs"`
}

// Input is the value of one symbol: a single number or a list.
type Input []float64

// UnmarshalYAML accepts a scalar number or a sequence of numbers.
func (in *Input) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var v float64
		if err := node.Decode(&v); err != nil {
			return err
		}
		*in = Input{v}
		return nil
	case yaml.SequenceNode:
		var vs []float64
		if err := node.Decode(&vs); err != nil {
			return err
		}
		*in = vs
		return nil
	}
	return fmt.Errorf("line %d: input must be a number or a list of numbers", node.Line)
}

// Value converts the input to a scalar or a vector.
func (in Input) Value() tensor.Value {
	if len(in) == 1 {
		return tensor.Scalar(in[0])
	}
	return tensor.Vector(in...)
}

// Load reads and validates an input file.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read input file: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates the content of an input file. Unknown fields
// are rejected.
func Parse(data []byte) (*File, error) {
	var f File
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&f); err != nil {
		return nil, fmt.Errorf("%w: failed to parse YAML: %v", ErrInvalid, err)
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

// Validate checks input names, input lengths and the format.
func (f *File) Validate() error {
	if err := ValidateFormat(f.Format); err != nil {
		return err
	}
	for name, in := range f.Inputs {
		if err := validateName(name); err != nil {
			return err
		}
		if len(in) == 0 {
			return fmt.Errorf("%w: input %q is empty", ErrInvalid, name)
		}
	}
	return nil
}

// Values returns the inputs as values keyed by symbol name.
func (f *File) Values() map[string]tensor.Value {
	out := make(map[string]tensor.Value, len(f.Inputs))
	for name, in := range f.Inputs {
		out[name] = in.Value()
	}
	return out
}

// Set adds or replaces one input.
func (f *File) Set(name string, in Input) {
	if f.Inputs == nil {
		f.Inputs = make(map[string]Input)
	}
	f.Inputs[name] = in
}

// ParseAssignment parses "name=v1,v2,..." as given to --set.
func ParseAssignment(s string) (string, Input, error) {
	name, list, ok := strings.Cut(s, "=")
	if !ok {
		return "", nil, fmt.Errorf("%w: %q is not of the form name=value", ErrInvalid, s)
	}
	name = strings.TrimSpace(name)
	if err := validateName(name); err != nil {
		return "", nil, err
	}

	fields := strings.Split(list, ",")
	in := make(Input, 0, len(fields))
	for _, field := range fields {
		v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
		if err != nil {
			return "", nil, fmt.Errorf("%w: input %q: %v", ErrInvalid, name, err)
		}
		in = append(in, v)
	}
	return name, in, nil
}

// ValidateFormat accepts the output formats and the empty string.
func ValidateFormat(format string) error {
	switch format {
	case "", FormatText, FormatJSON, FormatYAML:
		return nil
	}
	return fmt.Errorf("%w: unknown format %q (want text, json or yaml)", ErrInvalid, format)
}

func validateName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty input name", ErrInvalid)
	}
	return nil
}
