package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/born-ml/cgraph/internal/config"
	"github.com/born-ml/cgraph/internal/tensor"
)

// textRenderer is implemented by every command result.
type textRenderer interface {
	renderText(w io.Writer) error
}

// writeResult writes r in the requested format.
func writeResult(w io.Writer, format string, r textRenderer) error {
	switch format {
	case config.FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	case config.FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(r); err != nil {
			return err
		}
		return enc.Close()
	default:
		return r.renderText(w)
	}
}

// number is a float64 that survives JSON encoding when it is NaN or
// infinite: those are written as strings.
type number float64

// MarshalJSON implements json.Marshaler.
func (n number) MarshalJSON() ([]byte, error) {
	f := float64(n)
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return json.Marshal(s)
	}
	return []byte(s), nil
}

// encodeValue turns a scalar into a number and an array into a list.
func encodeValue(v tensor.Value) any {
	if v.IsScalar() {
		return number(v.Item())
	}
	data := v.Data()
	out := make([]number, len(data))
	for i, x := range data {
		out[i] = number(x)
	}
	return out
}

type evalResult struct {
	Expression string `json:"expression" yaml:"expression"`
	Value      any    `json:"value" yaml:"value"`

	value tensor.Value
}

func (r *evalResult) renderText(w io.Writer) error {
	_, err := fmt.Fprintln(w, r.value)
	return err
}

type gradResult struct {
	Expression string         `json:"expression" yaml:"expression"`
	Value      any            `json:"value" yaml:"value"`
	Gradient   map[string]any `json:"gradient" yaml:"gradient"`

	value tensor.Value
	names []string
	grads []tensor.Value
}

func (r *gradResult) renderText(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "value: %s\n", r.value); err != nil {
		return err
	}
	for i, name := range r.names {
		if _, err := fmt.Fprintf(w, "d/d%s: %s\n", name, r.grads[i]); err != nil {
			return err
		}
	}
	return nil
}

type symbolicResult struct {
	Expression string            `json:"expression" yaml:"expression"`
	Gradient   map[string]string `json:"gradient" yaml:"gradient"`
	Values     map[string]any    `json:"values,omitempty" yaml:"values,omitempty"`

	names  []string
	values []tensor.Value
}

func (r *symbolicResult) renderText(w io.Writer) error {
	for i, name := range r.names {
		line := fmt.Sprintf("d/d%s: %s", name, r.Gradient[name])
		if r.values != nil {
			line += " = " + r.values[i].String()
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

type simplifyResult struct {
	Expression string `json:"expression" yaml:"expression"`
	Simplified string `json:"simplified" yaml:"simplified"`
}

func (r *simplifyResult) renderText(w io.Writer) error {
	_, err := fmt.Fprintln(w, r.Simplified)
	return err
}
