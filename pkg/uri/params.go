// SPDX-License-Identifier: MPL-2.0

package uri

import (
	"net/url"
	"strings"

	"golang.org/x/exp/slices"
)

type (
	// Params is an insertion-ordered multimap of query parameters.
	// A name may carry several values, and it may also appear in flag form
	// (no value at all), which serializes without an '=' sign.
	// The zero value is ready to use.
	Params struct {
		names  []string
		values map[string][]paramValue
	}

	// paramValue distinguishes "x=" (empty value) from "x" (flag, no value).
	paramValue struct {
		value    string
		hasValue bool
	}
)

// Add appends a value for name, keeping the order slot of the first insertion.
func (p *Params) Add(name, value string) {
	p.add(name, paramValue{value: value, hasValue: true})
}

// AddFlag appends a value-less occurrence of name (serialized without '=').
func (p *Params) AddFlag(name string) {
	p.add(name, paramValue{})
}

// Set replaces all prior values for name with a single value.
// The name keeps its original position when it was already present.
func (p *Params) Set(name, value string) {
	if p.values == nil || len(p.values[name]) == 0 {
		p.Add(name, value)
		return
	}
	p.values[name] = []paramValue{{value: value, hasValue: true}}
}

// Get returns the first value for name. The second return is false when the
// name is absent or only present in flag form.
func (p *Params) Get(name string) (string, bool) {
	for _, v := range p.values[name] {
		if v.hasValue {
			return v.value, true
		}
	}
	return "", false
}

// Values returns all values recorded for name, in insertion order.
// Flag-form occurrences contribute an empty string.
func (p *Params) Values(name string) []string {
	vals := p.values[name]
	if len(vals) == 0 {
		return nil
	}
	out := make([]string, len(vals))
	for i, v := range vals {
		out[i] = v.value
	}
	return out
}

// Has reports whether name is present in any form.
func (p *Params) Has(name string) bool {
	return len(p.values[name]) > 0
}

// Names returns the parameter names in insertion order.
func (p *Params) Names() []string {
	return slices.Clone(p.names)
}

// Len returns the number of distinct parameter names.
func (p *Params) Len() int {
	return len(p.names)
}

func (p *Params) add(name string, v paramValue) {
	if p.values == nil {
		p.values = make(map[string][]paramValue)
	}
	if _, seen := p.values[name]; !seen {
		p.names = append(p.names, name)
	}
	p.values[name] = append(p.values[name], v)
}

// clone returns a deep copy so immutable Uri values cannot be mutated
// through a retained Params pointer.
func (p *Params) clone() *Params {
	if p == nil || len(p.names) == 0 {
		return &Params{}
	}
	c := &Params{
		names:  slices.Clone(p.names),
		values: make(map[string][]paramValue, len(p.values)),
	}
	for name, vals := range p.values {
		c.values[name] = slices.Clone(vals)
	}
	return c
}

// encode serializes the parameters as a query string. Names and values are
// query-escaped; flag-form parameters are emitted without '='.
func (p *Params) encode() string {
	if p == nil || len(p.names) == 0 {
		return ""
	}
	var sb strings.Builder
	for _, name := range p.names {
		for _, v := range p.values[name] {
			if sb.Len() > 0 {
				sb.WriteByte('&')
			}
			sb.WriteString(url.QueryEscape(name))
			if v.hasValue {
				sb.WriteByte('=')
				sb.WriteString(url.QueryEscape(v.value))
			}
		}
	}
	return sb.String()
}
