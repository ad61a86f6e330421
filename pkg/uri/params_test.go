// SPDX-License-Identifier: MPL-2.0

package uri

import (
	"slices"
	"testing"
)

func TestParams_OrderAndMultiplicity(t *testing.T) {
	t.Parallel()

	p := &Params{}
	p.Add("b", "1")
	p.Add("a", "2")
	p.Add("b", "3")

	if got := p.Names(); !slices.Equal(got, []string{"b", "a"}) {
		t.Errorf("Names() = %v, want [b a]", got)
	}
	if got := p.Values("b"); !slices.Equal(got, []string{"1", "3"}) {
		t.Errorf("Values(b) = %v, want [1 3]", got)
	}
	// Values group under the first occurrence of their name.
	if got := p.encode(); got != "b=1&b=3&a=2" {
		t.Errorf("encode() = %q", got)
	}
}

func TestParams_Set(t *testing.T) {
	t.Parallel()

	p := &Params{}
	p.Add("a", "1")
	p.Add("b", "2")
	p.Add("a", "3")
	p.Set("a", "9")

	if got := p.Values("a"); !slices.Equal(got, []string{"9"}) {
		t.Errorf("Values(a) = %v, want [9]", got)
	}
	// Keeps the original order slot.
	if got := p.encode(); got != "a=9&b=2" {
		t.Errorf("encode() = %q", got)
	}

	// Set on an absent name behaves like Add.
	p.Set("c", "5")
	if got := p.encode(); got != "a=9&b=2&c=5" {
		t.Errorf("encode() = %q", got)
	}
}

func TestParams_Flags(t *testing.T) {
	t.Parallel()

	p := &Params{}
	p.AddFlag("verbose")
	p.Add("x", "1")

	if !p.Has("verbose") {
		t.Error("expected Has(verbose) to be true")
	}
	if _, ok := p.Get("verbose"); ok {
		t.Error("Get(verbose) should report no value for a flag param")
	}
	if got := p.encode(); got != "verbose&x=1" {
		t.Errorf("encode() = %q", got)
	}
}

func TestParams_Encoding(t *testing.T) {
	t.Parallel()

	p := &Params{}
	p.Add("a b", "c&d")

	if got := p.encode(); got != "a+b=c%26d" {
		t.Errorf("encode() = %q", got)
	}
}

func TestParams_CloneIsDeep(t *testing.T) {
	t.Parallel()

	p := &Params{}
	p.Add("a", "1")

	c := p.clone()
	c.Add("a", "2")
	c.Add("b", "3")

	if got := p.Values("a"); len(got) != 1 {
		t.Errorf("original Values(a) = %v, want one value", got)
	}
	if p.Has("b") {
		t.Error("original should not see names added to the clone")
	}
}
