package ast

import "testing"

func TestDeriveDialect(t *testing.T) {
	cases := map[string]Dialect{
		"div":      Html,
		"":         Html,
		"MyButton": Component,
		"svg":      SvgInferred,
		"circle":   SvgInferred,
		"path":     SvgInferred,
	}
	for tag, want := range cases {
		if got := DeriveDialect(tag); got != want {
			t.Errorf("DeriveDialect(%q) = %v, want %v", tag, got, want)
		}
	}
}

func TestPropertyName(t *testing.T) {
	if got := PropertyName(&StaticProperty{Name: "class"}); got != "class" {
		t.Errorf("got %q", got)
	}
	if got := PropertyName(&DynamicProperty{Name: "onClick"}); got != "onClick" {
		t.Errorf("got %q", got)
	}
	if got := PropertyName(&SpreadProperty{}); got != "" {
		t.Errorf("got %q, want empty for SpreadProperty", got)
	}
	if got := PropertyName(&StyleProperty{}); got != "" {
		t.Errorf("got %q, want empty for StyleProperty", got)
	}
}
