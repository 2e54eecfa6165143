package components

import "testing"

func TestDepthVariantPredicates(t *testing.T) {
	cases := []struct {
		variant        DepthVariant
		name           string
		perFrame       bool
		parentRelative bool
		parent         DepthVariant
	}{
		{DepthDynamic, "dynamic", true, false, DepthDynamic},
		{DepthDynamicChild, "dynamicChild", true, true, DepthDynamic},
		{DepthStatic, "static", false, false, DepthStatic},
		{DepthStaticChild, "staticChild", false, true, DepthStatic},
	}

	for _, c := range cases {
		if got := c.variant.String(); got != c.name {
			t.Errorf("%v: expected name %q, got %q", c.variant, c.name, got)
		}
		if got := c.variant.PerFrame(); got != c.perFrame {
			t.Errorf("%s: PerFrame = %v, want %v", c.name, got, c.perFrame)
		}
		if got := c.variant.ParentRelative(); got != c.parentRelative {
			t.Errorf("%s: ParentRelative = %v, want %v", c.name, got, c.parentRelative)
		}
		if !c.variant.ParentRelative() {
			continue
		}
		if got := c.variant.ParentVariant(); got != c.parent {
			t.Errorf("%s: ParentVariant = %v, want %v", c.name, got, c.parent)
		}
	}
}

func TestDepthVariantUnknownString(t *testing.T) {
	if got := DepthVariant(42).String(); got != "unknown" {
		t.Errorf("expected \"unknown\", got %q", got)
	}
}
