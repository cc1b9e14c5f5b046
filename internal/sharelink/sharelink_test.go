package sharelink

import (
	"strings"
	"testing"

	"github.com/owengrv/running-the-numbers/internal/scenario"
)

func testSnapshot() scenario.Snapshot {
	s := scenario.NewState(scenario.VariantInvestor, map[string]string{
		scenario.FieldHomePrice: "400000",
		scenario.FieldHomeRate:  "6.5",
	})
	s.AddInvestment()
	return s.Snapshot()
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	fragment, err := Encode(testSnapshot())
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	if !strings.HasPrefix(fragment, "state=") {
		t.Fatalf("fragment = %q, expected state= prefix", fragment)
	}

	decoded, ok := Decode(fragment)
	if !ok {
		t.Fatal("Decode reported failure for a valid fragment")
	}
	if decoded.Inputs[scenario.FieldHomePrice] != "400000" {
		t.Errorf("decoded price = %q, expected 400000", decoded.Inputs[scenario.FieldHomePrice])
	}
	if decoded.Investments == nil || len(*decoded.Investments) != 1 {
		t.Errorf("decoded investments = %+v, expected 1 position", decoded.Investments)
	}
}

func TestDecodeToleratesLeadingHash(t *testing.T) {
	fragment, err := Encode(testSnapshot())
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := Decode("#" + fragment); !ok {
		t.Error("Decode rejected fragment with leading #")
	}
}

func TestDecodeFailuresAreSilent(t *testing.T) {
	for _, fragment := range []string{
		"",
		"home",
		"state=",
		"state=!!!not-base64!!!",
		"state=bm90IGpzb24=", // valid base64, invalid JSON
	} {
		if _, ok := Decode(fragment); ok {
			t.Errorf("Decode(%q) reported success, expected failure", fragment)
		}
	}
}

func TestRouteViewNames(t *testing.T) {
	tests := []struct {
		name     string
		fragment string
		variant  scenario.Variant
		expected string
	}{
		{name: "Valid investor view", fragment: "investments", variant: scenario.VariantInvestor, expected: "investments"},
		{name: "Leading hash stripped", fragment: "#loans", variant: scenario.VariantInvestor, expected: "loans"},
		{name: "Budget view not valid for investor", fragment: "renovation", variant: scenario.VariantInvestor, expected: DefaultView},
		{name: "Valid budget view", fragment: "renovation", variant: scenario.VariantBudget, expected: "renovation"},
		{name: "Unknown view falls back", fragment: "nonsense", variant: scenario.VariantInvestor, expected: DefaultView},
		{name: "Empty fragment falls back", fragment: "", variant: scenario.VariantInvestor, expected: DefaultView},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			view, snap := Route(tt.fragment, tt.variant)
			if view != tt.expected {
				t.Errorf("Route(%q) view = %q, expected %q", tt.fragment, view, tt.expected)
			}
			if snap != nil {
				t.Errorf("Route(%q) returned a snapshot, expected none", tt.fragment)
			}
		})
	}
}

func TestRouteStateFragment(t *testing.T) {
	fragment, err := Encode(testSnapshot())
	if err != nil {
		t.Fatal(err)
	}

	view, snap := Route(fragment, scenario.VariantInvestor)
	if view != DefaultView {
		t.Errorf("state fragment routed to view %q, expected default", view)
	}
	if snap == nil {
		t.Fatal("state fragment did not yield a snapshot")
	}
	if snap.Inputs[scenario.FieldHomeRate] != "6.5" {
		t.Errorf("snapshot rate = %q, expected 6.5", snap.Inputs[scenario.FieldHomeRate])
	}

	// A corrupt state fragment is never treated as a view name.
	view, snap = Route("state=garbage!", scenario.VariantInvestor)
	if view != DefaultView || snap != nil {
		t.Errorf("corrupt state fragment = (%q, %v), expected (default, nil)", view, snap)
	}
}
