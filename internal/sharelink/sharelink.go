// Package sharelink encodes scenario snapshots into URL fragments and routes
// fragments to either a view name or an embedded snapshot.
package sharelink

import (
	"encoding/base64"
	"encoding/json"
	"strings"

	"github.com/owengrv/running-the-numbers/internal/scenario"
	"github.com/owengrv/running-the-numbers/pkg/constants"
)

// DefaultView is the view shown when a fragment names nothing valid.
const DefaultView = "home"

// Views returns the valid view names for a variant.
func Views(variant scenario.Variant) []string {
	if variant == scenario.VariantBudget {
		return []string{"home", "closing", "cashflow", "budget", "renovation", "summary"}
	}
	return []string{"home", "loans", "cashflow", "investments", "summary"}
}

// Encode serializes a snapshot into the shareable fragment form
// "state=<base64 JSON>".
func Encode(snap scenario.Snapshot) (string, error) {
	data, err := json.Marshal(snap)
	if err != nil {
		return "", err
	}
	return constants.StateFragmentPrefix + base64.StdEncoding.EncodeToString(data), nil
}

// Decode parses a state fragment back into a snapshot. Any failure -- wrong
// prefix, bad base64, bad JSON -- reports ok=false and must be silently
// ignored by the load path.
func Decode(fragment string) (snap scenario.Snapshot, ok bool) {
	fragment = strings.TrimPrefix(fragment, "#")
	if !strings.HasPrefix(fragment, constants.StateFragmentPrefix) {
		return scenario.Snapshot{}, false
	}

	data, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(fragment, constants.StateFragmentPrefix))
	if err != nil {
		return scenario.Snapshot{}, false
	}
	if err := json.Unmarshal(data, &snap); err != nil {
		return scenario.Snapshot{}, false
	}
	return snap, true
}

// Route resolves a URL fragment for a variant. A reserved-prefix fragment is
// scenario state, never a view name; anything else resolves to a valid view
// or the default.
func Route(fragment string, variant scenario.Variant) (view string, snap *scenario.Snapshot) {
	fragment = strings.TrimPrefix(fragment, "#")

	if strings.HasPrefix(fragment, constants.StateFragmentPrefix) {
		if decoded, ok := Decode(fragment); ok {
			return DefaultView, &decoded
		}
		return DefaultView, nil
	}

	for _, v := range Views(variant) {
		if fragment == v {
			return v, nil
		}
	}
	return DefaultView, nil
}
