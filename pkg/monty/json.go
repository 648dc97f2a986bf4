package monty

import (
	"fmt"
	"sort"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// RunJSON is the JSON-boundary convenience form of Run (§6, DOMAIN
// STACK): the host passes inputs as a JSON object keyed by name and
// gets the result back as JSON text, built on top of the same typed
// bridge.ToSandbox/FromSandbox conversion Run uses — gjson extracts
// each named top-level field, sjson assembles the result object.
func (m *Monty) RunJSON(inputsJSON string, opts RunOptions) (string, error) {
	inputs := make(map[string]interface{}, len(m.inputs))
	for _, name := range m.inputs {
		res := gjson.Get(inputsJSON, name)
		if !res.Exists() {
			return "", fmt.Errorf("monty: RunJSON: missing input %q", name)
		}
		inputs[name] = jsonToHost(res)
	}

	result, err := m.Run(inputs, opts)
	if err != nil {
		return "", err
	}

	out, err := marshalJSON(result)
	if err != nil {
		return "", fmt.Errorf("monty: RunJSON: encoding result: %w", err)
	}
	return out, nil
}

// jsonToHost converts a gjson.Result to the host value bridge.ToSandbox
// expects, preserving the int/float distinction gjson's own .Value()
// erases (every JSON number otherwise decodes to float64): a literal
// with no '.', 'e', or 'E' becomes int64, matching Python's own
// JSON-number-without-a-dot-is-an-int convention.
func jsonToHost(res gjson.Result) interface{} {
	switch res.Type {
	case gjson.Number:
		if isIntLiteral(res.Raw) {
			return res.Int()
		}
		return res.Float()
	case gjson.String:
		return res.String()
	case gjson.True:
		return true
	case gjson.False:
		return false
	case gjson.Null:
		return nil
	}
	if res.IsArray() {
		elems := res.Array()
		out := make([]interface{}, len(elems))
		for i, e := range elems {
			out[i] = jsonToHost(e)
		}
		return out
	}
	if res.IsObject() {
		out := make(map[string]interface{})
		res.ForEach(func(key, value gjson.Result) bool {
			out[key.String()] = jsonToHost(value)
			return true
		})
		return out
	}
	return nil
}

func isIntLiteral(raw string) bool {
	return !strings.ContainsAny(raw, ".eE")
}

// marshalJSON renders a bridge.FromSandbox result as JSON text. Map
// results are assembled key by key (sorted, for deterministic output
// text regardless of the host map's iteration order) via sjson.Set;
// anything else is wrapped under a scratch key and unwrapped, since
// sjson always needs a path to set at.
func marshalJSON(v interface{}) (string, error) {
	if m, ok := v.(map[string]interface{}); ok {
		out := "{}"
		keys := make([]string, 0, len(m))
		for k := range m {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		var err error
		for _, k := range keys {
			out, err = sjson.Set(out, k, m[k])
			if err != nil {
				return "", err
			}
		}
		return out, nil
	}
	wrapped, err := sjson.Set("{}", "v", v)
	if err != nil {
		return "", err
	}
	return gjson.Get(wrapped, "v").Raw, nil
}
