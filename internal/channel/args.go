package channel

import (
	"encoding/json"
	"fmt"

	"github.com/google/jsonschema-go/jsonschema"
)

func intPtr(n int) *int { return &n }

// Argument schemas, resolved once. Commands without a schema take no
// arguments and ignore any they are given.
var (
	stringArgSchema = mustResolve(&jsonschema.Schema{
		Type:        "array",
		PrefixItems: []*jsonschema.Schema{{Type: "string"}},
		MinItems:    intPtr(1),
	})

	feedbackArgSchema = mustResolve(&jsonschema.Schema{
		Type: "array",
		PrefixItems: []*jsonschema.Schema{{
			Type: "object",
			Properties: map[string]*jsonschema.Schema{
				"score":   {Type: "number"},
				"message": {Type: "string"},
			},
			Required: []string{"score"},
		}},
		MinItems: intPtr(1),
	})
)

func mustResolve(schema *jsonschema.Schema) *jsonschema.Resolved {
	resolved, err := schema.Resolve(nil)
	if err != nil {
		panic(fmt.Sprintf("resolve argument schema: %v", err))
	}

	return resolved
}

// stringArg returns the string at position i of validated arguments.
func stringArg(args []any, i int) (string, error) {
	if i >= len(args) {
		return "", fmt.Errorf("missing argument %d", i)
	}

	s, ok := args[i].(string)
	if !ok {
		return "", fmt.Errorf("argument %d: want string, got %T", i, args[i])
	}

	return s, nil
}

// feedbackArg decodes the {score, message} object at position 0.
func feedbackArg(args []any) (score float64, message string, err error) {
	if len(args) == 0 {
		return 0, "", fmt.Errorf("missing argument 0")
	}

	fields, ok := args[0].(map[string]any)
	if !ok {
		return 0, "", fmt.Errorf("argument 0: want object, got %T", args[0])
	}

	score, ok = number(fields["score"])
	if !ok {
		return 0, "", fmt.Errorf("argument 0: score: want number, got %T", fields["score"])
	}

	message, _ = fields["message"].(string)

	return score, message, nil
}

// number converts the numeric forms produced by JSON decoding and by
// in-process callers.
func number(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()

		return f, err == nil
	default:
		return 0, false
	}
}
