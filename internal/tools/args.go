package tools

import (
	"fmt"
	"strings"
)

// ArgumentError reports a violation of a tool's input contract.
type ArgumentError struct {
	Tool   string
	Issues []string
}

func (e *ArgumentError) Error() string {
	return fmt.Sprintf("invalid arguments for %s: %s", e.Tool, strings.Join(e.Issues, "; "))
}

// validateArgs checks args against the descriptor's contract and returns a
// fresh map with defaults applied for omitted optional parameters. A JSON
// null is treated the same as an omitted argument.
func validateArgs(d Descriptor, args map[string]any) (map[string]any, error) {
	declared := make(map[string]Param, len(d.Params))
	for _, p := range d.Params {
		declared[p.Name] = p
	}

	var issues []string
	for name := range args {
		if _, ok := declared[name]; !ok {
			issues = append(issues, fmt.Sprintf("unknown parameter %q", name))
		}
	}

	validated := make(map[string]any, len(d.Params))
	for _, p := range d.Params {
		value, present := args[p.Name]
		if !present || value == nil {
			if p.Required {
				issues = append(issues, fmt.Sprintf("missing required parameter %q", p.Name))
			} else if p.Default != nil {
				validated[p.Name] = p.Default
			}
			continue
		}
		coerced, err := coerceValue(p, value)
		if err != nil {
			issues = append(issues, err.Error())
			continue
		}
		validated[p.Name] = coerced
	}

	if len(issues) > 0 {
		return nil, &ArgumentError{Tool: d.Name, Issues: issues}
	}
	return validated, nil
}

// coerceValue checks a single argument against its declared type. Numbers
// arrive as float64 from JSON but integer literals are accepted from
// programmatic callers.
func coerceValue(p Param, value any) (any, error) {
	switch p.Type {
	case TypeString:
		s, ok := value.(string)
		if !ok {
			return nil, fmt.Errorf("parameter %q must be a string", p.Name)
		}
		return s, nil
	case TypeNumber:
		switch n := value.(type) {
		case float64:
			return n, nil
		case int:
			return float64(n), nil
		case int64:
			return float64(n), nil
		}
		return nil, fmt.Errorf("parameter %q must be a number", p.Name)
	case TypeBool:
		b, ok := value.(bool)
		if !ok {
			return nil, fmt.Errorf("parameter %q must be a boolean", p.Name)
		}
		return b, nil
	case TypeObject:
		m, ok := value.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("parameter %q must be an object", p.Name)
		}
		return m, nil
	}
	return nil, fmt.Errorf("parameter %q has unsupported type %q", p.Name, p.Type)
}
