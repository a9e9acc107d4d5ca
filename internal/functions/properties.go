package functions

import "strings"

// lookupFold returns the value stored under key in m, matching keys
// case-insensitively. An exact match wins over a folded one; otherwise the
// first folded match encountered is returned.
func lookupFold(m map[string]any, key string) (any, bool) {
	if m == nil {
		return nil, false
	}

	if v, ok := m[key]; ok {
		return v, true
	}

	for k, v := range m {
		if strings.EqualFold(k, key) {
			return v, true
		}
	}

	return nil, false
}

// stringProperty returns the string stored under key, matched
// case-insensitively. Non-string values report absent.
func stringProperty(m map[string]any, key string) (string, bool) {
	v, ok := lookupFold(m, key)
	if !ok {
		return "", false
	}

	s, ok := v.(string)
	return s, ok
}
