package catalog

// MergeWithBooleanPrecedence merges a freshly loaded layer (src) into the store (dst).
// An unset OptionalBool, a nil, an empty string, an empty list or an empty map never
// replaces a value a lower layer supplied. Nested maps merge key by key; a non-empty map
// replaces a scalar so a typed spec can override a string shorthand.
func MergeWithBooleanPrecedence(src, dst map[string]any) error {
	mergeLayer(src, dst)
	return nil
}

func mergeLayer(src, dst map[string]any) {
	for key, srcVal := range src {
		dstVal, exists := dst[key]

		if srcMap, ok := srcVal.(map[string]any); ok {
			if dstMap, ok := dstVal.(map[string]any); ok {
				mergeLayer(srcMap, dstMap)
				continue
			}
		}

		if overrides(srcVal, exists) {
			dst[key] = srcVal
		}
	}
}

func overrides(src any, dstExists bool) bool {
	switch v := src.(type) {
	case nil:
		return false
	case *OptionalBool:
		return v.IsSet()
	case OptionalBool:
		return v.IsSet()
	}

	if !dstExists {
		return true
	}

	switch v := src.(type) {
	case string:
		return v != ""
	case []any:
		return len(v) > 0
	case map[string]any:
		return len(v) > 0
	default:
		return true
	}
}
