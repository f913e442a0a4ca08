package record

import (
	"fmt"
	"strings"

	"github.com/bytedance/sonic"
	jsonpatch "github.com/evanphx/json-patch/v5"
)

const (
	OpAdd     = "add"
	OpReplace = "replace"
	OpRemove  = "remove"
)

// Operation is one RFC6902 patch op against the collected values.
type Operation struct {
	Op    string `json:"op"`
	Path  string `json:"path"`
	Value any    `json:"value,omitempty"`
}

// PathForKey converts a schema field key into its patch path.
func PathForKey(key string) string {
	return "/" + key
}

// Apply runs ops against collected and returns the patched copy. Paths
// outside allowedPaths are rejected before anything is applied, so the
// operation is all-or-nothing. Replace ops against missing keys are
// downgraded to add, and remove ops against missing keys are dropped,
// because an LLM-proposed patch is allowed to be sloppy about presence.
func Apply(collected map[string]string, ops []Operation, allowedPaths map[string]bool) (map[string]string, error) {
	if len(ops) == 0 {
		out := make(map[string]string, len(collected))
		for k, v := range collected {
			out[k] = v
		}
		return out, nil
	}

	for i, op := range ops {
		if err := checkPath(op.Path, allowedPaths); err != nil {
			return nil, fmt.Errorf("operation %d: %w", i, err)
		}
	}

	currentJSON, err := sonic.Marshal(collected)
	if err != nil {
		return nil, fmt.Errorf("marshal collected values: %w", err)
	}

	ops = normalizeOps(collected, ops)

	patchJSON, err := sonic.Marshal(ops)
	if err != nil {
		return nil, fmt.Errorf("marshal patch operations: %w", err)
	}
	patch, err := jsonpatch.DecodePatch(patchJSON)
	if err != nil {
		return nil, fmt.Errorf("decode patch: %w", err)
	}
	patchedJSON, err := patch.Apply(currentJSON)
	if err != nil {
		return nil, fmt.Errorf("apply patch: %w", err)
	}

	var result map[string]string
	if err := sonic.Unmarshal(patchedJSON, &result); err != nil {
		return nil, fmt.Errorf("patched values are not a string map: %w", err)
	}
	if result == nil {
		result = map[string]string{}
	}
	return result, nil
}

func checkPath(path string, allowedPaths map[string]bool) error {
	if len(allowedPaths) == 0 {
		return nil
	}
	if allowedPaths[path] {
		return nil
	}
	return fmt.Errorf("path %q is not an allowed field", path)
}

func normalizeOps(collected map[string]string, ops []Operation) []Operation {
	fixed := make([]Operation, 0, len(ops))
	for _, op := range ops {
		key := strings.TrimPrefix(op.Path, "/")
		_, exists := collected[key]
		switch op.Op {
		case OpReplace:
			if !exists {
				op.Op = OpAdd
			}
			fixed = append(fixed, op)
		case OpRemove:
			if exists {
				fixed = append(fixed, op)
			}
		default:
			fixed = append(fixed, op)
		}
	}
	return fixed
}
