package cascade

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// cascadeSource represents a configuration source that can supply key/value data to the loader in a normalized map form.
type cascadeSource interface {
	// Name returns a human-readable label for the source, used in error messages and diagnostics.
	Name() string

	// ToMap returns a normalized, flat map:
	//   - keys are lower cased
	//   - values are scalars: ONLY int, float64, bool, string
	//
	// Errors are returned when reading or parsing fails, or when a value is not a scalar.
	ToMap() (map[string]any, error)

	// Provenance describes this source as the origin of key.
	Provenance(key string) Provenance
}

// sourceMap adapts a Go map into a cascadeSource.
type sourceMap struct {
	sourceType string         // "default" for WithDefaults; the caller's name for WithValues.
	m          map[string]any // Raw input map. Values must be scalars.
}

// sourceJSONFile implements cascadeSource for a single JSON object file. Empty or whitespace-only files contribute no values.
type sourceJSONFile struct {
	path string // May be absolute or relative and is expanded with ExpandPath.
}

// sourceNearestJSONFile searches upward from startDir for fileName, and reads the first readable, non-empty match as a sourceJSONFile.
type sourceNearestJSONFile struct {
	fileName string
	startDir string
	found    string // Set by ToMap to the file that was read.
}

// sourceEnv implements cascadeSource backed by environment variables mapped to configuration keys.
type sourceEnv struct {
	keyToEnv map[string]string // Ex: {"context": "SEQDIFF_CONTEXT"}
	lastEnv  map[string]string // Set by ToMap: lowercased key -> env var that supplied it.
}

func (s *sourceMap) Name() string {
	if s.sourceType == "default" {
		return "Defaults"
	}
	return "Values: " + s.sourceType
}

func (s *sourceMap) ToMap() (map[string]any, error) {
	out := make(map[string]any, len(s.m))
	for k, v := range s.m {
		if err := validateScalar(v); err != nil {
			return nil, fmt.Errorf("invalid value for key '%s': %w", k, err)
		}
		lk := strings.ToLower(k)
		if _, exists := out[lk]; exists {
			return nil, fmt.Errorf("key conflict: key '%s' was already set", k)
		}
		out[lk] = v
	}
	return out, nil
}

func (s *sourceMap) Provenance(string) Provenance {
	return Provenance{SourceType: s.sourceType}
}

// validateScalar validates that v is an int, float64, bool, or string.
func validateScalar(v any) error {
	switch v.(type) {
	case int, float64, bool, string:
		return nil
	default:
		return fmt.Errorf("type %T is not allowed", v)
	}
}

func (s *sourceJSONFile) Name() string {
	return fmt.Sprintf("JSON File: %s", s.path)
}

func (s *sourceJSONFile) ToMap() (map[string]any, error) {
	if s.path == "" {
		return map[string]any{}, nil
	}
	data, err := os.ReadFile(ExpandPath(s.path))
	if err != nil {
		return nil, fmt.Errorf("read json file: %w", err)
	}
	return parseJSONObject(data)
}

func (s *sourceJSONFile) Provenance(string) Provenance {
	return Provenance{SourceType: "json_file", SourceIdentifier: ExpandPath(s.path)}
}

// parseJSONObject decodes a top-level JSON object of scalars. Nested objects and arrays are rejected, as is a null value.
func parseJSONObject(data []byte) (map[string]any, error) {
	if strings.TrimSpace(string(data)) == "" {
		return map[string]any{}, nil
	}

	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse json: %w", err)
	}
	obj, ok := raw.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("top-level JSON must be an object")
	}

	out := make(map[string]any, len(obj))
	for k, v := range obj {
		if err := validateScalar(v); err != nil {
			return nil, fmt.Errorf("key '%s': %w", k, err)
		}
		lk := strings.ToLower(k)
		if _, exists := out[lk]; exists {
			return nil, fmt.Errorf("key conflict: key '%s' was already set", k)
		}
		out[lk] = v
	}
	return out, nil
}

func (s *sourceNearestJSONFile) Name() string {
	if s.found != "" {
		return fmt.Sprintf("JSON File: %s", s.found)
	}
	return fmt.Sprintf("Nearest JSON File: %s", s.fileName)
}

func (s *sourceNearestJSONFile) ToMap() (map[string]any, error) {
	s.found = ""
	start := s.startDir
	if start == "" {
		wd, err := os.Getwd()
		if err != nil {
			return map[string]any{}, nil
		}
		start = wd
	}
	dir := ExpandPath(start)

	for {
		candidate := filepath.Join(dir, s.fileName)
		data, err := os.ReadFile(candidate)
		if err == nil && strings.TrimSpace(string(data)) != "" {
			s.found = candidate
			return parseJSONObject(data)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return map[string]any{}, nil
		}
		dir = parent
	}
}

func (s *sourceNearestJSONFile) Provenance(string) Provenance {
	return Provenance{SourceType: "json_file", SourceIdentifier: s.found}
}

func (s *sourceEnv) Name() string {
	return "ENV"
}

// ToMap reads each mapped variable. Missing or empty variables set no key, so an exported-but-empty variable never clobbers a file setting. All values are strings.
func (s *sourceEnv) ToMap() (map[string]any, error) {
	out := map[string]any{}
	s.lastEnv = map[string]string{}
	for key, envVar := range s.keyToEnv {
		if envVar == "" {
			continue
		}
		val, exists := os.LookupEnv(envVar)
		if !exists || val == "" {
			continue
		}
		lk := strings.ToLower(key)
		if _, dup := out[lk]; dup {
			return nil, fmt.Errorf("key conflict: key '%s' was already set", key)
		}
		out[lk] = val
		s.lastEnv[lk] = envVar
	}
	return out, nil
}

func (s *sourceEnv) Provenance(key string) Provenance {
	return Provenance{SourceType: "env", SourceIdentifier: s.lastEnv[key]}
}
