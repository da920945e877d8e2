// Package cascade loads layered configuration into a flat Go struct from multiple sources with predictable precedence.
//
// A Loader builds a prioritized cascade of sources and writes into a destination struct. Register sources from lowest to highest priority using the With* methods,
// then call StrictlyLoad (or StrictlyLoadWithProvenance to also learn which source set each key).
//
// Sources
//   - Defaults and in-memory values (ex: explicitly set flags) from a map[string]any of scalars.
//   - JSON object files read at load time. WithJSONFile registers a specific path. WithNearestJSONFile searches upward from a starting directory for the first
//     readable, non-empty file with a given relative name.
//   - Environment variables mapped to configuration keys via WithEnv; missing or empty variables are ignored and present values are strings.
//
// Keys are case-insensitive and match field names or `cascade`/`json` tag names. Unknown keys are ignored. Values are coerced when reasonable to the destination
// type (strings to numbers and bools, numbers to strings, integral floats to ints).
//
// Example
//
//	type Config struct {
//	    Format  string
//	    Context int
//	}
//
//	var cfg Config
//	err := New().
//	    WithDefaults(map[string]any{"format": "unified", "context": 3}).
//	    WithNearestJSONFile(".seqdiff/config.json", "").
//	    WithEnv(map[string]string{"context": "SEQDIFF_CONTEXT"}).
//	    StrictlyLoad(&cfg)
package cascade
