package cascade

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"
)

// Loader builds a prioritized cascade of configuration sources and applies them to a destination struct. Register sources in call order from lowest to highest
// priority using the With* methods, then call StrictlyLoad. The zero value is ready to use; New exists for fluent chaining.
type Loader struct {
	sources []cascadeSource // Sources are ordered from low to high priority.
}

// Provenance records which source last set a key.
type Provenance struct {
	SourceType       string `json:"type"`                 // "default", "json_file", "env", or the name given to WithValues
	SourceIdentifier string `json:"identifier,omitempty"` // ex: "/path/to/file.json" or "SEQDIFF_FORMAT". Empty for defaults.
}

// IsSet reports whether any source set the key.
func (p Provenance) IsSet() bool {
	return p.SourceType != ""
}

// Default reports whether the key still holds its default.
func (p Provenance) Default() bool {
	return p.SourceType == "default"
}

func (p Provenance) String() string {
	if p.SourceIdentifier == "" {
		return p.SourceType
	}
	return p.SourceType + ":" + p.SourceIdentifier
}

// New returns a new Loader. It is equivalent to &Loader{} and exists to support fluent chaining.
func New() *Loader {
	return &Loader{}
}

// WithDefaults registers m as a source of default values. Keys are matched case-insensitively; values must be int, float64, bool, or string. A nil map contributes
// no values.
func (c *Loader) WithDefaults(m map[string]any) *Loader {
	c.sources = append(c.sources, &sourceMap{sourceType: "default", m: m})
	return c
}

// WithValues registers m as a source named sourceType (ex: "flag"). It is how callers layer values that are already in memory, such as explicitly set command-line
// flags, on top of files and the environment.
func (c *Loader) WithValues(sourceType string, m map[string]any) *Loader {
	c.sources = append(c.sources, &sourceMap{sourceType: sourceType, m: m})
	return c
}

// WithJSONFile registers a JSON file as a source. path may be absolute, relative, or start with "~", and is expanded with ExpandPath. The file is not read at
// call time; any I/O or parse errors occur during loading.
func (c *Loader) WithJSONFile(path string) *Loader {
	c.sources = append(c.sources, &sourceJSONFile{path: path})
	return c
}

// WithNearestJSONFile registers a JSON file found by walking up from startDir (the working directory if empty) and taking the first readable, non-empty file
// named fileName. It panics if fileName is absolute. Finding no file is not an error.
func (c *Loader) WithNearestJSONFile(fileName string, startDir string) *Loader {
	if filepath.IsAbs(fileName) {
		panic("cascade: WithNearestJSONFile requires a relative fileName")
	}
	c.sources = append(c.sources, &sourceNearestJSONFile{fileName: fileName, startDir: startDir})
	return c
}

// WithEnv registers an environment-variable-backed source. m maps a configuration key to an environment variable name; missing or empty variables are ignored.
func (c *Loader) WithEnv(m map[string]string) *Loader {
	c.sources = append(c.sources, &sourceEnv{keyToEnv: m})
	return c
}

// StrictlyLoad loads configuration from c's sources into dest, from low to high priority, with later sources overwriting earlier values. dest must be a non-nil
// pointer to a struct.
//
// Keys match field names case-insensitively, or the name in a `cascade:"name"` or `json:"name"` tag. Unknown keys are ignored. Values are coerced to the field
// type when reasonable (ex: "4" -> 4 for an int field). If a readable source cannot be parsed, or supplies a value that cannot be coerced, StrictlyLoad returns
// an error naming the source; it fails fast and does not continue to later sources to "fix" bad values.
//
// Missing or unreadable sources and empty files are not errors.
func (c *Loader) StrictlyLoad(dest any) error {
	_, err := c.StrictlyLoadWithProvenance(dest)
	return err
}

// StrictlyLoadWithProvenance is StrictlyLoad, and also reports the source that last set each key (lowercased). Keys no source set are absent from the map.
func (c *Loader) StrictlyLoadWithProvenance(dest any) (map[string]Provenance, error) {
	if dest == nil {
		return nil, fmt.Errorf("dest must be a non-nil pointer to struct")
	}
	destVal := reflect.ValueOf(dest)
	if destVal.Kind() != reflect.Ptr || destVal.IsNil() {
		return nil, fmt.Errorf("dest must be a non-nil pointer to struct")
	}
	structVal := destVal.Elem()
	if structVal.Kind() != reflect.Struct {
		return nil, fmt.Errorf("dest must be a pointer to struct, got %s", structVal.Kind())
	}

	fields, err := indexFields(structVal.Type())
	if err != nil {
		return nil, err
	}

	provenance := map[string]Provenance{}
	for _, src := range c.sources {
		m, err := src.ToMap()
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) || errors.Is(err, fs.ErrPermission) {
				continue
			}
			return nil, fmt.Errorf("%s: %w", src.Name(), err)
		}
		for key, raw := range m {
			idx, ok := fields[key]
			if !ok {
				continue
			}
			prov := src.Provenance(key)
			if err := setField(structVal.Field(idx), raw, key); err != nil {
				// Name the value's origin the way provenance reports it, ex: "env:SEQDIFF_CONTEXT".
				return nil, fmt.Errorf("%s: %w", prov, err)
			}
			provenance[key] = prov
		}
	}
	return provenance, nil
}

// indexFields maps each settable field's lowercased key to its index. Keys come from, in priority order, the cascade tag name, the json tag name, and the field
// name. A cascade tag of "-" skips the field.
func indexFields(t reflect.Type) (map[string]int, error) {
	fields := map[string]int{}
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		key := fieldKey(f)
		if key == "-" {
			continue
		}
		if prev, exists := fields[key]; exists {
			return nil, fmt.Errorf("struct contains case-insensitive field key collision for %q: %s and %s", key, t.Field(prev).Name, f.Name)
		}
		fields[key] = i
	}
	return fields, nil
}

func fieldKey(f reflect.StructField) string {
	for _, tagName := range []string{"cascade", "json"} {
		tag := f.Tag.Get(tagName)
		name, _, _ := strings.Cut(tag, ",")
		name = strings.TrimSpace(name)
		if tagName == "cascade" && name == "-" {
			return "-"
		}
		if name != "" && name != "-" {
			return strings.ToLower(name)
		}
	}
	return strings.ToLower(f.Name)
}

// setField assigns raw to a scalar field, coercing where reasonable.
func setField(fVal reflect.Value, raw any, key string) error {
	switch fVal.Kind() {
	case reflect.String:
		switch v := raw.(type) {
		case string:
			fVal.SetString(v)
		case float64:
			fVal.SetString(strconv.FormatFloat(v, 'f', -1, 64))
		case int:
			fVal.SetString(strconv.Itoa(v))
		case bool:
			fVal.SetString(strconv.FormatBool(v))
		default:
			return fmt.Errorf("%s: cannot coerce %T to string", key, raw)
		}
	case reflect.Bool:
		switch v := raw.(type) {
		case bool:
			fVal.SetBool(v)
		case string:
			parsed, err := strconv.ParseBool(strings.TrimSpace(v))
			if err != nil {
				return fmt.Errorf("%s: cannot parse bool from %q", key, v)
			}
			fVal.SetBool(parsed)
		default:
			return fmt.Errorf("%s: cannot coerce %T to bool", key, raw)
		}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		var n int64
		switch v := raw.(type) {
		case int:
			n = int64(v)
		case float64:
			if v != float64(int64(v)) {
				return fmt.Errorf("%s: %v is not an integer", key, v)
			}
			n = int64(v)
		case string:
			parsed, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
			if err != nil {
				return fmt.Errorf("%s: cannot parse int from %q", key, v)
			}
			n = parsed
		default:
			return fmt.Errorf("%s: cannot coerce %T to int", key, raw)
		}
		if fVal.OverflowInt(n) {
			return fmt.Errorf("%s: %d overflows %s", key, n, fVal.Type())
		}
		fVal.SetInt(n)
	case reflect.Float32, reflect.Float64:
		switch v := raw.(type) {
		case float64:
			fVal.SetFloat(v)
		case int:
			fVal.SetFloat(float64(v))
		case string:
			parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
			if err != nil {
				return fmt.Errorf("%s: cannot parse float from %q", key, v)
			}
			fVal.SetFloat(parsed)
		default:
			return fmt.Errorf("%s: cannot coerce %T to float", key, raw)
		}
	default:
		return fmt.Errorf("%s: unsupported field kind %s", key, fVal.Kind())
	}
	return nil
}
