package cli

import (
	"fmt"
	"sort"
	"strconv"
)

// value is a typed flag variable.
type value interface {
	set(raw string) error
	String() string
	typeName() string // "" for bools, which take no value in help
}

type boolValue struct{ p *bool }

func (v boolValue) set(raw string) error {
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return fmt.Errorf("%q is not a bool", raw)
	}
	*v.p = b
	return nil
}
func (v boolValue) String() string   { return strconv.FormatBool(*v.p) }
func (v boolValue) typeName() string { return "" }

type stringValue struct{ p *string }

func (v stringValue) set(raw string) error { *v.p = raw; return nil }
func (v stringValue) String() string       { return strconv.Quote(*v.p) }
func (v stringValue) typeName() string     { return "string" }

type intValue struct{ p *int }

func (v intValue) set(raw string) error {
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fmt.Errorf("%q is not an integer", raw)
	}
	*v.p = n
	return nil
}
func (v intValue) String() string   { return strconv.Itoa(*v.p) }
func (v intValue) typeName() string { return "int" }

type flag struct {
	name      string
	shorthand rune
	usage     string
	value     value
	defValue  string
	changed   bool // set by argv
}

func (f *flag) display() string {
	if f.shorthand != 0 {
		return fmt.Sprintf("-%c/--%s", f.shorthand, f.name)
	}
	return "--" + f.name
}

// FlagSet is a typed flag registry for a command. Each flag remembers whether argv set it, so callers can layer explicit flags over other configuration.
type FlagSet struct {
	byName  map[string]*flag
	byShort map[rune]*flag
}

func newFlagSet() *FlagSet {
	return &FlagSet{byName: map[string]*flag{}, byShort: map[rune]*flag{}}
}

// Bool defines a bool flag. A bare "--name" sets it to true. shorthand may be 0.
func (fs *FlagSet) Bool(name string, shorthand rune, def bool, usage string) *bool {
	p := &def
	fs.define(name, shorthand, usage, boolValue{p})
	return p
}

// String defines a string flag. shorthand may be 0.
func (fs *FlagSet) String(name string, shorthand rune, def string, usage string) *string {
	p := &def
	fs.define(name, shorthand, usage, stringValue{p})
	return p
}

// Int defines an int flag. shorthand may be 0.
func (fs *FlagSet) Int(name string, shorthand rune, def int, usage string) *int {
	p := &def
	fs.define(name, shorthand, usage, intValue{p})
	return p
}

func (fs *FlagSet) define(name string, shorthand rune, usage string, v value) {
	if name == "" {
		panic("cli: flag name must be non-empty")
	}
	if _, dup := fs.byName[name]; dup {
		panic("cli: duplicate flag: --" + name)
	}
	f := &flag{name: name, shorthand: shorthand, usage: usage, value: v, defValue: v.String()}
	if shorthand != 0 {
		if _, dup := fs.byShort[shorthand]; dup {
			panic(fmt.Sprintf("cli: duplicate shorthand flag: -%c", shorthand))
		}
		fs.byShort[shorthand] = f
	}
	fs.byName[name] = f
}

// Changed reports whether the flag named name was set on the command line. It is false for unknown names.
func (fs *FlagSet) Changed(name string) bool {
	f := fs.byName[name]
	return f != nil && f.changed
}

// Visit calls fn, in name order, for each flag that was set on the command line.
func (fs *FlagSet) Visit(fn func(name string)) {
	for _, f := range fs.sorted() {
		if f.changed {
			fn(f.name)
		}
	}
}

func (fs *FlagSet) sorted() []*flag {
	out := make([]*flag, 0, len(fs.byName))
	for _, f := range fs.byName {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].name < out[j].name })
	return out
}

// flagScope is every flag usable by one command: its own flags plus the persistent flags of it and its ancestors.
type flagScope struct {
	byName  map[string]*flag
	byShort map[rune]*flag
}

func scopeOf(c *Command) flagScope {
	s := flagScope{byName: map[string]*flag{}, byShort: map[rune]*flag{}}
	for _, cmd := range c.path() {
		if cmd.persistent != nil {
			s.add(cmd.persistent)
		}
	}
	if c.local != nil {
		s.add(c.local)
	}
	return s
}

func (s flagScope) add(fs *FlagSet) {
	for name, f := range fs.byName {
		if other, ok := s.byName[name]; ok && other != f {
			panic("cli: flag name conflict across command path: --" + name)
		}
		s.byName[name] = f
		if f.shorthand != 0 {
			if other, ok := s.byShort[f.shorthand]; ok && other != f {
				panic(fmt.Sprintf("cli: shorthand conflict across command path: -%c", f.shorthand))
			}
			s.byShort[f.shorthand] = f
		}
	}
}

func (s flagScope) sorted() []*flag {
	fs := FlagSet{byName: s.byName}
	return fs.sorted()
}
