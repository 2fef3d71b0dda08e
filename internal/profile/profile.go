// Package profile implements the two-level section/property store spec.md
// §4.A describes: cached string values with $Variable$ expansion, a
// changed-sections changeset for incremental saves, and section lookup by
// name prefix for the profile's "Menu.*"/"Layer.*" conventions.
//
// Grounded on the original Profile.h/.cpp contract (see original_source/):
// a Property carries three strings (str = active expanded value, pattern =
// raw pre-expansion text, file = value last persisted), and setting a
// variable eagerly re-expands every cached pattern that references it.
package profile

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"sync"
)

// Property holds one profile value at its three stages of processing.
type Property struct {
	Str     string // active value, after $Var$ expansion
	Pattern string // raw value as last set, before expansion
	File    string // value last persisted to disk
	save    bool   // whether Str/Pattern should ever be written to file
}

// Store is the profile's in-memory section/property table.
type Store struct {
	mu sync.RWMutex

	// sectionOrder preserves insertion order so prefix queries ("Menu.*")
	// return indices in the order sections were first seen, matching
	// Profile::allSections()'s iteration contract.
	sectionOrder []string
	sections     map[string]map[string]*Property

	vars     map[string]string
	varUsers map[string]map[varKey]bool // variable name -> patterns that reference it

	changed map[string]map[string]bool // section -> property -> true
}

type varKey struct{ section, property string }

// New creates an empty Store.
func New() *Store {
	return &Store{
		sections: make(map[string]map[string]*Property),
		vars:     make(map[string]string),
		varUsers: make(map[string]map[varKey]bool),
		changed:  make(map[string]map[string]bool),
	}
}

func (s *Store) ensureSection(section string) map[string]*Property {
	m, ok := s.sections[section]
	if !ok {
		m = make(map[string]*Property)
		s.sections[section] = m
		s.sectionOrder = append(s.sectionOrder, section)
	}
	return m
}

// GetStr returns a property's active (expanded) value, or def if absent.
func (s *Store) GetStr(section, property, def string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if m, ok := s.sections[section]; ok {
		if p, ok := m[property]; ok {
			return p.Str
		}
	}
	return def
}

// GetInt parses a property as an integer, returning def on absence or
// malformed content (malformed content is the caller's concern to log as a
// parse error — this function stays side-effect free).
func (s *Store) GetInt(section, property string, def int) int {
	v := s.GetStr(section, property, "")
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return def
	}
	return n
}

// GetBool parses a property as a boolean ("true"/"1"/"yes" are true,
// case-insensitively; anything else is false).
func (s *Store) GetBool(section, property string, def bool) bool {
	v := strings.ToLower(strings.TrimSpace(s.GetStr(section, property, "")))
	switch v {
	case "":
		return def
	case "true", "1", "yes", "on":
		return true
	default:
		return false
	}
}

// GetFloat parses a property as a float64, returning def on absence or
// malformed content.
func (s *Store) GetFloat(section, property string, def float64) float64 {
	v := s.GetStr(section, property, "")
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil {
		return def
	}
	return f
}

// SetStr sets a property's pattern and re-expands it into Str. If saveToFile
// is true the value is also eligible for persistence by SaveChangesToFile.
// Setting a value identical to the current Str is a no-op (does not appear
// in ChangedSections), per Profile::setStr's "does nothing if match prev
// value" contract.
func (s *Store) SetStr(section, property, value string, saveToFile bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.setStrLocked(section, property, value, saveToFile)
}

func (s *Store) setStrLocked(section, property, value string, saveToFile bool) {
	m := s.ensureSection(section)
	expanded := s.expandLocked(value)
	p, ok := m[property]
	if ok && p.Str == expanded && p.Pattern == value {
		return
	}
	if !ok {
		p = &Property{}
		m[property] = p
	}
	s.untrackVarsLocked(section, property, p.Pattern)
	p.Pattern = value
	p.Str = expanded
	p.save = p.save || saveToFile
	s.trackVarsLocked(section, property, value)
	s.markChangedLocked(section, property)
}

// SetNewStr sets a property only if it does not yet exist or is currently
// empty, per Profile::setNewStr.
func (s *Store) SetNewStr(section, property, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m := s.ensureSection(section)
	if p, ok := m[property]; ok && p.Str != "" {
		return
	}
	s.setStrLocked(section, property, value, true)
}

func (s *Store) markChangedLocked(section, property string) {
	m, ok := s.changed[section]
	if !ok {
		m = make(map[string]bool)
		s.changed[section] = m
	}
	m[property] = true
}

// ChangedSections returns, for each section with at least one changed
// property since the last Load/ClearChangedSections, the set of changed
// property names.
func (s *Store) ChangedSections() map[string][]string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string][]string, len(s.changed))
	for section, props := range s.changed {
		names := make([]string, 0, len(props))
		for name := range props {
			names = append(names, name)
		}
		sort.Strings(names)
		out[section] = names
	}
	return out
}

// ClearChangedSections resets the changeset.
func (s *Store) ClearChangedSections() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.changed = make(map[string]map[string]bool)
}

// SectionsWithPrefix returns section names beginning with prefix, in
// insertion order, matching the profile's "Menu.*"/"Layer.*" convention.
func (s *Store) SectionsWithPrefix(prefix string) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []string
	for _, name := range s.sectionOrder {
		if strings.HasPrefix(name, prefix) {
			out = append(out, name)
		}
	}
	return out
}

// Properties returns a snapshot of every property name/value in a section
// (empty if the section doesn't exist), in no particular order.
func (s *Store) Properties(section string) map[string]string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := map[string]string{}
	for name, p := range s.sections[section] {
		out[name] = p.Str
	}
	return out
}

// --- Variables ---

// SetVariable assigns a variable's value and re-expands every cached
// pattern that references it via $Name$, per the "variable table change
// propagation" supplement in SPEC_FULL.md. temporary variables are not
// themselves written to file (their referencing properties still may be).
func (s *Store) SetVariable(name, value string, temporary bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.vars[name] = value
	users, ok := s.varUsers[name]
	if !ok {
		return
	}
	for key := range users {
		m := s.sections[key.section]
		if m == nil {
			continue
		}
		p, ok := m[key.property]
		if !ok {
			continue
		}
		p.Str = s.expandLocked(p.Pattern)
	}
}

// Variable returns a variable's current raw value.
func (s *Store) Variable(name string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.vars[name]
	return v, ok
}

func (s *Store) trackVarsLocked(section, property, pattern string) {
	for _, name := range referencedVars(pattern) {
		users, ok := s.varUsers[name]
		if !ok {
			users = make(map[varKey]bool)
			s.varUsers[name] = users
		}
		users[varKey{section, property}] = true
	}
}

func (s *Store) untrackVarsLocked(section, property, pattern string) {
	for _, name := range referencedVars(pattern) {
		if users, ok := s.varUsers[name]; ok {
			delete(users, varKey{section, property})
		}
	}
}

// referencedVars returns the distinct $Name$ variable names in s.
func referencedVars(s string) []string {
	var out []string
	for i := 0; i < len(s); {
		if s[i] != '$' {
			i++
			continue
		}
		end := strings.IndexByte(s[i+1:], '$')
		if end < 0 {
			break
		}
		name := s[i+1 : i+1+end]
		if name != "" {
			out = append(out, name)
		}
		i = i + 1 + end + 1
	}
	return out
}

// expandLocked substitutes every $Name$ reference in pattern with the
// variable's current value (empty string if unset). Must be called with
// s.mu held.
func (s *Store) expandLocked(pattern string) string {
	if !strings.Contains(pattern, "$") {
		return pattern
	}
	var b strings.Builder
	for i := 0; i < len(pattern); {
		if pattern[i] != '$' {
			b.WriteByte(pattern[i])
			i++
			continue
		}
		end := strings.IndexByte(pattern[i+1:], '$')
		if end < 0 {
			b.WriteString(pattern[i:])
			break
		}
		name := pattern[i+1 : i+1+end]
		b.WriteString(s.vars[name])
		i = i + 1 + end + 1
	}
	return b.String()
}

// --- Persistence ---

// SaveChangesToFile flushes every property whose File differs from its
// Pattern and was marked savable, writing the Pattern, calling write once
// per (section, property, value).
// It does not itself touch disk — the caller supplies the sink, matching
// the out-of-scope "on-disk INI reader/writer" boundary (§1).
func (s *Store) SaveChangesToFile(write func(section, property, value string) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, section := range s.sectionOrder {
		props := s.sections[section]
		names := make([]string, 0, len(props))
		for name := range props {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			p := props[name]
			if !p.save || p.File == p.Pattern {
				continue
			}
			if err := write(section, name, p.Pattern); err != nil {
				return fmt.Errorf("profile: save %s.%s: %w", section, name, err)
			}
			p.File = p.Pattern
		}
	}
	return nil
}

// LoadINI is the minimal on-disk INI reader the engine needs to bootstrap a
// Store from a profile file. It is intentionally simple: "[Section]" headers
// and "Key = Value" properties, '#' and ';' full-line comments, blank lines
// ignored. Richer editing (round-tripping comments, preserving formatting)
// is the out-of-scope profile editor's job (§1); this only needs to load
// values for the command parser and input map to consume.
func LoadINI(path string) (*Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	s := New()
	section := ""
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(strings.TrimRight(line, "\r"))
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, ";") {
			continue
		}
		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			section = line[1 : len(line)-1]
			s.ensureSection(section)
			continue
		}
		eq := strings.IndexByte(line, '=')
		if eq < 0 {
			continue
		}
		key := strings.TrimSpace(line[:eq])
		value := strings.TrimSpace(line[eq+1:])
		s.SetStr(section, key, value, true)
		if p := s.sections[section][key]; p != nil {
			p.File = p.Pattern
		}
	}
	s.ClearChangedSections()
	return s, nil
}
