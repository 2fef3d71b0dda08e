package inputmap

import (
	"fmt"
	"sort"
	"strings"

	"github.com/Danondso/gamepadoverlay/internal/command"
	"github.com/Danondso/gamepadoverlay/internal/errs"
	"github.com/Danondso/gamepadoverlay/internal/keycode"
	"github.com/Danondso/gamepadoverlay/internal/profile"
)

// InputMap is the aggregate root owning every entity §4.D describes. Other
// components address its entities by integer ID/index, never by pointer.
type InputMap struct {
	Hotspots []Hotspot
	Arrays   map[string]*HotspotArray

	KeyBinds      []KeyBind
	keyBindByName map[string]int

	KeyBindCycles []KeyBindCycle
	cycleByName   map[string]int

	Layers      []ControlsLayer
	layerByName map[string]int // name -> index into Layers; never a pointer (§9)

	Menus      []Menu
	menuByName map[string]int

	Commands []command.Command

	// Parser is the command-text parser bound to this InputMap as its
	// Resolver, so command strings parsed while loading can reference any
	// entity by name as soon as it's registered. Exposed for the dispatcher,
	// which needs the same macro/variable interning tables at runtime (e.g.
	// SetVariable executed from a gamepad button must reuse the ID the
	// profile's own SetVariable command was parsed with).
	Parser *command.Parser

	// Errors records non-fatal structural problems recovered from during
	// Validate (e.g. a broken key-bind trigger cycle) instead of failing
	// the whole profile load.
	Errors *errs.Log
}

// KeyBindID resolves a key-bind by name, or -1 if unknown.
func (m *InputMap) KeyBindID(name string) int {
	if i, ok := m.keyBindByName[name]; ok {
		return i
	}
	return -1
}

// MenuID resolves a menu by name, or -1 if unknown.
func (m *InputMap) MenuID(name string) int {
	if i, ok := m.menuByName[name]; ok {
		return i
	}
	return -1
}

// CycleID resolves a key-bind cycle by name, or -1 if unknown.
func (m *InputMap) CycleID(name string) int {
	if i, ok := m.cycleByName[name]; ok {
		return i
	}
	return -1
}

// LayerID resolves a controls layer (plain or combo) by name, or -1 if
// unknown. Combo layers ("A+B") are registered lazily the first time a
// command references them, since the profile itself never declares them
// under their own [Layer.A+B] section unless it also customizes them.
func (m *InputMap) LayerID(name string) int {
	if id, ok := m.layerByName[name]; ok {
		return id
	}
	if parts, ok := splitComboName(name); ok {
		m.registerLayer(ControlsLayer{Name: name, Parts: parts, ParentID: -1, MouseMode: -1})
		return m.layerByName[name]
	}
	return -1
}

// HotspotIDByRef resolves an "ArrayName.Index" reference, or HotspotIDNone
// if unresolvable. Exported for the command parser's Resolver interface.
func (m *InputMap) HotspotIDByRef(ref string) int {
	return m.resolveHotspotRef(ref)
}

// Load builds an InputMap from a profile.Store, following §4.D's mandated
// order: hotspot arrays/hotspots, then key-binds, then key-bind cycles, then
// menus (pre-created empty so forward references resolve), then controls
// layers including combo layers, then the cross-entity validation passes.
func Load(store *profile.Store) (*InputMap, error) {
	m := &InputMap{
		Arrays:        map[string]*HotspotArray{},
		keyBindByName: map[string]int{},
		cycleByName:   map[string]int{},
		layerByName:   map[string]int{},
		menuByName:    map[string]int{},
		Errors:        errs.NewLog(64),
	}
	m.Parser = command.New(m)

	if err := m.loadHotspotArrays(store); err != nil {
		return nil, err
	}
	if err := m.loadKeyBinds(store); err != nil {
		return nil, err
	}
	if err := m.loadKeyBindCycles(store); err != nil {
		return nil, err
	}
	m.preCreateMenus(store)
	if err := m.loadMenus(store); err != nil {
		return nil, err
	}
	if err := m.loadLayers(store); err != nil {
		return nil, err
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

// loadHotspotArrays reads every "Hotspots.<Name>" section into a
// HotspotArray and its backing Hotspot entries.
func (m *InputMap) loadHotspotArrays(store *profile.Store) error {
	for _, section := range store.SectionsWithPrefix("Hotspots.") {
		name := strings.TrimPrefix(section, "Hotspots.")
		arr := &HotspotArray{Name: name, OffsetScale: 1}
		props := store.Properties(section)

		maxIdx := 0
		type rawEntry struct {
			key   string
			value string
		}
		var entries []rawEntry
		for k, v := range props {
			entries = append(entries, rawEntry{k, v})
		}
		sort.Slice(entries, func(i, j int) bool { return entries[i].key < entries[j].key })

		for _, e := range entries {
			pk := ParsePropertyKey(e.key)
			if pk.ArrayName != "" && pk.ArrayName != name {
				continue
			}
			switch {
			case pk.SingleIndex > 0:
				if pk.SingleIndex > maxIdx {
					maxIdx = pk.SingleIndex
				}
			case pk.RangeLast > 0:
				if pk.RangeLast > maxIdx {
					maxIdx = pk.RangeLast
				}
			}
		}

		arr.FirstID = len(m.Hotspots) + HotspotIDFirstOrdinary
		arr.MaxSize = maxIdx
		m.Hotspots = append(m.Hotspots, make([]Hotspot, maxIdx)...)
		for i := 0; i < maxIdx; i++ {
			h := &m.Hotspots[arr.FirstID-HotspotIDFirstOrdinary+i]
			h.ID = arr.FirstID + i
		}

		for _, e := range entries {
			pk := ParsePropertyKey(e.key)
			val, err := ParseHotspotValue(e.value)
			if err != nil {
				return fmt.Errorf("inputmap: %s.%s: %w", section, e.key, err)
			}
			switch {
			case pk.SingleIndex > 0:
				m.applyHotspotValue(arr, pk.SingleIndex, val, e.value == "")
			case pk.RangeLast > 0:
				rng := HotspotRange{First: pk.RangeFirst, Last: pk.RangeLast}
				rng.Flags.Removed = e.value == ""
				if val.HasScale {
					arr.OffsetScale = val.Scale
				}
				arr.Ranges = append(arr.Ranges, rng)
				for i := pk.RangeFirst; i <= pk.RangeLast; i++ {
					m.applyHotspotValue(arr, i, val, false)
				}
			default:
				// bare array name: anchor coordinate for the whole array
				anchor := Hotspot{ID: len(m.Hotspots) + HotspotIDFirstOrdinary, X: val.X, Y: val.Y, W: val.W, H: val.H, Scale: val.Scale}
				m.Hotspots = append(m.Hotspots, anchor)
				arr.AnchorID = m.Hotspots[len(m.Hotspots)-1].ID
			}
		}
		arr.recomputeSize()
		m.Arrays[name] = arr
	}
	return nil
}

func (m *InputMap) applyHotspotValue(arr *HotspotArray, idx int, val HotspotValue, removed bool) {
	id := arr.HotspotID(idx)
	if id == HotspotIDNone {
		return
	}
	h := &m.Hotspots[id-HotspotIDFirstOrdinary]
	h.X, h.Y, h.W, h.H = val.X, val.Y, val.W, val.H
	if val.HasScale {
		h.Scale = val.Scale
	} else {
		h.Scale = 1
	}
	h.Invalidated = removed
}

// loadKeyBinds reads the flat [KeyBinds] section: one property per key-bind,
// its value a command-parser-ready string (possibly ';'-separated for
// multiple commands).
func (m *InputMap) loadKeyBinds(store *profile.Store) error {
	props := store.Properties("KeyBinds")
	names := make([]string, 0, len(props))
	for name := range props {
		names = append(names, name)
	}
	sort.Strings(names)

	// Pre-register every name first so TriggerKeyBind can resolve forward
	// references to key-binds not yet parsed.
	for _, name := range names {
		m.keyBindByName[name] = len(m.KeyBinds)
		m.KeyBinds = append(m.KeyBinds, KeyBind{ID: len(m.KeyBinds), Name: name})
	}

	for _, name := range names {
		idx := m.keyBindByName[name]
		for _, part := range strings.Split(props[name], ";") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			cmd, err := m.Parser.Parse(part)
			if err != nil {
				return fmt.Errorf("inputmap: KeyBinds.%s: %w", name, err)
			}
			m.KeyBinds[idx].Commands = append(m.KeyBinds[idx].Commands, len(m.Commands))
			m.Commands = append(m.Commands, cmd)
		}
	}
	return nil
}

// loadKeyBindCycles reads "KeyBindCycle.<Name>" sections: an "Entries"
// property of "N:kb1,hotspot1;kb2,hotspot2;..." per the length-prefixed
// grammar SPEC_FULL.md documents.
func (m *InputMap) loadKeyBindCycles(store *profile.Store) error {
	for _, section := range store.SectionsWithPrefix("KeyBindCycle.") {
		name := strings.TrimPrefix(section, "KeyBindCycle.")
		raw := store.GetStr(section, "Entries", "")
		cyc := KeyBindCycle{ID: len(m.KeyBindCycles), Name: name}
		if colon := strings.IndexByte(raw, ':'); colon >= 0 {
			raw = raw[colon+1:]
		}
		for _, chunk := range strings.Split(raw, ";") {
			chunk = strings.TrimSpace(chunk)
			if chunk == "" {
				continue
			}
			fields := strings.SplitN(chunk, ",", 2)
			kbName := strings.TrimSpace(fields[0])
			kbID := m.KeyBindID(kbName)
			if kbID < 0 {
				return fmt.Errorf("inputmap: %s references unknown key-bind %q", section, kbName)
			}
			entry := KeyBindCycleEntry{KeyBindID: kbID, HotspotID: HotspotIDNone}
			if len(fields) == 2 {
				hsName := strings.TrimSpace(fields[1])
				if hsName != "" {
					entry.HotspotID = m.resolveHotspotRef(hsName)
				}
			}
			cyc.Entries = append(cyc.Entries, entry)
		}
		m.cycleByName[name] = len(m.KeyBindCycles)
		m.KeyBindCycles = append(m.KeyBindCycles, cyc)
	}
	return nil
}

// resolveHotspotRef resolves an "ArrayName.Index" reference used by
// key-bind cycle entries and menu items, returning HotspotIDNone if
// unresolvable rather than erroring (a dangling hotspot ref degrades to "no
// highlight", it does not break navigation).
func (m *InputMap) resolveHotspotRef(ref string) int {
	dot := strings.LastIndexByte(ref, '.')
	if dot < 0 {
		return HotspotIDNone
	}
	arr, ok := m.Arrays[ref[:dot]]
	if !ok {
		return HotspotIDNone
	}
	var idx int
	if _, err := fmt.Sscanf(ref[dot+1:], "%d", &idx); err != nil {
		return HotspotIDNone
	}
	return arr.HotspotID(idx)
}

// preCreateMenus walks every "Menu.<Name>" section and ensures an empty Menu
// entry exists for it before loadMenus fills in items, so a menu can
// reference a sibling menu (OpenSubMenu) regardless of section order.
func (m *InputMap) preCreateMenus(store *profile.Store) {
	for _, section := range store.SectionsWithPrefix("Menu.") {
		name := strings.TrimPrefix(section, "Menu.")
		if _, ok := m.menuByName[name]; ok {
			continue
		}
		m.menuByName[name] = len(m.Menus)
		m.Menus = append(m.Menus, Menu{
			ID: len(m.Menus), Name: name, ParentID: -1,
			DirCommands: [5]int{-1, -1, -1, -1, -1},
		})
	}
}

// loadMenus fills in each pre-created Menu's style and items.
func (m *InputMap) loadMenus(store *profile.Store) error {
	for _, section := range store.SectionsWithPrefix("Menu.") {
		name := strings.TrimPrefix(section, "Menu.")
		idx := m.menuByName[name]
		menu := &m.Menus[idx]
		menu.Style = StyleByName(store.GetStr(section, "Style", "List"))
		menu.Rows = store.GetInt(section, "Rows", 0)
		menu.Columns = store.GetInt(section, "Columns", 0)

		props := store.Properties(section)
		itemKeys := make([]string, 0)
		for k := range props {
			if strings.HasPrefix(k, "Item") {
				itemKeys = append(itemKeys, k)
			}
		}
		sort.Strings(itemKeys)
		for _, k := range itemKeys {
			item, err := m.parseMenuItem(props[k])
			if err != nil {
				return fmt.Errorf("inputmap: %s.%s: %w", section, k, err)
			}
			menu.Items = append(menu.Items, item)
		}

		for key, dir := range dirPropertyKeys {
			raw, ok := props[key]
			if !ok || strings.TrimSpace(raw) == "" {
				continue
			}
			cmd, err := m.Parser.Parse(strings.TrimSpace(raw))
			if err != nil {
				return fmt.Errorf("inputmap: %s.%s: %w", section, key, err)
			}
			menu.DirCommands[dir] = len(m.Commands)
			m.Commands = append(m.Commands, cmd)
		}
	}
	return nil
}

// dirPropertyKeys maps a menu section's directional-command property name to
// the command.Direction slot it fills in Menu.DirCommands (§3's "4
// directional items").
var dirPropertyKeys = map[string]command.Direction{
	"DUp":    command.DirUp,
	"DDown":  command.DirDown,
	"DLeft":  command.DirLeft,
	"DRight": command.DirRight,
}

// parseMenuItem parses "Label|Command[|HotspotRef]" per §4.F.
func (m *InputMap) parseMenuItem(raw string) (MenuItem, error) {
	fields := strings.Split(raw, "|")
	item := MenuItem{CommandID: -1, HotspotID: HotspotIDNone}
	if len(fields) > 0 {
		item.Label = strings.TrimSpace(fields[0])
	}
	if len(fields) > 1 && strings.TrimSpace(fields[1]) != "" {
		cmd, err := m.Parser.Parse(strings.TrimSpace(fields[1]))
		if err != nil {
			return item, err
		}
		item.CommandID = len(m.Commands)
		m.Commands = append(m.Commands, cmd)
	}
	if len(fields) > 2 && strings.TrimSpace(fields[2]) != "" {
		item.HotspotID = m.resolveHotspotRef(strings.TrimSpace(fields[2]))
	}
	return item, nil
}

// loadLayers reads "Layer.<Name>" sections (plain layers, bindings keyed by
// signal ID) plus registers any combo layer ("A+B") referenced by name but
// never itself defined, so EffectiveBindings can resolve them lazily.
// Besides plain signal->keybind bindings, a handful of reserved property
// names fill in §3/§4.D's wider layer model: "Parent" (parent_layer, by
// name — resolved to an ID in a second pass below so a parent section later
// in iteration order still resolves), "Priority", "MouseMode", "Show"/"Hide"
// (comma-separated overlay IDs), "EnableArray"/"DisableArray"
// (comma-separated hotspot array names), "AutoAdd"/"AutoRemove"
// (comma-separated layer names), "When.<signal>" (a command evaluated every
// tick), and "Down.<signal>"/"Hold.<signal>"/"Tap.<signal>"/"Release.<signal>"
// (the non-Press button-action phases; a bare numeric key is still the Press
// phase, preserving the original flat grammar for the common case).
func (m *InputMap) loadLayers(store *profile.Store) error {
	pendingParents := map[int]string{}
	pendingAutoAdd := map[int][]string{}
	pendingAutoRemove := map[int][]string{}

	for _, section := range store.SectionsWithPrefix("Layer.") {
		name := strings.TrimPrefix(section, "Layer.")
		if parts, ok := splitComboName(name); ok {
			m.registerLayer(ControlsLayer{Name: name, Parts: parts, ParentID: -1, MouseMode: -1})
			continue
		}
		layer := ControlsLayer{
			Name: name, Parts: []string{name}, Bindings: map[int]int{},
			ParentID: -1, MouseMode: -1,
		}
		var parentName string
		var autoAddNames, autoRemoveNames []string

		props := store.Properties(section)
		keys := make([]string, 0, len(props))
		for k := range props {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, key := range keys {
			val := strings.TrimSpace(props[key])
			switch {
			case key == "Parent":
				parentName = val
			case key == "Priority":
				fmt.Sscanf(val, "%d", &layer.Priority)
			case key == "MouseMode":
				fmt.Sscanf(val, "%d", &layer.MouseMode)
			case key == "Show":
				layer.ShowOverlays = parseIntCSV(val)
			case key == "Hide":
				layer.HideOverlays = parseIntCSV(val)
			case key == "EnableArray":
				layer.EnableArrays = splitCSV(val)
			case key == "DisableArray":
				layer.DisableArrays = splitCSV(val)
			case key == "AutoAdd":
				autoAddNames = splitCSV(val)
			case key == "AutoRemove":
				autoRemoveNames = splitCSV(val)
			case strings.HasPrefix(key, "When."):
				sig, ok := parseSignalSuffix(key, "When.")
				if !ok {
					continue
				}
				cmd, err := m.Parser.Parse(val)
				if err != nil {
					return fmt.Errorf("inputmap: %s.%s: %w", section, key, err)
				}
				if layer.When == nil {
					layer.When = map[int]int{}
				}
				layer.When[sig] = len(m.Commands)
				m.Commands = append(m.Commands, cmd)
			case strings.HasPrefix(key, "Down.") || strings.HasPrefix(key, "Hold.") ||
				strings.HasPrefix(key, "Tap.") || strings.HasPrefix(key, "Release."):
				if err := m.applyButtonPhaseProperty(&layer, section, key, val); err != nil {
					return err
				}
			default:
				var sig int
				if _, err := fmt.Sscanf(key, "%d", &sig); err != nil {
					continue
				}
				kbID := m.KeyBindID(val)
				if kbID < 0 {
					return fmt.Errorf("inputmap: %s: unknown key-bind %q for signal %d", section, val, sig)
				}
				layer.Bindings[sig] = kbID
			}
		}

		id := len(m.Layers)
		m.registerLayer(layer)
		if parentName != "" {
			pendingParents[id] = parentName
		}
		if len(autoAddNames) > 0 {
			pendingAutoAdd[id] = autoAddNames
		}
		if len(autoRemoveNames) > 0 {
			pendingAutoRemove[id] = autoRemoveNames
		}
	}

	for id, name := range pendingParents {
		if pid := m.LayerID(name); pid >= 0 {
			m.Layers[id].ParentID = pid
		}
	}
	for id, names := range pendingAutoAdd {
		for _, n := range names {
			if lid := m.LayerID(n); lid >= 0 {
				m.Layers[id].AutoAddLayers = append(m.Layers[id].AutoAddLayers, lid)
			}
		}
	}
	for id, names := range pendingAutoRemove {
		for _, n := range names {
			if lid := m.LayerID(n); lid >= 0 {
				m.Layers[id].AutoRemoveLayers = append(m.Layers[id].AutoRemoveLayers, lid)
			}
		}
	}
	return nil
}

// applyButtonPhaseProperty fills in one signal's non-Press phase (Down, Hold,
// Tap, or Release) from a "<Phase>.<signal>" property, parsing its value the
// same way a key-bind's command text is parsed so a phase can run any
// command, not just TriggerKeyBind.
func (m *InputMap) applyButtonPhaseProperty(layer *ControlsLayer, section, key, val string) error {
	dot := strings.IndexByte(key, '.')
	phaseName, sigPart := key[:dot], key[dot+1:]
	var sig int
	if _, err := fmt.Sscanf(sigPart, "%d", &sig); err != nil {
		return nil
	}
	cmd, err := m.Parser.Parse(val)
	if err != nil {
		return fmt.Errorf("inputmap: %s.%s: %w", section, key, err)
	}
	cmdIdx := len(m.Commands)
	m.Commands = append(m.Commands, cmd)

	if layer.Phases == nil {
		layer.Phases = map[int]ButtonPhases{}
	}
	ph := layer.Phases[sig]
	if ph == (ButtonPhases{}) {
		ph = ButtonPhases{Down: -1, Press: -1, Hold: -1, Tap: -1, Release: -1}
	}
	switch phaseName {
	case "Down":
		ph.Down = cmdIdx
	case "Hold":
		ph.Hold = cmdIdx
	case "Tap":
		ph.Tap = cmdIdx
	case "Release":
		ph.Release = cmdIdx
	}
	layer.Phases[sig] = ph
	return nil
}

// parseSignalSuffix extracts the integer signal ID from a "<prefix><N>"
// property key.
func parseSignalSuffix(key, prefix string) (int, bool) {
	var sig int
	if _, err := fmt.Sscanf(strings.TrimPrefix(key, prefix), "%d", &sig); err != nil {
		return 0, false
	}
	return sig, true
}

// splitCSV splits a comma-separated property value into trimmed, non-empty
// parts.
func splitCSV(val string) []string {
	var out []string
	for _, p := range strings.Split(val, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// parseIntCSV splits and parses a comma-separated list of integer IDs,
// silently skipping any part that doesn't parse.
func parseIntCSV(val string) []int {
	var out []int
	for _, p := range splitCSV(val) {
		var n int
		if _, err := fmt.Sscanf(p, "%d", &n); err == nil {
			out = append(out, n)
		}
	}
	return out
}

func (m *InputMap) registerLayer(l ControlsLayer) {
	l.ID = len(m.Layers)
	m.Layers = append(m.Layers, l)
	m.layerByName[l.Name] = l.ID
}

// Validate runs the cross-entity checks §4.D/§8 require: the key-bind
// trigger graph (TriggerKeyBind edges plus VKeySequence-embedded keybind
// tags) and the layer parent_layer DAG must both be acyclic — any cycle
// found in either is broken locally (the offending edge cleared and logged
// to m.Errors) rather than failing the whole load — and every combo layer's
// parts must name real base layers.
func (m *InputMap) Validate() error {
	if err := validateKeyBindCycles(m.KeyBindCycles); err != nil {
		return err
	}

	names := make([]string, len(m.KeyBinds))
	edges := make([][]int, len(m.KeyBinds))
	for i, kb := range m.KeyBinds {
		names[i] = kb.Name
		for _, cmdIdx := range kb.Commands {
			switch c := m.Commands[cmdIdx].(type) {
			case command.TriggerKeyBind:
				if c.KeyBindID >= 0 && c.KeyBindID < len(m.KeyBinds) {
					edges[i] = append(edges[i], c.KeyBindID)
				}
			case command.VKeySequence:
				_ = keycode.Decode(c.VKeySeq, func(item keycode.SeqItem) error {
					if item.Kind == keycode.SeqKindKeyBind && item.Idx >= 0 && item.Idx < len(m.KeyBinds) {
						edges[i] = append(edges[i], item.Idx)
					}
					return nil
				})
			}
		}
	}
	for _, name := range breakKeyBindCycles(names, edges) {
		idx := m.keyBindByName[name]
		doNothingIdx := len(m.Commands)
		m.Commands = append(m.Commands, command.DoNothing{})
		m.KeyBinds[idx].Commands = []int{doNothingIdx}
		m.Errors.Record(errs.New(errs.Structural, fmt.Sprintf("KeyBind.%s", name), "",
			"key-bind trigger cycle detected, reduced to DoNothing"))
	}

	for _, name := range breakLayerParentCycles(m.Layers) {
		m.Errors.Record(errs.New(errs.Structural, fmt.Sprintf("Layer.%s", name), "Parent",
			"layer parent_layer cycle detected, cleared"))
	}

	for i := range m.Layers {
		l := &m.Layers[i]
		if !l.IsCombo() {
			continue
		}
		if _, err := l.EffectiveBindings(m.Layers, m.layerByName); err != nil {
			return err
		}
	}
	return nil
}
