package inputmap

import (
	"fmt"
	"sort"
	"strings"

	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"
)

// ControlsLayer is a named set of hotspot/key-bind bindings that can be
// pushed onto, or removed from, a signal's active layer stack (spec.md
// §3/§4.D). A combo layer (name "A+B") has no bindings of its own; it is
// synthesized on demand from the bindings of its constituent base layers,
// each looked up by name. Layers also form a separate inheritance DAG via
// ParentID (distinct from the combo-name mechanism): a signal this layer
// doesn't bind itself falls through to its parent's effective bindings.
type ControlsLayer struct {
	ID       int
	Name     string
	Parts    []string    // base layer names this layer is made of; len==1 for a plain layer
	Bindings map[int]int // signal ID -> key-bind ID, explicit on this layer only

	ParentID int // -1 if none; "parent_layer" per §3 — a signal not bound here is looked up on the parent
	Priority int // relative priority among simultaneously active layers (higher wins); reserved for a future priority-based resolver, the stack's push order is authoritative today

	// Phases holds, per signal, the command to run for each of the 5
	// button-action phases (§3/§4.D's "5 button-action phases"). A phase
	// left at -1 falls back to Bindings' single press-trigger behavior.
	Phases map[int]ButtonPhases
	// HoldMs overrides, per signal, how long a Down must be held before its
	// Hold phase fires (0 = layer/global default).
	HoldMs map[int]int

	// When holds the "When <signal>" command map (the Signal feature): a
	// command evaluated every tick the layer is active, independent of any
	// button edge, keyed by signal ID.
	When map[int]int

	ShowOverlays, HideOverlays      []int    // root menu/overlay IDs force-shown/hidden while this layer is active
	EnableArrays, DisableArrays     []string // hotspot array names enabled/disabled while this layer is active
	AutoAddLayers, AutoRemoveLayers []int    // layer IDs automatically pushed/removed alongside this one

	MouseMode   int         // -1 = inherit the active mouse mode, else an override while this layer is active
	ButtonRemap map[int]int // signal ID -> remapped signal ID, applied before any binding lookup on this layer
}

// ButtonPhases is one signal's per-phase command indices (into
// InputMap.Commands), -1 meaning the phase is unset.
type ButtonPhases struct {
	Down, Press, Hold, Tap, Release int
}

// IsCombo reports whether the layer was named as a "A+B[+C...]" combination
// of other layers rather than defined directly in the profile.
func (l *ControlsLayer) IsCombo() bool { return len(l.Parts) > 1 }

// splitComboName splits a layer name like "Aim+Sprint" into its ordered part
// names, or returns (nil, false) if name has no '+' (an ordinary layer).
func splitComboName(name string) ([]string, bool) {
	if !strings.Contains(name, "+") {
		return nil, false
	}
	parts := strings.Split(name, "+")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
		if parts[i] == "" {
			return nil, false
		}
	}
	return parts, true
}

// synthesizeCombo builds a combo layer's effective bindings by overlaying
// its parts' bindings in order, so later parts in the name win ties — this
// mirrors how the original resolves "A+B" layering priority by name order.
// byName and layers resolve a part name to its ControlsLayer by index rather
// than by pointer (§9): layers keeps growing while a profile loads, and a
// pointer taken mid-load into its backing array can go stale on a later
// append, while an index stays valid regardless of reallocation.
func synthesizeCombo(parts []string, layers []ControlsLayer, byName map[string]int) (map[int]int, error) {
	out := map[int]int{}
	for _, name := range parts {
		idx, ok := byName[name]
		if !ok || idx < 0 || idx >= len(layers) {
			return nil, fmt.Errorf("inputmap: combo layer references unknown base layer %q", name)
		}
		base := &layers[idx]
		if base.IsCombo() {
			return nil, fmt.Errorf("inputmap: combo layer %q cannot itself combine other combos", name)
		}
		for sig, kb := range base.Bindings {
			out[sig] = kb
		}
	}
	return out, nil
}

// EffectiveBindings returns a combo layer's synthesized bindings (computing
// them if not yet cached) or a plain layer's own Bindings.
func (l *ControlsLayer) EffectiveBindings(layers []ControlsLayer, byName map[string]int) (map[int]int, error) {
	if !l.IsCombo() {
		return l.Bindings, nil
	}
	if l.Bindings != nil {
		return l.Bindings, nil
	}
	bindings, err := synthesizeCombo(l.Parts, layers, byName)
	if err != nil {
		return nil, err
	}
	l.Bindings = bindings
	return bindings, nil
}

// lookupSignal resolves signalID's key-bind on this layer, falling back to
// ParentID's effective bindings when this layer (or its combo parts) don't
// declare one (§3 parent_layer inheritance). The depth guard is cheap
// insurance beyond Validate's own parent-DAG cycle breaking: it never
// triggers once Validate has run, only if callers skip it.
func (l *ControlsLayer) lookupSignal(signalID int, layers []ControlsLayer, byName map[string]int) (int, bool, error) {
	cur := l
	for depth := 0; depth <= len(layers); depth++ {
		bindings, err := cur.EffectiveBindings(layers, byName)
		if err != nil {
			return 0, false, err
		}
		if kb, ok := bindings[signalID]; ok {
			return kb, true, nil
		}
		if cur.ParentID < 0 || cur.ParentID >= len(layers) {
			return 0, false, nil
		}
		cur = &layers[cur.ParentID]
	}
	return 0, false, nil
}

// breakLayerParentCycles walks every layer's ParentID chain looking for a
// cycle (§3 "Layers form a DAG"); when one closes, the layer that would
// complete it has its ParentID cleared to -1 rather than failing the whole
// profile load — mirrored from breakKeyBindCycles (§8 scenario 4's A→B→C→A
// chain, clear the closing edge, continue).
func breakLayerParentCycles(layers []ControlsLayer) []string {
	var broken []string
	onPath := make([]bool, len(layers))
	visited := make([]bool, len(layers))
	var walk func(i int)
	walk = func(i int) {
		if visited[i] {
			return
		}
		visited[i] = true
		onPath[i] = true
		defer func() { onPath[i] = false }()
		p := layers[i].ParentID
		if p < 0 || p >= len(layers) {
			return
		}
		if onPath[p] {
			broken = append(broken, layers[i].Name)
			layers[i].ParentID = -1
			return
		}
		walk(p)
	}
	for i := range layers {
		walk(i)
	}
	return broken
}

// LayerStack is a per-signal-source stack of active controls layers: the
// topmost entry with a binding for a given signal wins, per §4.D's "layer
// stack" resolution rule.
type LayerStack struct {
	ids []int // ControlsLayer IDs, bottom of stack first
}

// Push adds a layer on top of the stack (AddControlsLayer).
func (s *LayerStack) Push(layerID int) { s.ids = append(s.ids, layerID) }

// Remove removes the first occurrence of layerID, searching from the top,
// per RemoveControlsLayer.
func (s *LayerStack) Remove(layerID int) bool {
	for i := len(s.ids) - 1; i >= 0; i-- {
		if s.ids[i] == layerID {
			s.ids = append(s.ids[:i], s.ids[i+1:]...)
			return true
		}
	}
	return false
}

// Replace removes oldID (if present) and pushes newID in its place at the
// top, per ReplaceControlsLayer.
func (s *LayerStack) Replace(oldID, newID int) {
	s.Remove(oldID)
	s.Push(newID)
}

// Toggle removes layerID if present, or pushes it if absent.
func (s *LayerStack) Toggle(layerID int) {
	if !s.Remove(layerID) {
		s.Push(layerID)
	}
}

// IDs returns the stack's layer IDs, bottom of stack first. The returned
// slice aliases the stack's own backing array and must not be retained
// across a subsequent Push/Remove/Replace/Toggle call.
func (s *LayerStack) IDs() []int { return s.ids }

// Top returns the topmost layer ID, or (0, false) if the stack is empty.
func (s *LayerStack) Top() (int, bool) {
	if len(s.ids) == 0 {
		return 0, false
	}
	return s.ids[len(s.ids)-1], true
}

// Resolve walks the stack top-down, returning the first layer that binds
// signalID, so a higher (later-pushed) layer shadows a lower one. layers is
// indexed directly by ControlsLayer.ID (§9: IDs are stable slice indices,
// never pointers).
func (s *LayerStack) Resolve(signalID int, layers []ControlsLayer, byName map[string]int) (int, bool, error) {
	kb, _, ok, err := s.ResolveFrom(len(s.ids)-1, signalID, layers, byName)
	return kb, ok, err
}

// ResolveFrom walks the stack top-down starting at stack position top
// (inclusive), returning the first layer that binds signalID along with its
// stack position — the Defer command (SPEC_FULL.md's DeferredCommand
// supplement) uses this to re-resolve from just below the layer whose
// binding issued Defer, within the same tick.
func (s *LayerStack) ResolveFrom(top int, signalID int, layers []ControlsLayer, byName map[string]int) (kbID, layerIdx int, ok bool, err error) {
	for i := top; i >= 0 && i < len(s.ids); i-- {
		id := s.ids[i]
		if id < 0 || id >= len(layers) {
			continue
		}
		l := &layers[id]
		kb, found, lerr := l.lookupSignal(signalID, layers, byName)
		if lerr != nil {
			return 0, 0, false, lerr
		}
		if found {
			return kb, i, true, nil
		}
	}
	return 0, 0, false, nil
}

// detectKeyBindCycle looks for one cycle in the key-bind trigger graph
// (TriggerKeyBind edges plus VKeySequence-embedded keybind tags, §4.C/§8
// "Acyclic references") and returns its member names, sorted for a
// deterministic pick, or nil if the graph is currently acyclic. edges[i]
// lists the key-bind indices that key-bind i's commands trigger.
func detectKeyBindCycle(names []string, edges [][]int) []string {
	g := simple.NewDirectedGraph()
	for i := range names {
		g.AddNode(simple.Node(i))
	}
	for from, tos := range edges {
		for _, to := range tos {
			if from == to {
				return []string{names[from]}
			}
			g.SetEdge(g.NewEdge(simple.Node(from), simple.Node(to)))
		}
	}
	cycles := topo.DirectedCyclesIn(g)
	if len(cycles) == 0 {
		return nil
	}
	cycle := cycles[0]
	parts := make([]string, len(cycle))
	for i, n := range cycle {
		parts[i] = names[n.ID()]
	}
	sort.Strings(parts)
	return parts
}

// breakKeyBindCycles repeatedly finds and breaks a cycle in the key-bind
// trigger graph by clearing the alphabetically-first member's outgoing
// edges, rather than aborting the whole profile load: a self-referencing or
// mutually re-triggering chain of key-binds would recurse forever at
// dispatch time, but the offending keybind itself is reduced to DoNothing
// and operation continues (§4.C, §7 Structural kind, §8 scenario 4). Returns
// the name of every key-bind broken this way, in the order broken, so the
// caller can demote each one's Commands and log it.
func breakKeyBindCycles(names []string, edges [][]int) []string {
	var broken []string
	for {
		cycle := detectKeyBindCycle(names, edges)
		if cycle == nil {
			return broken
		}
		victim := cycle[0]
		idx := -1
		for i, n := range names {
			if n == victim {
				idx = i
				break
			}
		}
		if idx < 0 {
			return broken
		}
		edges[idx] = nil
		broken = append(broken, victim)
	}
}
