package inputmap

import (
	"testing"

	"github.com/Danondso/gamepadoverlay/internal/command"
	"github.com/Danondso/gamepadoverlay/internal/profile"
)

func TestLoadOrderAndHotspotArrays(t *testing.T) {
	s := profile.New()
	s.SetStr("Hotspots.Quick", "", "50%,50%", true)
	s.SetStr("Hotspots.Quick", "Quick1", "10%,10%,20x20", true)
	s.SetStr("Hotspots.Quick", "Quick2", "30%,10%,20x20", true)

	m, err := Load(s)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	arr, ok := m.Arrays["Quick"]
	if !ok {
		t.Fatalf("expected array Quick")
	}
	if arr.Size != 2 {
		t.Fatalf("expected Size 2, got %d", arr.Size)
	}
	id1 := arr.HotspotID(1)
	if id1 == HotspotIDNone {
		t.Fatalf("expected valid hotspot id for index 1")
	}
}

func TestKeyBindCycleSignalIDAndAdvance(t *testing.T) {
	s := profile.New()
	s.SetStr("KeyBinds", "Fire", "DoNothing", true)
	s.SetStr("KeyBinds", "Reload", "DoNothing", true)
	s.SetStr("KeyBindCycle.Weapon", "Entries", "2:Fire,;Reload,", true)

	m, err := Load(s)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	cid := m.CycleID("Weapon")
	if cid < 0 {
		t.Fatalf("expected cycle Weapon")
	}
	cyc := &m.KeyBindCycles[cid]
	if len(cyc.Entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(cyc.Entries))
	}
	first := cyc.SignalID()
	cyc.Advance()
	second := cyc.SignalID()
	if first == second {
		t.Fatalf("expected signal id to change after Advance")
	}
	cyc.Advance()
	if cyc.SignalID() != first {
		t.Fatalf("expected wraparound back to first signal id")
	}
}

func TestKeyBindChainCycleBrokenNonFatally(t *testing.T) {
	s := profile.New()
	s.SetStr("KeyBinds", "AlphaBind", "BetaBind", true)
	s.SetStr("KeyBinds", "BetaBind", "AlphaBind", true)

	m, err := Load(s)
	if err != nil {
		t.Fatalf("expected cycle to be recovered from rather than fail Load, got %v", err)
	}
	if m.Errors.Len() == 0 {
		t.Fatalf("expected the cycle to be logged to m.Errors")
	}
	aCmds := m.KeyBinds[m.KeyBindID("AlphaBind")].Commands
	bCmds := m.KeyBinds[m.KeyBindID("BetaBind")].Commands
	aIsDoNothing := len(aCmds) == 1
	if aIsDoNothing {
		if _, ok := m.Commands[aCmds[0]].(command.DoNothing); !ok {
			aIsDoNothing = false
		}
	}
	bIsDoNothing := len(bCmds) == 1
	if bIsDoNothing {
		if _, ok := m.Commands[bCmds[0]].(command.DoNothing); !ok {
			bIsDoNothing = false
		}
	}
	if !aIsDoNothing && !bIsDoNothing {
		t.Fatalf("expected one of A/B to be reduced to DoNothing to break the cycle")
	}
}

func TestKeyBindChainCycleViaVKeySequenceTriggerTag(t *testing.T) {
	s := profile.New()
	s.SetStr("KeyBinds", "A", "Trigger:B", true)
	s.SetStr("KeyBinds", "B", "Trigger:A", true)

	m, err := Load(s)
	if err != nil {
		t.Fatalf("expected cycle to be recovered from rather than fail Load, got %v", err)
	}
	if m.Errors.Len() == 0 {
		t.Fatalf("expected the VKeySequence-embedded trigger cycle to be detected and logged")
	}
}

func TestComboLayerSynthesis(t *testing.T) {
	s := profile.New()
	s.SetStr("KeyBinds", "Jump", "DoNothing", true)
	s.SetStr("KeyBinds", "Sprint", "DoNothing", true)
	s.SetStr("Layer.Base", "1", "Jump", true)
	s.SetStr("Layer.Modifier", "1", "Sprint", true)
	s.SetStr("Layer.Base+Modifier", "Combo", "true", true)

	m, err := Load(s)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	comboID, ok := m.layerByName["Base+Modifier"]
	if !ok {
		t.Fatalf("expected combo layer registered")
	}
	combo := &m.Layers[comboID]
	bindings, err := combo.EffectiveBindings(m.Layers, m.layerByName)
	if err != nil {
		t.Fatalf("EffectiveBindings: %v", err)
	}
	if kb, ok := bindings[1]; !ok || kb != m.KeyBindID("Sprint") {
		t.Fatalf("expected signal 1 to resolve to Sprint (later part wins), got %v ok=%v", kb, ok)
	}
}

func TestLayerParentInheritance(t *testing.T) {
	s := profile.New()
	s.SetStr("KeyBinds", "Walk", "DoNothing", true)
	s.SetStr("KeyBinds", "Jump", "DoNothing", true)
	s.SetStr("Layer.Base", "1", "Walk", true)
	s.SetStr("Layer.Child", "Parent", "Base", true)
	s.SetStr("Layer.Child", "2", "Jump", true)

	m, err := Load(s)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	childID := m.layerByName["Child"]
	child := &m.Layers[childID]
	if child.ParentID != m.layerByName["Base"] {
		t.Fatalf("expected Child.ParentID to resolve to Base, got %d", child.ParentID)
	}

	kb, ok, err := child.lookupSignal(1, m.Layers, m.layerByName)
	if err != nil || !ok || kb != m.KeyBindID("Walk") {
		t.Fatalf("expected signal 1 to fall through to parent's Walk binding, got kb=%d ok=%v err=%v", kb, ok, err)
	}
	kb, ok, err = child.lookupSignal(2, m.Layers, m.layerByName)
	if err != nil || !ok || kb != m.KeyBindID("Jump") {
		t.Fatalf("expected signal 2 to resolve on Child itself, got kb=%d ok=%v err=%v", kb, ok, err)
	}
}

func TestLayerParentCycleBrokenNonFatally(t *testing.T) {
	s := profile.New()
	s.SetStr("Layer.A", "Parent", "C", true)
	s.SetStr("Layer.B", "Parent", "A", true)
	s.SetStr("Layer.C", "Parent", "B", true)

	m, err := Load(s)
	if err != nil {
		t.Fatalf("expected parent cycle to be recovered from rather than fail Load, got %v", err)
	}
	if m.Errors.Len() == 0 {
		t.Fatalf("expected the layer parent cycle to be logged to m.Errors")
	}
	aID, bID, cID := m.layerByName["A"], m.layerByName["B"], m.layerByName["C"]
	brokenCount := 0
	for _, id := range []int{aID, bID, cID} {
		if m.Layers[id].ParentID == -1 {
			brokenCount++
		}
	}
	if brokenCount == 0 {
		t.Fatalf("expected at least one layer's ParentID to be cleared to break the cycle")
	}
}

func TestMenuPreCreationAllowsForwardReference(t *testing.T) {
	s := profile.New()
	s.SetStr("Menu.Root", "Item1", "Open Sub|OpenSubMenu Sub", true)
	s.SetStr("Menu.Sub", "Style", "List", true)

	m, err := Load(s)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if m.MenuID("Sub") < 0 {
		t.Fatalf("expected Sub menu to be registered")
	}
	if m.MenuID("Root") < 0 {
		t.Fatalf("expected Root menu to be registered")
	}
	root := &m.Menus[m.MenuID("Root")]
	if len(root.Items) != 1 || root.Items[0].CommandID < 0 {
		t.Fatalf("expected Root's item to carry a parsed OpenSubMenu command")
	}
}

func TestLayerStackResolveShadowing(t *testing.T) {
	s := profile.New()
	s.SetStr("KeyBinds", "Walk", "DoNothing", true)
	s.SetStr("KeyBinds", "Run", "DoNothing", true)
	s.SetStr("Layer.Base", "1", "Walk", true)
	s.SetStr("Layer.Sprint", "1", "Run", true)

	m, err := Load(s)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	baseID := m.layerByName["Base"]
	sprintID := m.layerByName["Sprint"]

	var stack LayerStack
	stack.Push(baseID)
	kb, ok, err := stack.Resolve(1, m.Layers, m.layerByName)
	if err != nil || !ok || kb != m.KeyBindID("Walk") {
		t.Fatalf("expected Walk before Sprint pushed, got kb=%d ok=%v err=%v", kb, ok, err)
	}
	stack.Push(sprintID)
	kb, ok, err = stack.Resolve(1, m.Layers, m.layerByName)
	if err != nil || !ok || kb != m.KeyBindID("Run") {
		t.Fatalf("expected Run to shadow Walk, got kb=%d ok=%v err=%v", kb, ok, err)
	}
	stack.Remove(sprintID)
	kb, _, _ = stack.Resolve(1, m.Layers, m.layerByName)
	if kb != m.KeyBindID("Walk") {
		t.Fatalf("expected Walk to resurface after Sprint removed")
	}
}
