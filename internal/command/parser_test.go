package command

import (
	"testing"

	"github.com/Danondso/gamepadoverlay/internal/keycode"
)

type stubResolver struct {
	keyBinds map[string]int
	menus    map[string]int
	cycles   map[string]int
	layers   map[string]int
	hotspots map[string]int
}

func newStubResolver() *stubResolver {
	return &stubResolver{
		keyBinds: map[string]int{"Fire": 0, "Reload": 1, "MoveF": 2},
		menus:    map[string]int{"Root": 0},
		cycles:   map[string]int{"Weapon": 0},
		layers:   map[string]int{"Base": 0, "Sprint": 1},
		hotspots: map[string]int{"Quick.1": 100},
	}
}

func (s *stubResolver) KeyBindID(name string) int     { return orDefault(s.keyBinds, name) }
func (s *stubResolver) MenuID(name string) int        { return orDefault(s.menus, name) }
func (s *stubResolver) CycleID(name string) int       { return orDefault(s.cycles, name) }
func (s *stubResolver) LayerID(name string) int       { return orDefault(s.layers, name) }
func (s *stubResolver) HotspotIDByRef(ref string) int { return orDefault(s.hotspots, ref) }

func orDefault(m map[string]int, k string) int {
	if v, ok := m[k]; ok {
		return v
	}
	return -1
}

func TestParseQuitAppKeywords(t *testing.T) {
	p := New(newStubResolver())
	cmd, err := p.Parse("Close App")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := cmd.(QuitApp); !ok {
		t.Fatalf("expected QuitApp, got %T", cmd)
	}
}

func TestParseTriggerKeyBindByBareName(t *testing.T) {
	p := New(newStubResolver())
	cmd, err := p.Parse("Reload")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	tk, ok := cmd.(TriggerKeyBind)
	if !ok {
		t.Fatalf("expected TriggerKeyBind, got %T", cmd)
	}
	if tk.KeyBindID != 1 {
		t.Fatalf("expected KeyBindID 1, got %d", tk.KeyBindID)
	}
}

func TestParseSpecialKeyBindNameBeatsTriggerKeyBind(t *testing.T) {
	p := New(newStubResolver())
	cmd, err := p.Parse("MoveF")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	mt, ok := cmd.(MoveTurn)
	if !ok {
		t.Fatalf("expected MoveTurn (step 7 beats step 8's declared key-bind), got %T", cmd)
	}
	if mt.Dir != DirUp {
		t.Fatalf("expected DirUp, got %v", mt.Dir)
	}
}

func TestParseBareVKCombo(t *testing.T) {
	p := New(newStubResolver())
	cmd, err := p.Parse("Ctrl+A")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	tap, ok := cmd.(TapKey)
	if !ok {
		t.Fatalf("expected TapKey, got %T", cmd)
	}
	if len(tap.VKeySeq) != 2 {
		t.Fatalf("expected a 2-byte sequence (Ctrl, A), got %d bytes", len(tap.VKeySeq))
	}
}

func TestParseJoinedModifierCombo(t *testing.T) {
	p := New(newStubResolver())
	cmd, err := p.Parse("Shift2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := cmd.(TapKey); !ok {
		t.Fatalf("expected TapKey for the one-word joined modifier form, got %T", cmd)
	}
}

func TestParseBareCycleNameWrapsNext(t *testing.T) {
	p := New(newStubResolver())
	cmd, err := p.Parse("Weapon")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	kc, ok := cmd.(KeyBindCycleNext)
	if !ok {
		t.Fatalf("expected KeyBindCycleNext, got %T", cmd)
	}
	if !kc.Wrap || kc.CycleID != 0 {
		t.Fatalf("unexpected KeyBindCycleNext: %+v", kc)
	}
}

func TestParseUnknownWordIsInvalid(t *testing.T) {
	p := New(newStubResolver())
	cmd, err := p.Parse("FrobnicateTheWidget")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := cmd.(Invalid); !ok {
		t.Fatalf("expected Invalid, got %T", cmd)
	}
}

func TestParseChatBoxMacroStartingWithSlash(t *testing.T) {
	p := New(newStubResolver())
	cmd, err := p.Parse(`/gg wp`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	c, ok := cmd.(ChatBoxString)
	if !ok {
		t.Fatalf("expected ChatBoxString, got %T", cmd)
	}
	if got := p.Strings.String(c.StringID); got != "gg wp" {
		t.Fatalf("expected the leading sigil stripped, got %q", got)
	}
}

func TestParseChatBoxMacroInternsAndHandlesEscapedNewline(t *testing.T) {
	p := New(newStubResolver())
	cmd1, err := p.Parse(`>gg\nwp`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	c1 := cmd1.(ChatBoxString)
	if got := p.Strings.String(c1.StringID); got != "gg\rwp" {
		t.Fatalf("expected escaped newline to become CR, got %q", got)
	}

	cmd2, _ := p.Parse(`>gg\nwp`)
	c2 := cmd2.(ChatBoxString)
	if c1.StringID != c2.StringID {
		t.Fatalf("expected identical macro text to reuse the same intern ID")
	}
}

func TestParseSetVariableWithTempFlag(t *testing.T) {
	p := New(newStubResolver())
	cmd, err := p.Parse("Set temp Target to Orc")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	sv := cmd.(SetVariable)
	if !sv.Temporary || sv.Value != "Orc" {
		t.Fatalf("expected temporary=true value=Orc, got %+v", sv)
	}
	if p.Vars.String(sv.VariableID) != "Target" {
		t.Fatalf("expected interned variable name Target, got %q", p.Vars.String(sv.VariableID))
	}
}

func TestParseSetVariableDoesNotShadowCycleSetDefault(t *testing.T) {
	p := New(newStubResolver())
	cmd, err := p.Parse("Set Weapon Default to Last")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := cmd.(KeyBindCycleSetDefault); !ok {
		t.Fatalf("expected KeyBindCycleSetDefault, got %T", cmd)
	}
}

func TestParseMenuSelectWithWrapAndClose(t *testing.T) {
	p := New(newStubResolver())
	cmd, err := p.Parse("Select Root Right Wrap Close")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ms := cmd.(MenuSelect)
	if ms.MenuID != 0 || ms.Dir != DirRight || !ms.Wrap || !ms.AndClose {
		t.Fatalf("unexpected MenuSelect: %+v", ms)
	}
}

func TestParseMenuBack(t *testing.T) {
	p := New(newStubResolver())
	cmd, err := p.Parse("Menu Root Back")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	mb, ok := cmd.(MenuBack)
	if !ok || mb.MenuID != 0 {
		t.Fatalf("expected MenuBack{MenuID:0}, got %+v (%T)", cmd, cmd)
	}
}

func TestParseAddLayerByName(t *testing.T) {
	p := New(newStubResolver())
	cmd, err := p.Parse("Add Layer Sprint")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	al, ok := cmd.(AddControlsLayer)
	if !ok || al.LayerID != 1 {
		t.Fatalf("expected AddControlsLayer{LayerID:1}, got %+v (%T)", cmd, cmd)
	}
}

func TestParseReplaceLayerWithTwoNames(t *testing.T) {
	p := New(newStubResolver())
	cmd, err := p.Parse("Replace Base with Sprint")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	rl, ok := cmd.(ReplaceControlsLayer)
	if !ok || rl.FromLayerID != 0 || rl.ToLayerID != 1 {
		t.Fatalf("unexpected ReplaceControlsLayer: %+v (%T)", cmd, cmd)
	}
}

func TestParseRemoveLayerSelf(t *testing.T) {
	p := New(newStubResolver())
	cmd, err := p.Parse("Remove Layer")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	rl, ok := cmd.(RemoveControlsLayer)
	if !ok || rl.LayerID != 0 {
		t.Fatalf("expected RemoveControlsLayer{LayerID:0}, got %+v (%T)", cmd, cmd)
	}
}

func TestParseMoveMouseToHotspot(t *testing.T) {
	p := New(newStubResolver())
	cmd, err := p.Parse("Move Mouse to Quick.1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	mm, ok := cmd.(MoveMouseToHotspot)
	if !ok || mm.HotspotID != 100 {
		t.Fatalf("unexpected MoveMouseToHotspot: %+v (%T)", cmd, cmd)
	}
}

func TestParseHotspotDirection(t *testing.T) {
	p := New(newStubResolver())
	cmd, err := p.Parse("Hotspot Right")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	hs, ok := cmd.(HotspotSelect)
	if !ok || hs.Dir != DirRight {
		t.Fatalf("unexpected HotspotSelect: %+v (%T)", cmd, cmd)
	}
}

func TestParseMouseWheelSmooth(t *testing.T) {
	p := New(newStubResolver())
	cmd, err := p.Parse("Mouse Wheel Smooth Up")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	mw, ok := cmd.(MouseWheel)
	if !ok || mw.Dir != DirUp || mw.Mode != WheelSmooth {
		t.Fatalf("unexpected MouseWheel: %+v (%T)", cmd, cmd)
	}
}

func TestParseCycleNextExplicitNoWrap(t *testing.T) {
	p := New(newStubResolver())
	cmd, err := p.Parse("Weapon Next NoWrap 2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	kc, ok := cmd.(KeyBindCycleNext)
	if !ok || kc.Wrap || kc.Repeat != 2 {
		t.Fatalf("unexpected KeyBindCycleNext: %+v (%T)", cmd, cmd)
	}
}

func TestParseVKeySequenceWithPauseAndTrigger(t *testing.T) {
	p := New(newStubResolver())
	cmd, err := p.Parse("A Pause:50 Trigger:Fire")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	seq, ok := cmd.(VKeySequence)
	if !ok {
		t.Fatalf("expected VKeySequence, got %T", cmd)
	}

	var kinds []keycode.SeqKind
	err = keycode.Decode(seq.VKeySeq, func(item keycode.SeqItem) error {
		kinds = append(kinds, item.Kind)
		if item.Kind == keycode.SeqKindKeyBind && item.Idx != 0 {
			t.Fatalf("expected Fire to resolve to keybind index 0, got %d", item.Idx)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	want := []keycode.SeqKind{keycode.SeqKindKey, keycode.SeqKindPause, keycode.SeqKindKeyBind}
	if len(kinds) != len(want) {
		t.Fatalf("expected %d items, got %d: %v", len(want), len(kinds), kinds)
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Errorf("item %d: got %v, want %v", i, kinds[i], want[i])
		}
	}
}
