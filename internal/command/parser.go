package command

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Danondso/gamepadoverlay/internal/keycode"
)

// Resolver looks up the integer ID a command variant stores for a name the
// profile text spelled out, so Parse never needs to see the inputmap
// package directly (which itself depends on command, to type-switch
// TriggerKeyBind in its validation pass — Resolver breaks that cycle).
// inputmap.InputMap satisfies this interface without any change on its
// side: the method set already matches. Every method returns -1 for a name
// it doesn't recognize; Parse treats that as "this candidate doesn't apply"
// rather than an error, since a later strategy step may still claim the text.
type Resolver interface {
	KeyBindID(name string) int
	MenuID(name string) int
	CycleID(name string) int
	LayerID(name string) int
	HotspotIDByRef(ref string) int
}

// Interner assigns small stable integer IDs to strings, used for both
// chat-box macros and profile variable names (§6's "interned macro string"
// contract) so the hot dispatch path never compares strings.
type Interner struct {
	ids  map[string]int
	vals []string
}

// NewInterner creates an empty Interner.
func NewInterner() *Interner {
	return &Interner{ids: make(map[string]int)}
}

// Intern returns s's stable ID, assigning a new one on first sight.
func (in *Interner) Intern(s string) int {
	if id, ok := in.ids[s]; ok {
		return id
	}
	id := len(in.vals)
	in.ids[s] = id
	in.vals = append(in.vals, s)
	return id
}

// String returns the interned string for id, or "" if out of range.
func (in *Interner) String(id int) string {
	if id < 0 || id >= len(in.vals) {
		return ""
	}
	return in.vals[id]
}

// Parser turns one profile property's raw command text into a Command. The
// grammar is free-form and keyword-tolerant rather than a fixed dispatch
// token: Parse tries a fixed sequence of strategies in order and the first
// one whose shape fits the text wins (§4.C). Unrecognized text is never
// silently dropped: it comes back as an Invalid command (step 10) for the
// caller to log and demote.
type Parser struct {
	Resolve Resolver
	Strings *Interner // chat-box macro bodies
	Vars    *Interner // profile variable names
}

// New creates a Parser bound to a Resolver, with fresh macro/variable
// interning tables.
func New(resolve Resolver) *Parser {
	return &Parser{Resolve: resolve, Strings: NewInterner(), Vars: NewInterner()}
}

// Parse parses one command string. inputmap.Load builds its own Parser
// (with the InputMap as Resolver) and calls Parse for every command text
// the profile contains.
//
// Steps, first match wins:
//  1. empty -> Empty
//  2. leading '/' or '>' -> chat-box macro
//  3. the words form a valid VK combination -> TapKey
//  4. exact match against a declared key-bind-cycle name -> KeyBindCycleNext, wrap=true
//  5. "Set [temp] <var> to <text>" -> SetVariable
//  6. keyword-driven special command (see trySpecialCommand)
//  7. exact match against a special key-bind name -> its movement variant
//  8. exact match against any declared key-bind -> TriggerKeyBind
//  9. the words form a valid encoded VK sequence -> VKeySequence
//  10. otherwise -> Invalid
func (p *Parser) Parse(raw string) (Command, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return Empty{}, nil
	}

	// Step 2: chat-box macro. The leading '/' or '>' is a sigil, not part of
	// the stored text.
	if strings.HasPrefix(trimmed, "/") || strings.HasPrefix(trimmed, ">") {
		return ChatBoxString{StringID: p.Strings.Intern(internMacroBody(trimmed[1:]))}, nil
	}

	words := strings.Fields(trimmed)

	// Step 3: direct VK combination, e.g. "Ctrl+Alt+Delete" or "Shift2".
	if seq, ok := tryVKCombo(trimmed); ok {
		return TapKey{VKeySeq: seq, Repeat: 1}, nil
	}

	// Step 4: bare key-bind-cycle name.
	if id := p.Resolve.CycleID(trimmed); id >= 0 {
		return KeyBindCycleNext{CycleID: id, Wrap: true, Repeat: 1}, nil
	}

	// Step 5: "Set [temp] <var> to <text>".
	if cmd, ok := p.trySetVariable(words); ok {
		return cmd, nil
	}

	// Step 6: the keyword table.
	if cmd, ok := p.trySpecialCommand(words); ok {
		return cmd, nil
	}

	// Step 7: special key-bind name with a dedicated movement variant.
	if cmd, ok := specialKeyBindCommand(trimmed); ok {
		return cmd, nil
	}

	// Step 8: any other declared key-bind name.
	if id := p.Resolve.KeyBindID(trimmed); id >= 0 {
		return TriggerKeyBind{KeyBindID: id}, nil
	}

	// Step 9: an encoded VK sequence (one or more keys/pauses/tags).
	if seq, ok := p.tryVKSequence(words); ok {
		return VKeySequence{VKeySeq: seq}, nil
	}

	// Step 10.
	return Invalid{Raw: raw}, nil
}

// internMacroBody normalizes a chat-box macro's escaped newlines: a literal
// "\n" two-character escape in profile text becomes a real CR, matching the
// original's line-continuation convention for multi-line chat macros.
func internMacroBody(s string) string {
	return strings.ReplaceAll(s, `\n`, "\r")
}

// specialKeyBindCommand maps the seven fixed special key-bind names to the
// movement command they stand in for, instead of the TapKey/TriggerKeyBind a
// plain key-bind name would otherwise resolve to. Grounded on
// specialKeyBindNameToCommand in the original's InputMap.cpp: Forward/Back
// have no matching Direction value in this port's command.Direction (it only
// carries Left/Right/Up/Down), so they're mapped onto Up/Down respectively —
// documented as a decided simplification, not an oversight.
func specialKeyBindCommand(name string) (Command, bool) {
	switch strings.ToUpper(name) {
	case "AUTORUN":
		return StartAutoRun{}, true
	case "MOVEF", "MOVEFORWARD":
		return MoveTurn{Dir: DirUp}, true
	case "MOVEB", "MOVEBACK":
		return MoveTurn{Dir: DirDown}, true
	case "TURNL", "TURNLEFT":
		return MoveTurn{Dir: DirLeft}, true
	case "TURNR", "TURNRIGHT":
		return MoveTurn{Dir: DirRight}, true
	case "STRAFEL", "STRAFELEFT":
		return MoveStrafe{Dir: DirLeft}, true
	case "STRAFER", "STRAFERIGHT":
		return MoveStrafe{Dir: DirRight}, true
	default:
		return nil, false
	}
}

// --- Step 3 / step 9: virtual-key encoding ---

// tryVKCombo reports whether raw's words form a valid VK combination: any
// number of modifier names (by long form "Ctrl"/"Shift"/"Alt"/"Win", or the
// one-word joined form "Shift2"), optionally followed by a single
// non-modifier key, joined by whitespace and/or "+". Returns the encoded
// sequence and true on success; false means "not a combo", not an error, so
// Parse can fall through to a later strategy.
func tryVKCombo(raw string) ([]byte, bool) {
	tokens := strings.FieldsFunc(raw, func(r rune) bool {
		return r == '+' || r == ' ' || r == '\t'
	})
	if len(tokens) == 0 {
		return nil, false
	}
	var seq []byte
	baseSeen := false
	for _, tok := range tokens {
		if mod, ok := keycode.JoinedModifierKey(tok); ok {
			code, ok := keycode.KeyCodeForModifier(mod)
			if !ok {
				return nil, false
			}
			var err error
			if seq, err = keycode.EncodeKey(seq, code); err != nil {
				return nil, false
			}
			continue
		}
		if mod, ok := keycode.ModifierByName(tok); ok {
			code, ok := keycode.KeyCodeForModifier(mod)
			if !ok {
				return nil, false
			}
			var err error
			if seq, err = keycode.EncodeKey(seq, code); err != nil {
				return nil, false
			}
			continue
		}
		code, ok := keycode.ByName(tok)
		if !ok || baseSeen {
			// A second non-modifier key isn't a single combo; leave it for
			// step 9's multi-key sequence instead.
			return nil, false
		}
		var err error
		if seq, err = keycode.EncodeKey(seq, code); err != nil {
			return nil, false
		}
		baseSeen = true
	}
	return seq, true
}

// encodeKeyCombo is tryVKCombo's encoder reused by step 9, where each
// whitespace-delimited token of a VKeySequence may itself be a "+"-joined
// combo rather than a single key.
func encodeKeyCombo(tok string) ([]byte, error) {
	if seq, ok := tryVKCombo(tok); ok {
		return seq, nil
	}
	return nil, fmt.Errorf("command: %q is not a valid key or key combination", tok)
}

// tryVKSequence parses a whitespace-separated list of tokens, each either a
// key/combo, "Pause:<ms>", "Trigger:<keybind>", or "Jump:<hotspot>",
// concatenating their encodings in order. Any token that fails to encode
// means the whole string isn't a valid sequence, so Parse can fall through
// to Invalid rather than propagating a parse error.
func (p *Parser) tryVKSequence(words []string) ([]byte, bool) {
	var seq []byte
	for _, tok := range words {
		var (
			next []byte
			err  error
		)
		switch {
		case strings.HasPrefix(tok, "Pause:"):
			ms, convErr := strconv.Atoi(strings.TrimPrefix(tok, "Pause:"))
			if convErr != nil {
				return nil, false
			}
			next, err = keycode.EncodePause(seq, ms)
		case strings.HasPrefix(tok, "Trigger:"):
			name := strings.TrimPrefix(tok, "Trigger:")
			id := p.Resolve.KeyBindID(name)
			if id < 0 {
				return nil, false
			}
			next, err = keycode.EncodeTriggerKeyBind(seq, id)
		case strings.HasPrefix(tok, "Jump:"):
			ref := strings.TrimPrefix(tok, "Jump:")
			id := p.Resolve.HotspotIDByRef(ref)
			if id < 0 {
				return nil, false
			}
			next, err = keycode.EncodeMouseJump(seq, id)
		default:
			next, err = encodeKeyCombo(tok)
		}
		if err != nil {
			return nil, false
		}
		seq = next
	}
	return seq, true
}

// --- Step 5: variable assignment ---

// trySetVariable recognizes "Set [temp] <name> to <text>", case-insensitive
// on the "Set"/"temp"/"to" keywords; <text> is everything after "to", taken
// verbatim (it may itself contain spaces, "=" signs, anything). Returns
// false for anything that doesn't have a literal "to" keyword immediately
// after the variable name, so "Set <cycle> Default to Last" (step 6's
// KeyBindCycleSetDefault pattern) never gets misparsed as a variable
// assignment.
func (p *Parser) trySetVariable(words []string) (Command, bool) {
	if len(words) < 3 || !strings.EqualFold(words[0], "Set") {
		return nil, false
	}
	idx := 1
	temp := false
	if strings.EqualFold(words[idx], "temp") {
		temp = true
		idx++
	}
	if idx+1 >= len(words) {
		return nil, false
	}
	name := words[idx]
	idx++
	if !strings.EqualFold(words[idx], "to") {
		return nil, false
	}
	value := strings.Join(words[idx+1:], " ")
	return SetVariable{VariableID: p.Vars.Intern(name), Value: value, Temporary: temp}, true
}

// --- Step 6: the keyword-driven special-command table ---

// wordBag classifies a property value's words for the order-insensitive,
// "required keywords present and no extras" pattern matching §4.C's
// keyword table describes. A word is either a recognized keyword (folded
// to its canonical upper-case tag), an integer (a repeat count or similar),
// or an identifier candidate — a layer/menu/cycle/hotspot name the
// surrounding keywords determine how to resolve.
type wordBag struct {
	found  map[string]bool
	idents []string
	ints   []int
}

// keywordAlias maps every recognized keyword spelling (case folded by the
// caller to upper-case) to its canonical tag. Synonymous spellings
// ("Mouse"/"Cursor", "Wheel"/"MouseWheel") collapse to one tag so pattern
// checks don't need to special-case them.
var keywordAlias = map[string]string{
	"SKIP": "SKIP", "NOTHING": "NOTHING", "DONOTHING": "NOTHING",
	"DEFER": "DEFER", "TO": "TO", "LOWER": "LOWER", "LAYERS": "LAYERS",
	"CHANGE": "CHANGE", "PROFILE": "PROFILE", "EDIT": "EDIT", "LAYOUT": "LAYOUT",
	"CONFIG": "CONFIG", "FILE": "FILE", "CLOSE": "CLOSE", "APP": "APP",
	"LOCK": "LOCK", "MOVEMENT": "MOVEMENT", "MOVE": "MOVE",
	"MOUSE": "MOUSE", "CURSOR": "MOUSE",
	"FORCE": "FORCE", "REMOVE": "REMOVE", "LAYER": "LAYER", "THIS": "THIS",
	"REPLACE": "REPLACE", "WITH": "WITH",
	"ADD": "ADD", "TOGGLE": "TOGGLE", "HOLD": "HOLD",
	"RESET": "RESET", "DEFAULT": "DEFAULT",
	"CONFIRM": "CONFIRM", "AND": "AND",
	"SELECT": "SELECT", "MENU": "MENU", "BACK": "BACK",
	"SET": "SET",
	"REPEAT": "REPEAT", "LAST": "LAST", "PREV": "PREV", "NEXT": "NEXT",
	"HOTSPOT": "HOTSPOT",
	"TURN":    "TURN", "STRAFE": "STRAFE", "LOOK": "LOOK",
	"WHEEL": "WHEEL", "MOUSEWHEEL": "WHEEL",
	"STEPPED": "STEPPED", "SMOOTH": "SMOOTH",
	"WRAP": "WRAP", "NOWRAP": "NOWRAP",
	"LEFT": "LEFT", "RIGHT": "RIGHT", "UP": "UP", "DOWN": "DOWN",
}

func classifyWords(words []string) *wordBag {
	b := &wordBag{found: make(map[string]bool)}
	for _, w := range words {
		if tag, ok := keywordAlias[strings.ToUpper(w)]; ok {
			b.found[tag] = true
			continue
		}
		if n, err := strconv.Atoi(w); err == nil {
			b.ints = append(b.ints, n)
			continue
		}
		b.idents = append(b.idents, w)
	}
	return b
}

// dir reports the single cardinal direction keyword present (if any) and
// its canonical tag, so a pattern can add it to its own allowed set before
// checking for extras.
func (b *wordBag) dir() (d Direction, tag string, ok bool) {
	switch {
	case b.found["LEFT"]:
		return DirLeft, "LEFT", true
	case b.found["RIGHT"]:
		return DirRight, "RIGHT", true
	case b.found["UP"]:
		return DirUp, "UP", true
	case b.found["DOWN"]:
		return DirDown, "DOWN", true
	default:
		return DirNone, "", false
	}
}

// wrap reports whether Wrap/NoWrap was stated explicitly, and its value;
// the keyword table's convention (e.g. KeyBindCycleNext/Prev) is that wrap
// defaults to true when unstated.
func (b *wordBag) wrap(defaultValue bool) bool {
	switch {
	case b.found["WRAP"]:
		return true
	case b.found["NOWRAP"]:
		return false
	default:
		return defaultValue
	}
}

// repeat returns the first integer seen, or fallback if none.
func (b *wordBag) repeat(fallback int) int {
	if len(b.ints) > 0 {
		return b.ints[0]
	}
	return fallback
}

// matches reports whether every tag in required is present and every
// present keyword tag is covered by required or allowed — i.e. "these
// keywords, and nothing else".
func (b *wordBag) matches(required, allowed []string) bool {
	for _, r := range required {
		if !b.found[r] {
			return false
		}
	}
	covered := make(map[string]bool, len(required)+len(allowed))
	for _, t := range required {
		covered[t] = true
	}
	for _, t := range allowed {
		covered[t] = true
	}
	for tag, present := range b.found {
		if present && !covered[tag] {
			return false
		}
	}
	return true
}

// anyOf reports whether at least one of tags is present.
func (b *wordBag) anyOf(tags ...string) bool {
	for _, t := range tags {
		if b.found[t] {
			return true
		}
	}
	return false
}

// trySpecialCommand implements §4.C step 6: the keyword table. Patterns are
// tried in the same precedence order the original grammar uses (simple
// lifecycle commands first, then layer-name patterns, then menu-name
// patterns, then key-bind-cycle-name patterns, then direction-bearing
// patterns last, since "Back" and the cardinal directions can otherwise be
// mistaken for another command's keyword).
func (p *Parser) trySpecialCommand(words []string) (Command, bool) {
	b := classifyWords(words)

	if len(words) == 1 && b.anyOf("SKIP", "NOTHING") {
		return DoNothing{}, true
	}
	if b.matches([]string{"DEFER"}, []string{"TO", "LOWER", "LAYERS"}) {
		return Defer{}, true
	}
	if b.matches([]string{"PROFILE"}, []string{"CHANGE"}) {
		return ChangeProfile{}, true
	}
	if b.matches([]string{"LAYOUT"}, []string{"EDIT"}) {
		return EditLayout{}, true
	}
	if b.matches([]string{"CONFIG"}, []string{"CHANGE", "FILE"}) {
		return ChangeTargetConfigSyncFile{}, true
	}
	if b.matches([]string{"CLOSE", "APP"}, nil) {
		return QuitApp{}, true
	}
	if b.matches([]string{"LOCK", "MOVEMENT"}, nil) {
		return StartAutoRun{}, true
	}
	if b.matches([]string{"MOVE", "MOUSE", "TO"}, nil) && len(b.idents) == 1 {
		if id := p.Resolve.HotspotIDByRef(b.idents[0]); id >= 0 {
			return MoveMouseToHotspot{HotspotID: id}, true
		}
	}
	if b.matches([]string{"REMOVE", "LAYER"}, []string{"FORCE", "THIS"}) && len(b.idents) == 0 {
		return RemoveControlsLayer{LayerID: 0}, true
	}

	if cmd, ok := p.tryLayerNamePattern(b); ok {
		return cmd, true
	}
	if cmd, ok := p.tryMenuNamePattern(b); ok {
		return cmd, true
	}
	if cmd, ok := p.tryCycleNamePattern(b); ok {
		return cmd, true
	}
	if cmd, ok := p.tryDirectionalPattern(b); ok {
		return cmd, true
	}
	return nil, false
}

// tryLayerNamePattern resolves the "Replace <a> with <b>" (two names) and
// "Add/Toggle/Hold/Remove [Layer] <layer>" (one name) forms. Duplicate
// identifier words are only permitted for Replace's two distinct layer
// names — every other pattern here requires exactly one.
func (p *Parser) tryLayerNamePattern(b *wordBag) (Command, bool) {
	if b.matches([]string{"REPLACE", "WITH"}, []string{"LAYER"}) && len(b.idents) == 2 {
		from := p.Resolve.LayerID(b.idents[0])
		to := p.Resolve.LayerID(b.idents[1])
		if from >= 0 && to >= 0 {
			return ReplaceControlsLayer{FromLayerID: from, ToLayerID: to}, true
		}
	}
	if len(b.idents) != 1 {
		return nil, false
	}
	id := p.Resolve.LayerID(b.idents[0])
	if id < 0 {
		return nil, false
	}
	switch {
	case b.matches([]string{"ADD"}, []string{"LAYER"}):
		return AddControlsLayer{LayerID: id}, true
	case b.matches([]string{"TOGGLE"}, []string{"LAYER"}):
		return ToggleControlsLayer{LayerID: id}, true
	case b.matches([]string{"HOLD"}, []string{"LAYER"}):
		return HoldControlsLayer{LayerID: id}, true
	case b.matches([]string{"REMOVE"}, []string{"FORCE", "LAYER"}):
		return RemoveControlsLayer{LayerID: id}, true
	}
	return nil, false
}

// tryMenuNamePattern resolves the Reset/Confirm/Edit forms that name a menu
// (with no direction involved — MenuSelect/MenuEditDir live in
// tryDirectionalPattern since a direction keyword is mandatory there).
func (p *Parser) tryMenuNamePattern(b *wordBag) (Command, bool) {
	if len(b.idents) != 1 {
		return nil, false
	}
	id := p.Resolve.MenuID(b.idents[0])
	if id < 0 {
		return nil, false
	}
	switch {
	case b.matches([]string{"RESET"}, []string{"MENU", "TO", "DEFAULT"}):
		return MenuReset{MenuID: id, ToDefault: b.found["DEFAULT"]}, true
	case b.matches([]string{"CONFIRM", "CLOSE"}, []string{"MENU", "AND"}):
		return MenuConfirm{MenuID: id, AndClose: true}, true
	case b.matches([]string{"CONFIRM"}, []string{"MENU"}):
		return MenuConfirm{MenuID: id, AndClose: false}, true
	case b.matches([]string{"EDIT"}, []string{"MENU"}):
		return MenuEdit{MenuID: id, Dir: DirNone}, true
	}
	return nil, false
}

// tryCycleNamePattern resolves the key-bind-cycle forms that aren't the
// bare-name shortcut already handled by step 4: Reset, SetDefault, Last, and
// the explicit Prev/Next (as opposed to step 4's implicit wrapping Next).
func (p *Parser) tryCycleNamePattern(b *wordBag) (Command, bool) {
	if len(b.idents) != 1 {
		return nil, false
	}
	id := p.Resolve.CycleID(b.idents[0])
	if id < 0 {
		return nil, false
	}
	switch {
	case b.matches([]string{"RESET"}, nil):
		return KeyBindCycleReset{CycleID: id}, true
	case b.matches([]string{"SET", "DEFAULT"}, []string{"TO", "LAST"}):
		return KeyBindCycleSetDefault{CycleID: id}, true
	case b.anyOf("REPEAT", "LAST") && b.matches(nil, []string{"REPEAT", "LAST"}):
		return KeyBindCycleLast{CycleID: id}, true
	case b.matches([]string{"PREV"}, []string{"WRAP", "NOWRAP"}):
		return KeyBindCyclePrev{CycleID: id, Wrap: b.wrap(true), Repeat: b.repeat(1)}, true
	case b.matches([]string{"NEXT"}, []string{"WRAP", "NOWRAP"}):
		return KeyBindCycleNext{CycleID: id, Wrap: b.wrap(true), Repeat: b.repeat(1)}, true
	}
	return nil, false
}

// tryDirectionalPattern resolves every pattern that requires a cardinal
// direction: Hotspot/Move/Turn/Strafe/Look/Mouse/Wheel, plus the
// menu-plus-direction forms (MenuSelect, MenuEdit's directional variant,
// MenuBack).
func (p *Parser) tryDirectionalPattern(b *wordBag) (Command, bool) {
	dir, dirTag, hasDir := b.dir()

	if b.found["MENU"] && b.found["BACK"] && len(b.idents) == 1 {
		if id := p.Resolve.MenuID(b.idents[0]); id >= 0 && b.matches([]string{"MENU", "BACK"}, nil) {
			return MenuBack{MenuID: id}, true
		}
	}

	if hasDir && len(b.idents) == 1 {
		id := p.Resolve.MenuID(b.idents[0])
		if id >= 0 {
			switch {
			case b.matches([]string{dirTag}, []string{"SELECT", "MENU", "WRAP", "NOWRAP", "AND", "CLOSE"}):
				return MenuSelect{MenuID: id, Dir: dir, Wrap: b.wrap(false), AndClose: b.anyOf("AND", "CLOSE")}, true
			case b.matches([]string{"EDIT", dirTag}, []string{"MENU"}):
				return MenuEdit{MenuID: id, Dir: dir}, true
			}
		}
	}

	if !hasDir {
		return nil, false
	}

	switch {
	case b.matches([]string{"HOTSPOT", dirTag}, []string{"SELECT", "MOUSE"}):
		return HotspotSelect{Dir: dir}, true
	case b.matches([]string{dirTag}, []string{"MOVE", "TURN"}) && b.anyOf("MOVE", "TURN"):
		return MoveTurn{Dir: dir}, true
	case b.matches([]string{"STRAFE", dirTag}, []string{"MOVE"}):
		return MoveStrafe{Dir: dir}, true
	case b.matches([]string{"LOOK", dirTag}, []string{"MOVE"}):
		return MoveLook{Dir: dir}, true
	case b.matches([]string{"MOUSE", dirTag}, []string{"MOVE"}):
		return MoveMouse{Dir: dir}, true
	case b.matches([]string{"WHEEL", dirTag}, []string{"MOVE", "MOUSE", "STEPPED"}):
		return MouseWheel{Dir: dir, Mode: WheelStepped, Steps: 1}, true
	case b.matches([]string{"WHEEL", dirTag}, []string{"MOVE", "MOUSE", "SMOOTH"}):
		return MouseWheel{Dir: dir, Mode: WheelSmooth, Steps: 1}, true
	case b.matches([]string{"WHEEL", dirTag}, []string{"MOVE", "MOUSE"}) && len(b.ints) > 0:
		return MouseWheel{Dir: dir, Mode: WheelJump, Steps: b.repeat(1)}, true
	}
	return nil, false
}
