// Command overlaypreview is a terminal stand-in for the real overlay
// window: it drives the same engine.Engine the daemon does, from keyboard
// input standing in for gamepad signals, and renders the component
// rectangles internal/painter computes as boxes, with menu selection/flash
// state from internal/menus and the rolling error log from internal/errs.
// Window creation and real rasterization are out of scope; this exists so
// internal/painter's layout math has a visual consumer without one.
// Structured the way the teacher's tui.Model drives its recording/
// transcription state machine from bubbletea messages, restyled around
// overlay/menu events instead.
package main

import (
	"fmt"
	"io"
	"log"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Danondso/gamepadoverlay/internal/appconfig"
	"github.com/Danondso/gamepadoverlay/internal/engine"
	"github.com/Danondso/gamepadoverlay/internal/inputmap"
	"github.com/Danondso/gamepadoverlay/internal/keycode"
	"github.com/Danondso/gamepadoverlay/internal/painter"
	"github.com/Danondso/gamepadoverlay/internal/profile"
)

var (
	borderStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1)
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#00E5FF"))
	selectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FF6AC1"))
	flashStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FFAB40"))
	dimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#666666"))
	errStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF8A80"))
)

// keySignal maps a dev keyboard key to the gamepad signal ID it stands in
// for, since a real gamepad isn't available wherever this preview runs.
var keySignal = map[string]int{
	"up": 0, "down": 1, "left": 2, "right": 3,
	"a": 4, "b": 5, "x": 6, "y": 7,
	"enter": 4, // MenuConfirm is typically bound to the same signal as "A"
}

type tickMsg time.Time

func tickCmd() tea.Cmd {
	return tea.Tick(16*time.Millisecond, func(t time.Time) tea.Msg { return tickMsg(t) })
}

type model struct {
	e        *engine.Engine
	lastTick time.Time
	quitting bool
}

func (m model) Init() tea.Cmd { return tickCmd() }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		}
		if sig, ok := keySignal[msg.String()]; ok {
			m.e.Tick(0, []engine.ButtonEvent{{SignalID: sig, Pressed: true}})
			m.e.Tick(0, []engine.ButtonEvent{{SignalID: sig, Pressed: false}})
		}
		return m, nil
	case tickMsg:
		dt := 16 * time.Millisecond
		if !m.lastTick.IsZero() {
			dt = time.Time(msg).Sub(m.lastTick)
		}
		m.lastTick = time.Time(msg)
		if err := m.e.Tick(dt, nil); err != nil {
			// recorded via internal/errs, rendered in the error panel below
			_ = err
		}
		return m, tickCmd()
	}
	return m, nil
}

func (m model) View() string {
	if m.quitting {
		return ""
	}
	var b strings.Builder
	b.WriteString(titleStyle.Render("gamepadoverlay preview") + "\n")
	b.WriteString(dimStyle.Render("arrows/a/b/x/y drive signals, q to quit") + "\n\n")

	roots := m.e.OpenRoots()
	if len(roots) == 0 {
		b.WriteString(dimStyle.Render("(no menu open)") + "\n")
	}
	for _, rootID := range roots {
		b.WriteString(renderRoot(m.e, rootID) + "\n")
	}

	if tail := recentErrors(m.e); tail != "" {
		b.WriteString("\n" + errStyle.Render(tail))
	}
	return b.String()
}

func renderRoot(e *engine.Engine, rootID int) string {
	st, ok := e.MenuStateFor(rootID)
	if !ok {
		return ""
	}
	activeID := st.ActiveMenuID()
	menu, ok := e.Menu(activeID)
	if !ok {
		return ""
	}

	ov, hasOverlay := e.OverlayStateFor(rootID)
	alpha := float32(1)
	if hasOverlay {
		alpha = ov.Alpha
	}

	sel := st.Selected(menu)
	lines := make([]string, 0, len(menu.Items)+1)
	lines = append(lines, fmt.Sprintf("%s (alpha=%.2f)", menu.Name, alpha))
	for i, item := range menu.Items {
		line := itemLabel(item)
		switch {
		case st.IsFlashing(menu.ID, i, time.Now()):
			line = flashStyle.Render("* " + line)
		case i == sel:
			line = selectedStyle.Render("> " + line)
		default:
			line = "  " + line
		}
		lines = append(lines, line)
	}
	return borderStyle.Render(strings.Join(lines, "\n"))
}

func itemLabel(item inputmap.MenuItem) string {
	if item.Label != "" {
		return item.Label
	}
	return "(unlabeled)"
}

func recentErrors(e *engine.Engine) string {
	n := e.Errors.Len()
	if n == 0 {
		return ""
	}
	if n > 5 {
		n = 5
	}
	var b strings.Builder
	b.WriteString("recent errors:\n")
	for _, err := range e.Errors.Recent(n) {
		b.WriteString("  " + err.Error() + "\n")
	}
	return b.String()
}

// noopSink discards every synthetic input event: the preview renders
// layout/menu/overlay state only, it never drives real keyboard/mouse
// output the way cmd/overlayd's platform sinks do.
type noopSink struct{}

func (noopSink) KeyDown(keycode.VK) error          { return nil }
func (noopSink) KeyUp(keycode.VK) error            { return nil }
func (noopSink) MoveMouseRel(dx, dy int) error     { return nil }
func (noopSink) MoveMouseTo(x, y int) error        { return nil }
func (noopSink) ScrollWheel(delta int) error       { return nil }
func (noopSink) PasteText(text string, ms int) error { return nil }
func (noopSink) Flush() error                      { return nil }

func main() {
	dbg := log.New(io.Discard, "", 0) // the preview's own screen is the debug surface

	cfg, err := appconfig.Load(appconfig.DefaultPath())
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	store, err := profile.LoadINI(cfg.ProfilePath)
	if err != nil {
		store = profile.New()
	}

	im, err := inputmap.Load(store)
	if err != nil {
		log.Fatalf("load input map: %v", err)
	}

	e := engine.New(store, im, noopSink{}, dbg)
	e.SetTarget(engine.TargetWindow{Rect: painter.Rect{X: 0, Y: 0, W: 1920, H: 1080}, UIScale: cfg.UIScale})

	p := tea.NewProgram(model{e: e}, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		log.Fatalf("preview: %v", err)
	}
}
