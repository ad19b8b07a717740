package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/papapumpkin/wellplan/internal/oilfield"
	"github.com/papapumpkin/wellplan/internal/session"
)

// View selects which tree the model shows.
type View int

// Views in tab order.
const (
	ViewComponents View = iota
	ViewLayout
	ViewOilfield
	viewCount
)

// String returns the tab title.
func (v View) String() string {
	switch v {
	case ViewComponents:
		return "Components"
	case ViewLayout:
		return "Layout"
	case ViewOilfield:
		return "Oilfield"
	}
	return "?"
}

// MsgDatasetsReloaded reports a dataset reload triggered outside the TUI.
type MsgDatasetsReloaded struct {
	Dir string
	Err error
}

// Model is the tree browser.
type Model struct {
	Keys   KeyMap
	Width  int
	Height int

	sess     *session.Session
	view     View
	cursor   int
	rows     []row
	expanded map[View]map[string]bool
	picked   string
	notice   oilfield.Notice
}

// NewModel creates a browser over sess showing the component view.
func NewModel(sess *session.Session) Model {
	views, _ := sess.Expanded()
	m := Model{
		Keys: DefaultKeyMap(),
		sess: sess,
		expanded: map[View]map[string]bool{
			ViewComponents: set(views),
			ViewLayout:     set(views),
		},
	}
	m.refresh()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd { return nil }

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width, m.Height = msg.Width, msg.Height
	case MsgDatasetsReloaded:
		if msg.Err != nil {
			m.notice = oilfield.Notice{Level: oilfield.LevelError, Message: msg.Err.Error()}
		} else {
			m.notice = oilfield.Notice{Level: oilfield.LevelInfo, Message: "datasets reloaded from " + msg.Dir}
		}
		m.refresh()
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.Keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.Keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.Keys.Down):
		if m.cursor < len(m.rows)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.Keys.Next):
		m.view = (m.view + 1) % viewCount
		m.cursor = 0
		m.refresh()
	case key.Matches(msg, m.Keys.Expand):
		m.expand()
	case key.Matches(msg, m.Keys.Toggle):
		m.toggle()
	case key.Matches(msg, m.Keys.Pick):
		m.pick()
	case key.Matches(msg, m.Keys.Drop):
		m.drop(false)
	case key.Matches(msg, m.Keys.Before):
		m.drop(true)
	case key.Matches(msg, m.Keys.Cancel):
		m.picked = ""
		m.notice = oilfield.Notice{}
	}
	return m, nil
}

func (m *Model) current() (row, bool) {
	if m.cursor < 0 || m.cursor >= len(m.rows) {
		return row{}, false
	}
	return m.rows[m.cursor], true
}

func (m *Model) expand() {
	r, ok := m.current()
	if !ok || !r.Branch {
		return
	}
	if m.view == ViewOilfield {
		m.sess.SetExpanded(r.ID, !r.Expanded)
	} else {
		m.expanded[m.view][r.ID] = !r.Expanded
	}
	m.refresh()
}

func (m *Model) toggle() {
	r, ok := m.current()
	if !ok || m.view == ViewOilfield {
		return
	}
	m.sess.Toggle(r.ID, r.Checked)
	m.refresh()
}

func (m *Model) pick() {
	r, ok := m.current()
	if !ok || m.view != ViewOilfield {
		return
	}
	if r.Kind != oilfield.KindWell {
		m.notice = oilfield.Notice{Level: oilfield.LevelWarning, Message: "only wells can be moved"}
		return
	}
	m.picked = r.ID
	m.notice = oilfield.Notice{Level: oilfield.LevelInfo, Message: "moving " + r.Label}
}

// drop places the picked well at the cursor: into a container, or after
// (before, with the Before key) a well.
func (m *Model) drop(before bool) {
	r, ok := m.current()
	if !ok || m.picked == "" {
		return
	}
	dt := oilfield.DropInner
	if r.Kind == oilfield.KindWell {
		dt = oilfield.DropAfter
		if before {
			dt = oilfield.DropBefore
		}
	}
	m.notice = m.sess.Drop(m.picked, r.ID, dt)
	m.picked = ""
	m.refresh()
}

// refresh re-reads the current view from the session and clamps the cursor.
func (m *Model) refresh() {
	switch m.view {
	case ViewComponents:
		m.rows = flattenView(m.sess.ComponentTree(), m.expanded[ViewComponents], set(m.sess.Checked().Components))
	case ViewLayout:
		m.rows = flattenView(m.sess.LayoutTree(), m.expanded[ViewLayout], set(m.sess.Checked().Layout))
	case ViewOilfield:
		_, open := m.sess.Expanded()
		m.rows = flattenField(m.sess.OilfieldTree(), set(open))
	}
	if m.cursor >= len(m.rows) {
		m.cursor = max(0, len(m.rows)-1)
	}
}

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder
	b.WriteString(m.statusBar())
	b.WriteString("\n")
	for i, r := range m.rows {
		b.WriteString(m.renderRow(i, r))
		b.WriteString("\n")
	}
	if m.notice.Message != "" {
		b.WriteString(noticeStyle(m.notice.Level).Render(m.notice.Message))
		b.WriteString("\n")
	}
	b.WriteString(Footer{Width: m.Width, Bindings: footerBindings(m.Keys, m.view, m.picked != "")}.View())
	return b.String()
}

func (m Model) statusBar() string {
	tabs := make([]string, 0, viewCount)
	for v := View(0); v < viewCount; v++ {
		style := styleTabInactive
		if v == m.view {
			style = styleTabActive
		}
		tabs = append(tabs, style.Render(v.String()))
	}
	f := m.sess.Field()
	wells := len(f.Ungrouped)
	for _, s := range f.Sites {
		wells += len(s.Wells)
	}
	counts := styleStatusValue.Render(fmt.Sprintf("%d wells, %d sites", wells, len(f.Sites)))
	bar := strings.Join(tabs, "  ") + "   " + counts
	if m.Width > 0 {
		return styleStatusBar.Width(m.Width).Render(bar)
	}
	return styleStatusBar.Render(bar)
}

func (m Model) renderRow(i int, r row) string {
	indicator := " "
	style := styleRowNormal
	if i == m.cursor {
		indicator = styleSelectionIndicator.Render(selectionIndicator)
		style = styleRowSelected
	}
	if r.ID == m.picked {
		style = styleRowPicked
	}

	glyph := iconLeaf
	if r.Branch {
		glyph = iconCollapsed
		if r.Expanded {
			glyph = iconExpanded
		}
	}
	box := ""
	if m.view != ViewOilfield {
		box = styleUnchecked.Render(iconUnchecked) + " "
		if r.Checked {
			box = styleChecked.Render(iconChecked) + " "
		}
	}
	return indicator + strings.Repeat("  ", r.Depth) + glyph + " " + box + style.Render(r.Label)
}

func noticeStyle(l oilfield.Level) lipgloss.Style {
	switch l {
	case oilfield.LevelSuccess:
		return styleNoticeSuccess
	case oilfield.LevelWarning:
		return styleNoticeWarning
	case oilfield.LevelError:
		return styleNoticeError
	}
	return styleNoticeInfo
}
