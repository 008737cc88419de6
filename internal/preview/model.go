// Package preview shows the source diff next to its rendered Markdown in the
// terminal.
package preview

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

type focusPane int

const (
	focusMarkdown focusPane = iota
	focusRaw
)

// Renderer turns Markdown into terminal text wrapped to width.
type Renderer func(markdown string, width int) (string, error)

// GlamourRenderer renders with a glamour standard style; "auto" or "" picks
// one from the terminal background.
func GlamourRenderer(style string) Renderer {
	return func(markdown string, width int) (string, error) {
		opts := []glamour.TermRendererOption{glamour.WithWordWrap(max(20, width-2))}
		if style == "" || style == "auto" {
			opts = append(opts, glamour.WithAutoStyle())
		} else {
			opts = append(opts, glamour.WithStandardStyle(style))
		}
		r, err := glamour.NewTermRenderer(opts...)
		if err != nil {
			return "", err
		}
		return r.Render(markdown)
	}
}

var (
	addStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	delStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	hunkStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	headerStyle = lipgloss.NewStyle().Bold(true)
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	errStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Bold(true)
)

// Model is the Bubble Tea state for the preview.
type Model struct {
	keys   KeyMap
	focus  focusPane
	render Renderer

	raw      string
	markdown string

	width     int
	height    int
	ready     bool
	rawHidden bool
	helpOpen  bool

	rawView viewport.Model
	mdView  viewport.Model
	err     error

	// rendered caches renderer output by pane width.
	rendered map[int]renderResult
}

type renderResult struct {
	out string
	err error
}

func NewModel(raw, markdown string, render Renderer) Model {
	return Model{
		keys:     defaultKeyMap(),
		focus:    focusMarkdown,
		render:   render,
		raw:      raw,
		markdown: markdown,
		rawView:  viewport.New(1, 1),
		mdView:   viewport.New(1, 1),
		rendered: make(map[int]renderResult),
	}
}

// Run blocks until the user quits the preview.
func Run(raw, markdown, style string) error {
	program := tea.NewProgram(NewModel(raw, markdown, GlamourRenderer(style)), tea.WithAltScreen())
	_, err := program.Run()
	return err
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.resize()
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.ToggleFocus):
			if !m.rawHidden {
				if m.focus == focusMarkdown {
					m.focus = focusRaw
				} else {
					m.focus = focusMarkdown
				}
			}
			return m, nil
		case key.Matches(msg, m.keys.ToggleRaw):
			m.rawHidden = !m.rawHidden
			if m.rawHidden {
				m.focus = focusMarkdown
			}
			m.resize()
			return m, nil
		case key.Matches(msg, m.keys.Top):
			m.active().GotoTop()
			return m, nil
		case key.Matches(msg, m.keys.Bottom):
			m.active().GotoBottom()
			return m, nil
		case key.Matches(msg, m.keys.Help):
			m.helpOpen = !m.helpOpen
			m.resize()
			return m, nil
		}
	}

	var cmd tea.Cmd
	if m.focus == focusRaw {
		m.rawView, cmd = m.rawView.Update(msg)
	} else {
		m.mdView, cmd = m.mdView.Update(msg)
	}
	return m, cmd
}

func (m *Model) active() *viewport.Model {
	if m.focus == focusRaw {
		return &m.rawView
	}
	return &m.mdView
}

func (m *Model) resize() {
	if !m.ready {
		return
	}
	leftW, rightW := paneWidths(m.width, m.width*2/5, m.rawHidden)
	rendered := m.renderAt(rightW)

	// Borders take two rows and the pane title one more.
	bodyH := max(1, m.height-lipgloss.Height(m.footer())-3)

	m.rawView.Width = max(1, leftW)
	m.rawView.Height = bodyH
	m.rawView.SetContent(colorizeDiff(m.raw, leftW))

	m.mdView.Width = rightW
	m.mdView.Height = bodyH
	m.mdView.SetContent(truncateLines(rendered, rightW))
}

// renderAt returns the Markdown pane content for width, falling back to the
// source text when rendering fails.
func (m *Model) renderAt(width int) string {
	res, ok := m.rendered[width]
	if !ok {
		res.out, res.err = m.render(m.markdown, width)
		m.rendered[width] = res
	}
	m.err = res.err
	if res.err != nil {
		return m.markdown
	}
	return res.out
}

func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	leftW, rightW := paneWidths(m.width, m.width*2/5, m.rawHidden)
	mdPane := renderPane("markdown", m.mdView.View(), rightW, m.focus == focusMarkdown)
	content := mdPane
	if !m.rawHidden {
		rawPane := renderPane("diff", m.rawView.View(), leftW, m.focus == focusRaw)
		content = lipgloss.JoinHorizontal(lipgloss.Top, rawPane, mdPane)
	}
	return lipgloss.JoinVertical(lipgloss.Left, content, m.footer())
}

func (m Model) footer() string {
	lines := []string{mutedStyle.Render(truncateLines(m.helpText(), m.width))}
	if m.err != nil {
		lines = append(lines, errStyle.Render(ansi.Truncate(fmt.Sprintf("render failed, showing source: %v", m.err), max(1, m.width), "")))
	}
	return strings.Join(lines, "\n")
}

func (m Model) helpText() string {
	if !m.helpOpen {
		return "tab switch pane | z hide/show diff | j/k scroll | g/G top/bottom | ? help | q quit"
	}
	return strings.Join([]string{
		"Global: q quit, tab switch focused pane, z hide or show the source diff, ? toggle help",
		"Scroll: j/k line, d/u half page, f/b page, g/G top/bottom",
	}, "\n")
}

func renderPane(title, body string, width int, focused bool) string {
	borderColor := lipgloss.Color("245")
	if focused {
		borderColor = lipgloss.Color("39")
	}
	heading := headerStyle.Render(ansi.Truncate(title, max(1, width), ""))
	return lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(borderColor).
		Width(max(1, width)).
		Render(heading + "\n" + body)
}

func colorizeDiff(raw string, width int) string {
	lines := strings.Split(strings.TrimRight(raw, "\n"), "\n")
	for i, line := range lines {
		line = ansi.Truncate(strings.ReplaceAll(line, "\t", "    "), max(1, width), "")
		switch {
		case strings.HasPrefix(line, "diff --git"):
			line = headerStyle.Render(line)
		case strings.HasPrefix(line, "@@"):
			line = hunkStyle.Render(line)
		case strings.HasPrefix(line, "+++"), strings.HasPrefix(line, "---"):
			line = mutedStyle.Render(line)
		case strings.HasPrefix(line, "+"):
			line = addStyle.Render(line)
		case strings.HasPrefix(line, "-"):
			line = delStyle.Render(line)
		}
		lines[i] = line
	}
	return strings.Join(lines, "\n")
}

func truncateLines(s string, width int) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = ansi.Truncate(line, max(1, width), "")
	}
	return strings.Join(lines, "\n")
}
