package main

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"slapimage/draw"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true)
	labelStyle   = lipgloss.NewStyle().Width(labelWidth).Foreground(lipgloss.Color("8"))
	focusStyle   = lipgloss.NewStyle().Width(labelWidth).Foreground(lipgloss.Color("12")).Bold(true)
	cursorStyle  = lipgloss.NewStyle().Reverse(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	helpStyle    = lipgloss.NewStyle().Faint(true)
)

func initialModel(cfg *Config, fonts *draw.FontSet, cs canvasSpec, f fieldSpec, output string) (model, error) {
	base, err := loadCanvas(cs)
	if err != nil {
		return model{}, err
	}
	m := model{
		cfg:    cfg,
		fonts:  fonts,
		base:   base,
		drawer: draw.NewDrawer(base, fonts, draw.WithDefaultFont(cfg.DefaultFont)),
		output: output,
	}
	font := f.Font
	if font == "" {
		font = cfg.DefaultFont
	}
	maxSize := f.MaxFontSize
	if maxSize == 0 {
		maxSize = cfg.MaxFontSize
	}
	lineHeight := f.LineHeight
	if lineHeight == 0 {
		lineHeight = cfg.LineHeight
	}
	m.values = [numRows]string{
		RowText:       f.Text,
		RowCoords:     formatCoords(f.Coords.Coords),
		RowAnchor:     f.Anchor,
		RowFont:       font,
		RowFill:       f.Fill,
		RowMaxSize:    strconv.Itoa(maxSize),
		RowLineHeight: strconv.FormatFloat(lineHeight, 'g', -1, 64),
		RowBreak:      strconv.FormatBool(f.BreakText),
		RowInverted:   strconv.FormatBool(f.Inverted),
	}
	m.cursorPos = len([]rune(f.Text))
	m.replan()
	return m, nil
}

// field builds the field described by the form. Stroke options are not
// editable in the preview.
func (m *model) field() (fieldSpec, error) {
	coords, err := parseCoords(m.values[RowCoords])
	if err != nil {
		return fieldSpec{}, err
	}
	maxSize, err := strconv.Atoi(strings.TrimSpace(m.values[RowMaxSize]))
	if err != nil {
		return fieldSpec{}, fmt.Errorf("max size: %w", err)
	}
	lineHeight, err := strconv.ParseFloat(strings.TrimSpace(m.values[RowLineHeight]), 64)
	if err != nil {
		return fieldSpec{}, fmt.Errorf("line height: %w", err)
	}
	return fieldSpec{
		Coords:      coordsSpec{coords},
		Text:        m.values[RowText],
		Anchor:      m.values[RowAnchor],
		Font:        m.values[RowFont],
		Fill:        m.values[RowFill],
		MaxFontSize: maxSize,
		LineHeight:  lineHeight,
		BreakText:   m.values[RowBreak] == "true",
		Inverted:    m.values[RowInverted] == "true",
	}, nil
}

// replan refits the field so the status line stays current.
func (m *model) replan() {
	m.plan, m.planErr = draw.Layout{}, nil
	f, err := m.field()
	if err != nil {
		m.planErr = err
		return
	}
	if _, err := f.style(); err != nil {
		m.planErr = err
		return
	}
	m.plan, m.planErr = planField(m.drawer, f, m.cfg)
}

func (m *model) save() {
	m.errorMessage, m.successMessage = "", ""
	f, err := m.field()
	if err != nil {
		m.errorMessage = err.Error()
		return
	}
	img := cloneRGBA(m.base)
	d := draw.NewDrawer(img, m.fonts, draw.WithDefaultFont(m.cfg.DefaultFont))
	if err := drawField(d, f, m.cfg); err != nil {
		m.errorMessage = err.Error()
		return
	}
	if err := savePNG(m.output, img); err != nil {
		m.errorMessage = err.Error()
		return
	}
	m.successMessage = "saved " + m.output
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if m.help {
			m.help = false
			return m, nil
		}
		key := msg.String()
		switch key {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "f1":
			m.help = true
			return m, nil
		case "ctrl+s":
			m.save()
			return m, nil
		case "ctrl+z":
			m.undo()
			return m, nil
		case "ctrl+y":
			m.redo()
			return m, nil
		case "tab", "shift+tab", "up", "down", "left", "right", "home", "end", "ctrl+a", "ctrl+e":
			m.handleNavigation(key)
			return m, nil
		}

		m.successMessage = ""
		switch {
		case m.focus.isToggle() && (msg.Type == tea.KeySpace || msg.Type == tea.KeyEnter):
			m.toggle()
		case msg.Type == tea.KeyEnter && m.focus == RowText:
			m.insert("\n")
		case msg.Type == tea.KeyEnter:
			m.moveFocus(1)
		case msg.Type == tea.KeyBackspace:
			m.deleteBack()
		case msg.Type == tea.KeySpace && !m.focus.isToggle():
			m.insert(" ")
		case msg.Type == tea.KeyRunes && !m.focus.isToggle():
			m.insert(string(msg.Runes))
		}
		return m, nil
	}
	return m, nil
}

func (m *model) insert(s string) {
	oldValue, oldCursor := m.values[m.focus], m.cursorPos
	runes := []rune(oldValue)
	ins := []rune(s)
	value := string(runes[:m.cursorPos]) + s + string(runes[m.cursorPos:])
	m.values[m.focus] = value
	m.cursorPos += len(ins)
	m.recordAction(ActionEdit, m.focus, oldValue, oldCursor)
	m.replan()
}

func (m *model) deleteBack() {
	if m.cursorPos == 0 {
		return
	}
	oldValue, oldCursor := m.values[m.focus], m.cursorPos
	runes := []rune(oldValue)
	m.values[m.focus] = string(runes[:m.cursorPos-1]) + string(runes[m.cursorPos:])
	m.cursorPos--
	m.recordAction(ActionEdit, m.focus, oldValue, oldCursor)
	m.replan()
}

func (m *model) toggle() {
	oldValue, oldCursor := m.values[m.focus], m.cursorPos
	m.values[m.focus] = strconv.FormatBool(oldValue != "true")
	m.cursorPos = len(m.values[m.focus])
	m.recordAction(ActionToggle, m.focus, oldValue, oldCursor)
	m.replan()
}

func (m model) View() string {
	if m.help {
		return m.helpView()
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("slapimage preview"))
	b.WriteString("  " + helpStyle.Render(m.output))
	b.WriteString("\n\n")

	valueWidth := m.width - labelWidth - 1
	if valueWidth < 10 {
		valueWidth = 60
	}
	for r := Row(0); r < numRows; r++ {
		label := labelStyle.Render(r.String())
		if r == m.focus {
			label = focusStyle.Render(r.String())
		}
		b.WriteString(label + " " + m.renderValue(r, valueWidth) + "\n")
	}

	b.WriteString("\n")
	b.WriteString(m.statusLine())
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("tab/shift+tab move  ctrl+s save  ctrl+z undo  ctrl+y redo  f1 help  esc quit"))
	return b.String()
}

// renderValue shows a row value on one line with newlines as ↵, the
// cursor highlighted on the focused row.
func (m model) renderValue(r Row, width int) string {
	value := m.values[r]
	if r != m.focus {
		return runewidth.Truncate(strings.ReplaceAll(value, "\n", "↵"), width, "…")
	}
	runes := []rune(value)
	before := strings.ReplaceAll(string(runes[:m.cursorPos]), "\n", "↵")
	at, after := " ", ""
	if m.cursorPos < len(runes) {
		at = strings.ReplaceAll(string(runes[m.cursorPos]), "\n", "↵")
		after = strings.ReplaceAll(string(runes[m.cursorPos+1:]), "\n", "↵")
	}
	// Keep the cursor visible by dropping text from the left.
	for runewidth.StringWidth(before)+1 > width && before != "" {
		_, size := utf8.DecodeRuneInString(before)
		before = before[size:]
	}
	rest := runewidth.Truncate(after, max(width-runewidth.StringWidth(before)-1, 0), "…")
	return before + cursorStyle.Render(at) + rest
}

func (m model) statusLine() string {
	switch {
	case m.errorMessage != "":
		return errorStyle.Render(m.errorMessage)
	case m.successMessage != "":
		return successStyle.Render(m.successMessage)
	case m.planErr != nil:
		return errorStyle.Render(m.planErr.Error())
	case len(m.plan.Placements) == 0:
		return helpStyle.Render("nothing to draw")
	}
	lines := "1 line"
	if n := len(m.plan.Placements); n != 1 {
		lines = fmt.Sprintf("%d lines", n)
	}
	return fmt.Sprintf("font %s at %dpx, %s", m.plan.Font, m.plan.Size, lines)
}

func (m model) helpView() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("slapimage preview help") + "\n\n")
	help := [][2]string{
		{"tab, down", "next row"},
		{"shift+tab, up", "previous row"},
		{"left, right", "move the cursor"},
		{"home, end", "start or end of the value"},
		{"enter", "new line in text, toggle switches, else next row"},
		{"space", "toggle switches"},
		{"ctrl+s", "render and save the PNG"},
		{"ctrl+z, ctrl+y", "undo, redo"},
		{"esc, ctrl+c", "quit"},
	}
	for _, h := range help {
		b.WriteString(lipgloss.NewStyle().Width(18).Bold(true).Render(h[0]) + h[1] + "\n")
	}
	b.WriteString("\nanchor: l/m/r then a/m/d, plus a/m/d to place a wrapped block\n")
	b.WriteString("coords: xyxy:x1,y1,x2,y2 or xywh:x,y,w,h\n\n")
	b.WriteString(helpStyle.Render("press any key to return"))
	return b.String()
}
