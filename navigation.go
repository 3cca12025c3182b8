package main

import "unicode/utf8"

func (m *model) handleNavigation(key string) {
	switch key {
	case "tab", "down":
		m.moveFocus(1)
	case "shift+tab", "up":
		m.moveFocus(-1)
	case "left":
		m.cursorPos--
	case "right":
		m.cursorPos++
	case "home", "ctrl+a":
		m.cursorPos = 0
	case "end", "ctrl+e":
		m.cursorPos = utf8.RuneCountInString(m.values[m.focus])
	}
	m.ensureCursorInBounds()
}

func (m *model) moveFocus(delta int) {
	m.focus = Row((int(m.focus) + delta + int(numRows)) % int(numRows))
	m.cursorPos = utf8.RuneCountInString(m.values[m.focus])
}

func (m *model) ensureCursorInBounds() {
	if m.cursorPos < 0 {
		m.cursorPos = 0
	}
	if n := utf8.RuneCountInString(m.values[m.focus]); m.cursorPos > n {
		m.cursorPos = n
	}
}
