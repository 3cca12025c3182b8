package main

func (m *model) recordAction(actionType ActionType, row Row, oldValue string, oldCursor int) {
	action := Action{
		Type:      actionType,
		Row:       row,
		OldValue:  oldValue,
		NewValue:  m.values[row],
		OldCursor: oldCursor,
		NewCursor: m.cursorPos,
	}
	m.undoStack = append(m.undoStack, action)
	if len(m.undoStack) > maxUndoSize {
		m.undoStack = m.undoStack[1:]
	}
	m.redoStack = m.redoStack[:0]
}

func (m *model) undo() {
	if len(m.undoStack) == 0 {
		return
	}
	lastIndex := len(m.undoStack) - 1
	action := m.undoStack[lastIndex]
	m.undoStack = m.undoStack[:lastIndex]

	m.values[action.Row] = action.OldValue
	m.focus = action.Row
	m.cursorPos = action.OldCursor
	m.redoStack = append(m.redoStack, action)
	m.replan()
}

func (m *model) redo() {
	if len(m.redoStack) == 0 {
		return
	}
	lastIndex := len(m.redoStack) - 1
	action := m.redoStack[lastIndex]
	m.redoStack = m.redoStack[:lastIndex]

	m.values[action.Row] = action.NewValue
	m.focus = action.Row
	m.cursorPos = action.NewCursor
	m.undoStack = append(m.undoStack, action)
	m.replan()
}
