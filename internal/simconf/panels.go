package simconf

// ToggleFilmstrip implements channel.Panels.
func (e *Engine) ToggleFilmstrip() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.state.FilmstripVisible = !e.state.FilmstripVisible
}

// ToggleChat implements channel.Panels.
func (e *Engine) ToggleChat() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.state.ChatOpen = !e.state.ChatOpen
}

// ToggleContactList implements channel.Panels.
func (e *Engine) ToggleContactList() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.state.ContactListOpen = !e.state.ContactListOpen
}

// OpenDeviceSelectionDialog implements channel.Panels.
func (e *Engine) OpenDeviceSelectionDialog() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.state.DeviceDialogOpened++
}
