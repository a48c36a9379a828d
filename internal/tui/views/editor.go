package views

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/xolan/journali/internal/editor"
	"github.com/xolan/journali/internal/entry"
	"github.com/xolan/journali/internal/tui/ui"
)

type editorField int

const (
	fieldTitle editorField = iota
	fieldContent
)

// EditorClosedMsg is sent when the editor closes. Saved is nil when the
// session was cancelled or discarded.
type EditorClosedMsg struct {
	Saved *entry.Entry
}

// editorSaveFailedMsg reports a save that did not reach storage. The
// editor stays open so the save can be retried.
type editorSaveFailedMsg struct {
	err error
}

// EditorModel edits a single entry through an editor session.
type EditorModel struct {
	ctx     context.Context
	session *editor.Session
	styles  ui.Styles
	keys    ui.KeyMap

	width   int
	height  int
	focused editorField
	title   textinput.Model
	content textarea.Model
	err     error
	saving  bool
}

// NewEditorModel creates an editor view over session.
func NewEditorModel(ctx context.Context, session *editor.Session, styles ui.Styles, keys ui.KeyMap) EditorModel {
	draft := session.Draft()

	title := textinput.New()
	title.Placeholder = "Title"
	title.CharLimit = 200
	title.Width = 50
	title.SetValue(draft.Title)
	title.Focus()

	content := textarea.New()
	content.Placeholder = "Write something..."
	content.ShowLineNumbers = false
	content.CharLimit = 0
	content.SetWidth(60)
	content.SetHeight(10)
	content.SetValue(draft.Content)

	return EditorModel{
		ctx:     ctx,
		session: session,
		styles:  styles,
		keys:    keys,
		title:   title,
		content: content,
	}
}

// Init implements tea.Model
func (m EditorModel) Init() tea.Cmd {
	return textinput.Blink
}

// Session returns the underlying editor session.
func (m EditorModel) Session() *editor.Session {
	return m.session
}

// Update implements tea.Model
func (m EditorModel) Update(msg tea.Msg) (EditorModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.session.State() == editor.ConfirmingDiscard {
			return m.handleDiscardPrompt(msg)
		}
		if m.saving {
			return m, nil
		}

		switch {
		case key.Matches(msg, m.keys.Save):
			m.sync()
			if !m.session.CanSave() {
				m.err = editor.ErrEmptyTitle
				return m, nil
			}
			m.saving = true
			return m, m.save()

		case key.Matches(msg, m.keys.Back):
			m.sync()
			if m.session.RequestCancel() == editor.Closed {
				return m, closeEditor(nil)
			}
			return m, nil

		case key.Matches(msg, m.keys.SwitchField):
			m.toggleFocus()
			return m, nil
		}

	case editorSaveFailedMsg:
		m.saving = false
		m.err = msg.err
		return m, nil

	case ui.ThemeChangedMsg:
		m.styles = msg.Styles
		return m, nil
	}

	var cmd tea.Cmd
	if m.focused == fieldTitle {
		m.title, cmd = m.title.Update(msg)
	} else {
		m.content, cmd = m.content.Update(msg)
	}
	m.sync()
	if m.session.CanSave() && errors.Is(m.err, editor.ErrEmptyTitle) {
		m.err = nil
	}
	return m, cmd
}

func (m EditorModel) handleDiscardPrompt(msg tea.KeyMsg) (EditorModel, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Confirm):
		m.session.Discard()
		return m, closeEditor(nil)
	case key.Matches(msg, m.keys.Decline):
		m.session.KeepEditing()
	}
	return m, nil
}

func (m *EditorModel) toggleFocus() {
	if m.focused == fieldTitle {
		m.focused = fieldContent
		m.title.Blur()
		m.content.Focus()
		return
	}
	m.focused = fieldTitle
	m.content.Blur()
	m.title.Focus()
}

// sync copies the input values into the session.
func (m EditorModel) sync() {
	m.session.SetTitle(m.title.Value())
	m.session.SetContent(m.content.Value())
}

func (m EditorModel) save() tea.Cmd {
	session, ctx := m.session, m.ctx
	return func() tea.Msg {
		saved, err := session.Save(ctx)
		if err != nil {
			return editorSaveFailedMsg{err: err}
		}
		return EditorClosedMsg{Saved: &saved}
	}
}

func closeEditor(saved *entry.Entry) tea.Cmd {
	return func() tea.Msg { return EditorClosedMsg{Saved: saved} }
}

// SetSize sets the view dimensions
func (m *EditorModel) SetSize(width, height int) {
	m.width = width
	m.height = height
	if width > 10 {
		m.title.Width = width - 8
		m.content.SetWidth(width - 4)
	}
	if height > 14 {
		m.content.SetHeight(height - 12)
	}
}

// View implements tea.Model
func (m EditorModel) View() string {
	var b strings.Builder

	heading := "Edit Entry"
	if m.session.IsNew() {
		heading = "New Entry"
	}
	if m.session.Dirty() {
		heading += " •"
	}
	b.WriteString(m.styles.ViewTitle.Render(heading))
	b.WriteString("\n")

	titleStyle, contentStyle := m.styles.Input, m.styles.Input
	if m.focused == fieldTitle {
		titleStyle = m.styles.InputFocused
	} else {
		contentStyle = m.styles.InputFocused
	}
	b.WriteString(titleStyle.Render(m.title.View()))
	b.WriteString("\n")
	b.WriteString(contentStyle.Render(m.content.View()))
	b.WriteString("\n")

	if m.err != nil {
		b.WriteString(m.styles.Error.Render("Error: " + m.err.Error()))
		b.WriteString("\n")
	}

	if m.session.State() == editor.ConfirmingDiscard {
		b.WriteString("\n")
		b.WriteString(m.renderDiscardPrompt())
		return b.String()
	}

	hint := "Tab to switch fields, Ctrl+S to save, Esc to cancel"
	if !m.session.CanSave() {
		hint = "A title is required to save. " + hint
	}
	b.WriteString(m.styles.EmptyHint.Render(hint))
	return b.String()
}

func (m EditorModel) renderDiscardPrompt() string {
	var b strings.Builder
	b.WriteString(m.styles.DialogTitle.Render("Discard changes?"))
	b.WriteString("\n")
	b.WriteString(m.styles.Warning.Render("Your edits to this entry will be lost."))
	b.WriteString("\n\n")
	b.WriteString(m.styles.EmptyHint.Render("Press Y to discard, N or Esc to keep editing"))
	return m.styles.Dialog.Render(b.String())
}
