package views

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/xolan/journali/internal/cli"
	"github.com/xolan/journali/internal/editor"
	"github.com/xolan/journali/internal/service"
	"github.com/xolan/journali/internal/tui/ui"
	"github.com/xolan/journali/internal/view"
)

// journalMode represents the current mode of the journal view
type journalMode int

const (
	journalModeNormal journalMode = iota
	journalModeSearch
	journalModeDelete
	journalModeEdit
)

// JournalModel is the model for the journal list view
type JournalModel struct {
	ctx      context.Context
	services *service.Services
	styles   ui.Styles
	keys     ui.KeyMap

	// UI state
	width   int
	height  int
	cursor  int
	offset  int
	entries []service.IndexedEntry
	total   int
	sort    view.SortMode
	status  string
	err     error

	mode        journalMode
	searchInput textinput.Model
	editor      EditorModel
	recording   bool
}

// NewJournalModel creates a new journal view model
func NewJournalModel(ctx context.Context, services *service.Services, styles ui.Styles, keys ui.KeyMap) JournalModel {
	searchInput := textinput.New()
	searchInput.Placeholder = "Search titles and content..."
	searchInput.Prompt = "/ "
	searchInput.CharLimit = 100
	searchInput.Width = 40

	m := JournalModel{
		ctx:         ctx,
		services:    services,
		styles:      styles,
		keys:        keys,
		sort:        services.Config.SortMode(),
		searchInput: searchInput,
	}
	m.reload()
	return m
}

// mutationDoneMsg is sent when a change to the journal finished
type mutationDoneMsg struct {
	status string
	err    error
}

// recordingStartedMsg is sent when audio capture started or failed to
type recordingStartedMsg struct {
	err error
}

// Init implements tea.Model
func (m JournalModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (m JournalModel) Update(msg tea.Msg) (JournalModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch m.mode {
		case journalModeEdit:
			var cmd tea.Cmd
			m.editor, cmd = m.editor.Update(msg)
			return m, cmd
		case journalModeDelete:
			return m.handleDeleteMode(msg)
		case journalModeSearch:
			return m.handleSearchMode(msg)
		}
		return m.handleNormalMode(msg)

	case EditorClosedMsg:
		m.mode = journalModeNormal
		m.reload()
		if msg.Saved != nil {
			m.setStatus("Saved "+msg.Saved.Title, nil)
			m.selectID(msg.Saved.ID)
		}
		return m, nil

	case mutationDoneMsg:
		m.setStatus(msg.status, msg.err)
		m.reload()
		return m, nil

	case recordingStartedMsg:
		if msg.err != nil {
			m.recording = false
			m.setStatus("", msg.err)
			return m, nil
		}
		m.recording = true
		m.setStatus("Recording... press r to stop", nil)
		return m, nil

	case ui.SortModeChangedMsg:
		if mode, err := view.ParseSortMode(msg.Mode); err == nil {
			m.sort = mode
			m.reload()
		}
		return m, nil

	case ui.ThemeChangedMsg:
		m.styles = msg.Styles
		if m.mode == journalModeEdit {
			m.editor, _ = m.editor.Update(msg)
		}
		return m, nil
	}

	if m.mode == journalModeEdit {
		var cmd tea.Cmd
		m.editor, cmd = m.editor.Update(msg)
		return m, cmd
	}
	if m.mode == journalModeSearch {
		var cmd tea.Cmd
		m.searchInput, cmd = m.searchInput.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m JournalModel) handleNormalMode(msg tea.KeyMsg) (JournalModel, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.entries)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.New):
		return m.openEditor(m.services.Journal.NewDraft())
	case key.Matches(msg, m.keys.Select), key.Matches(msg, m.keys.Edit):
		if selected, ok := m.Selected(); ok {
			return m.openEditor(m.services.Journal.OpenEditor(selected.Entry))
		}
	case key.Matches(msg, m.keys.Delete):
		if _, ok := m.Selected(); ok {
			m.mode = journalModeDelete
		}
	case key.Matches(msg, m.keys.Bookmark):
		if selected, ok := m.Selected(); ok {
			return m, m.toggleBookmark(selected.Entry.ID)
		}
	case key.Matches(msg, m.keys.Search):
		m.mode = journalModeSearch
		m.searchInput.Focus()
		return m, textinput.Blink
	case key.Matches(msg, m.keys.Back):
		if m.searchInput.Value() != "" {
			m.searchInput.SetValue("")
			m.reload()
		}
	case key.Matches(msg, m.keys.Sort):
		m.sort = m.sort.Next()
		m.reload()
		return m, m.saveSortMode(m.sort)
	case key.Matches(msg, m.keys.Record):
		if m.recording {
			m.recording = false
			return m, m.stopRecording()
		}
		return m, m.startRecording()
	}
	m.offset = scrollOffset(m.offset, m.cursor, m.listRows())
	return m, nil
}

// handleSearchMode filters the list as the user types. Enter keeps the
// filter and returns to the list, Esc clears it.
func (m JournalModel) handleSearchMode(msg tea.KeyMsg) (JournalModel, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Select):
		m.mode = journalModeNormal
		m.searchInput.Blur()
		return m, nil
	case key.Matches(msg, m.keys.Back):
		m.mode = journalModeNormal
		m.searchInput.Blur()
		m.searchInput.SetValue("")
		m.reload()
		return m, nil
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	m.cursor, m.offset = 0, 0
	m.reload()
	return m, cmd
}

// handleDeleteMode handles key events when in delete confirmation mode
func (m JournalModel) handleDeleteMode(msg tea.KeyMsg) (JournalModel, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Confirm):
		m.mode = journalModeNormal
		if selected, ok := m.Selected(); ok {
			return m, m.deleteEntry(selected.Entry.ID)
		}
	case key.Matches(msg, m.keys.Decline):
		m.mode = journalModeNormal
	}
	return m, nil
}

func (m JournalModel) openEditor(session *editor.Session) (JournalModel, tea.Cmd) {
	m.editor = NewEditorModel(m.ctx, session, m.styles, m.keys)
	m.editor.SetSize(m.width, m.height)
	m.mode = journalModeEdit
	m.setStatus("", nil)
	return m, m.editor.Init()
}

// reload re-reads the list from the journal.
func (m *JournalModel) reload() {
	result := m.services.Journal.List(m.searchInput.Value(), m.sort)
	m.entries = result.Entries
	m.total = result.Total
	if m.cursor >= len(m.entries) {
		m.cursor = max(0, len(m.entries)-1)
	}
	m.offset = scrollOffset(m.offset, m.cursor, m.listRows())
}

func (m *JournalModel) selectID(id string) {
	for i, ie := range m.entries {
		if ie.Entry.ID == id {
			m.cursor = i
			m.offset = scrollOffset(m.offset, m.cursor, m.listRows())
			return
		}
	}
}

func (m *JournalModel) setStatus(status string, err error) {
	m.status = status
	m.err = err
}

// listRows is the number of entry rows that fit in the view.
func (m JournalModel) listRows() int {
	if m.height <= 0 {
		return 0
	}
	return max(1, m.height-6)
}

// Selected returns the entry under the cursor.
func (m JournalModel) Selected() (service.IndexedEntry, bool) {
	if m.cursor < 0 || m.cursor >= len(m.entries) {
		return service.IndexedEntry{}, false
	}
	return m.entries[m.cursor], true
}

// View implements tea.Model
func (m JournalModel) View() string {
	switch m.mode {
	case journalModeEdit:
		return m.editor.View()
	case journalModeDelete:
		return m.renderDeleteConfirm()
	}

	var b strings.Builder

	title := "Journal"
	if m.recording {
		title += "  " + m.styles.Recording.Render("● REC")
	}
	b.WriteString(m.styles.ViewTitle.Render(title))
	b.WriteString("\n")

	if m.mode == journalModeSearch || m.searchInput.Value() != "" {
		b.WriteString(m.searchInput.View())
		b.WriteString("\n\n")
	}

	switch {
	case m.total == 0:
		b.WriteString(RenderEmptyJournal(m.styles))
		b.WriteString("\n")
	case len(m.entries) == 0:
		b.WriteString(m.styles.EmptyHint.Render(fmt.Sprintf("No entries match %q", m.searchInput.Value())))
		b.WriteString("\n")
	default:
		b.WriteString(RenderEntryList(m.entries, m.styles, EntryRenderOptions{
			Width:  m.width,
			Cursor: m.cursor,
			Offset: m.offset,
			Rows:   m.listRows(),
		}))
		b.WriteString(strings.Repeat("─", min(50, max(m.width, 1))))
		b.WriteString("\n")
		b.WriteString(fmt.Sprintf("%d of %d %s, sorted by %s",
			len(m.entries), m.total, cli.Pluralize("entry", m.total), m.sort))
		b.WriteString("\n")
	}

	if m.err != nil {
		b.WriteString(m.styles.Error.Render("Error: " + m.err.Error()))
	} else if m.status != "" {
		b.WriteString(m.styles.Success.Render(m.status))
	}

	return b.String()
}

// renderDeleteConfirm renders the delete confirmation dialog
func (m JournalModel) renderDeleteConfirm() string {
	var b strings.Builder
	b.WriteString(m.styles.DialogTitle.Render("Delete Journal?"))
	b.WriteString("\n")
	if selected, ok := m.Selected(); ok {
		b.WriteString(m.styles.Label.Render("Title:"))
		b.WriteString(m.styles.Value.Render(selected.Entry.Title))
		b.WriteString("\n")
		b.WriteString(m.styles.Label.Render("Created:"))
		b.WriteString(m.styles.Value.Render(selected.Entry.CreatedAt.Local().Format(dateLayout)))
		b.WriteString("\n\n")
	}
	b.WriteString(m.styles.Warning.Render("This action cannot be undone."))
	b.WriteString("\n\n")
	b.WriteString(m.styles.EmptyHint.Render("Press Y to delete, N or Esc to cancel"))
	return m.styles.Dialog.Render(b.String())
}

// SetSize sets the view dimensions
func (m *JournalModel) SetSize(width, height int) {
	m.width = width
	m.height = height
	if m.mode == journalModeEdit {
		m.editor.SetSize(width, height)
	}
	m.offset = scrollOffset(m.offset, m.cursor, m.listRows())
}

// SortMode returns the order the list is shown in.
func (m JournalModel) SortMode() view.SortMode {
	return m.sort
}

// IsInputMode returns true when the view is capturing keyboard input
func (m JournalModel) IsInputMode() bool {
	return m.mode != journalModeNormal
}

// IsRecording reports whether a voice note is being recorded.
func (m JournalModel) IsRecording() bool {
	return m.recording
}

func (m JournalModel) toggleBookmark(id string) tea.Cmd {
	return func() tea.Msg {
		e, err := m.services.Journal.ToggleBookmark(m.ctx, id)
		if err != nil {
			return mutationDoneMsg{err: err}
		}
		if e.IsBookmarked {
			return mutationDoneMsg{status: "Bookmarked " + e.Title}
		}
		return mutationDoneMsg{status: "Bookmark removed from " + e.Title}
	}
}

func (m JournalModel) deleteEntry(id string) tea.Cmd {
	return func() tea.Msg {
		e, err := m.services.Journal.Delete(m.ctx, id)
		if err != nil {
			return mutationDoneMsg{err: err}
		}
		return mutationDoneMsg{status: "Deleted " + e.Title}
	}
}

func (m JournalModel) saveSortMode(mode view.SortMode) tea.Cmd {
	return func() tea.Msg {
		if err := m.services.Config.SetSortMode(mode); err != nil {
			return mutationDoneMsg{err: fmt.Errorf("sort order not saved: %w", err)}
		}
		return ui.SortModeChangedMsg{Mode: mode.String()}
	}
}

func (m JournalModel) startRecording() tea.Cmd {
	return func() tea.Msg {
		return recordingStartedMsg{err: m.services.Audio.Start()}
	}
}

func (m JournalModel) stopRecording() tea.Cmd {
	return func() tea.Msg {
		e, err := m.services.Audio.Stop(m.ctx)
		if errors.Is(err, service.ErrNothingRecorded) {
			return mutationDoneMsg{status: "Nothing was recorded"}
		}
		if err != nil {
			return mutationDoneMsg{err: err}
		}
		return mutationDoneMsg{status: "Saved " + e.Title}
	}
}
