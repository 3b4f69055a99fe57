// Package notes is the interactive note browser and editor.
package notes

import (
	"fmt"
	"sort"
	"strings"
	"time"
	"unicode"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/patrickmn/go-cache"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"github.com/Paintersrp/colecto/internal/bridge"
	"github.com/Paintersrp/colecto/internal/constants"
	"github.com/Paintersrp/colecto/internal/note"
	"github.com/Paintersrp/colecto/internal/parser"
	"github.com/Paintersrp/colecto/internal/state"
	"github.com/Paintersrp/colecto/internal/tui/notes/submodels"
)

const (
	previewTTL     = 10 * time.Minute
	previewCleanup = 20 * time.Minute
)

type mode int

const (
	modeBrowse mode = iota
	modeEdit
	modeRename
	modeConfirmDelete
)

type (
	notesLoadedMsg struct {
		notes []note.Note
	}

	autosaveTickMsg struct{}

	savedMsg struct {
		id      string
		content string
		result  bridge.Result
	}

	createdMsg struct {
		result bridge.CreateResult
	}

	renamedMsg struct {
		oldID  string
		result bridge.RenameResult
	}

	deletedMsg struct {
		deleted  int
		failures []string
	}
)

type NoteListModel struct {
	bridge   *bridge.Bridge
	logger   zerolog.Logger
	folder   string
	notes    []note.Note
	list     list.Model
	keys     *listKeyMap
	editor   *editorSession
	input    submodels.InputModel
	previews *cache.Cache

	mode      mode
	selected  map[string]bool
	pending   []string
	sortField sortField
	sortOrder sortOrder
	interval  time.Duration

	// focusID is selected on the next load; openOnLoad also opens it.
	focusID    string
	openOnLoad bool

	status   string
	failed   bool
	width    int
	height   int
	copyText func(string) error
	saveSort func(field, order string) error
}

func NewNoteListModel(s *state.State, folder string) *NoteListModel {
	keys := newListKeyMap()

	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = selectedItemStyle
	delegate.Styles.SelectedDesc = selectedItemStyle

	l := list.New([]list.Item{}, delegate, 0, 0)
	l.Styles.Title = titleStyle
	l.Filter = substringFilter
	l.DisableQuitKeybindings()
	l.AdditionalShortHelpKeys = keys.shortHelp
	l.AdditionalFullHelpKeys = keys.fullHelp

	m := &NoteListModel{
		bridge:    s.Bridge,
		logger:    s.Logger,
		folder:    folder,
		list:      l,
		keys:      keys,
		editor:    newEditorSession(0, 0),
		input:     submodels.NewInputModel(""),
		previews:  cache.New(previewTTL, previewCleanup),
		selected:  map[string]bool{},
		sortField: parseSortField(s.Config.Sort.Field),
		sortOrder: parseSortOrder(s.Config.Sort.Order),
		interval:  autosaveInterval(s),
		copyText:  clipboard.WriteAll,
		saveSort:  s.Config.ChangeSort,
	}
	m.list.Title = m.listTitle()
	return m
}

// autosaveInterval lets flags and COLECTO_AUTOSAVE_INTERVAL override the
// config file.
func autosaveInterval(s *state.State) time.Duration {
	if d := viper.GetDuration("autosave_interval"); d > 0 {
		return d
	}
	if s.Config != nil && s.Config.AutosaveInterval > 0 {
		return s.Config.AutosaveInterval
	}
	return constants.DefaultAutosaveInterval
}

// Focus selects id once the first listing arrives and opens it in the editor.
func (m *NoteListModel) Focus(id string) {
	m.focusID = id
	m.openOnLoad = id != ""
}

func (m *NoteListModel) Init() tea.Cmd {
	return tea.Batch(m.loadNotes(), m.tickAutosave())
}

func (m *NoteListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case notesLoadedMsg:
		return m, m.applyNotes(msg.notes)

	case autosaveTickMsg:
		return m, tea.Batch(m.tickAutosave(), m.saveIfChanged())

	case savedMsg:
		return m, m.handleSaved(msg)

	case createdMsg:
		return m, m.handleCreated(msg)

	case renamedMsg:
		return m, m.handleRenamed(msg)

	case deletedMsg:
		return m, m.handleDeleted(msg)

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.forceQuit) {
			return m, m.quit()
		}

		switch m.mode {
		case modeEdit:
			return m, m.updateEditor(msg)
		case modeRename:
			return m, m.updateRename(msg)
		case modeConfirmDelete:
			return m, m.updateConfirmDelete(msg)
		}

		if m.list.FilterState() != list.Filtering {
			if cmd, ok := m.handleBrowseKey(msg); ok {
				return m, cmd
			}
		}
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	cmds = append(cmds, cmd)

	switch m.mode {
	case modeEdit:
		cmds = append(cmds, m.editor.area.Update(msg))
	case modeRename:
		m.input, cmd = m.input.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

func (m *NoteListModel) handleBrowseKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return m.quit(), true

	case key.Matches(msg, m.keys.openNote):
		n, ok := m.selectedNote()
		if !ok {
			return nil, true
		}
		return m.openEditor(n), true

	case key.Matches(msg, m.keys.create):
		return m.createNote(), true

	case key.Matches(msg, m.keys.rename):
		n, ok := m.selectedNote()
		if !ok {
			return nil, true
		}
		m.mode = modeRename
		m.input.Title = "Rename " + n.Title()
		return m.input.Reset(n.Title()), true

	case key.Matches(msg, m.keys.delete):
		m.pending = m.deleteTargets()
		if len(m.pending) == 0 {
			return nil, true
		}
		m.mode = modeConfirmDelete
		return nil, true

	case key.Matches(msg, m.keys.toggleSelect):
		n, ok := m.selectedNote()
		if !ok {
			return nil, true
		}
		if m.selected[n.ID] {
			delete(m.selected, n.ID)
		} else {
			m.selected[n.ID] = true
		}
		return m.refreshItems(), true

	case key.Matches(msg, m.keys.copy):
		n, ok := m.selectedNote()
		if !ok {
			return nil, true
		}
		if err := m.copyText(n.Content); err != nil {
			m.setError("Failed to copy " + n.Title())
			return nil, true
		}
		m.setStatus("Copied " + n.Title())
		return nil, true

	case key.Matches(msg, m.keys.cycleSortField):
		m.sortField = (m.sortField + 1) % 2
		return m.applySort(), true

	case key.Matches(msg, m.keys.toggleSortOrder):
		m.sortOrder = (m.sortOrder + 1) % 2
		return m.applySort(), true

	case key.Matches(msg, m.keys.reload):
		return m.loadNotes(), true
	}

	return nil, false
}

func (m *NoteListModel) updateEditor(msg tea.KeyMsg) tea.Cmd {
	switch {
	case m.editor.readOnly && key.Matches(msg, m.keys.save):
		m.setError("Read only")
		return nil

	case key.Matches(msg, m.keys.save):
		if !m.editor.hasChanges() {
			m.setStatus("No changes")
			return nil
		}
		return m.saveIfChanged()

	case key.Matches(msg, m.keys.closeEditor):
		cmd := m.saveIfChanged()
		m.editor.close()
		m.mode = modeBrowse
		return cmd

	case m.editor.readOnly:
		return nil
	}

	return m.editor.area.Update(msg)
}

func (m *NoteListModel) updateRename(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.closeEditor):
		m.mode = modeBrowse
		return nil

	case key.Matches(msg, m.keys.submit):
		n, ok := m.selectedNote()
		title := m.input.Value()
		m.mode = modeBrowse
		if !ok || title == "" {
			return nil
		}
		b, folder := m.bridge, m.folder
		return func() tea.Msg {
			return renamedMsg{oldID: n.ID, result: b.RenameNote(folder, n.ID, title)}
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return cmd
}

func (m *NoteListModel) updateConfirmDelete(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.confirm):
		ids := m.pending
		m.pending = nil
		m.mode = modeBrowse
		b, folder := m.bridge, m.folder
		return func() tea.Msg {
			var out deletedMsg
			for _, id := range ids {
				if res := b.DeleteNote(folder, id); !res.Success {
					out.failures = append(out.failures, note.TitleFromID(id)+": "+res.Error)
					continue
				}
				out.deleted++
			}
			return out
		}

	case key.Matches(msg, m.keys.cancel):
		m.pending = nil
		m.mode = modeBrowse
	}

	return nil
}

func (m *NoteListModel) loadNotes() tea.Cmd {
	b, folder := m.bridge, m.folder
	return func() tea.Msg {
		return notesLoadedMsg{notes: b.GetNotes(folder)}
	}
}

func (m *NoteListModel) tickAutosave() tea.Cmd {
	if m.interval <= 0 {
		return nil
	}
	return tea.Tick(m.interval, func(time.Time) tea.Msg {
		return autosaveTickMsg{}
	})
}

// saveIfChanged writes the editor buffer when it differs from what was last
// loaded or saved.
func (m *NoteListModel) saveIfChanged() tea.Cmd {
	if !m.editor.hasChanges() {
		return nil
	}

	id, content := m.editor.id, m.editor.value()
	b, folder := m.bridge, m.folder
	return func() tea.Msg {
		return savedMsg{id: id, content: content, result: b.SaveNote(folder, id, content)}
	}
}

func (m *NoteListModel) createNote() tea.Cmd {
	b, folder := m.bridge, m.folder
	return func() tea.Msg {
		return createdMsg{result: b.CreateNote(folder)}
	}
}

func (m *NoteListModel) handleSaved(msg savedMsg) tea.Cmd {
	if !msg.result.Success {
		m.setError("Failed to save " + note.TitleFromID(msg.id) + ": " + msg.result.Error)
		return nil
	}

	m.editor.markSaved(msg.id, msg.content)
	m.setStatus("Saved " + note.TitleFromID(msg.id))
	return m.loadNotes()
}

func (m *NoteListModel) handleCreated(msg createdMsg) tea.Cmd {
	if !msg.result.Success {
		m.setError("Failed to create note: " + msg.result.Error)
		return nil
	}

	m.Focus(msg.result.ID)
	m.setStatus("Created " + note.TitleFromID(msg.result.ID))
	return m.loadNotes()
}

func (m *NoteListModel) handleRenamed(msg renamedMsg) tea.Cmd {
	if !msg.result.Success {
		m.setError(msg.result.Error)
		return nil
	}

	if m.selected[msg.oldID] {
		delete(m.selected, msg.oldID)
		m.selected[msg.result.NewID] = true
	}
	m.editor.retarget(msg.oldID, msg.result.NewID)
	m.focusID = msg.result.NewID
	m.setStatus("Renamed to " + note.TitleFromID(msg.result.NewID))
	return m.loadNotes()
}

func (m *NoteListModel) handleDeleted(msg deletedMsg) tea.Cmd {
	if len(msg.failures) > 0 {
		m.setError("Failed to delete " + strings.Join(msg.failures, "; "))
	} else if msg.deleted == 1 {
		m.setStatus("Deleted 1 note")
	} else {
		m.setStatus(fmt.Sprintf("Deleted %d notes", msg.deleted))
	}
	return m.loadNotes()
}

// applyNotes replaces the listing wholesale. Selections of notes that are no
// longer present are dropped.
func (m *NoteListModel) applyNotes(notes []note.Note) tea.Cmd {
	m.notes = notes

	present := make(map[string]bool, len(notes))
	for _, n := range notes {
		present[n.ID] = true
	}
	for id := range m.selected {
		if !present[id] {
			delete(m.selected, id)
		}
	}
	if m.editor.active() && !present[m.editor.id] {
		m.editor.close()
		m.mode = modeBrowse
		m.setError(bridge.MsgNotFound)
	}

	cmd := m.refreshItems()

	if m.focusID != "" {
		m.selectID(m.focusID)
		m.focusID = ""
	}

	if m.openOnLoad {
		m.openOnLoad = false
		if n, ok := m.selectedNote(); ok {
			return tea.Batch(cmd, m.openEditor(n))
		}
	}

	return cmd
}

func (m *NoteListModel) refreshItems() tea.Cmd {
	current := ""
	if n, ok := m.selectedNote(); ok {
		current = n.ID
	}

	sorted := sortNotes(m.notes, m.sortField, m.sortOrder)
	items := make([]list.Item, 0, len(sorted))
	for _, n := range sorted {
		items = append(items, newListItem(n, m.selected[n.ID]))
	}

	cmd := m.list.SetItems(items)
	m.list.Title = m.listTitle()
	if current != "" {
		m.selectID(current)
	}
	return cmd
}

func (m *NoteListModel) applySort() tea.Cmd {
	if m.saveSort != nil {
		if err := m.saveSort(m.sortField.String(), m.sortOrder.String()); err != nil {
			m.logger.Warn().Err(err).Msg("failed to persist sort preference")
		}
	}
	m.setStatus("Sorted by " + m.sortField.String() + " " + m.sortOrder.String())
	return m.refreshItems()
}

func (m *NoteListModel) openEditor(n note.Note) tea.Cmd {
	m.mode = modeEdit
	m.resize(m.width, m.height)
	cmd := m.editor.open(n)
	if m.editor.readOnly {
		m.setError(n.Title() + " contains tabs, CRLF or control characters; opened read only")
	}
	return cmd
}

func (m *NoteListModel) quit() tea.Cmd {
	if m.editor.hasChanges() {
		id, content := m.editor.id, m.editor.value()
		if res := m.bridge.SaveNote(m.folder, id, content); !res.Success {
			m.logger.Error().Str("id", id).Str("reason", res.Error).Msg("failed to save on quit")
		}
	}
	return tea.Quit
}

func (m *NoteListModel) selectedNote() (note.Note, bool) {
	item, ok := m.list.SelectedItem().(ListItem)
	if !ok {
		return note.Note{}, false
	}
	return item.note, true
}

func (m *NoteListModel) selectID(id string) {
	for i, item := range m.list.VisibleItems() {
		if li, ok := item.(ListItem); ok && li.note.ID == id {
			m.list.Select(i)
			return
		}
	}
}

// deleteTargets is the multi-selection when there is one, otherwise the
// highlighted note.
func (m *NoteListModel) deleteTargets() []string {
	if len(m.selected) > 0 {
		ids := make([]string, 0, len(m.selected))
		for id := range m.selected {
			ids = append(ids, id)
		}
		sort.Strings(ids)
		return ids
	}

	if n, ok := m.selectedNote(); ok {
		return []string{n.ID}
	}
	return nil
}

func (m *NoteListModel) listTitle() string {
	title := fmt.Sprintf("Notes · %s %s", m.sortField, m.sortOrder)
	if len(m.selected) > 0 {
		title += fmt.Sprintf(" · %d selected", len(m.selected))
	}
	return title
}

func (m *NoteListModel) setStatus(s string) {
	m.status = s
	m.failed = false
}

func (m *NoteListModel) setError(s string) {
	m.status = s
	m.failed = true
}

func (m *NoteListModel) resize(width, height int) {
	m.width, m.height = width, height
	h, v := appStyle.GetFrameSize()
	innerW, innerH := width-h, height-v-1

	listW := innerW / 3
	m.list.SetSize(listW, innerH)
	m.editor.setSize(innerW-listW-2, innerH-2)
}

func (m *NoteListModel) previewWidth() int {
	h, _ := appStyle.GetFrameSize()
	return m.width - h - (m.width-h)/3 - 2
}

// renderPreview renders the highlighted note as markdown. Output is cached
// per note revision and width.
func (m *NoteListModel) renderPreview() string {
	n, ok := m.selectedNote()
	if !ok {
		return "No notes in this folder. Press n to create one."
	}

	width := m.previewWidth()
	cacheKey := fmt.Sprintf("%s@%d#%d", n.ID, n.Modified.UnixNano(), width)
	if cached, found := m.previews.Get(cacheKey); found {
		return cached.(string)
	}

	out := parser.RenderMarkdown(n.Content, width)
	m.previews.Set(cacheKey, out, cache.DefaultExpiration)
	return out
}

func (m *NoteListModel) statusLine() string {
	if m.status == "" {
		return ""
	}
	if m.failed {
		return errorStyle(m.status)
	}
	return statusStyle(m.status)
}

func (m *NoteListModel) View() string {
	var right string
	switch m.mode {
	case modeEdit:
		right = editorHeaderStyle.Render(m.editor.viewHeader()) + "\n" + m.editor.area.View()
	case modeRename:
		right = m.input.View() + "\n\n" + renderHelpWithinWidth(m.previewWidth(), "↵ submit · esc cancel")
	case modeConfirmDelete:
		titles := make([]string, len(m.pending))
		for i, id := range m.pending {
			titles[i] = note.TitleFromID(id)
		}
		right = confirmStyle.Render(fmt.Sprintf(
			"Delete %d note(s)?\n\n%s\n\ny confirm · n cancel",
			len(m.pending),
			strings.Join(titles, "\n"),
		))
	default:
		right = m.renderPreview()
	}

	body := lipgloss.JoinHorizontal(
		lipgloss.Top,
		listStyle.Render(m.list.View()),
		previewStyle.Render(right),
	)

	return appStyle.Render(lipgloss.JoinVertical(lipgloss.Left, body, m.statusLine()))
}

func substringFilter(term string, targets []string) []list.Rank {
	term = strings.TrimSpace(term)
	lowerTerm := strings.ToLower(term)
	ranks := []list.Rank{}
	for i, target := range targets {
		if term != "" && !strings.Contains(strings.ToLower(target), lowerTerm) {
			continue
		}
		ranks = append(ranks, list.Rank{Index: i, MatchedIndexes: titleMatch(target, term)})
	}
	return ranks
}

// titleMatch returns the rune positions of term inside the title line so the
// delegate can highlight them. Runes are folded one at a time so positions
// line up with the original title.
func titleMatch(target, term string) []int {
	if term == "" {
		return nil
	}
	title, _, _ := strings.Cut(target, "\n")
	start := foldIndex([]rune(title), []rune(term))
	if start < 0 {
		return nil
	}
	matched := make([]int, len([]rune(term)))
	for i := range matched {
		matched[i] = start + i
	}
	return matched
}

func foldIndex(s, sub []rune) int {
	for i := 0; i+len(sub) <= len(s); i++ {
		j := 0
		for j < len(sub) && unicode.ToLower(s[i+j]) == unicode.ToLower(sub[j]) {
			j++
		}
		if j == len(sub) {
			return i
		}
	}
	return -1
}

// Run starts the full screen browser over folder. When focus is set that
// note is opened in the editor right away.
func Run(s *state.State, folder, focus string) error {
	m := NewNoteListModel(s, folder)
	m.Focus(focus)

	if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("error running program: %w", err)
	}
	return nil
}
