package notes

import "github.com/charmbracelet/bubbles/key"

type listKeyMap struct {
	openNote        key.Binding
	create          key.Binding
	rename          key.Binding
	delete          key.Binding
	toggleSelect    key.Binding
	copy            key.Binding
	cycleSortField  key.Binding
	toggleSortOrder key.Binding
	reload          key.Binding
	quit            key.Binding

	save        key.Binding
	closeEditor key.Binding
	submit      key.Binding
	cancel      key.Binding
	confirm     key.Binding
	forceQuit   key.Binding
}

func newListKeyMap() *listKeyMap {
	return &listKeyMap{
		openNote: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("↵", "open"),
		),
		create: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "new"),
		),
		rename: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "rename"),
		),
		delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
		toggleSelect: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "select"),
		),
		copy: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "yank"),
		),
		cycleSortField: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "sort field"),
		),
		toggleSortOrder: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "sort order"),
		),
		reload: key.NewBinding(
			key.WithKeys("ctrl+r"),
			key.WithHelp("ctrl+r", "reload"),
		),
		quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		save: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "save"),
		),
		closeEditor: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "close"),
		),
		submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("↵", "submit"),
		),
		cancel: key.NewBinding(
			key.WithKeys("esc", "n"),
			key.WithHelp("esc", "cancel"),
		),
		confirm: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "confirm"),
		),
		forceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
		),
	}
}

func (k listKeyMap) shortHelp() []key.Binding {
	return []key.Binding{
		k.openNote,
		k.create,
		k.rename,
		k.delete,
	}
}

func (k listKeyMap) fullHelp() []key.Binding {
	return []key.Binding{
		k.openNote,
		k.create,
		k.rename,
		k.delete,
		k.toggleSelect,
		k.copy,
		k.cycleSortField,
		k.toggleSortOrder,
		k.reload,
	}
}
