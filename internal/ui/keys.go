package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the keyboard bindings for the browser view.
type keyMap struct {
	// Global
	Quit       key.Binding
	Help       key.Binding
	CycleTheme key.Binding

	// Navigation
	Up       key.Binding
	Down     key.Binding
	Top      key.Binding
	Bottom   key.Binding
	PrevPage key.Binding
	NextPage key.Binding

	// Favourites
	ToggleStar     key.Binding
	FavouritesOnly key.Binding
	ClearFavs      key.Binding

	// Filters
	Search         key.Binding
	PickProfession key.Binding
	PickGear       key.Binding
	PickItem       key.Binding
	PickCrafter    key.Binding
	Order          key.Binding
	Reverse        key.Binding

	// Clipboard
	CopyLink  key.Binding
	CopySpell key.Binding
	CopyIcon  key.Binding

	// Modals and input
	Confirm key.Binding
	Cancel  key.Binding
	Yes     key.Binding
	No      key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "Quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "Toggle help"),
		),
		CycleTheme: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "Cycle theme"),
		),

		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/up", "Move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/down", "Move down"),
		),
		Top: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g", "First row"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G", "Last row"),
		),
		PrevPage: key.NewBinding(
			key.WithKeys("left", "pgup"),
			key.WithHelp("←", "Previous page"),
		),
		NextPage: key.NewBinding(
			key.WithKeys("right", "pgdown"),
			key.WithHelp("→", "Next page"),
		),

		ToggleStar: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "Star row"),
		),
		FavouritesOnly: key.NewBinding(
			key.WithKeys("F"),
			key.WithHelp("F", "Favourites only"),
		),
		ClearFavs: key.NewBinding(
			key.WithKeys("C"),
			key.WithHelp("C", "Clear favourites"),
		),

		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "Search"),
		),
		PickProfession: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "Profession"),
		),
		PickGear: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "Gear slot"),
		),
		PickItem: key.NewBinding(
			key.WithKeys("i"),
			key.WithHelp("i", "Item"),
		),
		PickCrafter: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "Crafter"),
		),
		Order: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "Order by next column"),
		),
		Reverse: key.NewBinding(
			key.WithKeys("O"),
			key.WithHelp("O", "Reverse order"),
		),

		CopyLink: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "Copy share link"),
		),
		CopySpell: key.NewBinding(
			key.WithKeys("w"),
			key.WithHelp("w", "Copy spell link"),
		),
		CopyIcon: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "Copy icon link"),
		),

		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "Confirm"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "Cancel"),
		),
		Yes: key.NewBinding(
			key.WithKeys("y", "Y", "enter"),
			key.WithHelp("y", "Yes"),
		),
		No: key.NewBinding(
			key.WithKeys("n", "N", "esc"),
			key.WithHelp("n", "No"),
		),
	}
}

// ShortHelp returns key bindings for the footer.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Search, k.ToggleStar, k.FavouritesOnly, k.CopyLink, k.Help, k.Quit}
}

// FullHelp returns key bindings for the help overlay.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Top, k.Bottom, k.PrevPage, k.NextPage},
		{k.Search, k.PickProfession, k.PickGear, k.PickItem, k.PickCrafter, k.Order, k.Reverse},
		{k.ToggleStar, k.FavouritesOnly, k.ClearFavs, k.CopyLink, k.CopySpell, k.CopyIcon},
		{k.CycleTheme, k.Help, k.Quit},
	}
}
