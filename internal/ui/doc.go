// Package ui provides the craftbook terminal browser.
//
// # Architecture Overview
//
// The UI is a Bubble Tea program. Model owns the View Controller once the
// sheet has loaded; every key press is a message handled on the program's
// single event loop, so the favourites set, the filter controls and the
// share link are only ever touched from one goroutine.
//
// # Package Structure
//
//   - app.go: Model, Options, message handling and the Run entry point
//   - keys.go: key bindings, also fed to bubbles/help
//   - header.go: title bar, filter bar and footer
//   - table.go: column layout and page rendering
//   - picker.go: filterable dropdowns for the four filter controls
//   - confirm.go: yes/no modal used before clearing favourites
//   - toast.go: transient notification with a stale-timer guard
//   - theme.go, style_helpers.go: palettes and background-safe rendering
//
// # Lifecycle
//
//  1. Init starts the spinner and fetches the sheet through a sheet.Loader.
//  2. Until the fetch completes only q and ctrl+c are handled.
//  3. A fetch error ends the program; Run returns it.
//  4. On success the favourites are loaded from local storage, the table is
//     built and any filters in the starting link are applied.
//
// # Key Bindings
//
//   - j/k, g/G: move, first/last row
//   - left/right: previous/next page
//   - space: star or unstar the selected row
//   - F: favourites only; C: clear favourites (asks first)
//   - /: global search (enter keeps, esc clears)
//   - p/t/i/c: profession, gear slot, item and crafter pickers
//   - o/O: order by the next column, reverse the order
//   - y/w/e: copy the share link, the row's spell link or its icon link
//   - T: cycle theme (remembered); ?: help; q: quit
package ui
