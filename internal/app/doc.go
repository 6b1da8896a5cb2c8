// Package app provides the orchestration layer for craftbook.
//
// # Overview
//
// This package wires configuration, logging, local storage, the icon tables
// and the sheet client together and hands them to the UI. It is the
// composition root; the cobra commands in internal/cli reuse its Open for
// the non-interactive subcommands.
//
// # Initialization
//
//  1. Load ~/.config/craftbook/config.toml (defaults when missing)
//  2. Apply the --sheet override
//  3. Build the zap logger writing to <data_dir>/craftbook.log
//  4. Open the SQLite local storage at <data_dir>/storage.db
//  5. Load the embedded icon tables, merged with icons_file when set
//  6. Create the sheet client (HTTP or local file)
//
// # Data Flow
//
//	┌──────────────┐
//	│   Run()      │
//	└──────┬───────┘
//	       │
//	       ├─────> Open()              config, logger, storage, icons, sheet
//	       ├─────> urlstate.Resolve()  starting deep link
//	       └─────> ui.Run()            TUI (blocks until quit)
//	                 └─> sheet fetch, favourites load, filters from link
//
// # Error Handling
//
// Fatal errors (returned from Run):
//   - Configuration file unreadable or invalid
//   - Local storage cannot be opened
//   - Icon override file invalid
//   - Sheet fetch or parse failure
//
// Recoverable errors are handled below this package: malformed favourites
// fall back to an empty set and persist failures are logged.
//
// # Usage Example
//
//	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
//	defer cancel()
//
//	if err := app.Run(ctx, app.Options{Link: "profession=Alchemy"}); err != nil {
//		log.Fatalf("craftbook failed: %v", err)
//	}
package app
