// Package config handles loading and parsing craftbook configuration files.
//
// # Configuration Discovery
//
// The Load function follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/craftbook/config.toml (default)
//  3. If the config file doesn't exist, fall back to hardcoded defaults
//  4. If the file exists but fields are missing/empty, use defaults
//
// # Default Values
//
//   - Config file: ~/.config/craftbook/config.toml
//   - Sheet: the published crafting spreadsheet (CSV export)
//   - Data directory: ~/.local/share/craftbook
//   - Local storage: <data_dir>/storage.db
//   - Log file: <data_dir>/craftbook.log
//   - Share links: craftbook://browse
//   - Page length: 25 rows
//
// # TOML Format
//
//	sheet_url = "https://example.com/sheet.csv"
//	data_dir = "~/.local/share/craftbook"
//	share_url = "craftbook://browse"
//	page_length = 25
//	fetch_timeout_seconds = 15
//	icons_file = "~/.config/craftbook/icons.toml"
//
// Every field is optional. Tilde expansion is performed for data_dir and
// icons_file.
//
// # Error Handling
//
// Load returns errors for path expansion failures, read errors other than
// os.ErrNotExist, and TOML parse errors. A missing file is not an error.
package config
