// SPDX-License-Identifier: MPL-2.0

// Package config handles application configuration using Viper with TOML as the file format.
//
// Configuration is loaded from ~/.config/serp/config.toml (or XDG equivalent on Linux,
// ~/Library/Application Support/serp/config.toml on macOS, %APPDATA%\serp\config.toml
// on Windows), with SERP_* environment variables taking precedence over file values.
// The file supplies external tool binary overrides, the default parity redundancy
// percentage, and UI defaults; every value has a working default, so a missing config
// file is not an error.
package config
