// Package cli holds the terminal presentation for Kata-Sync: lipgloss
// renderers for history, stats and configuration, and a Bubbletea
// repository picker.
package cli
