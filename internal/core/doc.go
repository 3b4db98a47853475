// Package core holds the sync workflow for Kata-Sync.
//
// Nothing here prints; functions return errors and the cmd and cli packages
// decide how to show them.
//
// # Sync
//
// [Syncer.Sync] validates the stored configuration before touching the
// network, extracts a [model.Solution] from the active page, writes it to
// codewars/<language>/<rank>/<title>.<ext> through [Contents], appends a
// row to the repository README and records the sync in local history.
// An identical remote file aborts the sync with [ErrDuplicateContent].
//
// # GitHub
//
// [GitHubContents] implements [Contents] on the REST contents API.
// Tokens come from [ResolveGitHubToken], the device flow in [DeviceFlow]
// or the browser redirect flow in [RunWebFlow].
package core
