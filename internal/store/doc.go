// Package store provides the persistent local store for katasync.
//
// The [Store] interface is a small key/value surface (Get, Set, Remove) that
// the orchestrator receives by injection instead of reaching for ambient
// state. Two backends implement it:
//
//   - [SQLite], a pure Go SQLite database in WAL mode (default). Several
//     processes may hold it open, so `watch` and `serve` can run next to
//     one-shot commands.
//   - [Bolt], an embedded bbolt database. Its file lock is exclusive: a
//     second handle waits one second and fails.
//
// Use [Open] to pick a backend by driver name:
//
//	st, err := store.Open(store.DriverSQLite, dir)
//	cfg, err := store.LoadConfig(st)
//
// The typed helpers in this package ([LoadConfig], [SaveConfig],
// [ResetConfig], [LoadHistory], [AppendHistory], [ServerSecret]) build on the raw key/value
// operations. History appends are read-modify-write sequences without a
// lock spanning both steps.
package store
