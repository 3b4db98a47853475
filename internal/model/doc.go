// Package model defines the data structures used throughout katasync.
//
// # Solution
//
// The [Solution] struct is what the extractor reads from a kata page. It is
// produced fresh for every extraction and never stored as-is:
//
//	type Solution struct {
//	    Title    string // Kata name as shown on the page
//	    Slug     string // URL slug or id of the kata
//	    Language string // Codewars language id (python, javascript, ...)
//	    Rank     string // Normalized rank, e.g. "6-kyu"
//	    Code     string // Solution source
//	}
//
// # SyncRecord
//
// A [SyncRecord] is appended to the local history after every successful
// sync. The history is ordered newest first and bounded (see [HistoryLimit]).
//
// # Config
//
// [Config] holds the user-owned configuration: the Codewars account, the
// GitHub token and login, and the target repository. It lives in the local
// store and changes only through explicit save or reset operations.
package model
