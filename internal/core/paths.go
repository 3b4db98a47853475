package core

import (
	"regexp"
	"strings"
)

// DefaultExtension is used for languages missing from the extension table
const DefaultExtension = "txt"

var extensionMap = map[string]string{
	"javascript": "js",
	"python":     "py",
	"java":       "java",
	"c":          "c",
	"cpp":        "cpp",
	"csharp":     "cs",
	"ruby":       "rb",
	"rust":       "rs",
	"go":         "go",
	"haskell":    "hs",
	"swift":      "swift",
	"scala":      "scala",
	"kotlin":     "kt",
	"typescript": "ts",
	"shell":      "sh",
	"sql":        "sql",
	"php":        "php",
	"r":          "r",
	"lua":        "lua",
	"clojure":    "clj",
	"elixir":     "ex",
	"julia":      "jl",
	"dart":       "dart",
}

var nonAlphanumeric = regexp.MustCompile(`[^a-z0-9]+`)

// ExtensionFor maps a Codewars language id to a file extension.
func ExtensionFor(language string) string {
	if ext, ok := extensionMap[strings.ToLower(strings.TrimSpace(language))]; ok {
		return ext
	}

	return DefaultExtension
}

// Sanitize turns s into a path segment made of lowercase alphanumerics and
// single hyphens, never starting or ending with a hyphen. Inputs with no
// usable characters become "unknown".
func Sanitize(s string) string {
	out := nonAlphanumeric.ReplaceAllString(strings.ToLower(s), "-")
	out = strings.Trim(out, "-")

	if out == "" {
		return "unknown"
	}

	return out
}

// SolutionPath returns root/<language>/<rank>/<title>.<ext>.
func SolutionPath(root, language, rank, title string) string {
	if rank == "" {
		rank = "unknown-rank"
	}

	if title == "" {
		title = "unknown-kata"
	}

	segments := []string{
		strings.Trim(root, "/"),
		Sanitize(language),
		Sanitize(rank),
		Sanitize(title) + "." + ExtensionFor(language),
	}

	return strings.Join(segments, "/")
}
