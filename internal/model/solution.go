package model

import (
	"regexp"
	"strings"
)

// Placeholders for fields a page did not provide.
const (
	UnknownSlug     = "unknown-kata"
	UnknownLanguage = "unknown"
	UnknownRank     = "unknown-rank"
)

var whitespace = regexp.MustCompile(`\s+`)

// Solution is the structured data extracted from a kata page.
type Solution struct {
	Title    string `json:"title"`
	Slug     string `json:"slug"`
	Language string `json:"language"`
	Rank     string `json:"rank"`
	Code     string `json:"code"`
}

// HasCode reports whether the solution carries non-blank code.
func (s *Solution) HasCode() bool {
	return s != nil && strings.TrimSpace(s.Code) != ""
}

// Normalized returns a copy with the rank in "6-kyu" form and
// placeholders for a missing slug, language or rank.
func (s Solution) Normalized() *Solution {
	s.Slug = orDefault(strings.TrimSpace(s.Slug), UnknownSlug)
	s.Language = orDefault(strings.ToLower(strings.TrimSpace(s.Language)), UnknownLanguage)
	s.Rank = orDefault(NormalizeRank(s.Rank), UnknownRank)
	s.Title = strings.TrimSpace(s.Title)

	return &s
}

// NormalizeRank turns "6 kyu" into "6-kyu".
func NormalizeRank(rank string) string {
	return strings.ToLower(whitespace.ReplaceAllString(strings.TrimSpace(rank), "-"))
}

func orDefault(v, fallback string) string {
	if v == "" {
		return fallback
	}

	return v
}

// Account is the public Codewars profile returned by account verification.
type Account struct {
	Username string `json:"username"`
	Rank     string `json:"rank"`
	Honor    int    `json:"honor"`
}
