package core

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

var segmentPattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

func TestSanitize(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Sum Array", "sum-array"},
		{"6 kyu", "6-kyu"},
		{"  Hello,   World!! ", "hello-world"},
		{"C++", "c"},
		{"---", "unknown"},
		{"", "unknown"},
		{"Ünïcödé Kata", "n-c-d-kata"},
		{"already-clean", "already-clean"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, Sanitize(tt.input))
		})
	}
}

func TestSanitize_IdempotentAndTotal(t *testing.T) {
	inputs := []string{
		"Sum Array", "Multiply", "!!!", "", "a--b", "-leading", "trailing-",
		"Tab\tand\nNewline", "数字", "1 kyu", "Vowel Count (easy)", "x|y|z",
	}

	for _, input := range inputs {
		once := Sanitize(input)
		assert.Regexp(t, segmentPattern, once, "input %q", input)
		assert.Equal(t, once, Sanitize(once), "input %q", input)
	}
}

func TestExtensionFor(t *testing.T) {
	assert.Equal(t, "py", ExtensionFor("python"))
	assert.Equal(t, "js", ExtensionFor("JavaScript"))
	assert.Equal(t, "cs", ExtensionFor("csharp"))
	assert.Equal(t, "hs", ExtensionFor(" haskell "))
	assert.Equal(t, DefaultExtension, ExtensionFor("cobol"))
	assert.Equal(t, DefaultExtension, ExtensionFor(""))
}

func TestSolutionPath(t *testing.T) {
	tests := []struct {
		name                   string
		root, lang, rank, kata string
		want                   string
	}{
		{"scenario", "codewars", "python", "6 kyu", "Sum Array", "codewars/python/6-kyu/sum-array.py"},
		{"unknown language", "codewars", "cobol", "8 kyu", "Hello", "codewars/cobol/8-kyu/hello.txt"},
		{"missing rank", "codewars", "go", "", "Hello", "codewars/go/unknown-rank/hello.go"},
		{"missing title", "codewars", "rust", "5 kyu", "", "codewars/rust/5-kyu/unknown-kata.rs"},
		{"slashes in root", "/solutions/", "ruby", "4 kyu", "Snail", "solutions/ruby/4-kyu/snail.rb"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SolutionPath(tt.root, tt.lang, tt.rank, tt.kata))
		})
	}
}
