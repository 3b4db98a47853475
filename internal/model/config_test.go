package model

import (
	"encoding/json"
	"reflect"
	"strings"
	"testing"
)

func TestConfigMissing(t *testing.T) {
	tests := []struct {
		name     string
		cfg      Config
		expected []string
	}{
		{
			name:     "empty",
			cfg:      Config{},
			expected: []string{"codewars username", "github token", "repository"},
		},
		{
			name:     "token only",
			cfg:      Config{AccessToken: "t"},
			expected: []string{"codewars username", "repository"},
		},
		{
			name:     "complete",
			cfg:      Config{AccountUsername: "warrior", AccessToken: "t", Repository: "octo/katas"},
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.cfg.Missing()
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("Missing() = %v, want %v", got, tt.expected)
			}

			if tt.cfg.Complete() != (len(tt.expected) == 0) {
				t.Errorf("Complete() = %v with missing %v", tt.cfg.Complete(), got)
			}
		})
	}
}

func TestConfigJSONOmitsToken(t *testing.T) {
	data, err := json.Marshal(Config{AccountUsername: "warrior", AccessToken: "gho_secret"})
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	if strings.Contains(string(data), "gho_secret") {
		t.Errorf("token leaked into JSON: %s", data)
	}
}

func TestSplitRepository(t *testing.T) {
	tests := []struct {
		input   string
		owner   string
		name    string
		wantErr bool
	}{
		{input: "octo/katas", owner: "octo", name: "katas"},
		{input: "/octo/katas/", owner: "octo", name: "katas"},
		{input: "katas", wantErr: true},
		{input: "octo/", wantErr: true},
		{input: "a/b/c", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			owner, name, err := SplitRepository(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("SplitRepository(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}

			if owner != tt.owner || name != tt.name {
				t.Errorf("SplitRepository(%q) = %q, %q, want %q, %q", tt.input, owner, name, tt.owner, tt.name)
			}
		})
	}
}

func TestSolutionHasCode(t *testing.T) {
	var nilSolution *Solution
	if nilSolution.HasCode() {
		t.Error("nil solution reported code")
	}

	if (&Solution{Code: " \n\t"}).HasCode() {
		t.Error("blank code reported as present")
	}

	if !(&Solution{Code: "x"}).HasCode() {
		t.Error("code not detected")
	}
}

func TestSolutionNormalized(t *testing.T) {
	tests := []struct {
		name     string
		input    Solution
		expected Solution
	}{
		{
			name:     "spaced rank",
			input:    Solution{Title: " Sum Array ", Slug: "sum-array", Language: "Python", Rank: " 1   KYU ", Code: "x"},
			expected: Solution{Title: "Sum Array", Slug: "sum-array", Language: "python", Rank: "1-kyu", Code: "x"},
		},
		{
			name:     "missing fields",
			input:    Solution{Title: "pwn", Code: "x"},
			expected: Solution{Title: "pwn", Slug: UnknownSlug, Language: UnknownLanguage, Rank: UnknownRank, Code: "x"},
		},
		{
			name:     "already normalized",
			input:    Solution{Title: "t", Slug: "s", Language: "go", Rank: "6-kyu", Code: "x"},
			expected: Solution{Title: "t", Slug: "s", Language: "go", Rank: "6-kyu", Code: "x"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			original := tt.input

			got := tt.input.Normalized()
			if *got != tt.expected {
				t.Errorf("Normalized() = %+v, want %+v", *got, tt.expected)
			}

			if tt.input != original {
				t.Errorf("Normalized() modified its receiver: %+v", tt.input)
			}
		})
	}
}
