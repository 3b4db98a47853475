package extract

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/inovacc/katasync/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixtureTab(t *testing.T, name, pageURL string) *model.Tab {
	t.Helper()

	data, err := os.ReadFile(filepath.Join("testdata", name))
	require.NoError(t, err)

	return &model.Tab{URL: pageURL, HTML: string(data)}
}

func TestExtract(t *testing.T) {
	tests := []struct {
		name    string
		fixture string
		url     string
		want    model.Solution
	}{
		{
			name:    "train view with CodeMirror",
			fixture: "train_codemirror.html",
			url:     "https://www.codewars.com/kata/sum-array/train/python",
			want: model.Solution{
				Title:    "Sum Array",
				Slug:     "sum-array",
				Language: "python",
				Rank:     "6-kyu",
				Code:     "def sum_array(a):\n    return sum(a)",
			},
		},
		{
			name:    "solutions view with Monaco",
			fixture: "solutions_monaco.html",
			url:     "https://www.codewars.com/kata/multiply/solutions/go",
			want: model.Solution{
				Title:    "Multiply",
				Slug:     "multiply",
				Language: "go",
				Rank:     "8-kyu",
				Code:     "package kata\n\nfunc Multiply(a, b float64) float64 { return a * b }",
			},
		},
		{
			name:    "textarea fallback and language selector",
			fixture: "textarea.html",
			url:     "https://www.codewars.com/kata/vowel-count",
			want: model.Solution{
				Title:    "Vowel Count",
				Slug:     "vowel-count",
				Language: "javascript",
				Rank:     "unknown-rank",
				Code:     "function getCount(str) {\n  return (str.match(/[aeiou]/g) || []).length;\n}",
			},
		},
	}

	ex := New(nil)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sol, err := ex.Extract(context.Background(), fixtureTab(t, tt.fixture, tt.url))
			require.NoError(t, err)
			assert.Equal(t, tt.want, *sol)
		})
	}
}

func TestExtract_Defaults(t *testing.T) {
	sol, err := New(nil).Extract(context.Background(), &model.Tab{
		URL:  "https://www.codewars.com/dashboard",
		HTML: "<html><body><p>nothing here</p></body></html>",
	})
	require.NoError(t, err)

	assert.Equal(t, "unknown-kata", sol.Slug)
	assert.Equal(t, "unknown", sol.Language)
	assert.Equal(t, "unknown-rank", sol.Rank)
	assert.False(t, sol.HasCode())
}

func TestExtract_EmptyPage(t *testing.T) {
	_, err := New(nil).Extract(context.Background(), &model.Tab{URL: "https://www.codewars.com/kata/x"})
	require.ErrorIs(t, err, ErrEmptyPage)

	_, err = New(nil).Extract(context.Background(), nil)
	require.ErrorIs(t, err, ErrEmptyPage)
}
