package core

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/inovacc/katasync/internal/model"
)

// readmeTableMarker identifies an existing solutions table
const readmeTableMarker = "| :--- |"

const readmeTableHeader = `
| ⚡ Problem | 🥋 Difficulty | 🛠️ Language | 📜 Solution | 📅 Date |
| :--- | :--- | :--- | :--- | :--- |`

const readmeSectionHeading = "## 🚀 Solved Problems"

const readmeIntro = `# 🛡️ Kata-Sync

![Codewars](https://img.shields.io/badge/Codewars-B1361E?style=for-the-badge&logo=codewars&logoColor=white)
![Auto-Sync](https://img.shields.io/badge/Sync-Automated-brightgreen?style=for-the-badge)

Welcome! This repository is automatically updated with my solutions to various algorithmic problems on [Codewars](https://www.codewars.com).

`

// ReadmeRow renders the table row for one synced solution.
func ReadmeRow(sol *model.Solution, filePath string, date time.Time) string {
	title := cleanTitle(sol.Title)

	lang := sol.Language
	if lang == "" {
		lang = DefaultExtension
	}

	rank := sol.Rank
	if rank == "" {
		rank = "Unknown"
	}

	return fmt.Sprintf("| [%s](https://www.codewars.com/kata/%s) | %s | %s | [Solution](%s) | %s |",
		title, sol.Slug, rank, lang, filePath, date.Format("2006-01-02"))
}

// AppendReadmeRow adds row to an existing README document. An empty
// document gets the full header block; a document without a solutions
// table gets the section and table header first. Rows are never deduplicated.
func AppendReadmeRow(existing, row string) string {
	switch {
	case existing == "":
		return readmeIntro + readmeSectionHeading + readmeTableHeader + "\n" + row + "\n"
	case strings.Contains(existing, readmeTableMarker):
		return existing + "\n" + row
	default:
		return existing + "\n\n" + readmeSectionHeading + readmeTableHeader + "\n" + row + "\n"
	}
}

// UpdateReadme appends a row for sol to the README at readmePath.
func UpdateReadme(ctx context.Context, contents Contents, repo, readmePath string, sol *model.Solution, filePath string, now time.Time) error {
	var existing, sha string

	current, err := contents.Get(ctx, repo, readmePath)

	switch {
	case err == nil:
		existing = current.Content
		sha = current.SHA
	case IsNotFound(err):
	default:
		return err
	}

	updated := AppendReadmeRow(existing, ReadmeRow(sol, filePath, now))

	_, err = contents.Put(ctx, repo, readmePath, PutOptions{
		Message: fmt.Sprintf("Docs: Add %s to README", cleanTitle(sol.Title)),
		Content: updated,
		SHA:     sha,
	})

	return err
}

func cleanTitle(title string) string {
	if title == "" {
		title = "Unknown"
	}

	return strings.ReplaceAll(title, "|", "-")
}
