package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/dustin/go-humanize"
	"github.com/inovacc/katasync/internal/core"
	"github.com/inovacc/katasync/internal/model"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#B1361E"))
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	valueStyle   = lipgloss.NewStyle().Bold(true)
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	headerStyle  = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle    = lipgloss.NewStyle().Padding(0, 1)
	borderStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
)

// RenderHistory writes the sync history as a table, newest first.
func RenderHistory(w io.Writer, history []model.SyncRecord, now time.Time) {
	if len(history) == 0 {
		_, _ = fmt.Fprintln(w, labelStyle.Render("No katas synced yet."))
		return
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(borderStyle).
		Headers("KATA", "RANK", "LANGUAGE", "REPOSITORY", "SYNCED").
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}

			return cellStyle
		})

	for _, record := range history {
		t.Row(record.Title, record.Rank, record.Language, record.Repo, humanize.RelTime(record.Timestamp, now, "ago", "from now"))
	}

	_, _ = fmt.Fprintln(w, t.Render())
}

// RenderStats writes the solved count and the current streak.
func RenderStats(w io.Writer, stats model.Stats) {
	streak := strconv.Itoa(stats.Streak) + " day"
	if stats.Streak != 1 {
		streak += "s"
	}

	if stats.Streak > 0 {
		streak = "🔥 " + streak
	}

	lines := []string{
		titleStyle.Render("Kata-Sync stats"),
		labelStyle.Render("Problems solved: ") + valueStyle.Render(humanize.Comma(int64(stats.ProblemsSolved))),
		labelStyle.Render("Current streak:  ") + valueStyle.Render(streak),
	}

	_, _ = fmt.Fprintln(w, strings.Join(lines, "\n"))
}

// RenderConfig writes the stored configuration; the token is never shown.
func RenderConfig(w io.Writer, cfg *model.Config) {
	token := "not set"
	if cfg.AccessToken != "" {
		token = "set"
	}

	rows := [][2]string{
		{"Codewars username", orUnset(cfg.AccountUsername)},
		{"GitHub user", orUnset(cfg.RemoteAccountName)},
		{"GitHub token", token},
		{"Repository", orUnset(cfg.Repository)},
	}

	_, _ = fmt.Fprintln(w, titleStyle.Render("Kata-Sync configuration"))

	for _, row := range rows {
		_, _ = fmt.Fprintf(w, "%s %s\n", labelStyle.Render(fmt.Sprintf("%-18s", row[0]+":")), valueStyle.Render(row[1]))
	}

	if missing := cfg.Missing(); len(missing) > 0 {
		_, _ = fmt.Fprintln(w, warnStyle.Render("Missing: "+strings.Join(missing, ", ")))
	}
}

// RenderSyncResult writes the outcome of a successful sync.
func RenderSyncResult(w io.Writer, result *core.SyncResult) {
	_, _ = fmt.Fprintln(w, successStyle.Render("✔ Synced "+result.FilePath))

	if result.Write != nil && result.Write.HTMLURL != "" {
		_, _ = fmt.Fprintln(w, labelStyle.Render("  "+result.Write.HTMLURL))
	}

	if !result.ReadmeUpdated {
		_, _ = fmt.Fprintln(w, warnStyle.Render("  README could not be updated"))
	}

	if !result.HistorySaved {
		_, _ = fmt.Fprintln(w, warnStyle.Render("  local history could not be saved"))
	}
}

// RenderAccount writes a verified Codewars account.
func RenderAccount(w io.Writer, account *model.Account) {
	_, _ = fmt.Fprintf(w, "%s %s (%s, %s honor)\n",
		successStyle.Render("✔ Found:"),
		valueStyle.Render(account.Username),
		account.Rank,
		humanize.Comma(int64(account.Honor)),
	)
}

func orUnset(s string) string {
	if s == "" {
		return "not set"
	}

	return s
}
