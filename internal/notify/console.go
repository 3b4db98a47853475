package notify

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#B1361E"))
	okStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	errStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	linkStyle  = lipgloss.NewStyle().Faint(true)
)

// ConsoleSender prints notifications to a terminal stream.
type ConsoleSender struct {
	out io.Writer
}

// NewConsoleSender creates a sender writing to out.
func NewConsoleSender(out io.Writer) *ConsoleSender {
	return &ConsoleSender{out: out}
}

func (c *ConsoleSender) Name() string {
	return "console"
}

func (c *ConsoleSender) Send(_ context.Context, event *Event) error {
	body := okStyle.Render(event.Message)
	if !event.Success {
		body = errStyle.Render(event.Message + ": " + event.Error)
	}

	line := fmt.Sprintf("%s %s", titleStyle.Render("["+event.Title+"]"), body)
	if event.URL != "" {
		line += " " + linkStyle.Render(event.URL)
	}

	_, err := fmt.Fprintln(c.out, line)

	return err
}
