package client

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// wire shapes mirrored from the HTTP API.
type entryJSON struct {
	ID      string      `json:"id"`
	Channel string      `json:"channel"`
	TsMs    int64       `json:"tsMs"`
	Source  *sourceJSON `json:"source,omitempty"`
	Args    []any       `json:"args"`
	Text    string      `json:"text"`
}

type sourceJSON struct {
	Name     string `json:"name"`
	Function string `json:"function,omitempty"`
	File     string `json:"file,omitempty"`
	Line     int    `json:"line,omitempty"`
}

var (
	timeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	sourceStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("86"))

	groupStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("214")).
			Margin(1, 0, 0, 0)

	channelStyles = map[string]lipgloss.Style{
		"log":   lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		"info":  lipgloss.NewStyle().Foreground(lipgloss.Color("39")),
		"warn":  lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		"error": lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
	}
)

func renderEntry(e entryJSON) string {
	ts := time.UnixMilli(e.TsMs).Format("15:04:05.000")
	ch := e.Channel
	if st, ok := channelStyles[e.Channel]; ok {
		ch = st.Render(fmt.Sprintf("%-5s", e.Channel))
	}
	src := "-"
	if e.Source != nil && e.Source.Name != "" {
		src = sourceStyle.Render(e.Source.Name)
	}
	return fmt.Sprintf("%s %s %s %s", timeStyle.Render(ts), ch, src, e.Text)
}
