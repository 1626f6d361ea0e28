package chat

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/olivermillard/mention/internal/core"
	"github.com/olivermillard/mention/internal/types"
)

var now = time.Now

func (m *Model) refreshViewport(scrollToBottom bool) {
	snapshot, _ := m.controller.Directory()
	m.viewport.SetContent(renderComments(m.comments, snapshot, m.mainWidth()))
	if scrollToBottom {
		m.viewport.GotoBottom()
	}
}

func renderComments(comments []comment, directory []types.DirectoryEntry, width int) string {
	if len(comments) == 0 {
		return lipgloss.NewStyle().Foreground(metaColor).Render("no comments yet")
	}
	headerStyle := lipgloss.NewStyle().Foreground(metaColor)
	bodyStyle := lipgloss.NewStyle().Foreground(textColor)
	if width > 0 {
		bodyStyle = bodyStyle.Width(width)
	}

	blocks := make([]string, 0, len(comments))
	for _, c := range comments {
		header := headerStyle.Render(c.Author + " · " + c.At.Format("15:04"))
		body := bodyStyle.Render(highlightMentions(c.Body, directory))
		blocks = append(blocks, header+"\n"+body)
	}
	return strings.Join(blocks, "\n\n")
}

// highlightMentions styles every completed mention of a directory entry.
func highlightMentions(body string, directory []types.DirectoryEntry) string {
	mentions := core.FindMentions(body, directory)
	if len(mentions) == 0 {
		return body
	}
	style := lipgloss.NewStyle().Foreground(mentionColor).Bold(true)

	var out strings.Builder
	last := 0
	for _, mention := range mentions {
		out.WriteString(body[last:mention.Start])
		out.WriteString(style.Render(body[mention.Start:mention.End]))
		last = mention.End
	}
	out.WriteString(body[last:])
	return out.String()
}
