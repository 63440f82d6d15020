// Package view provides UI rendering functions.
package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/palemoky/yewchat/internal/client"
	"github.com/palemoky/yewchat/internal/session"
	"github.com/palemoky/yewchat/internal/ui/common"
)

const (
	rosterWidth   = 28
	maxNameLength = 16
	minTranscript = 5
)

// Layout 渲染参数
type Layout struct {
	Width  int
	Height int
	Input  string // 已渲染的输入框
	Status string // 连接/重连状态提示
}

// RenderRoster renders the user list. The local user is marked.
func RenderRoster(users []client.UserProfile, self string) string {
	var sb strings.Builder
	sb.WriteString(common.TitleStyle(fmt.Sprintf("👥 在线 (%d)", len(users))))
	sb.WriteString("\n")

	if len(users) == 0 {
		sb.WriteString(common.MutedStyle.Render("暂无用户"))
	}
	for _, u := range users {
		name := common.TruncateName(u.Name, maxNameLength)
		line := common.SuccessStyle.Render(common.OnlineIcon) + " " + name
		if u.Name == self {
			line = common.SuccessStyle.Render(common.OnlineIcon) + " " +
				common.SelfStyle.Render(name) + " " + common.MutedStyle.Render(common.SelfMarker)
		}
		sb.WriteString(line + "\n")
	}
	return common.BoxStyle.Width(rosterWidth).Render(strings.TrimRight(sb.String(), "\n"))
}

// RenderEntry renders a single transcript line.
func RenderEntry(e session.TranscriptEntry, self string) string {
	sender := common.SenderStyle.Render(e.Sender)
	if e.Sender == self {
		sender = common.SelfStyle.Render(e.Sender)
	}

	var sb strings.Builder
	if e.Timestamp != "" {
		sb.WriteString(common.MutedStyle.Render("[" + e.Timestamp + "]"))
		sb.WriteString(" ")
	}
	sb.WriteString(sender)
	sb.WriteString(": ")
	if e.IsImage {
		sb.WriteString(common.ImageIcon + " " + common.ImageStyle.Render(e.Body))
	} else {
		sb.WriteString(e.Body)
	}
	return sb.String()
}

// RenderTranscript renders the last maxLines entries.
func RenderTranscript(entries []session.TranscriptEntry, self string, maxLines int) string {
	if len(entries) == 0 {
		return common.MutedStyle.Render("还没有消息，说点什么吧")
	}

	lines := make([]string, 0, maxLines)
	for _, e := range common.Tail(entries, maxLines) {
		lines = append(lines, RenderEntry(e, self))
	}
	return strings.Join(lines, "\n")
}

// RenderTypingIndicator renders the indicator line, keeping its height when empty.
func RenderTypingIndicator(text string) string {
	if text == "" {
		return " "
	}
	return common.TypingStyle.Render(text)
}

// RenderStatus renders the connection line.
func RenderStatus(state session.State, status string) string {
	if status != "" {
		return status
	}
	if state == session.StateConnecting {
		return common.MutedStyle.Render("⏳ 连接中...")
	}
	return ""
}

// ChatView renders the whole screen from a snapshot.
func ChatView(snap session.Snapshot, layout Layout) string {
	transcriptLines := layout.Height - 10
	if transcriptLines < minTranscript {
		transcriptLines = minTranscript
	}
	chatWidth := layout.Width - rosterWidth - 8
	if chatWidth < 20 {
		chatWidth = 20
	}

	header := common.TitleStyle("💬 YewChat") + "  " + common.MutedStyle.Render(snap.Username)
	if status := RenderStatus(snap.State, layout.Status); status != "" {
		header += "  " + status
	}

	transcript := common.BoxStyle.Width(chatWidth).Height(transcriptLines).
		Render(RenderTranscript(snap.Transcript, snap.Username, transcriptLines))
	body := lipgloss.JoinHorizontal(lipgloss.Top, RenderRoster(snap.Roster, snap.Username), transcript)

	parts := []string{header, body, RenderTypingIndicator(snap.TypingText)}
	if picker := RenderEmojiPicker(snap.EmojiPickerOpen); picker != "" {
		parts = append(parts, picker)
	}
	parts = append(parts,
		layout.Input,
		common.MutedStyle.Render("Enter 发送 · Ctrl+E 表情 · Ctrl+C 退出"),
	)
	return common.DocStyle.Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}
