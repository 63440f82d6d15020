// Package ui is the Bubble Tea front end of the chat client.
package ui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/palemoky/yewchat/internal/config"
)

// Run 创建聊天界面并阻塞直到用户退出
func Run(cfg config.ClientConfig) error {
	model, err := NewChatModel(cfg)
	if err != nil {
		return err
	}

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("启动客户端时出错: %w", err)
	}
	return nil
}
