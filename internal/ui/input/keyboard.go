// Package input maps key presses to chat actions.
package input

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/palemoky/yewchat/internal/ui/view"
)

// Action is what a key press asks the chat view to do.
type Action int

const (
	ActionEdit        Action = iota // 交给输入框
	ActionEnter                     // 回车，Modifier 表示是否按住 Alt
	ActionToggleEmoji               // Ctrl+E
	ActionCloseEmoji                // Esc（选择器打开时）
	ActionPickEmoji                 // 选择器打开时的 1-9/0/a-f
	ActionSwallow                   // 选择器打开时的其他按键
	ActionQuit                      // Ctrl+C，或选择器关闭时的 Esc
)

// Intent 按键解析结果
type Intent struct {
	Action   Action
	Modifier bool
	Glyph    string
}

// Classify 解析按键。选择器打开时它是模态的，吞掉未映射的字符
func Classify(msg tea.KeyMsg, pickerOpen bool) Intent {
	switch msg.Type {
	case tea.KeyCtrlC:
		return Intent{Action: ActionQuit}
	case tea.KeyCtrlE:
		return Intent{Action: ActionToggleEmoji}
	case tea.KeyEnter:
		return Intent{Action: ActionEnter, Modifier: msg.Alt}
	case tea.KeyEsc:
		if pickerOpen {
			return Intent{Action: ActionCloseEmoji}
		}
		return Intent{Action: ActionQuit}
	}

	if !pickerOpen {
		return Intent{Action: ActionEdit}
	}
	if msg.Type == tea.KeyRunes && len(msg.Runes) == 1 && !msg.Alt {
		if glyph, ok := view.EmojiForKey(msg.Runes[0]); ok {
			return Intent{Action: ActionPickEmoji, Glyph: glyph}
		}
	}
	return Intent{Action: ActionSwallow}
}
