package view

import (
	"fmt"
	"strings"

	"github.com/palemoky/yewchat/internal/ui/common"
)

// EmojiGlyphs is the picker palette, in display order.
var EmojiGlyphs = []string{
	"😀", "😂", "😍", "🥳", "😎", "🤔", "👍", "❤️",
	"🎉", "🔥", "👏", "✅", "🙏", "🤣", "😊", "🥰",
}

// emojiKeys 选择器快捷键，与 EmojiGlyphs 一一对应
const emojiKeys = "1234567890abcdef"

// EmojiForKey returns the glyph bound to key while the picker is open.
func EmojiForKey(key rune) (string, bool) {
	i := strings.IndexRune(emojiKeys, key)
	if i < 0 || i >= len(EmojiGlyphs) {
		return "", false
	}
	return EmojiGlyphs[i], true
}

// RenderEmojiPicker renders the picker, or "" when it is closed.
func RenderEmojiPicker(open bool) string {
	if !open {
		return ""
	}

	var sb strings.Builder
	sb.WriteString("😀 表情 (按键选择, Esc 关闭)\n")
	for i, glyph := range EmojiGlyphs {
		fmt.Fprintf(&sb, "%s %s", common.SelectedStyle.Render(string(emojiKeys[i])), glyph)
		if i%8 == 7 {
			sb.WriteString("\n")
		} else {
			sb.WriteString("  ")
		}
	}
	return common.BoxStyle.Render(strings.TrimRight(sb.String(), "\n"))
}
