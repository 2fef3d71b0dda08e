package dispatcher

import "github.com/Danondso/gamepadoverlay/internal/clipboard"

// pasteText is the chat-box macro path shared by every platform sink: it
// delegates to internal/clipboard's PasteText.
func pasteText(text string, delayMs int) error {
	return clipboard.PasteText(text, delayMs)
}
