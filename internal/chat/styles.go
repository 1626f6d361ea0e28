package chat

import (
	"hash/fnv"

	"github.com/charmbracelet/lipgloss"
)

var (
	textColor    = lipgloss.Color("252")
	blurText     = lipgloss.Color("245")
	metaColor    = lipgloss.Color("244")
	statusColor  = lipgloss.Color("241")
	selectColor  = lipgloss.Color("231")
	selectBg     = lipgloss.Color("24")
	caretColor   = lipgloss.Color("39")
	inputBg      = lipgloss.Color("235")
	mentionColor = lipgloss.Color("111")
)

var avatarPalette = []lipgloss.Color{
	lipgloss.Color("111"),
	lipgloss.Color("157"),
	lipgloss.Color("216"),
	lipgloss.Color("36"),
	lipgloss.Color("183"),
	lipgloss.Color("230"),
}

func colorForHandle(handle string) lipgloss.Color {
	h := fnv.New32a()
	_, _ = h.Write([]byte(handle))
	return avatarPalette[int(h.Sum32()%uint32(len(avatarPalette)))]
}
