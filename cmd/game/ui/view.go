package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("13")).Bold(true)
	narrateStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	userStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true)
	speechStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	optionStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
	loadingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.width == 0 {
		return "starting..."
	}

	inputHeight := 3
	chatHeight := m.height - inputHeight

	inputStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("8")).
		Padding(0, 1).
		Width(m.width - 4)

	chatPanel := lipgloss.NewStyle().
		Width(m.width).
		Height(chatHeight).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("8")).
		Padding(1)

	contentWidth := m.width - 4
	maxLines := chatHeight - 2
	if maxLines < 1 {
		maxLines = 1
	}

	visible := m.messages
	if m.loading {
		visible = append(append([]line{}, visible...), line{kindBlank, ""})
	}
	if len(visible) > maxLines {
		visible = visible[len(visible)-maxLines:]
	}

	var chat strings.Builder
	for i := 0; i < maxLines-len(visible); i++ {
		chat.WriteString("\n")
	}
	for _, l := range visible {
		if l.kind == kindBlank {
			chat.WriteString("\n")
			continue
		}
		chat.WriteString(styleFor(l.kind).Render(wrapAndIndent(l.text, contentWidth, " ")) + "\n")
	}
	if m.loading {
		chat.WriteString(loadingStyle.Render(" " + m.spin.View()))
	}

	return chatPanel.Render(chat.String()) + "\n" + inputStyle.Render(m.input.View())
}

func styleFor(kind lineKind) lipgloss.Style {
	switch kind {
	case kindTitle:
		return titleStyle
	case kindInfo:
		return infoStyle
	case kindError:
		return errorStyle
	case kindUser:
		return userStyle
	case kindSpeech:
		return speechStyle
	case kindOption:
		return optionStyle
	default:
		return narrateStyle
	}
}

// wrapAndIndent word-wraps the text to the width, indenting each line.
func wrapAndIndent(text string, width int, indent string) string {
	if len(text) <= width {
		return indent + text
	}

	words := strings.Fields(text)
	if len(words) == 0 {
		return indent + text
	}

	var result strings.Builder
	currentLine := indent + words[0]
	for _, word := range words[1:] {
		if len(currentLine)+1+len(word) <= width {
			currentLine += " " + word
		} else {
			result.WriteString(currentLine + "\n")
			currentLine = indent + word
		}
	}
	result.WriteString(currentLine)
	return result.String()
}
