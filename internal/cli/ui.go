package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
)

// statusOut receives status lines and the spinner. Stdout carries only the
// generated document.
var statusOut io.Writer = os.Stderr

var (
	// StyleTitle for headings and table headers.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("36"))

	// StyleDim for borders and secondary text.
	StyleDim = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))

	// StyleValue for paths and other values.
	StyleValue = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))

	styleSuccess = lipgloss.NewStyle().Foreground(lipgloss.Color("35"))
	styleInfo    = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	styleSpinner = lipgloss.NewStyle().Foreground(lipgloss.Color("36"))
)

const (
	iconSuccess = "✓"
	iconInfo    = "›"
	iconArrow   = "→"
)

func statusLine(icon string, style lipgloss.Style, format string, args ...any) {
	fmt.Fprintln(statusOut, style.Render(icon)+" "+fmt.Sprintf(format, args...))
}

func printSuccess(format string, args ...any) { statusLine(iconSuccess, styleSuccess, format, args...) }

func printInfo(format string, args ...any) { statusLine(iconInfo, styleInfo, format, args...) }

// printDetail prints an indented, dimmed line under the previous status.
func printDetail(format string, args ...any) {
	fmt.Fprintln(statusOut, "  "+StyleDim.Render(fmt.Sprintf(format, args...)))
}

// printFile reports a written file.
func printFile(path string) {
	fmt.Fprintln(statusOut, "  "+StyleDim.Render(iconArrow)+" "+StyleValue.Render(path))
}
