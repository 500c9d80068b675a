package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"tracev/internal/app/ui/components"
	"tracev/internal/config"
)

var (
	helpTitleStyle   = lipgloss.NewStyle().Bold(true).Foreground(components.ColorPrimary)
	helpSectionStyle = lipgloss.NewStyle().Bold(true)
	helpMutedStyle   = lipgloss.NewStyle().Foreground(components.ColorMuted)
)

// printHelp prints formatted help information
func (c *cli) printHelp() {
	title := helpTitleStyle.Render
	section := helpSectionStyle.Render
	muted := helpMutedStyle.Render

	fmt.Printf("\n%s %s\n", title(config.AppName), "v"+config.Version)
	fmt.Printf("%s\n\n", muted("interactive viewer for structured tracing logs"))

	fmt.Printf("%s\n", section("USAGE"))
	fmt.Printf("  %s %s\n\n", config.AppName, muted("[file] [options]"))
	fmt.Printf("  %s\n\n", muted("With no file, entries are read from stdin."))

	fmt.Printf("%s\n", section("OPTIONS"))
	fmt.Printf("  %-18s %s\n", "--no-follow", muted("Read the file once instead of tailing it"))
	fmt.Printf("  %-18s %s\n", "--no-ui", muted("Stream filtered entries to stdout"))
	fmt.Printf("  %-18s %s\n", "--refresh <dur>", muted("UI refresh interval"))
	fmt.Printf("  %-18s %s\n", "--log-file <path>", muted("Write internal logs to a file"))
	fmt.Printf("  %-18s %s\n", "-c, --config", muted("Path to the config file"))
	fmt.Printf("  %-18s %s\n\n", "-v, --version", muted("Show version information"))

	fmt.Printf("%s\n", section("KEYS"))
	fmt.Printf("  %-18s %s\n", "tab", muted("Switch between modules and log"))
	fmt.Printf("  %-18s %s\n", "space", muted("Toggle the selected module on/off"))
	fmt.Printf("  %-18s %s\n", "1-5", muted("Toggle severity levels"))
	fmt.Printf("  %-18s %s\n", "v / c / y", muted("Mark line / clear marks / copy marked"))
	fmt.Printf("  %-18s %s\n", "a", muted("Toggle autoscroll"))
	fmt.Printf("  %-18s %s\n\n", "q", muted("Quit"))
}
