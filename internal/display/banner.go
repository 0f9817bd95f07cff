// Package display holds the startup banner and human-readable formatting
// helpers shared by the logger and the scheduler.
package display

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
)

var bannerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("13"))

// PrintBanner prints the ASCII art banner. Styling follows the lipgloss color
// profile configured by the logger, so --no-color renders it plain.
func PrintBanner() {
	const art = ` ____        _       _     ____  _           _
| __ )  __ _| |_ ___| |__ | __ )| | __ _ ___| |_
|  _ \ / _` + "`" + ` | __/ __| '_ \|  _ \| |/ _` + "`" + ` / __| __|
| |_) | (_| | || (__| | | | |_) | | (_| \__ \ |_
|____/ \__,_|\__\___|_| |_|____/|_|\__,_|___/\__|
`
	fmt.Fprintln(os.Stdout, bannerStyle.Render(art))
}
