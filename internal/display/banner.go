package display

import (
	"fmt"
	"os"

	"github.com/backmassage/playlistfix/internal/term"
)

// PrintBanner prints the ASCII art banner; uses Magenta if colors are enabled.
func PrintBanner() {
	if term.Enabled() {
		fmt.Fprint(os.Stdout, term.Magenta)
	}
	fmt.Fprint(os.Stdout, ` ____  _             _ _     _   _____ _
|  _ \| | __ _ _   _| (_)___| |_|  ___(_)_  __
| |_) | |/ _` + "`" + ` | | | | | / __| __| |_  | \ \/ /
|  __/| | (_| | |_| | | \__ \ |_|  _| | |>  <
|_|   |_|\__,_|\__, |_|_|___/\__|_|   |_/_/\_\
               |___/
`)
	if term.Enabled() {
		fmt.Fprintln(os.Stdout, term.NC)
	}
}
