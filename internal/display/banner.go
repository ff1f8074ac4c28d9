package display

import (
	"fmt"
	"os"

	"github.com/backmassage/splitmaster/internal/logging"
)

// PrintBanner prints the ASCII art banner; uses Cyan if colors are enabled.
func PrintBanner() {
	if logging.Cyan != "" {
		fmt.Fprint(os.Stdout, logging.Cyan)
	}
	fmt.Fprint(os.Stdout, ` ____        _ _ _                       _
/ ___| _ __ | (_) |_ _ __ ___   __ _ ___| |_ ___ _ __
\___ \| '_ \| | | __| '_ `+"`"+` _ \ / _`+"`"+` / __| __/ _ \ '__|
 ___) | |_) | | | |_| | | | | | (_| \__ \ ||  __/ |
|____/| .__/|_|_|\__|_| |_| |_|\__,_|___/\__\___|_|
      |_|
`)
	if logging.Cyan != "" {
		fmt.Fprintln(os.Stdout, logging.NC)
	}
}
