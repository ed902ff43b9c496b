package display

import (
	"fmt"
	"os"

	"github.com/backmassage/scansep/internal/term"
)

const banner = `  ___  ___ __ _ _ __  ___  ___ _ __
 / __|/ __/ _` + "`" + ` | '_ \/ __|/ _ \ '_ \
 \__ \ (_| (_| | | | \__ \  __/ |_) |
 |___/\___\__,_|_| |_|___/\___| .__/
                              |_|`

// PrintBanner prints the ASCII art banner; uses Magenta if colors are enabled.
func PrintBanner() {
	fmt.Fprintln(os.Stdout, term.Paint(term.Magenta, banner))
}
