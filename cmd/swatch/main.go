// Swatch - dominant colour palettes from images
//
// Swatch extracts the dominant colours of an image and reports each as
// hex, RGB and CMYK with the share of the image it covers.
package main

import (
	"fmt"
	"os"

	"github.com/jmylchreest/swatch/internal/cli"
)

func main() {
	if err := cli.NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(cli.ExitCode(err))
	}
}
