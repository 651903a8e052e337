package cmd

import (
	"strings"

	"github.com/fatih/color"
)

// getBanner returns the ASCII-art banner, with ANSI color escape codes
// unless noColor is set.
func getBanner(noColor bool) string {
	banner := strings.Join([]string{
		`    ____ _      __`,
		`   / __ \ | /| / /`,
		`  / /_/ /| |/ |/ /`,
		` / .___/ |__/|__/`,
		`/_/`,
	}, "\n")

	if noColor {
		return banner
	}

	c := color.New(color.FgCyan)
	// The banner goes through cobra's template output, not a terminal
	// check, so the color library has to be forced on.
	c.EnableColor()
	return c.Sprint(banner)
}
