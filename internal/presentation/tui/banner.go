package tui

import (
	"fmt"

	"github.com/muesli/termenv"
)

// PrintBanner outputs the HealthBot ASCII banner with the running version.
func PrintBanner(version string) {
	p := termenv.ColorProfile()
	// Teal-to-green gradient, echoing the health theme.
	s1 := termenv.String(`  _   _            _ _   _     ____        _   `).Foreground(p.Color("#2dd4bf"))
	s2 := termenv.String(` | | | | ___  __ _| | |_| |__ | __ )  ___ | |_ `).Foreground(p.Color("#34d399"))
	s3 := termenv.String(` | |_| |/ _ \/ _' | | __| '_ \|  _ \ / _ \| __|`).Foreground(p.Color("#4ade80"))
	s4 := termenv.String(` |  _  |  __/ (_| | | |_| | | | |_) | (_) | |_ `).Foreground(p.Color("#a3e635"))
	s5 := termenv.String(` |_| |_|\___|\__,_|_|\__|_| |_|____/ \___/ \__|`).Foreground(p.Color("#facc15"))

	fmt.Println()
	fmt.Println(s1)
	fmt.Println(s2)
	fmt.Println(s3)
	fmt.Println(s4)
	fmt.Println(s5)
	fmt.Println()
	fmt.Printf("  health education assistant v%s\n\n", version)
}
