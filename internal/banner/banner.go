package banner

import (
	"github.com/common-nighthawk/go-figure"
	"github.com/fatih/color"
)

func Print() {
	myFigure := figure.NewColorFigure("RSCOPE", "doom", "cyan", true)
	myFigure.Print()

	cyan := color.New(color.FgCyan)
	green := color.New(color.FgGreen)

	_, _ = cyan.Println("════════════════════════════════════════════════")
	_, _ = green.Println("    URL Redirect Inspector | check and categorize URL redirects")
	_, _ = cyan.Println("════════════════════════════════════════════════")
}
