package cli

import (
	"fmt"

	"github.com/fatih/color"

	"github.com/Mykematt/tmb12-waf-test/pkg/version"
)

// displayWelcomeBanner exibe o banner de boas-vindas com informações de versão.
func displayWelcomeBanner(versionStr string) {
	banner := `
         /$$$$$$$$ /$$      /$$ /$$$$$$$   /$$    /$$$$$$         /$$      /$$  /$$$$$$  /$$$$$$$$
        |__  $$__/| $$$    /$$$| $$__  $$ /$$$$  /$$__  $$       | $$  /$ | $$ /$$__  $$| $$_____/
           | $$   | $$$$  /$$$$| $$  \ $$|_  $$ |__/  \ $$       | $$ /$$$| $$| $$  \ $$| $$
           | $$   | $$ $$/$$ $$| $$$$$$$   | $$   /$$$$$$/       | $$/$$ $$ $$| $$$$$$$$| $$$$$
           | $$   | $$  $$$| $$| $$__  $$  | $$  /$$____/        | $$$$_  $$$$| $$__  $$| $$__/
           | $$   | $$\  $ | $$| $$  \ $$  | $$ | $$             | $$$/ \  $$$| $$  | $$| $$
           | $$   | $$ \/  | $$| $$$$$$$/ /$$$$$$| $$$$$$$$      | $$/   \  $$| $$  | $$| $$
           |__/   |__/     |__/|_______/ |______/|________/      |__/     \__/|__/  |__/|__/
        `
	red := color.New(color.FgRed, color.Bold).SprintFunc()
	blue := color.New(color.FgBlue, color.Bold).SprintFunc()

	fmt.Println(red(banner))

	// Obtem a string formatada da versão através do pacote version
	formattedVersion := version.FormatVersion()
	fmt.Println(blue(fmt.Sprintf("tmb12 WAF stack CLI (v%s)", formattedVersion)))
}
