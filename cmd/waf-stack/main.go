package main

import (
	"fmt"
	"os"

	"github.com/Mykematt/tmb12-waf-test/internal/adapter/driven/aws"
	"github.com/Mykematt/tmb12-waf-test/internal/adapter/driven/cloudformation"
	"github.com/Mykematt/tmb12-waf-test/internal/adapter/driven/config"
	"github.com/Mykematt/tmb12-waf-test/internal/adapter/driven/export"
	"github.com/Mykematt/tmb12-waf-test/internal/adapter/driving/cli"
	"github.com/Mykematt/tmb12-waf-test/internal/application/usecase"
	"github.com/Mykematt/tmb12-waf-test/pkg/console"
	"github.com/Mykematt/tmb12-waf-test/pkg/version"
)

func main() {
	// Inicializa o aplicativo CLI
	app := cli.NewCLIApp(version.Version)

	// Inicializa os repositórios
	awsRepo := aws.NewAWSRepository()
	exportRepo := export.NewExportRepository()
	configRepo := config.NewConfigRepository()
	templateRepo := cloudformation.NewSynthesizer()
	consoleImpl := console.NewConsole()

	// Inicializa o caso de uso
	stackUseCase := usecase.NewWafStackUseCase(
		awsRepo,
		exportRepo,
		configRepo,
		templateRepo,
		consoleImpl,
	)

	// Define o caso de uso no aplicativo CLI
	app.SetStackUseCase(stackUseCase)

	// Executa o aplicativo
	if err := app.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
