package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/Mykematt/tmb12-waf-test/internal/application/usecase"
	"github.com/Mykematt/tmb12-waf-test/internal/shared/types"
	"github.com/Mykematt/tmb12-waf-test/pkg/version"
)

// CLIApp represents the command-line interface application.
type CLIApp struct {
	rootCmd      *cobra.Command
	stackUseCase *usecase.WafStackUseCase
	version      string
}

// NewCLIApp cria uma nova aplicação CLI.
func NewCLIApp(versionStr string) *CLIApp {
	app := &CLIApp{
		version: versionStr,
	}

	formattedVersion := version.FormatVersion()

	rootCmd := &cobra.Command{
		Use:     "waf-stack",
		Short:   "Manage the tmb12 WAF stack (Web ACL, logging, archive bucket, AppSync wiring)",
		Version: formattedVersion,
	}

	rootCmd.SetVersionTemplate(`{{printf "tmb12-waf-test version: %s\n" .Version}}`)

	// Flags compartilhadas entre os subcomandos
	rootCmd.PersistentFlags().StringP("config-file", "C", "", "Path to a TOML, YAML, or JSON configuration file")
	rootCmd.PersistentFlags().StringP("profile", "p", "", "AWS profile to use (default: environment credentials)")
	rootCmd.PersistentFlags().StringP("region", "r", "", "AWS region to deploy into")
	rootCmd.PersistentFlags().String("graphql-api-arn", "", "ARN of the AppSync GraphQL API to protect")
	rootCmd.PersistentFlags().StringSlice("geo-block", nil, "ISO country codes blocked by the geo rule (comma-separated)")
	rootCmd.PersistentFlags().Int64("rate-limit", 0, "Requests per 5 minutes per IP before blocking (default 2000)")
	rootCmd.PersistentFlags().Int("retention-days", 0, "Log group retention in days (default 30)")
	rootCmd.PersistentFlags().Int("transition-days", 0, "Days before archived logs move to STANDARD_IA (default and minimum 30)")
	rootCmd.PersistentFlags().Int("expiration-days", 0, "Days before archived logs expire (default 365)")
	rootCmd.PersistentFlags().StringP("report-name", "n", "", "Specify the base name for the report file (without extension)")
	rootCmd.PersistentFlags().StringSliceP("report-type", "y", []string{"markdown"}, "Specify report types: markdown, csv, json, pdf")
	rootCmd.PersistentFlags().StringP("dir", "d", "", "Directory to save the report files (default: current directory)")

	rootCmd.AddCommand(app.newDeployCmd())
	rootCmd.AddCommand(app.newDestroyCmd())
	rootCmd.AddCommand(app.newStatusCmd())
	rootCmd.AddCommand(app.newCheckCmd())
	rootCmd.AddCommand(app.newSynthCmd())

	app.rootCmd = rootCmd
	return app
}

// Execute runs the CLI application.
func (app *CLIApp) Execute() error {
	return app.rootCmd.Execute()
}

// SetStackUseCase sets the stack use case for the CLI app.
func (app *CLIApp) SetStackUseCase(useCase *usecase.WafStackUseCase) {
	app.stackUseCase = useCase
}

func (app *CLIApp) newDeployCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "deploy [environment]",
		Short: "Deploy or converge the WAF stack for an environment",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, posArgs []string) error {
			displayWelcomeBanner(app.version)
			args, err := app.parseArgs(cmd, posArgs)
			if err != nil {
				return err
			}
			return app.stackUseCase.RunDeploy(context.Background(), args)
		},
	}
}

func (app *CLIApp) newDestroyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "destroy [environment]",
		Short: "Tear down the WAF stack; resources already gone are skipped",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, posArgs []string) error {
			displayWelcomeBanner(app.version)
			args, err := app.parseArgs(cmd, posArgs)
			if err != nil {
				return err
			}
			return app.stackUseCase.RunDestroy(context.Background(), args)
		},
	}
}

func (app *CLIApp) newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status [environment]",
		Short: "Show the current state of every stack resource",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, posArgs []string) error {
			args, err := app.parseArgs(cmd, posArgs)
			if err != nil {
				return err
			}
			return app.stackUseCase.RunStatus(context.Background(), args)
		},
	}
}

func (app *CLIApp) newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check [environment]",
		Short: "Run the local preflight checks without touching AWS",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, posArgs []string) error {
			args, err := app.parseArgs(cmd, posArgs)
			if err != nil {
				return err
			}
			return app.stackUseCase.RunCheck(context.Background(), args)
		},
	}
}

func (app *CLIApp) newSynthCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "synth [environment]",
		Short: "Render the stack as a CloudFormation template",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, posArgs []string) error {
			args, err := app.parseArgs(cmd, posArgs)
			if err != nil {
				return err
			}
			args.Format, _ = cmd.Flags().GetString("format")
			args.Output, _ = cmd.Flags().GetString("output")
			return app.stackUseCase.RunSynth(context.Background(), args)
		},
	}
	cmd.Flags().StringP("format", "f", "json", "Template format: json or yaml")
	cmd.Flags().StringP("output", "o", "", "Write the template to a file instead of stdout")
	return cmd
}

// parseArgs parses command-line arguments into a CLIArgs struct.
func (app *CLIApp) parseArgs(cmd *cobra.Command, posArgs []string) (*types.CLIArgs, error) {
	configFile, _ := cmd.Flags().GetString("config-file")
	profile, _ := cmd.Flags().GetString("profile")
	region, _ := cmd.Flags().GetString("region")
	graphqlApiArn, _ := cmd.Flags().GetString("graphql-api-arn")
	geoBlock, _ := cmd.Flags().GetStringSlice("geo-block")
	rateLimit, _ := cmd.Flags().GetInt64("rate-limit")
	retentionDays, _ := cmd.Flags().GetInt("retention-days")
	transitionDays, _ := cmd.Flags().GetInt("transition-days")
	expirationDays, _ := cmd.Flags().GetInt("expiration-days")
	reportName, _ := cmd.Flags().GetString("report-name")
	reportType, _ := cmd.Flags().GetStringSlice("report-type")
	dir, _ := cmd.Flags().GetString("dir")

	// O ambiente vem como argumento posicional; o default é "test".
	environment := ""
	if len(posArgs) > 0 {
		environment = posArgs[0]
	}

	args := &types.CLIArgs{
		ConfigFile:     configFile,
		Environment:    environment,
		Profile:        profile,
		Region:         region,
		GraphqlApiArn:  graphqlApiArn,
		GeoBlock:       geoBlock,
		RateLimit:      rateLimit,
		RetentionDays:  retentionDays,
		TransitionDays: transitionDays,
		ExpirationDays: expirationDays,
		ReportName:     reportName,
		ReportType:     reportType,
		Dir:            dir,
	}

	return args, nil
}
