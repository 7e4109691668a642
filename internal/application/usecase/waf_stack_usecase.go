package usecase

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/Mykematt/tmb12-waf-test/internal/domain/entity"
	"github.com/Mykematt/tmb12-waf-test/internal/domain/repository"
	"github.com/Mykematt/tmb12-waf-test/internal/shared/types"
)

// WafStackUseCase orquestra o ciclo de vida do stack: preflight,
// deploy, destroy, status e síntese de template.
type WafStackUseCase struct {
	awsRepo      repository.AWSRepository
	exportRepo   repository.ExportRepository
	configRepo   repository.ConfigRepository
	templateRepo repository.TemplateRepository
	console      types.ConsoleInterface
}

// NewWafStackUseCase creates a new WAF stack use case.
func NewWafStackUseCase(
	awsRepo repository.AWSRepository,
	exportRepo repository.ExportRepository,
	configRepo repository.ConfigRepository,
	templateRepo repository.TemplateRepository,
	console types.ConsoleInterface,
) *WafStackUseCase {
	return &WafStackUseCase{
		awsRepo:      awsRepo,
		exportRepo:   exportRepo,
		configRepo:   configRepo,
		templateRepo: templateRepo,
		console:      console,
	}
}

// resolveArgs mescla o arquivo de configuração (quando informado) com os
// argumentos da CLI. Flags vencem o arquivo; o arquivo vence os defaults.
func (uc *WafStackUseCase) resolveArgs(args *types.CLIArgs) (*types.CLIArgs, error) {
	if args.ConfigFile == "" {
		return args, nil
	}

	cfg, err := uc.configRepo.LoadConfigFile(args.ConfigFile)
	if err != nil {
		return nil, err
	}

	merged := *args
	if merged.Environment == "" {
		merged.Environment = cfg.Environment
	}
	if merged.Profile == "" {
		merged.Profile = cfg.Profile
	}
	if merged.Region == "" {
		merged.Region = cfg.Region
	}
	if merged.GraphqlApiArn == "" {
		merged.GraphqlApiArn = cfg.GraphqlApiArn
	}
	if len(merged.GeoBlock) == 0 {
		merged.GeoBlock = cfg.GeoBlock
	}
	if merged.RateLimit == 0 {
		merged.RateLimit = cfg.RateLimit
	}
	if merged.RetentionDays == 0 {
		merged.RetentionDays = cfg.RetentionDays
	}
	if merged.TransitionDays == 0 {
		merged.TransitionDays = cfg.TransitionDays
	}
	if merged.ExpirationDays == 0 {
		merged.ExpirationDays = cfg.ExpirationDays
	}
	if merged.ReportName == "" {
		merged.ReportName = cfg.ReportName
	}
	if len(merged.ReportType) == 0 {
		merged.ReportType = cfg.ReportType
	}
	if merged.Dir == "" {
		merged.Dir = cfg.Dir
	}
	return &merged, nil
}

func (uc *WafStackUseCase) buildStack(args *types.CLIArgs, accountID string) *entity.WafStack {
	region := args.Region
	if region == "" {
		region = os.Getenv("AWS_REGION")
	}
	return entity.NewWafStack(entity.StackParams{
		Environment:       args.Environment,
		Region:            region,
		AccountID:         accountID,
		GraphqlApiArn:     args.GraphqlApiArn,
		GeoBlockCountries: args.GeoBlock,
		RateLimit:         args.RateLimit,
		RetentionDays:     args.RetentionDays,
		TransitionDays:    args.TransitionDays,
		ExpirationDays:    args.ExpirationDays,
	})
}

// identityFailed enriquece a falha de credenciais listando os perfis
// disponíveis em ~/.aws, para apontar o operador na direção certa.
func (uc *WafStackUseCase) identityFailed(err error) error {
	profiles := uc.awsRepo.GetAWSProfiles()
	if len(profiles) == 0 {
		return types.ErrNoProfilesFound
	}
	uc.console.LogInfo("Available AWS profiles: %s", strings.Join(profiles, ", "))
	return err
}

func newReport(stack *entity.WafStack, operation string) *entity.DeploymentReport {
	return &entity.DeploymentReport{
		StackName:   stack.StackName(),
		Operation:   operation,
		Environment: stack.Environment,
		Region:      stack.Region,
		AccountID:   stack.AccountID,
		StartedAt:   time.Now().UTC(),
	}
}

// RunDeploy provisiona (ou converge) todos os recursos do stack.
func (uc *WafStackUseCase) RunDeploy(ctx context.Context, args *types.CLIArgs) error {
	args, err := uc.resolveArgs(args)
	if err != nil {
		return err
	}

	status := uc.console.Status("Resolving caller identity...")
	identity, err := uc.awsRepo.GetCallerIdentity(ctx, args.Profile, args.Region)
	if err != nil {
		status.Stop()
		return uc.identityFailed(err)
	}

	stack := uc.buildStack(args, identity.AccountID)
	report := newReport(stack, "deploy")

	// Preflight: falha antes de qualquer chamada de provisionamento.
	findings := stack.Validate()
	report.Findings = findings
	for _, warning := range findings.Warnings() {
		uc.console.LogWarning("%s: %s", warning.Resource, warning.Message)
	}
	if findings.HasErrors() {
		status.Stop()
		for _, failure := range findings.Errors() {
			uc.console.LogError("%s: %s", failure.Resource, failure.Message)
		}
		report.Failed(types.ErrPreflightFailed)
		uc.finishReport(report, args)
		return types.ErrPreflightFailed
	}

	// A associação só é tentada contra uma API que existe.
	if stack.HasAssociation() {
		status.Update("Checking the AppSync API...")
		if _, err := uc.awsRepo.GetGraphqlApi(ctx, args.Profile, stack.Region, stack.GraphqlApiID()); err != nil {
			status.Stop()
			if errors.Is(err, types.ErrGraphqlApiNotFound) {
				uc.console.LogError("GraphQL API %s does not exist", stack.GraphqlApiArn)
			}
			report.Failed(err)
			uc.finishReport(report, args)
			return err
		}
	}

	step := func(kind, name string, fn func() (entity.ResourceAction, string, error)) error {
		status.Update(fmt.Sprintf("Deploying %s %s...", kind, name))
		started := time.Now()
		action, arn, err := fn()
		result := entity.ResourceResult{
			Kind:     kind,
			Name:     name,
			Arn:      arn,
			Action:   action,
			Duration: time.Since(started),
		}
		if err != nil {
			result.Action = entity.ActionFailed
			result.Detail = err.Error()
		}
		report.Add(result)
		return err
	}

	err = step("LogGroup", stack.LogGroup.Name, func() (entity.ResourceAction, string, error) {
		action, err := uc.awsRepo.EnsureLogGroup(ctx, args.Profile, stack.Region, stack.LogGroup)
		return action, stack.LogGroup.Arn(stack.Region, stack.AccountID), err
	})
	if err == nil {
		err = step("Bucket", stack.LogBucket.Name, func() (entity.ResourceAction, string, error) {
			action, err := uc.awsRepo.EnsureLogBucket(ctx, args.Profile, stack.Region, stack.LogBucket)
			return action, stack.LogBucket.Arn(), err
		})
	}

	var aclRef entity.WebACLRef
	if err == nil {
		err = step("WebACL", stack.WebACL.Name, func() (entity.ResourceAction, string, error) {
			ref, action, putErr := uc.awsRepo.PutWebACL(ctx, args.Profile, stack.Region, stack.WebACL)
			aclRef = ref
			return action, ref.Arn, putErr
		})
	}
	if err == nil {
		err = step("LoggingConfiguration", stack.WebACL.Name, func() (entity.ResourceAction, string, error) {
			destination := stack.LogGroup.DestinationArn(stack.Region, stack.AccountID)
			putErr := uc.awsRepo.PutLoggingConfiguration(ctx, args.Profile, stack.Region, aclRef.Arn, destination, stack.RedactAuthorization)
			return entity.ActionCreated, destination, putErr
		})
	}
	if err == nil && stack.HasAssociation() {
		err = step("WebACLAssociation", stack.GraphqlApiID(), func() (entity.ResourceAction, string, error) {
			assocErr := uc.awsRepo.AssociateWebACL(ctx, args.Profile, stack.Region, aclRef.Arn, stack.GraphqlApiArn)
			return entity.ActionCreated, stack.GraphqlApiArn, assocErr
		})
	}

	status.Stop()

	if err != nil {
		report.Failed(err)
		uc.finishReport(report, args)
		return err
	}

	report.Success = true
	uc.finishReport(report, args)
	uc.console.LogSuccess("Stack %s deployed", stack.StackName())
	return nil
}

// RunDestroy remove os recursos do stack na ordem inversa do deploy.
// Recursos já ausentes contam como skip; um destroy totalmente vazio
// ainda é sucesso.
func (uc *WafStackUseCase) RunDestroy(ctx context.Context, args *types.CLIArgs) error {
	args, err := uc.resolveArgs(args)
	if err != nil {
		return err
	}

	status := uc.console.Status("Resolving caller identity...")
	identity, err := uc.awsRepo.GetCallerIdentity(ctx, args.Profile, args.Region)
	if err != nil {
		status.Stop()
		return uc.identityFailed(err)
	}

	stack := uc.buildStack(args, identity.AccountID)
	report := newReport(stack, "destroy")

	step := func(kind, name string, fn func() (entity.ResourceAction, error)) {
		status.Update(fmt.Sprintf("Removing %s %s...", kind, name))
		started := time.Now()
		action, err := fn()
		result := entity.ResourceResult{
			Kind:     kind,
			Name:     name,
			Action:   action,
			Duration: time.Since(started),
		}
		if err != nil {
			result.Action = entity.ActionFailed
			result.Detail = err.Error()
			uc.console.LogWarning("%s %s: %s", kind, name, err)
		}
		report.Add(result)
	}

	aclRef, err := uc.awsRepo.FindWebACL(ctx, args.Profile, stack.Region, stack.WebACL.Name)
	if err != nil {
		status.Stop()
		report.Failed(err)
		uc.finishReport(report, args)
		return err
	}

	if stack.HasAssociation() {
		step("WebACLAssociation", stack.GraphqlApiID(), func() (entity.ResourceAction, error) {
			return uc.awsRepo.DisassociateWebACL(ctx, args.Profile, stack.Region, stack.GraphqlApiArn)
		})
	}

	if aclRef != nil {
		step("LoggingConfiguration", stack.WebACL.Name, func() (entity.ResourceAction, error) {
			return uc.awsRepo.DeleteLoggingConfiguration(ctx, args.Profile, stack.Region, aclRef.Arn)
		})
		step("WebACL", stack.WebACL.Name, func() (entity.ResourceAction, error) {
			return uc.awsRepo.DeleteWebACL(ctx, args.Profile, stack.Region, *aclRef)
		})
	} else {
		report.Add(entity.ResourceResult{Kind: "WebACL", Name: stack.WebACL.Name, Action: entity.ActionSkipped, Detail: "does not exist"})
	}

	step("LogGroup", stack.LogGroup.Name, func() (entity.ResourceAction, error) {
		return uc.awsRepo.DeleteLogGroup(ctx, args.Profile, stack.Region, stack.LogGroup.Name)
	})
	step("Bucket", stack.LogBucket.Name, func() (entity.ResourceAction, error) {
		return uc.awsRepo.DeleteLogBucket(ctx, args.Profile, stack.Region, stack.LogBucket.Name)
	})

	status.Stop()

	report.Success = true
	for _, res := range report.Resources {
		if res.Action == entity.ActionFailed {
			report.Success = false
		}
	}

	uc.finishReport(report, args)
	if !report.Success {
		return fmt.Errorf("destroy of stack %s finished with failures", stack.StackName())
	}
	if report.AllSkipped() {
		uc.console.LogInfo("Stack %s had nothing to remove", stack.StackName())
	} else {
		uc.console.LogSuccess("Stack %s destroyed", stack.StackName())
	}
	return nil
}

// RunStatus mostra a situação atual de cada recurso do stack.
func (uc *WafStackUseCase) RunStatus(ctx context.Context, args *types.CLIArgs) error {
	args, err := uc.resolveArgs(args)
	if err != nil {
		return err
	}

	status := uc.console.Status("Resolving caller identity...")
	identity, err := uc.awsRepo.GetCallerIdentity(ctx, args.Profile, args.Region)
	if err != nil {
		status.Stop()
		return uc.identityFailed(err)
	}

	stack := uc.buildStack(args, identity.AccountID)
	report := newReport(stack, "status")

	status.Update("Inspecting stack resources...")

	aclRef, err := uc.awsRepo.FindWebACL(ctx, args.Profile, stack.Region, stack.WebACL.Name)
	if err != nil {
		status.Stop()
		return err
	}
	if aclRef != nil {
		report.Add(entity.ResourceResult{Kind: "WebACL", Name: aclRef.Name, Arn: aclRef.Arn, Action: "present"})
	} else {
		report.Add(entity.ResourceResult{Kind: "WebACL", Name: stack.WebACL.Name, Action: entity.ActionNotFound})
	}

	groupExists, err := uc.awsRepo.LogGroupExists(ctx, args.Profile, stack.Region, stack.LogGroup.Name)
	if err != nil {
		status.Stop()
		return err
	}
	if groupExists {
		report.Add(entity.ResourceResult{Kind: "LogGroup", Name: stack.LogGroup.Name, Arn: stack.LogGroup.Arn(stack.Region, stack.AccountID), Action: "present"})
	} else {
		report.Add(entity.ResourceResult{Kind: "LogGroup", Name: stack.LogGroup.Name, Action: entity.ActionNotFound})
	}

	bucketExists, err := uc.awsRepo.BucketExists(ctx, args.Profile, stack.Region, stack.LogBucket.Name)
	if err != nil {
		status.Stop()
		return err
	}
	if bucketExists {
		report.Add(entity.ResourceResult{Kind: "Bucket", Name: stack.LogBucket.Name, Arn: stack.LogBucket.Arn(), Action: "present"})
	} else {
		report.Add(entity.ResourceResult{Kind: "Bucket", Name: stack.LogBucket.Name, Action: entity.ActionNotFound})
	}

	if stack.HasAssociation() {
		associated, err := uc.awsRepo.GetWebACLForResource(ctx, args.Profile, stack.Region, stack.GraphqlApiArn)
		if err != nil {
			status.Stop()
			return err
		}
		if associated != nil {
			report.Add(entity.ResourceResult{Kind: "WebACLAssociation", Name: stack.GraphqlApiID(), Arn: associated.Arn, Action: "present", Detail: fmt.Sprintf("associated with %s", associated.Name)})
		} else {
			report.Add(entity.ResourceResult{Kind: "WebACLAssociation", Name: stack.GraphqlApiID(), Action: entity.ActionNotFound})
		}
	}

	status.Stop()

	report.Success = true
	uc.finishReport(report, args)
	return nil
}

// RunCheck roda apenas o preflight local, sem tocar na AWS.
func (uc *WafStackUseCase) RunCheck(ctx context.Context, args *types.CLIArgs) error {
	args, err := uc.resolveArgs(args)
	if err != nil {
		return err
	}

	stack := uc.buildStack(args, "")
	findings := stack.Validate()

	if len(findings) == 0 {
		uc.console.LogSuccess("Preflight passed with no findings")
		return nil
	}

	table := uc.console.CreateTable()
	table.AddColumn("Severity")
	table.AddColumn("Resource")
	table.AddColumn("Message")
	for _, finding := range findings {
		table.AddRow(string(finding.Severity), finding.Resource, finding.Message)
	}
	uc.console.Print(table.Render())

	if findings.HasErrors() {
		return types.ErrPreflightFailed
	}
	uc.console.LogSuccess("Preflight passed (%d warnings)", len(findings.Warnings()))
	return nil
}

// RunSynth emite o template CloudFormation equivalente ao stack.
func (uc *WafStackUseCase) RunSynth(ctx context.Context, args *types.CLIArgs) error {
	args, err := uc.resolveArgs(args)
	if err != nil {
		return err
	}

	// A conta entra no nome do bucket; sem credenciais o template ainda
	// sai, só que com o nome sem o sufixo da conta.
	accountID := ""
	if identity, err := uc.awsRepo.GetCallerIdentity(ctx, args.Profile, args.Region); err == nil {
		accountID = identity.AccountID
	}

	stack := uc.buildStack(args, accountID)
	rendered, err := uc.templateRepo.Synthesize(stack, args.Format)
	if err != nil {
		return err
	}

	if args.Output == "" {
		uc.console.Print(string(rendered))
		return nil
	}
	if err := os.WriteFile(args.Output, rendered, 0o644); err != nil {
		return fmt.Errorf("error writing template to %s: %w", args.Output, err)
	}
	uc.console.LogSuccess("Template written to %s", args.Output)
	return nil
}

// finishReport fecha o relatório, exibe a tabela e exporta nos formatos
// pedidos.
func (uc *WafStackUseCase) finishReport(report *entity.DeploymentReport, args *types.CLIArgs) {
	report.FinishedAt = time.Now().UTC()

	if len(report.Resources) > 0 {
		table := uc.console.CreateTable()
		table.AddColumn("Resource")
		table.AddColumn("Name")
		table.AddColumn("Action")
		table.AddColumn("ARN")
		for _, res := range report.Resources {
			table.AddRow(res.Kind, res.Name, string(res.Action), res.Arn)
		}
		uc.console.Print(table.Render())
	}

	if args.ReportName == "" {
		return
	}

	reportTypes := args.ReportType
	if len(reportTypes) == 0 {
		reportTypes = []string{"markdown"}
	}

	for _, reportType := range reportTypes {
		var (
			path string
			err  error
		)
		switch reportType {
		case "markdown", "md":
			path, err = uc.exportRepo.ExportReportToMarkdown(report, args.ReportName, args.Dir)
		case "csv":
			path, err = uc.exportRepo.ExportReportToCSV(report, args.ReportName, args.Dir)
		case "json":
			path, err = uc.exportRepo.ExportReportToJSON(report, args.ReportName, args.Dir)
		case "pdf":
			path, err = uc.exportRepo.ExportReportToPDF(report, args.ReportName, args.Dir)
		default:
			uc.console.LogWarning("Unknown report type: %s", reportType)
			continue
		}
		if err != nil {
			uc.console.LogError("Failed to export %s report: %s", reportType, err)
		} else {
			uc.console.LogSuccess("Successfully exported %s report: %s", reportType, path)
		}
	}
}
