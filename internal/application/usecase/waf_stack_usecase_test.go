package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mykematt/tmb12-waf-test/internal/domain/entity"
	"github.com/Mykematt/tmb12-waf-test/internal/shared/types"
)

const testApiArn = "arn:aws:appsync:us-east-1:123456789012:apis/abcdef123456"

// --- fakes ---

type fakeStatus struct{}

func (fakeStatus) Update(string) {}
func (fakeStatus) Stop()         {}

type fakeTable struct{}

func (*fakeTable) AddColumn(string, ...interface{}) {}
func (*fakeTable) AddRow(...interface{})            {}
func (*fakeTable) Render() string                   { return "" }

type fakeConsole struct {
	warnings []string
	errors   []string
}

func (c *fakeConsole) Print(...interface{})           {}
func (c *fakeConsole) Printf(string, ...interface{})  {}
func (c *fakeConsole) Println(...interface{})         {}
func (c *fakeConsole) LogInfo(string, ...interface{}) {}
func (c *fakeConsole) LogWarning(format string, a ...interface{}) {
	c.warnings = append(c.warnings, format)
}
func (c *fakeConsole) LogError(format string, a ...interface{}) {
	c.errors = append(c.errors, format)
}
func (c *fakeConsole) LogSuccess(string, ...interface{}) {}
func (c *fakeConsole) Status(string) types.StatusHandle  { return fakeStatus{} }
func (c *fakeConsole) CreateTable() types.TableInterface { return &fakeTable{} }

type fakeAWSRepo struct {
	calls []string

	identityErr   error
	apiMissing    bool
	existingACL   *entity.WebACLRef
	findACLErr    error
	logGroupErr   error
	deleteGroup   entity.ResourceAction
	deleteGroupE  error
	deleteBucket  entity.ResourceAction
	loggingArn    string
	associatedArn string
}

func (f *fakeAWSRepo) record(name string) { f.calls = append(f.calls, name) }

func (f *fakeAWSRepo) GetAWSProfiles() []string { return []string{"default"} }

func (f *fakeAWSRepo) GetCallerIdentity(ctx context.Context, profile, region string) (entity.CallerIdentity, error) {
	f.record("GetCallerIdentity")
	if f.identityErr != nil {
		return entity.CallerIdentity{}, f.identityErr
	}
	return entity.CallerIdentity{AccountID: "123456789012", Arn: "arn:aws:iam::123456789012:user/ops"}, nil
}

func (f *fakeAWSRepo) GetGraphqlApi(ctx context.Context, profile, region, apiID string) (*entity.GraphqlApi, error) {
	f.record("GetGraphqlApi")
	if f.apiMissing {
		return nil, types.ErrGraphqlApiNotFound
	}
	return &entity.GraphqlApi{ApiId: apiID, Arn: testApiArn}, nil
}

func (f *fakeAWSRepo) EnsureLogGroup(ctx context.Context, profile, region string, group entity.LogGroup) (entity.ResourceAction, error) {
	f.record("EnsureLogGroup")
	if f.logGroupErr != nil {
		return entity.ActionFailed, f.logGroupErr
	}
	return entity.ActionCreated, nil
}

func (f *fakeAWSRepo) DeleteLogGroup(ctx context.Context, profile, region, name string) (entity.ResourceAction, error) {
	f.record("DeleteLogGroup")
	if f.deleteGroupE != nil {
		return entity.ActionFailed, f.deleteGroupE
	}
	if f.deleteGroup == "" {
		return entity.ActionDeleted, nil
	}
	return f.deleteGroup, nil
}

func (f *fakeAWSRepo) LogGroupExists(ctx context.Context, profile, region, name string) (bool, error) {
	f.record("LogGroupExists")
	return true, nil
}

func (f *fakeAWSRepo) EnsureLogBucket(ctx context.Context, profile, region string, bucket entity.LogBucket) (entity.ResourceAction, error) {
	f.record("EnsureLogBucket")
	return entity.ActionCreated, nil
}

func (f *fakeAWSRepo) DeleteLogBucket(ctx context.Context, profile, region, name string) (entity.ResourceAction, error) {
	f.record("DeleteLogBucket")
	if f.deleteBucket == "" {
		return entity.ActionDeleted, nil
	}
	return f.deleteBucket, nil
}

func (f *fakeAWSRepo) BucketExists(ctx context.Context, profile, region, name string) (bool, error) {
	f.record("BucketExists")
	return true, nil
}

func (f *fakeAWSRepo) FindWebACL(ctx context.Context, profile, region, name string) (*entity.WebACLRef, error) {
	f.record("FindWebACL")
	return f.existingACL, f.findACLErr
}

func (f *fakeAWSRepo) PutWebACL(ctx context.Context, profile, region string, acl entity.WebACL) (entity.WebACLRef, entity.ResourceAction, error) {
	f.record("PutWebACL")
	ref := entity.WebACLRef{
		Id:   "acl-id",
		Name: acl.Name,
		Arn:  "arn:aws:wafv2:us-east-1:123456789012:regional/webacl/" + acl.Name + "/acl-id",
	}
	return ref, entity.ActionCreated, nil
}

func (f *fakeAWSRepo) DeleteWebACL(ctx context.Context, profile, region string, ref entity.WebACLRef) (entity.ResourceAction, error) {
	f.record("DeleteWebACL")
	return entity.ActionDeleted, nil
}

func (f *fakeAWSRepo) PutLoggingConfiguration(ctx context.Context, profile, region, webACLArn, destinationArn string, redactAuthorization bool) error {
	f.record("PutLoggingConfiguration")
	f.loggingArn = destinationArn
	return nil
}

func (f *fakeAWSRepo) DeleteLoggingConfiguration(ctx context.Context, profile, region, webACLArn string) (entity.ResourceAction, error) {
	f.record("DeleteLoggingConfiguration")
	return entity.ActionDeleted, nil
}

func (f *fakeAWSRepo) AssociateWebACL(ctx context.Context, profile, region, webACLArn, resourceArn string) error {
	f.record("AssociateWebACL")
	f.associatedArn = resourceArn
	return nil
}

func (f *fakeAWSRepo) DisassociateWebACL(ctx context.Context, profile, region, resourceArn string) (entity.ResourceAction, error) {
	f.record("DisassociateWebACL")
	return entity.ActionSkipped, nil
}

func (f *fakeAWSRepo) GetWebACLForResource(ctx context.Context, profile, region, resourceArn string) (*entity.WebACLRef, error) {
	f.record("GetWebACLForResource")
	return f.existingACL, nil
}

type fakeExportRepo struct {
	exported []string
}

func (f *fakeExportRepo) export(kind string) (string, error) {
	f.exported = append(f.exported, kind)
	return "/tmp/report." + kind, nil
}

func (f *fakeExportRepo) ExportReportToMarkdown(*entity.DeploymentReport, string, string) (string, error) {
	return f.export("md")
}
func (f *fakeExportRepo) ExportReportToCSV(*entity.DeploymentReport, string, string) (string, error) {
	return f.export("csv")
}
func (f *fakeExportRepo) ExportReportToJSON(*entity.DeploymentReport, string, string) (string, error) {
	return f.export("json")
}
func (f *fakeExportRepo) ExportReportToPDF(*entity.DeploymentReport, string, string) (string, error) {
	return f.export("pdf")
}

type fakeConfigRepo struct {
	config *types.Config
	err    error
}

func (f *fakeConfigRepo) LoadConfigFile(string) (*types.Config, error) {
	return f.config, f.err
}

type fakeTemplateRepo struct {
	format string
}

func (f *fakeTemplateRepo) Synthesize(stack *entity.WafStack, format string) ([]byte, error) {
	f.format = format
	return []byte("{}"), nil
}

func newTestUseCase(awsRepo *fakeAWSRepo) (*WafStackUseCase, *fakeExportRepo, *fakeConsole) {
	exportRepo := &fakeExportRepo{}
	console := &fakeConsole{}
	uc := NewWafStackUseCase(awsRepo, exportRepo, &fakeConfigRepo{}, &fakeTemplateRepo{}, console)
	return uc, exportRepo, console
}

// --- deploy ---

func TestRunDeployOrdering(t *testing.T) {
	awsRepo := &fakeAWSRepo{}
	uc, _, _ := newTestUseCase(awsRepo)

	err := uc.RunDeploy(context.Background(), &types.CLIArgs{GraphqlApiArn: testApiArn})
	require.NoError(t, err)

	assert.Equal(t, []string{
		"GetCallerIdentity",
		"GetGraphqlApi",
		"EnsureLogGroup",
		"EnsureLogBucket",
		"PutWebACL",
		"PutLoggingConfiguration",
		"AssociateWebACL",
	}, awsRepo.calls)

	// O destino entregue ao logging nunca carrega o sufixo :*.
	assert.False(t, strings.HasSuffix(awsRepo.loggingArn, ":*"))
	assert.Contains(t, awsRepo.loggingArn, "log-group:aws-waf-logs-tmb12-test")
	assert.Equal(t, testApiArn, awsRepo.associatedArn)
}

func TestRunDeployWithoutAssociation(t *testing.T) {
	awsRepo := &fakeAWSRepo{}
	uc, _, console := newTestUseCase(awsRepo)

	err := uc.RunDeploy(context.Background(), &types.CLIArgs{})
	require.NoError(t, err)

	assert.NotContains(t, awsRepo.calls, "GetGraphqlApi")
	assert.NotContains(t, awsRepo.calls, "AssociateWebACL")
	// Sem ARN configurado o preflight avisa, mas não bloqueia.
	assert.NotEmpty(t, console.warnings)
}

func TestRunDeployPreflightAborts(t *testing.T) {
	awsRepo := &fakeAWSRepo{}
	uc, _, _ := newTestUseCase(awsRepo)

	err := uc.RunDeploy(context.Background(), &types.CLIArgs{
		GraphqlApiArn: testApiArn,
		RetentionDays: 45, // valor que o CloudWatch Logs não aceita
	})
	require.ErrorIs(t, err, types.ErrPreflightFailed)

	// Nenhuma chamada de provisionamento acontece depois do preflight.
	assert.Equal(t, []string{"GetCallerIdentity"}, awsRepo.calls)
}

func TestRunDeployMissingGraphqlApi(t *testing.T) {
	awsRepo := &fakeAWSRepo{apiMissing: true}
	uc, _, _ := newTestUseCase(awsRepo)

	err := uc.RunDeploy(context.Background(), &types.CLIArgs{GraphqlApiArn: testApiArn})
	require.ErrorIs(t, err, types.ErrGraphqlApiNotFound)
	assert.NotContains(t, awsRepo.calls, "EnsureLogGroup")
}

func TestRunDeployStopsOnStepFailure(t *testing.T) {
	awsRepo := &fakeAWSRepo{logGroupErr: errors.New("access denied")}
	uc, _, _ := newTestUseCase(awsRepo)

	err := uc.RunDeploy(context.Background(), &types.CLIArgs{GraphqlApiArn: testApiArn})
	require.Error(t, err)
	assert.NotContains(t, awsRepo.calls, "EnsureLogBucket")
	assert.NotContains(t, awsRepo.calls, "PutWebACL")
}

func TestRunDeployIdentityError(t *testing.T) {
	awsRepo := &fakeAWSRepo{identityErr: errors.New("no credentials")}
	uc, _, _ := newTestUseCase(awsRepo)

	err := uc.RunDeploy(context.Background(), &types.CLIArgs{})
	require.Error(t, err)
	assert.Equal(t, []string{"GetCallerIdentity"}, awsRepo.calls)
}

func TestRunDeployExportsReports(t *testing.T) {
	awsRepo := &fakeAWSRepo{}
	uc, exportRepo, _ := newTestUseCase(awsRepo)

	err := uc.RunDeploy(context.Background(), &types.CLIArgs{
		GraphqlApiArn: testApiArn,
		ReportName:    "deploy-report",
		ReportType:    []string{"markdown", "json"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"md", "json"}, exportRepo.exported)
}

// --- destroy ---

func TestRunDestroyOrdering(t *testing.T) {
	awsRepo := &fakeAWSRepo{
		existingACL: &entity.WebACLRef{Id: "acl-id", Name: "tmb12-web-acl-test", Arn: "arn:acl"},
	}
	uc, _, _ := newTestUseCase(awsRepo)

	err := uc.RunDestroy(context.Background(), &types.CLIArgs{GraphqlApiArn: testApiArn})
	require.NoError(t, err)

	assert.Equal(t, []string{
		"GetCallerIdentity",
		"FindWebACL",
		"DisassociateWebACL",
		"DeleteLoggingConfiguration",
		"DeleteWebACL",
		"DeleteLogGroup",
		"DeleteLogBucket",
	}, awsRepo.calls)
}

func TestRunDestroyNothingToRemove(t *testing.T) {
	awsRepo := &fakeAWSRepo{
		deleteGroup:  entity.ActionSkipped,
		deleteBucket: entity.ActionSkipped,
	}
	uc, _, _ := newTestUseCase(awsRepo)

	// Nada existe: o destroy ainda termina com sucesso.
	err := uc.RunDestroy(context.Background(), &types.CLIArgs{})
	require.NoError(t, err)
	assert.NotContains(t, awsRepo.calls, "DeleteWebACL")
}

func TestRunDestroyReportsFailures(t *testing.T) {
	awsRepo := &fakeAWSRepo{deleteGroupE: errors.New("access denied")}
	uc, _, _ := newTestUseCase(awsRepo)

	err := uc.RunDestroy(context.Background(), &types.CLIArgs{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "finished with failures")
	// O destroy continua nos demais recursos mesmo depois de uma falha.
	assert.Contains(t, awsRepo.calls, "DeleteLogBucket")
}

// --- status / check / synth ---

func TestRunStatusInspectsEverything(t *testing.T) {
	awsRepo := &fakeAWSRepo{
		existingACL: &entity.WebACLRef{Id: "acl-id", Name: "tmb12-web-acl-test", Arn: "arn:acl"},
	}
	uc, _, _ := newTestUseCase(awsRepo)

	err := uc.RunStatus(context.Background(), &types.CLIArgs{GraphqlApiArn: testApiArn})
	require.NoError(t, err)

	assert.Contains(t, awsRepo.calls, "FindWebACL")
	assert.Contains(t, awsRepo.calls, "LogGroupExists")
	assert.Contains(t, awsRepo.calls, "BucketExists")
	assert.Contains(t, awsRepo.calls, "GetWebACLForResource")
}

func TestRunCheckFailsOnErrors(t *testing.T) {
	uc, _, _ := newTestUseCase(&fakeAWSRepo{})

	err := uc.RunCheck(context.Background(), &types.CLIArgs{
		GraphqlApiArn: "arn:aws:appsync:us-east-1:123456789012:apis/abcdef123456:*",
	})
	require.ErrorIs(t, err, types.ErrPreflightFailed)
}

func TestRunCheckWarningsPass(t *testing.T) {
	uc, _, _ := newTestUseCase(&fakeAWSRepo{})

	// Sem ARN: só o warning de associação ausente, que não bloqueia.
	err := uc.RunCheck(context.Background(), &types.CLIArgs{})
	require.NoError(t, err)
}

func TestRunSynthWithoutCredentials(t *testing.T) {
	awsRepo := &fakeAWSRepo{identityErr: errors.New("no credentials")}
	uc, _, _ := newTestUseCase(awsRepo)

	// Sem credenciais o template ainda é emitido.
	err := uc.RunSynth(context.Background(), &types.CLIArgs{Format: "json"})
	require.NoError(t, err)
}

// --- config merge ---

func TestResolveArgsFlagsWinOverFile(t *testing.T) {
	configRepo := &fakeConfigRepo{config: &types.Config{
		Environment: "staging",
		Region:      "eu-west-1",
		RateLimit:   5000,
		GeoBlock:    []string{"CN"},
	}}
	uc := NewWafStackUseCase(&fakeAWSRepo{}, &fakeExportRepo{}, configRepo, &fakeTemplateRepo{}, &fakeConsole{})

	resolved, err := uc.resolveArgs(&types.CLIArgs{
		ConfigFile:  "waf.toml",
		Environment: "prod",
		RateLimit:   9000,
	})
	require.NoError(t, err)

	assert.Equal(t, "prod", resolved.Environment, "flag wins over file")
	assert.Equal(t, int64(9000), resolved.RateLimit, "flag wins over file")
	assert.Equal(t, "eu-west-1", resolved.Region, "file fills the gap")
	assert.Equal(t, []string{"CN"}, resolved.GeoBlock, "file fills the gap")
}

func TestResolveArgsConfigError(t *testing.T) {
	configRepo := &fakeConfigRepo{err: errors.New("parse error")}
	uc := NewWafStackUseCase(&fakeAWSRepo{}, &fakeExportRepo{}, configRepo, &fakeTemplateRepo{}, &fakeConsole{})

	_, err := uc.resolveArgs(&types.CLIArgs{ConfigFile: "broken.toml"})
	require.Error(t, err)
}

func TestResolveArgsNoConfigFile(t *testing.T) {
	uc, _, _ := newTestUseCase(&fakeAWSRepo{})

	args := &types.CLIArgs{Environment: "test"}
	resolved, err := uc.resolveArgs(args)
	require.NoError(t, err)
	assert.Same(t, args, resolved)
}
