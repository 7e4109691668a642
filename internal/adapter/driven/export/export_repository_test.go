package export

import (
	"encoding/json"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mykematt/tmb12-waf-test/internal/domain/entity"
)

func sampleReport() *entity.DeploymentReport {
	started := time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC)
	return &entity.DeploymentReport{
		StackName:   "tmb12-waf-test",
		Operation:   "deploy",
		Environment: "test",
		Region:      "us-east-1",
		AccountID:   "123456789012",
		StartedAt:   started,
		FinishedAt:  started.Add(12 * time.Second),
		Success:     true,
		Resources: []entity.ResourceResult{
			{
				Kind:   "LogGroup",
				Name:   "aws-waf-logs-tmb12-test",
				Arn:    "arn:aws:logs:us-east-1:123456789012:log-group:aws-waf-logs-tmb12-test",
				Action: entity.ActionCreated,
			},
			{
				Kind:   "WebACL",
				Name:   "tmb12-web-acl-test",
				Action: entity.ActionUpdated,
				Detail: "3 rules | rate limit 2000",
			},
		},
		Findings: entity.Findings{
			{Severity: entity.SeverityWarning, Resource: "tmb12-web-acl-test", Message: "no GraphQL API ARN configured"},
		},
	}
}

func TestExportReportToMarkdown(t *testing.T) {
	dir := t.TempDir()
	path, err := NewExportRepository().ExportReportToMarkdown(sampleReport(), "waf-report", dir)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	content := string(data)

	assert.Contains(t, content, "# tmb12-waf-test — deploy report")
	assert.Contains(t, content, "- **Result:** success")
	assert.Contains(t, content, "| LogGroup | aws-waf-logs-tmb12-test | created |")
	// Detalhes com pipe são escapados para não quebrar a tabela.
	assert.Contains(t, content, `3 rules \| rate limit 2000`)
	assert.Contains(t, content, "## Findings")
	assert.Contains(t, content, "**WARNING** `tmb12-web-acl-test`")
	assert.NotContains(t, content, "## Error")
}

func TestExportReportToMarkdownFailure(t *testing.T) {
	report := sampleReport()
	report.Failed(assert.AnError)

	path, err := NewExportRepository().ExportReportToMarkdown(report, "waf-report", t.TempDir())
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "- **Result:** failed")
	assert.Contains(t, string(data), "## Error")
}

func TestExportReportToCSV(t *testing.T) {
	path, err := NewExportRepository().ExportReportToCSV(sampleReport(), "waf-report", t.TempDir())
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	content := string(data)

	assert.Contains(t, content, "Stack,Operation,Resource,Name,Action,ARN,Detail")
	assert.Contains(t, content, "tmb12-waf-test,deploy,LogGroup,aws-waf-logs-tmb12-test,created")
}

func TestExportReportToJSON(t *testing.T) {
	path, err := NewExportRepository().ExportReportToJSON(sampleReport(), "waf-report", t.TempDir())
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var decoded entity.DeploymentReport
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "tmb12-waf-test", decoded.StackName)
	assert.Len(t, decoded.Resources, 2)
	assert.True(t, decoded.Success)
}

func TestGenerateFilename(t *testing.T) {
	dir := t.TempDir()
	path, err := generateFilename("report", dir, "md")
	require.NoError(t, err)
	assert.Regexp(t, `report_\d{8}_\d{4}\.md$`, path)
}
