package repository

import (
	"github.com/Mykematt/tmb12-waf-test/internal/domain/entity"
)

// ExportRepository defines the interface for writing deployment reports.
type ExportRepository interface {
	ExportReportToMarkdown(report *entity.DeploymentReport, filename string, outputDir string) (string, error)
	ExportReportToCSV(report *entity.DeploymentReport, filename string, outputDir string) (string, error)
	ExportReportToJSON(report *entity.DeploymentReport, filename string, outputDir string) (string, error)
	ExportReportToPDF(report *entity.DeploymentReport, filename string, outputDir string) (string, error)
}
