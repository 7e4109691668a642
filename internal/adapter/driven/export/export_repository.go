package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/Mykematt/tmb12-waf-test/internal/domain/entity"
	"github.com/Mykematt/tmb12-waf-test/internal/domain/repository"
)

// ExportRepositoryImpl implementa o ExportRepository.
type ExportRepositoryImpl struct{}

// NewExportRepository cria uma nova implementação do ExportRepository.
func NewExportRepository() repository.ExportRepository {
	return &ExportRepositoryImpl{}
}

// ExportReportToMarkdown grava o relatório no formato markdown usado nos
// registros operacionais do repositório.
func (r *ExportRepositoryImpl) ExportReportToMarkdown(report *entity.DeploymentReport, filename, outputDir string) (string, error) {
	outputFilename, err := generateFilename(filename, outputDir, "md")
	if err != nil {
		return "", err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# %s — %s report\n\n", report.StackName, report.Operation)
	fmt.Fprintf(&b, "- **Environment:** %s\n", report.Environment)
	fmt.Fprintf(&b, "- **Region:** %s\n", report.Region)
	if report.AccountID != "" {
		fmt.Fprintf(&b, "- **Account:** %s\n", report.AccountID)
	}
	fmt.Fprintf(&b, "- **Started:** %s\n", report.StartedAt.Format(time.RFC3339))
	fmt.Fprintf(&b, "- **Finished:** %s\n", report.FinishedAt.Format(time.RFC3339))
	fmt.Fprintf(&b, "- **Result:** %s\n\n", resultLabel(report))

	if len(report.Resources) > 0 {
		b.WriteString("## Resources\n\n")
		b.WriteString("| Resource | Name | Action | ARN | Detail |\n")
		b.WriteString("|---|---|---|---|---|\n")
		for _, res := range report.Resources {
			fmt.Fprintf(&b, "| %s | %s | %s | %s | %s |\n",
				res.Kind, res.Name, res.Action, mdCell(res.Arn), mdCell(res.Detail))
		}
		b.WriteString("\n")
	}

	if len(report.Findings) > 0 {
		b.WriteString("## Findings\n\n")
		for _, finding := range report.Findings {
			fmt.Fprintf(&b, "- **%s** `%s`: %s\n", finding.Severity, finding.Resource, finding.Message)
		}
		b.WriteString("\n")
	}

	if report.Error != "" {
		fmt.Fprintf(&b, "## Error\n\n```\n%s\n```\n", report.Error)
	}

	if err := os.WriteFile(outputFilename, []byte(b.String()), 0o644); err != nil {
		return "", fmt.Errorf("error writing markdown file: %w", err)
	}
	return filepath.Abs(outputFilename)
}

func (r *ExportRepositoryImpl) ExportReportToCSV(report *entity.DeploymentReport, filename, outputDir string) (string, error) {
	outputFilename, err := generateFilename(filename, outputDir, "csv")
	if err != nil {
		return "", err
	}

	file, err := os.Create(outputFilename)
	if err != nil {
		return "", fmt.Errorf("error creating CSV file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	headers := []string{"Stack", "Operation", "Resource", "Name", "Action", "ARN", "Detail"}
	writer.Write(headers)

	for _, res := range report.Resources {
		record := []string{
			report.StackName,
			report.Operation,
			res.Kind,
			res.Name,
			string(res.Action),
			res.Arn,
			res.Detail,
		}
		writer.Write(record)
	}

	return filepath.Abs(outputFilename)
}

func (r *ExportRepositoryImpl) ExportReportToJSON(report *entity.DeploymentReport, filename, outputDir string) (string, error) {
	outputFilename, err := generateFilename(filename, outputDir, "json")
	if err != nil {
		return "", err
	}

	file, err := os.Create(outputFilename)
	if err != nil {
		return "", fmt.Errorf("error creating JSON file: %w", err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(report); err != nil {
		return "", fmt.Errorf("error encoding JSON data: %w", err)
	}

	return filepath.Abs(outputFilename)
}

func (r *ExportRepositoryImpl) ExportReportToPDF(report *entity.DeploymentReport, filename, outputDir string) (string, error) {
	outputFilename, err := generateFilename(filename, outputDir, "pdf")
	if err != nil {
		return "", err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	headerColor := [3]int{40, 40, 40}
	headerTextColor := [3]int{255, 255, 255}
	sectionTitleColor := [3]int{0, 0, 0}
	bodyTextColor := [3]int{50, 50, 50}
	lineColor := [3]int{200, 200, 200}

	drawSection := func(title string, content string) {
		if content == "" {
			return
		}
		pdf.SetFont("Arial", "B", 12)
		pdf.SetTextColor(sectionTitleColor[0], sectionTitleColor[1], sectionTitleColor[2])
		pdf.Cell(0, 8, title)
		pdf.Ln(7)

		pdf.SetDrawColor(lineColor[0], lineColor[1], lineColor[2])
		pdf.Line(pdf.GetX(), pdf.GetY(), pdf.GetX()+190, pdf.GetY())
		pdf.Ln(4)

		pdf.SetFont("Arial", "", 10)
		pdf.SetTextColor(bodyTextColor[0], bodyTextColor[1], bodyTextColor[2])
		pdf.MultiCell(190, 5, tr(content), "", "L", false)
		pdf.Ln(8)
	}

	pdf.AddPage()

	pdf.SetFillColor(headerColor[0], headerColor[1], headerColor[2])
	pdf.SetTextColor(headerTextColor[0], headerTextColor[1], headerTextColor[2])
	pdf.SetFont("Arial", "B", 14)
	pdf.CellFormat(0, 12, tr(fmt.Sprintf("  %s — %s", report.StackName, report.Operation)), "", 1, "L", true, 0, "")

	pdf.SetFont("Arial", "", 10)
	pdf.SetFillColor(240, 240, 240)
	pdf.SetTextColor(bodyTextColor[0], bodyTextColor[1], bodyTextColor[2])
	pdf.CellFormat(0, 8, tr(fmt.Sprintf("  Environment: %s | Region: %s | Account: %s", report.Environment, report.Region, report.AccountID)), "", 1, "L", true, 0, "")
	pdf.Ln(10)

	resourcesStr := ""
	for _, res := range report.Resources {
		resourcesStr += fmt.Sprintf("%s %s: %s", res.Kind, res.Name, res.Action)
		if res.Arn != "" {
			resourcesStr += fmt.Sprintf("\n  %s", res.Arn)
		}
		if res.Detail != "" {
			resourcesStr += fmt.Sprintf("\n  %s", res.Detail)
		}
		resourcesStr += "\n"
	}
	drawSection("Resources", strings.TrimSpace(resourcesStr))

	findingsStr := ""
	for _, finding := range report.Findings {
		findingsStr += fmt.Sprintf("[%s] %s: %s\n", finding.Severity, finding.Resource, finding.Message)
	}
	drawSection("Findings", strings.TrimSpace(findingsStr))

	drawSection("Result", resultLabel(report))
	if report.Error != "" {
		drawSection("Error", report.Error)
	}

	pdf.SetY(-15)
	pdf.SetFont("Arial", "I", 8)
	pdf.SetTextColor(128, 128, 128)
	footerText := fmt.Sprintf("Generated by tmb12-waf-test | %s", time.Now().Format("2006-01-02"))
	pdf.CellFormat(0, 10, tr(footerText), "", 0, "L", false, 0, "")

	if err := pdf.OutputFileAndClose(outputFilename); err != nil {
		return "", fmt.Errorf("error writing PDF file: %w", err)
	}

	return filepath.Abs(outputFilename)
}

func resultLabel(report *entity.DeploymentReport) string {
	if report.Success {
		if report.AllSkipped() {
			return "success (nothing to do)"
		}
		return "success"
	}
	return "failed"
}

// mdCell escapa o conteúdo para uso em células de tabela markdown.
func mdCell(s string) string {
	if s == "" {
		return "-"
	}
	return strings.ReplaceAll(s, "|", "\\|")
}

// generateFilename monta o caminho do arquivo de saída com timestamp.
func generateFilename(baseName, outputDir, extension string) (string, error) {
	if outputDir != "" {
		if err := os.MkdirAll(outputDir, 0o755); err != nil {
			return "", fmt.Errorf("error creating output directory: %w", err)
		}
	}

	timestamp := time.Now().Format("20060102_1504")
	filename := fmt.Sprintf("%s_%s.%s", baseName, timestamp, extension)
	return filepath.Join(outputDir, filename), nil
}
