package services

import (
	"bytes"
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"time"

	"wastewise-backend/models"

	"github.com/go-pdf/fpdf"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ReportService struct {
	DB       *gorm.DB
	Uploader ProofUploader
}

func NewReportService(db *gorm.DB, uploader ProofUploader) *ReportService {
	return &ReportService{DB: db, Uploader: uploader}
}

// CreateReport files an illegal dumping report with a required photo and
// optional coordinates.
func (s *ReportService) CreateReport(c *fiber.Ctx) error {
	userID, _ := c.Locals("user_id").(string)
	username, _ := c.Locals("username").(string)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid or expired token"})
	}

	title := c.FormValue("title")
	description := c.FormValue("description")
	if title == "" || description == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "title and description are required"})
	}

	file, err := c.FormFile("image")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "no image file provided"})
	}

	key := fmt.Sprintf("reports/%s%s", uuid.NewString(), filepath.Ext(file.Filename))
	imageURL, err := s.Uploader.Upload(file, key)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "image upload failed"})
	}

	report := models.Report{
		ID:           uuid.NewString(),
		Title:        title,
		ReporterID:   userID,
		ReporterName: username,
		Description:  description,
		Date:         time.Now(),
		Status:       models.ReportStatusPending,
	}
	if loc := c.FormValue("location"); loc != "" {
		report.Location = &loc
	}
	if lat, err := strconv.ParseFloat(c.FormValue("lat"), 64); err == nil {
		if lng, err := strconv.ParseFloat(c.FormValue("lng"), 64); err == nil {
			report.Lat = &lat
			report.Lng = &lng
		}
	}
	report.Images = []models.ReportImage{{
		ID:       uuid.NewString(),
		ReportID: report.ID,
		URL:      imageURL,
	}}

	if err := s.DB.Create(&report).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to create report"})
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "report created successfully", "report": report})
}

// MyReports lists the caller's own reports.
func (s *ReportService) MyReports(c *fiber.Ctx) error {
	userID, _ := c.Locals("user_id").(string)

	var reports []models.Report
	if err := s.DB.Preload("Images").Where("reporter_id = ?", userID).
		Order("date DESC").Find(&reports).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to fetch reports"})
	}
	return c.JSON(reports)
}

// AllReports lists every report (admin).
func (s *ReportService) AllReports(c *fiber.Ctx) error {
	var reports []models.Report
	if err := s.DB.Preload("Images").Order("date DESC").Find(&reports).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to fetch reports"})
	}
	return c.JSON(reports)
}

func (s *ReportService) GetReport(c *fiber.Ctx) error {
	var report models.Report
	err := s.DB.Preload("Images").Where("id = ?", c.Params("id")).First(&report).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "report not found"})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to fetch report"})
	}
	return c.JSON(report)
}

// ResolveReport marks a report as resolved (admin).
func (s *ReportService) ResolveReport(c *fiber.Ctx) error {
	var report models.Report
	err := s.DB.Where("id = ?", c.Params("id")).First(&report).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "report not found"})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to fetch report"})
	}

	report.Status = models.ReportStatusResolved
	if err := s.DB.Save(&report).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to update report status"})
	}
	return c.JSON(fiber.Map{"message": "report marked as resolved", "report": report})
}

// DownloadPDF streams every report as a generated PDF document (admin).
func (s *ReportService) DownloadPDF(c *fiber.Ctx) error {
	var reports []models.Report
	if err := s.DB.Preload("Images").Order("date DESC").Find(&reports).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to fetch reports"})
	}
	if len(reports) == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "no reports found"})
	}

	pdfBytes, err := BuildReportsPDF(reports, time.Now())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to generate report"})
	}

	c.Set("Content-Type", "application/pdf")
	c.Set("Content-Disposition", `attachment; filename="waste-reports.pdf"`)
	return c.Send(pdfBytes)
}

// BuildReportsPDF renders reports into a printable document: a title page
// header, one page per report, and a trailing summary page.
func BuildReportsPDF(reports []models.Report, generatedAt time.Time) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")

	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 20)
	pdf.CellFormat(0, 12, "WasteWise Reports", "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 12)
	pdf.CellFormat(0, 8, "Generated on: "+generatedAt.Format("Jan 2, 2006"), "", 1, "C", false, 0, "")
	pdf.Ln(8)

	for i, report := range reports {
		if i > 0 {
			pdf.AddPage()
		}

		pdf.SetFont("Helvetica", "BU", 16)
		pdf.CellFormat(0, 10, fmt.Sprintf("Report %d", i+1), "", 1, "L", false, 0, "")
		pdf.Ln(2)

		pdf.SetFont("Helvetica", "", 12)
		location := "Not specified"
		if report.Location != nil && *report.Location != "" {
			location = *report.Location
		}
		pdf.MultiCell(0, 7, "Title: "+report.Title, "", "L", false)
		pdf.MultiCell(0, 7, "Description: "+report.Description, "", "L", false)
		pdf.MultiCell(0, 7, "Location: "+location, "", "L", false)
		pdf.MultiCell(0, 7, "Date: "+report.Date.Format("Jan 2, 2006"), "", "L", false)
		pdf.MultiCell(0, 7, "Status: "+report.Status, "", "L", false)

		if len(report.Images) > 0 {
			pdf.MultiCell(0, 7, fmt.Sprintf("Images: %d attached", len(report.Images)), "", "L", false)
			for j, img := range report.Images {
				pdf.MultiCell(0, 7, fmt.Sprintf("  %d. %s", j+1, img.URL), "", "L", false)
			}
		}
	}

	pdf.AddPage()
	pdf.SetFont("Helvetica", "BU", 16)
	pdf.CellFormat(0, 10, "Summary", "", 1, "L", false, 0, "")
	pdf.Ln(2)
	pdf.SetFont("Helvetica", "", 12)
	pdf.MultiCell(0, 7, fmt.Sprintf("Total Reports: %d", len(reports)), "", "L", false)
	pdf.MultiCell(0, 7, fmt.Sprintf("Date Range: %s - %s",
		reports[len(reports)-1].Date.Format("Jan 2, 2006"),
		reports[0].Date.Format("Jan 2, 2006")), "", "L", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
