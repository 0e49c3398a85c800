package Apis

import (
	"Attendance/Compare"
	"fmt"
	"io"
	"log"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
)

type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// PreviewResponse mirrors the download endpoint but returns the
// annotated table as JSON instead of a workbook. Rows is capped at the
// first previewRowLimit rows; RowCount is the full count.
type PreviewResponse struct {
	Success      bool           `json:"success"`
	SheetName    string         `json:"sheet_name"`
	Headers      []string       `json:"headers"`
	RowCount     int            `json:"row_count"`
	StatusCounts map[string]int `json:"status_counts"`
	Rows         [][]string     `json:"rows"`
}

const previewRowLimit = 20

// readWorkbookUpload pulls one uploaded .xlsx out of the multipart form.
func readWorkbookUpload(c *fiber.Ctx, field string) ([]byte, error) {
	file, err := c.FormFile(field)
	if err != nil {
		return nil, fmt.Errorf("missing %q file. Please upload all three files", field)
	}
	if ext := strings.ToLower(filepath.Ext(file.Filename)); ext != ".xlsx" {
		return nil, fmt.Errorf("%q must be an .xlsx workbook, got %q", field, file.Filename)
	}
	src, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open uploaded %q file", field)
	}
	defer src.Close()
	data, err := io.ReadAll(src)
	if err != nil {
		return nil, fmt.Errorf("failed to read uploaded %q file", field)
	}
	return data, nil
}

func readCompareUploads(c *fiber.Ctx) (attendance, bio1, bio2 []byte, err error) {
	if attendance, err = readWorkbookUpload(c, "attendance"); err != nil {
		return
	}
	if bio1, err = readWorkbookUpload(c, "biometric1"); err != nil {
		return
	}
	bio2, err = readWorkbookUpload(c, "biometric2")
	return
}

// CompareAttendance reconciles the three uploaded workbooks and streams
// the annotated roster back as a download. Malformed input comes back
// as a JSON error with the engine's message verbatim, never a crash.
func CompareAttendance(c *fiber.Ctx) error {
	attendance, bio1, bio2, err := readCompareUploads(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Success: false,
			Error:   err.Error(),
		})
	}

	buf, result, err := Compare.Compare(attendance, bio1, bio2)
	if err != nil {
		log.Println("compare failed:", err)
		return c.Status(fiber.StatusUnprocessableEntity).JSON(ErrorResponse{
			Success: false,
			Error:   err.Error(),
		})
	}
	log.Printf("compared %d roster rows", len(result.Rows))

	filename := fmt.Sprintf("Attendance_with_Status_%s.xlsx", time.Now().Format("20060102_150405"))
	c.Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Set("Content-Length", fmt.Sprintf("%d", buf.Len()))
	return c.Send(buf.Bytes())
}

// CompareAttendancePreview runs the same reconciliation but responds
// with a JSON preview of the annotated table.
func CompareAttendancePreview(c *fiber.Ctx) error {
	attendance, bio1, bio2, err := readCompareUploads(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Success: false,
			Error:   err.Error(),
		})
	}

	_, result, err := Compare.Compare(attendance, bio1, bio2)
	if err != nil {
		log.Println("compare failed:", err)
		return c.Status(fiber.StatusUnprocessableEntity).JSON(ErrorResponse{
			Success: false,
			Error:   err.Error(),
		})
	}

	counts := make(map[string]int)
	for status, n := range result.StatusTally() {
		counts[string(status)] = n
	}
	rows := result.Rows
	if len(rows) > previewRowLimit {
		rows = rows[:previewRowLimit]
	}
	return c.JSON(PreviewResponse{
		Success:      true,
		SheetName:    result.SheetName,
		Headers:      result.Headers,
		RowCount:     len(result.Rows),
		StatusCounts: counts,
		Rows:         rows,
	})
}
