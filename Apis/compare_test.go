package Apis

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func testApp() *fiber.App {
	app := fiber.New()
	app.Post("/api/compare", CompareAttendance)
	app.Post("/api/compare/preview", CompareAttendancePreview)
	return app
}

func sheetBytes(t *testing.T, rows [][]string) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	for r, row := range rows {
		for c, value := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			require.NoError(t, err)
			require.NoError(t, f.SetCellValue("Sheet1", cell, value))
		}
	}
	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))
	return buf.Bytes()
}

func multipartBody(t *testing.T, files map[string][]byte) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	for field, data := range files {
		part, err := w.CreateFormFile(field, field+".xlsx")
		require.NoError(t, err)
		_, err = part.Write(data)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return body, w.FormDataContentType()
}

func testUploads(t *testing.T) map[string][]byte {
	roster := sheetBytes(t, [][]string{
		{"EMP ID", "SHIFT"},
		{"E1", "HF"},
		{"E2", "Full Night"},
	})
	bio1 := sheetBytes(t, [][]string{
		{"Punch Report"},
		{"Emp Code", "Punch1", "Punch2"},
		{"E1", "09:00", "09:20"},
		{"E2", "22:00:00 - I", ""},
	})
	bio2 := sheetBytes(t, [][]string{
		{"Punch Report"},
		{"Emp Code", "Punch1"},
		{"E2", "06:00"},
	})
	return map[string][]byte{"attendance": roster, "biometric1": bio1, "biometric2": bio2}
}

func TestCompareAttendanceDownload(t *testing.T) {
	app := testApp()
	body, contentType := multipartBody(t, testUploads(t))
	req := httptest.NewRequest(http.MethodPost, "/api/compare", body)
	req.Header.Set("Content-Type", contentType)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "Attendance_with_Status_")

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	out, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer out.Close()
	rows, err := out.GetRows(out.GetSheetList()[0])
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "Match", rows[1][len(rows[1])-1])
	assert.Equal(t, "Match", rows[2][len(rows[2])-1])
}

func TestCompareAttendancePreview(t *testing.T) {
	app := testApp()
	body, contentType := multipartBody(t, testUploads(t))
	req := httptest.NewRequest(http.MethodPost, "/api/compare/preview", body)
	req.Header.Set("Content-Type", contentType)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var preview PreviewResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&preview))
	assert.True(t, preview.Success)
	assert.Equal(t, 2, preview.RowCount)
	assert.Equal(t, []string{"EMP ID", "SHIFT", "Status"}, preview.Headers)
	assert.Equal(t, 2, preview.StatusCounts["Match"])
	require.Len(t, preview.Rows, 2)
}

func TestCompareAttendanceMissingFile(t *testing.T) {
	app := testApp()
	uploads := testUploads(t)
	delete(uploads, "biometric2")
	body, contentType := multipartBody(t, uploads)
	req := httptest.NewRequest(http.MethodPost, "/api/compare", body)
	req.Header.Set("Content-Type", contentType)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var errResp ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&errResp))
	assert.False(t, errResp.Success)
	assert.Contains(t, errResp.Error, "biometric2")
}

func TestCompareAttendanceMalformedWorkbook(t *testing.T) {
	app := testApp()
	uploads := testUploads(t)
	uploads["attendance"] = []byte("not a workbook at all")
	body, contentType := multipartBody(t, uploads)
	req := httptest.NewRequest(http.MethodPost, "/api/compare", body)
	req.Header.Set("Content-Type", contentType)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	// The engine's failure message reaches the client verbatim
	var errResp ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&errResp))
	assert.Contains(t, errResp.Error, "attendance file")
}
