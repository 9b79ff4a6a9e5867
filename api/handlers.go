package api

import (
	"archive/zip"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"pdf_exporter/pagerange"
	pdfPkg "pdf_exporter/pdf"

	"github.com/gin-gonic/gin"
)

// ValidateRangesRequest is the form payload for range validation
type ValidateRangesRequest struct {
	Ranges    string `form:"ranges" binding:"required"`
	PageCount int    `form:"page_count" binding:"required,min=1"`
}

// HandleValidateRanges parses a page range expression against a page count
// and returns the resolved intervals without touching any PDF.
func HandleValidateRanges(c *gin.Context) {
	var req ValidateRangesRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ranges and page_count (>= 1) are required"})
		return
	}

	sel, err := pagerange.Parse(req.Ranges, req.PageCount)
	if err != nil {
		status, body := rangeErrorResponse(err)
		c.JSON(status, body)
		return
	}

	entries := make([]gin.H, len(sel))
	for i, e := range sel {
		entries[i] = gin.H{"first": e.First, "last": e.Last}
	}

	c.JSON(http.StatusOK, gin.H{
		"entries":        entries,
		"pages_selected": sel.PageCount(),
	})
}

// HandlePageCount reports how many pages an uploaded PDF has
func HandlePageCount(c *gin.Context, config *Config) {
	inFile, cleanup, ok := saveUploadedPDF(c, config, "info")
	if !ok {
		return
	}
	defer cleanup()

	pages, err := pdfPkg.GetPageCount(inFile)
	if err != nil {
		log.Printf("Page count error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to determine page count"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"pages": pages})
}

func HandleExtractPages(c *gin.Context, config *Config) {
	rangesParam := c.PostForm("ranges")
	if rangesParam == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No ranges specified"})
		return
	}
	optimize := c.PostForm("optimize") == "true"

	handlePDFFile(c, config, func(inFile, outFile string) error {
		return pdfPkg.ExtractPagesFromPDF(inFile, outFile, rangesParam, optimize)
	}, "extracted")
}

func HandleRemovePages(c *gin.Context, config *Config) {
	rangesParam := c.PostForm("ranges")
	if rangesParam == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No ranges specified"})
		return
	}

	handlePDFFile(c, config, func(inFile, outFile string) error {
		return pdfPkg.RemovePagesFromPDF(inFile, outFile, rangesParam)
	}, "pages_removed")
}

// HandleSplit extracts each range into its own PDF and returns them bundled
// in a zip, numbered in selection order.
func HandleSplit(c *gin.Context, config *Config) {
	rangesParam := c.PostForm("ranges")
	if rangesParam == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No ranges specified"})
		return
	}

	inFile, cleanup, ok := saveUploadedPDF(c, config, "split")
	if !ok {
		return
	}
	defer cleanup()

	partsDir := strings.TrimSuffix(inFile, ".pdf") + "_parts"
	parts, err := pdfPkg.SplitPDFByRanges(inFile, partsDir, rangesParam)
	if err != nil {
		os.RemoveAll(partsDir)
		status, body := rangeErrorResponse(err)
		c.JSON(status, body)
		return
	}

	c.Header("Content-Type", "application/zip")
	c.Header("Content-Disposition", `attachment; filename="split_pages.zip"`)

	zw := zip.NewWriter(c.Writer)
	for _, part := range parts {
		w, err := zw.Create(filepath.Base(part.File))
		if err != nil {
			log.Printf("Split zip error: %v", err)
			break
		}
		f, err := os.Open(part.File)
		if err != nil {
			log.Printf("Split zip error: %v", err)
			break
		}
		_, err = io.Copy(w, f)
		f.Close()
		if err != nil {
			log.Printf("Split zip error: %v", err)
			break
		}
	}
	if err := zw.Close(); err != nil {
		log.Printf("Split zip error: %v", err)
	}

	// Clean up part files after the archive is sent
	go func() {
		time.Sleep(SplitCleanupDelay)
		os.RemoveAll(partsDir)
	}()
}

// rangeErrorResponse maps an operation error onto an HTTP status and JSON
// body. Parse errors keep their structured context (kind, offending token,
// bounds) so clients can highlight the failing sub-expression.
func rangeErrorResponse(err error) (int, gin.H) {
	var perr *pagerange.ParseError
	if errors.As(err, &perr) {
		body := gin.H{
			"error": perr.Error(),
			"kind":  perr.Kind.String(),
			"token": perr.Token,
		}
		if perr.Kind == pagerange.OutOfRange {
			body["bound"] = perr.Bound
			body["page_count"] = perr.PageCount
		}
		return http.StatusBadRequest, body
	}

	if errors.Is(err, pagerange.ErrZeroPageCount) {
		return http.StatusUnprocessableEntity, gin.H{"error": "Document has no pages"}
	}

	// Truncate long error messages but include key info
	errorMsg := "PDF operation failed"
	if errStr := err.Error(); errStr != "" {
		if len(errStr) > 200 {
			errorMsg = errStr[:200] + "..."
		} else {
			errorMsg = errStr
		}
	}
	return http.StatusInternalServerError, gin.H{"error": errorMsg}
}

// saveUploadedPDF validates the multipart "pdf" file and writes it to a temp
// file. The returned cleanup removes it after a short delay so the response
// can finish streaming first.
func saveUploadedPDF(c *gin.Context, config *Config, suffix string) (string, func(), bool) {
	file, header, err := c.Request.FormFile("pdf")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No PDF file provided"})
		return "", nil, false
	}
	defer file.Close()

	if err := validatePDFFile(file, header, config.MaxFileSize); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return "", nil, false
	}

	if err := ensureTempDir(config.TempDir); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create temp directory"})
		return "", nil, false
	}

	uniqueID := generateUniqueID()
	inFile := filepath.Join(config.TempDir, suffix+"_"+uniqueID+".pdf")

	out, err := os.Create(inFile)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create temp file"})
		return "", nil, false
	}

	_, err = out.ReadFrom(file)
	out.Close()
	if err != nil {
		os.Remove(inFile) // Clean up on error
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save input file"})
		return "", nil, false
	}

	cleanup := func() {
		go func() {
			time.Sleep(FileCleanupDelay)
			os.Remove(inFile)
		}()
	}
	return inFile, cleanup, true
}

func handlePDFFile(c *gin.Context, config *Config, operation func(string, string) error, suffix string) {
	file, header, err := c.Request.FormFile("pdf")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No PDF file provided"})
		return
	}
	defer file.Close()

	// Validate PDF file
	if err := validatePDFFile(file, header, config.MaxFileSize); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// Create temp input file
	if err := ensureTempDir(config.TempDir); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create temp directory"})
		return
	}

	uniqueID := generateUniqueID()
	inFile := filepath.Join(config.TempDir, "input_"+uniqueID+".pdf")
	outFile := filepath.Join(config.TempDir, "output_"+uniqueID+"_"+suffix+".pdf")

	out, err := os.Create(inFile)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create temp file"})
		return
	}

	_, err = out.ReadFrom(file)
	out.Close()
	if err != nil {
		os.Remove(inFile) // Clean up on error
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save input file"})
		return
	}

	// Perform operation
	err = operation(inFile, outFile)
	if err != nil {
		os.Remove(inFile) // Clean up input file on error
		if _, statErr := os.Stat(outFile); statErr == nil {
			os.Remove(outFile) // Clean up output file if it exists
		}
		log.Printf("PDF operation error: %v", err)
		status, body := rangeErrorResponse(err)
		c.JSON(status, body)
		return
	}

	// Verify output file exists before sending
	if _, err := os.Stat(outFile); os.IsNotExist(err) {
		os.Remove(inFile)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "PDF operation did not produce output file"})
		return
	}

	// Set headers for file download
	c.Header("Content-Type", "application/pdf")

	// Get original filename from form if available, otherwise use default
	filename := "document_" + suffix + ".pdf"
	if header != nil {
		originalName := header.Filename
		// Remove .pdf extension if present, add suffix
		if strings.HasSuffix(strings.ToLower(originalName), ".pdf") {
			filename = originalName[:len(originalName)-4] + "_" + suffix + ".pdf"
		} else {
			filename = originalName + "_" + suffix + ".pdf"
		}
		filename = sanitizeFilename(filename)
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

	// Return the processed file for download
	c.File(outFile)

	// Clean up temp files after response is sent to avoid race conditions
	// Use defer with goroutine to wait for file transfer completion
	defer func() {
		go func() {
			// Wait a bit to ensure file transfer completes
			time.Sleep(FileCleanupDelay)
			os.Remove(inFile)
			os.Remove(outFile)
		}()
	}()
}

// ensureTempDir creates the temp directory if it doesn't exist
func ensureTempDir(tempDir string) error {
	return os.MkdirAll(tempDir, DefaultFilePermissions)
}

// sanitizeFilename removes path traversal attempts and dangerous characters
func sanitizeFilename(filename string) string {
	// Remove directory separators and path traversal attempts
	filename = strings.ReplaceAll(filename, "..", "")
	filename = strings.ReplaceAll(filename, "/", "_")
	filename = strings.ReplaceAll(filename, "\\", "_")

	// Get just the base filename to prevent path issues
	filename = filepath.Base(filename)

	// Remove any remaining dangerous characters
	filename = strings.TrimSpace(filename)

	// If empty after sanitization, use default
	if filename == "" {
		filename = "document.pdf"
	}

	return filename
}

// generateUniqueID generates a unique identifier for temp files
func generateUniqueID() string {
	// Use timestamp + random bytes for uniqueness
	b := make([]byte, 8)
	rand.Read(b)
	timestamp := time.Now().UnixNano()
	return fmt.Sprintf("%d_%s", timestamp, hex.EncodeToString(b))
}

// validatePDFFile checks if the file is a valid PDF by reading the header
func validatePDFFile(file multipart.File, header *multipart.FileHeader, maxSize int64) error {
	if header.Size > maxSize {
		return fmt.Errorf("file size %d exceeds maximum allowed %d bytes", header.Size, maxSize)
	}

	// Read first 4 bytes to check PDF header
	buffer := make([]byte, 4)
	n, err := file.Read(buffer)
	if err != nil && err != io.EOF {
		return fmt.Errorf("failed to read file header: %v", err)
	}

	if n >= 4 && string(buffer[:4]) != "%PDF" {
		return fmt.Errorf("invalid PDF file: header does not match")
	}

	// Seek back to beginning for subsequent reads
	_, err = file.Seek(0, 0)
	if err != nil {
		return fmt.Errorf("failed to reset file position: %v", err)
	}

	return nil
}
