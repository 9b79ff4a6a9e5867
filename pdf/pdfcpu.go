package pdf

import (
	"context"
	"fmt"
	"os/exec"
	"regexp"
	"strconv"
	"time"
)

// CLI operation timeout constants
const (
	DefaultCLITimeout = 30 * time.Second
	SplitTimeout      = 60 * time.Second // splits run one pdfcpu call per range
)

// execCommandWithTimeout executes a command with a timeout
func execCommandWithTimeout(timeout time.Duration, name string, args ...string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, name, args...)
	output, err := cmd.CombinedOutput()

	if ctx.Err() == context.DeadlineExceeded {
		return nil, fmt.Errorf("command timed out after %v", timeout)
	}

	if err != nil {
		return output, fmt.Errorf("command failed: %v", err)
	}

	return output, nil
}

// CheckPdfcpu verifies that the pdfcpu CLI is available in PATH
func CheckPdfcpu() error {
	cmd := exec.Command("pdfcpu", "version")
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("pdfcpu command not found or not executable: %v", err)
	}
	return nil
}

// pageCountPatterns covers the page count line across pdfcpu versions
var pageCountPatterns = []*regexp.Regexp{
	regexp.MustCompile(`Page count:\s+(\d+)`), // pdfcpu v0.11.x
	regexp.MustCompile(`Pages:\s+(\d+)`),
	regexp.MustCompile(`No\. of pages:\s+(\d+)`),
}

// GetPageCount extracts the total number of pages from a PDF file
func GetPageCount(filename string) (int, error) {
	output, err := execCommandWithTimeout(DefaultCLITimeout, "pdfcpu", "info", filename)
	if err != nil {
		return 0, fmt.Errorf("pdfcpu info failed: %v", err)
	}

	outputStr := string(output)
	for _, re := range pageCountPatterns {
		matches := re.FindStringSubmatch(outputStr)
		if len(matches) > 1 {
			if pageCount, err := strconv.Atoi(matches[1]); err == nil {
				return pageCount, nil
			}
		}
	}

	return 0, fmt.Errorf("could not determine page count from output: %s", outputStr)
}
