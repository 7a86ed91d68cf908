package service

import (
	"bufio"
	"bytes"
	"fmt"
	"os/exec"
	"regexp"
	"strconv"
	"strings"
)

// TextExtractor yields the plain text of one document file.
type TextExtractor interface {
	Extract(path string) (text string, pages int, err error)
}

// PDFService extracts text from PDF files using the poppler utilities
// (pdftotext, pdfinfo), which must be available on PATH.
type PDFService struct{}

func NewPDFService() *PDFService {
	return &PDFService{}
}

// Extract returns the cleaned full text of a PDF and its page count. An
// unreadable PDF is an error; ingestion aborts rather than indexing a
// partial document set.
func (s *PDFService) Extract(path string) (string, int, error) {
	pages, err := getNumPages(path)
	if err != nil {
		return "", 0, err
	}

	cmd := exec.Command("pdftotext", "-enc", "UTF-8", "-nopgbrk", path, "-")
	var out bytes.Buffer
	cmd.Stdout = &out
	if err := cmd.Run(); err != nil {
		return "", 0, fmt.Errorf("pdftotext failed for %s: %w", path, err)
	}

	text := cleanText(out.String())
	if text == "" {
		return "", 0, fmt.Errorf("no text extracted from %s", path)
	}
	return text, pages, nil
}

var pagesRe = regexp.MustCompile(`Pages:\s+(\d+)`)

// getNumPages uses pdfinfo to get the total number of pages in a PDF file.
func getNumPages(path string) (int, error) {
	cmd := exec.Command("pdfinfo", path)
	var out bytes.Buffer
	cmd.Stdout = &out

	if err := cmd.Run(); err != nil {
		return 0, fmt.Errorf("error running pdfinfo: %w", err)
	}

	scanner := bufio.NewScanner(&out)
	for scanner.Scan() {
		if matches := pagesRe.FindStringSubmatch(scanner.Text()); len(matches) == 2 {
			return strconv.Atoi(matches[1])
		}
	}

	return 0, fmt.Errorf("unable to determine page count from pdfinfo")
}

func cleanText(text string) string {
	replacements := map[string]string{
		"\u0000": "",   // Null character
		"\ufffd": "",   // Unicode replacement character
		"\u001b": "",   // Escape character
		"\r":     "",   // Carriage return
		"\f":     "\n", // Form feed to newline
	}
	cleaned := text
	for old, new := range replacements {
		cleaned = strings.ReplaceAll(cleaned, old, new)
	}
	return strings.TrimSpace(cleaned)
}

var _ TextExtractor = (*PDFService)(nil)
