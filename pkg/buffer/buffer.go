package buffer

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

// TailLines reads r to the end and keeps only the last maxLines lines in a
// ring buffer. It returns the kept lines joined by newlines and the total
// number of lines read.
func TailLines(r io.Reader, maxLines int) (string, int, error) {
	if maxLines <= 0 {
		return "", 0, fmt.Errorf("maxLines must be positive, got %d", maxLines)
	}

	lines := make([]string, maxLines)
	totalLines := 0
	writeIndex := 0

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		lines[writeIndex] = scanner.Text()
		totalLines++
		writeIndex = (writeIndex + 1) % maxLines
	}

	if err := scanner.Err(); err != nil {
		return "", totalLines, fmt.Errorf("failed to read content: %w", err)
	}

	linesInBuffer := min(totalLines, maxLines)

	startIndex := 0
	if totalLines > maxLines {
		startIndex = writeIndex
	}

	result := make([]string, 0, linesInBuffer)
	for i := 0; i < linesInBuffer; i++ {
		result = append(result, lines[(startIndex+i)%maxLines])
	}

	return strings.Join(result, "\n"), totalLines, nil
}

// TailBytes returns at most the last maxBytes bytes of s. The cut is moved
// forward to the next rune boundary so the result stays valid UTF-8.
func TailBytes(s string, maxBytes int) string {
	if maxBytes <= 0 {
		return ""
	}
	if len(s) <= maxBytes {
		return s
	}
	start := len(s) - maxBytes
	for start < len(s) && !utf8.RuneStart(s[start]) {
		start++
	}
	return s[start:]
}
