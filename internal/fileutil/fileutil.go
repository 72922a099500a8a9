package fileutil

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/atomic"
)

type progressWriter struct {
	writer       io.Writer
	totalBytes   uint64
	writtenBytes uint64
	progress     *atomic.Float64
}

func (pw *progressWriter) Write(p []byte) (int, error) {
	n, err := pw.writer.Write(p)
	if n > 0 && pw.progress != nil && pw.totalBytes > 0 {
		pw.writtenBytes += uint64(n)
		pw.progress.Store(float64(pw.writtenBytes) / float64(pw.totalBytes))
	}
	return n, err
}

// CopyFile copies src to dest verbatim, creating parent directories as
// needed. A non-nil progress receives the completed fraction as the copy
// advances; pass nil when nobody is watching.
func CopyFile(src, dest string, progress *atomic.Float64) error {
	sourceFile, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("failed to open source file: %w", err)
	}
	defer sourceFile.Close()

	info, err := sourceFile.Stat()
	if err != nil {
		return fmt.Errorf("failed to stat source file: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
		return fmt.Errorf("failed to create destination directory: %w", err)
	}

	destinationFile, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("failed to create destination file: %w", err)
	}
	defer destinationFile.Close()

	writer := io.Writer(destinationFile)
	if progress != nil && info.Size() > 0 {
		writer = &progressWriter{
			writer:     destinationFile,
			totalBytes: uint64(info.Size()),
			progress:   progress,
		}
	}

	_, err = io.Copy(writer, sourceFile)
	if err != nil {
		return fmt.Errorf("failed to copy file contents: %w", err)
	}

	err = destinationFile.Sync()
	if err != nil {
		return fmt.Errorf("failed to sync destination file: %w", err)
	}

	return nil
}

func FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// SplitLines splits data into lines that keep their terminators, so joining
// them back reproduces the input exactly, CRLF endings and a missing final
// newline included.
func SplitLines(data []byte) []string {
	lines := strings.SplitAfter(string(data), "\n")
	if n := len(lines); n > 0 && lines[n-1] == "" {
		lines = lines[:n-1]
	}
	return lines
}

// ReadLines reads a whole file into terminator-preserving lines.
func ReadLines(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return SplitLines(data), nil
}

// WriteLines joins terminator-preserving lines and writes them back.
func WriteLines(path string, lines []string) error {
	if err := os.WriteFile(path, []byte(strings.Join(lines, "")), 0644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	return nil
}
