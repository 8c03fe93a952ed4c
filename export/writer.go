package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"meetlens/models"
	"meetlens/utils"
)

// FileBase is the stem of every downloaded file name.
const FileBase = "meeting-analysis"

// Writer saves exports into a download directory as
// meeting-analysis-YYYY-MM-DD.<ext>.
type Writer struct {
	dir    string
	indent string
	now    func() time.Time
}

func NewWriter(dir string) *Writer {
	return &Writer{
		dir:    dir,
		indent: "  ",
		now:    time.Now,
	}
}

// WithClock replaces the clock used to date file names.
func (w *Writer) WithClock(now func() time.Time) *Writer {
	w.now = now
	return w
}

// WriteJSON saves result as indented JSON and returns the file path. Fields
// the client does not know about are written as received.
func (w *Writer) WriteJSON(result *models.AnalysisResult) (string, error) {
	if result == nil {
		return "", fmt.Errorf("no analysis result to write")
	}

	data, err := json.Marshal(result)
	if err != nil {
		return "", fmt.Errorf("encoding analysis result: %w", err)
	}

	var out bytes.Buffer
	if err := json.Indent(&out, data, "", w.indent); err != nil {
		return "", fmt.Errorf("formatting analysis result: %w", err)
	}
	out.WriteByte('\n')

	return w.WriteBlob(out.Bytes(), "json")
}

// WriteBlob saves data under a dated name with the given extension.
func (w *Writer) WriteBlob(data []byte, extension string) (string, error) {
	if err := utils.EnsureDirectory(w.dir); err != nil {
		return "", err
	}

	filename := filepath.Join(w.dir, utils.DatedFilename(FileBase, w.now().UTC(), extension))
	if err := w.writeToFile(filename, data); err != nil {
		return "", fmt.Errorf("writing %s: %w", filename, err)
	}
	return filename, nil
}

func (w *Writer) writeToFile(filename string, content []byte) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	return writeAndClose(file, content)
}

// writeAndClose returns the Close error when the write itself succeeded.
func writeAndClose(wc io.WriteCloser, content []byte) (err error) {
	defer func() {
		if cerr := wc.Close(); err == nil {
			err = cerr
		}
	}()

	_, err = wc.Write(content)
	return err
}
