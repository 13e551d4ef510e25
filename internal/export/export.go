// AngelaMos | 2026
// export.go

package export

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/keyurm111/eloska-luxe-showcase/internal/config"
	"github.com/keyurm111/eloska-luxe-showcase/internal/core"
)

const dateLayout = "2006-01-02"

// Column is one CSV column: its header and how to read the cell from a row.
type Column[T any] struct {
	Header string
	Value  func(T) string
}

// Archiver keeps a copy of a finished export somewhere durable.
type Archiver interface {
	Archive(ctx context.Context, key string, body io.ReadSeeker) error
}

type Exporter struct {
	tmpDir   string
	archiver Archiver
	logger   *slog.Logger
	now      func() time.Time
}

func NewExporter(cfg config.ExportConfig, archiver Archiver, logger *slog.Logger) *Exporter {
	return &Exporter{
		tmpDir:   cfg.TmpDir,
		archiver: archiver,
		logger:   logger,
		now:      time.Now,
	}
}

// Filename is "<resource>-YYYY-MM-DD.csv" for the current UTC date.
func (e *Exporter) Filename(resource string) string {
	return fmt.Sprintf("%s-%s.csv", resource, e.now().UTC().Format(dateLayout))
}

// Stream writes rows as CSV to a temporary file, optionally archives it,
// then sends it as an attachment. The temporary file is removed on every
// path.
func Stream[T any](
	w http.ResponseWriter,
	r *http.Request,
	e *Exporter,
	resource string,
	columns []Column[T],
	rows []T,
) {
	f, err := os.CreateTemp(e.tmpDir, resource+"-*.csv")
	if err != nil {
		core.InternalServerError(w, fmt.Errorf("create export file: %w", err))
		return
	}
	defer func() {
		_ = f.Close() //nolint:errcheck // already flushed or failed
		if err := os.Remove(f.Name()); err != nil && !os.IsNotExist(err) {
			e.logger.Warn("remove export file", "path", f.Name(), "error", err)
		}
	}()

	if err := WriteCSV(f, columns, rows); err != nil {
		core.InternalServerError(w, err)
		return
	}

	filename := e.Filename(resource)

	if e.archiver != nil {
		if _, err := f.Seek(0, io.SeekStart); err == nil {
			if err := e.archiver.Archive(r.Context(), resource+"/"+filename, f); err != nil {
				e.logger.Warn("archive export", "resource", resource, "error", err)
			}
		}
	}

	if _, err := f.Seek(0, io.SeekStart); err != nil {
		core.InternalServerError(w, fmt.Errorf("rewind export file: %w", err))
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	w.WriteHeader(http.StatusOK)

	if _, err := io.Copy(w, f); err != nil {
		e.logger.Warn("stream export", "resource", resource, "error", err)
	}
}

// WriteCSV writes a header row then one record per row. Fields holding
// delimiters, quotes or newlines are quoted.
func WriteCSV[T any](out io.Writer, columns []Column[T], rows []T) error {
	cw := csv.NewWriter(out)

	header := make([]string, len(columns))
	for i, c := range columns {
		header[i] = c.Header
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	record := make([]string, len(columns))
	for _, row := range rows {
		for i, c := range columns {
			record[i] = c.Value(row)
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}

func Time(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

func TimePtr(t *time.Time) string {
	if t == nil {
		return ""
	}
	return Time(*t)
}

func Join(values []string) string {
	return strings.Join(values, "; ")
}
