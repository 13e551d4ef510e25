// AngelaMos | 2026
// export_test.go

package export

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keyurm111/eloska-luxe-showcase/internal/config"
)

type row struct {
	Name    string
	Message string
}

var rowColumns = []Column[row]{
	{Header: "Name", Value: func(r row) string { return r.Name }},
	{Header: "Message", Value: func(r row) string { return r.Message }},
}

func newTestExporter(t *testing.T, archiver Archiver) (*Exporter, string) {
	t.Helper()
	dir := t.TempDir()
	e := NewExporter(
		config.ExportConfig{TmpDir: dir},
		archiver,
		slog.New(slog.NewTextHandler(io.Discard, nil)),
	)
	e.now = func() time.Time { return time.Date(2026, 3, 14, 23, 0, 0, 0, time.UTC) }
	return e, dir
}

func TestWriteCSVQuotesFreeText(t *testing.T) {
	var buf bytes.Buffer
	rows := []row{
		{Name: "Asha", Message: "need 5 units, urgently"},
		{Name: "Ravi", Message: "line one\nline \"two\""},
	}
	require.NoError(t, WriteCSV(&buf, rowColumns, rows))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, []string{"Name", "Message"}, records[0])
	assert.Equal(t, "need 5 units, urgently", records[1][1])
	assert.Equal(t, "line one\nline \"two\"", records[2][1])
}

func TestStreamSetsHeadersAndRemovesFile(t *testing.T) {
	e, dir := newTestExporter(t, nil)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/export", nil)
	Stream(rec, req, e, "product-inquiries", rowColumns, []row{{Name: "A", Message: "B"}})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/csv; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Equal(
		t,
		`attachment; filename="product-inquiries-2026-03-14.csv"`,
		rec.Header().Get("Content-Disposition"),
	)
	assert.Equal(t, "Name,Message\nA,B\n", rec.Body.String())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestStreamEmptyRowsStillHasHeader(t *testing.T) {
	e, _ := newTestExporter(t, nil)

	rec := httptest.NewRecorder()
	Stream(rec, httptest.NewRequest(http.MethodGet, "/", nil), e, "newsletter", rowColumns, nil)

	assert.Equal(t, "Name,Message\n", rec.Body.String())
}

func TestStreamMissingTmpDir(t *testing.T) {
	e, _ := newTestExporter(t, nil)
	e.tmpDir = "/nonexistent/eloska/exports"

	rec := httptest.NewRecorder()
	Stream(rec, httptest.NewRequest(http.MethodGet, "/", nil), e, "newsletter", rowColumns, nil)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

type fakeS3 struct {
	key  string
	body string
	err  error
}

func (f *fakeS3) PutObject(
	_ context.Context,
	in *s3.PutObjectInput,
	_ ...func(*s3.Options),
) (*s3.PutObjectOutput, error) {
	f.key = *in.Key
	b, _ := io.ReadAll(in.Body)
	f.body = string(b)
	return &s3.PutObjectOutput{}, f.err
}

func TestStreamArchivesCopy(t *testing.T) {
	fake := &fakeS3{}
	archiver := &S3Archiver{client: fake, bucket: "eloska-exports", prefix: "exports/"}
	e, dir := newTestExporter(t, archiver)

	rec := httptest.NewRecorder()
	Stream(rec, httptest.NewRequest(http.MethodGet, "/", nil), e, "newsletter", rowColumns, []row{{Name: "x", Message: "y"}})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.HasPrefix(fake.key, "exports/newsletter/newsletter-2026-03-14-"), fake.key)
	assert.True(t, strings.HasSuffix(fake.key, ".csv"))
	assert.Equal(t, rec.Body.String(), fake.body)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestStreamArchiveFailureStillServes(t *testing.T) {
	fake := &fakeS3{err: errors.New("access denied")}
	archiver := &S3Archiver{client: fake, bucket: "b"}
	e, _ := newTestExporter(t, archiver)

	rec := httptest.NewRecorder()
	Stream(rec, httptest.NewRequest(http.MethodGet, "/", nil), e, "newsletter", rowColumns, []row{{Name: "x"}})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Name,Message\nx,\n", rec.Body.String())
}

func TestFormatHelpers(t *testing.T) {
	ts := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	assert.Equal(t, "2026-01-02T03:04:05Z", Time(ts))
	assert.Equal(t, "", Time(time.Time{}))
	assert.Equal(t, "", TimePtr(nil))
	assert.Equal(t, "a; b", Join([]string{"a", "b"}))
}
