package server

import (
	"bytes"
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/hydrochem/pkg/buildinfo"
	"github.com/matzehuels/hydrochem/pkg/diagram"
	"github.com/matzehuels/hydrochem/pkg/errors"
	pkgio "github.com/matzehuels/hydrochem/pkg/io"
	"github.com/matzehuels/hydrochem/pkg/normalize"
	"github.com/matzehuels/hydrochem/pkg/palette"
	"github.com/matzehuels/hydrochem/pkg/pipeline"
	"github.com/matzehuels/hydrochem/pkg/session"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Preview describes a stored upload: a head of the raw sheet, the label
// colors, and per diagram which rows are plottable.
type Preview struct {
	ID          string           `json:"id"`
	Filename    string           `json:"filename"`
	ExpiresAt   time.Time        `json:"expires_at"`
	Sheet       string           `json:"sheet"`
	Rows        int              `json:"rows"`
	Columns     []string         `json:"columns"`
	Head        []map[string]any `json:"head"`
	Coerced     []pkgio.CellRef  `json:"coerced,omitempty"`
	BlankRows   int              `json:"blank_rows,omitempty"`
	Completed   []string         `json:"completed,omitempty"`
	LabelSource string           `json:"label_source"`
	Colors      []palette.Entry  `json:"colors"`
	Diagrams    []DiagramSummary `json:"diagrams"`
}

// DiagramSummary is the row selection for one diagram kind plus the URL of
// its SVG rendering.
type DiagramSummary struct {
	*normalize.Selection
	URL string `json:"url"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, struct {
		Status string         `json:"status"`
		Build  buildinfo.Info `json:"build"`
	}{"ok", buildinfo.Get()})
}

func (s *Server) handleTemplate(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := pkgio.WriteTemplate(&buf); err != nil {
		s.writeError(w, r, err, nil)
		return
	}
	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="hydrochem-template.xlsx"`)
	_, _ = w.Write(buf.Bytes())
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	// Leave room for the multipart envelope around the file itself.
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes+1<<20)
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		s.writeError(w, r, uploadError(err), nil)
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, hdr, err := r.FormFile("file")
	if err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInvalidInput, err, "form field \"file\" is required"), nil)
		return
	}
	defer file.Close()

	if err := errors.ValidateUploadFilename(hdr.Filename); err != nil {
		s.writeError(w, r, err, nil)
		return
	}
	data, err := io.ReadAll(io.LimitReader(file, s.cfg.MaxUploadBytes+1))
	if err != nil {
		s.writeError(w, r, uploadError(err), nil)
		return
	}
	if int64(len(data)) > s.cfg.MaxUploadBytes {
		s.writeError(w, r, tooLarge(s.cfg.MaxUploadBytes), nil)
		return
	}

	sess, err := session.New(hdr.Filename, data, s.cfg.SessionTTL)
	if err != nil {
		s.writeError(w, r, err, nil)
		return
	}
	// Build the preview first so unreadable workbooks are never stored.
	p, err := s.preview(r.Context(), sess)
	if err != nil {
		s.writeError(w, r, err, nil)
		return
	}
	if err := s.store.Set(r.Context(), sess); err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInternal, err, "store session"), nil)
		return
	}

	s.logger.Info("upload stored", "session", sess.ID, "file", sess.Filename, "rows", p.Rows)
	w.Header().Set("Location", "/uploads/"+sess.ID+"/preview")
	writeJSON(w, http.StatusCreated, p)
}

func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	sess, err := s.session(r)
	if err != nil {
		s.writeError(w, r, err, nil)
		return
	}
	p, err := s.preview(r.Context(), sess)
	if err != nil {
		s.writeError(w, r, err, nil)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) handleDiagram(w http.ResponseWriter, r *http.Request) {
	sess, err := s.session(r)
	if err != nil {
		s.writeError(w, r, err, nil)
		return
	}
	kind, format, err := splitFile(chi.URLParam(r, "file"))
	if err != nil {
		s.writeError(w, r, err, nil)
		return
	}

	q := r.URL.Query()
	width, err := intParam(q.Get("width"), "width")
	if err != nil {
		s.writeError(w, r, err, nil)
		return
	}
	height, err := intParam(q.Get("height"), "height")
	if err != nil {
		s.writeError(w, r, err, nil)
		return
	}

	runner := *s.runner
	runner.Keyer = sess.Keyer()
	res, err := runner.Execute(r.Context(), sess.Data, pipeline.Options{
		Kind:    kind,
		Formats: []string{format},
		Unit:    q.Get("unit"),
		Title:   q.Get("title"),
		Width:   width,
		Height:  height,
		Source:  sess.Filename,
	})
	if err != nil {
		var report any
		if res != nil && res.Report != nil {
			report = res.Report
		}
		s.writeError(w, r, err, report)
		return
	}

	w.Header().Set("Content-Type", pipeline.ContentTypes[format])
	w.Header().Set("Content-Disposition", fmt.Sprintf(`inline; filename="%s.%s"`, res.Report.Kind, format))
	w.Header().Set("X-Rows-Kept", strconv.Itoa(res.Stats.Kept))
	w.Header().Set("X-Rows-Dropped", strconv.Itoa(res.Stats.Dropped))
	_, _ = w.Write(res.Artifacts[format])
}

// session loads the session named by the {id} route parameter.
func (s *Server) session(r *http.Request) (*session.Session, error) {
	id := chi.URLParam(r, "id")
	if err := errors.ValidateSessionID(id); err != nil {
		return nil, err
	}
	return s.store.Get(r.Context(), id)
}

func (s *Server) preview(ctx context.Context, sess *session.Session) (*Preview, error) {
	up, err := s.runner.Load(ctx, sess.Data, pipeline.Options{Source: sess.Filename})
	if err != nil {
		return nil, err
	}
	wb := up.Workbook
	p := &Preview{
		ID:          sess.ID,
		Filename:    sess.Filename,
		ExpiresAt:   sess.ExpiresAt,
		Sheet:       wb.Sheet,
		Rows:        wb.Table.Len(),
		Columns:     wb.Headers,
		Head:        wb.Table.Head(previewRows).Records(),
		Coerced:     wb.Coerced,
		BlankRows:   wb.Blank,
		Completed:   up.Prepared.Completed,
		LabelSource: up.Prepared.LabelSource,
		Colors:      up.Prepared.Colors.Entries(),
	}
	for _, k := range diagram.Kinds {
		sel, err := up.Prepared.Report(k)
		if err != nil {
			return nil, err
		}
		p.Diagrams = append(p.Diagrams, DiagramSummary{
			Selection: sel,
			URL:       fmt.Sprintf("/uploads/%s/diagrams/%s.svg", sess.ID, k),
		})
	}
	return p, nil
}

// splitFile splits "piper.svg" into kind and format.
func splitFile(file string) (kind, format string, err error) {
	i := strings.LastIndexByte(file, '.')
	if i <= 0 || i == len(file)-1 {
		return "", "", errors.New(errors.ErrCodeInvalidFormat, "diagram path must be {kind}.{format}, got %q", file)
	}
	return file[:i], strings.ToLower(file[i+1:]), nil
}

func intParam(v, name string) (int, error) {
	if v == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0, errors.New(errors.ErrCodeInvalidInput, "%s must be a non-negative integer", name)
	}
	return n, nil
}

func uploadError(err error) error {
	var mbe *http.MaxBytesError
	if stderrors.As(err, &mbe) {
		return tooLarge(mbe.Limit)
	}
	return errors.Wrap(errors.ErrCodeInvalidInput, err, "expected a multipart form with a \"file\" field")
}

func tooLarge(limit int64) error {
	return errors.New(errors.ErrCodeTooLarge, "upload exceeds %d MB", limit>>20)
}
