package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/matzehuels/hydrochem/pkg/errors"
	pkgio "github.com/matzehuels/hydrochem/pkg/io"
	"github.com/matzehuels/hydrochem/pkg/pipeline"
	"github.com/matzehuels/hydrochem/pkg/session"
	"github.com/matzehuels/hydrochem/pkg/table"
)

func newTestServer(t *testing.T, cfg Config) (*httptest.Server, *session.MemoryStore) {
	t.Helper()
	store := session.NewMemoryStore()
	s := New(cfg, pipeline.NewRunner(nil, nil, nil), store, nil)
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)
	return ts, store
}

func multipartBody(t *testing.T, filename string, data []byte) (io.Reader, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", filename)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := fw.Write(data); err != nil {
		t.Fatal(err)
	}
	if err := mw.Close(); err != nil {
		t.Fatal(err)
	}
	return &buf, mw.FormDataContentType()
}

func workbook(t *testing.T, tbl *table.Table) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := pkgio.WriteXLSX(&buf, tbl); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func upload(t *testing.T, ts *httptest.Server, filename string, data []byte) *http.Response {
	t.Helper()
	body, ctype := multipartBody(t, filename, data)
	resp, err := http.Post(ts.URL+"/uploads", ctype, body)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decode[T any](t *testing.T, r io.Reader) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(r).Decode(&v); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return v
}

func get(t *testing.T, url string) *http.Response {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestHealth(t *testing.T) {
	ts, _ := newTestServer(t, Config{})
	resp := get(t, ts.URL+"/healthz")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	body := decode[map[string]any](t, resp.Body)
	if body["status"] != "ok" {
		t.Errorf("body = %v", body)
	}
}

func TestIndex(t *testing.T) {
	ts, _ := newTestServer(t, Config{})
	resp := get(t, ts.URL+"/")
	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("Content-Type = %q", ct)
	}
	page, _ := io.ReadAll(resp.Body)
	for _, want := range []string{`value="piper"`, `value="schoeller"`, `value="meq/L"`, "/template.xlsx"} {
		if !bytes.Contains(page, []byte(want)) {
			t.Errorf("index page missing %s", want)
		}
	}
}

func TestTemplateDownload(t *testing.T) {
	ts, _ := newTestServer(t, Config{})
	resp := get(t, ts.URL+"/template.xlsx")
	if resp.Header.Get("Content-Type") != xlsxContentType {
		t.Errorf("Content-Type = %q", resp.Header.Get("Content-Type"))
	}
	res, err := pkgio.ReadXLSX(resp.Body)
	if err != nil {
		t.Fatalf("template is not a workbook: %v", err)
	}
	if res.Table.Len() != 5 {
		t.Errorf("template rows = %d, want 5", res.Table.Len())
	}
}

func TestUploadAndRender(t *testing.T) {
	ts, store := newTestServer(t, Config{})
	var buf bytes.Buffer
	if err := pkgio.WriteTemplate(&buf); err != nil {
		t.Fatal(err)
	}

	resp := upload(t, ts, "wells.xlsx", buf.Bytes())
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("upload status = %d", resp.StatusCode)
	}
	p := decode[Preview](t, resp.Body)
	if p.ID == "" || p.Filename != "wells.xlsx" || p.Rows != 5 {
		t.Fatalf("preview = %+v", p)
	}
	if len(p.Diagrams) != 4 {
		t.Fatalf("diagrams = %d, want 4", len(p.Diagrams))
	}
	if len(p.Colors) != 4 {
		t.Errorf("colors = %d, want 4", len(p.Colors))
	}
	if store.Len() != 1 {
		t.Errorf("stored sessions = %d, want 1", store.Len())
	}

	for _, d := range p.Diagrams {
		resp := get(t, ts.URL+d.URL)
		if resp.StatusCode != http.StatusOK {
			t.Errorf("%s: status = %d", d.URL, resp.StatusCode)
			continue
		}
		if resp.Header.Get("Content-Type") != "image/svg+xml" {
			t.Errorf("%s: Content-Type = %q", d.URL, resp.Header.Get("Content-Type"))
		}
		if resp.Header.Get("X-Rows-Kept") != "5" {
			t.Errorf("%s: X-Rows-Kept = %q", d.URL, resp.Header.Get("X-Rows-Kept"))
		}
	}

	resp = get(t, ts.URL+"/uploads/"+p.ID+"/diagrams/stiff.json?unit=meq")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("json status = %d", resp.StatusCode)
	}
	rows := decode[[]map[string]any](t, resp.Body)
	if len(rows) != 5 {
		t.Errorf("json rows = %d", len(rows))
	}

	resp = get(t, ts.URL+"/uploads/"+p.ID+"/preview")
	if resp.StatusCode != http.StatusOK {
		t.Errorf("preview status = %d", resp.StatusCode)
	}
}

func TestUploadErrors(t *testing.T) {
	ts, store := newTestServer(t, Config{MaxUploadBytes: 1 << 20})

	tests := []struct {
		name     string
		filename string
		data     []byte
		status   int
		code     errors.Code
	}{
		{"not xlsx", "wells.csv", []byte("a,b"), http.StatusBadRequest, errors.ErrCodeInvalidFilename},
		{"corrupt", "wells.xlsx", []byte("garbage"), http.StatusBadRequest, errors.ErrCodeInvalidSpreadsheet},
		{"too large", "wells.xlsx", make([]byte, 1<<20+10), http.StatusRequestEntityTooLarge, errors.ErrCodeTooLarge},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := upload(t, ts, tt.filename, tt.data)
			if resp.StatusCode != tt.status {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.status)
			}
			body := decode[errorResponse](t, resp.Body)
			if body.Code != tt.code {
				t.Errorf("code = %q, want %q", body.Code, tt.code)
			}
		})
	}
	if store.Len() != 0 {
		t.Errorf("failed uploads were stored: %d", store.Len())
	}
}

func TestUploadMissingField(t *testing.T) {
	ts, _ := newTestServer(t, Config{})
	resp, err := http.Post(ts.URL+"/uploads", "text/plain", strings.NewReader("x"))
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}

func TestDiagramNoPlottableRows(t *testing.T) {
	ts, _ := newTestServer(t, Config{})
	data := workbook(t, table.MustNew(
		table.NewText("Sample", []string{"a", "b"}),
		table.NewNumeric("Ca", []float64{1, 2}),
	))
	p := decode[Preview](t, upload(t, ts, "partial.xlsx", data).Body)

	resp := get(t, ts.URL+"/uploads/"+p.ID+"/diagrams/piper.svg")
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", resp.StatusCode)
	}
	var body struct {
		Code    errors.Code `json:"code"`
		Warning bool        `json:"warning"`
		Report  struct {
			Kept    int `json:"kept"`
			Dropped []struct {
				Missing []string `json:"missing"`
			} `json:"dropped"`
		} `json:"report"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if body.Code != errors.ErrCodeNoPlottableRows || !body.Warning {
		t.Errorf("body = %+v", body)
	}
	if len(body.Report.Dropped) != 2 {
		t.Errorf("dropped = %d, want 2", len(body.Report.Dropped))
	}
}

func TestDiagramErrors(t *testing.T) {
	ts, store := newTestServer(t, Config{})
	var buf bytes.Buffer
	if err := pkgio.WriteTemplate(&buf); err != nil {
		t.Fatal(err)
	}
	p := decode[Preview](t, upload(t, ts, "wells.xlsx", buf.Bytes()).Body)

	expired, err := session.New("old.xlsx", buf.Bytes(), time.Millisecond)
	if err != nil {
		t.Fatal(err)
	}
	expired.ExpiresAt = time.Now().Add(-time.Minute)
	if err := store.Set(context.Background(), expired); err != nil {
		t.Fatal(err)
	}

	base := ts.URL + "/uploads/" + p.ID + "/diagrams/"
	tests := []struct {
		name   string
		url    string
		status int
	}{
		{"unknown kind", base + "ternary.svg", http.StatusBadRequest},
		{"unknown format", base + "piper.gif", http.StatusBadRequest},
		{"no format", base + "piper", http.StatusBadRequest},
		{"bad unit", base + "piper.svg?unit=ppb", http.StatusBadRequest},
		{"bad width", base + "piper.svg?width=wide", http.StatusBadRequest},
		{"malformed id", ts.URL + "/uploads/nope/diagrams/piper.svg", http.StatusBadRequest},
		{"unknown session", ts.URL + "/uploads/00000000-0000-4000-8000-000000000000/diagrams/piper.svg", http.StatusNotFound},
		{"expired session", ts.URL + "/uploads/" + expired.ID + "/diagrams/piper.svg", http.StatusGone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := get(t, tt.url)
			if resp.StatusCode != tt.status {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.status)
			}
		})
	}
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		code errors.Code
		want int
	}{
		{errors.ErrCodeInvalidUnit, http.StatusBadRequest},
		{errors.ErrCodeNoPlottableRows, http.StatusUnprocessableEntity},
		{errors.ErrCodeSessionNotFound, http.StatusNotFound},
		{errors.ErrCodeSessionExpired, http.StatusGone},
		{errors.ErrCodeTooLarge, http.StatusRequestEntityTooLarge},
		{errors.ErrCodeUnsupported, http.StatusNotImplemented},
		{errors.ErrCodeInternal, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		if got := statusFor(errors.New(tt.code, "x")); got != tt.want {
			t.Errorf("statusFor(%s) = %d, want %d", tt.code, got, tt.want)
		}
	}
}

func TestSplitFile(t *testing.T) {
	kind, format, err := splitFile("durov.PNG")
	if err != nil || kind != "durov" || format != "png" {
		t.Errorf("splitFile = %q, %q, %v", kind, format, err)
	}
	for _, bad := range []string{"piper", ".svg", "piper."} {
		if _, _, err := splitFile(bad); err == nil {
			t.Errorf("splitFile(%q) should fail", bad)
		}
	}
}
