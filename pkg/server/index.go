package server

import (
	"bytes"
	_ "embed"
	"html/template"
	"net/http"

	"github.com/matzehuels/hydrochem/pkg/buildinfo"
	"github.com/matzehuels/hydrochem/pkg/chem"
	"github.com/matzehuels/hydrochem/pkg/diagram"
)

//go:embed templates/index.html
var indexHTML string

var indexTemplate = template.Must(template.New("index").Parse(indexHTML))

type indexData struct {
	Kinds       []diagram.Kind
	Units       []chem.Unit
	MaxUploadMB int64
	Version     string
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	err := indexTemplate.Execute(&buf, indexData{
		Kinds:       diagram.Kinds,
		Units:       chem.Units,
		MaxUploadMB: s.cfg.MaxUploadBytes >> 20,
		Version:     buildinfo.Version,
	})
	if err != nil {
		s.writeError(w, r, err, nil)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(buf.Bytes())
}
