// Package ui serves a small HTTP playground for the grammar.
package ui

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"net/http"
	"os"
	"strings"

	"github.com/tliron/commonlog"

	"github.com/dhamidi/parsec/format"
	"github.com/dhamidi/parsec/grammar"
	"github.com/dhamidi/parsec/parsec"
)

//go:embed static templates
var embeddedFS embed.FS

const maxBodySize = 1 << 20

type Server struct {
	staticFS   fs.FS
	templateFS fs.FS
	mux        *http.ServeMux
	log        commonlog.Logger
}

// NewServer builds the playground. Files under ui/static and ui/templates
// in the working directory take precedence over the embedded copies.
func NewServer() (*Server, error) {
	staticFS := overlayFS("ui/static", mustSub(embeddedFS, "static"))
	templateFS := overlayFS("ui/templates", mustSub(embeddedFS, "templates"))

	if _, err := template.ParseFS(templateFS, "*.html"); err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	s := &Server{
		staticFS:   staticFS,
		templateFS: templateFS,
		mux:        http.NewServeMux(),
		log:        commonlog.GetLogger("parsec.ui"),
	}

	s.mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.FS(staticFS))))
	s.mux.HandleFunc("POST /parse", s.handleParse)
	s.mux.HandleFunc("GET /grammar", s.handleGrammar)
	s.mux.HandleFunc("GET /{$}", s.handleIndex)

	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.log.Debugf("%s %s", r.Method, r.URL.Path)
	s.mux.ServeHTTP(w, r)
}

func (s *Server) render(w http.ResponseWriter, name string, data any) {
	tmpl, err := template.ParseFS(s.templateFS, "*.html")
	if err != nil {
		http.Error(w, "template error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := tmpl.ExecuteTemplate(w, name, data); err != nil {
		s.log.Errorf("render %s: %s", name, err)
	}
}

// ParseResult is the answer to POST /parse.
type ParseResult struct {
	OK     bool     `json:"ok"`
	Value  any      `json:"value"`
	Text   string   `json:"text"`
	Errors []string `json:"errors"`
	Line   int      `json:"line"`
	Column int      `json:"column"`
}

type pageData struct {
	Input   string
	Format  string
	Formats []string
	Result  *ParseResult
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.render(w, "index.html", pageData{Format: "text", Formats: format.Names()})
}

func (s *Server) handleGrammar(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	io.WriteString(w, grammar.EBNF())
}

func (s *Server) handleParse(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)

	input, formatName, err := readInput(r)
	if err != nil {
		http.Error(w, "invalid request: "+err.Error(), http.StatusBadRequest)
		return
	}

	result, err := parse(input, formatName)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if strings.Contains(r.Header.Get("Accept"), "text/html") {
		s.render(w, "index.html", pageData{
			Input:   input,
			Format:  formatName,
			Formats: format.Names(),
			Result:  result,
		})
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(result); err != nil {
		s.log.Errorf("encode response: %s", err)
	}
}

// readInput takes the document from the form field "text" for form posts
// and from the raw body otherwise.
func readInput(r *http.Request) (string, string, error) {
	formatName := r.URL.Query().Get("format")

	contentType := r.Header.Get("Content-Type")
	if strings.HasPrefix(contentType, "application/x-www-form-urlencoded") ||
		strings.HasPrefix(contentType, "multipart/form-data") {
		if err := r.ParseMultipartForm(maxBodySize); err != nil && !errors.Is(err, http.ErrNotMultipart) {
			return "", "", err
		}
		if f := r.FormValue("format"); f != "" {
			formatName = f
		}
		return r.FormValue("text"), orDefault(formatName), nil
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		return "", "", err
	}
	return string(body), orDefault(formatName), nil
}

func orDefault(formatName string) string {
	if formatName == "" {
		return "text"
	}
	return formatName
}

func parse(input, formatName string) (*ParseResult, error) {
	var out strings.Builder
	enc, err := format.New(formatName, &out)
	if err != nil {
		return nil, err
	}

	v, err := grammar.Parse(input)
	if err != nil {
		result := &ParseResult{Errors: []string{err.Error()}}
		var perr *parsec.ParseError
		if errors.As(err, &perr) {
			result.Errors = perr.Expected
			result.Line = perr.Position.Line
			result.Column = perr.Position.Column
		}
		return result, nil
	}

	if err := enc.Encode(v); err != nil {
		return nil, fmt.Errorf("encode %s: %w", formatName, err)
	}
	return &ParseResult{
		OK:     true,
		Value:  v.Interface(),
		Text:   out.String(),
		Errors: []string{},
	}, nil
}

func mustSub(fsys fs.FS, dir string) fs.FS {
	sub, err := fs.Sub(fsys, dir)
	if err != nil {
		panic(err)
	}
	return sub
}

type overlayFSType struct {
	primary   fs.FS
	secondary fs.FS
}

func overlayFS(primaryPath string, secondary fs.FS) fs.FS {
	return &overlayFSType{
		primary:   os.DirFS(primaryPath),
		secondary: secondary,
	}
}

func (o *overlayFSType) Open(name string) (fs.File, error) {
	f, err := o.primary.Open(name)
	if err == nil {
		return f, nil
	}
	return o.secondary.Open(name)
}

func (o *overlayFSType) ReadDir(name string) ([]fs.DirEntry, error) {
	entries := make(map[string]fs.DirEntry)

	if rd, ok := o.secondary.(fs.ReadDirFS); ok {
		if list, err := rd.ReadDir(name); err == nil {
			for _, e := range list {
				entries[e.Name()] = e
			}
		}
	}

	if rd, ok := o.primary.(fs.ReadDirFS); ok {
		if list, err := rd.ReadDir(name); err == nil {
			for _, e := range list {
				entries[e.Name()] = e
			}
		}
	}

	result := make([]fs.DirEntry, 0, len(entries))
	for _, e := range entries {
		result = append(result, e)
	}
	return result, nil
}
