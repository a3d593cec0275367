// Package server implements the browser UI: a single-session form for
// pasting ETL code, the result views and the download endpoints. The request
// flow is strictly sequential; there is exactly one logical worker and the
// session state is simply overwritten on each mapping request.
package server

import (
	"fmt"
	"html/template"
	"io"
	"net/http"
	"strconv"
	"strings"
	"sync"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/ABHISHEKSUNDARAMOORTHI/Data-Lineage-Mapper/pkg/lineage"
	"github.com/ABHISHEKSUNDARAMOORTHI/Data-Lineage-Mapper/pkg/lineage/storage"
	"github.com/ABHISHEKSUNDARAMOORTHI/Data-Lineage-Mapper/pkg/lineage/visualizer"
	"github.com/ABHISHEKSUNDARAMOORTHI/Data-Lineage-Mapper/services"
)

// session is the per-process UI state: the last input, report and graph.
// Exactly one session is active at a time; the mutex only guards against
// concurrent browser requests hitting the same struct.
type session struct {
	mutex    sync.RWMutex
	input    string
	language string
	report   string
	graph    *lineage.Graph
	raw      *lineage.StructuredResponse
	warning  string
	darkMode bool
}

// Server wires the UI handlers together.
type Server struct {
	tmpl    *template.Template
	viz     *visualizer.Visualizer
	logger  *logrus.Logger
	session session

	// gatewayFn is swapped out in tests; everything else goes through the
	// process-wide singleton.
	gatewayFn  func() (lineage.Gateway, error)
	mapperOnce sync.Once
	mapper     *lineage.Mapper
	mapperErr  error
}

// New creates the web server.
func New() (*Server, error) {
	tmpl, err := template.New("page").Parse(pageTemplate)
	if err != nil {
		return nil, err
	}

	viz, err := visualizer.New()
	if err != nil {
		return nil, err
	}

	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	s := &Server{
		tmpl:      tmpl,
		viz:       viz,
		logger:    logger,
		gatewayFn: services.DefaultGateway,
	}
	s.session.input = placeholderCode
	s.session.language = "sql"
	s.session.darkMode = true
	return s, nil
}

// Router returns the HTTP handler for all UI routes.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/", s.handleIndex)
	r.Post("/lineage", s.handleMap)
	r.Post("/clear", s.handleClear)
	r.Post("/theme", s.handleTheme)
	r.Post("/import", s.handleImport)
	r.Get("/graph.html", s.handleGraphHTML)
	r.Get("/trace", s.handleTrace)
	r.Get("/download/report.md", s.handleDownloadReport)
	r.Get("/download/graph.json", s.handleDownloadGraph)
	r.Handle("/metrics", promhttp.Handler())

	return r
}

// getMapper initializes the model gateway on first use; an initialization
// failure (bad key, no compatible model) is remembered and surfaced to every
// subsequent request.
func (s *Server) getMapper() (*lineage.Mapper, error) {
	s.mapperOnce.Do(func() {
		gateway, err := s.gatewayFn()
		if err != nil {
			s.mapperErr = err
			return
		}
		s.mapper = lineage.NewMapper(gateway)
	})
	return s.mapper, s.mapperErr
}

type pageData struct {
	DarkMode        bool
	Warning         string
	Input           string
	Language        string
	HasResult       bool
	Report          string
	HasGraph        bool
	GraphDiagnostic string
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.session.mutex.Lock()
	data := pageData{
		DarkMode:  s.session.darkMode,
		Warning:   s.session.warning,
		Input:     s.session.input,
		Language:  s.session.language,
		HasResult: s.session.report != "" || s.session.raw != nil,
		Report:    s.session.report,
		HasGraph:  s.session.graph != nil,
	}
	if data.HasResult && !data.HasGraph {
		data.GraphDiagnostic = "No structured lineage data available to generate the graph."
		if s.session.raw != nil && s.session.raw.Error != "" {
			data.GraphDiagnostic = "Error generating graph data from AI: " + s.session.raw.Error
		}
	}
	s.session.warning = ""
	s.session.mutex.Unlock()

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.tmpl.Execute(w, data); err != nil {
		s.logger.WithError(err).Error("Failed to render page")
	}
}

func (s *Server) handleMap(w http.ResponseWriter, r *http.Request) {
	code := r.FormValue("code")
	language := r.FormValue("language")

	s.session.mutex.Lock()
	s.session.input = code
	if language != "" {
		s.session.language = language
	}
	s.session.mutex.Unlock()

	// Empty input never reaches the model, not even gateway initialization.
	if strings.TrimSpace(code) == "" {
		s.setWarning("Please paste some ETL code or SQL script to analyze.")
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	mapper, err := s.getMapper()
	if err != nil {
		s.setWarning(lineage.ErrorPrefix + "AI Service Error: " + err.Error())
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	// The UI blocks here; both model calls run sequentially.
	result, err := mapper.Map(r.Context(), code)
	if err != nil {
		s.setWarning("Please paste some ETL code or SQL script to analyze.")
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	s.session.mutex.Lock()
	s.session.report = result.Report
	s.session.graph = result.Graph
	s.session.raw = result.Raw
	s.session.mutex.Unlock()

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleClear(w http.ResponseWriter, r *http.Request) {
	s.session.mutex.Lock()
	s.session.input = placeholderCode
	s.session.report = ""
	s.session.graph = nil
	s.session.raw = nil
	s.session.warning = ""
	s.session.mutex.Unlock()

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleTheme(w http.ResponseWriter, r *http.Request) {
	s.session.mutex.Lock()
	s.session.darkMode = !s.session.darkMode
	s.session.mutex.Unlock()

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	url := r.FormValue("url")
	if url == "" {
		s.setWarning("Please provide a URL to import code from.")
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	resp, err := services.DefaultHttpClient().Get(url)
	if err != nil {
		s.setWarning(fmt.Sprintf("Failed to fetch URL: %v", err))
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		s.setWarning(fmt.Sprintf("Failed to read response body: %v", err))
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	content := string(body)
	if strings.Contains(resp.Header.Get("Content-Type"), "text/html") {
		if md, err := htmltomarkdown.ConvertString(content); err == nil {
			content = md
		}
	}

	s.session.mutex.Lock()
	s.session.input = content
	s.session.mutex.Unlock()

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleGraphHTML(w http.ResponseWriter, r *http.Request) {
	s.session.mutex.RLock()
	graph := s.session.graph
	s.session.mutex.RUnlock()

	if graph == nil {
		http.Error(w, "no lineage graph available", http.StatusNotFound)
		return
	}

	out, err := s.viz.Render(graph)
	if err != nil {
		s.logger.WithError(err).Error("Failed to render graph visualization")
		http.Error(w, "failed to render graph", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(out)
}

func (s *Server) handleTrace(w http.ResponseWriter, r *http.Request) {
	s.session.mutex.RLock()
	graph := s.session.graph
	s.session.mutex.RUnlock()

	if graph == nil {
		http.Error(w, "no lineage graph available", http.StatusNotFound)
		return
	}

	nodeID := r.URL.Query().Get("node")
	if nodeID == "" {
		http.Error(w, "node query parameter is required", http.StatusBadRequest)
		return
	}

	dir := lineage.Upstream
	if d := r.URL.Query().Get("dir"); d != "" {
		dir = lineage.Direction(d)
	}

	depth := 5
	if d := r.URL.Query().Get("depth"); d != "" {
		n, err := strconv.Atoi(d)
		if err != nil || n <= 0 {
			http.Error(w, "depth must be a positive integer", http.StatusBadRequest)
			return
		}
		depth = n
	}

	nodes, err := graph.Trace(nodeID, dir, depth)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprintf(w, "%s trace from %s (%d nodes)\n", dir, nodeID, len(nodes))
	for _, node := range nodes {
		fmt.Fprintf(w, "%s\t%s\t%s\n", node.ID, node.Label, node.Group)
	}
}

func (s *Server) handleDownloadReport(w http.ResponseWriter, r *http.Request) {
	s.session.mutex.RLock()
	report := s.session.report
	s.session.mutex.RUnlock()

	if report == "" {
		http.Error(w, "no report available", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="data_lineage_report.md"`)
	w.Write([]byte(report))
}

func (s *Server) handleDownloadGraph(w http.ResponseWriter, r *http.Request) {
	s.session.mutex.RLock()
	graph := s.session.graph
	s.session.mutex.RUnlock()

	if graph == nil {
		http.Error(w, "no lineage graph available", http.StatusNotFound)
		return
	}

	data, err := storage.MarshalGraph(graph)
	if err != nil {
		http.Error(w, "failed to encode graph", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="data_lineage_structured.json"`)
	w.Write(data)
}

func (s *Server) setWarning(msg string) {
	s.session.mutex.Lock()
	s.session.warning = msg
	s.session.mutex.Unlock()
}
