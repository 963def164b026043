package server

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"

	"feesheet/internal/api"
	"feesheet/internal/fees"
	"feesheet/internal/logging"
)

//go:embed web/index.html.tmpl
var webFS embed.FS

// pageTitle heads the document and the browser tab.
const pageTitle = "Monthly Fees Calculator (" + api.Currency + ")"

// backgroundImage is looked up in the assets directory.
const backgroundImage = "background.png"

type pageData struct {
	Title      string
	Currency   string
	Background string
	Totals     []totalCard
	Grids      []gridSection
	Tiers      []api.TierView
	Boot       bootData
}

type totalCard struct {
	ID    string
	Label string
}

type gridSection struct {
	Category string
	Label    string
	Plural   string
	Icon     string
}

// bootData is handed to the page script as JSON.
type bootData struct {
	Fields         []api.FieldView `json:"fields"`
	ExportFilename string          `json:"exportFilename"`
}

var gridIcons = map[fees.Category]string{
	fees.CategoryMovie:  "🎬",
	fees.CategorySeries: "📺",
}

func parsePage() (*template.Template, error) {
	tmpl, err := template.ParseFS(webFS, "web/index.html.tmpl")
	if err != nil {
		return nil, fmt.Errorf("parse page template: %w", err)
	}
	return tmpl, nil
}

func (s *Server) pageData() pageData {
	data := pageData{
		Title:      pageTitle,
		Currency:   api.Currency,
		Background: backgroundImage,
		Tiers:      api.Rules().Tiers,
		Boot: bootData{
			Fields:         api.Fields(),
			ExportFilename: s.exportFilename(),
		},
	}
	for _, cat := range fees.Categories() {
		label := api.Label(string(cat))
		data.Totals = append(data.Totals, totalCard{ID: string(cat) + "Total", Label: label + " Total"})
		data.Grids = append(data.Grids, gridSection{
			Category: string(cat),
			Label:    label,
			Plural:   plural(label),
			Icon:     gridIcons[cat],
		})
	}
	data.Totals = append(data.Totals, totalCard{ID: "grandTotal", Label: "Grand Total"})
	return data
}

func plural(label string) string {
	if strings.HasSuffix(label, "s") {
		return label
	}
	return label + "s"
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := s.page.Execute(&buf, s.pageData()); err != nil {
		logging.ErrorWithContext(s.requestLogger(r), "page render failed", "page_render_failed",
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "check the embedded page template"),
		)
		s.writeError(w, http.StatusInternalServerError, "page render failed")
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

// handleAsset serves a file from the assets directory. Names that escape the
// directory are reported as missing.
func (s *Server) handleAsset(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	full, ok := resolveAsset(s.cfg.Paths.AssetsDir, name)
	if !ok {
		http.NotFound(w, r)
		return
	}
	info, err := os.Stat(full)
	if err != nil || info.IsDir() {
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			s.requestLogger(r).Warn("asset stat failed", logging.String("asset", name), logging.Error(err))
		}
		http.NotFound(w, r)
		return
	}
	http.ServeFile(w, r, full)
}

// resolveAsset maps a request path onto a file inside dir.
func resolveAsset(dir, name string) (string, bool) {
	dir = strings.TrimSpace(dir)
	if dir == "" || name == "" || strings.Contains(name, "\x00") || strings.Contains(name, "\\") {
		return "", false
	}
	if slices.Contains(strings.Split(name, "/"), "..") {
		return "", false
	}
	cleaned := path.Clean("/" + name)
	if cleaned == "/" {
		return "", false
	}
	rel := strings.TrimPrefix(cleaned, "/")
	if !fs.ValidPath(rel) {
		return "", false
	}
	root, err := filepath.Abs(dir)
	if err != nil {
		return "", false
	}
	full := filepath.Join(root, filepath.FromSlash(rel))
	within, err := filepath.Rel(root, full)
	if err != nil || within == ".." || strings.HasPrefix(within, ".."+string(filepath.Separator)) {
		return "", false
	}
	return full, true
}
