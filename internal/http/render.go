package http

import (
	"bytes"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"path"
	"strings"

	"spendsmart/internal/auth"
	"spendsmart/internal/core"
	"spendsmart/internal/log"
)

type navItem struct {
	Path  string
	Label string
}

var navItems = []navItem{
	{Path: "/dashboard", Label: "Dashboard"},
	{Path: "/transactions", Label: "Transactions"},
	{Path: "/categories", Label: "Categories"},
	{Path: "/reports", Label: "Reports"},
	{Path: "/profile", Label: "Profile"},
}

var pageTitles = map[string]string{
	"landing":         "Track your money",
	"loading":         "Loading",
	"error":           "Something went wrong",
	"login":           "Login",
	"register":        "Create account",
	"verify_otp":      "Verify email",
	"forgot_password": "Forgot password",
	"reset_password":  "Reset password",
	"dashboard":       "Dashboard",
	"transactions":    "Transactions",
	"categories":      "Categories",
	"reports":         "Reports",
	"report_print":    "Expense report",
	"profile":         "Profile",
}

// pageData is the root value every page template is executed with.
type pageData struct {
	Title         string
	Path          string
	Authenticated bool
	User          *core.User
	Flash         *flash
	Data          any
}

type errorView struct {
	Message string
}

func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"money":     core.FormatAmount,
		"longDate":  longDate,
		"longTime":  longTime,
		"lower":     strings.ToLower,
		"typeLabel": typeLabel,
		"percent":   func(p float64) string { return fmt.Sprintf("%.1f%%", p) },
		"barWidth":  barWidth,
		"navItems":  func() []navItem { return navItems },
	}
}

func longDate(d core.Date) string {
	if d.IsZero() {
		return ""
	}
	return d.Format("January 2, 2006")
}

func longTime(ts core.Timestamp) string {
	if ts.IsZero() {
		return ""
	}
	return ts.Format("January 2, 2006 15:04")
}

func typeLabel(t core.TransactionType) string {
	switch t {
	case core.Income:
		return "Income"
	case core.Expense:
		return "Expense"
	}
	return ""
}

func barWidth(p float64) string {
	switch {
	case p < 0:
		p = 0
	case p > 100:
		p = 100
	}
	return fmt.Sprintf("%.1f", p)
}

// renderer holds one template set per page: the layout, every partial and
// the page's own "content" definition.
type renderer struct {
	pages map[string]*template.Template
}

func newRenderer(fsys fs.FS) (*renderer, error) {
	files, err := fs.Glob(fsys, "templates/pages/*.html")
	if err != nil {
		return nil, fmt.Errorf("list page templates: %w", err)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no page templates found")
	}

	pages := make(map[string]*template.Template, len(files))
	for _, file := range files {
		name := strings.TrimSuffix(path.Base(file), ".html")
		t, err := template.New(name).Funcs(templateFuncs()).ParseFS(fsys,
			"templates/layout.html", "templates/partials/*.html", file)
		if err != nil {
			return nil, fmt.Errorf("parse page %s: %w", name, err)
		}
		pages[name] = t
	}
	return &renderer{pages: pages}, nil
}

func (rd *renderer) execute(buf *bytes.Buffer, page string, data pageData) error {
	t, ok := rd.pages[page]
	if !ok {
		return fmt.Errorf("unknown page %q", page)
	}
	return t.ExecuteTemplate(buf, "layout", data)
}

// render writes page with the session state of the request. The flash
// cookie, if any, is consumed here.
func (s *Server) render(w http.ResponseWriter, r *http.Request, status int, page string, data any) {
	st := auth.FromContext(r.Context()).State()
	pd := pageData{
		Title:         pageTitles[page],
		Path:          r.URL.Path,
		Authenticated: st.IsAuthenticated,
		User:          st.User,
		Flash:         popFlash(w, r),
		Data:          data,
	}

	var buf bytes.Buffer
	if err := s.renderer.execute(&buf, page, pd); err != nil {
		log.FromContext(r.Context()).WithComponent(log.ComponentTemplate).ErrorContext(r.Context(),
			"Template execution failed", "page", page, log.FieldError, err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func (s *Server) renderError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	s.render(w, r, formStatus(r, status), "error", errorView{Message: msg})
}
