// ABOUTME: Renders result, preview and page fragments from embedded html/template files
// ABOUTME: Each exported method writes one fragment that replaces an htmx target on the page

package render

import (
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"io"
	"strconv"

	"mediacheck/core/detection"
	"mediacheck/core/domain"
	"mediacheck/pkg/utils/format"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// PageIDHeader is the request header carrying PageData.PageID.
const PageIDHeader = "X-Page-ID"

// LoadingCaption is the fixed caption of the loading indicator.
const LoadingCaption = "Analyzing content..."

// Renderer holds the parsed fragment templates. It is safe for concurrent use.
type Renderer struct {
	tmpl *template.Template
}

// New parses the embedded templates.
func New() (*Renderer, error) {
	tmpl, err := template.New("fragments").Funcs(funcMap()).ParseFS(templateFS, "templates/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &Renderer{tmpl: tmpl}, nil
}

// MustNew is New for package-level setup where a parse error is a programming error.
func MustNew() *Renderer {
	r, err := New()
	if err != nil {
		panic(err)
	}
	return r
}

func funcMap() template.FuncMap {
	return template.FuncMap{
		"megabytes": megabytes,
	}
}

// News renders a news Outcome: a danger alert for *domain.Failure, the result card otherwise.
func (r *Renderer) News(w io.Writer, outcome domain.Outcome) error {
	switch o := outcome.(type) {
	case *domain.Failure:
		return r.ErrorPanel(w, o.Message)
	case *domain.NewsReport:
		return r.tmpl.ExecuteTemplate(w, "news", newNewsView(o))
	default:
		return fmt.Errorf("render news: unexpected outcome %T", outcome)
	}
}

// Deepfake renders a deepfake Outcome: a danger alert for *domain.Failure, the result card otherwise.
func (r *Renderer) Deepfake(w io.Writer, outcome domain.Outcome) error {
	switch o := outcome.(type) {
	case *domain.Failure:
		return r.ErrorPanel(w, o.Message)
	case *domain.DeepfakeReport:
		return r.tmpl.ExecuteTemplate(w, "deepfake", newDeepfakeView(o))
	default:
		return fmt.Errorf("render deepfake: unexpected outcome %T", outcome)
	}
}

// Loading renders the spinner shown while a request is in flight.
func (r *Renderer) Loading(w io.Writer) error {
	return r.tmpl.ExecuteTemplate(w, "loading", LoadingCaption)
}

// ErrorPanel renders a danger block with msg shown verbatim.
func (r *Renderer) ErrorPanel(w io.Writer, msg string) error {
	return r.tmpl.ExecuteTemplate(w, "error", msg)
}

// BlockingAlert renders the fallback body of a blocking alert response.
func (r *Renderer) BlockingAlert(w io.Writer, msg string) error {
	return r.tmpl.ExecuteTemplate(w, "alert", msg)
}

// Preview renders the #mediaPreview container.
func (r *Renderer) Preview(w io.Writer, p *domain.Preview) error {
	return r.tmpl.ExecuteTemplate(w, "preview", p)
}

// Tabs renders the .nav-tabs group with exactly the active tab marked.
func (r *Renderer) Tabs(w io.Writer, state domain.ViewState) error {
	return r.tmpl.ExecuteTemplate(w, "tabs", state)
}

// Dashboard renders the usage counters of this process.
func (r *Renderer) Dashboard(w io.Writer, snap detection.StatsSnapshot) error {
	return r.tmpl.ExecuteTemplate(w, "dashboard", newDashboardView(snap))
}

// LinkPreview renders the metadata card of an analyzed URL. Empty metadata renders nothing.
func (r *Renderer) LinkPreview(w io.Writer, p *domain.LinkPreview) error {
	if p == nil || p.Empty() {
		return nil
	}
	return r.tmpl.ExecuteTemplate(w, "linkpreview", p)
}

// PageData is everything the full page needs.
type PageData struct {
	State domain.ViewState

	// PageID is sent back with every fragment request from this page load.
	PageID string

	Methods        []Method
	DefaultMethod  string
	MaxUploadBytes int64
}

// PageHeaders is the hx-headers value attaching the page id to htmx requests.
func (d PageData) PageHeaders() string {
	data, _ := json.Marshal(map[string]string{PageIDHeader: d.PageID})
	return string(data)
}

// LoadingCaption is the caption of the indicators embedded in the page.
func (PageData) LoadingCaption() string { return LoadingCaption }

// EmptyPreview is the state of #mediaPreview before any file is selected.
func (PageData) EmptyPreview() *domain.Preview { return nil }

// Method is one option of the #detectionMethod select.
type Method struct {
	Value string
	Label string
}

// DetectionMethods are the options offered by the text form.
var DetectionMethods = []Method{
	{Value: "ml", Label: "Machine Learning"},
	{Value: "rule", Label: "Rule-Based"},
}

// Page renders the whole analysis page.
func (r *Renderer) Page(w io.Writer, data PageData) error {
	if data.Methods == nil {
		data.Methods = DetectionMethods
	}
	if data.DefaultMethod == "" {
		data.DefaultMethod = domain.DefaultMethod
	}
	return r.tmpl.ExecuteTemplate(w, "page", data)
}

// widthStyle builds a progress bar style from a fraction. The value only ever holds a
// formatted number so it is safe to mark as CSS.
func widthStyle(fraction float64) template.CSS {
	return template.CSS("width: " + format.Percent(fraction) + "%")
}

func megabytes(n int64) string {
	return strconv.FormatInt(n>>20, 10)
}
