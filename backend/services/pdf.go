package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"io"
	"net/http"
	"strings"
	"time"

	_ "embed"

	"github.com/himanshukadian/himanshu-blog-backend/backend/config"
	"github.com/himanshukadian/himanshu-blog-backend/backend/models"
)

// PDFRenderTimeout bounds a render round trip. This is the only
// downstream call with an explicit service-layer budget.
const PDFRenderTimeout = 30 * time.Second

// ErrRendererNotConfigured is returned when PDF_RENDERER_URL is unset.
var ErrRendererNotConfigured = errors.New("pdf renderer not configured")

//go:embed templates/resume.html
var resumeTemplateHTML string

var resumeTemplate = template.Must(template.New("resume").Parse(resumeTemplateHTML))

type resumeView struct {
	Resume       *models.Resume
	Skills       models.ResumeSkills
	Experience   []models.ResumeExperience
	Education    []models.ResumeEducation
	Projects     []models.ResumeProject
	Achievements []string
	Matched      []string
}

// RenderResumeHTML produces the print-ready HTML document for a resume.
func RenderResumeHTML(r *models.Resume) (string, error) {
	view := resumeView{
		Resume:       r,
		Skills:       r.Skills.Data(),
		Experience:   r.Experience.Data(),
		Education:    r.Education.Data(),
		Projects:     r.Projects.Data(),
		Achievements: r.Achievements.Data(),
		Matched:      r.KeywordsMatched.Data(),
	}

	var buf bytes.Buffer
	if err := resumeTemplate.Execute(&buf, view); err != nil {
		return "", fmt.Errorf("render resume template: %w", err)
	}
	return buf.String(), nil
}

// PDFRenderer converts HTML to PDF through the external renderer
// service. The rendering engine itself is out of process.
type PDFRenderer struct {
	url    string
	client *http.Client
}

func NewPDFRenderer(cfg *config.Config) *PDFRenderer {
	return &PDFRenderer{
		url:    cfg.PDFRendererURL,
		client: &http.Client{Timeout: PDFRenderTimeout},
	}
}

func (p *PDFRenderer) Ready() bool { return p.url != "" }

// Render posts the HTML document and returns the PDF bytes.
func (p *PDFRenderer) Render(ctx context.Context, html string) ([]byte, error) {
	if !p.Ready() {
		return nil, ErrRendererNotConfigured
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.url, strings.NewReader(html))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "text/html; charset=utf-8")
	req.Header.Set("Accept", "application/pdf")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("pdf renderer request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("pdf renderer returned status %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}
