// Package wizard provides the interactive setup flow behind `aeoboost
// init`, collecting enough about a site to scaffold an analysis spec.
package wizard

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"text/template"

	"github.com/charmbracelet/huh"
	"golang.org/x/term"

	"github.com/aeobooster/aeobooster/internal/projects"
)

// AnalysisSetup holds all fields collected during the interactive wizard.
type AnalysisSetup struct {
	SiteURL          string
	BusinessCategory string
	BrandNames       []string
	CompetitorTerms  []string
	TargetCount      int
	EngineType       string
}

const analysisYAMLTemplate = `name: {{ .Name }}
site_url: {{ .SiteURL }}
{{- if .BusinessCategory }}
business_category: {{ .BusinessCategory }}
{{- end }}

entities_file: entities.yaml
{{- if .CompetitorTerms }}

competitor_terms:
{{- range .CompetitorTerms }}
  - {{ . }}
{{- end }}
{{- end }}

target_count: {{ .TargetCount }}

config:
  engine: {{ .EngineType }}
  model: gpt-4o-mini
  timeout_seconds: 60
  parallel: true
  max_workers: 4
`

const entitiesYAMLTemplate = `entities:
{{- range .BrandNames }}
  - type: brand
    value: {{ . }}
{{- end }}
`

// RunSetupWizard runs an interactive huh form to collect analysis setup.
// If initialURL is non-empty, it pre-populates the site URL field.
func RunSetupWizard(in io.Reader, out io.Writer, initialURL string) (*AnalysisSetup, error) {
	var (
		siteURL        = initialURL
		category       string
		brandsRaw      string
		competitorsRaw string
		targetRaw      = strconv.Itoa(100)
		engineType     string
	)

	categoryOptions := make([]huh.Option[string], 0, len(projects.BusinessCategories))
	for _, c := range projects.BusinessCategories {
		categoryOptions = append(categoryOptions, huh.NewOption(c, c))
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Site URL").
				Description("The website to analyze").
				Placeholder("acme.example").
				Value(&siteURL).
				Validate(func(s string) error {
					_, err := projects.NormalizeSiteURL(s)
					return err
				}),
			huh.NewSelect[string]().
				Title("Business category").
				Options(categoryOptions...).
				Value(&category),
			huh.NewInput().
				Title("Brand names").
				Description("Comma-separated brand or product names to look for in answers").
				Placeholder("Acme, Acme Cloud").
				Value(&brandsRaw).
				Validate(func(s string) error {
					if len(splitAndTrim(s)) == 0 {
						return fmt.Errorf("at least one brand name is required")
					}
					return nil
				}),
			huh.NewInput().
				Title("Competitor terms").
				Description("Comma-separated competitor names (optional)").
				Placeholder("BrandX, Widgetly").
				Value(&competitorsRaw),
			huh.NewInput().
				Title("Prompt count").
				Description("How many prompts to run per analysis").
				Value(&targetRaw).
				Validate(func(s string) error {
					n, err := strconv.Atoi(strings.TrimSpace(s))
					if err != nil || n <= 0 {
						return fmt.Errorf("must be a positive number")
					}
					return nil
				}),
			huh.NewSelect[string]().
				Title("Engine").
				Options(
					huh.NewOption("openai", "openai"),
					huh.NewOption("copilot", "copilot"),
					huh.NewOption("mock", "mock"),
				).
				Value(&engineType),
		),
	).
		WithInput(in).
		WithOutput(out)

	// Use accessible mode for non-TTY input (e.g., tests, piped input).
	if f, ok := in.(*os.File); !ok || !term.IsTerminal(int(f.Fd())) {
		form = form.WithAccessible(true)
	}

	if err := form.Run(); err != nil {
		return nil, fmt.Errorf("wizard failed: %w", err)
	}

	normalized, err := projects.NormalizeSiteURL(siteURL)
	if err != nil {
		return nil, err
	}

	targetCount, _ := strconv.Atoi(strings.TrimSpace(targetRaw))

	return &AnalysisSetup{
		SiteURL:          normalized,
		BusinessCategory: category,
		BrandNames:       splitAndTrim(brandsRaw),
		CompetitorTerms:  splitAndTrim(competitorsRaw),
		TargetCount:      targetCount,
		EngineType:       engineType,
	}, nil
}

// GenerateAnalysisYAML renders the analysis.yaml content for a setup.
func GenerateAnalysisYAML(setup *AnalysisSetup) (string, error) {
	return renderTemplate("analysis", analysisYAMLTemplate, struct {
		*AnalysisSetup
		Name string
	}{AnalysisSetup: setup, Name: specName(setup.SiteURL)})
}

// GenerateEntitiesYAML renders the entities.yaml content for a setup.
func GenerateEntitiesYAML(setup *AnalysisSetup) (string, error) {
	return renderTemplate("entities", entitiesYAMLTemplate, setup)
}

// WriteAnalysisFiles writes analysis.yaml and entities.yaml into dir.
func WriteAnalysisFiles(setup *AnalysisSetup, dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating %s: %w", dir, err)
	}

	analysisYAML, err := GenerateAnalysisYAML(setup)
	if err != nil {
		return err
	}
	entitiesYAML, err := GenerateEntitiesYAML(setup)
	if err != nil {
		return err
	}

	if err := os.WriteFile(dir+"/analysis.yaml", []byte(analysisYAML), 0644); err != nil {
		return fmt.Errorf("writing analysis.yaml: %w", err)
	}
	if err := os.WriteFile(dir+"/entities.yaml", []byte(entitiesYAML), 0644); err != nil {
		return fmt.Errorf("writing entities.yaml: %w", err)
	}
	return nil
}

func renderTemplate(name, text string, data any) (string, error) {
	tmpl, err := template.New(name).Parse(text)
	if err != nil {
		return "", fmt.Errorf("failed to parse template: %w", err)
	}

	var buf strings.Builder
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render template: %w", err)
	}
	return buf.String(), nil
}

// specName derives a short analysis name from the site URL.
func specName(siteURL string) string {
	name := strings.TrimPrefix(siteURL, "https://")
	name = strings.TrimPrefix(name, "http://")
	name = strings.SplitN(name, "/", 2)[0]
	name = strings.SplitN(name, ":", 2)[0]
	return strings.ReplaceAll(name, ".", "-")
}

func splitAndTrim(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	var result []string
	for _, p := range parts {
		trimmed := strings.TrimSpace(p)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
