package site

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

//go:embed content/*.md
var contentFS embed.FS

var markdown = goldmark.New(goldmark.WithExtensions(extension.Typographer))

// Content holds the rendered markdown body of each page, keyed by page name.
type Content map[string]template.HTML

// LoadContent renders every embedded markdown page.
func LoadContent() (Content, error) {
	entries, err := contentFS.ReadDir("content")
	if err != nil {
		return nil, fmt.Errorf("site: read content: %w", err)
	}
	out := make(Content, len(entries))
	for _, entry := range entries {
		raw, err := contentFS.ReadFile("content/" + entry.Name())
		if err != nil {
			return nil, fmt.Errorf("site: read %s: %w", entry.Name(), err)
		}
		html, err := renderMarkdown(raw)
		if err != nil {
			return nil, fmt.Errorf("site: render %s: %w", entry.Name(), err)
		}
		name := entry.Name()[:len(entry.Name())-len(".md")]
		out[name] = html
	}
	return out, nil
}

// renderMarkdown converts markdown to HTML. Raw HTML in the source is
// omitted by goldmark's default renderer.
func renderMarkdown(src []byte) (template.HTML, error) {
	var buf bytes.Buffer
	if err := markdown.Convert(src, &buf); err != nil {
		return "", err
	}
	return template.HTML(buf.String()), nil
}

// ServiceDetail is one sub-area of a service offering.
type ServiceDetail struct {
	Subtitle string
	Points   []string
}

// Service is one entry of the services catalogue.
type Service struct {
	Icon        string
	Title       string
	Description string
	Details     []ServiceDetail
}

// Services is the catalogue shown on the services page and summarized on
// the home page.
var Services = []Service{
	{
		Icon:        "🧪",
		Title:       "Test Automation Engineering",
		Description: "Comprehensive test automation solutions that ensure quality at speed.",
		Details: []ServiceDetail{
			{Subtitle: "Framework Design & Architecture", Points: []string{
				"Design scalable test automation frameworks from scratch",
				"Select optimal tools and technologies for your stack",
				"Establish best practices and coding standards",
				"Create reusable component libraries",
			}},
			{Subtitle: "Test Development & Maintenance", Points: []string{
				"Develop automated test suites (UI, API, integration, E2E)",
				"Implement data-driven and keyword-driven testing",
				"Create test reporting and analytics dashboards",
				"Maintain and refactor existing test suites",
			}},
			{Subtitle: "Tools & Technologies", Points: []string{
				"Selenium, Cypress, Playwright, Puppeteer",
				"Appium for mobile automation",
				"REST Assured, Postman for API testing",
				"JUnit, TestNG, pytest, Jest",
				"BDD frameworks: Cucumber, SpecFlow",
			}},
		},
	},
	{
		Icon:        "🚀",
		Title:       "CI/CD Implementation",
		Description: "Build robust pipelines that accelerate your delivery process.",
		Details: []ServiceDetail{
			{Subtitle: "Pipeline Architecture", Points: []string{
				"Design end-to-end CI/CD pipelines",
				"Multi-environment deployment strategies",
				"Blue-green and canary deployment patterns",
				"Rollback and disaster recovery procedures",
			}},
			{Subtitle: "Infrastructure as Code", Points: []string{
				"Terraform, CloudFormation, Pulumi implementations",
				"Docker containerization strategies",
				"Kubernetes orchestration setup",
				"Configuration management with Ansible, Chef",
			}},
			{Subtitle: "Platform Expertise", Points: []string{
				"Jenkins, GitLab CI/CD, GitHub Actions",
				"Azure DevOps, CircleCI, Travis CI",
				"AWS CodePipeline, Google Cloud Build",
				"ArgoCD for GitOps workflows",
				"Monitoring with Prometheus, Grafana, Datadog",
			}},
		},
	},
	{
		Icon:        "📊",
		Title:       "Quality Engineering",
		Description: "Holistic quality assurance strategies beyond automation.",
		Details: []ServiceDetail{
			{Subtitle: "Quality Strategy", Points: []string{
				"Develop comprehensive test strategies",
				"Establish quality gates and metrics",
				"Performance and load testing implementation",
				"Security testing integration",
			}},
			{Subtitle: "Process Improvement", Points: []string{
				"Shift-left testing initiatives",
				"Test coverage analysis and improvement",
				"Defect management optimization",
				"Team training and mentorship",
			}},
			{Subtitle: "Specialized Testing", Points: []string{
				"Performance testing with JMeter, Gatling, k6",
				"Security scanning with OWASP ZAP, Burp Suite",
				"Accessibility testing (WCAG compliance)",
				"Visual regression testing",
			}},
		},
	},
	{
		Icon:        "👥",
		Title:       "Staff Augmentation",
		Description: "Flexible engagement models to scale your team quickly.",
		Details: []ServiceDetail{
			{Subtitle: "Engagement Models", Points: []string{
				"Short-term project-based engagements",
				"Long-term embedded team members",
				"Part-time fractional support",
				"Knowledge transfer and training programs",
			}},
			{Subtitle: "Our Professionals", Points: []string{
				"Senior test automation engineers",
				"DevOps and CI/CD specialists",
				"Quality engineering leads",
				"Agile QA consultants",
			}},
			{Subtitle: "Benefits", Points: []string{
				"Rapid onboarding (1-2 weeks)",
				"No long-term hiring commitments",
				"Scale up or down as needed",
				"Access to latest tools and practices",
			}},
		},
	},
}
