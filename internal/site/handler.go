package site

import (
	"errors"
	"net/http"

	"github.com/wolfman30/consulting-site/internal/contact"
	"github.com/wolfman30/consulting-site/pkg/logging"
)

const maxFormBytes = 64 << 10

// PageViewMetrics counts rendered pages.
type PageViewMetrics interface {
	ObservePageView(page string)
}

// Handler serves the HTML pages of the site.
type Handler struct {
	engine  *TemplateEngine
	content Content
	info    Info
	contact *contact.Service
	metrics PageViewMetrics
	logger  *logging.Logger
}

// NewHandler wires the page handlers. metrics may be nil.
func NewHandler(engine *TemplateEngine, content Content, info Info, service *contact.Service, metrics PageViewMetrics, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{
		engine:  engine,
		content: content,
		info:    info,
		contact: service,
		metrics: metrics,
		logger:  logger,
	}
}

func (h *Handler) page(name, path, title, description string) PageData {
	data := PageData{
		Title:       title + " - " + h.info.CompanyName,
		Description: description,
		Page:        name,
		Info:        h.info,
		Nav:         Navigation(path),
		Body:        h.content[name],
	}
	if name == "home" {
		data.Title = h.info.CompanyName + " - " + h.info.Tagline
	}
	return data
}

func (h *Handler) render(w http.ResponseWriter, code int, template string, data PageData) {
	if err := h.engine.Render(w, code, template, data); err != nil {
		h.logger.Error("failed to render page", "template", template, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	if h.metrics != nil {
		h.metrics.ObservePageView(data.Page)
	}
}

// Home handles GET /
func (h *Handler) Home(w http.ResponseWriter, r *http.Request) {
	data := h.page("home", "/", "Home", "Test automation, CI/CD and quality engineering consulting.")
	data.Services = Services
	h.render(w, http.StatusOK, "home.html", data)
}

// About handles GET /about
func (h *Handler) About(w http.ResponseWriter, r *http.Request) {
	h.render(w, http.StatusOK, "about.html",
		h.page("about", "/about", "About Us", "Who we are and how we work."))
}

// ServicesPage handles GET /services
func (h *Handler) ServicesPage(w http.ResponseWriter, r *http.Request) {
	data := h.page("services", "/services", "Services",
		"Comprehensive test automation and CI/CD services. Staff augmentation for quality engineering teams.")
	data.Services = Services
	h.render(w, http.StatusOK, "services.html", data)
}

// ContactPage handles GET /contact with a fresh idle form.
func (h *Handler) ContactPage(w http.ResponseWriter, r *http.Request) {
	ctrl := h.contact.NewForm(contact.FormData{})
	h.renderContact(w, http.StatusOK, ctrl, nil)
}

// ContactSubmit handles POST /contact for browsers without JavaScript.
// The outcome is always rendered as a page; the status lives in the body.
func (h *Handler) ContactSubmit(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
	if err := r.ParseForm(); err != nil {
		h.logger.Warn("failed to parse contact form", "error", err)
		http.Error(w, "Invalid form body", http.StatusBadRequest)
		return
	}

	form := contact.FormDataFromValues(r.PostForm)
	ctrl := h.contact.NewForm(form)
	if missing := form.Missing(); len(missing) > 0 {
		h.renderContact(w, http.StatusUnprocessableEntity, ctrl, missing)
		return
	}

	if _, err := ctrl.Submit(r.Context()); err != nil {
		if errors.Is(err, contact.ErrSubmissionInFlight) {
			http.Error(w, err.Error(), http.StatusConflict)
			return
		}
		h.logger.Error("contact submit failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	h.renderContact(w, http.StatusOK, ctrl, nil)
}

func (h *Handler) renderContact(w http.ResponseWriter, code int, ctrl *contact.Controller, missing []contact.Field) {
	data := h.page("contact", "/contact", "Contact Us", "Get in touch to discuss your testing and delivery needs.")
	data.Contact = NewContactView(ctrl, h.contact.Configured(), missing)
	h.render(w, code, "contact.html", data)
}

// NotFound renders the 404 page.
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	h.render(w, http.StatusNotFound, "not_found.html",
		h.page("not_found", "", "Page Not Found", "The page you were looking for does not exist."))
}
