package site

import (
	"html/template"

	"github.com/wolfman30/consulting-site/internal/contact"
)

// PageData is passed to every template.
type PageData struct {
	Title       string
	Description string
	Page        string
	Info        Info
	Nav         []NavLink
	Body        template.HTML
	Services    []Service
	Contact     *ContactView
}

// ContactView is the rendering of one contact form controller.
type ContactView struct {
	Form     contact.FormData
	Status   contact.Status
	Message  string
	Tone     string
	Missing  map[string]bool
	Disabled bool
	// Configured is false when no webhook endpoint is set.
	Configured bool
}

// SubmitLabel is the text of the submit button.
func (v ContactView) SubmitLabel() string {
	if v.Disabled {
		return "Sending..."
	}
	return "Send Message"
}

// NewContactView captures a controller's state for rendering.
func NewContactView(ctrl *contact.Controller, configured bool, missing []contact.Field) *ContactView {
	status := ctrl.Status()
	message, tone := StatusMessage(status)
	view := &ContactView{
		Form:       ctrl.Form(),
		Status:     status,
		Message:    message,
		Tone:       tone,
		Disabled:   ctrl.Disabled(),
		Configured: configured,
	}
	if len(missing) > 0 {
		view.Missing = make(map[string]bool, len(missing))
		for _, f := range missing {
			view.Missing[string(f)] = true
		}
		view.Message = "Please fill in the required fields."
		view.Tone = "warning"
	}
	return view
}

// StatusMessage returns the user-visible message for a submission status
// and the tone used to style it. idle and sending show nothing.
func StatusMessage(status contact.Status) (message, tone string) {
	switch status {
	case contact.StatusSuccess:
		return "Thank you for your message! We'll get back to you soon.", "success"
	case contact.StatusConfigError:
		return "Contact form is not configured yet. Please email us directly at the address below.", "warning"
	case contact.StatusError:
		return "Sorry, there was an error sending your message. Please try again or email us directly.", "error"
	default:
		return "", ""
	}
}
