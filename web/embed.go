package web

import (
	"embed"
	"html/template"
	"log"
	"net/http"
)

// TemplatesFS embeds HTML pages for server-side rendering.
//
//go:embed templates/*.html
var TemplatesFS embed.FS

var pages = template.Must(template.ParseFS(TemplatesFS, "templates/*.html"))

// RenderStatusPage writes the verification status page. Used for endpoints
// visited directly from an email link, where a JSON body would be useless.
func RenderStatusPage(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := pages.ExecuteTemplate(w, "verify-user.html", map[string]string{"Message": message}); err != nil {
		log.Printf("Error rendering status page: %v", err)
	}
}

// RenderResetPasswordPage writes the change-password form; the reset token
// from the query string is embedded in the form so the POST carries it back.
func RenderResetPasswordPage(w http.ResponseWriter, token string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if err := pages.ExecuteTemplate(w, "reset-password.html", map[string]string{"Token": token}); err != nil {
		log.Printf("Error rendering reset password page: %v", err)
	}
}
