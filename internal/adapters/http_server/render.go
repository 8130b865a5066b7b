package httpserver

import (
	"bytes"
	"html/template"
	"net/http"

	"github.com/rs/zerolog/log"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// Markup is deliberately bare: presentation lives elsewhere, these pages
// exist to carry the resolved content.

var md = goldmark.New(goldmark.WithExtensions(extension.GFM))

func renderMarkdown(body string) template.HTML {
	var buf bytes.Buffer
	if err := md.Convert([]byte(body), &buf); err != nil {
		log.Error().Err(err).Msg("markdown render failed")
		return ""
	}
	return template.HTML(buf.String())
}

func renderPage(w http.ResponseWriter, status int, name string, data any) {
	var buf bytes.Buffer
	if err := pages.ExecuteTemplate(&buf, name, data); err != nil {
		log.Error().Err(err).Str("template", name).Msg("render failed")
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		log.Error().Err(err).Msg("failed to write page body")
	}
}

var pages = template.Must(template.New("pages").Parse(`
{{define "head"}}<!doctype html>
<html lang="en">
<head><meta charset="utf-8"><meta name="viewport" content="width=device-width, initial-scale=1"><title>{{.}} · Snowbird HQ</title></head>
<body>
<nav><a href="/">Home</a> · <a href="/properties">Properties</a></nav>
{{end}}

{{define "foot"}}</body></html>{{end}}

{{define "home"}}{{template "head" "Guest Guides"}}
<h1>Snowbird HQ Guest Guides</h1>
<p>House rules, instructions, critical information and local guides for your stay.</p>
<ul>
<li><a href="/properties">Browse properties</a></li>
<li><a href="/auth/login">Staff sign in</a></li>
</ul>
{{template "foot"}}{{end}}

{{define "properties"}}{{template "head" "Properties"}}
<h1>Properties</h1>
{{if .}}<ul>
{{range .}}<li><a href="/properties/{{.Slug}}">{{.Title}}</a> — {{.Location}}, sleeps {{.Capacity}}</li>
{{end}}</ul>{{else}}<p>No properties yet.</p>{{end}}
{{template "foot"}}{{end}}

{{define "property"}}{{template "head" .Title}}
<h1>{{.Title}}</h1>
<p>{{.Location}} · sleeps {{.Capacity}}</p>
{{if or .WifiNetwork .WifiPassword}}<section>
<h2>WiFi</h2>
{{if .WifiNetwork}}<p>Network: <strong>{{.WifiNetwork}}</strong></p>{{end}}
{{if .WifiPassword}}<p>Password: <strong>{{.WifiPassword}}</strong></p>{{end}}
</section>{{end}}
{{range .Sections}}<section>
<h2>{{.Title}}</h2>
{{if .Empty}}<p>Coming soon.</p>{{else}}{{.HTML}}{{end}}
</section>
{{end}}
{{template "foot"}}{{end}}

{{define "admin"}}{{template "head" "Admin"}}
<h1>Admin</h1>
<p><a href="/auth/logout">Sign out</a></p>
<table>
<tr><th>Property</th><th>Location</th><th>Capacity</th><th>Access</th></tr>
{{range .}}<tr><td><a href="/properties/{{.Slug}}">{{.Title}}</a></td><td>{{.Location}}</td><td>{{.Capacity}}</td><td>{{.Access}}</td></tr>
{{end}}</table>
{{template "foot"}}{{end}}

{{define "login"}}{{template "head" .Title}}
<h1>{{.Title}}</h1>
<p>We'll send you a secure login link via email.</p>
{{if .Error}}<p role="alert"><strong>{{.Error}}</strong></p>{{end}}
<form method="post" action="{{.Action}}">
<label for="email">Email address</label>
<input id="email" name="email" type="email" required>
<button type="submit">Send magic link</button>
</form>
{{template "foot"}}{{end}}

{{define "notfound"}}{{template "head" "Not Found"}}
<h1>Property not found</h1>
<p>There is no property guide for <strong>{{.}}</strong>.</p>
<p><a href="/properties">Browse all properties</a></p>
{{template "foot"}}{{end}}

{{define "sent"}}{{template "head" "Check your email"}}
<h1>Check your email</h1>
<p>We've sent a magic link to <strong>{{.}}</strong>.</p>
<p>Click the link in your email to sign in. You can close this window.</p>
<p><a href="/auth/login">Back to login</a></p>
{{template "foot"}}{{end}}
`))
