package server

import (
	"html/template"
	"net/http"

	"github.com/fiveonefour/moosedocs/internal/content"
	"github.com/fiveonefour/moosedocs/internal/nav"
)

type pageData struct {
	Title       string
	Description string
	Breadcrumbs []nav.Crumb
	Headings    []content.Heading
	Body        template.HTML
	Stars       int
}

var pageTmpl = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
{{if .Description}}<meta name="description" content="{{.Description}}">{{end}}
</head>
<body>
<nav class="breadcrumbs">
{{range $i, $c := .Breadcrumbs}}{{if $i}} / {{end}}<a href="/docs/{{$c.Slug}}">{{$c.Title}}</a>{{end}}
</nav>
{{if .Stars}}<div class="stars">★ {{.Stars}}</div>{{end}}
<aside class="outline">
<ul>
{{range .Headings}}<li class="level-{{.Level}}"><a href="#{{.ID}}">{{.Text}}</a></li>
{{end}}</ul>
</aside>
<main>
{{.Body}}
</main>
</body>
</html>
`))

func writePage(w http.ResponseWriter, page pageData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_ = pageTmpl.Execute(w, page)
}
