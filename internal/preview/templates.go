// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/chunkdoc

package preview

import "html/template"

type indexView struct {
	Title   string
	Paths   []string
	BuiltAt string
}

type pageView struct {
	Title string
	Path  string
	Body  template.HTML
}

const layoutHead = `<!doctype html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{ .Title }}</title>
<style>
body { font-family: sans-serif; max-width: 960px; margin: 2rem auto; padding: 0 1rem; line-height: 1.5; }
pre { background: #f5f5f5; padding: .75rem; overflow-x: auto; }
code { background: #f5f5f5; padding: 0 .2rem; }
details { border-left: 3px solid #ddd; padding-left: .75rem; margin: .5rem 0; }
nav { font-size: .9rem; margin-bottom: 1rem; }
</style>
</head>
<body>
`

var indexTemplate = template.Must(template.New("index").Parse(layoutHead + `<h1>{{ .Title }}</h1>
<p>Built at {{ .BuiltAt }}</p>
<ul>
{{- range .Paths }}
<li><a href="/{{ . }}">{{ . }}</a> (<a href="/raw/{{ . }}">raw</a>)</li>
{{- end }}
</ul>
</body>
</html>
`))

var pageTemplate = template.Must(template.New("page").Parse(layoutHead + `<nav><a href="/">Pages</a> / {{ .Path }} (<a href="/raw/{{ .Path }}">raw</a>)</nav>
{{ .Body }}
</body>
</html>
`))
