package auth

import "html/template"

const pageCSS = `
        body {
            margin: 0;
            min-height: 100vh;
            display: flex;
            align-items: center;
            justify-content: center;
            background: #111;
            color: #eee;
            font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", sans-serif;
        }
        .card {
            max-width: 28rem;
            padding: 2rem 2.5rem;
            border-radius: 12px;
            background: #1b1b1b;
            border: 1px solid #2a2a2a;
            text-align: center;
        }
        h1 { font-size: 1.25rem; margin: 0 0 1rem; }
        p { color: #aaa; line-height: 1.5; }
        code { background: #262626; padding: 0.1rem 0.35rem; border-radius: 4px; }
        .ok { color: #3ecf8e; }
        .fail { color: #ff6b6b; }
`

var successTemplate = template.Must(template.New("success").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <title>unsplash - logged in</title>
    <style>` + pageCSS + `</style>
</head>
<body>
    <div class="card">
        <h1 class="ok">Authorization complete</h1>
        <p>The token was saved to profile <code>{{.Profile}}</code>.</p>
        {{if .Scopes}}<p>Scopes: {{range $i, $s := .Scopes}}{{if $i}}, {{end}}<code>{{$s}}</code>{{end}}</p>{{end}}
        <p>You can close this window and return to the terminal.</p>
    </div>
</body>
</html>
`))

var errorTemplate = template.Must(template.New("error").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <title>unsplash - authorization failed</title>
    <style>` + pageCSS + `</style>
</head>
<body>
    <div class="card">
        <h1 class="fail">Authorization failed</h1>
        <p>{{.Message}}</p>
        <p>Return to the terminal and run <code>unsplash auth login</code> again.</p>
    </div>
</body>
</html>
`))
