// Copyright 2024 Google, LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// This file holds the page templates and the Renderer that executes them.
// The templates are compiled once at startup; a parse failure is a
// programming error surfaced by the Renderer constructor.
package web

import (
	"html/template"
	"io"
)

const styleBlock = `
<style>
  body { font-family: system-ui, sans-serif; max-width: 860px; margin: 2rem auto; padding: 0 1rem; color: #1a1a1a; }
  h1 { font-size: 1.5rem; }
  form label { display: block; margin-top: 1rem; font-weight: 600; }
  textarea, input[type=text] { width: 100%; padding: .5rem; font-size: 1rem; box-sizing: border-box; }
  button { margin-top: 1rem; padding: .6rem 1.4rem; font-size: 1rem; cursor: pointer; }
  .card { border: 1px solid #ccc; border-radius: 8px; padding: 1rem; margin: 1rem 0; }
  .card.winner { border-color: #b8860b; background: #fffaf0; }
  .rank-badge { display: inline-block; background: #333; color: #fff; border-radius: 999px; padding: .1rem .7rem; font-size: .85rem; margin-right: .5rem; }
  .winner .rank-badge { background: #b8860b; }
  .suggested-tag { font-size: .8rem; color: #555; font-style: italic; margin-left: .5rem; }
  .prompt { font-family: Georgia, serif; margin: .75rem 0; }
  details { margin-top: .5rem; }
  .verdict { border-top: 2px solid #333; margin-top: 2rem; padding-top: 1rem; }
  .error-panel { border: 1px solid #c0392b; background: #fdf0ef; border-radius: 8px; padding: 1rem; }
  .error-panel pre { white-space: pre-wrap; font-size: .85rem; }
</style>`

const formPageTemplate = `<!DOCTYPE html>
<html lang="en">
<head><meta charset="utf-8"><title>{{.AppName}}</title>` + styleBlock + `</head>
<body>
  <h1>{{.AppName}}</h1>
  <p>Describe a video concept. A panel of film directors will each interpret
  it, and a judge will rank their takes.</p>
  <form method="post" action="/api/v1/bakeoff">
    <label for="video_idea">Video idea</label>
    <textarea id="video_idea" name="video_idea" rows="3" required
      placeholder="e.g. a robot learns to tend a rooftop garden">{{.VideoIdea}}</textarea>
    <label for="directors">Directors (comma-separated)</label>
    <input type="text" id="directors" name="directors" value="{{.FormDirectors}}">
    <button type="submit">Run the bake-off</button>
  </form>
  <p id="progress" hidden>Running the bake-off. Several directors are
  interpreting your idea; this can take a minute.</p>
  <script>
    document.querySelector("form").addEventListener("submit", function () {
      this.querySelector("button").disabled = true;
      document.getElementById("progress").hidden = false;
    });
  </script>
</body>
</html>`

const resultsPageTemplate = `<!DOCTYPE html>
<html lang="en">
<head><meta charset="utf-8"><title>{{.AppName}} — results</title>` + styleBlock + `</head>
<body>
  <h1>Results: {{.VideoIdea}}</h1>
  <p>The panel was joined by a suggested director:
  <strong>{{.AdditionalDirector}}</strong>.</p>
  {{range .Cards}}
  <div class="card{{if .Winner}} winner{{end}}">
    <span class="rank-badge">#{{.Rank}}</span>
    <strong>{{.Director}}</strong>
    {{- if .Suggested}}<span class="suggested-tag">suggested</span>{{end}}
    {{- if .Winner}} 🏆{{end}}
    <p class="prompt">{{.Prompt}}</p>
    <details>
      <summary>Cinematic breakdown</summary>
      <dl>
        {{range .Attributes}}<dt>{{.Label}}</dt><dd>{{.Value}}</dd>{{end}}
      </dl>
    </details>
  </div>
  {{end}}
  <div class="verdict">
    {{.Explanation}}
  </div>
  <p><a href="/">Run another bake-off</a></p>
</body>
</html>`

const errorPageTemplate = `<!DOCTYPE html>
<html lang="en">
<head><meta charset="utf-8"><title>{{.AppName}} — error</title>` + styleBlock + `</head>
<body>
  <h1>{{.AppName}}</h1>
  <div class="error-panel">
    <p>{{.Message}}</p>
    <details>
      <summary>Details</summary>
      <pre>{{.Trace}}</pre>
    </details>
  </div>
  <p><a href="/">Back to the form</a></p>
</body>
</html>`

// Renderer executes the compiled page templates against their views.
type Renderer struct {
	form    *template.Template
	results *template.Template
	err     *template.Template
}

// NewRenderer compiles all page templates.
//
// Outputs:
//   - *Renderer: The ready renderer.
//   - error: A template parse error, which should abort startup.
func NewRenderer() (*Renderer, error) {
	form, err := template.New("form").Parse(formPageTemplate)
	if err != nil {
		return nil, err
	}
	results, err := template.New("results").Parse(resultsPageTemplate)
	if err != nil {
		return nil, err
	}
	errPage, err := template.New("error").Parse(errorPageTemplate)
	if err != nil {
		return nil, err
	}
	return &Renderer{form: form, results: results, err: errPage}, nil
}

// RenderForm writes the submission form page.
func (r *Renderer) RenderForm(w io.Writer, view *FormView) error {
	return r.form.Execute(w, view)
}

// RenderResults writes the ranked results page.
func (r *Renderer) RenderResults(w io.Writer, view *ResultsView) error {
	return r.results.Execute(w, view)
}

// RenderError writes the error panel page.
func (r *Renderer) RenderError(w io.Writer, view *ErrorView) error {
	return r.err.Execute(w, view)
}
