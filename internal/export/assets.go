package export

import "html/template"

var pageTemplate = template.Must(template.New("page").Parse(pageHTML))

const pageHTML = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<link rel="stylesheet" type="text/css" href="css/styles.css">
</head>
<body>
<h1>{{.Title}}</h1>
<input id="filter" type="search" placeholder="Filter by text, tag or deck...">
<main id="cards">
{{- range .Tree}}{{template "node" .}}{{end}}
</main>
<script>
(function () {
  document.querySelectorAll(".extra-toggle").forEach(function (btn) {
    btn.addEventListener("click", function () {
      var body = document.getElementById(btn.dataset.target);
      if (body) { body.hidden = !body.hidden; }
    });
  });
  var filter = document.getElementById("filter");
  filter.addEventListener("input", function () {
    var q = filter.value.toLowerCase();
    document.querySelectorAll(".card").forEach(function (card) {
      card.hidden = q !== "" && card.dataset.search.indexOf(q) === -1;
    });
  });
})();
</script>
</body>
</html>
{{define "node"}}
<details class="level" open>
<summary>{{.Name}}</summary>
{{- range .Cards}}{{template "card" .}}{{end}}
{{- range .Children}}{{template "node" .}}{{end}}
</details>
{{- end}}
{{define "card"}}
<div class="card" id="card-{{.ID}}" data-search="{{.Search}}">
<a href="#card-{{.ID}}" class="card-id">Card ID: {{.ID}}</a>
<div class="answer">{{.Answer}}</div>
{{- range .Extras}}
<button class="extra-toggle" type="button" data-target="extra-{{.DomID}}">{{.Name}}</button>
<div class="extra-body" id="extra-{{.DomID}}" hidden>{{.Body}}</div>
{{- end}}
<p class="tags">Tags: {{.TagLine}}</p>
</div>
{{- end}}
`

const stylesCSS = `body {
    font-family: Arial, sans-serif;
    background: #121212;
    color: #ffffff;
    display: flex;
    flex-direction: column;
    align-items: center;
    padding: 20px;
}
#filter {
    width: 60%;
    padding: 8px;
    margin-bottom: 10px;
    border: 1px solid #444;
    border-radius: 5px;
    background: #1e1e1e;
    color: #ffffff;
}
main {
    width: 100%;
    display: flex;
    flex-direction: column;
    align-items: center;
}
details.level {
    width: 80%;
    margin: 4px;
}
details.level > summary {
    cursor: pointer;
    color: #8ab4f8;
    padding: 4px;
}
.card {
    border: 1px solid #444;
    padding: 20px;
    margin: 10px;
    border-radius: 8px;
    background: #1e1e1e;
    text-align: center;
    position: relative;
}
.card-id {
    font-size: 12px;
    color: #aaa;
    text-decoration: none;
    position: absolute;
    top: 5px;
    right: 10px;
}
.tags {
    font-size: 12px;
    color: #aaa;
    margin-top: 10px;
    border-top: 1px solid #444;
    padding-top: 5px;
}
img {
    max-width: 100%;
    display: block;
    margin: 10px auto;
}
.extra-toggle {
    background-color: #333;
    color: #fff;
    border: none;
    padding: 5px 10px;
    cursor: pointer;
    margin-top: 5px;
    border-radius: 5px;
    display: inline-block;
}
.extra-toggle:hover {
    background-color: #555;
}
.extra-body {
    margin-top: 5px;
    padding: 10px;
    background: #181818;
    border-radius: 5px;
    white-space: pre-wrap;
}
`
