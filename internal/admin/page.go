package admin

import (
	"html/template"
	"net/http"

	"github.com/seoworks/indexable/internal/model"
	"github.com/seoworks/indexable/internal/store"
	"github.com/sirupsen/logrus"
)

// Settings managed by the general tab.
var settingKeys = []string{"site_url", "front_page_id", "environment"}

// Tab is one tab of the settings page.
type Tab struct {
	Slug  string
	Label string
}

// Page renders the network admin settings form. It holds no state beyond its
// collaborators; all values come from the settings store.
type Page struct {
	store store.SettingStore
	tmpl  *template.Template
}

func NewPage(store store.SettingStore) *Page {
	return &Page{
		store: store,
		tmpl:  template.Must(template.New("settings").Parse(settingsTemplate)),
	}
}

// Tabs returns the tabs of the settings page. Currently only General.
func (p *Page) Tabs() []Tab {
	return []Tab{
		{Slug: "general", Label: "General"},
	}
}

func (p *Page) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodPost {
		p.save(w, r)
		return
	}

	p.render(w, r, "")
}

func (p *Page) render(w http.ResponseWriter, r *http.Request, notice string) {
	settings, err := p.store.ListSettings(r.Context())
	if err != nil {
		logrus.Errorf("error loading settings: %v", err)
		http.Error(w, "error loading settings", http.StatusInternalServerError)
		return
	}

	values := make(map[string]string, len(settings))
	for _, s := range settings {
		values[s.Key] = s.Value
	}

	data := struct {
		Tabs     []Tab
		Active   string
		Keys     []string
		Values   map[string]string
		Notice   string
		Settings []*model.Setting
	}{
		Tabs:     p.Tabs(),
		Active:   "general",
		Keys:     settingKeys,
		Values:   values,
		Notice:   notice,
		Settings: settings,
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := p.tmpl.Execute(w, data); err != nil {
		logrus.Errorf("error rendering settings page: %v", err)
	}
}

func (p *Page) save(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	for _, key := range settingKeys {
		if !r.PostForm.Has(key) {
			continue
		}
		if err := p.store.SaveSetting(r.Context(), key, r.PostForm.Get(key)); err != nil {
			logrus.Errorf("error saving setting %s: %v", key, err)
			http.Error(w, "error saving settings", http.StatusInternalServerError)
			return
		}
	}

	p.render(w, r, "Settings saved.")
}

const settingsTemplate = `<!DOCTYPE html>
<html>
<head><title>Network Settings</title></head>
<body>
<header><h1>Network Settings</h1></header>
<nav>
{{range .Tabs}}<a href="?tab={{.Slug}}"{{if eq .Slug $.Active}} class="active"{{end}}>{{.Label}}</a>{{end}}
</nav>
{{if .Notice}}<p class="notice">{{.Notice}}</p>{{end}}
<form method="post">
{{range .Keys}}
  <p><label>{{.}} <input type="text" name="{{.}}" value="{{index $.Values .}}"></label></p>
{{end}}
  <p><button type="submit">Save Changes</button></p>
</form>
<footer></footer>
</body>
</html>
`
