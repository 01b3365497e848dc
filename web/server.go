// Package web serves the to-do page, its static assets and a small JSON API.
package web

import (
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"todo-web/store"
	"todo-web/view"
)

// EntryDocument is the page served at "/".
const EntryDocument = "template.html"

//go:embed dist
var dist embed.FS

// requiredAssets must be present for the page to work at all.
var requiredAssets = []string{EntryDocument, "style.css", "app.js"}

type Server struct {
	store  *store.Store
	form   *view.Form
	menu   *view.SortMenu
	logger *log.Logger
	tmpl   *template.Template
	assets fs.FS
}

// NewServer checks the embedded assets and parses the entry document. A
// missing asset aborts start-up.
func NewServer(s *store.Store, logger *log.Logger) (*Server, error) {
	return newServer(s, logger, dist)
}

func newServer(s *store.Store, logger *log.Logger, files fs.FS) (*Server, error) {
	if s == nil {
		return nil, errors.New("web: missing store")
	}
	if logger == nil {
		logger = log.StandardLogger()
	}
	assets, err := fs.Sub(files, "dist")
	if err != nil {
		return nil, fmt.Errorf("web: assets: %w", err)
	}
	for _, name := range requiredAssets {
		if _, err := fs.Stat(assets, name); err != nil {
			return nil, fmt.Errorf("web: missing asset %s: %w", name, err)
		}
	}
	tmpl, err := template.ParseFS(assets, EntryDocument)
	if err != nil {
		return nil, fmt.Errorf("web: parse %s: %w", EntryDocument, err)
	}
	return &Server{
		store:  s,
		form:   view.NewForm(),
		menu:   &view.SortMenu{},
		logger: logger,
		tmpl:   tmpl,
		assets: assets,
	}, nil
}

// Router wires every route onto a fresh gin engine.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(requestLogger(s.logger), gin.Recovery())
	r.SetHTMLTemplate(s.tmpl)

	r.StaticFileFS("/static/style.css", "style.css", http.FS(s.assets))
	r.StaticFileFS("/static/app.js", "app.js", http.FS(s.assets))

	r.GET("/", s.index)
	r.GET("/healthz", func(c *gin.Context) { c.String(http.StatusOK, "ok") })

	r.POST("/form/open", s.openForm)
	r.POST("/form/cancel", s.cancelForm)
	r.POST("/tasks", s.submitForm)
	r.POST("/tasks/:id/toggle", s.idCommand(store.CommandToggle))
	r.POST("/tasks/:id/delete", s.idCommand(store.CommandRemove))
	r.POST("/sort/menu", s.toggleSortMenu)
	r.POST("/sort/date", s.sortCommand(store.CommandSortDate))
	r.POST("/sort/priority", s.sortCommand(store.CommandSortPriority))

	api := r.Group("/api")
	api.GET("/tasks", s.listTasks)
	api.POST("/commands", s.postCommand)
	api.GET("/calendar", s.calendar)
	api.GET("/calendar/day", s.calendarDay)

	return r
}
