package web

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"github.com/gin-gonic/gin"

	"todo-web/models"
	"todo-web/store"
	"todo-web/view"
)

const calendarView = "calendar"

type pageData struct {
	Rows     []view.ListRow
	Form     view.FormSnapshot
	SortOpen bool
	Calendar bool
	// Query is appended to every form action so posts return to the same view.
	Query    string
}

func (s *Server) render(c *gin.Context, status int) {
	c.HTML(status, EntryDocument, pageData{
		Rows:     view.ListRows(s.store.Tasks()),
		Form:     s.form.Snapshot(),
		SortOpen: s.menu.Open(),
		Calendar: c.Query("view") == calendarView,
		Query:    viewQuery(c),
	})
}

func viewQuery(c *gin.Context) string {
	v := c.Query("view")
	if v == "" {
		return ""
	}
	return "?" + url.Values{"view": {v}}.Encode()
}

// back sends the browser to the page it came from after a form post.
func back(c *gin.Context) {
	c.Redirect(http.StatusSeeOther, "/"+viewQuery(c))
}

func (s *Server) index(c *gin.Context) {
	s.render(c, http.StatusOK)
}

func (s *Server) openForm(c *gin.Context) {
	s.menu.Close()
	s.form.Open()
	back(c)
}

func (s *Server) cancelForm(c *gin.Context) {
	s.menu.Close()
	s.form.Cancel()
	back(c)
}

func (s *Server) submitForm(c *gin.Context) {
	s.menu.Close()
	var input models.NewTaskInput
	if err := c.ShouldBind(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid form body"})
		return
	}

	_, err := s.form.Submit(c.Request.Context(), s.store, input)
	if errors.Is(err, models.ErrValidation) {
		s.render(c, http.StatusUnprocessableEntity)
		return
	}
	if err != nil {
		s.logger.WithError(err).Error("add task")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add task"})
		return
	}
	back(c)
}

func (s *Server) idCommand(kind store.CommandKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		s.menu.Close()
		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid task ID"})
			return
		}
		if _, err := s.store.Dispatch(c.Request.Context(), store.Command{Kind: kind, ID: id}); err != nil {
			s.logger.WithError(err).WithField("command", kind).Error("dispatch")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update task"})
			return
		}
		back(c)
	}
}

func (s *Server) toggleSortMenu(c *gin.Context) {
	s.menu.Toggle()
	back(c)
}

func (s *Server) sortCommand(kind store.CommandKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		s.menu.Close()
		if _, err := s.store.Dispatch(c.Request.Context(), store.Command{Kind: kind}); err != nil {
			s.logger.WithError(err).WithField("command", kind).Error("dispatch")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to sort tasks"})
			return
		}
		back(c)
	}
}

func (s *Server) listTasks(c *gin.Context) {
	c.JSON(http.StatusOK, s.store.Tasks())
}

func (s *Server) postCommand(c *gin.Context) {
	var cmd store.Command
	if err := c.ShouldBindJSON(&cmd); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	res, err := s.store.Dispatch(c.Request.Context(), cmd)
	switch {
	case errors.Is(err, models.ErrValidation):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	case errors.Is(err, store.ErrUnknownCommand):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case err != nil:
		s.logger.WithError(err).WithField("command", cmd.Kind).Error("dispatch")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to apply command"})
	default:
		c.JSON(http.StatusOK, res)
	}
}

func (s *Server) calendar(c *gin.Context) {
	c.JSON(http.StatusOK, view.CalendarOptions(s.store.Tasks()))
}

func (s *Server) calendarDay(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Date parameter is required"})
		return
	}
	c.JSON(http.StatusOK, view.NewDayView(s.store.Tasks(), date))
}
