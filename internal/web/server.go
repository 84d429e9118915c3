package web

import (
	"fmt"
	"io/fs"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fedorukko2007-source/todo-app/internal/app/apperr"
	"github.com/fedorukko2007-source/todo-app/internal/app/models"
	"github.com/fedorukko2007-source/todo-app/internal/app/services"
)

// TaskManager is what the handlers need from the service layer.
type TaskManager interface {
	List() ([]models.Task, error)
	Add(text string) (*models.Task, error)
	Toggle(id string) (*models.Task, error)
	Delete(id string) (*services.DeleteResult, error)
	ClearCompleted() (*services.ClearResult, error)
}

// Server wires the REST routes and the embedded browser client onto one
// gin engine.
type Server struct {
	tasks  TaskManager
	router *gin.Engine
}

func NewServer(tasks TaskManager) *Server {
	router := gin.Default()

	s := &Server{
		tasks:  tasks,
		router: router,
	}

	router.GET("/tasks", s.handleList)
	router.POST("/tasks", s.handleCreate)
	router.PUT("/tasks/:id", s.handleToggle)
	router.DELETE("/tasks/:id", s.handleDelete)
	router.DELETE("/tasks/clear/completed", s.handleClearCompleted)

	assets, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	router.StaticFS("/static", http.FS(assets))
	router.GET("/", func(c *gin.Context) {
		c.FileFromFS("/", http.FS(assets))
	})

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"kind":  string(apperr.KindNotFound),
			"error": fmt.Sprintf("no route for %s %s", c.Request.Method, c.Request.URL.Path),
		})
	})

	return s
}

func (s *Server) Run(addr string) error {
	return s.router.Run(addr)
}

// Handler exposes the router for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) handleList(c *gin.Context) {
	tasks, err := s.tasks.List()
	if err != nil {
		respondError(c, err)
		return
	}
	if tasks == nil {
		tasks = []models.Task{}
	}
	c.JSON(http.StatusOK, tasks)
}

func (s *Server) handleCreate(c *gin.Context) {
	var req struct {
		Text string `json:"text"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"kind":  string(apperr.KindValidation),
			"error": "request body must be JSON with a text field",
		})
		return
	}
	task, err := s.tasks.Add(req.Text)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, task)
}

func (s *Server) handleToggle(c *gin.Context) {
	task, err := s.tasks.Toggle(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, task)
}

func (s *Server) handleDelete(c *gin.Context) {
	res, err := s.tasks.Delete(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (s *Server) handleClearCompleted(c *gin.Context) {
	res, err := s.tasks.ClearCompleted()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func respondError(c *gin.Context, err error) {
	kind := apperr.KindOf(err)

	status := http.StatusInternalServerError
	switch kind {
	case apperr.KindValidation:
		status = http.StatusBadRequest
	case apperr.KindNotFound:
		status = http.StatusNotFound
	}

	c.JSON(status, gin.H{"kind": string(kind), "error": err.Error()})
}
