package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sureshnaloor/projprocurement/internal/service"
)

type ProjectHandler struct {
	svc *service.ProjectService
}

func NewProjectHandler(svc *service.ProjectService) *ProjectHandler {
	return &ProjectHandler{svc: svc}
}

func (h *ProjectHandler) List(c *gin.Context) {
	projects, err := h.svc.List()
	if err != nil {
		respondError(c, err)
		return
	}
	ok(c, projects)
}

func (h *ProjectHandler) Create(c *gin.Context) {
	var input service.ProjectInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err.Error())
		return
	}
	project, err := h.svc.Create(input)
	if err != nil {
		respondError(c, err)
		return
	}
	created(c, project)
}

func (h *ProjectHandler) Get(c *gin.Context) {
	project, err := h.svc.Get(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	ok(c, project)
}

func (h *ProjectHandler) Update(c *gin.Context) {
	var input service.ProjectInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err.Error())
		return
	}
	project, err := h.svc.Update(c.Param("id"), input)
	if err != nil {
		respondError(c, err)
		return
	}
	ok(c, project)
}

func (h *ProjectHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	ok(c, nil)
}

// Search backs project/WBS autocomplete: ?q=<text>&type=project|wbs.
func (h *ProjectHandler) Search(c *gin.Context) {
	results, err := h.svc.Search(c.Query("q"), c.Query("type"))
	if err != nil {
		respondError(c, err)
		return
	}
	ok(c, results)
}
