package folder

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"cloudstore/internal/domain"
	"cloudstore/internal/middleware"
	"cloudstore/internal/pkg/response"
	"cloudstore/internal/pkg/validator"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type createRequest struct {
	Name string `json:"name" validate:"required,max=255"`
}

type folderInfo struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Size int64  `json:"size"`
}

func publicInfo(f *domain.Folder) folderInfo {
	return folderInfo{ID: f.ID, Name: f.Name, Size: f.Size}
}

// List godoc
// @Summary List the user's folders
// @Description IDs, names and space taken of all folders except the implicit root.
// @Tags Folders
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Router /folders [get]
func (h *Handler) List(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}

	folders, err := h.service.List(c.Request.Context(), actor)
	if err != nil {
		response.ServerError(c)
		return
	}

	infos := make([]folderInfo, 0, len(folders))
	for i := range folders {
		infos = append(infos, publicInfo(&folders[i]))
	}
	response.OK(c, gin.H{"folders": infos})
}

// GetRoot godoc
// @Summary Root folder info
// @Description The root folder's size is the total space taken by all the user's files.
// @Tags Folders
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Router /folders/root [get]
func (h *Handler) GetRoot(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}

	root, err := h.service.GetRoot(c.Request.Context(), actor)
	if err != nil {
		response.ServerError(c)
		return
	}
	response.OK(c, gin.H{"root": publicInfo(root)})
}

// Create godoc
// @Summary Create a folder
// @Description The new folder is always placed directly under the root.
// @Tags Folders
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body createRequest true "Folder name"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Router /folders [post]
func (h *Handler) Create(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}

	var req createRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, gin.H{"message": "Invalid request body"})
		return
	}
	if fields := validator.Validate(req); fields != nil {
		response.BadRequest(c, fields)
		return
	}

	folder, err := h.service.Create(c.Request.Context(), actor, req.Name)
	if err != nil {
		switch {
		case errors.Is(err, ErrNameRequired), errors.Is(err, ErrNameTooLong):
			response.BadRequest(c, gin.H{"name": err.Error()})
		default:
			response.ServerError(c)
		}
		return
	}

	response.OK(c, gin.H{"folder": gin.H{"id": folder.ID}})
}

// Delete godoc
// @Summary Delete a folder and every file inside it
// @Tags Folders
// @Produce json
// @Security BearerAuth
// @Param id path int true "Folder ID"
// @Success 200 {object} map[string]interface{}
// @Failure 403,404 {object} map[string]interface{}
// @Router /folders/{id} [delete]
func (h *Handler) Delete(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}
	id, ok := folderParam(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), actor, id); err != nil {
		switch {
		case errors.Is(err, ErrFolderNotFound):
			response.NotFound(c)
		case errors.Is(err, ErrRootFolderProtected):
			response.FailMessage(c, http.StatusForbidden, "Deleting the root folder is not allowed")
		case errors.Is(err, ErrNotOwner):
			response.Forbidden(c)
		default:
			response.ServerError(c)
		}
		return
	}

	response.OK(c, nil)
}

// Get godoc
// @Summary Info about a single folder
// @Tags Folders
// @Produce json
// @Security BearerAuth
// @Param id path int true "Folder ID"
// @Success 200 {object} map[string]interface{}
// @Failure 403,404 {object} map[string]interface{}
// @Router /folders/{id} [get]
func (h *Handler) Get(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}
	id, ok := folderParam(c)
	if !ok {
		return
	}

	folder, err := h.service.Get(c.Request.Context(), actor, id)
	if err != nil {
		switch {
		case errors.Is(err, ErrFolderNotFound):
			response.NotFound(c)
		case errors.Is(err, ErrNotOwner):
			response.Forbidden(c)
		default:
			response.ServerError(c)
		}
		return
	}

	response.OK(c, gin.H{"folder": publicInfo(folder)})
}

func mustActor(c *gin.Context) (domain.Actor, bool) {
	actor, ok := middleware.ActorFrom(c)
	if !ok {
		response.Fail(c, http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
	}
	return actor, ok
}

func folderParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, gin.H{"message": "Invalid folder ID"})
		return 0, false
	}
	return id, true
}
