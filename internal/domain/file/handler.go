package file

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"cloudstore/internal/domain"
	"cloudstore/internal/domain/quota"
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

type renameRequest struct {
	Name string `json:"name" validate:"omitempty,max=255"`
}

type fileInfo struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Size      int64  `json:"size"`
	CreatedAt string `json:"created_at"`
}

func publicInfo(f *domain.File) fileInfo {
	return fileInfo{
		ID:        f.ID,
		Name:      f.Name,
		Size:      f.Size,
		CreatedAt: f.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}

// List godoc
// @Summary List files in a folder
// @Description Without a folder ID the root folder's files are listed. Not recursive.
// @Tags Files
// @Produce json
// @Security BearerAuth
// @Param id path int false "Folder ID"
// @Success 200 {object} map[string]interface{}
// @Failure 403,404 {object} map[string]interface{}
// @Router /files [get]
func (h *Handler) List(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}
	folderID, ok := optionalFolderParam(c)
	if !ok {
		return
	}

	files, err := h.service.List(c.Request.Context(), actor, folderID)
	if err != nil {
		h.fail(c, err)
		return
	}

	infos := make([]fileInfo, 0, len(files))
	for i := range files {
		infos = append(infos, publicInfo(&files[i]))
	}
	response.OK(c, gin.H{"files": infos})
}

// Upload godoc
// @Summary Upload a file
// @Description Accepts exactly one multipart file. Without a folder ID the file lands in the root folder.
// @Tags Files
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param id path int false "Folder ID"
// @Param file formData file true "File to upload"
// @Success 200 {object} map[string]interface{}
// @Failure 400,403,404 {object} map[string]interface{}
// @Router /files [post]
func (h *Handler) Upload(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}
	folderID, ok := optionalFolderParam(c)
	if !ok {
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		response.BadRequest(c, gin.H{"file": "This field is required."})
		return
	}
	parts := form.File["file"]
	if len(parts) == 0 {
		response.BadRequest(c, gin.H{"file": "This field is required."})
		return
	}
	if len(parts) > 1 {
		response.BadRequest(c, gin.H{"file": "Only single file per request is allowed."})
		return
	}

	part := parts[0]
	src, err := part.Open()
	if err != nil {
		response.ServerError(c)
		return
	}
	defer src.Close()

	file, err := h.service.Upload(c.Request.Context(), actor, folderID, UploadInput{
		Name:         part.Filename,
		Size:         part.Size,
		DeclaredType: part.Header.Get("Content-Type"),
		Content:      src,
	})
	if err != nil {
		h.fail(c, err)
		return
	}

	response.OK(c, gin.H{"file": gin.H{"id": file.ID}})
}

// Rename godoc
// @Summary Rename a file
// @Description An empty or omitted name keeps the current one. Names need not be unique.
// @Tags Files
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "File ID"
// @Param request body renameRequest true "New name"
// @Success 200 {object} map[string]interface{}
// @Failure 400,403,404 {object} map[string]interface{}
// @Router /files/id/{id} [patch]
func (h *Handler) Rename(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}
	id, ok := fileParam(c)
	if !ok {
		return
	}

	var req renameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, gin.H{"message": "Invalid request body"})
		return
	}
	if fields := validator.Validate(req); fields != nil {
		response.BadRequest(c, fields)
		return
	}

	if err := h.service.Rename(c.Request.Context(), actor, id, req.Name); err != nil {
		h.fail(c, err)
		return
	}
	response.OK(c, nil)
}

// Delete godoc
// @Summary Delete a file
// @Tags Files
// @Produce json
// @Security BearerAuth
// @Param id path int true "File ID"
// @Success 200 {object} map[string]interface{}
// @Failure 403,404 {object} map[string]interface{}
// @Router /files/{id} [delete]
func (h *Handler) Delete(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}
	id, ok := fileParam(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), actor, id); err != nil {
		h.fail(c, err)
		return
	}
	response.OK(c, nil)
}

// Download godoc
// @Summary Download a file's content
// @Description Streams the stored bytes; the user-visible name is the suggested filename.
// @Tags Files
// @Produce octet-stream
// @Security BearerAuth
// @Param id path int true "File ID"
// @Success 200 {file} binary
// @Failure 403,404 {object} map[string]interface{}
// @Router /files/id/{id} [get]
func (h *Handler) Download(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}
	id, ok := fileParam(c)
	if !ok {
		return
	}

	file, rc, err := h.service.Download(c.Request.Context(), actor, id)
	if err != nil {
		h.fail(c, err)
		return
	}
	defer rc.Close()

	c.DataFromReader(http.StatusOK, file.Size, "application/octet-stream", rc, map[string]string{
		"Content-Disposition": fmt.Sprintf("attachment; filename=%q", file.Name),
	})
}

func (h *Handler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrFileNotFound), errors.Is(err, ErrFolderNotFound):
		response.NotFound(c)
	case errors.Is(err, ErrNotOwner), errors.Is(err, ErrFolderNotYours):
		response.Forbidden(c)
	case errors.Is(err, quota.ErrFileTooLarge):
		response.BadRequest(c, gin.H{"file": fmt.Sprintf("Files can be at most %dMb large", quota.MaxFileSize/1024/1024)})
	case errors.Is(err, quota.ErrStorageFull):
		response.BadRequest(c, gin.H{"file": fmt.Sprintf("You can't upload more than %dMb to the cloud", quota.MaxStorageSize/1024/1024)})
	case errors.Is(err, ErrRestrictedType):
		response.BadRequest(c, gin.H{"file": "Uploading this type of file is not supported."})
	case errors.Is(err, ErrNameTooLong):
		response.BadRequest(c, gin.H{"name": err.Error()})
	default:
		response.ServerError(c)
	}
}

func mustActor(c *gin.Context) (domain.Actor, bool) {
	actor, ok := middleware.ActorFrom(c)
	if !ok {
		response.Fail(c, http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
	}
	return actor, ok
}

func fileParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, gin.H{"message": "Invalid file ID"})
		return 0, false
	}
	return id, true
}

// optionalFolderParam reads the folder ID when the route carries one;
// routes without the param target the root folder.
func optionalFolderParam(c *gin.Context) (*int64, bool) {
	raw := c.Param("id")
	if raw == "" {
		return nil, true
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		response.BadRequest(c, gin.H{"message": "Invalid folder ID"})
		return nil, false
	}
	return &id, true
}
