package handler

import (
	"errors"
	"fmt"
	"io"

	"github.com/gin-gonic/gin"
	"github.com/mrvenom1989-code/tara-solar-erp/internal/repository"
	"github.com/mrvenom1989-code/tara-solar-erp/internal/service"
)

// DocumentHandler handles project file uploads and downloads.
type DocumentHandler struct {
	svc *service.DocumentService
}

func NewDocumentHandler(svc *service.DocumentService) *DocumentHandler {
	return &DocumentHandler{svc: svc}
}

// Upload accepts a multipart file plus a "type" form field.
func (h *DocumentHandler) Upload(c *gin.Context) {
	projectID := c.Param("id")
	if projectID == "" {
		BadRequest(c, "Project ID is required")
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		BadRequest(c, "File is required")
		return
	}
	docType := c.PostForm("type")

	file, err := fileHeader.Open()
	if err != nil {
		InternalError(c, err.Error())
		return
	}
	defer file.Close()

	doc, err := h.svc.Upload(c.Request.Context(), projectID, GetUserID(c),
		fileHeader.Filename, docType, fileHeader.Header.Get("Content-Type"),
		fileHeader.Size, file)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			NotFound(c, "Project not found")
		case errors.Is(err, service.ErrStorageNotConfigured):
			InternalError(c, "Storage not configured")
		default:
			InternalError(c, err.Error())
		}
		return
	}

	Created(c, doc)
}

// List returns the project's documents.
func (h *DocumentHandler) List(c *gin.Context) {
	projectID := c.Param("id")
	if projectID == "" {
		BadRequest(c, "Project ID is required")
		return
	}

	docs, err := h.svc.List(c.Request.Context(), projectID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			NotFound(c, "Project not found")
			return
		}
		InternalError(c, err.Error())
		return
	}

	Success(c, docs)
}

// Download streams a stored document.
func (h *DocumentHandler) Download(c *gin.Context) {
	id := c.Param("docId")
	if id == "" {
		BadRequest(c, "Document ID is required")
		return
	}

	doc, reader, err := h.svc.Download(c.Request.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			NotFound(c, "Document not found")
		case errors.Is(err, service.ErrStorageNotConfigured):
			InternalError(c, "Storage not configured")
		default:
			InternalError(c, err.Error())
		}
		return
	}
	defer reader.Close()

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, doc.Name))
	contentType := doc.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	c.Header("Content-Type", contentType)
	c.Status(200)
	io.Copy(c.Writer, reader)
}

// Delete removes a document. The record goes even if the stored object
// cannot be removed.
func (h *DocumentHandler) Delete(c *gin.Context) {
	id := c.Param("docId")
	if id == "" {
		BadRequest(c, "Document ID is required")
		return
	}

	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			NotFound(c, "Document not found")
			return
		}
		InternalError(c, err.Error())
		return
	}

	Success(c, nil)
}
