package routes

import (
	"encoding/json"
	"errors"
	"fmt"
	"mime"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/labstack/echo/v4"
	gonanoid "github.com/matoous/go-nanoid/v2"

	"github.com/luppa-project/luppa/internal/queue"
	"github.com/luppa-project/luppa/internal/server/middleware"
	"github.com/luppa-project/luppa/internal/storage"
	"github.com/luppa-project/luppa/pkg/loader"
	"github.com/luppa-project/luppa/pkg/logger"
	"github.com/luppa-project/luppa/pkg/store"
)

var documentTypes = map[string]bool{
	string(loader.DocumentTypeDeclaration): true,
	string(loader.DocumentTypeProcurement): true,
	string(loader.DocumentTypeRegistry):    true,
	string(loader.DocumentTypePress):       true,
}

// Formats the extraction pipeline can turn into text. Everything else is
// rejected at upload so binary content never reaches the tokenizer.
var supportedUploadExts = map[string]bool{
	".txt": true,
	".md":  true,
	".csv": true,
	".pdf": true,
}

func isSupportedUpload(filename string) bool {
	return supportedUploadExts[strings.ToLower(filepath.Ext(filename))]
}

// AddDocumentHandler uploads a document to a case and queues it for analysis
// (multipart/form-data)
func AddDocumentHandler(c echo.Context) error {
	type addDocumentBody struct {
		CaseID       string `param:"id" validate:"required"`
		DocumentType string `form:"document_type" validate:"required"`
	}

	type addDocumentResponse struct {
		Message       string `json:"message"`
		CaseID        string `json:"case_id,omitempty"`
		DocumentKey   string `json:"document_key,omitempty"`
		CorrelationID string `json:"correlation_id,omitempty"`
	}

	data := new(addDocumentBody)
	if err := c.Bind(data); err != nil {
		return c.JSON(http.StatusBadRequest, addDocumentResponse{
			Message: "Invalid request body",
		})
	}
	if err := c.Validate(data); err != nil {
		return c.JSON(http.StatusBadRequest, addDocumentResponse{
			Message: "Invalid request body",
		})
	}
	if !documentTypes[data.DocumentType] {
		return c.JSON(http.StatusBadRequest, addDocumentResponse{
			Message: "Unknown document type",
		})
	}

	form, err := c.MultipartForm()
	if err != nil {
		return c.JSON(http.StatusBadRequest, addDocumentResponse{
			Message: "Invalid request body",
		})
	}
	uploads := form.File["file"]
	if len(uploads) != 1 {
		return c.JSON(http.StatusBadRequest, addDocumentResponse{
			Message: "Exactly one file must be provided",
		})
	}
	upload := uploads[0]
	if !isSupportedUpload(upload.Filename) {
		return c.JSON(http.StatusBadRequest, addDocumentResponse{
			Message: "Unsupported file format",
		})
	}

	ctx := c.Request().Context()
	resultStore := c.(*middleware.AppContext).App.Store

	if _, err := resultStore.GetCase(ctx, data.CaseID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return c.JSON(http.StatusNotFound, addDocumentResponse{
				Message: "Case not found",
			})
		}
		logger.Error("Failed to get case", "err", err)
		return c.JSON(http.StatusInternalServerError, addDocumentResponse{
			Message: "Internal server error",
		})
	}

	src, err := upload.Open()
	if err != nil {
		return c.JSON(http.StatusBadRequest, addDocumentResponse{
			Message: "Could not open file",
		})
	}
	defer src.Close()

	fId, err := gonanoid.New()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, addDocumentResponse{
			Message: "Internal server error",
		})
	}

	s3Client := c.(*middleware.AppContext).App.S3
	key, err := storage.PutFile(
		ctx,
		s3Client,
		fmt.Sprintf("cases/%s/documents", data.CaseID),
		upload.Filename,
		fId,
		src,
	)
	if err != nil {
		logger.Error("Failed to upload file", "err", err)
		return c.JSON(http.StatusInternalServerError, addDocumentResponse{
			Message: "Internal server error",
		})
	}

	queueData := queue.AnalyzeDocumentMsg{
		Message:       "Document queued for analysis",
		CaseID:        data.CaseID,
		DocumentKey:   key,
		DocumentType:  data.DocumentType,
		DocumentName:  upload.Filename,
		CorrelationID: fId,
	}
	msgBytes, err := json.Marshal(queueData)
	if err != nil {
		logger.Error("Failed to marshal queue message", "err", err)
		return c.JSON(http.StatusInternalServerError, addDocumentResponse{
			Message: "Internal server error",
		})
	}

	ch := c.(*middleware.AppContext).App.Queue
	if err := queue.PublishFIFO(ch, queue.AnalyzeQueue, msgBytes); err != nil {
		logger.Error("Failed to publish to analyze_queue", "err", err)
		return c.JSON(http.StatusInternalServerError, addDocumentResponse{
			Message: "Internal server error",
		})
	}

	return c.JSON(http.StatusOK, addDocumentResponse{
		Message:       "Document queued for analysis",
		CaseID:        data.CaseID,
		DocumentKey:   key,
		CorrelationID: fId,
	})
}

// AddLinkHandler queues a press article URL for analysis
func AddLinkHandler(c echo.Context) error {
	type addLinkBody struct {
		CaseID string `param:"id" validate:"required"`
		URL    string `json:"url" validate:"required,url"`
		Name   string `json:"name"`
	}

	type addLinkResponse struct {
		Message       string `json:"message"`
		CaseID        string `json:"case_id,omitempty"`
		DocumentKey   string `json:"document_key,omitempty"`
		CorrelationID string `json:"correlation_id,omitempty"`
	}

	data := new(addLinkBody)
	if err := c.Bind(data); err != nil {
		return c.JSON(http.StatusBadRequest, addLinkResponse{
			Message: "Invalid request body",
		})
	}
	if err := c.Validate(data); err != nil {
		return c.JSON(http.StatusBadRequest, addLinkResponse{
			Message: "Invalid request body",
		})
	}

	ctx := c.Request().Context()
	resultStore := c.(*middleware.AppContext).App.Store

	if _, err := resultStore.GetCase(ctx, data.CaseID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return c.JSON(http.StatusNotFound, addLinkResponse{
				Message: "Case not found",
			})
		}
		logger.Error("Failed to get case", "err", err)
		return c.JSON(http.StatusInternalServerError, addLinkResponse{
			Message: "Internal server error",
		})
	}

	fId, err := gonanoid.New()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, addLinkResponse{
			Message: "Internal server error",
		})
	}

	name := data.Name
	if name == "" {
		name = data.URL
	}

	queueData := queue.AnalyzeDocumentMsg{
		Message:       "Press article queued for analysis",
		CaseID:        data.CaseID,
		DocumentKey:   data.URL,
		DocumentType:  string(loader.DocumentTypePress),
		DocumentName:  name,
		CorrelationID: fId,
	}
	msgBytes, err := json.Marshal(queueData)
	if err != nil {
		logger.Error("Failed to marshal queue message", "err", err)
		return c.JSON(http.StatusInternalServerError, addLinkResponse{
			Message: "Internal server error",
		})
	}

	ch := c.(*middleware.AppContext).App.Queue
	if err := queue.PublishFIFO(ch, queue.AnalyzeQueue, msgBytes); err != nil {
		logger.Error("Failed to publish to analyze_queue", "err", err)
		return c.JSON(http.StatusInternalServerError, addLinkResponse{
			Message: "Internal server error",
		})
	}

	return c.JSON(http.StatusOK, addLinkResponse{
		Message:       "Press article queued for analysis",
		CaseID:        data.CaseID,
		DocumentKey:   data.URL,
		CorrelationID: fId,
	})
}

// GetDocumentHandler returns the raw content of an uploaded case document
func GetDocumentHandler(c echo.Context) error {
	type getDocumentBody struct {
		CaseID      string `param:"id" validate:"required"`
		DocumentKey string `json:"document_key" validate:"required"`
	}

	data := new(getDocumentBody)
	if err := c.Bind(data); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": "Invalid request body"})
	}
	if err := c.Validate(data); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": "Invalid request body"})
	}
	if !strings.HasPrefix(data.DocumentKey, fmt.Sprintf("cases/%s/documents/", data.CaseID)) {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": "Document does not belong to this case"})
	}

	ctx := c.Request().Context()
	s3Client := c.(*middleware.AppContext).App.S3

	content, err := storage.GetFile(ctx, s3Client, data.DocumentKey)
	if err != nil {
		logger.Error("Failed to get document", "key", data.DocumentKey, "err", err)
		return c.JSON(http.StatusNotFound, map[string]string{"message": "Document not found"})
	}

	contentType := mime.TypeByExtension(filepath.Ext(data.DocumentKey))
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	return c.Blob(http.StatusOK, contentType, content)
}

// DeleteDocumentHandler removes an uploaded case document from storage
func DeleteDocumentHandler(c echo.Context) error {
	type deleteDocumentBody struct {
		CaseID      string `param:"id" validate:"required"`
		DocumentKey string `json:"document_key" validate:"required"`
	}

	type deleteDocumentResponse struct {
		Message string `json:"message"`
	}

	data := new(deleteDocumentBody)
	if err := c.Bind(data); err != nil {
		return c.JSON(http.StatusBadRequest, deleteDocumentResponse{
			Message: "Invalid request body",
		})
	}
	if err := c.Validate(data); err != nil {
		return c.JSON(http.StatusBadRequest, deleteDocumentResponse{
			Message: "Invalid request body",
		})
	}
	if !strings.HasPrefix(data.DocumentKey, fmt.Sprintf("cases/%s/documents/", data.CaseID)) {
		return c.JSON(http.StatusBadRequest, deleteDocumentResponse{
			Message: "Document does not belong to this case",
		})
	}

	ctx := c.Request().Context()
	s3Client := c.(*middleware.AppContext).App.S3

	if err := storage.DeleteFile(ctx, s3Client, data.DocumentKey); err != nil {
		logger.Error("Failed to delete document", "key", data.DocumentKey, "err", err)
		return c.JSON(http.StatusInternalServerError, deleteDocumentResponse{
			Message: "Internal server error",
		})
	}

	return c.JSON(http.StatusOK, deleteDocumentResponse{
		Message: "Document deleted successfully",
	})
}
