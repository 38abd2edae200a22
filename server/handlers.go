package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"cratefm/core/catalog"
	"cratefm/logger"
	"cratefm/model"
)

// maxUploadMemory caps the in-memory portion of multipart parsing. 32MB.
const maxUploadMemory = 32 << 20

// IdentityResolver resolves a request token into a caller identity via
// the external user service.
type IdentityResolver interface {
	ResolveCaller(ctx context.Context, token string) (*model.Identity, error)
}

// CatalogService is the admin mutation pipeline consumed by the handlers.
type CatalogService interface {
	CreateAlbum(ctx context.Context, caller *model.Identity, req catalog.CreateAlbumRequest) (*model.Album, error)
	CreateSong(ctx context.Context, caller *model.Identity, req catalog.CreateSongRequest) error
	SetSongThumbnail(ctx context.Context, caller *model.Identity, songID int64, file []byte, contentType string) (*model.Song, error)
	DeleteAlbum(ctx context.Context, caller *model.Identity, id int64) error
	DeleteSong(ctx context.Context, caller *model.Identity, id int64) error
}

// APIHandler 持有各处理器依赖
type APIHandler struct {
	catalog  CatalogService
	identity IdentityResolver
}

// NewAPIHandler 创建API处理器
func NewAPIHandler(catalogSvc CatalogService, identity IdentityResolver) *APIHandler {
	return &APIHandler{
		catalog:  catalogSvc,
		identity: identity,
	}
}

type contextKey string

const identityContextKey contextKey = "identity"

// AuthMiddleware resolves the caller identity before any handler runs.
// No token yields 401; a token the user service rejects yields 403.
func (h *APIHandler) AuthMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := r.Header.Get("token")
		if token == "" {
			writeMessage(w, http.StatusUnauthorized, "No token provided")
			return
		}

		caller, err := h.identity.ResolveCaller(r.Context(), token)
		if err != nil {
			logger.Warn("failed to resolve caller", logger.ErrorField(err))
			writeMessage(w, http.StatusForbidden, "please login first")
			return
		}

		ctx := context.WithValue(r.Context(), identityContextKey, caller)
		next.ServeHTTP(w, r.WithContext(ctx))
	}
}

// IdentityFromContext extracts the caller identity set by AuthMiddleware.
func IdentityFromContext(ctx context.Context) (*model.Identity, error) {
	caller, ok := ctx.Value(identityContextKey).(*model.Identity)
	if !ok || caller == nil {
		return nil, fmt.Errorf("identity not found in context")
	}
	return caller, nil
}

// writeJSON 写出JSON响应
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("failed to encode response", logger.ErrorField(err))
	}
}

func writeMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"message": message})
}

// writePipelineError maps a catalog failure onto the response. Database
// and upload failures never leak internals to the caller.
func writePipelineError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, catalog.ErrAccessDenied):
		writeMessage(w, http.StatusUnauthorized, "Access denied")
	case errors.Is(err, catalog.ErrValidation):
		writeMessage(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, catalog.ErrAlbumNotFound):
		writeMessage(w, http.StatusNotFound, "Album not found")
	case errors.Is(err, catalog.ErrSongNotFound):
		writeMessage(w, http.StatusNotFound, "Song not found")
	default:
		logger.Error("mutation pipeline failed", logger.ErrorField(err))
		writeMessage(w, http.StatusInternalServerError, "Internal server error")
	}
}

// readUploadedFile pulls the multipart "file" field into memory. A missing
// file is not an error here; the pipeline validates presence at the right
// point of each operation.
func readUploadedFile(r *http.Request) ([]byte, string, error) {
	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		return nil, "", err
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		if err == http.ErrMissingFile {
			return nil, "", nil
		}
		return nil, "", err
	}
	defer file.Close()

	payload, err := io.ReadAll(file)
	if err != nil {
		return nil, "", err
	}

	return payload, header.Header.Get("Content-Type"), nil
}
