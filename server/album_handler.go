package server

import (
	"net/http"
	"strconv"

	"cratefm/core/catalog"

	"github.com/gorilla/mux"
)

// CreateAlbumHandler handles POST /api/v1/album/new.
func (h *APIHandler) CreateAlbumHandler(w http.ResponseWriter, r *http.Request) {
	caller, err := IdentityFromContext(r.Context())
	if err != nil {
		writeMessage(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	file, contentType, err := readUploadedFile(r)
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "Failed to parse form")
		return
	}

	album, err := h.catalog.CreateAlbum(r.Context(), caller, catalog.CreateAlbumRequest{
		Title:       r.FormValue("title"),
		Description: r.FormValue("description"),
		File:        file,
		ContentType: contentType,
	})
	if err != nil {
		writePipelineError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "Album created successfully",
		"album":   album,
	})
}

// DeleteAlbumHandler handles DELETE /api/v1/album/{id}.
func (h *APIHandler) DeleteAlbumHandler(w http.ResponseWriter, r *http.Request) {
	caller, err := IdentityFromContext(r.Context())
	if err != nil {
		writeMessage(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid album ID")
		return
	}

	if err := h.catalog.DeleteAlbum(r.Context(), caller, id); err != nil {
		writePipelineError(w, err)
		return
	}

	writeMessage(w, http.StatusOK, "Album deleted successfully")
}
