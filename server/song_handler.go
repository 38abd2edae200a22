package server

import (
	"net/http"
	"strconv"

	"cratefm/core/catalog"

	"github.com/gorilla/mux"
)

// CreateSongHandler handles POST /api/v1/song/new.
func (h *APIHandler) CreateSongHandler(w http.ResponseWriter, r *http.Request) {
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

	albumID, err := strconv.ParseInt(r.FormValue("album"), 10, 64)
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid album ID")
		return
	}

	if err := h.catalog.CreateSong(r.Context(), caller, catalog.CreateSongRequest{
		Title:       r.FormValue("title"),
		Description: r.FormValue("description"),
		AlbumID:     albumID,
		File:        file,
		ContentType: contentType,
	}); err != nil {
		writePipelineError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{
		"message": "Song added successfully",
	})
}

// SetSongThumbnailHandler handles POST /api/v1/song/{id}.
func (h *APIHandler) SetSongThumbnailHandler(w http.ResponseWriter, r *http.Request) {
	caller, err := IdentityFromContext(r.Context())
	if err != nil {
		writeMessage(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid song ID")
		return
	}

	file, contentType, err := readUploadedFile(r)
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "Failed to parse form")
		return
	}

	song, err := h.catalog.SetSongThumbnail(r.Context(), caller, id, file, contentType)
	if err != nil {
		writePipelineError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Thumbnail added successfully",
		"song":    song,
	})
}

// DeleteSongHandler handles DELETE /api/v1/song/{id}.
func (h *APIHandler) DeleteSongHandler(w http.ResponseWriter, r *http.Request) {
	caller, err := IdentityFromContext(r.Context())
	if err != nil {
		writeMessage(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid song ID")
		return
	}

	if err := h.catalog.DeleteSong(r.Context(), caller, id); err != nil {
		writePipelineError(w, err)
		return
	}

	writeMessage(w, http.StatusOK, "Song deleted successfully")
}
