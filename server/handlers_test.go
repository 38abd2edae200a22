package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"cratefm/core/catalog"
	"cratefm/model"

	"github.com/google/go-cmp/cmp"
)

type mockCatalog struct {
	CreateAlbumFn      func(ctx context.Context, caller *model.Identity, req catalog.CreateAlbumRequest) (*model.Album, error)
	CreateSongFn       func(ctx context.Context, caller *model.Identity, req catalog.CreateSongRequest) error
	SetSongThumbnailFn func(ctx context.Context, caller *model.Identity, songID int64, file []byte, contentType string) (*model.Song, error)
	DeleteAlbumFn      func(ctx context.Context, caller *model.Identity, id int64) error
	DeleteSongFn       func(ctx context.Context, caller *model.Identity, id int64) error
}

func (m *mockCatalog) CreateAlbum(ctx context.Context, caller *model.Identity, req catalog.CreateAlbumRequest) (*model.Album, error) {
	return m.CreateAlbumFn(ctx, caller, req)
}

func (m *mockCatalog) CreateSong(ctx context.Context, caller *model.Identity, req catalog.CreateSongRequest) error {
	return m.CreateSongFn(ctx, caller, req)
}

func (m *mockCatalog) SetSongThumbnail(ctx context.Context, caller *model.Identity, songID int64, file []byte, contentType string) (*model.Song, error) {
	return m.SetSongThumbnailFn(ctx, caller, songID, file, contentType)
}

func (m *mockCatalog) DeleteAlbum(ctx context.Context, caller *model.Identity, id int64) error {
	return m.DeleteAlbumFn(ctx, caller, id)
}

func (m *mockCatalog) DeleteSong(ctx context.Context, caller *model.Identity, id int64) error {
	return m.DeleteSongFn(ctx, caller, id)
}

type mockIdentity struct {
	ResolveCallerFn func(ctx context.Context, token string) (*model.Identity, error)
}

func (m *mockIdentity) ResolveCaller(ctx context.Context, token string) (*model.Identity, error) {
	return m.ResolveCallerFn(ctx, token)
}

func adminResolver(t *testing.T) *mockIdentity {
	t.Helper()
	return &mockIdentity{
		ResolveCallerFn: func(_ context.Context, token string) (*model.Identity, error) {
			return &model.Identity{ID: "u1", Role: "admin"}, nil
		},
	}
}

// multipartBody builds a multipart form with the given fields and an
// optional "file" part.
func multipartBody(t *testing.T, fields map[string]string, file []byte) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for key, val := range fields {
		if err := writer.WriteField(key, val); err != nil {
			t.Fatalf("failed to write form field: %v", err)
		}
	}
	if file != nil {
		part, err := writer.CreateFormFile("file", "asset.bin")
		if err != nil {
			t.Fatalf("failed to create form file: %v", err)
		}
		if _, err := part.Write(file); err != nil {
			t.Fatalf("failed to write file part: %v", err)
		}
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("failed to close multipart writer: %v", err)
	}
	return body, writer.FormDataContentType()
}

func decodeBody(t *testing.T, body io.Reader) map[string]interface{} {
	t.Helper()
	var res map[string]interface{}
	if err := json.NewDecoder(body).Decode(&res); err != nil {
		t.Fatalf("unexpected error decoding response body: %v", err)
	}
	return res
}

func TestAuthMiddleware(t *testing.T) {
	table := []struct {
		label      string
		token      string
		resolveFn  func(ctx context.Context, token string) (*model.Identity, error)
		expCode    int
		expMessage string
	}{
		{
			label:      "missing token yields 401",
			token:      "",
			expCode:    http.StatusUnauthorized,
			expMessage: "No token provided",
		},
		{
			label: "rejected token yields 403",
			token: "bad",
			resolveFn: func(context.Context, string) (*model.Identity, error) {
				return nil, errors.New("status 401")
			},
			expCode:    http.StatusForbidden,
			expMessage: "please login first",
		},
	}

	for i := 0; i < len(table); i++ {
		ts := table[i]
		t.Run(ts.label, func(t *testing.T) {
			h := NewAPIHandler(&mockCatalog{}, &mockIdentity{ResolveCallerFn: ts.resolveFn})

			next := func(w http.ResponseWriter, r *http.Request) {
				t.Fatal("handler ran without an authenticated caller")
			}

			wr := httptest.NewRecorder()
			req := httptest.NewRequest("DELETE", "/api/v1/song/1", nil)
			if ts.token != "" {
				req.Header.Set("token", ts.token)
			}
			h.AuthMiddleware(next)(wr, req)

			if wr.Code != ts.expCode {
				t.Fatalf("unexpected response code: %s", cmp.Diff(ts.expCode, wr.Code))
			}
			res := decodeBody(t, wr.Body)
			if diff := cmp.Diff(ts.expMessage, res["message"]); diff != "" {
				t.Fatalf("unexpected message: %s", diff)
			}
		})
	}
}

func TestAuthMiddlewarePassesIdentity(t *testing.T) {
	h := NewAPIHandler(&mockCatalog{}, adminResolver(t))

	var got *model.Identity
	next := func(w http.ResponseWriter, r *http.Request) {
		caller, err := IdentityFromContext(r.Context())
		if err != nil {
			t.Fatalf("identity missing from context: %v", err)
		}
		got = caller
	}

	wr := httptest.NewRecorder()
	req := httptest.NewRequest("DELETE", "/api/v1/song/1", nil)
	req.Header.Set("token", "good")
	h.AuthMiddleware(next)(wr, req)

	if got == nil || got.Role != "admin" {
		t.Fatalf("unexpected identity in context: %+v", got)
	}
}

func TestCreateAlbumHandler(t *testing.T) {
	album := &model.Album{ID: 1, Title: "Demo", Description: "d", Thumbnail: "http://cdn/cratefm/albums/u"}

	table := []struct {
		label         string
		fields        map[string]string
		file          []byte
		createAlbumFn func(ctx context.Context, caller *model.Identity, req catalog.CreateAlbumRequest) (*model.Album, error)
		expCode       int
		expMessage    string
	}{
		{
			label:  "created",
			fields: map[string]string{"title": "Demo", "description": "d"},
			file:   []byte("bytes"),
			createAlbumFn: func(_ context.Context, _ *model.Identity, req catalog.CreateAlbumRequest) (*model.Album, error) {
				if req.Title != "Demo" || req.Description != "d" || string(req.File) != "bytes" {
					t.Fatalf("unexpected request passed to pipeline: %+v", req)
				}
				return album, nil
			},
			expCode:    http.StatusCreated,
			expMessage: "Album created successfully",
		},
		{
			label:  "non-admin caller",
			fields: map[string]string{"title": "Demo", "description": "d"},
			file:   []byte("bytes"),
			createAlbumFn: func(context.Context, *model.Identity, catalog.CreateAlbumRequest) (*model.Album, error) {
				return nil, catalog.ErrAccessDenied
			},
			expCode:    http.StatusUnauthorized,
			expMessage: "Access denied",
		},
		{
			label:  "missing file",
			fields: map[string]string{"title": "Demo", "description": "d"},
			createAlbumFn: func(context.Context, *model.Identity, catalog.CreateAlbumRequest) (*model.Album, error) {
				return nil, catalog.ErrValidation
			},
			expCode:    http.StatusBadRequest,
			expMessage: "validation failed",
		},
		{
			label:  "upload failure stays generic",
			fields: map[string]string{"title": "Demo", "description": "d"},
			file:   []byte("bytes"),
			createAlbumFn: func(context.Context, *model.Identity, catalog.CreateAlbumRequest) (*model.Album, error) {
				return nil, catalog.ErrUpload
			},
			expCode:    http.StatusInternalServerError,
			expMessage: "Internal server error",
		},
	}

	for i := 0; i < len(table); i++ {
		ts := table[i]
		t.Run(ts.label, func(t *testing.T) {
			h := NewAPIHandler(&mockCatalog{CreateAlbumFn: ts.createAlbumFn}, adminResolver(t))
			router := NewRouter(h)

			body, contentType := multipartBody(t, ts.fields, ts.file)
			wr := httptest.NewRecorder()
			req := httptest.NewRequest("POST", "/api/v1/album/new", body)
			req.Header.Set("Content-Type", contentType)
			req.Header.Set("token", "good")
			router.ServeHTTP(wr, req)

			if wr.Code != ts.expCode {
				t.Fatalf("unexpected response code: %s", cmp.Diff(ts.expCode, wr.Code))
			}
			res := decodeBody(t, wr.Body)
			if diff := cmp.Diff(ts.expMessage, res["message"]); diff != "" {
				t.Fatalf("unexpected message: %s", diff)
			}
			if ts.expCode == http.StatusCreated {
				got, ok := res["album"].(map[string]interface{})
				if !ok {
					t.Fatalf("expected album row in response, got %v", res)
				}
				if diff := cmp.Diff(album.Title, got["title"]); diff != "" {
					t.Fatalf("unexpected album title: %s", diff)
				}
				if diff := cmp.Diff(album.Thumbnail, got["thumbnail"]); diff != "" {
					t.Fatalf("unexpected album thumbnail: %s", diff)
				}
			}
		})
	}
}

func TestCreateSongHandler(t *testing.T) {
	table := []struct {
		label        string
		fields       map[string]string
		file         []byte
		createSongFn func(ctx context.Context, caller *model.Identity, req catalog.CreateSongRequest) error
		expCode      int
		expMessage   string
	}{
		{
			label:  "created",
			fields: map[string]string{"title": "S", "description": "d", "album": "1"},
			file:   []byte("audio"),
			createSongFn: func(_ context.Context, _ *model.Identity, req catalog.CreateSongRequest) error {
				if req.AlbumID != 1 || string(req.File) != "audio" {
					t.Fatalf("unexpected request passed to pipeline: %+v", req)
				}
				return nil
			},
			expCode:    http.StatusCreated,
			expMessage: "Song added successfully",
		},
		{
			label:      "malformed album id rejected before the pipeline",
			fields:     map[string]string{"title": "S", "description": "d", "album": "abc"},
			file:       []byte("audio"),
			expCode:    http.StatusBadRequest,
			expMessage: "Invalid album ID",
		},
		{
			label:  "album not found",
			fields: map[string]string{"title": "S", "description": "d", "album": "42"},
			file:   []byte("audio"),
			createSongFn: func(context.Context, *model.Identity, catalog.CreateSongRequest) error {
				return catalog.ErrAlbumNotFound
			},
			expCode:    http.StatusNotFound,
			expMessage: "Album not found",
		},
	}

	for i := 0; i < len(table); i++ {
		ts := table[i]
		t.Run(ts.label, func(t *testing.T) {
			h := NewAPIHandler(&mockCatalog{CreateSongFn: ts.createSongFn}, adminResolver(t))
			router := NewRouter(h)

			body, contentType := multipartBody(t, ts.fields, ts.file)
			wr := httptest.NewRecorder()
			req := httptest.NewRequest("POST", "/api/v1/song/new", body)
			req.Header.Set("Content-Type", contentType)
			req.Header.Set("token", "good")
			router.ServeHTTP(wr, req)

			if wr.Code != ts.expCode {
				t.Fatalf("unexpected response code: %s", cmp.Diff(ts.expCode, wr.Code))
			}
			res := decodeBody(t, wr.Body)
			if diff := cmp.Diff(ts.expMessage, res["message"]); diff != "" {
				t.Fatalf("unexpected message: %s", diff)
			}
		})
	}
}

func TestSetSongThumbnailHandler(t *testing.T) {
	thumb := "http://cdn/cratefm/t"
	song := &model.Song{ID: 9, Title: "S", Description: "d", Thumbnail: &thumb, Audio: "a"}

	h := NewAPIHandler(&mockCatalog{
		SetSongThumbnailFn: func(_ context.Context, _ *model.Identity, songID int64, file []byte, contentType string) (*model.Song, error) {
			if songID != 9 {
				t.Fatalf("unexpected song id: %d", songID)
			}
			return song, nil
		},
	}, adminResolver(t))
	router := NewRouter(h)

	body, contentType := multipartBody(t, nil, []byte("img"))
	wr := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/v1/song/9", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("token", "good")
	router.ServeHTTP(wr, req)

	if wr.Code != http.StatusOK {
		t.Fatalf("unexpected response code: %s", cmp.Diff(http.StatusOK, wr.Code))
	}
	res := decodeBody(t, wr.Body)
	got, ok := res["song"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected song row in response, got %v", res)
	}
	if diff := cmp.Diff(thumb, got["thumbnail"]); diff != "" {
		t.Fatalf("unexpected thumbnail: %s", diff)
	}
}

func TestDeleteHandlers(t *testing.T) {
	table := []struct {
		label      string
		method     string
		url        string
		catalog    *mockCatalog
		expCode    int
		expMessage string
	}{
		{
			label:  "album deleted",
			method: "DELETE",
			url:    "/api/v1/album/1",
			catalog: &mockCatalog{DeleteAlbumFn: func(_ context.Context, _ *model.Identity, id int64) error {
				return nil
			}},
			expCode:    http.StatusOK,
			expMessage: "Album deleted successfully",
		},
		{
			label:  "album already deleted",
			method: "DELETE",
			url:    "/api/v1/album/1",
			catalog: &mockCatalog{DeleteAlbumFn: func(context.Context, *model.Identity, int64) error {
				return catalog.ErrAlbumNotFound
			}},
			expCode:    http.StatusNotFound,
			expMessage: "Album not found",
		},
		{
			label:  "song deleted",
			method: "DELETE",
			url:    "/api/v1/song/3",
			catalog: &mockCatalog{DeleteSongFn: func(_ context.Context, _ *model.Identity, id int64) error {
				return nil
			}},
			expCode:    http.StatusOK,
			expMessage: "Song deleted successfully",
		},
		{
			label:  "song missing",
			method: "DELETE",
			url:    "/api/v1/song/3",
			catalog: &mockCatalog{DeleteSongFn: func(context.Context, *model.Identity, int64) error {
				return catalog.ErrSongNotFound
			}},
			expCode:    http.StatusNotFound,
			expMessage: "Song not found",
		},
	}

	for i := 0; i < len(table); i++ {
		ts := table[i]
		t.Run(ts.label, func(t *testing.T) {
			h := NewAPIHandler(ts.catalog, adminResolver(t))
			router := NewRouter(h)

			wr := httptest.NewRecorder()
			req := httptest.NewRequest(ts.method, ts.url, nil)
			req.Header.Set("token", "good")
			router.ServeHTTP(wr, req)

			if wr.Code != ts.expCode {
				t.Fatalf("unexpected response code: %s", cmp.Diff(ts.expCode, wr.Code))
			}
			res := decodeBody(t, wr.Body)
			if diff := cmp.Diff(ts.expMessage, res["message"]); diff != "" {
				t.Fatalf("unexpected message: %s", diff)
			}
		})
	}
}
