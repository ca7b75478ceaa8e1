package storage

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/bgpaten/ahyarpattani/errs"
	"github.com/bgpaten/ahyarpattani/models"
)

// GlobalOwner is the owner segment for uploads not tied to a project.
const GlobalOwner = "global"

const DefaultMaxFileSize = 50 << 20

type Folder string

const (
	FolderThumbnail Folder = "thumbnail"
	FolderGallery   Folder = "gallery"
)

func (f Folder) Valid() bool {
	return f == FolderThumbnail || f == FolderGallery
}

var allowedExtensions = map[string]models.MediaType{
	"jpg":  models.MediaTypeImage,
	"jpeg": models.MediaTypeImage,
	"png":  models.MediaTypeImage,
	"gif":  models.MediaTypeImage,
	"webp": models.MediaTypeImage,
	"svg":  models.MediaTypeImage,
	"mp4":  models.MediaTypeVideo,
	"webm": models.MediaTypeVideo,
	"mov":  models.MediaTypeVideo,
}

var contentTypes = map[string]string{
	"jpg":  "image/jpeg",
	"jpeg": "image/jpeg",
	"png":  "image/png",
	"gif":  "image/gif",
	"webp": "image/webp",
	"svg":  "image/svg+xml",
	"mp4":  "video/mp4",
	"webm": "video/webm",
	"mov":  "video/quicktime",
}

// AllowedExtensions lists the accepted file extensions, sorted.
func AllowedExtensions() []string {
	exts := make([]string, 0, len(allowedExtensions))
	for ext := range allowedExtensions {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

// Extension returns the lowercased extension of filename without the dot.
func Extension(filename string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))
}

// MediaTypeFor infers the gallery media type from a file name or URL.
func MediaTypeFor(filename string) (models.MediaType, bool) {
	t, ok := allowedExtensions[Extension(filename)]
	return t, ok
}

// ObjectKey builds projects/{owner}/{folder}/{random}.{ext}.
func ObjectKey(owner string, folder Folder, ext string) string {
	name := strings.ReplaceAll(uuid.NewString(), "-", "")
	return fmt.Sprintf("projects/%s/%s/%s.%s", owner, folder, name, ext)
}

// ObjectStore writes objects and reports the URL they are publicly served from.
type ObjectStore interface {
	Put(ctx context.Context, key string, body io.Reader, size int64, contentType string) error
	PublicURL(key string) string
}

type Upload struct {
	Owner    string
	Folder   Folder
	Filename string
	Size     int64
	Body     io.Reader
}

type UploadResult struct {
	URL  string           `json:"url"`
	Path string           `json:"path"`
	Type models.MediaType `json:"type"`
}

// Uploader validates uploads and places them in an ObjectStore. Uploads are
// independent of project saves; nothing removes objects a save never used.
type Uploader struct {
	store   ObjectStore
	maxSize int64
}

func NewUploader(store ObjectStore, maxSize int64) *Uploader {
	if maxSize <= 0 {
		maxSize = DefaultMaxFileSize
	}
	return &Uploader{store: store, maxSize: maxSize}
}

func (u *Uploader) MaxSize() int64 {
	return u.maxSize
}

func (u *Uploader) Upload(ctx context.Context, up Upload) (*UploadResult, error) {
	owner := strings.TrimSpace(up.Owner)
	if owner == "" {
		owner = GlobalOwner
	}
	if owner != GlobalOwner {
		if _, err := uuid.Parse(owner); err != nil {
			return nil, errs.NewInvalidFieldError("project_id", "must be a project id or \"global\"")
		}
	}
	if up.Folder == "" {
		up.Folder = FolderGallery
	}
	if !up.Folder.Valid() {
		return nil, errs.NewInvalidFieldError("folder", "must be thumbnail or gallery")
	}

	ext := Extension(up.Filename)
	mediaType, ok := allowedExtensions[ext]
	if !ok {
		return nil, errs.NewUnsupportedMediaTypeError(ext, AllowedExtensions())
	}
	if up.Size > u.maxSize {
		return nil, errs.NewMaxBodySizeExceededError(u.maxSize)
	}

	key := ObjectKey(owner, up.Folder, ext)
	if err := u.store.Put(ctx, key, up.Body, up.Size, contentTypes[ext]); err != nil {
		return nil, errs.NewStorageUnavailableError("upload", err)
	}

	return &UploadResult{
		URL:  u.store.PublicURL(key),
		Path: key,
		Type: mediaType,
	}, nil
}
