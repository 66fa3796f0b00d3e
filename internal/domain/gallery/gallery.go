// Package gallery - медиатека фотобудки: список фото и видео и загрузка
// новых файлов.
package gallery

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"golang.org/x/exp/slog"
)

type MediaType string

const (
	MediaImage MediaType = "image"
	MediaVideo MediaType = "video"
)

var (
	ErrUnsupportedMedia = errors.New("unsupported media type")
	ErrShapeMismatch    = errors.New("unexpected gallery response shape")
)

// Item - один файл галереи
type Item struct {
	ID        string    `json:"id"`
	URL       string    `json:"url"`
	Type      MediaType `json:"type"`
	Title     string    `json:"title,omitempty"`
	CreatedAt string    `json:"created_at,omitempty"`
}

// Remote - эндпоинты галереи.
type Remote interface {
	ListGallery(ctx context.Context) ([]byte, error)
	UploadMedia(ctx context.Context, field, filename, contentType string, r io.Reader) ([]byte, error)
}

// Normalize разбирает ответ GET /gallery: голый массив или массив под
// ключом data, gallery или items.
func Normalize(body []byte) ([]Item, error) {
	var raw any
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrShapeMismatch, err)
	}

	var list []any
	switch v := raw.(type) {
	case []any:
		list = v
	case map[string]any:
		for _, key := range []string{"data", "gallery", "items"} {
			if l, ok := v[key].([]any); ok {
				list = l
				break
			}
		}
		if list == nil {
			return nil, fmt.Errorf("%w: object without a known array key", ErrShapeMismatch)
		}
	default:
		return nil, fmt.Errorf("%w: %T", ErrShapeMismatch, raw)
	}

	items := make([]Item, 0, len(list))
	for i, el := range list {
		obj, ok := el.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: element %d is %T", ErrShapeMismatch, i, el)
		}
		items = append(items, normalizeItem(obj))
	}
	return items, nil
}

func normalizeItem(obj map[string]any) Item {
	item := Item{
		ID:        str(obj, "id", "_id"),
		URL:       str(obj, "url", "file_url", "image_url", "path", "file"),
		Title:     str(obj, "title", "caption", "name"),
		CreatedAt: str(obj, "created_at", "createdAt"),
	}
	switch MediaType(strings.ToLower(str(obj, "type", "media_type"))) {
	case MediaVideo:
		item.Type = MediaVideo
	case MediaImage:
		item.Type = MediaImage
	default:
		item.Type = typeByExtension(item.URL)
	}
	return item
}

func typeByExtension(u string) MediaType {
	switch strings.ToLower(path.Ext(u)) {
	case ".mp4", ".mov", ".webm", ".mkv", ".avi":
		return MediaVideo
	default:
		return MediaImage
	}
}

func str(obj map[string]any, keys ...string) string {
	for _, key := range keys {
		switch v := obj[key].(type) {
		case string:
			if v != "" {
				return v
			}
		case float64:
			return strconv.FormatFloat(v, 'f', -1, 64)
		}
	}
	return ""
}

// FieldFor возвращает имя поля multipart-формы по MIME типу файла.
func FieldFor(mime *mimetype.MIME) (MediaType, error) {
	for m := mime; m != nil; m = m.Parent() {
		switch {
		case strings.HasPrefix(m.String(), "image/"):
			return MediaImage, nil
		case strings.HasPrefix(m.String(), "video/"):
			return MediaVideo, nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrUnsupportedMedia, mime.String())
}

type Service struct {
	remote Remote
	log    *slog.Logger
}

func NewService(remote Remote, log *slog.Logger) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{remote: remote, log: log.With("component", "gallery")}
}

func (s *Service) List(ctx context.Context) ([]Item, error) {
	body, err := s.remote.ListGallery(ctx)
	if err != nil {
		return nil, err
	}
	return Normalize(body)
}

// Upload определяет тип файла по содержимому и загружает его в поле image
// или video. Остальные типы не отправляются.
func (s *Service) Upload(ctx context.Context, file string) (MediaType, error) {
	mime, err := mimetype.DetectFile(file)
	if err != nil {
		return "", fmt.Errorf("detect media type: %w", err)
	}

	field, err := FieldFor(mime)
	if err != nil {
		return "", err
	}

	f, err := os.Open(file)
	if err != nil {
		return "", fmt.Errorf("open media: %w", err)
	}
	defer f.Close()

	if _, err := s.remote.UploadMedia(ctx, string(field), filepath.Base(file), mime.String(), f); err != nil {
		return "", fmt.Errorf("upload media: %w", err)
	}

	s.log.Info("Файл загружен", "file", filepath.Base(file), "type", field, "mime", mime.String())
	return field, nil
}
