// Package attendance готовит отметку посещаемости сотрудника с фотографией.
package attendance

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/png"
	"io"
	"strings"
	"time"

	"github.com/disintegration/imaging"
	"github.com/go-playground/validator/v10"
	"golang.org/x/exp/slog"

	"boothadmin/internal/domain/session"
)

const (
	StatusPresent = "hadir"
	StatusLeave   = "izin"
	StatusSick    = "sakit"
)

const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04:05"

	photoQuality = 85
)

var (
	ErrInvalidStatus = errors.New("invalid attendance status")
	ErrNoPhoto       = errors.New("attendance photo is required")
)

// Statuses возвращает допустимые статусы.
func Statuses() []string {
	return []string{StatusPresent, StatusLeave, StatusSick}
}

// Submission - тело POST /data4. Photo - JPEG в base64 без префикса data URL.
type Submission struct {
	UserID string `json:"user_id" validate:"required"`
	Name   string `json:"name" validate:"required"`
	Date   string `json:"date" validate:"required,datetime=2006-01-02"`
	Time   string `json:"time" validate:"required,datetime=15:04:05"`
	Status string `json:"status" validate:"required,oneof=hadir izin sakit"`
	Photo  string `json:"photo" validate:"required,base64"`
}

// NewSubmission заполняет отметку данными сессии и текущим временем.
func NewSubmission(sess session.Session, status, photo string, now time.Time) (Submission, error) {
	if !sess.Authenticated() {
		return Submission{}, session.ErrUnauthenticated
	}
	if !validStatus(status) {
		return Submission{}, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}
	if photo == "" {
		return Submission{}, ErrNoPhoto
	}

	return Submission{
		UserID: sess.UserID,
		Name:   sess.UserName,
		Date:   now.Format(DateLayout),
		Time:   now.Format(TimeLayout),
		Status: status,
		Photo:  StripDataURL(photo),
	}, nil
}

func validStatus(status string) bool {
	for _, s := range Statuses() {
		if s == status {
			return true
		}
	}
	return false
}

// StripDataURL убирает префикс "data:<mime>;base64," у снимка, если он есть.
func StripDataURL(s string) string {
	if !strings.HasPrefix(s, "data:") {
		return s
	}
	if i := strings.Index(s, ","); i >= 0 {
		return s[i+1:]
	}
	return s
}

// EncodePhoto декодирует изображение, уменьшает его так, чтобы большая
// сторона не превышала maxSide, и кодирует в JPEG base64.
func EncodePhoto(r io.Reader, maxSide int) (string, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return "", fmt.Errorf("failed to decode image: %w", err)
	}

	b := img.Bounds()
	if maxSide > 0 && (b.Dx() > maxSide || b.Dy() > maxSide) {
		img = imaging.Fit(img, maxSide, maxSide, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(photoQuality)); err != nil {
		return "", fmt.Errorf("failed to encode photo: %w", err)
	}

	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// Submitter отправляет отметку на сервер.
type Submitter interface {
	SubmitAttendance(ctx context.Context, sub Submission) error
}

type Service struct {
	remote   Submitter
	validate *validator.Validate
	log      *slog.Logger
}

func NewService(remote Submitter, log *slog.Logger) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{
		remote:   remote,
		validate: validator.New(),
		log:      log.With("component", "attendance"),
	}
}

// Submit проверяет отметку и отправляет ее.
func (s *Service) Submit(ctx context.Context, sub Submission) error {
	if err := s.validate.Struct(sub); err != nil {
		return fmt.Errorf("invalid attendance: %w", err)
	}
	if err := s.remote.SubmitAttendance(ctx, sub); err != nil {
		return fmt.Errorf("submit attendance: %w", err)
	}
	s.log.Info("Отметка отправлена", "user_id", sub.UserID, "status", sub.Status, "date", sub.Date)
	return nil
}
