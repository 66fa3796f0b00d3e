package crypto

import (
	"context"
	"errors"

	"golang.org/x/exp/slog"

	"boothadmin/internal/domain/session"
)

// SealedRepository хранит значения сессии зашифрованными. Значение, которое
// не удается расшифровать (например, после замены файла ключа), читается
// как отсутствующее: пользователю нужно войти заново.
type SealedRepository struct {
	inner  session.Repository
	sealer *Sealer
	log    *slog.Logger
}

func NewSealedRepository(inner session.Repository, sealer *Sealer, log *slog.Logger) *SealedRepository {
	return &SealedRepository{
		inner:  inner,
		sealer: sealer,
		log:    log.With("component", "sealed_session"),
	}
}

func (r *SealedRepository) Get(ctx context.Context, key string) (string, error) {
	sealed, err := r.inner.Get(ctx, key)
	if err != nil || sealed == "" {
		return sealed, err
	}

	value, err := r.sealer.Open(sealed)
	if errors.Is(err, ErrCorrupted) {
		r.log.Warn("Не удалось расшифровать значение сессии", "key", key, "error", err)
		return "", nil
	}
	return value, err
}

func (r *SealedRepository) Set(ctx context.Context, values map[string]string) error {
	sealed := make(map[string]string, len(values))
	for k, v := range values {
		s, err := r.sealer.Seal(v)
		if err != nil {
			return err
		}
		sealed[k] = s
	}
	return r.inner.Set(ctx, sealed)
}

func (r *SealedRepository) Clear(ctx context.Context, keys ...string) error {
	return r.inner.Clear(ctx, keys...)
}
