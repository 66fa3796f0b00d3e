// Package crypto защищает сохраненную сессию: значения шифруются AES-GCM
// ключом, выведенным из локального файла ключа.
package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/crypto/hkdf"
)

const (
	seedLength = 32
	keyLength  = 32 // 256 бит для AES-256

	keyPermissions = 0600
	hkdfInfo       = "boothadmin session v1"
)

var ErrCorrupted = errors.New("sealed value is corrupted")

// Sealer шифрует и расшифровывает строковые значения.
type Sealer struct {
	key []byte
}

// NewSealer выводит ключ шифрования из seed.
func NewSealer(seed []byte) (*Sealer, error) {
	if len(seed) < seedLength {
		return nil, fmt.Errorf("seed слишком короткий: %d байт", len(seed))
	}

	key := make([]byte, keyLength)
	if _, err := io.ReadFull(hkdf.New(sha256.New, seed, nil, []byte(hkdfInfo)), key); err != nil {
		return nil, fmt.Errorf("ошибка вывода ключа: %w", err)
	}
	return &Sealer{key: key}, nil
}

// LoadOrCreate читает seed из файла или создает новый файл с правами 0600.
func LoadOrCreate(path string) (*Sealer, error) {
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		seed, err := hex.DecodeString(strings.TrimSpace(string(data)))
		if err != nil {
			return nil, fmt.Errorf("ошибка чтения файла ключа: %w", err)
		}
		return NewSealer(seed)
	case !errors.Is(err, os.ErrNotExist):
		return nil, fmt.Errorf("ошибка чтения файла ключа: %w", err)
	}

	seed, err := GenerateRandomBytes(seedLength)
	if err != nil {
		return nil, err
	}
	defer clearMemory(seed)

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("ошибка создания директории ключа: %w", err)
	}
	if err := os.WriteFile(path, []byte(hex.EncodeToString(seed)), keyPermissions); err != nil {
		return nil, fmt.Errorf("ошибка сохранения файла ключа: %w", err)
	}
	return NewSealer(seed)
}

// Seal шифрует значение. Результат - base64(nonce || ciphertext).
func (s *Sealer) Seal(plaintext string) (string, error) {
	gcm, err := s.gcm()
	if err != nil {
		return "", err
	}

	nonce, err := GenerateRandomBytes(gcm.NonceSize())
	if err != nil {
		return "", err
	}

	sealed := gcm.Seal(nonce, nonce, []byte(plaintext), nil)
	return base64.StdEncoding.EncodeToString(sealed), nil
}

// Open расшифровывает значение, созданное Seal.
func (s *Sealer) Open(sealed string) (string, error) {
	data, err := base64.StdEncoding.DecodeString(sealed)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrCorrupted, err)
	}

	gcm, err := s.gcm()
	if err != nil {
		return "", err
	}

	nonceSize := gcm.NonceSize()
	if len(data) < nonceSize {
		return "", fmt.Errorf("%w: шифротекст слишком короткий", ErrCorrupted)
	}

	nonce, ciphertext := data[:nonceSize], data[nonceSize:]
	plaintext, err := gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrCorrupted, err)
	}
	return string(plaintext), nil
}

func (s *Sealer) gcm() (cipher.AEAD, error) {
	block, err := aes.NewCipher(s.key)
	if err != nil {
		return nil, fmt.Errorf("ошибка создания cipher: %w", err)
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("ошибка создания GCM: %w", err)
	}
	return gcm, nil
}

// GenerateRandomBytes генерирует криптографически безопасные случайные байты
func GenerateRandomBytes(size int) ([]byte, error) {
	bytes := make([]byte, size)
	if _, err := io.ReadFull(rand.Reader, bytes); err != nil {
		return nil, fmt.Errorf("failed to generate random bytes: %w", err)
	}
	return bytes, nil
}

// clearMemory затирает чувствительные данные нулями
func clearMemory(data []byte) {
	for i := range data {
		data[i] = 0
	}
}
