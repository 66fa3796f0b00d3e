package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strings"
	"time"

	"golang.org/x/exp/slog"

	"boothadmin/internal/app/client/config"
	"boothadmin/internal/domain/attendance"
	"boothadmin/internal/domain/collection"
	"boothadmin/internal/domain/record"
	"boothadmin/internal/domain/session"
	"boothadmin/internal/metrics"
)

const (
	loginPath      = "/login"
	profilePath    = "/profile"
	attendancePath = "/data4"
	galleryPath    = "/gallery"
	galleryAddPath = "/gallery/add"
)

// TokenSource отдает токен текущей сессии.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// HTTPClient - клиент REST API фотобудки.
type HTTPClient struct {
	client    *http.Client
	log       *slog.Logger
	metrics   *metrics.Metrics
	tokens    TokenSource
	baseURL   string
	userAgent string
}

func NewHTTPClient(cfg *config.Config, tokens TokenSource, m *metrics.Metrics, log *slog.Logger) *HTTPClient {
	if m == nil {
		m = metrics.New()
	}
	client := &http.Client{
		Timeout: cfg.RequestTimeout,
		Transport: &http.Transport{
			MaxIdleConns:        100,
			IdleConnTimeout:     90 * time.Second,
			MaxIdleConnsPerHost: 10,
		},
	}

	return &HTTPClient{
		client:    client,
		log:       log.With("component", "http_client"),
		metrics:   m,
		tokens:    tokens,
		baseURL:   strings.TrimRight(cfg.APIBaseURL, "/"),
		userAgent: "boothadmin/1.0",
	}
}

type apiRequest struct {
	method string
	// endpoint - шаблон пути для логов и метрик, path - фактический путь.
	endpoint    string
	path        string
	body        io.Reader
	contentType string
	auth        bool
	token       string
}

// List возвращает сырой ответ списка коллекции.
func (h *HTTPClient) List(ctx context.Context, kind record.Kind) ([]byte, error) {
	ep := kind.Schema().Endpoints.List
	if ep == "" {
		return nil, fmt.Errorf("list %s: %w", kind, collection.ErrUnsupported)
	}
	return h.do(ctx, apiRequest{method: http.MethodGet, endpoint: ep, path: ep, auth: true})
}

// Get возвращает одну запись (только для коллекций с эндпоинтом детали).
func (h *HTTPClient) Get(ctx context.Context, kind record.Kind, id string) (record.Record, error) {
	schema := kind.Schema()
	ep := schema.Endpoints.Get
	if ep == "" {
		return record.Record{}, fmt.Errorf("get %s: %w", kind, collection.ErrUnsupported)
	}

	body, err := h.do(ctx, apiRequest{method: http.MethodGet, endpoint: ep, path: expand(ep, id), auth: true})
	if err != nil {
		return record.Record{}, err
	}

	rec, err := record.NormalizeOne(schema, body)
	if err != nil {
		return record.Record{}, err
	}
	if rec.ID == "" {
		rec.ID = id
	}
	return rec, nil
}

func (h *HTTPClient) Create(ctx context.Context, kind record.Kind, payload map[string]any) ([]byte, error) {
	ep := kind.Schema().Endpoints.Create
	if ep == "" {
		return nil, fmt.Errorf("create %s: %w", kind, collection.ErrUnsupported)
	}

	body, err := h.doJSON(ctx, http.MethodPost, ep, ep, payload)
	h.metrics.ObserveMutation(kind.String(), collection.ActionCreate, err)
	return body, err
}

func (h *HTTPClient) Update(ctx context.Context, kind record.Kind, id string, payload map[string]any) ([]byte, error) {
	ep := kind.Schema().Endpoints.Update
	if ep == "" {
		return nil, fmt.Errorf("update %s: %w", kind, collection.ErrUnsupported)
	}

	body, err := h.doJSON(ctx, http.MethodPut, ep, expand(ep, id), payload)
	h.metrics.ObserveMutation(kind.String(), collection.ActionUpdate, err)
	return body, err
}

func (h *HTTPClient) Delete(ctx context.Context, kind record.Kind, id string) error {
	ep := kind.Schema().Endpoints.Delete
	if ep == "" {
		return fmt.Errorf("delete %s: %w", kind, collection.ErrUnsupported)
	}

	_, err := h.do(ctx, apiRequest{method: http.MethodDelete, endpoint: ep, path: expand(ep, id), auth: true})
	h.metrics.ObserveMutation(kind.String(), collection.ActionDelete, err)
	return err
}

// Login выполняет вход и возвращает токен.
func (h *HTTPClient) Login(ctx context.Context, email, password string) (string, error) {
	data, err := json.Marshal(map[string]string{"email": email, "password": password})
	if err != nil {
		return "", fmt.Errorf("ошибка маршалинга тела запроса: %w", err)
	}

	body, err := h.do(ctx, apiRequest{
		method:      http.MethodPost,
		endpoint:    loginPath,
		path:        loginPath,
		body:        bytes.NewReader(data),
		contentType: "application/json",
	})
	if err != nil {
		return "", err
	}

	var resp map[string]any
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("ошибка парсинга ответа: %w", err)
	}
	token := firstString(resp, "token", "accessToken", "access_token")
	if inner, ok := resp["data"].(map[string]any); ok && token == "" {
		token = firstString(inner, "token", "accessToken", "access_token")
	}
	return token, nil
}

// Profile запрашивает профиль по явно переданному токену (сессия еще не
// сохранена).
func (h *HTTPClient) Profile(ctx context.Context, token string) (session.Profile, error) {
	body, err := h.do(ctx, apiRequest{
		method:   http.MethodGet,
		endpoint: profilePath,
		path:     profilePath,
		token:    token,
	})
	if err != nil {
		return session.Profile{}, err
	}

	var resp map[string]any
	if err := json.Unmarshal(body, &resp); err != nil {
		return session.Profile{}, fmt.Errorf("ошибка парсинга ответа: %w", err)
	}
	for _, key := range []string{"data", "user", "profile"} {
		if inner, ok := resp[key].(map[string]any); ok {
			resp = inner
			break
		}
	}

	return session.Profile{
		UserID:   firstString(resp, "id", "user_id", "userId"),
		Role:     firstString(resp, "role"),
		UserName: firstString(resp, "name", "username", "userName"),
	}, nil
}

// SubmitAttendance отправляет отметку посещаемости.
func (h *HTTPClient) SubmitAttendance(ctx context.Context, sub attendance.Submission) error {
	_, err := h.doJSON(ctx, http.MethodPost, attendancePath, attendancePath, sub)
	return err
}

// ListGallery возвращает сырой ответ списка медиа.
func (h *HTTPClient) ListGallery(ctx context.Context) ([]byte, error) {
	return h.do(ctx, apiRequest{method: http.MethodGet, endpoint: galleryPath, path: galleryPath, auth: true})
}

// UploadMedia загружает файл галереи multipart-формой с полем field.
func (h *HTTPClient) UploadMedia(ctx context.Context, field, filename, contentType string, r io.Reader) ([]byte, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, field, filename))
	header.Set("Content-Type", contentType)
	part, err := mw.CreatePart(header)
	if err != nil {
		return nil, fmt.Errorf("ошибка создания multipart формы: %w", err)
	}
	if _, err := io.Copy(part, r); err != nil {
		return nil, fmt.Errorf("ошибка чтения файла: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("ошибка создания multipart формы: %w", err)
	}

	return h.do(ctx, apiRequest{
		method:      http.MethodPost,
		endpoint:    galleryAddPath,
		path:        galleryAddPath,
		body:        &buf,
		contentType: mw.FormDataContentType(),
		auth:        true,
	})
}

func (h *HTTPClient) doJSON(ctx context.Context, method, endpoint, path string, payload any) ([]byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("ошибка маршалинга тела запроса: %w", err)
	}
	return h.do(ctx, apiRequest{
		method:      method,
		endpoint:    endpoint,
		path:        path,
		body:        bytes.NewReader(data),
		contentType: "application/json",
		auth:        true,
	})
}

// do выполняет запрос. Для запросов с auth токен берется из сессии; без
// токена запрос не отправляется.
func (h *HTTPClient) do(ctx context.Context, r apiRequest) ([]byte, error) {
	op := r.method + " " + r.endpoint

	token := r.token
	if r.auth {
		if h.tokens == nil {
			return nil, fmt.Errorf("%s: %w", op, session.ErrUnauthenticated)
		}
		t, err := h.tokens.Token(ctx)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		token = t
	}

	req, err := http.NewRequestWithContext(ctx, r.method, h.baseURL+r.path, r.body)
	if err != nil {
		return nil, fmt.Errorf("ошибка создания запроса: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", h.userAgent)
	if r.contentType != "" {
		req.Header.Set("Content-Type", r.contentType)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	h.log.Debug("Отправка запроса",
		"method", r.method,
		"url", req.URL.String(),
	)

	start := time.Now()
	resp, err := h.client.Do(req)
	if err != nil {
		h.metrics.ObserveRequest(r.method, r.endpoint, 0, time.Since(start))
		return nil, &APIError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	h.metrics.ObserveRequest(r.method, r.endpoint, resp.StatusCode, time.Since(start))
	if err != nil {
		return nil, &APIError{Op: op, Err: fmt.Errorf("ошибка чтения ответа: %w", err)}
	}

	h.log.Debug("Получен ответ",
		"status", resp.StatusCode,
		"bytes", len(body),
	)

	if resp.StatusCode >= 400 {
		return nil, &APIError{Op: op, Status: resp.StatusCode, Message: serverMessage(body)}
	}

	return body, nil
}

func expand(path, id string) string {
	return strings.ReplaceAll(path, "{id}", url.PathEscape(id))
}

func firstString(m map[string]any, keys ...string) string {
	for _, key := range keys {
		switch v := m[key].(type) {
		case string:
			if v != "" {
				return v
			}
		case float64:
			return fmt.Sprint(int64(v))
		}
	}
	return ""
}
