package adapter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/dkhalitov/go-cipher-ledger/models"
	"github.com/go-resty/resty/v2"
	"github.com/golang-jwt/jwt/v5"
)

type HTTPClientConfig struct {
	BaseURL string
	Timeout time.Duration
}

type httpServerAdapter struct {
	client *resty.Client

	mu    sync.RWMutex
	token string
}

func NewHTTPServerAdapter(cfg HTTPClientConfig) ServerAdapter {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "http://localhost:8080"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}

	cli := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetTimeout(cfg.Timeout)

	return &httpServerAdapter{client: cli}
}

func (h *httpServerAdapter) SetToken(token string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.token = strings.TrimSpace(token)
}

func (h *httpServerAdapter) Token() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token
}

func (h *httpServerAdapter) Register(ctx context.Context, user models.User) (models.User, error) {
	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(user).
		Post("/api/user/register")
	if err != nil {
		return models.User{}, fmt.Errorf("register request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.User{}, err
	}

	token, err := parseBearerToken(resp.Header().Get("Authorization"))
	if err != nil {
		return models.User{}, fmt.Errorf("register parse bearer token: %w", err)
	}
	userID, err := parseUserIDFromJWT(token)
	if err != nil {
		return models.User{}, fmt.Errorf("register parse user id: %w", err)
	}

	h.SetToken(token)
	return models.User{UserID: userID, Login: user.Login, Name: user.Name}, nil
}

func (h *httpServerAdapter) Login(ctx context.Context, user models.User) (models.Token, error) {
	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(user).
		Post("/api/user/login")
	if err != nil {
		return models.Token{}, fmt.Errorf("login request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Token{}, err
	}

	token, err := parseBearerToken(resp.Header().Get("Authorization"))
	if err != nil {
		return models.Token{}, fmt.Errorf("login parse bearer token: %w", err)
	}
	userID, err := parseUserIDFromJWT(token)
	if err != nil {
		return models.Token{}, fmt.Errorf("login parse user id: %w", err)
	}

	h.SetToken(token)
	return models.Token{SignedString: token, UserID: userID}, nil
}

func (h *httpServerAdapter) Submit(ctx context.Context, request models.SubmitRequest) (int64, error) {
	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(request).
		Post("/api/records")
	if err != nil {
		return 0, fmt.Errorf("submit request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return 0, err
	}

	var submitted models.SubmitResponse
	if err = json.Unmarshal(resp.Body(), &submitted); err != nil {
		return 0, fmt.Errorf("decode submit response: %w", err)
	}

	return submitted.ID, nil
}

func (h *httpServerAdapter) GetRevealed(ctx context.Context, recordID int64) (models.RevealedRecord, error) {
	resp, err := h.authedRequest(ctx).
		Get(fmt.Sprintf("/api/records/%d", recordID))
	if err != nil {
		return models.RevealedRecord{}, fmt.Errorf("get record request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.RevealedRecord{}, err
	}

	var revealed models.RevealedRecord
	if err = json.Unmarshal(resp.Body(), &revealed); err != nil {
		return models.RevealedRecord{}, fmt.Errorf("decode record response: %w", err)
	}

	return revealed, nil
}

func (h *httpServerAdapter) ListRecords(ctx context.Context) ([]models.RecordListItem, error) {
	resp, err := h.authedRequest(ctx).Get("/api/records")
	if err != nil {
		return nil, fmt.Errorf("list records request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	var items []models.RecordListItem
	if err = json.Unmarshal(resp.Body(), &items); err != nil {
		return nil, fmt.Errorf("decode record list response: %w", err)
	}

	return items, nil
}

func (h *httpServerAdapter) ListLabels(ctx context.Context) ([]string, error) {
	resp, err := h.authedRequest(ctx).Get("/api/labels")
	if err != nil {
		return nil, fmt.Errorf("list labels request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	var labels models.LabelListResponse
	if err = json.Unmarshal(resp.Body(), &labels); err != nil {
		return nil, fmt.Errorf("decode label list response: %w", err)
	}

	return labels.Labels, nil
}

func (h *httpServerAdapter) RequestRecordDecryption(ctx context.Context, recordID int64) (string, error) {
	resp, err := h.authedRequest(ctx).
		Post(fmt.Sprintf("/api/records/%d/decrypt", recordID))
	if err != nil {
		return "", fmt.Errorf("record decryption request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return "", err
	}

	var scheduled models.DecryptionResponse
	if err = json.Unmarshal(resp.Body(), &scheduled); err != nil {
		return "", fmt.Errorf("decode decryption response: %w", err)
	}

	return scheduled.RequestID, nil
}

func (h *httpServerAdapter) RequestCountDecryption(ctx context.Context, label string) (string, error) {
	resp, err := h.authedRequest(ctx).
		Post("/api/labels/" + url.PathEscape(label) + "/decrypt")
	if err != nil {
		return "", fmt.Errorf("count decryption request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return "", err
	}

	var scheduled models.DecryptionResponse
	if err = json.Unmarshal(resp.Body(), &scheduled); err != nil {
		return "", fmt.Errorf("decode decryption response: %w", err)
	}

	return scheduled.RequestID, nil
}

func (h *httpServerAdapter) CancelDecryption(ctx context.Context, requestID string) error {
	resp, err := h.authedRequest(ctx).
		Delete("/api/decryptions/" + url.PathEscape(requestID))
	if err != nil {
		return fmt.Errorf("cancel decryption request: %w", err)
	}

	return mapHTTPError(resp)
}

func (h *httpServerAdapter) authedRequest(ctx context.Context) *resty.Request {
	req := h.client.R().SetContext(ctx)
	if token := h.Token(); token != "" {
		req.SetHeader("Authorization", "Bearer "+token)
	}
	return req
}

func mapHTTPError(resp *resty.Response) error {
	if resp.StatusCode() >= http.StatusOK && resp.StatusCode() < http.StatusMultipleChoices {
		return nil
	}

	body := strings.TrimSpace(string(resp.Body()))

	switch resp.StatusCode() {
	case http.StatusUnauthorized:
		return ErrUnauthorized
	case http.StatusForbidden:
		return ErrForbidden
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusConflict:
		return ErrConflict
	}

	if body == "" {
		body = http.StatusText(resp.StatusCode())
	}
	return fmt.Errorf("http %d: %s", resp.StatusCode(), body)
}

func parseBearerToken(value string) (string, error) {
	parts := strings.Split(strings.TrimSpace(value), " ")
	if len(parts) != 2 || parts[1] == "" {
		return "", errors.New("invalid authorization header")
	}
	return parts[1], nil
}

func parseUserIDFromJWT(tokenString string) (int64, error) {
	token, _, err := jwt.NewParser().ParseUnverified(tokenString, jwt.MapClaims{})
	if err != nil {
		return 0, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, errors.New("invalid token claims")
	}

	sub, err := claims.GetSubject()
	if err != nil {
		return 0, err
	}

	id, err := strconv.ParseInt(sub, 10, 64)
	if err != nil {
		return 0, err
	}
	return id, nil
}
