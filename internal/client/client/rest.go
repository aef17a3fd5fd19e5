package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/Austin-Patrician/eastmoney/internal/client/models"
	"github.com/Austin-Patrician/eastmoney/internal/common"
	"github.com/Austin-Patrician/eastmoney/internal/netx"
)

// RESTClient is safe for concurrent use.
type RESTClient struct {
	baseURL string
	http    *http.Client

	mu    sync.RWMutex
	token string
}

func NewRESTClient(baseURL string, timeout time.Duration) *RESTClient {
	return &RESTClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

type credentials struct {
	Username string `json:"username,omitempty"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *RESTClient) Register(ctx context.Context, username, email string, password []byte) (*models.Session, error) {
	in := credentials{Username: username, Email: email, Password: string(password)}
	return s.authenticate(ctx, "/api/auth/register", in)
}

func (s *RESTClient) Login(ctx context.Context, email string, password []byte) (*models.Session, error) {
	in := credentials{Email: email, Password: string(password)}
	return s.authenticate(ctx, "/api/auth/login", in)
}

func (s *RESTClient) authenticate(ctx context.Context, path string, in credentials) (*models.Session, error) {
	var out models.Session
	if err := s.do(ctx, http.MethodPost, path, in, &out); err != nil {
		return nil, err
	}
	if out.Token == "" {
		return nil, fmt.Errorf("%s: empty token in response", path)
	}

	s.mu.Lock()
	s.token = out.Token
	s.mu.Unlock()
	return &out, nil
}

// Logout forgets the bearer token. Tokens are stateless, so the server is
// not contacted.
func (s *RESTClient) Logout() {
	s.mu.Lock()
	s.token = ""
	s.mu.Unlock()
}

// Token returns the current bearer token, empty when logged out.
func (s *RESTClient) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

func (s *RESTClient) Me(ctx context.Context) (*models.User, error) {
	var out struct {
		User models.User `json:"user"`
	}
	if err := s.do(ctx, http.MethodGet, "/api/auth/me", nil, &out); err != nil {
		return nil, err
	}
	return &out.User, nil
}

func (s *RESTClient) ListFunds(ctx context.Context) ([]models.Fund, error) {
	var out struct {
		Funds []models.Fund `json:"funds"`
	}
	if err := s.do(ctx, http.MethodGet, "/api/funds", nil, &out); err != nil {
		return nil, err
	}
	return out.Funds, nil
}

func (s *RESTClient) AddFund(ctx context.Context, f models.NewFund) (*models.Fund, error) {
	var out struct {
		Fund models.Fund `json:"fund"`
	}
	if err := s.do(ctx, http.MethodPost, "/api/funds", f, &out); err != nil {
		return nil, err
	}
	return &out.Fund, nil
}

func (s *RESTClient) DeleteFund(ctx context.Context, id string) error {
	return s.do(ctx, http.MethodDelete, "/api/funds/"+url.PathEscape(id), nil, nil)
}

func (s *RESTClient) SearchFunds(ctx context.Context, keyword string) ([]json.RawMessage, error) {
	var out struct {
		Results []json.RawMessage `json:"results"`
	}
	path := "/api/funds/search?" + url.Values{"keyword": {keyword}}.Encode()
	if err := s.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out.Results, nil
}

// Ping succeeds when the server answers /health with 200.
func (s *RESTClient) Ping(ctx context.Context) error {
	var out models.Health
	return s.do(ctx, http.MethodGet, "/health", nil, &out)
}

func (s *RESTClient) do(ctx context.Context, method, path string, in, out any) error {
	header := http.Header{}
	if tok := s.Token(); tok != "" {
		header.Set(common.AuthorizationHeaderName, common.BearerScheme+tok)
	}
	return mapError(netx.DoJSON(ctx, s.http, method, s.baseURL+path, header, in, out))
}

func mapError(err error) error {
	if err == nil {
		return nil
	}

	var se *netx.StatusError
	if errors.As(err, &se) {
		switch se.StatusCode {
		case http.StatusUnauthorized:
			return fmt.Errorf("%w: %s", ErrUnauthorized, se.Detail)
		case http.StatusNotFound:
			return fmt.Errorf("%w: %s", ErrNotFound, se.Detail)
		case http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
			return fmt.Errorf("%w: %s", ErrUnavailable, se.Detail)
		}
		return err
	}

	var ue *url.Error
	if errors.As(err, &ue) {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return err
}
