package gateway

import (
	"context"
	"net/http"
	"time"

	apperrors "paradisian/pkg/errors"
	"paradisian/pkg/logger"
	"paradisian/pkg/model"
)

// SessionContext supplies credentials to authenticated operations and
// receives refreshed tokens. The gateway never reads ambient storage.
type SessionContext interface {
	Token() string
	RefreshToken() string
	UpdateToken(token string) error
}

// Gateway is the sole channel to the hotel backend: one typed operation per
// endpoint, bearer-token injection, and a single-retry-after-refresh policy
// for authorization failures.
type Gateway struct {
	baseURL    string
	httpClient *http.Client
	log        *logger.Logger
	now        func() time.Time
}

type Options struct {
	BaseURL    string
	Timeout    time.Duration
	HTTPClient *http.Client
	Log        *logger.Logger
	Now        func() time.Time
}

func New(opts Options) *Gateway {
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = defaultHTTPClient(opts.Timeout)
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Gateway{
		baseURL:    opts.BaseURL,
		httpClient: httpClient,
		log:        opts.Log,
		now:        now,
	}
}

type LoginResult struct {
	Token          string
	RefreshToken   string
	Role           string
	ExpirationTime string
}

// Login exchanges credentials for a token and role. The result always carries
// both or the call fails; the caller is responsible for persisting it via the
// session store.
func (g *Gateway) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	body, err := marshalBody(map[string]string{"email": email, "password": password})
	if err != nil {
		return nil, err
	}

	env, err := g.do(ctx, nil, request{
		method:      http.MethodPost,
		path:        "/auth/login",
		body:        body,
		contentType: "application/json",
	})
	if err != nil {
		if apperrors.HasCode(err, apperrors.CodeAuth) || apperrors.HasCode(err, apperrors.CodeNotFound) {
			return nil, apperrors.Auth("invalid email or password")
		}
		return nil, err
	}

	if env.Token == "" || env.Role == "" {
		return nil, apperrors.Network("login response missing token or role", nil)
	}
	return &LoginResult{
		Token:          env.Token,
		RefreshToken:   env.RefreshToken,
		Role:           env.Role,
		ExpirationTime: env.ExpirationTime,
	}, nil
}

// Register creates a new account. Duplicate emails and missing fields come
// back as validation errors carrying the backend's message.
func (g *Gateway) Register(ctx context.Context, user model.User, password string) (string, error) {
	body, err := marshalBody(struct {
		model.User
		Password string `json:"password"`
	}{User: user, Password: password})
	if err != nil {
		return "", err
	}

	env, err := g.do(ctx, nil, request{
		method:      http.MethodPost,
		path:        "/auth/register",
		body:        body,
		contentType: "application/json",
	})
	if err != nil {
		return "", err
	}
	return env.Message, nil
}

// refreshSession trades the stored refresh credential for a fresh bearer
// token and persists it on the session.
func (g *Gateway) refreshSession(ctx context.Context, sess SessionContext) error {
	refreshToken := sess.RefreshToken()
	if refreshToken == "" {
		return apperrors.Auth("no refresh credential available")
	}

	body, err := marshalBody(map[string]string{"token": refreshToken})
	if err != nil {
		return err
	}

	env, err := g.do(ctx, nil, request{
		method:      http.MethodPost,
		path:        "/auth/refresh-token",
		body:        body,
		contentType: "application/json",
	})
	if err != nil {
		return err
	}
	if env.Token == "" {
		return apperrors.Auth("refresh response missing token")
	}
	return sess.UpdateToken(env.Token)
}
