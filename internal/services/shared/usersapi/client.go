// Package usersapi fetches the user list from the CRM users endpoint.
package usersapi

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/louisbranch/crm-console/internal/core/usertable"
	platformerrors "github.com/louisbranch/crm-console/internal/platform/errors"
	"github.com/louisbranch/crm-console/internal/platform/logger"
	"github.com/louisbranch/crm-console/internal/platform/requestctx"
	"github.com/louisbranch/crm-console/internal/platform/timeouts"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const (
	usersPath  = "/users"
	tracerName = "github.com/louisbranch/crm-console/usersapi"
)

// Config configures the users API client.
type Config struct {
	BaseURL string
	Timeout time.Duration
	Logger  logger.Logger
}

// Client is a usertable.Fetcher backed by HTTP.
type Client struct {
	http *resty.Client
	log  logger.Logger
}

var _ usertable.Fetcher = (*Client)(nil)

// New validates cfg and builds a client.
func New(cfg Config) (*Client, error) {
	baseURL, err := normalizeBaseURL(cfg.BaseURL)
	if err != nil {
		return nil, err
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = timeouts.UsersRequest
	}
	log := cfg.Logger
	if log == nil {
		log = logger.Nop()
	}

	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json").
		SetRetryCount(0)

	return &Client{http: client, log: log.With("component", "usersapi")}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimRight(strings.TrimSpace(raw), "/")
	if raw == "" {
		return "", platformerrors.New(platformerrors.CodeUsersUnavailable, "users API base URL is required")
	}
	parsed, err := url.Parse(raw)
	if err != nil {
		return "", platformerrors.Wrap(platformerrors.CodeUsersUnavailable, "invalid users API base URL", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", platformerrors.New(platformerrors.CodeUsersUnavailable, "users API base URL scheme must be http or https, got: "+parsed.Scheme)
	}
	if parsed.Host == "" {
		return "", platformerrors.New(platformerrors.CodeUsersUnavailable, "users API base URL must have a host")
	}
	return raw, nil
}

// FetchUsers issues GET {base}/users and decodes the JSON array body. The
// request is bound to ctx and is not retried.
func (c *Client) FetchUsers(ctx context.Context) ([]usertable.UserRecord, error) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "usersapi.FetchUsers")
	defer span.End()

	var raw []wireUser
	req := c.http.R().
		SetContext(ctx).
		SetResult(&raw).
		ForceContentType("application/json")
	if requestID := requestctx.RequestIDFromContext(ctx); requestID != "" {
		req.SetHeader(requestctx.HeaderRequestID, requestID)
	}
	resp, err := req.Get(usersPath)
	if err != nil {
		span.RecordError(err)
		switch {
		case ctx.Err() != nil:
			span.SetStatus(codes.Error, "request canceled")
			return nil, platformerrors.Wrap(platformerrors.CodeUsersCanceled, "fetch users", ctx.Err())
		case resp != nil && resp.RawResponse != nil && resp.IsSuccess():
			// The status was fine; resty failed to decode the body into raw.
			span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode()))
			span.SetStatus(codes.Error, "malformed body")
			return nil, platformerrors.Wrap(platformerrors.CodeUsersMalformed, "decode users body", err)
		default:
			span.SetStatus(codes.Error, "request failed")
			return nil, platformerrors.Wrap(platformerrors.CodeUsersUnavailable, "fetch users", err)
		}
	}
	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode()))

	if err := handleResponse(resp); err != nil {
		span.SetStatus(codes.Error, "unexpected status")
		c.log.Warn("users API responded with error", "status", resp.StatusCode())
		return nil, err
	}

	users, err := c.decodeUsers(raw)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "malformed body")
		return nil, err
	}
	span.SetAttributes(attribute.Int("users.count", len(users)))
	c.log.Debug("users fetched", "count", len(users))
	return users, nil
}

func handleResponse(resp *resty.Response) error {
	if resp.IsSuccess() {
		return nil
	}
	status := resp.StatusCode()
	message := http.StatusText(status)
	if message == "" {
		message = "unexpected status"
	}
	return platformerrors.WithMetadata(
		platformerrors.CodeUsersUnavailable,
		"users API: "+strconv.Itoa(status)+" "+message,
		map[string]string{"status": strconv.Itoa(status)},
	)
}

// decodeUsers converts the decoded array into records. A null body is not
// an array. Entries are validated with usertable.ValidateRows.
func (c *Client) decodeUsers(raw []wireUser) ([]usertable.UserRecord, error) {
	if raw == nil {
		return nil, platformerrors.New(platformerrors.CodeUsersMalformed, "users body is not an array")
	}
	users := make([]usertable.UserRecord, 0, len(raw))
	for i, w := range raw {
		user, createdAtOK, err := w.record()
		if err != nil {
			return nil, platformerrors.WrapWithMetadata(
				platformerrors.CodeUsersMalformed,
				"decode user at index "+strconv.Itoa(i),
				map[string]string{"index": strconv.Itoa(i)},
				err,
			)
		}
		if !createdAtOK {
			c.log.Warn("ignoring unrecognized created_at", "index", i, "user_id", user.UserID, "created_at", string(w.CreatedAt))
		}
		users = append(users, user)
	}
	if err := usertable.ValidateRows(users); err != nil {
		return nil, err
	}
	return users, nil
}
