package ubersmith

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

const (
	// MethodField is the form field carrying the dotted method name.
	MethodField = "method"

	DefaultUserAgent = "ubersmith-go"
)

// Config provides configuration options for a Client.
type Config struct {
	// BaseURL is the API endpoint, e.g. https://billing.example.com/api/2.0/.
	BaseURL string

	// HTTPClient is used for all requests. If nil, http.DefaultClient is used,
	// which picks up a stubbed http.DefaultTransport.
	HTTPClient *http.Client

	// Logger receives debug output. If nil, logging is disabled.
	Logger *zap.Logger

	// UserAgent overrides DefaultUserAgent.
	UserAgent string
}

// Client calls Ubersmith API methods and decodes their envelopes.
type Client struct {
	endpoint  *url.URL
	http      *http.Client
	logger    *zap.Logger
	userAgent string
}

func New(config Config) (*Client, error) {
	if config.BaseURL == "" {
		return nil, ErrBaseURLEmpty
	}

	endpoint, err := url.Parse(config.BaseURL)
	if err != nil {
		return nil, errors.Wrap(err, "parse base url")
	}

	c := &Client{
		endpoint:  endpoint,
		http:      config.HTTPClient,
		logger:    config.Logger,
		userAgent: config.UserAgent,
	}
	if c.http == nil {
		c.http = http.DefaultClient
	}
	if c.logger == nil {
		c.logger = zap.NewNop()
	}
	if c.userAgent == "" {
		c.userAgent = DefaultUserAgent
	}

	return c, nil
}

// Call invokes method with params and returns the decoded data. Objects decode
// to map[string]interface{} and numbers to json.Number.
func (c *Client) Call(ctx context.Context, method string, params Params) (interface{}, error) {
	var data interface{}
	if err := c.CallInto(ctx, method, params, &data); err != nil {
		return nil, err
	}

	return data, nil
}

// CallInto invokes method with params and decodes the data into dest.
func (c *Client) CallInto(ctx context.Context, method string, params Params, dest interface{}) error {
	if method == "" {
		return ErrMethodEmpty
	}

	values := EncodeParams(params)
	body := values.URLValues(method).Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint.String(), strings.NewReader(body))
	if err != nil {
		return errors.Wrap(err, "create request")
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	c.logger.Debug("calling api method",
		zap.String("method", method),
		zap.Any("params", values),
	)

	resp, err := c.http.Do(req)
	if err != nil {
		return errors.Wrapf(err, "call %s", method)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	// the api reports failures inside 200 envelopes; anything else is a
	// gateway or server fault and the body is not an envelope
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return errors.Wrapf(ErrUnexpectedStatus, "call %s: %s", method, resp.Status)
	}

	if err := decodeEnvelope(resp.Body, dest); err != nil {
		c.logger.Debug("api method failed",
			zap.String("method", method),
			zap.Error(err),
		)

		return err
	}

	return nil
}

// Namespace returns the methods of resource name, e.g. "client" or "device".
func (c *Client) Namespace(name string) *Resource {
	return &Resource{
		client: c,
		name:   name,
	}
}

// Resource calls methods under one API namespace.
type Resource struct {
	client *Client
	name   string
}

// Name returns the namespace name.
func (r *Resource) Name() string {
	return r.name
}

func (r *Resource) Call(ctx context.Context, method string, params Params) (interface{}, error) {
	return r.client.Call(ctx, r.name+"."+method, params)
}

func (r *Resource) CallInto(ctx context.Context, method string, params Params, dest interface{}) error {
	return r.client.CallInto(ctx, r.name+"."+method, params, dest)
}
