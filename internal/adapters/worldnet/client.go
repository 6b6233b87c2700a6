package worldnet

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/kevin07696/worldnet-gateway/internal/adapters/ports"
	pkgerrors "github.com/kevin07696/worldnet-gateway/pkg/errors"
	"github.com/kevin07696/worldnet-gateway/pkg/observability"
	"github.com/kevin07696/worldnet-gateway/pkg/timeutil"
)

const (
	// SandboxURL is the gateway's test endpoint
	SandboxURL = "https://testpayments.worldnettps.com/merchant/xmlpayment"
	// ProductionURL is the gateway's live endpoint
	ProductionURL = "https://payments.worldnettps.com/merchant/xmlpayment"
)

// Config contains the per-client gateway settings
type Config struct {
	// GatewayURL is the XML payment endpoint (default: SandboxURL)
	GatewayURL string

	// TerminalID is sent as TERMINALID on every request
	TerminalID string

	// Secret is the terminal's shared secret. Only used as hash input.
	Secret string

	// DateTimeFormat is the token pattern for DATETIME (default: DD-MM-YYYY:HH:mm:ss:SSS)
	DateTimeFormat string

	// Location is the timezone DATETIME is rendered in (default: time.Local)
	Location *time.Location
}

// DefaultConfig returns the defaults overlaid by NewClient
func DefaultConfig() Config {
	return Config{
		GatewayURL:     SandboxURL,
		DateTimeFormat: timeutil.DefaultDateTimePattern,
		Location:       time.Local,
	}
}

// Client talks to the gateway's XML API. It holds no per-call state and is
// safe for concurrent use.
type Client struct {
	config    Config
	transport ports.Transport
	logger    ports.Logger
	now       func() time.Time
}

// Option configures optional Client collaborators
type Option func(*Client)

// WithLogger sets the logger that receives request/response payloads and call outcomes
func WithLogger(logger ports.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithClock replaces the wall clock used for DATETIME
func WithClock(now func() time.Time) Option {
	return func(c *Client) {
		if now != nil {
			c.now = now
		}
	}
}

// NewClient creates a gateway client. Empty config values take their defaults.
func NewClient(cfg Config, transport ports.Transport, opts ...Option) (*Client, error) {
	merged := DefaultConfig()
	if cfg.GatewayURL != "" {
		merged.GatewayURL = cfg.GatewayURL
	}
	if cfg.DateTimeFormat != "" {
		merged.DateTimeFormat = cfg.DateTimeFormat
	}
	if cfg.Location != nil {
		merged.Location = cfg.Location
	}
	merged.TerminalID = cfg.TerminalID
	merged.Secret = cfg.Secret

	if merged.TerminalID == "" {
		return nil, pkgerrors.NewValidationError("terminal_id", "terminal ID is required")
	}
	if merged.Secret == "" {
		return nil, pkgerrors.NewValidationError("secret", "shared secret is required")
	}
	if transport == nil {
		return nil, pkgerrors.NewValidationError("transport", "transport is required")
	}

	c := &Client{
		config:    merged,
		transport: transport,
		logger:    ports.NopLogger{},
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// GatewayURL returns the endpoint requests are posted to
func (c *Client) GatewayURL() string {
	return c.config.GatewayURL
}

// AddStoredSubscription creates a stored subscription
func (c *Client) AddStoredSubscription(ctx context.Context, req *StoredSubscriptionRequest) (*Response, error) {
	if req == nil {
		return nil, pkgerrors.NewValidationError("request", "request is required")
	}
	return c.do(ctx, opAddStoredSubscription, c.buildStoredSubscription(req), ports.String("merchant_ref", req.MerchantRef), nil)
}

// UpdateStoredSubscription updates a stored subscription
func (c *Client) UpdateStoredSubscription(ctx context.Context, req *StoredSubscriptionRequest) (*Response, error) {
	if req == nil {
		return nil, pkgerrors.NewValidationError("request", "request is required")
	}
	return c.do(ctx, opUpdateStoredSubscription, c.buildStoredSubscription(req), ports.String("merchant_ref", req.MerchantRef), nil)
}

// DeleteStoredSubscription deletes a stored subscription
func (c *Client) DeleteStoredSubscription(ctx context.Context, req *DeleteRequest) (*Response, error) {
	if req == nil {
		return nil, pkgerrors.NewValidationError("request", "request is required")
	}
	return c.do(ctx, opDeleteStoredSubscription, c.buildDelete(req), ports.String("merchant_ref", req.MerchantRef), nil)
}

// AddSubscription creates a subscription from a stored subscription and a secure card
func (c *Client) AddSubscription(ctx context.Context, req *AddSubscriptionRequest) (*Response, error) {
	if req == nil {
		return nil, pkgerrors.NewValidationError("request", "request is required")
	}
	return c.do(ctx, opAddSubscription, c.buildAddSubscription(req), ports.String("merchant_ref", req.MerchantRef), nil)
}

// UpdateSubscription updates a subscription
func (c *Client) UpdateSubscription(ctx context.Context, req *UpdateSubscriptionRequest) (*Response, error) {
	if req == nil {
		return nil, pkgerrors.NewValidationError("request", "request is required")
	}
	return c.do(ctx, opUpdateSubscription, c.buildUpdateSubscription(req), ports.String("merchant_ref", req.MerchantRef), nil)
}

// DeleteSubscription deletes a subscription
func (c *Client) DeleteSubscription(ctx context.Context, req *DeleteRequest) (*Response, error) {
	if req == nil {
		return nil, pkgerrors.NewValidationError("request", "request is required")
	}
	return c.do(ctx, opDeleteSubscription, c.buildDelete(req), ports.String("merchant_ref", req.MerchantRef), nil)
}

// SubscriptionPayment charges a subscription. The reply hash is verified; a mismatch
// returns *errors.IntegrityError regardless of the reported response code.
func (c *Client) SubscriptionPayment(ctx context.Context, req *SubscriptionPaymentRequest) (*Response, error) {
	if req == nil {
		return nil, pkgerrors.NewValidationError("request", "request is required")
	}
	resp, err := c.do(ctx, opSubscriptionPayment, c.buildSubscriptionPayment(req), ports.String("order_id", req.OrderID), c.verifyPayment)
	if err != nil {
		return nil, err
	}

	observability.RecordSubscriptionPayment(c.config.TerminalID, resp.ResponseCode(), req.Amount.InexactFloat64())
	return resp, nil
}

// replyCheck inspects a decoded success reply against the request that produced it
type replyCheck func(op Operation, request, reply *Fields) error

// do signs, sends, decodes and classifies one request. check, when set, runs on
// a success reply before it is returned.
func (c *Client) do(ctx context.Context, op Operation, fields *Fields, ref ports.Field, check replyCheck) (resp *Response, err error) {
	startTime := time.Now()
	defer func() {
		c.recordOutcome(op, ref, time.Since(startTime), err)
	}()

	Sign(fields, c.config.Secret, op.HashKeys)

	payload, err := Encode(fields, op.Root)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op.Root, err)
	}

	c.logger.Debug("Sending gateway request",
		ports.String("operation", op.Root),
		ports.String("payload", string(payload)),
	)

	body, err := c.transport.Post(ctx, c.config.GatewayURL, payload)
	if err != nil {
		var transportErr *pkgerrors.TransportError
		if errors.As(err, &transportErr) {
			return nil, err
		}
		return nil, pkgerrors.NewTransportError(c.config.GatewayURL, 0, err)
	}

	c.logger.Debug("Received gateway response",
		ports.String("operation", op.Root),
		ports.String("payload", string(body)),
	)

	root, err := Decode(body)
	if err != nil {
		return nil, err
	}

	if root.Name == ErrorElement {
		return nil, newGatewayError(root)
	}
	if nested := root.Child(ErrorElement); nested != nil {
		return nil, newGatewayError(nested)
	}
	if root.Name != op.Response {
		return nil, pkgerrors.NewParseError(fmt.Sprintf("unexpected response element %q, want %q", root.Name, op.Response), nil)
	}

	record := root.Record()

	if check != nil {
		if err := check(op, fields, record); err != nil {
			return nil, err
		}
	}

	return &Response{Operation: op.Root, Fields: record}, nil
}

func (c *Client) recordOutcome(op Operation, ref ports.Field, elapsed time.Duration, err error) {
	category := pkgerrors.CategoryOf(err)
	observability.RecordGatewayRequest(op.Root, string(category), elapsed)

	fields := []ports.Field{
		ports.String("operation", op.Root),
		ref,
		ports.String("outcome", string(category)),
		ports.Duration("elapsed", elapsed),
	}

	switch category {
	case pkgerrors.CategoryNone:
		c.logger.Info("Gateway request completed", fields...)
	case pkgerrors.CategoryGatewayError:
		c.logger.Warn("Gateway rejected request", append(fields, ports.Err(err))...)
	case pkgerrors.CategoryIntegrityFailure:
		observability.RecordResponseHashFailure(op.Root)
		c.logger.Error("Gateway response failed hash verification", append(fields, ports.Err(err))...)
	default:
		c.logger.Error("Gateway request failed", append(fields, ports.Err(err))...)
	}
}

// verifyPayment checks the reply hash over the request overlaid with the reply
func (c *Client) verifyPayment(op Operation, request, reply *Fields) error {
	if Verify(request.Merge(reply), c.config.Secret, PaymentResponseHashKeys()) {
		return nil
	}
	return &pkgerrors.IntegrityError{
		Operation:    op.Root,
		OrderID:      request.Value(FieldOrderID),
		ResponseHash: reply.Value(ResponseHashField),
	}
}

// newGatewayError converts a decoded ERROR element
func newGatewayError(el *Element) *pkgerrors.GatewayError {
	gatewayErr := &pkgerrors.GatewayError{
		Fields: el.Record().Map(),
	}
	if el.IsLeaf() {
		gatewayErr.Message = el.Text
		return gatewayErr
	}
	if code := el.Child("errorcode"); code != nil {
		gatewayErr.Code = code.Text
	}
	if msg := el.Child("errorstring"); msg != nil {
		gatewayErr.Message = msg.Text
	}
	return gatewayErr
}
