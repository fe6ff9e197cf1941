package form

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/spec-kit/early-access-service/internal/api/dto"
	"github.com/spec-kit/early-access-service/internal/domain"
	"github.com/spec-kit/early-access-service/pkg/util"
)

// Status models the submission state machine:
// idle -> sending -> {success, error}, error -> sending on retry.
type Status string

const (
	StatusIdle    Status = "idle"
	StatusSending Status = "sending"
	StatusSuccess Status = "success"
	StatusError   Status = "error"
)

// Field names accepted by UpdateField.
type Field string

const (
	FieldName  Field = "name"
	FieldEmail Field = "email"
	FieldPhone Field = "phone"
)

// Field-specific validation messages. Only one is ever shown at a time.
const (
	msgNameRequired = "Please enter your name"
	msgEmailInvalid = "Please enter a valid email address"
	msgPhoneInvalid = "Please enter a valid phone number"
)

// FallbackStore retains submissions locally when no endpoint is configured.
// Degraded-mode capture only; there is no replay.
type FallbackStore interface {
	Save(sub domain.Submission) error
}

// Controller holds landing-page field state and drives the submission flow.
type Controller struct {
	endpoint string
	client   *http.Client
	fallback FallbackStore

	mu     sync.Mutex
	name   string
	email  string
	phone  string
	status Status
	errMsg string
}

// Option configures a Controller.
type Option func(*Controller)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Controller) { c.client = client }
}

// WithFallback attaches a local store used when no endpoint is configured.
func WithFallback(store FallbackStore) Option {
	return func(c *Controller) { c.fallback = store }
}

// NewController creates a controller posting to the given endpoint. An empty
// endpoint switches the controller to fallback capture.
func NewController(endpoint string, opts ...Option) *Controller {
	c := &Controller{
		endpoint: endpoint,
		client:   &http.Client{Timeout: 30 * time.Second},
		status:   StatusIdle,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// UpdateField sets field text. No validation happens until Submit.
func (c *Controller) UpdateField(field Field, value string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	switch field {
	case FieldName:
		c.name = value
	case FieldEmail:
		c.email = value
	case FieldPhone:
		c.phone = value
	}
}

// Status returns the current submission status.
func (c *Controller) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status
}

// Err returns the current error message, empty when none.
func (c *Controller) Err() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.errMsg
}

// Fields returns the current field values.
func (c *Controller) Fields() (name, email, phone string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.name, c.email, c.phone
}

// Submit validates the fields in fixed order (name, then email, then phone),
// stopping at the first failure, and posts the trimmed payload. While a
// submission is in flight the controller ignores further Submit calls, so a
// second network request is impossible. On success all fields are cleared.
func (c *Controller) Submit(ctx context.Context) {
	c.mu.Lock()
	if c.status == StatusSending {
		c.mu.Unlock()
		return
	}
	c.errMsg = ""

	if !domain.ValidName(c.name) {
		c.errMsg = msgNameRequired
		c.mu.Unlock()
		return
	}
	if !domain.ValidEmail(c.email) {
		c.errMsg = msgEmailInvalid
		c.mu.Unlock()
		return
	}
	if !domain.ValidPhone(c.phone) {
		c.errMsg = msgPhoneInvalid
		c.mu.Unlock()
		return
	}

	sub := domain.Submission{Name: c.name, Email: c.email, Phone: c.phone}.Trimmed()
	c.name, c.email, c.phone = sub.Name, sub.Email, sub.Phone
	c.status = StatusSending
	c.mu.Unlock()

	if c.endpoint == "" {
		c.finish(c.saveFallback(sub))
		return
	}
	c.finish(c.post(ctx, sub))
}

func (c *Controller) saveFallback(sub domain.Submission) error {
	if c.fallback == nil {
		return util.NewTransportError(errors.New("no endpoint or fallback configured"))
	}
	if err := c.fallback.Save(sub); err != nil {
		return util.NewTransportError(err)
	}
	return nil
}

func (c *Controller) post(ctx context.Context, sub domain.Submission) error {
	payload, err := json.Marshal(dto.SubscribeRequest{
		Name:  sub.Name,
		Email: sub.Email,
		Phone: sub.Phone,
	})
	if err != nil {
		return util.NewTransportError(err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return util.NewTransportError(err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return util.NewTransportError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &util.DomainError{
			Kind:       util.KindClient,
			Message:    serverMessage(resp.Body),
			HTTPStatus: resp.StatusCode,
		}
	}
	return nil
}

// finish applies the submission outcome: clear fields on success, keep them
// for a retry on failure.
func (c *Controller) finish(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		c.status = StatusError
		c.errMsg = util.ToDomainError(err).Message
		return
	}
	c.status = StatusSuccess
	c.name, c.email, c.phone = "", "", ""
}

// serverMessage extracts the server-provided error message, falling back to a
// generic one when the body carries none.
func serverMessage(body io.Reader) string {
	var parsed struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(body).Decode(&parsed); err == nil && parsed.Error != "" {
		return parsed.Error
	}
	return util.GenericFailureMessage
}
