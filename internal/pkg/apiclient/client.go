package apiclient

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sisregip-service/internal/pkg/constvars"
	"time"

	"github.com/goccy/go-json"
	"github.com/sirupsen/logrus"
)

const (
	BackendPort    = "8001"
	defaultTimeout = 60 * time.Second
)

// DeriveOrigin builds the backend origin from the page the client was opened
// from: same scheme and host, fixed backend port.
func DeriveOrigin(pageURL string) (string, error) {
	parsed, err := url.Parse(pageURL)
	if err != nil {
		return "", err
	}
	if parsed.Hostname() == "" {
		return "", fmt.Errorf("page url %q has no host", pageURL)
	}
	scheme := parsed.Scheme
	if scheme == "" {
		scheme = "http"
	}
	return fmt.Sprintf("%s://%s:%s", scheme, parsed.Hostname(), BackendPort), nil
}

type Client struct {
	Origin     string
	HTTPClient *http.Client
	Log        *logrus.Logger
	// Operator returns the session operator attached to every mutating body.
	Operator func() string
}

func New(origin string, operator func() string, log *logrus.Logger) *Client {
	if operator == nil {
		operator = func() string { return "" }
	}
	return &Client{
		Origin:     origin,
		HTTPClient: &http.Client{Timeout: defaultTimeout},
		Log:        log,
		Operator:   operator,
	}
}

func (c *Client) operator() string {
	if operator := c.Operator(); operator != "" {
		return operator
	}
	return constvars.OperatorUnidentified
}

func (c *Client) RegisterAudit(ctx context.Context, operator, action, details string) error {
	body := map[string]string{
		"operador": operator,
		"acao":     action,
		"detalhes": details,
	}
	_, err := c.postResult(ctx, "/api/auditoria/registrar", body)
	return err
}

func (c *Client) ListProtocols(ctx context.Context) ([]Protocol, error) {
	var protocols []Protocol
	if err := c.get(ctx, "/api/protocols", &protocols); err != nil {
		return nil, err
	}
	return protocols, nil
}

func (c *Client) AddProtocol(ctx context.Context, fields ProtocolFields) (*Result, error) {
	return c.postResult(ctx, "/api/protocols/add", c.withOperator(&fields, nil))
}

func (c *Client) EditProtocol(ctx context.Context, id ID, fields ProtocolFields) (*Result, error) {
	return c.postResult(ctx, "/api/protocols/edit", c.withOperator(&fields, map[string]interface{}{"ID": int64(id)}))
}

func (c *Client) DeleteProtocol(ctx context.Context, id ID) (*Result, error) {
	return c.postResult(ctx, "/api/protocols/delete", c.withOperator(nil, map[string]interface{}{"ID": int64(id)}))
}

func (c *Client) ListSecretaria(ctx context.Context) ([]SecretaryRecord, error) {
	var records []SecretaryRecord
	if err := c.get(ctx, "/api/secretaria/protocols", &records); err != nil {
		return nil, err
	}
	return records, nil
}

func (c *Client) PrintPreview(ctx context.Context, filterType, filterValue string) (*Result, error) {
	return c.postResult(ctx, "/api/print/preview", c.withOperator(nil, map[string]interface{}{
		"filter_type":  filterType,
		"filter_value": filterValue,
	}))
}

func (c *Client) ListPDFs(ctx context.Context, folderPath string) ([]string, error) {
	var response struct {
		Success bool     `json:"success"`
		Message string   `json:"message"`
		Files   []string `json:"files"`
	}
	body := c.withOperator(nil, map[string]interface{}{"folder_path": folderPath})
	if err := c.post(ctx, "/api/list_pdfs", body, &response); err != nil {
		return nil, err
	}
	if !response.Success {
		return nil, &APIError{StatusCode: http.StatusOK, Message: response.Message}
	}
	return response.Files, nil
}

func (c *Client) MergePDFs(ctx context.Context, folderPath string, files []string, removeBlank bool) (*Result, error) {
	return c.postResult(ctx, "/api/merge_pdfs", c.withOperator(nil, map[string]interface{}{
		"folder_path":    folderPath,
		"files_to_merge": files,
		"remove_blank":   removeBlank,
	}))
}

func (c *Client) Changelog(ctx context.Context) (*Changelog, error) {
	var response struct {
		Success bool      `json:"success"`
		Message string    `json:"message"`
		Data    Changelog `json:"data"`
	}
	if err := c.get(ctx, "/api/changelog", &response); err != nil {
		return nil, err
	}
	return &response.Data, nil
}

// withOperator flattens fields and extra into one JSON object carrying
// OPERADOR.
func (c *Client) withOperator(fields *ProtocolFields, extra map[string]interface{}) map[string]interface{} {
	body := make(map[string]interface{}, len(extra)+8)
	if fields != nil {
		body["PROT"] = fields.Prot
		body["DATA"] = fields.Date
		body["NOME"] = fields.Name
		body["PMH"] = fields.PMH
		body["ENTREGA"] = fields.DeliveredAt
		body["RECEBIMENTO"] = fields.ReceivedAt
	}
	for key, value := range extra {
		body[key] = value
	}
	body["OPERADOR"] = c.operator()
	return body
}

func (c *Client) postResult(ctx context.Context, path string, body interface{}) (*Result, error) {
	result := new(Result)
	if err := c.post(ctx, path, body, result); err != nil {
		return nil, err
	}
	if !result.Success {
		return nil, &APIError{StatusCode: http.StatusOK, Message: result.Message}
	}
	return result, nil
}

func (c *Client) get(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, constvars.MethodGet, c.Origin+path, nil)
	if err != nil {
		return err
	}
	req.Header.Set(constvars.HeaderAccept, constvars.MIMEApplicationJSON)
	return c.do(req, out)
}

func (c *Client) post(ctx context.Context, path string, body, out interface{}) error {
	requestJSON, err := json.Marshal(body)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, constvars.MethodPost, c.Origin+path, bytes.NewReader(requestJSON))
	if err != nil {
		return err
	}
	req.Header.Set(constvars.HeaderContentType, constvars.MIMEApplicationJSON)
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out interface{}) error {
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		c.logError(req, err)
		return err
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		c.logError(req, err)
		return err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var failure Result
		if json.Unmarshal(payload, &failure) == nil && failure.Message != "" {
			err = &APIError{StatusCode: resp.StatusCode, Message: failure.Message}
		} else {
			err = errUnexpectedStatus(resp.StatusCode)
		}
		c.logError(req, err)
		return err
	}

	if err := json.Unmarshal(payload, out); err != nil {
		// A listing endpoint may answer 200 with {success:false, message}.
		var failure Result
		if json.Unmarshal(payload, &failure) == nil && failure.Message != "" {
			return &APIError{StatusCode: resp.StatusCode, Message: failure.Message}
		}
		c.logError(req, err)
		return err
	}
	return nil
}

func (c *Client) logError(req *http.Request, err error) {
	if c.Log == nil {
		return
	}
	c.Log.WithFields(logrus.Fields{
		"method": req.Method,
		"path":   req.URL.Path,
	}).WithError(err).Error("API request failed")
}
