package providers

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"slices"
	"strings"
)

const (
	maxResponseSize  = 4 << 20
	maxErrorBodySize = 512
)

// StatusError is returned for non-2xx provider responses.
type StatusError struct {
	Method     string
	URL        string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s: %d %s: %s",
		e.Method, e.URL, e.StatusCode, http.StatusText(e.StatusCode), e.Body)
}

func (e *StatusError) Unwrap() error {
	return ErrProvider
}

func hasStatus(err error, codes ...int) bool {
	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		return false
	}

	return slices.Contains(codes, statusErr.StatusCode)
}

// apiClient is a thin JSON-over-HTTP helper shared by the REST adapters.
type apiClient struct {
	http *http.Client
}

func newAPIClient(client *http.Client) *apiClient {
	return &apiClient{http: client}
}

func bearer(token string) http.Header {
	h := http.Header{}
	h.Set("Authorization", "Bearer "+token)
	return h
}

func basicAuth(username, password string) http.Header {
	h := http.Header{}
	h.Set("Authorization", "Basic "+base64.StdEncoding.EncodeToString([]byte(username+":"+password)))
	return h
}

// do sends a request and decodes a JSON response into out when out is not nil.
func (c *apiClient) do(
	ctx context.Context,
	method, url string,
	header http.Header,
	body io.Reader,
	out any,
) error {
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %w", ErrProvider, err)
	}
	for key, values := range header {
		req.Header[key] = values
	}
	if req.Header.Get("Accept") == "" {
		req.Header.Set("Accept", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s %s: %w", ErrProvider, method, url, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return fmt.Errorf("%w: failed to read response: %w", ErrProvider, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		text := strings.TrimSpace(string(data))
		if len(text) > maxErrorBodySize {
			text = text[:maxErrorBodySize] + "..."
		}
		return &StatusError{
			Method:     method,
			URL:        url,
			StatusCode: resp.StatusCode,
			Body:       text,
		}
	}

	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}

	if jsonErr := json.Unmarshal(data, out); jsonErr != nil {
		return fmt.Errorf("%w: failed to decode response of %s %s: %w", ErrProvider, method, url, jsonErr)
	}

	return nil
}

// json sends in as a JSON body, in may be nil.
func (c *apiClient) json(ctx context.Context, method, url string, header http.Header, in, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("%w: failed to encode request: %w", ErrProvider, err)
		}
		body = bytes.NewReader(data)
	}

	h := header.Clone()
	if h == nil {
		h = http.Header{}
	}
	if in != nil {
		h.Set("Content-Type", "application/json")
	}

	return c.do(ctx, method, url, h, body, out)
}

// raw sends a binary body with the given content type.
func (c *apiClient) raw(
	ctx context.Context,
	method, url string,
	header http.Header,
	contentType string,
	content []byte,
	out any,
) error {
	h := header.Clone()
	if h == nil {
		h = http.Header{}
	}
	if contentType != "" {
		h.Set("Content-Type", contentType)
	}

	return c.do(ctx, method, url, h, bytes.NewReader(content), out)
}

type formFile struct {
	Field       string
	Name        string
	ContentType string
	Content     []byte
}

// multipartForm encodes fields and files as multipart/form-data and returns
// the body with its content type.
func multipartForm(fields [][2]string, files []formFile) ([]byte, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for _, field := range fields {
		if err := w.WriteField(field[0], field[1]); err != nil {
			return nil, "", fmt.Errorf("failed to write field %s: %w", field[0], err)
		}
	}

	for _, file := range files {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`,
			escapeQuotes(file.Field), escapeQuotes(file.Name)))
		h.Set("Content-Type", file.ContentType)

		part, err := w.CreatePart(h)
		if err != nil {
			return nil, "", fmt.Errorf("failed to add %s: %w", file.Name, err)
		}
		if _, err = part.Write(file.Content); err != nil {
			return nil, "", fmt.Errorf("failed to write %s: %w", file.Name, err)
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("failed to finalize form: %w", err)
	}

	return buf.Bytes(), w.FormDataContentType(), nil
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func escapeQuotes(s string) string {
	return quoteEscaper.Replace(s)
}
