package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/pkg/errors"
)

// Upload sends a document (receipt, ID photo) to the backend and returns its
// served URL. Uploads are never retried.
func (c *Client) Upload(ctx context.Context, filename string, content io.Reader) (string, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return "", errors.Wrap(err, "[Client.Upload] create form file")
	}
	if _, err := io.Copy(part, content); err != nil {
		return "", errors.Wrap(err, "[Client.Upload] copy content")
	}
	if err := writer.Close(); err != nil {
		return "", errors.Wrap(err, "[Client.Upload] close writer")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/uploads", &buf)
	if err != nil {
		return "", errors.Wrap(err, "[Client.Upload] build request")
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	authed := c.setBearer(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", errors.Wrap(err, "[Client.Upload] request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", c.classify(resp, "/uploads", authed)
	}

	var result struct {
		URL string `json:"url"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", errors.Wrap(err, "[Client.Upload] decode response")
	}
	return result.URL, nil
}
