package client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"sort"
)

// File is an attachment sent as a multipart part.
type File struct {
	Field    string
	Filename string
	Body     io.Reader
}

// UploadPayment records a payment with its proof file as multipart form data.
func (c *Client) UploadPayment(ctx context.Context, fields map[string]string, proof File) error {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if err := mw.WriteField(k, fields[k]); err != nil {
			return fmt.Errorf("writing field %s: %w", k, err)
		}
	}

	if proof.Body != nil {
		field := proof.Field
		if field == "" {
			field = "proof"
		}
		part, err := mw.CreateFormFile(field, proof.Filename)
		if err != nil {
			return fmt.Errorf("creating file part: %w", err)
		}
		if _, err := io.Copy(part, proof.Body); err != nil {
			return fmt.Errorf("copying proof: %w", err)
		}
	}

	if err := mw.Close(); err != nil {
		return fmt.Errorf("closing multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+pathTenantPayments, &buf)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	return c.do(req, nil)
}
