package transport

import (
	"bytes"
	"fmt"
	"mime/multipart"

	"github.com/fieldops-io/fieldops-client/pkg/fieldops"
)

// EncodeForm renders a multipart body and its Content-Type header value.
func EncodeForm(form *fieldops.Form) (*bytes.Buffer, string, error) {
	buf := &bytes.Buffer{}
	writer := multipart.NewWriter(buf)

	for name, value := range form.Fields() {
		err := writer.WriteField(name, value)
		if err != nil {
			return nil, "", fmt.Errorf("writing form field %q: %w", name, err)
		}
	}

	for _, file := range form.Files() {
		part, err := writer.CreateFormFile(file.Field, file.Filename)
		if err != nil {
			return nil, "", fmt.Errorf("creating form file %q: %w", file.Field, err)
		}

		_, err = part.Write(file.Content)
		if err != nil {
			return nil, "", fmt.Errorf("writing form file %q: %w", file.Field, err)
		}
	}

	err := writer.Close()
	if err != nil {
		return nil, "", fmt.Errorf("finalizing multipart body: %w", err)
	}

	return buf, writer.FormDataContentType(), nil
}
