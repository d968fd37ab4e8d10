package api

import (
	"bytes"
	"io"
	"mime/multipart"

	pkgerrors "github.com/bookhaven/bookhaven-client/pkg/errors"
)

// FileField carries an upload destined for a multipart form.
type FileField struct {
	Field    string
	Filename string
	Reader   io.Reader
}

func multipartSpec(method, path string, fields map[string]string, file *FileField) (requestSpec, error) {
	buf := &bytes.Buffer{}
	writer := multipart.NewWriter(buf)

	for key, value := range fields {
		if err := writer.WriteField(key, value); err != nil {
			return requestSpec{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "write form field")
		}
	}
	if file != nil && file.Reader != nil {
		part, err := writer.CreateFormFile(file.Field, file.Filename)
		if err != nil {
			return requestSpec{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create form file")
		}
		if _, err := io.Copy(part, file.Reader); err != nil {
			return requestSpec{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "copy upload")
		}
	}
	if err := writer.Close(); err != nil {
		return requestSpec{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "finalize form")
	}

	return requestSpec{
		method:      method,
		path:        path,
		body:        buf,
		contentType: writer.FormDataContentType(),
	}, nil
}
