package xhr

import (
	"bytes"
	"mime/multipart"
)

type formField struct {
	name     string
	filename string
	value    []byte
}

// FormData is a multipart/form-data payload for POST/PUT-style requests.
type FormData struct {
	fields []*formField
}

func NewFormData() *FormData {
	return &FormData{}
}

func (f *FormData) Append(name string, value string) *FormData {
	f.fields = append(f.fields, &formField{name: name, value: []byte(value)})
	return f
}

func (f *FormData) AppendFile(name string, filename string, content []byte) *FormData {
	f.fields = append(f.fields, &formField{name: name, filename: filename, value: content})
	return f
}

// Encode writes the fields out as multipart/form-data and returns the buffer
// together with the boundary-carrying content type.
func (f *FormData) Encode() (*bytes.Buffer, string, error) {
	buf := &bytes.Buffer{}
	writer := multipart.NewWriter(buf)

	for _, field := range f.fields {
		if field.filename != "" {
			part, err := writer.CreateFormFile(field.name, field.filename)
			if err != nil {
				return nil, "", err
			}
			if _, err := part.Write(field.value); err != nil {
				return nil, "", err
			}
		} else {
			if err := writer.WriteField(field.name, string(field.value)); err != nil {
				return nil, "", err
			}
		}
	}
	if err := writer.Close(); err != nil {
		return nil, "", err
	}

	return buf, writer.FormDataContentType(), nil
}
