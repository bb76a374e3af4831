package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/textproto"
	"path/filepath"
	"strings"
)

// Content types set by the executor.
const (
	ContentTypeJSON = "application/json"
	octetStream     = "application/octet-stream"
)

// Body is a request payload encoding strategy.
type Body interface {
	// Encode returns the payload and the Content-Type that describes it.
	Encode() (io.Reader, string, error)
	// LogValue renders the payload for diagnostics.
	LogValue() any
}

type jsonBody struct {
	v any
}

// JSONBody serializes v as the request body.
func JSONBody(v any) Body { return jsonBody{v: v} }

func (b jsonBody) Encode() (io.Reader, string, error) {
	data, err := json.Marshal(b.v)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %w", ErrEncode, err)
	}
	return bytes.NewReader(data), ContentTypeJSON, nil
}

func (b jsonBody) LogValue() any {
	data, err := json.Marshal(b.v)
	if err != nil {
		return fmt.Sprintf("<unencodable %T>", b.v)
	}
	return string(data)
}

// File is an upload attached to a Form.
type File struct {
	Name        string // file name reported to the server
	ContentType string // guessed from Name when empty
	Reader      io.Reader
}

type formField struct {
	name  string
	value string
}

type formFile struct {
	name string
	file File
}

// Form is a multipart/form-data payload. Parts are written in the order
// they were added. A Form wraps readers and can be encoded only once.
type Form struct {
	fields []formField
	files  []formFile
}

// NewForm creates an empty Form.
func NewForm() *Form { return &Form{} }

// Field appends a text part.
func (f *Form) Field(name, value string) *Form {
	f.fields = append(f.fields, formField{name: name, value: value})
	return f
}

// File appends a file part.
func (f *Form) File(name string, file File) *Form {
	f.files = append(f.files, formFile{name: name, file: file})
	return f
}

// Len returns the number of parts.
func (f *Form) Len() int { return len(f.fields) + len(f.files) }

// Encode writes every part into memory and returns the boundary-bearing
// content type produced by the multipart writer.
func (f *Form) Encode() (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for _, fl := range f.fields {
		if err := w.WriteField(fl.name, fl.value); err != nil {
			return nil, "", fmt.Errorf("%w: field %s: %w", ErrEncode, fl.name, err)
		}
	}
	for _, ff := range f.files {
		if ff.file.Reader == nil {
			return nil, "", fmt.Errorf("%w: file %s has no content", ErrEncode, ff.name)
		}
		part, err := w.CreatePart(fileHeader(ff.name, ff.file))
		if err != nil {
			return nil, "", fmt.Errorf("%w: file %s: %w", ErrEncode, ff.name, err)
		}
		if _, err := io.Copy(part, ff.file.Reader); err != nil {
			return nil, "", fmt.Errorf("%w: file %s: %w", ErrEncode, ff.name, err)
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("%w: %w", ErrEncode, err)
	}
	return &buf, w.FormDataContentType(), nil
}

// LogValue renders fields verbatim and files by name.
func (f *Form) LogValue() any {
	out := make(map[string]string, f.Len())
	for _, fl := range f.fields {
		out[fl.name] = fl.value
	}
	for _, ff := range f.files {
		out[ff.name] = "<file " + ff.file.Name + ">"
	}
	return out
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func fileHeader(field string, file File) textproto.MIMEHeader {
	contentType := file.ContentType
	if contentType == "" {
		contentType = mime.TypeByExtension(filepath.Ext(file.Name))
	}
	if contentType == "" {
		contentType = octetStream
	}
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`,
		quoteEscaper.Replace(field), quoteEscaper.Replace(file.Name)))
	h.Set("Content-Type", contentType)
	return h
}
