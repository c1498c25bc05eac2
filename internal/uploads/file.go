// Package uploads ties uploaded files to a record's directory in the blob
// store: naming, extraction from payloads, staging and cleanup.
package uploads

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

const sniffLen = 3072

// FileRef is anything that names a stored file: a plain Filename or a
// pending *File (which resolves to its generated name).
type FileRef interface {
	StoredName() string
}

type Filename string

func (f Filename) StoredName() string {
	return string(f)
}

// File is an uploaded file that has not been written to the store yet.
type File struct {
	OriginalName string
	ContentType  string
	Size         int64

	hashName string
	open     func() (io.ReadCloser, error)
}

// FromMultipart reads the part once to sniff its type and hash its content.
func FromMultipart(fh *multipart.FileHeader) (*File, error) {
	open := func() (io.ReadCloser, error) {
		return fh.Open()
	}
	return newFile(fh.Filename, fh.Size, open)
}

func FromBytes(name string, data []byte) *File {
	open := func() (io.ReadCloser, error) {
		return io.NopCloser(bytes.NewReader(data)), nil
	}
	f, _ := newFile(name, int64(len(data)), open)
	return f
}

func newFile(name string, size int64, open func() (io.ReadCloser, error)) (*File, error) {
	r, err := open()
	if err != nil {
		return nil, fmt.Errorf("open upload %s: %w", name, err)
	}
	defer r.Close()

	head := make([]byte, sniffLen)
	n, err := io.ReadFull(r, head)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return nil, fmt.Errorf("read upload %s: %w", name, err)
	}
	head = head[:n]

	h := sha256.New()
	h.Write(head)
	if _, err := io.Copy(h, r); err != nil {
		return nil, fmt.Errorf("hash upload %s: %w", name, err)
	}

	return &File{
		OriginalName: name,
		ContentType:  mimetype.Detect(head).String(),
		Size:         size,
		hashName:     hex.EncodeToString(h.Sum(nil))[:40] + strings.ToLower(filepath.Ext(name)),
		open:         open,
	}, nil
}

// HashName is the collision resistant name the file is stored under.
func (f *File) HashName() string {
	return f.hashName
}

func (f *File) StoredName() string {
	return f.hashName
}

func (f *File) Open() (io.ReadCloser, error) {
	return f.open()
}

// IsImage reports whether the sniffed content is an image.
func (f *File) IsImage() bool {
	return strings.HasPrefix(f.ContentType, "image/")
}

// HasMimeType reports whether the sniffed content matches one of types.
func (f *File) HasMimeType(types ...string) bool {
	mt := mimetype.Lookup(strings.SplitN(f.ContentType, ";", 2)[0])
	if mt == nil {
		return false
	}
	for _, t := range types {
		if mt.Is(t) {
			return true
		}
	}
	return false
}

// SizeKB is the size rounded up to whole KiB, the unit upload limits use.
func (f *File) SizeKB() int64 {
	return (f.Size + 1023) / 1024
}
