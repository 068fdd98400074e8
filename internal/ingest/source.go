// Package ingest turns raw data sources into normalized transaction records.
package ingest

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Shape identifies the layout of a raw data source.
type Shape int

// Supported source shapes.
const (
	ShapeUnknown Shape = iota
	// ShapeKeyedDocument is a JSON object whose keys name categories and
	// whose values are arrays of transaction objects.
	ShapeKeyedDocument
	// ShapeTable is a CSV file with a header row; every row carries its own
	// wallet, amount and category.
	ShapeTable
)

func (s Shape) String() string {
	switch s {
	case ShapeKeyedDocument:
		return "keyed-document"
	case ShapeTable:
		return "table"
	default:
		return "unknown"
	}
}

// ShapeForPath infers the source shape from a file extension.
func ShapeForPath(path string) Shape {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return ShapeKeyedDocument
	case ".csv":
		return ShapeTable
	default:
		return ShapeUnknown
	}
}

// Source is a raw record source.
type Source interface {
	Name() string
	Shape() Shape
	Open(ctx context.Context) (io.ReadCloser, error)
}

// FileSource reads a source from disk.
type FileSource struct {
	Path string
	Size int64
}

// NewFileSource creates a file source for path.
func NewFileSource(path string, size int64) *FileSource {
	return &FileSource{Path: path, Size: size}
}

// Name returns the file's base name.
func (f *FileSource) Name() string {
	return filepath.Base(f.Path)
}

// Shape infers the shape from the file extension.
func (f *FileSource) Shape() Shape {
	return ShapeForPath(f.Path)
}

// Open opens the file for reading.
func (f *FileSource) Open(ctx context.Context) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return os.Open(f.Path)
}

// MemorySource is an in-memory source, mainly for tests and piping.
type MemorySource struct {
	name  string
	data  []byte
	shape Shape
}

// NewMemorySource creates a source over data with an explicit shape.
func NewMemorySource(name string, shape Shape, data []byte) *MemorySource {
	return &MemorySource{name: name, shape: shape, data: data}
}

// Name returns the source name.
func (m *MemorySource) Name() string {
	return m.name
}

// Shape returns the declared shape.
func (m *MemorySource) Shape() Shape {
	return m.shape
}

// Open returns a reader over the in-memory data.
func (m *MemorySource) Open(ctx context.Context) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return io.NopCloser(bytes.NewReader(m.data)), nil
}
