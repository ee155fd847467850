// Package input opens the files the stdcsv command parses.
package input

import (
	"bytes"
	"io"
	"os"
)

// Stdin is the file name that selects standard input.
const Stdin = "-"

// Source is an opened input. Close releases the file and any mapping; the
// Reader must not be used afterwards.
type Source struct {
	io.Reader
	Name   string
	Mapped bool
	close  func() error
}

// Close releases the input.
func (s *Source) Close() error {
	if s.close == nil {
		return nil
	}
	err := s.close()
	s.close = nil
	return err
}

// Open returns a Source for name. Regular files are memory-mapped where the
// platform supports it; stdin, pipes and devices are read as streams.
func Open(name string, stdin io.Reader) (*Source, error) {
	if name == Stdin {
		return &Source{Reader: stdin, Name: name}, nil
	}
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}
	if !info.Mode().IsRegular() || info.Size() == 0 {
		return &Source{Reader: f, Name: name, close: f.Close}, nil
	}

	data, unmap, err := mapFile(f, info.Size())
	if err != nil {
		// Fall back to reading the file as a stream.
		return &Source{Reader: f, Name: name, close: f.Close}, nil
	}
	return &Source{
		Reader: bytes.NewReader(data),
		Name:   name,
		Mapped: true,
		close: func() error {
			unmapErr := unmap()
			if err := f.Close(); err != nil {
				return err
			}
			return unmapErr
		},
	}, nil
}
