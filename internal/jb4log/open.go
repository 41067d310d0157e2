package jb4log

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"

	"github.com/verte-zerg/jb4plot/internal/model"
)

var (
	gzipMagic = []byte{0x1f, 0x8b}
	zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}
)

// Open reads the log at path, decompressing gzip or zstd content when the
// file carries their magic bytes. The returned rows are sorted by time.
func Open(path string) (*model.Table, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, &model.ParseError{Path: path, Reason: "failed to open log", Err: err}
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			// Best-effort close for read-only log.
			_ = cerr
		}
	}()

	r, closeFn, err := decompress(bufio.NewReader(file))
	if err != nil {
		return nil, &model.ParseError{Path: path, Reason: "failed to decompress log", Err: err}
	}
	defer closeFn()

	table, err := Read(r)
	if err != nil {
		var perr *model.ParseError
		if errors.As(err, &perr) {
			perr.Path = path
		}
		return nil, err
	}
	if table.Len() == 0 {
		return nil, &model.ParseError{Path: path, Reason: "no data rows found after header"}
	}
	table.SortByTime()
	return table, nil
}

func decompress(br *bufio.Reader) (io.Reader, func(), error) {
	magic, err := br.Peek(len(zstdMagic))
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, bufio.ErrBufferFull) {
		return nil, nil, err
	}
	switch {
	case bytes.HasPrefix(magic, gzipMagic):
		zr, err := gzip.NewReader(br)
		if err != nil {
			return nil, nil, fmt.Errorf("gzip: %w", err)
		}
		return zr, func() { _ = zr.Close() }, nil
	case bytes.HasPrefix(magic, zstdMagic):
		dec, err := zstd.NewReader(br)
		if err != nil {
			return nil, nil, fmt.Errorf("zstd: %w", err)
		}
		return dec, dec.Close, nil
	default:
		return br, func() {}, nil
	}
}
