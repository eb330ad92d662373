package sources

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/klauspost/compress/zstd"
	"github.com/mr-tron/base58"
	"github.com/zeebo/blake3"
)

type Source struct {
	Name   string
	Text   string
	Digest string
}

func New(name string, text []byte) Source {
	return Source{
		Name:   name,
		Text:   string(text),
		Digest: Digest(text),
	}
}

func Inline(text string) Source {
	return New("-e", []byte(text))
}

// FromFile reads a program file, "-" is stdin.
func FromFile(path string) (Source, error) {
	if path == "-" {
		return FromReader("stdin", os.Stdin)
	}
	f, err := os.Open(path)
	if err != nil {
		return Source{}, err
	}
	defer f.Close()
	return FromReader(path, f)
}

func FromReader(name string, r io.Reader) (Source, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Source{}, fmt.Errorf("read %s: %w", name, err)
	}
	data, err = decompress(data)
	if err != nil {
		return Source{}, fmt.Errorf("decompress %s: %w", name, err)
	}
	return New(name, data), nil
}

var zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}

func decompress(data []byte) ([]byte, error) {
	if !bytes.HasPrefix(data, zstdMagic) {
		return data, nil
	}
	decoder, err := zstd.NewReader(nil)
	if err != nil {
		return nil, err
	}
	defer decoder.Close()
	return decoder.DecodeAll(data, nil)
}

// Digest is the base58 blake3 sum of text.
func Digest(text []byte) string {
	sum := blake3.Sum256(text)
	return base58.Encode(sum[:])
}
