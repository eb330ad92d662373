package sources

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"slices"
	"strings"
)

//go:embed examples/*.b
var examplesFS embed.FS

var ErrUnknownExample = errors.New("unknown example")

func Examples() (names []string) {
	entries, err := fs.ReadDir(examplesFS, "examples")
	if err != nil {
		panic(err)
	}
	for _, entry := range entries {
		names = append(names, strings.TrimSuffix(entry.Name(), ".b"))
	}
	slices.Sort(names)
	return
}

func Example(name string) (Source, error) {
	text, err := examplesFS.ReadFile(path.Join("examples", name+".b"))
	if err != nil {
		return Source{}, fmt.Errorf("%w: %s", ErrUnknownExample, name)
	}
	return New("example:"+name, text), nil
}
