package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/viperproject/viper-ide-sub004/internal/cache"
	"github.com/viperproject/viper-ide-sub004/internal/symbex"
	"github.com/viperproject/viper-ide-sub004/internal/view"
)

// stdinName is the file argument that reads standard input.
const stdinName = "-"

// readInput reads a file, or stdin when path is "-".
func readInput(path string, stdin io.Reader) ([]byte, error) {
	if path == stdinName {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return data, nil
}

func displayName(path string) string {
	if path == stdinName {
		return "<stdin>"
	}
	return path
}

// decoder decodes inputs of one kind through a parse cache, so repeated
// identical inputs are parsed once.
type decoder struct {
	kind  view.Kind
	cache *cache.Cache[any]
	stdin io.Reader
}

func newDecoder(kind view.Kind, capacity int, stdin io.Reader) (*decoder, error) {
	c, err := cache.New[any](capacity)
	if err != nil {
		return nil, fmt.Errorf("failed to create parse cache: %w", err)
	}
	return &decoder{kind: kind, cache: c, stdin: stdin}, nil
}

func (d *decoder) decode(path string) (any, error) {
	data, err := readInput(path, d.stdin)
	if err != nil {
		return nil, err
	}
	v, err := d.cache.GetOrParse(data, func(raw []byte) (any, error) {
		return view.Decode(d.kind, raw)
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", displayName(path), err)
	}
	return v, nil
}

// decodeState is decode for a decoder of kind view.KindState.
func (d *decoder) decodeState(path string) (*symbex.State, error) {
	v, err := d.decode(path)
	if err != nil {
		return nil, err
	}
	s, ok := v.(*symbex.State)
	if !ok {
		return nil, fmt.Errorf("%s: decoded %T, want a state", displayName(path), v)
	}
	return s, nil
}

func (d *decoder) Close() {
	d.cache.Close()
}
