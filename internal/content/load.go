package content

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"cawver-web/pkg/validator"
)

// ErrInvalidContent wraps every decode or validation failure.
var ErrInvalidContent = errors.New("invalid site content")

//go:embed default.yaml
var defaultContent []byte

// Default returns the content compiled into the binary.
func Default() (*Site, error) {
	return Parse(defaultContent)
}

// LoadFile reads and parses the content file at path.
func LoadFile(path string) (*Site, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read content file: %w", err)
	}
	return Parse(data)
}

// Parse decodes a YAML document, validates it and renders its prose blocks.
// Unknown keys are rejected so typos surface at start-up.
func Parse(data []byte) (*Site, error) {
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)

	var site Site
	if err := decoder.Decode(&site); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty document", ErrInvalidContent)
		}
		return nil, fmt.Errorf("%w: decode: %v", ErrInvalidContent, err)
	}

	if err := validator.Validate(&site); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidContent, err)
	}

	for _, prose := range []*Prose{&site.Thesis.Approach, &site.Garage.About} {
		if err := prose.render(); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidContent, err)
		}
	}

	return &site, nil
}
