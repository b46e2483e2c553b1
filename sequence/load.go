package sequence

import (
	"fmt"
	"io"
	"os"

	"github.com/matt-g-everett/animseq/util"
	"gopkg.in/yaml.v2"
)

// File is a declarative sequence description.
type File struct {
	Play  bool   `yaml:"play"`
	Steps []Step `yaml:"steps"`
}

// Load decodes and validates a YAML sequence.
func Load(r io.Reader) (*File, error) {
	var f File
	decoder := yaml.NewDecoder(r)
	if err := decoder.Decode(&f); err != nil {
		if err == io.EOF {
			return &f, nil
		}
		return nil, fmt.Errorf("decode sequence: %w", err)
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

// LoadFile reads a YAML sequence from path.
func LoadFile(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Load(f)
}

// Validate checks every step and rejects explicit identities used twice.
// Steps without an identity are not checked; they fall back to position.
func (f *File) Validate() error {
	seen := make(map[util.ID]int)
	for i, step := range f.Steps {
		if err := step.Validate(); err != nil {
			return fmt.Errorf("step %d: %w", i, err)
		}
		if !step.HasExplicitID() {
			continue
		}
		id := step.Identity(i)
		if prev, ok := seen[id]; ok {
			return fmt.Errorf("steps %d and %d share identity %s", prev, i, id)
		}
		seen[id] = i
	}
	return nil
}
