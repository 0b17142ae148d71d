package transcript

import (
	"context"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// seedFile is the YAML layout of a transcript seed:
//
//	messages:
//	  - role: user
//	    author: Ada
//	    content: Hello!
type seedFile struct {
	Messages []struct {
		Role    string `yaml:"role"`
		Author  string `yaml:"author"`
		Content string `yaml:"content"`
	} `yaml:"messages"`
}

// LoadSeed parses a YAML transcript seed.
func LoadSeed(r io.Reader) ([]PostInput, error) {
	var f seedFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && err != io.EOF {
		return nil, fmt.Errorf("failed to parse seed: %w", err)
	}

	out := make([]PostInput, 0, len(f.Messages))
	for _, m := range f.Messages {
		out = append(out, PostInput{Role: m.Role, Author: m.Author, Content: m.Content})
	}
	return out, nil
}

// Seed posts inputs in order, but only into an empty transcript so that a
// persistent store is not seeded twice. It returns the number of messages
// posted.
func (s *Service) Seed(ctx context.Context, inputs []PostInput) (int, error) {
	existing, err := s.store.Recent(ctx, 1)
	if err != nil {
		return 0, fmt.Errorf("failed to inspect transcript: %w", err)
	}
	if len(existing) > 0 {
		return 0, nil
	}

	for i, in := range inputs {
		if _, err := s.Post(ctx, in); err != nil {
			return i, fmt.Errorf("seed message %d: %w", i+1, err)
		}
	}
	return len(inputs), nil
}
