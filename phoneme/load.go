package phoneme

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

var ErrUnknownGroup = errors.New("unknown phoneme group")

type tableFile struct {
	Groups []struct {
		Name    string   `yaml:"name"`
		Members []string `yaml:"members"`
	} `yaml:"groups"`
}

// LoadTable decodes a YAML table:
//
//	groups:
//	  - name: vowels
//	    members: [a, e, i, o, u]
//
// Declaration order in the file is the scan order.
func LoadTable(r io.Reader) (*Table, error) {
	var f tableFile
	if err := yaml.NewDecoder(r).Decode(&f); err != nil {
		return nil, fmt.Errorf("phoneme table decode: %w", err)
	}
	if len(f.Groups) == 0 {
		return nil, errors.New("phoneme table: no groups")
	}
	seen := map[Group]bool{}
	entries := make([]Entry, 0, len(f.Groups))
	for _, g := range f.Groups {
		grp := Group(g.Name)
		if !grp.Valid() {
			return nil, fmt.Errorf("%w: %q", ErrUnknownGroup, g.Name)
		}
		if seen[grp] {
			return nil, fmt.Errorf("phoneme table: duplicate group %q", g.Name)
		}
		seen[grp] = true
		entries = append(entries, Entry{Group: grp, Members: g.Members})
	}
	return NewTable(entries), nil
}

func LoadTableFile(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return LoadTable(f)
}
