package control

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"gopkg.in/yaml.v3"
)

var (
	// ErrNotFound is returned when a control reference matches no file.
	ErrNotFound = errors.New("control file not found")
	// ErrAmbiguousRef is returned when a control reference matches more than
	// one file.
	ErrAmbiguousRef = errors.New("ambiguous control reference")
	// ErrMissingSection is returned when the control file has no section for
	// the requested operation.
	ErrMissingSection = errors.New("control section not found")
)

// Params holds the values a control section supplies for an operation. The
// Has flags record which keys the section actually set, so an explicit empty
// string is distinct from an omitted key.
type Params struct {
	Output string
	Field  string
	Prefix string
	Suffix string

	HasOutput bool
	HasField  bool
	HasPrefix bool
	HasSuffix bool
}

// Resolve expands a control file reference, which may be a literal path or a
// doublestar glob pattern, to exactly one existing file.
func Resolve(ref string) (string, error) {
	matches, err := doublestar.FilepathGlob(ref)
	if err != nil {
		return "", fmt.Errorf("bad control reference %q: %w", ref, err)
	}
	if len(matches) == 0 {
		return "", fmt.Errorf("%w: %s", ErrNotFound, ref)
	}
	if len(matches) > 1 {
		sort.Strings(matches)
		return "", fmt.Errorf("%w: %s matches %s", ErrAmbiguousRef, ref, strings.Join(matches, ", "))
	}
	return matches[0], nil
}

// Load reads a control file and returns the parameters of the named section.
// The file is a YAML mapping of section names to key/value mappings; keys
// other than output, field, prefix and suffix are rejected.
func Load(path, section string) (Params, error) {
	root, err := loadRootMapping(path)
	if err != nil {
		return Params{}, err
	}
	node := sectionNode(root, section)
	if node == nil {
		return Params{}, fmt.Errorf("%w: %q in %s", ErrMissingSection, section, path)
	}
	var kv map[string]string
	if err := node.Decode(&kv); err != nil {
		return Params{}, fmt.Errorf("decode control section %q: %w", section, err)
	}
	var p Params
	for k, v := range kv {
		switch k {
		case "output":
			p.Output, p.HasOutput = v, true
		case "field":
			p.Field, p.HasField = v, true
		case "prefix":
			p.Prefix, p.HasPrefix = v, true
		case "suffix":
			p.Suffix, p.HasSuffix = v, true
		default:
			return Params{}, fmt.Errorf("unknown key %q in control section %q", k, section)
		}
	}
	return p, nil
}

func loadRootMapping(path string) (*yaml.Node, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var doc yaml.Node
	if err := yaml.Unmarshal(b, &doc); err != nil {
		return nil, fmt.Errorf("invalid YAML in %s: %w", path, err)
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, fmt.Errorf("unexpected YAML structure in %s", path)
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("expected mapping at document root in %s", path)
	}
	return root, nil
}

func sectionNode(root *yaml.Node, name string) *yaml.Node {
	for i := 0; i+1 < len(root.Content); i += 2 {
		if root.Content[i].Value == name {
			return root.Content[i+1]
		}
	}
	return nil
}
