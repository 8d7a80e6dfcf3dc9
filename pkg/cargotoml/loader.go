package cargotoml

import (
	"os"
	"path/filepath"
	"unicode/utf8"

	"github.com/BurntSushi/toml"
)

// Parse parses the contents of a Cargo.toml file already loaded as bytes.
// It does not run completion, so implicit product declarations may be
// missing; see Load and Manifest.CompleteFromFS.
func Parse(data []byte) (*Manifest[Value], error) {
	return ParseWithMetadata[Value](data)
}

// ParseWithMetadata is Parse with [package.metadata] bound to a caller
// supplied type instead of the catch-all Value. If the raw metadata value
// does not fit M, the whole parse fails with a *SyntaxError naming the
// offending key path.
func ParseWithMetadata[M any](data []byte) (*Manifest[M], error) {
	if !utf8.Valid(data) {
		return nil, &EncodingError{Offset: invalidUTF8Offset(data)}
	}

	var tree map[string]any
	if err := toml.Unmarshal(data, &tree); err != nil {
		return nil, &SyntaxError{Err: err}
	}

	m := new(Manifest[M])
	_, hasPackage := tree["package"]
	_, hasWorkspace := tree["workspace"]
	if hasPackage || hasWorkspace {
		if err := decodeShape(tree, m, true); err != nil {
			return nil, &SyntaxError{Err: err}
		}
	} else {
		// Legacy manifest without a [package] header: decode the known
		// sections leniently, then reinterpret [project], or failing that
		// the document root, as the package body.
		if err := decodeShape(tree, m, false); err != nil {
			return nil, &SyntaxError{Err: err}
		}
		body := tree
		if project, ok := tree["project"].(map[string]any); ok {
			body = project
		}
		pkg := new(Package[M])
		if err := decodeShape(body, pkg, false); err != nil {
			return nil, &SyntaxError{Err: err}
		}
		m.Package = pkg
	}

	if err := m.validate(); err != nil {
		return nil, err
	}
	return m, nil
}

// Load reads a Cargo.toml file, parses it, and completes it from the
// directory layout around it. Read errors are surfaced as-is.
func Load(path string) (*Manifest[Value], error) {
	return LoadWithMetadata[Value](path)
}

// LoadWithMetadata is Load with a caller-supplied metadata type.
func LoadWithMetadata[M any](path string) (*Manifest[M], error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	m, err := ParseWithMetadata[M](data)
	if err != nil {
		return nil, err
	}
	if err := m.CompleteFromPath(filepath.Dir(path)); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *Manifest[M]) validate() error {
	if m.Package == nil {
		return nil
	}
	if m.Package.Name == "" {
		return syntaxErrorf("package.name is required and must not be empty")
	}
	if !m.Package.Version.Workspace && m.Package.Version.Local == nil {
		return syntaxErrorf("package.version is required")
	}
	return nil
}
