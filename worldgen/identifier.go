package worldgen

import (
	"fmt"
	"strings"
)

// DefaultNamespace is used when an identifier string carries no namespace.
const DefaultNamespace = "minecraft"

// Identifier is a namespaced registry key such as "minecraft:oak_log".
type Identifier struct {
	Namespace string
	Path      string
}

// ID builds an Identifier without validation.
func ID(namespace, path string) Identifier {
	return Identifier{Namespace: namespace, Path: path}
}

// ParseIdentifier parses "namespace:path". A bare path gets DefaultNamespace.
func ParseIdentifier(s string) (Identifier, error) {
	return ParseIdentifierIn(DefaultNamespace, s)
}

// ParseIdentifierIn parses s, falling back to namespace when s has no namespace part.
func ParseIdentifierIn(namespace, s string) (Identifier, error) {
	s = strings.TrimSpace(s)
	ns, path, found := strings.Cut(s, ":")
	if !found {
		ns, path = namespace, s
	}
	id := Identifier{Namespace: ns, Path: path}
	if err := id.Validate(); err != nil {
		return Identifier{}, err
	}
	return id, nil
}

// MustIdentifier is ParseIdentifier that panics on error. Intended for package-level values.
func MustIdentifier(s string) Identifier {
	id, err := ParseIdentifier(s)
	if err != nil {
		panic(err)
	}
	return id
}

// Validate checks both parts against the allowed character sets.
func (id Identifier) Validate() error {
	if id.Namespace == "" || id.Path == "" {
		return fmt.Errorf("worldgen: invalid identifier %q: empty namespace or path", id.String())
	}
	for _, r := range id.Namespace {
		if !validNamespaceRune(r) {
			return fmt.Errorf("worldgen: invalid identifier %q: bad namespace character %q", id.String(), r)
		}
	}
	for _, r := range id.Path {
		if !validNamespaceRune(r) && r != '/' {
			return fmt.Errorf("worldgen: invalid identifier %q: bad path character %q", id.String(), r)
		}
	}
	return nil
}

func validNamespaceRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
		return true
	case r == '_', r == '-', r == '.':
		return true
	}
	return false
}

// IsZero reports whether the identifier is the zero value.
func (id Identifier) IsZero() bool {
	return id.Namespace == "" && id.Path == ""
}

func (id Identifier) String() string {
	if id.IsZero() {
		return ""
	}
	return id.Namespace + ":" + id.Path
}

// MarshalText implements encoding.TextMarshaler.
func (id Identifier) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler so decoders can read identifiers from strings.
func (id *Identifier) UnmarshalText(text []byte) error {
	parsed, err := ParseIdentifier(string(text))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}
