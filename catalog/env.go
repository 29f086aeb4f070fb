package catalog

import (
	"errors"
	"os"
	"strings"

	"github.com/tidwall/sjson"
)

// envProvider turns prefixed environment variables into a JSON document.
// ARCTREE_TREES__OAK__SPAWN_CHANCE=4 becomes {"trees":{"oak":{"spawn_chance":"4"}}};
// numeric segments build arrays, ARCTREE_TREES__OAK__DECORATORS__0__TYPE=minecraft:beehive.
type envProvider struct {
	prefix  string
	delim   string
	environ func() []string
}

func newEnvProvider(prefix, delim string, environ func() []string) *envProvider {
	if environ == nil {
		environ = os.Environ
	}
	return &envProvider{prefix: prefix, delim: delim, environ: environ}
}

// key maps a variable name to a dotted document path, "" when it should be skipped.
func (e *envProvider) key(name string) string {
	if e.prefix != "" && !strings.HasPrefix(name, e.prefix) {
		return ""
	}
	name = strings.ToLower(strings.TrimPrefix(name, e.prefix))
	if name == "" {
		return ""
	}
	if e.delim != "" {
		name = strings.ReplaceAll(name, e.delim, ".")
	}
	return name
}

// ReadBytes implements koanf.Provider.
func (e *envProvider) ReadBytes() ([]byte, error) {
	out := "{}"
	for _, kv := range e.environ() {
		name, value, ok := strings.Cut(kv, "=")
		if !ok {
			continue
		}
		path := e.key(name)
		if path == "" {
			continue
		}
		next, err := sjson.Set(out, path, value)
		if err != nil {
			return nil, err
		}
		out = next
	}
	return []byte(out), nil
}

// Read is not supported; the provider is always paired with the json parser.
func (e *envProvider) Read() (map[string]any, error) {
	return nil, errors.New("env provider does not support Read")
}
