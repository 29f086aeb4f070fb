package catalog

import (
	"context"
	goerrors "errors"
	"io/fs"
	"syscall"

	"github.com/goliatone/go-errors"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
	"github.com/mitchellh/copystructure"
	"github.com/spf13/pflag"
)

// ProviderBuilder creates a Provider bound to the loader that will run it.
type ProviderBuilder func(*Loader) (Provider, error)

// ProviderType names the kind of source a provider reads.
type ProviderType string

const (
	ProviderTypeDefault ProviderType = "default"
	ProviderTypeFile    ProviderType = "file"
	ProviderTypeEnv     ProviderType = "env"
	ProviderTypeFlag    ProviderType = "pflag"
	ProviderTypeStruct  ProviderType = "struct"
)

func (p ProviderType) String() string {
	return string(p)
}

func (p ProviderType) validate() error {
	switch p {
	case ProviderTypeDefault, ProviderTypeFile, ProviderTypeEnv, ProviderTypeFlag, ProviderTypeStruct:
		return nil
	default:
		return errors.New("invalid provider type", errors.CategoryValidation).
			WithTextCode("INVALID_PROVIDER_TYPE").
			WithMetadata(map[string]any{"provider_type": string(p)})
	}
}

// Provider loads one layer into the store.
type Provider interface {
	Type() ProviderType
	Priority() int
	Validate() error
	Load(context.Context, *koanf.Koanf) error
}

type source struct {
	order        int
	providerType ProviderType
	load         func(context.Context, *koanf.Koanf) error
}

func (s *source) Type() ProviderType { return s.providerType }

func (s *source) Priority() int { return s.order }

func (s *source) Validate() error { return s.providerType.validate() }

func (s *source) Load(ctx context.Context, k *koanf.Koanf) error {
	return s.load(ctx, k)
}

// Priority orders layers; higher priorities load later and win.
type Priority int

// WithOffset places a layer next to a standard priority:
//
//	loader.WithProvider(catalog.FileProvider("local.yaml", int(catalog.PriorityFile.WithOffset(5))))
func (p Priority) WithOffset(offset int) Priority {
	return Priority(int(p) + offset)
}

var (
	PriorityDefaults Priority = 0
	PriorityStruct   Priority = 10
	PriorityFile     Priority = 20
	PriorityEnv      Priority = 30
	PriorityFlags    Priority = 40
)

var (
	DefaultEnvPrefix    = "ARCTREE_"
	DefaultEnvDelimiter = "__"
)

var merger = koanf.WithMergeFunc(MergeWithBooleanPrecedence)

// DefaultValuesProvider loads a nested map. Maps holding OptionalBool values are
// deep copied as is; others go through confmap so dotted keys are expanded.
func DefaultValuesProvider(values map[string]any, order ...int) ProviderBuilder {
	return func(l *Loader) (Provider, error) {
		var kprv koanf.Provider = confmap.Provider(values, ".")
		if containsOptionalBool(values) {
			kprv = &valuesProvider{values: values}
		}
		return &source{
			providerType: ProviderTypeDefault,
			order:        getOrder(PriorityDefaults, order...),
			load: func(_ context.Context, k *koanf.Koanf) error {
				l.logger.Debug("default values provider: %d key(s)", len(values))
				if err := k.Load(kprv, nil, merger); err != nil {
					return errors.Wrap(err, errors.CategoryOperation, "failed to load default values").
						WithTextCode("DEFAULT_VALUES_LOAD_FAILED").
						WithMetadata(map[string]any{"values_count": len(values)})
				}
				return nil
			},
		}, nil
	}
}

// StructProvider loads a Go value through its koanf tags.
func StructProvider(v any, order ...int) ProviderBuilder {
	return func(l *Loader) (Provider, error) {
		if v == nil {
			return nil, errors.New("struct cannot be nil", errors.CategoryBadInput).
				WithTextCode("NIL_STRUCT")
		}
		kprv := structs.Provider(v, "koanf")
		return &source{
			providerType: ProviderTypeStruct,
			order:        getOrder(PriorityStruct, order...),
			load: func(_ context.Context, k *koanf.Koanf) error {
				l.logger.Debug("struct provider")
				if err := k.Load(kprv, nil, merger); err != nil {
					return errors.Wrap(err, errors.CategoryOperation, "failed to load definitions from struct").
						WithTextCode("STRUCT_LOAD_FAILED")
				}
				return nil
			},
		}, nil
	}
}

// FileProvider loads a json, yaml or toml file chosen by extension.
func FileProvider(path string, order ...int) ProviderBuilder {
	return func(l *Loader) (Provider, error) {
		filetype := InferFileType(path)
		if err := filetype.Valid(); err != nil {
			return nil, err
		}
		kprv := file.Provider(path)
		return &source{
			providerType: ProviderTypeFile,
			order:        getOrder(PriorityFile, order...),
			load: func(_ context.Context, k *koanf.Koanf) error {
				l.logger.Debug("file provider: %s", path)
				if err := k.Load(kprv, filetype.Parser(), merger); err != nil {
					return errors.Wrap(err, errors.CategoryOperation, "failed to load definitions from file").
						WithTextCode("FILE_LOAD_FAILED").
						WithMetadata(map[string]any{
							"filepath":  path,
							"file_type": string(filetype),
						})
				}
				return nil
			},
		}, nil
	}
}

// EnvProvider loads variables starting with prefix; delim separates nested keys.
func EnvProvider(prefix, delim string, order ...int) ProviderBuilder {
	return func(l *Loader) (Provider, error) {
		kprv := newEnvProvider(prefix, delim, l.environ)
		return &source{
			providerType: ProviderTypeEnv,
			order:        getOrder(PriorityEnv, order...),
			load: func(_ context.Context, k *koanf.Koanf) error {
				l.logger.Debug("env provider: prefix %s", prefix)
				if err := k.Load(kprv, json.Parser(), merger); err != nil {
					return errors.Wrap(err, errors.CategoryOperation, "failed to load environment variables").
						WithTextCode("ENV_LOAD_FAILED").
						WithMetadata(map[string]any{
							"prefix":    prefix,
							"delimiter": delim,
						})
				}
				return nil
			},
		}, nil
	}
}

// FlagsProvider loads a pflag set; flag names are dotted document paths.
// Unchanged flags only fill keys no other layer supplied.
func FlagsProvider(flagset *pflag.FlagSet, order ...int) ProviderBuilder {
	return func(l *Loader) (Provider, error) {
		if flagset == nil {
			return nil, errors.New("flagset cannot be nil", errors.CategoryBadInput).
				WithTextCode("NIL_FLAGSET")
		}
		return &source{
			providerType: ProviderTypeFlag,
			order:        getOrder(PriorityFlags, order...),
			load: func(_ context.Context, k *koanf.Koanf) error {
				l.logger.Debug("flags provider")
				if err := k.Load(posflag.Provider(flagset, ".", k), nil); err != nil {
					return errors.Wrap(err, errors.CategoryOperation, "failed to load definitions from flags").
						WithTextCode("FLAGS_LOAD_FAILED")
				}
				return nil
			},
		}, nil
	}
}

// ErrorFilter reports whether a provider error can be ignored.
type ErrorFilter func(err error) bool

// DefaultErrorFilter ignores missing files, or only the given errors when any are passed.
func DefaultErrorFilter(allowed ...error) ErrorFilter {
	return func(err error) bool {
		if err == nil {
			return false
		}
		if len(allowed) == 0 {
			return goerrors.Is(err, fs.ErrNotExist) || goerrors.Is(err, syscall.ENOENT)
		}
		for _, target := range allowed {
			if goerrors.Is(err, target) {
				return true
			}
		}
		return false
	}
}

// OptionalProvider wraps a provider so errors accepted by the filter are dropped.
func OptionalProvider(build ProviderBuilder, filters ...ErrorFilter) ProviderBuilder {
	ignore := DefaultErrorFilter()
	if len(filters) > 0 && filters[0] != nil {
		ignore = filters[0]
	}
	return func(l *Loader) (Provider, error) {
		base, err := build(l)
		if err != nil {
			return nil, err
		}
		return &source{
			providerType: base.Type(),
			order:        base.Priority(),
			load: func(ctx context.Context, k *koanf.Koanf) error {
				err := base.Load(ctx, k)
				if ignore(err) {
					l.logger.Debug("optional %s provider skipped: %v", base.Type(), err)
					return nil
				}
				return err
			},
		}, nil
	}
}

func getOrder(def Priority, orders ...int) int {
	if len(orders) > 0 {
		return orders[0]
	}
	return int(def)
}

// valuesProvider hands koanf a deep copy so OptionalBool values keep their type.
type valuesProvider struct {
	values map[string]any
}

func (p *valuesProvider) Read() (map[string]any, error) {
	if p.values == nil {
		return map[string]any{}, nil
	}
	out, err := copystructure.Copy(p.values)
	if err != nil {
		return nil, err
	}
	return out.(map[string]any), nil
}

func (p *valuesProvider) ReadBytes() ([]byte, error) {
	return nil, goerrors.New("values provider does not support ReadBytes")
}

func containsOptionalBool(data map[string]any) bool {
	for _, v := range data {
		switch val := v.(type) {
		case OptionalBool, *OptionalBool:
			return true
		case map[string]any:
			if containsOptionalBool(val) {
				return true
			}
		}
	}
	return false
}
