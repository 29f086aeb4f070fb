package catalog

import (
	"context"
	"fmt"
	"reflect"
	"sort"
	"time"

	"github.com/goliatone/go-arctree/logger"
	"github.com/goliatone/go-errors"
	"github.com/knadh/koanf/v2"
	"github.com/mitchellh/copystructure"
	"github.com/spf13/pflag"
)

var DefaultLoadTimeout = 30 * time.Second

// Loader layers definition sources and decodes them into a Document.
// A Loader is configured once and may then be loaded any number of times.
type Loader struct {
	builders     []ProviderBuilder
	solvers      []Solver
	solverPasses int
	strictDecode bool
	timeout      time.Duration
	logger       logger.Logger
	environ      func() []string

	k *koanf.Koanf
}

// NewLoader returns a loader with the default solvers and no sources.
func NewLoader() *Loader {
	return &Loader{
		solvers:      DefaultSolvers(),
		solverPasses: 1,
		timeout:      DefaultLoadTimeout,
		logger:       logger.NewDefaultLogger("catalog"),
	}
}

func (l *Loader) WithProvider(builders ...ProviderBuilder) *Loader {
	for _, b := range builders {
		if b != nil {
			l.builders = append(l.builders, b)
		}
	}
	return l
}

// WithDefaults loads a copy of doc below every other layer.
func (l *Loader) WithDefaults(doc Document) *Loader {
	return l.WithProvider(func(ld *Loader) (Provider, error) {
		cloned, err := copystructure.Copy(doc)
		if err != nil {
			return nil, errors.Wrap(err, errors.CategoryOperation, "failed to clone default document").
				WithTextCode("DEFAULTS_CLONE_FAILED")
		}
		cp := cloned.(Document)
		return StructProvider(&cp, int(PriorityDefaults))(ld)
	})
}

func (l *Loader) WithValues(values map[string]any) *Loader {
	return l.WithProvider(DefaultValuesProvider(values))
}

func (l *Loader) WithStruct(v any) *Loader {
	return l.WithProvider(StructProvider(v))
}

func (l *Loader) WithFile(path string) *Loader {
	return l.WithProvider(FileProvider(path))
}

// WithOptionalFile is WithFile without failing on a missing file.
func (l *Loader) WithOptionalFile(path string) *Loader {
	return l.WithProvider(OptionalProvider(FileProvider(path)))
}

func (l *Loader) WithEnv(prefix, delim string) *Loader {
	return l.WithProvider(EnvProvider(prefix, delim))
}

func (l *Loader) WithFlags(flagset *pflag.FlagSet) *Loader {
	return l.WithProvider(FlagsProvider(flagset))
}

// WithSolver replaces the solver chain; no arguments disables solving.
func (l *Loader) WithSolver(solvers ...Solver) *Loader {
	l.solvers = l.solvers[:0:0]
	for _, s := range solvers {
		if s != nil {
			l.solvers = append(l.solvers, s)
		}
	}
	return l
}

func (l *Loader) WithSolverPasses(passes int) *Loader {
	if passes < 1 {
		passes = 1
	}
	l.solverPasses = passes
	return l
}

// WithStrictDecode rejects keys that map to no Definition field.
func (l *Loader) WithStrictDecode(enabled bool) *Loader {
	l.strictDecode = enabled
	return l
}

func (l *Loader) WithTimeout(timeout time.Duration) *Loader {
	l.timeout = timeout
	return l
}

func (l *Loader) WithLogger(lgr logger.Logger) *Loader {
	if lgr != nil {
		l.logger = lgr
	}
	return l
}

// WithEnviron replaces os.Environ for the env providers.
func (l *Loader) WithEnviron(environ func() []string) *Loader {
	l.environ = environ
	return l
}

// Koanf returns the store of the last Load, nil before the first one.
func (l *Loader) Koanf() *koanf.Koanf {
	return l.k
}

// Load merges every source by priority, runs the solvers and decodes the result.
func (l *Loader) Load(ctx context.Context) (*Document, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if l.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, l.timeout)
		defer cancel()
	}

	providers := make([]Provider, 0, len(l.builders))
	for i, build := range l.builders {
		p, err := build(l)
		if err != nil {
			return nil, errors.Wrap(err, errors.CategoryOperation, "failed to create provider").
				WithTextCode("PROVIDER_CREATION_FAILED").
				WithMetadata(map[string]any{"factory_index": i})
		}
		if err := p.Validate(); err != nil {
			return nil, err
		}
		providers = append(providers, p)
	}

	sort.SliceStable(providers, func(i, j int) bool {
		return providers[i].Priority() < providers[j].Priority()
	})

	k := koanf.NewWithConf(koanf.Conf{Delim: ".", StrictMerge: false})
	for i, p := range providers {
		meta := map[string]any{"source_type": p.Type().String(), "source_index": i}
		if err := ctx.Err(); err != nil {
			return nil, stageError(stageLoad, ErrLoad, err, meta)
		}
		if err := p.Load(ctx, k); err != nil {
			return nil, stageError(stageLoad, ErrLoad, err, meta)
		}
	}
	l.k = k

	if err := l.solve(k); err != nil {
		return nil, stageError(stageSolve, ErrSolve, err, nil)
	}

	doc, err := decodeDocument(k.Raw(), l.strictDecode)
	if err != nil {
		return nil, stageError(stageDecode, ErrDecode, err, map[string]any{"strict": l.strictDecode})
	}
	if err := doc.Validate(); err != nil {
		return nil, stageError(stageValidate, ErrValidate, err, nil)
	}

	l.logger.Info("loaded %d tree definition(s) from %d source(s)", len(doc.Trees), len(providers))
	return doc, nil
}

// solve runs the solver chain until the store stops changing or the passes run out.
func (l *Loader) solve(k *koanf.Koanf) (err error) {
	if len(l.solvers) == 0 {
		return nil
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("solver panic: %v", r)
		}
	}()

	for pass := 0; pass < l.solverPasses; pass++ {
		before, cerr := copystructure.Copy(k.Raw())
		for _, s := range l.solvers {
			s.Solve(k)
		}
		if cerr != nil {
			continue
		}
		if reflect.DeepEqual(before, k.Raw()) {
			break
		}
	}
	return nil
}

// MustLoad panics when Load fails.
func (l *Loader) MustLoad(ctx context.Context) *Document {
	doc, err := l.Load(ctx)
	if err != nil {
		panic(fmt.Sprintf("catalog: failed to load tree definitions: %v", err))
	}
	return doc
}
