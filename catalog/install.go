package catalog

import (
	"context"

	"github.com/goliatone/go-arctree/tree"
	"github.com/goliatone/go-errors"
)

// Install loads the definitions, compiles all of them and only then registers each
// tree with sink in identifier order. A compile failure registers nothing; a sink
// failure returns the handles registered so far.
func Install(ctx context.Context, loader *Loader, compiler *Compiler, sink tree.Registrar) ([]tree.Handle, error) {
	if loader == nil || sink == nil {
		return nil, errors.New("loader and sink are required", errors.CategoryBadInput).
			WithTextCode("INSTALL_BAD_INPUT")
	}
	if compiler == nil {
		compiler = NewCompiler(nil)
	}

	doc, err := loader.Load(ctx)
	if err != nil {
		return nil, err
	}
	compiled, err := compiler.CompileDocument(doc)
	if err != nil {
		return nil, err
	}

	handles := make([]tree.Handle, 0, len(compiled))
	for _, c := range compiled {
		h, err := sink.Register(c.ID, c.Config)
		if err != nil {
			return handles, errors.Wrap(err, errors.CategoryOperation, "failed to register tree").
				WithTextCode("TREE_REGISTER_FAILED").
				WithMetadata(map[string]any{"tree": c.ID.String(), "registered": len(handles)})
		}
		handles = append(handles, h)
	}
	loader.logger.Info("installed %d tree(s)", len(handles))
	return handles, nil
}
