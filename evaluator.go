package pave

import (
	"errors"
	"fmt"
	"maps"
	"reflect"
	"slices"
	"strconv"
	"time"

	"github.com/rs/zerolog"
)

// Block declares the children of a Hash or Array parameter.
//
// For hash children, and for hash elements of an array, index is -1. For
// any other array element the element is wrapped in a single-entry scope
// keyed by its index, which is passed so the block can call p.Elem(index, ...).
type Block func(p *Evaluator, index int) error

// EvaluatorOpts configures an Evaluator.
type EvaluatorOpts struct {
	// Translator renders error messages. Defaults to DefaultCatalog().
	Translator Translator
	// Logger receives debug events. Defaults to a disabled logger.
	Logger *zerolog.Logger
	// Location is used to parse times without a zone. Defaults to UTC.
	Location *time.Location
}

// env is shared, read-only state for one evaluation tree.
type env struct {
	translator Translator
	logger     zerolog.Logger
	loc        *time.Location
}

// Evaluator coerces and validates the parameters of one scope. The root
// scope wraps the caller's map; nested scopes are created for the
// children of Hash and Array parameters.
//
// An Evaluator is not safe for concurrent use.
type Evaluator struct {
	params    map[string]any
	path      []string
	indexed   bool // scope wraps a single array element keyed by its index
	permitted Permitted
	env       *env
}

// New creates a root Evaluator over params. Coerced values are written
// back into params.
func New(params map[string]any, opts EvaluatorOpts) *Evaluator {
	if params == nil {
		params = make(map[string]any)
	}

	translator := opts.Translator
	if translator == nil {
		translator = DefaultCatalog()
	}

	logger := zerolog.Nop()
	if opts.Logger != nil {
		logger = opts.Logger.With().Str("component", "pave").Logger()
	}

	loc := opts.Location
	if loc == nil {
		loc = time.UTC
	}

	return &Evaluator{
		params:    params,
		permitted: Permitted{},
		env: &env{
			translator: translator,
			logger:     logger,
			loc:        loc,
		},
	}
}

// Declare evaluates a single top-level parameter of params with default
// settings.
func Declare(params map[string]any, name string, typ Type, opts Options, block ...Block) (any, error) {
	return New(params, EvaluatorOpts{}).Param(name, typ, opts, block...)
}

// Params returns the scope's parameters, including coerced values.
func (e *Evaluator) Params() map[string]any {
	return e.params
}

// Path returns the rendered path of the scope; empty at the root.
func (e *Evaluator) Path() string {
	return renderPath(e.path)
}

// Permitted returns the tree of parameters declared so far in this scope.
func (e *Evaluator) Permitted() Permitted {
	return e.permitted
}

// Param coerces, defaults, transforms and validates the named parameter,
// stores the result in the scope and returns it.
//
// A parameter that is absent, has no default and is not required is
// skipped and (nil, nil) is returned. Failures are *InvalidParameterError.
func (e *Evaluator) Param(name string, typ Type, opts Options, block ...Block) (any, error) {
	return e.declare(name, typ, opts, block)
}

// Elem is Param for an element addressed by its array index.
func (e *Evaluator) Elem(index int, typ Type, opts Options, block ...Block) (any, error) {
	return e.declare(strconv.Itoa(index), typ, opts, block)
}

// parameter is the evaluation state of one declared field.
type parameter struct {
	path  []string
	value any
	typ   Type
	opts  Options
	env   *env
}

// fail builds the error for p. bound is interpolated as the message value.
func (p *parameter) fail(reason Reason, key string, bound any, cause error) *InvalidParameterError {
	param := renderPath(p.path)
	data := map[string]any{
		MsgDataParam: param,
		MsgDataValue: displayValue(bound),
		MsgDataType:  p.typ.String(),
	}

	return &InvalidParameterError{
		Param:   param,
		Path:    p.path,
		Reason:  reason,
		Value:   p.value,
		Options: p.opts,
		Message: p.env.translator.Translate(key, data),
		Err:     cause,
	}
}

func (e *Evaluator) declare(key string, typ Type, opts Options, blocks []Block) (any, error) {
	if !typ.Valid() {
		return nil, fmt.Errorf("%w: %d for parameter %s", ErrUnknownType, typ, key)
	}

	node := e.permit(key, typ)

	raw, present := e.params[key]
	if !present && !opts.hasDefault() && !opts.Required {
		return nil, nil
	}

	p := &parameter{
		path:  append(slices.Clone(e.path), key),
		value: raw,
		typ:   typ,
		opts:  opts,
		env:   e.env,
	}

	value, err := p.run(e, raw, node, blocks)
	if err != nil {
		var ipe *InvalidParameterError
		if errors.As(err, &ipe) && slices.Equal(ipe.Path, p.path) {
			e.env.logger.Debug().
				Str("param", ipe.Param).
				Stringer("reason", ipe.Reason).
				Msg("parameter rejected")
		}
		return nil, err
	}

	e.params[key] = value
	e.env.logger.Debug().
		Str("param", renderPath(p.path)).
		Stringer("type", typ).
		Msg("parameter accepted")

	return value, nil
}

// run takes p from its raw value to its final value:
// coerce, default, required, recurse, transform, validate.
func (p *parameter) run(e *Evaluator, raw any, node Permitted, blocks []Block) (any, error) {
	value, err := coerce(raw, p.typ, p.opts, p.env.loc)
	if err != nil {
		return nil, p.fail(ReasonTypeMismatch, MsgTypeInvalid, raw, err)
	}
	p.value = value

	if p.value == nil && p.opts.hasDefault() {
		p.value = p.opts.defaultValue()
	}

	if p.value == nil && p.opts.Required {
		return nil, p.fail(ReasonRequired, MsgRequiredMissing, nil, nil)
	}

	if len(blocks) > 0 && p.value != nil && p.typ.IsComposite() {
		for _, block := range blocks {
			if block == nil {
				return nil, p.fail(ReasonMissingBlock, MsgMissingBlock, nil, ErrMissingBlock)
			}
		}
		if p.value, err = e.descend(p, node, blocks); err != nil {
			return nil, err
		}
	}

	if p.value != nil && p.opts.Transform != nil {
		transformed, err := p.opts.Transform(p.value)
		if err != nil {
			return nil, p.fail(ReasonTransformFailed, MsgTransformFailed, err.Error(), err)
		}
		p.value = transformed
	}

	if ipe := validate(p); ipe != nil {
		return nil, ipe
	}

	return p.value, nil
}

// child creates a nested scope.
func (e *Evaluator) child(path []string, params map[string]any, node Permitted, indexed bool) *Evaluator {
	return &Evaluator{
		params:    params,
		path:      path,
		indexed:   indexed,
		permitted: node,
		env:       e.env,
	}
}

// descend runs blocks over the children of a composite value and returns
// a new value assembled from the children's results.
func (e *Evaluator) descend(p *parameter, node Permitted, blocks []Block) (any, error) {
	switch value := p.value.(type) {
	case map[string]any:
		child := e.child(p.path, maps.Clone(value), node, false)
		if err := runBlocks(child, noIndex, blocks); err != nil {
			return nil, err
		}
		return child.params, nil

	case []any:
		out := make([]any, len(value))
		for i, elem := range value {
			idx := strconv.Itoa(i)

			if hash, ok := asHash(elem); ok {
				child := e.child(append(slices.Clone(p.path), idx), hash, node, false)
				if err := runBlocks(child, noIndex, blocks); err != nil {
					return nil, err
				}
				out[i] = child.params
				continue
			}

			child := e.child(p.path, map[string]any{idx: elem}, node, true)
			if err := runBlocks(child, i, blocks); err != nil {
				return nil, err
			}
			out[i] = child.params[idx]
		}
		return out, nil

	default:
		return p.value, nil
	}
}

func runBlocks(child *Evaluator, index int, blocks []Block) error {
	for _, block := range blocks {
		if err := block(child, index); err != nil {
			return err
		}
	}
	return nil
}

// asHash returns a fresh map[string]any for map-shaped array elements.
func asHash(elem any) (map[string]any, bool) {
	if elem == nil || reflect.TypeOf(elem).Kind() != reflect.Map {
		return nil, false
	}
	if m, ok := elem.(map[string]any); ok {
		return maps.Clone(m), true
	}
	v, err := coerceHash(coercion{typ: Hash}, elem)
	if err != nil {
		return nil, false
	}
	return v.(map[string]any), true
}

// permit records key in the scope's permitted tree and returns the node
// its children are recorded under.
func (e *Evaluator) permit(key string, typ Type) Permitted {
	if e.indexed {
		return e.permitted
	}

	if !typ.IsComposite() {
		if _, ok := e.permitted[key]; !ok {
			e.permitted[key] = nil
		}
		return nil
	}

	node := e.permitted[key]
	if node == nil {
		node = Permitted{}
		e.permitted[key] = node
	}
	return node
}
