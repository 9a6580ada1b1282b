package leaselite

import (
	"errors"
	"fmt"
	"sort"

	"github.com/sasha-s/go-deadlock"
)

// HandlerFunc runs one workflow. Returning an error counts as a failed
// attempt.
type HandlerFunc func(ctx *Context, input Input) error

// Input is the encoded payload given to Start, decoding is up to the handler.
type Input struct {
	data  []byte
	codec Codec
}

func (i Input) Decode(v any) error {
	if err := i.codec.Unmarshal(i.data, v); err != nil {
		return fmt.Errorf("decode input: %w", err)
	}
	return nil
}

func (i Input) Raw() []byte {
	return append([]byte(nil), i.data...)
}

// Handle wraps a typed handler, the input is decoded into T before fn runs.
func Handle[T any](fn func(ctx *Context, input T) error) HandlerFunc {
	return func(ctx *Context, input Input) error {
		var v T
		if err := input.Decode(&v); err != nil {
			return err
		}
		return fn(ctx, v)
	}
}

// RegistryBuilder collects handlers before Build validates them
type RegistryBuilder struct {
	names    []string
	handlers []HandlerFunc
}

func NewRegistry() *RegistryBuilder {
	return &RegistryBuilder{}
}

func (b *RegistryBuilder) Handler(name string, fn HandlerFunc) *RegistryBuilder {
	b.names = append(b.names, name)
	b.handlers = append(b.handlers, fn)
	return b
}

func (b *RegistryBuilder) Build() (*Registry, error) {
	r := &Registry{handlers: make(map[string]HandlerFunc, len(b.names))}
	var errs []error
	for i, name := range b.names {
		if err := r.Register(name, b.handlers[i]); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return r, nil
}

// Registry maps handler names to handlers. Safe for concurrent use.
type Registry struct {
	mu       deadlock.RWMutex
	handlers map[string]HandlerFunc
}

func (r *Registry) Register(name string, fn HandlerFunc) error {
	if name == "" {
		return ErrEmptyHandlerName
	}
	if fn == nil {
		return fmt.Errorf("%w: %s", ErrNilHandler, name)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.handlers[name]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateHandler, name)
	}
	r.handlers[name] = fn
	return nil
}

func (r *Registry) Get(name string) (HandlerFunc, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	fn, ok := r.handlers[name]
	return fn, ok
}

func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.handlers))
	for name := range r.handlers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
