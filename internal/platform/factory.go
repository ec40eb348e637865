package platform

import (
	"context"
	"fmt"

	"github.com/aretw0/jot/pkg/codec"
	"github.com/aretw0/jot/pkg/core"
)

// New builds a store on the backend selected by opts and loads it.
//
//	store, err := jot.New(ctx, "./notes", jot.WithAdapter("bolt"))
//
// The caller owns the store and must Close it.
func New(ctx context.Context, uri string, opts ...Option) (*core.Store, error) {
	o := applyOptions(opts)

	c, err := codec.ByName(o.codec)
	if err != nil {
		return nil, err
	}

	backend, err := initBackend(ctx, uri, o)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", core.ErrStorage, err)
	}

	store := core.NewStore(backend, core.Config{
		Key:          o.key,
		Codec:        c,
		Logger:       o.logger,
		Clock:        o.clock,
		RecentWindow: o.recentWindow,
		EventBuffer:  o.eventBuffer,
		Rollback:     o.rollback,
		ReadOnly:     o.readOnly,
	})

	if err := store.Load(ctx); err != nil {
		_ = store.Close()
		return nil, err
	}

	if o.logger != nil {
		o.logger.Debug("store ready", "adapter", o.adapter, "key", o.key, "codec", c.Name(), "notes", store.Len())
	}
	return store, nil
}
