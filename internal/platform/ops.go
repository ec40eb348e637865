package platform

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/aretw0/jot/pkg/adapters/bolt"
	"github.com/aretw0/jot/pkg/adapters/fs"
	"github.com/aretw0/jot/pkg/adapters/memory"
	"github.com/aretw0/jot/pkg/adapters/sqlite"
	"github.com/aretw0/jot/pkg/codec"
	"github.com/aretw0/jot/pkg/core"
)

// Adapters lists the adapter names accepted by WithAdapter.
var Adapters = []string{"fs", "bolt", "sqlite", "memory"}

// Init builds the backend selected by the options. The uri argument is
// adapter-specific: a folder for "fs", a folder or database file for
// "bolt" and "sqlite", ignored for "memory".
func Init(ctx context.Context, uri string, opts ...Option) (core.Backend, error) {
	return initBackend(ctx, uri, applyOptions(opts))
}

func applyOptions(opts []Option) *options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	return o
}

func initBackend(ctx context.Context, uri string, o *options) (core.Backend, error) {
	if o.backend != nil {
		return o.backend, nil
	}

	switch o.adapter {
	case "memory":
		return memory.New(o.quota), nil
	case "fs", "":
		return initFS(uri, o)
	case "bolt":
		return bolt.Open(bolt.Config{
			Path:   dataFile(resolvePath(uri, o), o, ".db"),
			Quota:  o.quota,
			Logger: o.logger,
		})
	case "sqlite":
		return sqlite.Open(ctx, sqlite.Config{
			Path:   dataFile(resolvePath(uri, o), o, ".sqlite"),
			Quota:  o.quota,
			Logger: o.logger,
		})
	default:
		return nil, fmt.Errorf("unknown adapter: %s", o.adapter)
	}
}

// initFS handles the initialization logic for the filesystem adapter.
func initFS(uri string, o *options) (core.Backend, error) {
	c, err := codec.ByName(o.codec)
	if err != nil {
		return nil, err
	}
	return fs.New(fs.Config{
		Path:         resolvePath(uri, o),
		SystemDir:    o.systemDir,
		Ext:          "." + c.Name(),
		Quota:        o.quota,
		Logger:       o.logger,
		ErrorHandler: o.errorHandler,
	}), nil
}

// resolvePath applies the dev sandbox to uri.
func resolvePath(uri string, o *options) string {
	bypass := o.readOnly || !o.devSafety
	useTemp := o.forceTemp || (IsDevRun() && !bypass)
	path := ResolvePath(uri, useTemp)

	if useTemp && o.logger != nil && path != filepath.Clean(uri) {
		o.logger.Debug("running in SAFE mode (dev sandbox enabled)", "path", path)
	}
	return path
}

// dataFile maps a folder to the database file inside its system directory.
// A uri that already names a file with ext is used as is.
func dataFile(path string, o *options, ext string) string {
	if strings.HasSuffix(path, ext) {
		return path
	}
	systemDir := o.systemDir
	if systemDir == "" {
		systemDir = fs.DefaultSystemDir
	}
	return filepath.Join(path, systemDir, "jot"+ext)
}
