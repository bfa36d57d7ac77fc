// Package assets versions static files by content hash so they can be cached forever.
package assets

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"io/fs"
	"log/slog"
	"path"
	"strings"
	"sync"
)

const (
	// Prefix is the URL prefix static files are served under.
	Prefix = "/static/"

	hashLen = 10
)

// AssetResolver maps logical asset names to "/static/<name>?v=<hash>".
// Hashes are computed lazily from fsys and cached unless the resolver is in dev mode.
type AssetResolver struct {
	fsys    fs.FS
	devMode bool

	mu     sync.RWMutex
	hashes map[string]string
	logger *slog.Logger
}

// NewAssetResolver creates a resolver over the static file tree rooted at fsys.
func NewAssetResolver(fsys fs.FS, devMode bool) *AssetResolver {
	return &AssetResolver{
		fsys:    fsys,
		devMode: devMode,
		hashes:  make(map[string]string),
		logger:  slog.Default(),
	}
}

// SetLogger updates the resolver's logger. If logger is nil, slog.Default() is used.
func (ar *AssetResolver) SetLogger(logger *slog.Logger) {
	ar.mu.Lock()
	defer ar.mu.Unlock()
	if logger == nil {
		ar.logger = slog.Default()
		return
	}
	ar.logger = logger
}

// Resolve returns the versioned URL for a logical asset name.
// Unknown files resolve to the unversioned URL.
func (ar *AssetResolver) Resolve(logicalName string) string {
	name := strings.TrimPrefix(path.Clean("/"+logicalName), "/")
	plain := Prefix + name
	if ar == nil || ar.fsys == nil {
		return plain
	}

	hash, err := ar.hash(name)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			ar.loggerOrDefault().Error("failed to hash static asset",
				slog.String("asset", name),
				slog.Any("error", err),
			)
		}
		return plain
	}
	return plain + "?v=" + hash
}

// Reset drops all cached hashes.
func (ar *AssetResolver) Reset() {
	ar.mu.Lock()
	ar.hashes = make(map[string]string)
	ar.mu.Unlock()
}

func (ar *AssetResolver) hash(name string) (string, error) {
	if !ar.devMode {
		ar.mu.RLock()
		h, ok := ar.hashes[name]
		ar.mu.RUnlock()
		if ok {
			return h, nil
		}
	}

	data, err := fs.ReadFile(ar.fsys, name)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(data)
	h := hex.EncodeToString(sum[:])[:hashLen]

	if !ar.devMode {
		ar.mu.Lock()
		ar.hashes[name] = h
		ar.mu.Unlock()
	}
	return h, nil
}

// ResolveAsset resolves a logical asset name, tolerating a nil resolver.
func ResolveAsset(resolver *AssetResolver, logicalName string) string {
	if resolver == nil {
		return Prefix + strings.TrimPrefix(logicalName, "/")
	}
	return resolver.Resolve(logicalName)
}

func (ar *AssetResolver) loggerOrDefault() *slog.Logger {
	ar.mu.RLock()
	defer ar.mu.RUnlock()
	if ar.logger != nil {
		return ar.logger
	}
	return slog.Default()
}
