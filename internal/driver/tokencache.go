package driver

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"ifj25/internal/diag"
	"ifj25/internal/diagfmt"
	"ifj25/internal/source"
)

// Current schema version - increment when cachePayload changes.
const tokenCacheSchema uint16 = 1

// CacheKey identifies a token stream: file content plus every option that
// can change the result.
type CacheKey [32]byte

// TokenCache stores token streams on disk, keyed by CacheKey.
// Thread-safe for concurrent access.
type TokenCache struct {
	mu  sync.RWMutex
	dir string
}

type cachedDiag struct {
	Severity uint8
	Code     uint16
	Message  string
	Start    uint32
	End      uint32
}

type cachePayload struct {
	Schema uint16
	Path   string
	Tokens []diagfmt.TokenRecord
	Diags  []cachedDiag
	Halted bool
}

// OpenTokenCache opens the cache under $XDG_CACHE_HOME/<app> (or ~/.cache/<app>).
func OpenTokenCache(app string) (*TokenCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	return NewTokenCache(filepath.Join(base, app))
}

// NewTokenCache opens a cache rooted at dir, creating it if needed.
func NewTokenCache(dir string) (*TokenCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &TokenCache{dir: dir}, nil
}

// Dir returns the cache root.
func (c *TokenCache) Dir() string { return c.dir }

// Key derives the cache key for content hash under opts.
func (c *TokenCache) Key(hash [32]byte, opts Options) CacheKey {
	h := sha256.New()
	h.Write(hash[:])
	var buf [2]byte
	binary.BigEndian.PutUint16(buf[:], tokenCacheSchema)
	h.Write(buf[:])
	fmt.Fprintf(h, "|max=%d|promote=%t|recover=%t|diags=%d",
		opts.Lexer.MaxTokenLength, opts.Lexer.PromoteLiterals, opts.Recover, opts.MaxDiagnostics)
	var key CacheKey
	copy(key[:], h.Sum(nil))
	return key
}

func (c *TokenCache) pathFor(key CacheKey) string {
	hexKey := hex.EncodeToString(key[:])
	return filepath.Join(c.dir, "tokens", hexKey[:2], hexKey+".mp")
}

// Store writes the tokens and diagnostics of res under key.
func (c *TokenCache) Store(key CacheKey, res *TokenizeResult) error {
	if c == nil || res == nil {
		return nil
	}
	payload := cachePayload{
		Schema: tokenCacheSchema,
		Path:   res.Path,
		Tokens: diagfmt.TokenRecords(res.Tokens, nil),
		Halted: res.Halted,
	}
	for _, d := range res.Bag.Items() {
		payload.Diags = append(payload.Diags, cachedDiag{
			Severity: uint8(d.Severity),
			Code:     uint16(d.Code),
			Message:  d.Message,
			Start:    d.Primary.Start,
			End:      d.Primary.End,
		})
	}
	return c.put(key, &payload)
}

func (c *TokenCache) put(key CacheKey, payload *cachePayload) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	tmp := f.Name()
	defer os.Remove(tmp) //nolint:errcheck // gone after a successful rename

	if err := msgpack.NewEncoder(f).Encode(payload); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	// atomic replace
	return os.Rename(tmp, p)
}

// Load fills res from the cache. The tokens are re-stamped with fileID.
// A payload with another schema counts as a miss.
func (c *TokenCache) Load(key CacheKey, fileID source.FileID, res *TokenizeResult) (bool, error) {
	if c == nil {
		return false, nil
	}
	var payload cachePayload
	hit, err := c.get(key, &payload)
	if err != nil || !hit || payload.Schema != tokenCacheSchema {
		return false, err
	}

	tokens := res.Tokens[:0]
	for i, rec := range payload.Tokens {
		rec.Span.File = fileID
		tok, err := rec.Token()
		if err != nil {
			return false, fmt.Errorf("cache entry %x token %d: %w", key[:4], i, err)
		}
		tokens = append(tokens, tok)
	}
	for _, d := range payload.Diags {
		res.Bag.Add(diag.New(
			diag.Severity(d.Severity),
			diag.Code(d.Code),
			source.Span{File: fileID, Start: d.Start, End: d.End},
			d.Message,
		))
	}
	res.Tokens = tokens
	res.Halted = payload.Halted
	res.Cached = true
	return true, nil
}

func (c *TokenCache) get(key CacheKey, out *cachePayload) (bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	defer f.Close() //nolint:errcheck // read-only

	if err := msgpack.NewDecoder(f).Decode(out); err != nil {
		return false, err
	}
	return true, nil
}

// DropAll invalidates the whole cache.
func (c *TokenCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	old := c.dir + ".old-" + time.Now().Format("20060102150405")
	if err := os.Rename(c.dir, old); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	if err := os.RemoveAll(old); err != nil {
		return err
	}
	return os.MkdirAll(c.dir, 0o755)
}
