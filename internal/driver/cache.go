package driver

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"
	"github.com/zeebo/xxh3"

	"hsfront/internal/source"
	"hsfront/internal/version"
)

// Current schema version - increment when Summary changes shape
const cacheSchemaVersion uint16 = 1

// Cache хранит сводки разобранных файлов на диске, по одному msgpack-файлу
// на ключ. Safe for concurrent use.
type Cache struct {
	mu  sync.RWMutex
	dir string
}

type cachePayload struct {
	Schema  uint16
	Summary *Summary
}

// ErrCacheSchema is returned by Get for entries written by another schema.
var ErrCacheSchema = errors.New("cache entry has a different schema")

// OpenCache opens the cache in dir, creating it. An empty dir means
// $XDG_CACHE_HOME/hsfront.
func OpenCache(dir string) (*Cache, error) {
	if dir == "" {
		base := os.Getenv("XDG_CACHE_HOME")
		if base == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return nil, err
			}
			base = filepath.Join(home, ".cache")
		}
		dir = filepath.Join(base, "hsfront")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &Cache{dir: dir}, nil
}

func (c *Cache) Dir() string { return c.dir }

// Key identifies a parse of file under opts. Everything that can change the
// summary goes in: the build, the options and the content.
func (c *Cache) Key(file *source.File, opts Options) uint64 {
	h := xxh3.New()
	_, _ = h.WriteString(version.Version)
	_, _ = h.WriteString(strconv.Itoa(int(cacheSchemaVersion)))
	// nil и пустой список гейтят по-разному
	if opts.Extensions == nil {
		_, _ = h.WriteString("\x00all")
	} else {
		_, _ = h.WriteString("\x00" + strings.Join(opts.Extensions, ","))
	}
	_, _ = h.WriteString(fmt.Sprintf("\x00%d\x00%t\x00", opts.MaxDiagnostics, opts.QuietDefaultFixity))
	_, _ = h.WriteString(file.Path)
	_, _ = h.Write([]byte{0})
	_, _ = h.Write(file.Content)
	return h.Sum64()
}

func (c *Cache) pathFor(key uint64) string {
	hex := fmt.Sprintf("%016x", key)
	// подкаталог по первому байту, чтобы не держать тысячи файлов в одном
	return filepath.Join(c.dir, "files", hex[:2], hex+".mp")
}

// Put serializes and writes a summary.
func (c *Cache) Put(key uint64, s *Summary) (err error) {
	if c == nil {
		return nil
	}
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
	defer func() {
		// после успешного Rename файла уже нет
		if rmErr := os.Remove(tmp); rmErr != nil && !errors.Is(rmErr, os.ErrNotExist) && err == nil {
			err = rmErr
		}
	}()

	enc := msgpack.NewEncoder(f)
	if err = enc.Encode(&cachePayload{Schema: cacheSchemaVersion, Summary: s}); err != nil {
		_ = f.Close()
		return err
	}
	if err = f.Close(); err != nil {
		return err
	}
	// Атомарная замена
	err = os.Rename(tmp, p)
	return err
}

// Get reads a summary. A missing entry is (nil, false, nil).
func (c *Cache) Get(key uint64) (*Summary, bool, error) {
	if c == nil {
		return nil, false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, err
	}
	defer f.Close()

	var payload cachePayload
	if err := msgpack.NewDecoder(f).Decode(&payload); err != nil {
		return nil, false, err
	}
	if payload.Schema != cacheSchemaVersion || payload.Summary == nil {
		return nil, false, ErrCacheSchema
	}
	return payload.Summary, true, nil
}

// DropAll invalidates the cache, useful after format changes.
func (c *Cache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	files := filepath.Join(c.dir, "files")
	old := files + ".old-" + time.Now().Format("20060102150405")
	if err := os.Rename(files, old); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	return os.RemoveAll(old)
}
