package bigmemcache

import (
	"errors"
	"time"

	"github.com/allegro/bigcache"
	"github.com/rs/zerolog/log"

	streamio "github.com/usherasnick/stream-gadgets/stream-io"
)

const (
	__DefaultEvictionTime = 100 * 365 * 24 * time.Hour
	__DefaultShardsFactor = 100
	__DefaultMaxShards    = 128
	__OneMB               = 1024 * 1024
)

var (
	ErrBlobNotFound = errors.New("blob not found")
	ErrBlobTooLarge = errors.New("blob exceeds max size of cache item")
)

// BigMemCacheCfg BigMemCache配置
type BigMemCacheCfg struct {
	MaxNumOfCacheItem  uint64 `json:"max_num_of_cache_item"`  // 最多可缓存的对象数量
	MaxSizeOfCacheItem uint64 `json:"max_size_of_cache_item"` // 对象大小, unit is byte
}

func (cfg *BigMemCacheCfg) defaultBigCacheCfg() bigcache.Config {
	bcCfg := bigcache.DefaultConfig(__DefaultEvictionTime)
	bcCfg.Verbose = false

	shardsUpLimit := uint(cfg.MaxNumOfCacheItem/__DefaultShardsFactor) + 1
	bcCfg.Shards = int(findNearestPowerOf2Num(shardsUpLimit))
	if bcCfg.Shards > __DefaultMaxShards {
		bcCfg.Shards = __DefaultMaxShards
	}

	// init 10 entries for each shard.
	bcCfg.MaxEntriesInWindow = 10 * bcCfg.Shards
	bcCfg.MaxEntrySize = int(cfg.MaxSizeOfCacheItem)

	bcCfg.HardMaxCacheSize = int((cfg.MaxNumOfCacheItem*cfg.MaxSizeOfCacheItem)/__OneMB) + 1
	return bcCfg
}

// Blob 缓存中的一个数据对象.
type Blob struct {
	Version     int32
	Key         string
	Data        []byte
	CreatedTime int64
}

// BigMemCache stores blobs in memory, serialized as []byte to avoid excessive GC stress
// and extra memory footprint. Blobs are written through a BlobWriter and read back through a BlobReader.
type BigMemCache struct {
	cache   *bigcache.BigCache
	maxSize uint64
}

// NewBigMemCache 返回BigMemCache实例.
func NewBigMemCache(cfg *BigMemCacheCfg) (*BigMemCache, error) {
	cache, err := bigcache.NewBigCache(cfg.defaultBigCacheCfg())
	if err != nil {
		return nil, err
	}
	return &BigMemCache{
		cache:   cache,
		maxSize: cfg.MaxSizeOfCacheItem,
	}, nil
}

// Put 将数据对象添加进BigMemCache.
func (bmc *BigMemCache) Put(b *Blob) error {
	if bmc.maxSize > 0 && uint64(len(b.Data)) > bmc.maxSize {
		return ErrBlobTooLarge
	}
	encoded, err := bmc.encode(b)
	if err != nil {
		return err
	}
	return bmc.cache.Set(b.Key, encoded)
}

// Get 从BigMemCache中获取数据对象.
func (bmc *BigMemCache) Get(key string) (*Blob, error) {
	v, err := bmc.cache.Get(key)
	if err != nil || v == nil {
		return nil, ErrBlobNotFound
	}
	return bmc.decode(v)
}

// Del 将数据对象从BigMemCache删除.
func (bmc *BigMemCache) Del(key string) error {
	// mark-deletion in bigcache
	return bmc.cache.Delete(key)
}

// Size 返回BigMemCache当前缓存的对象数量.
func (bmc *BigMemCache) Size() int {
	return bmc.cache.Len()
}

// Reset 真正意义上去清理缓存.
func (bmc *BigMemCache) Reset() error {
	return bmc.cache.Reset()
}

// NewReader 返回读取key对应数据的streamio.Reader.
func (bmc *BigMemCache) NewReader(key string) (*BlobReader, error) {
	b, err := bmc.Get(key)
	if err != nil {
		return nil, err
	}
	return &BlobReader{SliceReader: streamio.NewSliceReader(b.Data), blob: b}, nil
}

// NewWriter 返回写入key的streamio.Writer, 数据在Flush时才对读者可见.
func (bmc *BigMemCache) NewWriter(key string) *BlobWriter {
	return &BlobWriter{bmc: bmc, key: key}
}

// BlobReader 读取一个缓存对象.
type BlobReader struct {
	*streamio.SliceReader
	blob *Blob
}

// Blob returns the record being read.
func (r *BlobReader) Blob() *Blob {
	return r.blob
}

// BlobWriter 暂存写入的数据, Flush时提交到缓存, 每次提交版本号加一.
type BlobWriter struct {
	bmc     *BigMemCache
	key     string
	staged  []byte
	version int32
}

func (w *BlobWriter) Write(p []byte) (streamio.Outcome, error) {
	if w.bmc.maxSize > 0 {
		room := int(w.bmc.maxSize) - len(w.staged)
		if room <= 0 {
			return streamio.EndOfStream(), nil
		}
		if len(p) > room {
			w.staged = append(w.staged, p[:room]...)
			return streamio.Partial(room), nil
		}
	}
	w.staged = append(w.staged, p...)
	return streamio.Transferred(len(p), len(p)), nil
}

func (w *BlobWriter) Flush() error {
	w.version++
	err := w.bmc.Put(&Blob{
		Version:     w.version,
		Key:         w.key,
		Data:        w.staged,
		CreatedTime: time.Now().UnixNano(),
	})
	if err != nil {
		w.version--
		log.Warn().Err(err).Str("key", w.key).Msg("failed to commit blob")
		return err
	}
	return nil
}
