package audiocache

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/zstd"
)

// DiskStore persists synthesized audio across sessions so a deck only
// costs engine calls the first time it is reviewed. Entries are zstd
// compressed; raw PCM compresses well enough that the trade is worth
// the decode on read.
type DiskStore struct {
	dir     string
	encoder *zstd.Encoder
	decoder *zstd.Decoder
}

// NewDiskStore opens (creating if needed) a disk store rooted at dir.
func NewDiskStore(dir string) (*DiskStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}

	encoder, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return nil, fmt.Errorf("failed to create zstd encoder: %w", err)
	}
	decoder, err := zstd.NewReader(nil)
	if err != nil {
		encoder.Close()
		return nil, fmt.Errorf("failed to create zstd decoder: %w", err)
	}

	return &DiskStore{dir: dir, encoder: encoder, decoder: decoder}, nil
}

// path derives the entry filename from the key. Keys contain Thai text,
// so the filename is the key's digest rather than the key itself.
func (d *DiskStore) path(key string) string {
	sum := sha256.Sum256([]byte(key))
	return filepath.Join(d.dir, hex.EncodeToString(sum[:16])+".audio")
}

// Get reads the entry for key, reporting whether it exists. Corrupt
// entries are dropped and treated as absent.
func (d *DiskStore) Get(key string) ([]byte, bool) {
	compressed, err := os.ReadFile(d.path(key))
	if err != nil {
		return nil, false
	}
	audio, err := d.decoder.DecodeAll(compressed, nil)
	if err != nil {
		os.Remove(d.path(key))
		return nil, false
	}
	return audio, true
}

// Put writes the entry for key. The write goes through a temp file and
// a rename so readers never see a partial entry.
func (d *DiskStore) Put(key string, audio []byte) error {
	compressed := d.encoder.EncodeAll(audio, nil)

	target := d.path(key)
	tmp, err := os.CreateTemp(d.dir, "entry-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	if _, err := tmp.Write(compressed); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write cache entry: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), target); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to finalize cache entry: %w", err)
	}
	return nil
}

// Clear removes every entry from the store.
func (d *DiskStore) Clear() error {
	entries, err := os.ReadDir(d.dir)
	if err != nil {
		return fmt.Errorf("failed to read cache directory: %w", err)
	}
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".audio" {
			continue
		}
		if err := os.Remove(filepath.Join(d.dir, entry.Name())); err != nil {
			return fmt.Errorf("failed to remove cache entry: %w", err)
		}
	}
	return nil
}

// Close releases the compressor state.
func (d *DiskStore) Close() error {
	d.decoder.Close()
	return d.encoder.Close()
}
