package embeddingindex

import (
	"context"
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"os"
	"strings"

	"github.com/spherical-ai/dealsearch-engine/internal/catalog"
)

// EmbeddingBackendError indicates the embedding model was unavailable or
// failed. Build returns it only when the embedder has to be called, that is
// when no cache matching the current record set exists; a cache whose hash
// does not match is not used as a fallback, and Build then returns a nil
// Index.
type EmbeddingBackendError struct {
	Err error
}

func (e *EmbeddingBackendError) Error() string {
	return fmt.Sprintf("embeddingindex: backend failure: %v", e.Err)
}

func (e *EmbeddingBackendError) Unwrap() error { return e.Err }

// CacheIntegrityError indicates the on-disk cache's hash didn't match the
// current record set. Never fatal — the caller recomputes (spec §7).
type CacheIntegrityError struct {
	Reason string
}

func (e *CacheIntegrityError) Error() string {
	return "embeddingindex: cache integrity: " + e.Reason
}

// Index holds one L2-normalized embedding row per record, in RecordIndex
// order.
type Index struct {
	Dimension   int
	RecordCount int
	Vectors     [][]float32
	Hash        [32]byte
}

// contentHash returns the SHA-256 of the UTF-8 concatenation of all record
// texts joined by '\n' (spec §4.2, §6).
func contentHash(texts []string) [32]byte {
	return sha256.Sum256([]byte(strings.Join(texts, "\n")))
}

// recordTexts extracts each record's embedding text in RecordIndex order.
func recordTexts(records []catalog.Record) []string {
	texts := make([]string, len(records))
	for i := range records {
		texts[i] = records[i].EmbeddingText()
	}
	return texts
}

// Build computes (or loads from cachePath) the embedding matrix for
// records. If cachePath is non-empty and holds a cache whose hash matches
// the current record set, it is loaded and the embedder is never called.
// Otherwise embeddings are computed fresh and, if cachePath is non-empty,
// written back.
func Build(ctx context.Context, embedder Embedder, records []catalog.Record, cachePath string) (*Index, *CacheIntegrityError, error) {
	texts := recordTexts(records)
	hash := contentHash(texts)

	var cacheErr *CacheIntegrityError

	if cachePath != "" {
		cached, err := loadCache(cachePath)
		if err == nil {
			if cached.Hash == hash && cached.RecordCount == len(records) {
				return cached, nil, nil
			}
			cacheErr = &CacheIntegrityError{Reason: "hash or record count mismatch, recomputing"}
		} else if !os.IsNotExist(err) {
			cacheErr = &CacheIntegrityError{Reason: err.Error()}
		}
	}

	vectors, err := embedder.Embed(ctx, texts)
	if err != nil {
		return nil, cacheErr, &EmbeddingBackendError{Err: err}
	}

	dim := embedder.Dimension()
	normalized := make([][]float32, len(vectors))
	for i, v := range vectors {
		normalized[i] = l2Normalize(v)
	}

	idx := &Index{
		Dimension:   dim,
		RecordCount: len(records),
		Vectors:     normalized,
		Hash:        hash,
	}

	if cachePath != "" {
		if err := saveCache(cachePath, idx); err != nil {
			// Cache write failures are non-fatal; the index is still usable
			// for this process lifetime, just not persisted.
			return idx, cacheErr, nil
		}
	}

	return idx, cacheErr, nil
}

// QueryVector embeds and L2-normalizes a query string with the same
// embedder used to build the index, so cosine similarity against record
// rows reduces to a dot product.
func QueryVector(ctx context.Context, embedder Embedder, query string) ([]float32, error) {
	v, err := embedder.EmbedSingle(ctx, query)
	if err != nil {
		return nil, &EmbeddingBackendError{Err: err}
	}
	return l2Normalize(v), nil
}

// cacheMagic tags the binary cache format described in spec §6.
const cacheMagic = "DSCH"

func saveCache(path string, idx *Index) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("embeddingindex: create cache file: %w", err)
	}
	defer f.Close()

	if _, err := f.WriteString(cacheMagic); err != nil {
		return err
	}
	if err := binary.Write(f, binary.LittleEndian, uint32(idx.RecordCount)); err != nil {
		return err
	}
	if err := binary.Write(f, binary.LittleEndian, uint32(idx.Dimension)); err != nil {
		return err
	}
	if _, err := f.Write(idx.Hash[:]); err != nil {
		return err
	}
	for _, row := range idx.Vectors {
		if err := binary.Write(f, binary.LittleEndian, row); err != nil {
			return err
		}
	}
	return nil
}

func loadCache(path string) (*Index, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	magic := make([]byte, len(cacheMagic))
	if _, err := f.Read(magic); err != nil {
		return nil, fmt.Errorf("embeddingindex: read cache magic: %w", err)
	}
	if string(magic) != cacheMagic {
		return nil, fmt.Errorf("embeddingindex: unrecognized cache format")
	}

	var recordCount, dim uint32
	if err := binary.Read(f, binary.LittleEndian, &recordCount); err != nil {
		return nil, err
	}
	if err := binary.Read(f, binary.LittleEndian, &dim); err != nil {
		return nil, err
	}

	var hash [32]byte
	if _, err := f.Read(hash[:]); err != nil {
		return nil, err
	}

	vectors := make([][]float32, recordCount)
	for i := range vectors {
		row := make([]float32, dim)
		if err := binary.Read(f, binary.LittleEndian, row); err != nil {
			return nil, fmt.Errorf("embeddingindex: read cache row %d: %w", i, err)
		}
		vectors[i] = row
	}

	return &Index{
		Dimension:   int(dim),
		RecordCount: int(recordCount),
		Vectors:     vectors,
		Hash:        hash,
	}, nil
}
