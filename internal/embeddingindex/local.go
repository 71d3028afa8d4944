package embeddingindex

import (
	"context"
	"hash/fnv"
	"strings"
)

// LocalEmbedder is a dependency-free, deterministic stand-in for a real
// sentence-embedding model: it hashes word unigrams, word bigrams, and
// character trigrams into a fixed-width vector (feature hashing with a
// sign projection), then L2-normalizes. Grounded on
// other_examples/hyper-light-sylk__hybrid_local_enhanced.go's hashed
// n-gram projection, trimmed to the fields this engine's text needs —
// used when no real embedding backend is configured, or as the seed for
// deterministic test fixtures.
type LocalEmbedder struct {
	dimension int
}

// NewLocalEmbedder creates a LocalEmbedder with the given output width
// (defaults to DefaultDimension).
func NewLocalEmbedder(dimension int) *LocalEmbedder {
	if dimension <= 0 {
		dimension = DefaultDimension
	}
	return &LocalEmbedder{dimension: dimension}
}

// Embed produces one L2-normalized vector per text.
func (e *LocalEmbedder) Embed(_ context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i, t := range texts {
		out[i] = e.embedOne(t)
	}
	return out, nil
}

// EmbedSingle produces one L2-normalized vector.
func (e *LocalEmbedder) EmbedSingle(_ context.Context, text string) ([]float32, error) {
	return e.embedOne(text), nil
}

// Model returns a synthetic model identifier.
func (e *LocalEmbedder) Model() string { return "local-hashed-ngram-v1" }

// Dimension returns the configured output width.
func (e *LocalEmbedder) Dimension() int { return e.dimension }

var _ Embedder = (*LocalEmbedder)(nil)

func (e *LocalEmbedder) embedOne(text string) []float32 {
	vec := make([]float32, e.dimension)
	words := tokenizeLocal(text)

	e.addHashedFeatures(vec, words, 1.0)
	e.addHashedFeatures(vec, wordBigrams(words), 0.75)
	e.addHashedFeatures(vec, charTrigrams(strings.Join(words, " ")), 0.5)

	return l2Normalize(vec)
}

// addHashedFeatures hashes each feature string into a vector slot, adding
// a signed, weighted contribution — the sign is taken from bit 1 of the same
// hash so that colliding features partially cancel rather than always stacking.
func (e *LocalEmbedder) addHashedFeatures(vec []float32, features []string, weight float64) {
	for _, f := range features {
		if f == "" {
			continue
		}
		h := fnvHash64(f)
		idx := int(h % uint64(len(vec)))
		sign := float32(1)
		if (h>>1)&1 == 1 {
			sign = -1
		}
		vec[idx] += sign * float32(weight)
	}
}

func tokenizeLocal(text string) []string {
	var words []string
	var b strings.Builder
	for _, r := range strings.ToLower(text) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		} else if b.Len() > 0 {
			words = append(words, b.String())
			b.Reset()
		}
	}
	if b.Len() > 0 {
		words = append(words, b.String())
	}
	return words
}

func wordBigrams(words []string) []string {
	if len(words) < 2 {
		return nil
	}
	bigrams := make([]string, 0, len(words)-1)
	for i := 0; i+1 < len(words); i++ {
		bigrams = append(bigrams, words[i]+"_"+words[i+1])
	}
	return bigrams
}

func charTrigrams(s string) []string {
	s = strings.ReplaceAll(s, " ", "_")
	if len(s) < 3 {
		return nil
	}
	trigrams := make([]string, 0, len(s)-2)
	for i := 0; i+3 <= len(s); i++ {
		trigrams = append(trigrams, s[i:i+3])
	}
	return trigrams
}

func fnvHash64(s string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(s))
	return h.Sum64()
}
