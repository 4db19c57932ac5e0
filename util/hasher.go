package util

import (
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/hex"
	"fmt"
	"hash"
	"io"
	"os"
	"sort"
	"strings"

	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/blake2s"
	"golang.org/x/crypto/sha3"
)

// DefaultAlgorithm is used when neither flags nor configuration pick one.
const DefaultAlgorithm = "sha256"

type algorithm struct {
	name string
	new  func() hash.Hash
}

// Names are canonical; lookups ignore case, dashes and underscores.
var algorithms = []algorithm{
	{"md5", md5.New},
	{"sha1", sha1.New},
	{"sha224", sha256.New224},
	{"sha256", sha256.New},
	{"sha384", sha512.New384},
	{"sha512", sha512.New},
	{"sha512-224", sha512.New512_224},
	{"sha512-256", sha512.New512_256},
	{"sha3-224", func() hash.Hash { return sha3.New224() }},
	{"sha3-256", func() hash.Hash { return sha3.New256() }},
	{"sha3-384", func() hash.Hash { return sha3.New384() }},
	{"sha3-512", func() hash.Hash { return sha3.New512() }},
	{"blake2b-256", func() hash.Hash { h, _ := blake2b.New256(nil); return h }},
	{"blake2b-384", func() hash.Hash { h, _ := blake2b.New384(nil); return h }},
	{"blake2b-512", func() hash.Hash { h, _ := blake2b.New512(nil); return h }},
	{"blake2s-256", func() hash.Hash { h, _ := blake2s.New256(nil); return h }},
}

// digestLengths maps a hex digest length to the algorithm it most likely
// came from. SHA-2 wins every tie.
var digestLengths = map[int]string{
	32:  "md5",
	40:  "sha1",
	56:  "sha224",
	64:  "sha256",
	96:  "sha384",
	128: "sha512",
}

func normalizeAlgorithm(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	return strings.NewReplacer("-", "", "_", "").Replace(name)
}

func lookupAlgorithm(name string) (algorithm, bool) {
	key := normalizeAlgorithm(name)
	for _, a := range algorithms {
		if normalizeAlgorithm(a.name) == key {
			return a, true
		}
	}
	return algorithm{}, false
}

// Algorithms returns the canonical names of every supported hash algorithm,
// sorted.
func Algorithms() []string {
	names := make([]string, 0, len(algorithms))
	for _, a := range algorithms {
		names = append(names, a.name)
	}
	sort.Strings(names)
	return names
}

// CanonicalAlgorithm resolves a user-supplied algorithm name (e.g. "SHA-256")
// to its canonical form ("sha256").
func CanonicalAlgorithm(name string) (string, error) {
	a, ok := lookupAlgorithm(name)
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownAlgorithm, name)
	}
	return a.name, nil
}

// NewHash returns a fresh hash.Hash for the named algorithm.
func NewHash(name string) (hash.Hash, error) {
	a, ok := lookupAlgorithm(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, name)
	}
	return a.new(), nil
}

// AlgorithmForDigest guesses the algorithm that produced a hex digest from
// its length.
func AlgorithmForDigest(digest string) (string, bool) {
	name, ok := digestLengths[len(digest)]
	return name, ok
}

// IsHexDigest reports whether s is a non-empty, even-length hex string.
func IsHexDigest(s string) bool {
	if s == "" || len(s)%2 != 0 {
		return false
	}
	_, err := hex.DecodeString(s)
	return err == nil
}

// ProgressFunc receives the number of bytes hashed so far and the total size
// (or -1 when unknown).
type ProgressFunc func(done, total int64)

type progressReader struct {
	r        io.Reader
	done     int64
	total    int64
	progress ProgressFunc
}

func (p *progressReader) Read(b []byte) (int, error) {
	n, err := p.r.Read(b)
	p.done += int64(n)
	if n > 0 {
		p.progress(p.done, p.total)
	}
	return n, err
}

// GetHash calculates the digest of data from an io.Reader using the named
// algorithm. It returns the digest as a lowercase hexadecimal string.
func GetHash(r io.Reader, algorithm string) (string, error) {
	h, err := NewHash(algorithm)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(h, r); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// GetFileHash hashes a file and returns the digest as a hex string.
func GetFileHash(path, algorithm string) (string, error) {
	return GetFileHashWithProgress(path, algorithm, nil)
}

// GetFileHashWithProgress hashes a file, reporting progress after every read
// when progress is non-nil.
func GetFileHashWithProgress(path, algorithm string, progress ProgressFunc) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", err
	}
	if info.IsDir() {
		return "", ErrExpectedFile
	}
	file, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer file.Close()

	var r io.Reader = file
	if progress != nil {
		r = &progressReader{r: file, total: info.Size(), progress: progress}
	}
	return GetHash(r, algorithm)
}
