package digest

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bytesized/utilities/util"
)

const (
	helloSHA256 = "2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824"
	helloMD5    = "5d41402abc4b2a76b9719d911017c592"
)

func TestParseExpected(t *testing.T) {
	tests := []struct {
		name    string
		line    string
		want    Expected
		wantErr bool
	}{
		{"bare", helloSHA256, Expected{Digest: helloSHA256}, false},
		{"bare upper", strings.ToUpper(helloMD5) + "\n", Expected{Digest: helloMD5}, false},
		{"coreutils text", helloMD5 + "  hello.txt", Expected{Digest: helloMD5, Name: "hello.txt"}, false},
		{"coreutils binary", helloMD5 + " *dir/hello.txt", Expected{Digest: helloMD5, Name: "dir/hello.txt"}, false},
		{"bsd", "SHA256 (hello.txt) = " + helloSHA256, Expected{Algorithm: "sha256", Digest: helloSHA256, Name: "hello.txt"}, false},
		{"bsd dashed", "SHA3-256 (a b.txt) = abcd", Expected{Algorithm: "sha3-256", Digest: "abcd", Name: "a b.txt"}, false},
		{"bsd unknown algorithm", "CRC32 (x) = abcd", Expected{}, true},
		{"odd hex", "abc", Expected{}, true},
		{"garbage", "not a digest", Expected{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseExpected(tt.line)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseExpected(%q) error = %v, wantErr %v", tt.line, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseExpected(%q) = %+v, want %+v", tt.line, got, tt.want)
			}
		})
	}
}

func TestParseExpectedInvalidDigest(t *testing.T) {
	for _, line := range []string{"abc", "MD5 (x) = abc"} {
		if _, err := ParseExpected(line); !errors.Is(err, util.ErrInvalidDigest) {
			t.Errorf("ParseExpected(%q) error = %v, want ErrInvalidDigest", line, err)
		}
	}
	if _, err := ParseExpected("not a digest"); !errors.Is(err, ErrUnrecognizedLine) {
		t.Errorf("ParseExpected(garbage) error = %v, want ErrUnrecognizedLine", err)
	}
}

func TestIsSidecar(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.txt"), "a")
	writeFile(t, filepath.Join(root, "a.txt.sha256"), "")
	writeFile(t, filepath.Join(root, "release.md5"), "")
	for path, want := range map[string]bool{
		"a.txt.sha256": true,
		"release.md5":  false,
		"a.txt":        false,
	} {
		if got := IsSidecar(filepath.Join(root, path)); got != want {
			t.Errorf("IsSidecar(%q) = %v, want %v", path, got, want)
		}
	}
}

func TestReadExpected(t *testing.T) {
	sums := "# checksums\n\n" + helloMD5 + "  a.txt\n" + strings.Repeat("0", 32) + "  b.txt\n"

	got, err := ReadExpected(strings.NewReader(sums), "some/dir/b.txt")
	if err != nil {
		t.Fatal(err)
	}
	if got.Name != "b.txt" {
		t.Errorf("ReadExpected() picked %q, want b.txt", got.Name)
	}

	if _, err := ReadExpected(strings.NewReader(sums), "c.txt"); !errors.Is(err, ErrNoDigestFor) {
		t.Errorf("ReadExpected(c.txt) error = %v, want ErrNoDigestFor", err)
	}
	if _, err := ReadExpected(strings.NewReader("\n# only comments\n"), "a.txt"); !errors.Is(err, ErrNoDigest) {
		t.Errorf("ReadExpected(empty) error = %v, want ErrNoDigest", err)
	}

	single, err := ReadExpected(strings.NewReader(helloSHA256+"\n"), "anything")
	if err != nil || single.Digest != helloSHA256 {
		t.Errorf("ReadExpected(single) = %+v, %v", single, err)
	}
}

func TestResolveAlgorithm(t *testing.T) {
	tests := []struct {
		name     string
		explicit string
		exp      Expected
		fallback string
		want     string
	}{
		{"explicit wins", "SHA-512", Expected{Algorithm: "md5", Digest: helloMD5}, "sha1", "sha512"},
		{"named by line", "", Expected{Algorithm: "sha3-256", Digest: helloSHA256}, "", "sha3-256"},
		{"by length", "", Expected{Digest: helloMD5}, "sha256", "md5"},
		{"fallback", "", Expected{Digest: "abcd"}, "sha1", "sha1"},
		{"default", "", Expected{Digest: "abcd"}, "", "sha256"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveAlgorithm(tt.explicit, tt.exp, tt.fallback)
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Errorf("ResolveAlgorithm() = %q, want %q", got, tt.want)
			}
		})
	}
	if _, err := ResolveAlgorithm("crc32", Expected{}, ""); err == nil {
		t.Error("ResolveAlgorithm(crc32) succeeded")
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestVerify(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hello.txt")
	writeFile(t, path, "hello")
	c := &Checker{Algorithm: "sha256"}

	if r := c.Verify(path, Expected{Digest: strings.ToUpper(helloSHA256)}); r.Status != StatusOK {
		t.Errorf("Verify() status = %v, want OK (err %v)", r.Status, r.Err)
	}
	r := c.Verify(path, Expected{Digest: strings.Repeat("0", 64)})
	if r.Status != StatusMismatch || !errors.Is(r.Err, ErrMismatch) {
		t.Errorf("Verify() = %v/%v, want mismatch", r.Status, r.Err)
	}
	if r.Actual != helloSHA256 {
		t.Errorf("Verify() actual = %s, want %s", r.Actual, helloSHA256)
	}
	if r := c.Verify(filepath.Join(t.TempDir(), "missing"), Expected{Digest: helloSHA256}); r.Status != StatusError {
		t.Errorf("Verify(missing) status = %v, want ERROR", r.Status)
	}
}

func TestVerifyTree(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "good.txt"), "hello")
	writeFile(t, filepath.Join(root, "good.txt.sha256"), helloSHA256+"  good.txt\n")
	writeFile(t, filepath.Join(root, "sub", "bad.txt"), "goodbye")
	writeFile(t, filepath.Join(root, "sub", "bad.txt.sha256"), "SHA256 (bad.txt) = "+helloSHA256+"\n")
	writeFile(t, filepath.Join(root, "sub", "plain.txt"), "no digest")
	writeFile(t, filepath.Join(root, "release.md5"), helloMD5)
	writeFile(t, filepath.Join(root, "tagged.txt"), "hello")
	writeFile(t, filepath.Join(root, "tagged.txt.sha256"), "MD5 (tagged.txt) = "+helloMD5+"\n")

	c := &Checker{Algorithm: "sha256"}
	var seen []string
	sum, err := c.VerifyTree(context.Background(), root, false, func(r Result) {
		rel, _ := filepath.Rel(root, r.Path)
		seen = append(seen, filepath.ToSlash(rel)+":"+r.Status.String())
	})
	if err != nil {
		t.Fatal(err)
	}
	want := Summary{OK: 2, Mismatched: 1, Missing: 2}
	if sum != want {
		t.Errorf("VerifyTree() = %+v, want %+v (seen %v)", sum, want, seen)
	}
	var fe *FailureError
	if !errors.As(sum.Err(), &fe) || fe.Mismatched != 1 || !errors.Is(sum.Err(), ErrMismatch) {
		t.Errorf("Summary.Err() = %v", sum.Err())
	}
	if got := sum.String(); got != "2 ok, 1 mismatched, 2 without digest" {
		t.Errorf("Summary.String() = %q", got)
	}
}

func TestVerifyTreeWrite(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "hello.txt"), "hello")

	c := &Checker{Algorithm: "md5"}
	sum, err := c.VerifyTree(context.Background(), root, true, nil)
	if err != nil {
		t.Fatal(err)
	}
	if sum.Written != 1 || sum.Err() != nil {
		t.Fatalf("VerifyTree(write) = %+v", sum)
	}
	data, err := os.ReadFile(filepath.Join(root, "hello.txt.md5"))
	if err != nil {
		t.Fatal(err)
	}
	if got, want := string(data), helloMD5+"  hello.txt\n"; got != want {
		t.Errorf("sidecar = %q, want %q", got, want)
	}

	sum, err = c.VerifyTree(context.Background(), root, false, nil)
	if err != nil {
		t.Fatal(err)
	}
	if sum != (Summary{OK: 1}) {
		t.Errorf("second run = %+v, want 1 ok", sum)
	}
}

func TestCheckerProgress(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data")
	writeFile(t, path, strings.Repeat("x", 100000))

	var last, total int64
	var done bool
	c := &Checker{
		Algorithm: "sha1",
		Progress: func(string) util.ProgressFunc {
			return func(d, tot int64) { last, total = d, tot }
		},
		Done: func(string) { done = true },
	}
	if _, err := c.Sum(path); err != nil {
		t.Fatal(err)
	}
	if last != 100000 || total != 100000 || !done {
		t.Errorf("progress = %d/%d done=%v", last, total, done)
	}
}
