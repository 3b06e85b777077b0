// Copyright (c) 2026 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package publish

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/renameio/v2"
	"github.com/klauspost/compress/zstd"
)

// Receipt is the store's acknowledgement of an upload.
type Receipt struct {
	Digest         Digest    `json:"digest"`
	Size           int64     `json:"size"`
	CompressedSize int64     `json:"compressed_size"`
	Location       string    `json:"location"`
	StoredAt       time.Time `json:"stored_at"`
}

// Uploader stores an artifact and returns a receipt.
type Uploader interface {
	Upload(ctx context.Context, path string) (Receipt, error)
}

// Verifier re-reads a stored artifact and returns its digest.
type Verifier interface {
	Verify(ctx context.Context, r Receipt) (Digest, error)
}

const objectExt = ".zst"

// DirStore is a content-addressed artifact store in a local directory.
// Objects are zstd-compressed and named by the BLAKE3 digest of their
// uncompressed bytes; a JSON receipt is written next to each object.
type DirStore struct {
	root string
	now  func() time.Time
}

// NewDirStore creates the store root if needed.
func NewDirStore(root string) (*DirStore, error) {
	if root == "" {
		return nil, errors.New("artifact store root is empty")
	}
	if err := os.MkdirAll(root, 0o750); err != nil {
		return nil, fmt.Errorf("create artifact store: %w", err)
	}
	return &DirStore{root: root, now: time.Now}, nil
}

// Root returns the store directory.
func (s *DirStore) Root() string { return s.root }

func (s *DirStore) objectPath(d Digest) string {
	hex := d.String()
	return filepath.Join(s.root, hex[:2], hex+objectExt)
}

func (s *DirStore) receiptPath(d Digest) string {
	hex := d.String()
	return filepath.Join(s.root, hex[:2], hex+".json")
}

// Upload digests, compresses and atomically stores the file at path.
func (s *DirStore) Upload(ctx context.Context, path string) (Receipt, error) {
	digest, size, err := DigestFile(path)
	if err != nil {
		return Receipt{}, fmt.Errorf("digest artifact: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return Receipt{}, err
	}

	dst := s.objectPath(digest)
	if err := os.MkdirAll(filepath.Dir(dst), 0o750); err != nil {
		return Receipt{}, fmt.Errorf("create object directory: %w", err)
	}

	compressed, err := s.writeObject(path, dst)
	if err != nil {
		return Receipt{}, err
	}

	rec := Receipt{
		Digest:         digest,
		Size:           size,
		CompressedSize: compressed,
		Location:       dst,
		StoredAt:       s.now().UTC(),
	}
	raw, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return Receipt{}, err
	}
	if err := renameio.WriteFile(s.receiptPath(digest), append(raw, '\n'), 0o640); err != nil {
		return Receipt{}, fmt.Errorf("write receipt: %w", err)
	}
	return rec, nil
}

func (s *DirStore) writeObject(src, dst string) (int64, error) {
	// #nosec G304 -- artifact path is provided by the operator
	in, err := os.Open(src)
	if err != nil {
		return 0, fmt.Errorf("open artifact: %w", err)
	}
	defer func() { _ = in.Close() }()

	pending, err := renameio.NewPendingFile(dst, renameio.WithPermissions(0o640))
	if err != nil {
		return 0, fmt.Errorf("create pending object: %w", err)
	}
	defer func() { _ = pending.Cleanup() }()

	enc, err := zstd.NewWriter(pending, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return 0, fmt.Errorf("init zstd encoder: %w", err)
	}
	if _, err := io.Copy(enc, in); err != nil {
		_ = enc.Close()
		return 0, fmt.Errorf("compress artifact: %w", err)
	}
	if err := enc.Close(); err != nil {
		return 0, fmt.Errorf("flush zstd stream: %w", err)
	}

	info, err := pending.Stat()
	if err != nil {
		return 0, fmt.Errorf("stat pending object: %w", err)
	}
	if err := pending.CloseAtomicallyReplace(); err != nil {
		return 0, fmt.Errorf("commit object: %w", err)
	}
	return info.Size(), nil
}

// Open returns a reader over the decompressed object named by d.
func (s *DirStore) Open(d Digest) (io.ReadCloser, error) {
	f, err := os.Open(s.objectPath(d))
	if err != nil {
		return nil, err
	}
	dec, err := zstd.NewReader(f)
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("init zstd decoder: %w", err)
	}
	return &objectReader{dec: dec, f: f}, nil
}

// Verify decompresses the object at r.Location and returns its digest.
func (s *DirStore) Verify(_ context.Context, r Receipt) (Digest, error) {
	if filepath.Clean(r.Location) != s.objectPath(r.Digest) {
		return Digest{}, fmt.Errorf("receipt location %q is not the store path for %s", r.Location, r.Digest)
	}
	rc, err := s.Open(r.Digest)
	if err != nil {
		return Digest{}, err
	}
	defer func() { _ = rc.Close() }()
	d, _, err := DigestReader(rc)
	return d, err
}

type objectReader struct {
	dec *zstd.Decoder
	f   *os.File
}

func (r *objectReader) Read(p []byte) (int, error) { return r.dec.Read(p) }

func (r *objectReader) Close() error {
	r.dec.Close()
	return r.f.Close()
}
