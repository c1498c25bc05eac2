package uploads

import (
	"context"
	"fmt"
	"sort"

	"video-catalog/internal/storage"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const stagingPrefix = "_staging"

// Owner is a record whose files live under a directory of its own.
type Owner interface {
	UploadDir() string
}

// Attachments manages the files of a single record.
type Attachments struct {
	store  storage.Store
	dir    string
	logger *logrus.Logger
}

func New(store storage.Store, owner Owner, logger *logrus.Logger) *Attachments {
	return &Attachments{
		store:  store,
		dir:    owner.UploadDir(),
		logger: logger,
	}
}

func (a *Attachments) RelativePath(filename string) string {
	return a.dir + "/" + filename
}

// URL is the public address of a stored file, or "" for an empty name.
func (a *Attachments) URL(filename string) string {
	if filename == "" {
		return ""
	}
	return a.store.URL(a.RelativePath(filename))
}

func (a *Attachments) UploadFile(ctx context.Context, f *File) error {
	return put(ctx, a.store, a.RelativePath(f.HashName()), f)
}

func (a *Attachments) UploadFiles(ctx context.Context, files []*File) error {
	for _, f := range files {
		if err := a.UploadFile(ctx, f); err != nil {
			return err
		}
	}
	return nil
}

func (a *Attachments) DeleteFile(ctx context.Context, ref FileRef) error {
	if err := a.store.Delete(ctx, a.RelativePath(ref.StoredName())); err != nil {
		return fmt.Errorf("delete %s: %w", a.RelativePath(ref.StoredName()), err)
	}
	return nil
}

func (a *Attachments) DeleteFiles(ctx context.Context, refs ...FileRef) error {
	for _, ref := range refs {
		if err := a.DeleteFile(ctx, ref); err != nil {
			return err
		}
	}
	return nil
}

// DeleteOldFiles removes superseded names; see Superseded.
func (a *Attachments) DeleteOldFiles(ctx context.Context, old []string) error {
	for _, name := range old {
		if err := a.DeleteFile(ctx, Filename(name)); err != nil {
			return err
		}
	}
	return nil
}

// Stage writes files under a private staging prefix. Nothing is written
// under the record directory until Promote. If any write fails the files
// staged so far are purged and the error is returned.
func (a *Attachments) Stage(ctx context.Context, files []*File) (*Staged, error) {
	s := &Staged{
		att:   a,
		token: uuid.NewString(),
	}
	seen := make(map[string]bool, len(files))
	for _, f := range files {
		// identical content shares one stored name
		if seen[f.HashName()] {
			continue
		}
		seen[f.HashName()] = true
		if err := put(ctx, a.store, s.stagingKey(f), f); err != nil {
			s.Purge(ctx)
			return nil, err
		}
		s.files = append(s.files, f)
	}
	return s, nil
}

// Staged is a set of uploads waiting for the owning transaction to commit.
type Staged struct {
	att      *Attachments
	token    string
	files    []*File
	promoted []*File
}

func (s *Staged) stagingKey(f *File) string {
	return stagingPrefix + "/" + s.token + "/" + s.att.RelativePath(f.HashName())
}

// Promote moves staged files to their final keys.
func (s *Staged) Promote(ctx context.Context) error {
	for i, f := range s.files {
		if err := s.att.store.Copy(ctx, s.stagingKey(f), s.att.RelativePath(f.HashName())); err != nil {
			s.files = s.files[i:]
			return fmt.Errorf("promote %s: %w", f.HashName(), err)
		}
		s.promoted = append(s.promoted, f)
		s.discard(ctx, f)
	}
	s.files = nil
	return nil
}

// Purge drops staged files that were not promoted.
func (s *Staged) Purge(ctx context.Context) {
	for _, f := range s.files {
		s.discard(ctx, f)
	}
	s.files = nil
}

func (s *Staged) discard(ctx context.Context, f *File) {
	if err := s.att.store.Delete(ctx, s.stagingKey(f)); err != nil && s.att.logger != nil {
		s.att.logger.WithError(err).WithField("objectPath", s.stagingKey(f)).Warn("Failed to remove staged file")
	}
}

// Promoted lists files that reached their final key.
func (s *Staged) Promoted() []*File {
	return s.promoted
}

// ExtractFiles pulls pending files out of payload, leaving each one's stored
// name in its place. Other values are left untouched. Files are returned in
// key order.
func ExtractFiles(payload map[string]any) []*File {
	var files []*File
	for _, k := range sortedKeys(payload) {
		if f, ok := payload[k].(*File); ok && f != nil {
			files = append(files, f)
			payload[k] = f.HashName()
		}
	}
	return files
}

// Superseded returns the names that slots in payload are about to replace.
// A name still held by any slot after the update is kept.
func Superseded(current map[string]string, payload map[string]any) []string {
	kept := make(map[string]bool, len(current))
	for field, name := range current {
		if _, replaced := payload[field].(string); !replaced {
			kept[name] = true
		}
	}
	for _, v := range payload {
		if name, ok := v.(string); ok {
			kept[name] = true
		}
	}

	var old []string
	seen := make(map[string]bool)
	for _, field := range sortedKeys(payload) {
		if _, ok := payload[field].(string); !ok {
			continue
		}
		prev := current[field]
		if prev == "" || kept[prev] || seen[prev] {
			continue
		}
		seen[prev] = true
		old = append(old, prev)
	}
	return old
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func put(ctx context.Context, store storage.Store, key string, f *File) error {
	r, err := f.Open()
	if err != nil {
		return fmt.Errorf("open %s: %w", f.OriginalName, err)
	}
	defer r.Close()

	if err := store.Put(ctx, key, r, f.Size, f.ContentType); err != nil {
		return fmt.Errorf("upload %s: %w", key, err)
	}
	return nil
}
