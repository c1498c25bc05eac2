package uploads

import (
	"context"
	"errors"
	"strings"
	"testing"

	"video-catalog/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubOwner string

func (s stubOwner) UploadDir() string { return string(s) }

func newAttachments(t *testing.T) (*Attachments, *storage.MemoryStore) {
	t.Helper()
	store := storage.NewMemoryStore("http://files.local")
	return New(store, stubOwner("1"), nil), store
}

func TestRelativePath(t *testing.T) {
	att, _ := newAttachments(t)
	assert.Equal(t, "1/video.mp4", att.RelativePath("video.mp4"))

	store := storage.NewMemoryStore("")
	assert.Equal(t, "42/f.mp4", New(store, stubOwner("42"), nil).RelativePath("f.mp4"))
}

func TestFromBytes_HashName(t *testing.T) {
	a := FromBytes("Video.MP4", []byte("same"))
	b := FromBytes("other.mp4", []byte("same"))
	c := FromBytes("video.mp4", []byte("different"))

	assert.True(t, strings.HasSuffix(a.HashName(), ".mp4"))
	assert.Len(t, a.HashName(), 44)
	assert.Equal(t, a.HashName(), b.HashName())
	assert.NotEqual(t, a.HashName(), c.HashName())
	assert.Equal(t, a.HashName(), a.StoredName())
	assert.Equal(t, int64(4), a.Size)
	assert.Equal(t, int64(1), a.SizeKB())
}

func TestFile_ContentSniffing(t *testing.T) {
	png := []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x06\x00\x00\x00")
	img := FromBytes("thumb.png", png)
	assert.True(t, img.IsImage())
	assert.False(t, img.HasMimeType("video/mp4"))

	mp4 := append([]byte{0x00, 0x00, 0x00, 0x18}, []byte("ftypmp42\x00\x00\x00\x00mp42isom")...)
	vid := FromBytes("clip.mp4", mp4)
	assert.True(t, vid.HasMimeType("video/mp4"))
	assert.False(t, vid.IsImage())

	txt := FromBytes("notes.mp4", []byte("plain text"))
	assert.False(t, txt.HasMimeType("video/mp4"))
}

func TestUploadFile(t *testing.T) {
	att, store := newAttachments(t)
	f := FromBytes("video.mp4", []byte("content"))

	require.NoError(t, att.UploadFile(context.Background(), f))

	data, ok := store.Get("1/" + f.HashName())
	require.True(t, ok)
	assert.Equal(t, "content", string(data))
}

func TestUploadFiles(t *testing.T) {
	att, store := newAttachments(t)
	f1 := FromBytes("video.mp4", []byte("one"))
	f2 := FromBytes("video.mp4", []byte("two"))

	require.NoError(t, att.UploadFiles(context.Background(), []*File{f1, f2}))
	assert.ElementsMatch(t, []string{"1/" + f1.HashName(), "1/" + f2.HashName()}, store.Keys())
}

func TestDeleteFile_ByNameOrFile(t *testing.T) {
	ctx := context.Background()
	att, store := newAttachments(t)

	f := FromBytes("video.mp4", []byte("one"))
	require.NoError(t, att.UploadFile(ctx, f))
	require.NoError(t, att.DeleteFile(ctx, Filename(f.HashName())))
	assert.Empty(t, store.Keys())

	require.NoError(t, att.UploadFile(ctx, f))
	require.NoError(t, att.DeleteFile(ctx, f))
	assert.Empty(t, store.Keys())
}

func TestDeleteFiles(t *testing.T) {
	ctx := context.Background()
	att, store := newAttachments(t)
	f1 := FromBytes("video.mp4", []byte("one"))
	f2 := FromBytes("video.mp4", []byte("two"))
	require.NoError(t, att.UploadFiles(ctx, []*File{f1, f2}))

	require.NoError(t, att.DeleteFiles(ctx, Filename(f1.HashName()), f2))
	assert.Empty(t, store.Keys())
}

func TestDeleteOldFiles(t *testing.T) {
	ctx := context.Background()
	att, store := newAttachments(t)
	f1 := FromBytes("video1.mp4", []byte("one"))
	f2 := FromBytes("video2.mp4", []byte("two"))
	require.NoError(t, att.UploadFiles(ctx, []*File{f1, f2}))

	require.NoError(t, att.DeleteOldFiles(ctx, nil))
	assert.Len(t, store.Keys(), 2)

	require.NoError(t, att.DeleteOldFiles(ctx, []string{f1.HashName()}))
	assert.Equal(t, []string{"1/" + f2.HashName()}, store.Keys())
}

func TestExtractFiles(t *testing.T) {
	payload := map[string]any{}
	assert.Empty(t, ExtractFiles(payload))
	assert.Empty(t, payload)

	payload = map[string]any{"file1": "test", "file2": "test"}
	assert.Empty(t, ExtractFiles(payload))
	assert.Equal(t, map[string]any{"file1": "test", "file2": "test"}, payload)

	f1 := FromBytes("video1.mp4", []byte("one"))
	f2 := FromBytes("video2.mp4", []byte("two"))
	payload = map[string]any{"file2": f2, "file1": f1, "test": "test"}
	files := ExtractFiles(payload)

	assert.Equal(t, []*File{f1, f2}, files)
	assert.Equal(t, map[string]any{
		"file1": f1.HashName(),
		"file2": f2.HashName(),
		"test":  "test",
	}, payload)
}

func TestSuperseded(t *testing.T) {
	current := map[string]string{"video_file": "a.mp4", "thumb_file": "t.jpg"}

	assert.Empty(t, Superseded(current, map[string]any{}))
	assert.Equal(t, []string{"a.mp4"}, Superseded(current, map[string]any{"video_file": "b.mp4"}))
	assert.Empty(t, Superseded(current, map[string]any{"video_file": "a.mp4"}))
	assert.Empty(t, Superseded(map[string]string{}, map[string]any{"video_file": "b.mp4"}))

	shared := map[string]string{"thumb_file": "same.jpg", "banner_file": "same.jpg"}
	assert.Empty(t, Superseded(shared, map[string]any{"thumb_file": "new.jpg"}))
	assert.Equal(t, []string{"same.jpg"}, Superseded(shared, map[string]any{"thumb_file": "n1.jpg", "banner_file": "n2.jpg"}))
}

func TestStage_PromoteAndPurge(t *testing.T) {
	ctx := context.Background()
	att, store := newAttachments(t)
	f1 := FromBytes("thumb.jpg", []byte("one"))
	f2 := FromBytes("video.mp4", []byte("two"))

	staged, err := att.Stage(ctx, []*File{f1, f2})
	require.NoError(t, err)
	for _, k := range store.Keys() {
		assert.True(t, strings.HasPrefix(k, stagingPrefix+"/"), k)
	}

	require.NoError(t, staged.Promote(ctx))
	assert.ElementsMatch(t, []string{"1/" + f1.HashName(), "1/" + f2.HashName()}, store.Keys())
	assert.Equal(t, []*File{f1, f2}, staged.Promoted())

	staged, err = att.Stage(ctx, []*File{FromBytes("other.mp4", []byte("three"))})
	require.NoError(t, err)
	staged.Purge(ctx)
	assert.Len(t, store.Keys(), 2)
}

func TestStage_FailurePurgesPartialWrites(t *testing.T) {
	ctx := context.Background()
	att, store := newAttachments(t)
	f1 := FromBytes("thumb.jpg", []byte("one"))
	f2 := FromBytes("video.mp4", []byte("two"))

	store.FailPut = func(key string) error {
		if strings.HasSuffix(key, f2.HashName()) {
			return errors.New("quota exceeded")
		}
		return nil
	}

	staged, err := att.Stage(ctx, []*File{f1, f2})
	assert.Nil(t, staged)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "quota exceeded")
	assert.Empty(t, store.Keys())
}

func TestURL(t *testing.T) {
	att, _ := newAttachments(t)
	assert.Equal(t, "http://files.local/1/a.mp4", att.URL("a.mp4"))
	assert.Empty(t, att.URL(""))
}

func TestStage_SameContentTwice(t *testing.T) {
	ctx := context.Background()
	att, store := newAttachments(t)
	f1 := FromBytes("thumb.jpg", []byte("same"))
	f2 := FromBytes("banner.jpg", []byte("same"))

	staged, err := att.Stage(ctx, []*File{f1, f2})
	require.NoError(t, err)
	require.NoError(t, staged.Promote(ctx))
	assert.Equal(t, []string{"1/" + f1.HashName()}, store.Keys())
}
