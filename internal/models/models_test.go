package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVideo_FileSlots(t *testing.T) {
	v := &Video{ID: "42"}

	assert.Equal(t, "42", v.UploadDir())
	assert.Empty(t, v.FileName(FieldVideoFile))
	assert.Empty(t, v.FileNames())

	v.SetFileName(FieldVideoFile, "a.mp4")
	v.SetFileName(FieldThumbFile, "t.jpg")
	assert.Equal(t, "a.mp4", v.FileName(FieldVideoFile))
	assert.Equal(t, map[string]string{FieldVideoFile: "a.mp4", FieldThumbFile: "t.jpg"}, v.FileNames())

	v.SetFileName(FieldThumbFile, "")
	assert.Nil(t, v.ThumbFile)

	v.SetFileName("unknown", "x")
	assert.Empty(t, v.FileName("unknown"))
}

func TestCastMemberType_Valid(t *testing.T) {
	assert.True(t, CastMemberTypeDirector.Valid())
	assert.True(t, CastMemberTypeActor.Valid())
	assert.False(t, CastMemberType(3).Valid())
}

func TestValidRating(t *testing.T) {
	for _, r := range RatingList {
		assert.True(t, ValidRating(r))
	}
	assert.False(t, ValidRating("12"))
}
