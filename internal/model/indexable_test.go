package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPermalinkHash(t *testing.T) {
	assert.Equal(t, "7:f34bb62f734d1cecaa4de6a8b8efab52", PermalinkHash("/about/"))
	assert.Equal(t, "26:5057b41d225a0919c7dd19790bbddd8d", PermalinkHash("http://example.test/about/"))
}

func TestIndexable_SetPermalink(t *testing.T) {
	ind := &Indexable{ObjectType: ObjectTypePost}
	assert.False(t, ind.HasPermalink())

	ind.SetPermalink("/about/")

	assert.True(t, ind.HasPermalink())
	assert.Equal(t, "/about/", *ind.Permalink)
	assert.Equal(t, "7:f34bb62f734d1cecaa4de6a8b8efab52", *ind.PermalinkHash)
}
