package mem

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRingPushPopBack(t *testing.T) {
	r := NewRing[int](4)
	r.PushBack(1)
	r.PushBack(2)
	r.PushBack(3)
	assert.Equal(t, 3, r.Len())
	assert.Equal(t, 3, r.PopBack())
	assert.Equal(t, 2, r.PopBack())
	assert.Equal(t, 1, r.Len())
}

func TestRingPushFrontWrapsWithoutNegativeModulus(t *testing.T) {
	r := NewRing[int](3)
	// front starts at 0; pushing front must not panic on a negative index.
	r.PushFront(10)
	r.PushFront(20)
	assert.Equal(t, 20, *r.Front())
	r.PushBack(30)
	assert.Equal(t, 3, r.Len())
	assert.Equal(t, 20, r.PopFront())
	assert.Equal(t, 10, r.PopFront())
	assert.Equal(t, 30, r.PopFront())
	assert.Equal(t, 0, r.Len())
}

func TestRingFrontBack(t *testing.T) {
	r := NewRing[string](2)
	r.PushBack("a")
	r.PushBack("b")
	assert.Equal(t, "a", *r.Front())
	assert.Equal(t, "b", *r.Back())
	r.Clear()
	assert.Equal(t, 0, r.Len())
}
