package tensor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTensorLazyAllocation(t *testing.T) {
	x := New[float32](2, 3)
	assert.False(t, x.Allocated())
	assert.Equal(t, 6, x.Size())

	err := Catch(func() { x.Read() })
	require.ErrorIs(t, err, ErrPrecondition)

	data := x.Write()
	assert.True(t, x.Allocated())
	assert.Equal(t, []float32{0, 0, 0, 0, 0, 0}, data)

	data[4] = 7
	assert.Equal(t, float32(7), x.Read()[4])
}

func TestNewWithShapeRejectsInvalidShape(t *testing.T) {
	err := Catch(func() { NewWithShape[float32](Shape{2, -3}) })
	require.ErrorIs(t, err, ErrPrecondition)
}

func TestTensorResize(t *testing.T) {
	t.Run("Grow", func(t *testing.T) {
		x := New[float32](2, 2)
		copy(x.Write(), []float32{1, 2, 3, 4})

		x.Resize(NewShape(3, 2))

		assert.True(t, x.Shape().Equal(NewShape(3, 2)))
		assert.Equal(t, []float32{1, 2, 3, 4, 0, 0}, x.Read())
	})

	t.Run("Shrink", func(t *testing.T) {
		x := New[float32](2, 3)
		copy(x.Write(), []float32{1, 2, 3, 4, 5, 6})

		x.Resize(NewShape(2, 2))

		assert.Equal(t, []float32{1, 2, 3, 4}, x.Read())
		assert.Len(t, x.Write(), 4)
	})

	t.Run("ShrinkThenGrowZeroFills", func(t *testing.T) {
		x := New[float32](6)
		copy(x.Write(), []float32{1, 2, 3, 4, 5, 6})

		x.Resize(NewShape(2))
		x.Resize(NewShape(6))

		assert.Equal(t, []float32{1, 2, 0, 0, 0, 0}, x.Read())
	})

	t.Run("Unallocated", func(t *testing.T) {
		x := New[float32](2)
		x.Resize(NewShape(4, 4))

		assert.False(t, x.Allocated())
		assert.Equal(t, 16, x.Size())
		assert.Len(t, x.Write(), 16)
	})

	t.Run("ToZeroAndBack", func(t *testing.T) {
		x := New[float32](3)
		copy(x.Write(), []float32{1, 2, 3})

		x.Resize(NewShape(0))
		assert.Empty(t, x.Read())

		x.Resize(NewShape(3))
		assert.Equal(t, []float32{0, 0, 0}, x.Read())
	})
}

func TestTensorResizePreservesCommonPrefix(t *testing.T) {
	sizes := []int{1, 5, 3, 8, 2, 8, 16, 4}

	x := New[float64](sizes[0])
	x.Write()[0] = 1

	reference := []float64{1}
	for _, n := range sizes[1:] {
		x.Resize(NewShape(n))

		next := make([]float64, n)
		copy(next, reference)
		reference = next

		require.Len(t, x.Read(), n)
		assert.Equal(t, reference, x.Read())

		for i := range x.Write() {
			x.Write()[i] = float64(i + 1)
			reference[i] = float64(i + 1)
		}
	}
}

func TestTensorShapeIsCopied(t *testing.T) {
	s := NewShape(2, 2)
	x := NewWithShape[float32](s)
	s[0] = 10

	assert.Equal(t, 4, x.Size())
}

func TestTensorShapeAccessorReturnsCopy(t *testing.T) {
	x := New[float32](2, 2)
	x.Write()

	x.Shape()[0] = 10

	assert.True(t, x.Shape().Equal(NewShape(2, 2)))
	assert.Equal(t, 4, x.Size())
	assert.Len(t, x.Read(), x.Size())
}
