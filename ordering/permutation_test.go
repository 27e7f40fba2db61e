// SPDX-License-Identifier: MIT

package ordering_test

import (
	"testing"

	"github.com/katalvlaran/cholup/ordering"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPermutation(t *testing.T) {
	p, err := ordering.NewPermutation([]int{2, 0, 1})
	require.NoError(t, err)
	assert.Equal(t, 3, p.Len())
	assert.Equal(t, 2, p.Forward(0))
	assert.Equal(t, 0, p.Inverse(2))
	assert.Equal(t, []int{1, 2, 0}, p.InverseSlice())
	assert.Equal(t, []int{2, 0, 1}, p.ForwardSlice())
	assert.Equal(t, []int{1, 2, 0}, p.Inverted().ForwardSlice())
	assert.False(t, p.IsIdentity())
	assert.True(t, ordering.Identity(4).IsIdentity())

	for _, bad := range [][]int{{0, 0}, {1, 2}, {-1, 0}} {
		_, err = ordering.NewPermutation(bad)
		require.ErrorIs(t, err, ordering.ErrInvalidPermutation)
	}
}

func TestPermutation_MapIndices(t *testing.T) {
	p, err := ordering.NewPermutation([]int{3, 1, 0, 2})
	require.NoError(t, err)

	got, err := p.MapIndices([]int{0, 2, 3})
	require.NoError(t, err)
	assert.Equal(t, []int{3, 0, 2}, got)

	_, err = p.MapIndices([]int{4})
	require.ErrorIs(t, err, ordering.ErrOutOfRange)
}

func TestPermutation_SlicesAreCopies(t *testing.T) {
	p := ordering.Identity(3)
	f := p.ForwardSlice()
	f[0] = 2
	assert.Equal(t, 0, p.Forward(0))
}
