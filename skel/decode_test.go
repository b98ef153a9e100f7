package skel

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xionluhnis/knitc/alphabet"
)

func sampleSkeleton() *Skeleton {
	return &Skeleton{
		Nodes: []Node{
			{ID: 0, Kind: Sheet, Sheet: Flat, Courses: []int{0, 1, 2}, WidthBottom: 4, WidthTop: 4,
				Interfaces: map[string]int{}},
		},
		StitchNeedle: map[int]NeedleRef{
			0: {Index: 0, Side: alphabet.SideFront},
			1: {Index: 1, Side: alphabet.SideFront},
		},
		Params:    Params{NeedlePos: "left", CastOnType: "interlock", CastOffType: "direct"},
		StartNode: 0,
		Carrier:   3,
		MaxWidth:  4,
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	sk := sampleSkeleton()
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, sk))

	got, err := Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, sk.Carrier, got.Carrier)
	assert.Equal(t, sk.StartNode, got.StartNode)
	assert.Equal(t, sk.Params, got.Params)
	require.Len(t, got.Nodes, 1)
	assert.Equal(t, sk.Nodes[0].Courses, got.Nodes[0].Courses)
}

func TestDecodeEmptyInputErrors(t *testing.T) {
	_, err := Decode(&bytes.Buffer{})
	assert.Error(t, err)
}

func TestNodeAndInterfaceLookup(t *testing.T) {
	sk := sampleSkeleton()
	sk.Interfaces = []Interface{{ID: 0, A: Side{0, "bottom"}, B: Side{0, "top"}}}

	n, ok := sk.Node(0)
	require.True(t, ok)
	assert.Equal(t, Sheet, n.Kind)

	_, ok = sk.Node(7)
	assert.False(t, ok)

	itf, ok := sk.Interface(0)
	require.True(t, ok)
	assert.Equal(t, "bottom", itf.A.Path)
}
