package nvram

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/nvramkit/internal/format"
	"github.com/joshuapare/nvramkit/pkg/types"
)

const (
	testImageSize  = 0x4000
	testCommonSize = 0x800
)

func newTestImage(t *testing.T) *Image {
	t.Helper()
	img, err := New(testImageSize, testCommonSize)
	require.NoError(t, err)
	return img
}

func serializeAndParse(t *testing.T, img *Image) *Image {
	t.Helper()
	data, err := img.Serialize()
	require.NoError(t, err)
	require.Len(t, data, testImageSize)
	back, err := Parse(data)
	require.NoError(t, err)
	return back
}

func TestNewImageRoundTrip(t *testing.T) {
	img := serializeAndParse(t, newTestImage(t))

	assert.Equal(t, 0, img.ActiveIndex())
	p := img.ActivePartition()
	assert.Equal(t, uint32(1), p.Generation)
	assert.Equal(t, 0, p.Common.Len())
	assert.Equal(t, 0, p.System.Len())
	assert.Equal(t, testCommonSize, p.Common.Size())
	assert.Equal(t, testImageSize/2-format.PartitionHeaderSize-testCommonSize, p.System.Size())
}

func TestPrepareForWriteSwitchesPartition(t *testing.T) {
	img := newTestImage(t)
	img.ActivePartition().Common.Insert(Variable{Key: []byte("a"), Value: []byte("1")})

	img.PrepareForWrite()
	require.True(t, img.Prepared())
	assert.Equal(t, 1, img.ActiveIndex())
	assert.Equal(t, uint32(2), img.ActivePartition().Generation)

	// Copy is independent of the previous partition.
	img.ActivePartition().Common.Insert(Variable{Key: []byte("a"), Value: []byte("2")})
	old, ok := img.Partition(0).Common.Get([]byte("a"))
	require.True(t, ok)
	assert.Equal(t, []byte("1"), old.Value)

	// Idempotent.
	img.PrepareForWrite()
	assert.Equal(t, 1, img.ActiveIndex())
	assert.Equal(t, uint32(2), img.ActivePartition().Generation)

	back := serializeAndParse(t, img)
	assert.Equal(t, 1, back.ActiveIndex())
	v, ok := back.ActivePartition().Common.Get([]byte("a"))
	require.True(t, ok)
	assert.Equal(t, []byte("2"), v.Value)
}

func TestVariablesSurviveSerialization(t *testing.T) {
	img := newTestImage(t)
	img.PrepareForWrite()
	p := img.ActivePartition()
	p.Common.Insert(Variable{Key: []byte("boot-args"), Value: []byte("-v debug=0x14e")})
	p.Common.Insert(Variable{Key: []byte("bin"), Value: []byte{0x00, 0x01, 0xFF, 0xFF, 0x00}})
	p.System.Insert(Variable{Key: []byte("empty"), Value: nil})

	back := serializeAndParse(t, img).ActivePartition()
	require.Equal(t, 2, back.Common.Len())
	assert.Equal(t, []byte("boot-args"), back.Common.Variables()[0].Key)
	assert.Equal(t, []byte("-v debug=0x14e"), back.Common.Variables()[0].Value)
	assert.Equal(t, []byte{0x00, 0x01, 0xFF, 0xFF, 0x00}, back.Common.Variables()[1].Value)
	v, ok := back.System.Get([]byte("empty"))
	require.True(t, ok)
	assert.Empty(t, v.Value)
}

func TestParseSelectsHighestGeneration(t *testing.T) {
	img := newTestImage(t)
	img.PrepareForWrite()
	img.PrepareForWrite()
	back := serializeAndParse(t, img)
	assert.Equal(t, 1, back.ActiveIndex())

	back.PrepareForWrite()
	again := serializeAndParse(t, back)
	assert.Equal(t, 0, again.ActiveIndex())
	assert.Equal(t, uint32(3), again.ActivePartition().Generation)
}

func TestGenerationWraps(t *testing.T) {
	img := newTestImage(t)
	img.parts[0].Generation = 0xFFFFFFFF
	img.parts[1].Generation = 0xFFFFFFFE
	back := serializeAndParse(t, img)
	require.Equal(t, 0, back.ActiveIndex())

	back.PrepareForWrite()
	back.ActivePartition().Common.Insert(Variable{Key: []byte("k"), Value: []byte("new")})
	again := serializeAndParse(t, back)
	assert.Equal(t, 1, again.ActiveIndex())
	assert.Equal(t, uint32(0), again.ActivePartition().Generation)
	v, ok := again.ActivePartition().Common.Get([]byte("k"))
	require.True(t, ok)
	assert.Equal(t, []byte("new"), v.Value)
}

func TestNewer(t *testing.T) {
	assert.True(t, newer(2, 1))
	assert.False(t, newer(1, 2))
	assert.False(t, newer(5, 5))
	assert.True(t, newer(0, 0xFFFFFFFF))
	assert.False(t, newer(0xFFFFFFFF, 0))
}

func TestParseFallsBackToValidPartition(t *testing.T) {
	img := newTestImage(t)
	img.PrepareForWrite()
	img.ActivePartition().System.Insert(Variable{Key: []byte("k"), Value: []byte("new")})
	data, err := img.Serialize()
	require.NoError(t, err)

	// Corrupt the newer partition's body so its Adler-32 no longer matches.
	data[testImageSize/2+format.PartitionHeaderSize+format.CHRPHeaderSize] ^= 0x5A

	back, err := Parse(data)
	require.NoError(t, err)
	assert.Equal(t, 0, back.ActiveIndex())
	assert.Nil(t, back.Partition(1))
	_, ok := back.ActivePartition().System.Get([]byte("k"))
	assert.False(t, ok)

	// The damaged slot is carried through untouched until replaced.
	out, err := back.Serialize()
	require.NoError(t, err)
	assert.Equal(t, data[testImageSize/2:], out[testImageSize/2:])
}

func TestParseErrors(t *testing.T) {
	_, err := Parse(make([]byte, 10))
	assert.ErrorIs(t, err, types.ErrParse)

	_, err = Parse(make([]byte, testImageSize))
	assert.ErrorIs(t, err, types.ErrParse)
}

func TestParseSectionTooBig(t *testing.T) {
	data, err := newTestImage(t).Serialize()
	require.NoError(t, err)

	half := testImageSize / 2
	for i := range PartitionCount {
		part := data[i*half : (i+1)*half]
		hdr := part[format.PartitionHeaderSize:]
		require.NoError(t, format.PutCHRPHeader(hdr, format.SectionSignature, format.CommonName, half))
		copy(part[format.PartitionAdlerOffset:], adlerLE(part))
	}
	_, err = Parse(data)
	assert.ErrorIs(t, err, types.ErrSectionTooBig)
}

func TestSerializeSectionTooBig(t *testing.T) {
	img := newTestImage(t)
	img.PrepareForWrite()
	// Zeros would compress to escapes; use bytes that do not.
	big := make([]byte, testCommonSize)
	for i := range big {
		big[i] = 'x'
	}
	img.ActivePartition().Common.Insert(Variable{Key: []byte("big"), Value: big})

	_, err := img.Serialize()
	assert.ErrorIs(t, err, types.ErrSectionTooBig)
}

func TestNewRejectsBadLayout(t *testing.T) {
	_, err := New(100, 0x20)
	assert.ErrorIs(t, err, types.ErrParse)
	_, err = New(testImageSize, testImageSize)
	assert.ErrorIs(t, err, types.ErrSectionTooBig)
}
