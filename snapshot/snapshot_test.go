package snapshot

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleSnapshot() *Snapshot {
	return &Snapshot{
		Threshold:  2.375,
		FoldIDs:    []int{-1, 0, 0, 1, 1, -1},
		SubfoldIDs: []int{-1, 0, 1, 2, 2, -1},
		SulcusIDs:  []int{-1, 4, 4, -1, 24, -1},
	}
}

func TestRoundTrip(t *testing.T) {
	compressions := map[string]Compression{
		"none": CompressionNone,
		"lz4":  CompressionLZ4,
		"zstd": CompressionZSTD,
	}

	for name, c := range compressions {
		t.Run(name, func(t *testing.T) {
			s := sampleSnapshot()

			var buf bytes.Buffer
			require.NoError(t, Write(&buf, s, func(o *Options) {
				o.Compression = c
			}))

			got, err := Read(&buf)
			require.NoError(t, err)
			assert.Equal(t, s, got)
		})
	}
}

func TestAbsentArrays(t *testing.T) {
	s := &Snapshot{Threshold: 1.5, FoldIDs: []int{0, 0, 1}}

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, s))

	got, err := Read(&buf)
	require.NoError(t, err)

	assert.Equal(t, []int{0, 0, 1}, got.FoldIDs)
	assert.Nil(t, got.SubfoldIDs)
	assert.Nil(t, got.SulcusIDs)
}

func TestReadErrors(t *testing.T) {
	t.Run("invalid magic", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, Write(&buf, sampleSnapshot()))

		data := buf.Bytes()
		data[0] = 0xFF

		_, err := Read(bytes.NewReader(data))
		require.ErrorIs(t, err, ErrInvalidMagic)
	})

	t.Run("invalid version", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, Write(&buf, sampleSnapshot()))

		data := buf.Bytes()
		binary.LittleEndian.PutUint32(data[4:], Version+1)

		_, err := Read(bytes.NewReader(data))
		require.ErrorIs(t, err, ErrInvalidVersion)
	})

	t.Run("corrupted payload", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, Write(&buf, sampleSnapshot()))

		data := buf.Bytes()
		data[len(data)-1] ^= 0xFF

		_, err := Read(bytes.NewReader(data))
		require.ErrorIs(t, err, ErrChecksum)
	})

	t.Run("truncated", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, Write(&buf, sampleSnapshot()))

		_, err := Read(bytes.NewReader(buf.Bytes()[:8]))
		require.Error(t, err)
	})

	t.Run("unknown compression", func(t *testing.T) {
		var buf bytes.Buffer
		err := Write(&buf, sampleSnapshot(), func(o *Options) {
			o.Compression = Compression(42)
		})
		require.ErrorIs(t, err, ErrUnknownCompression)
	})
}

func TestFileRoundTrip(t *testing.T) {
	path := t.TempDir() + "/result.sulc"
	s := sampleSnapshot()

	require.NoError(t, WriteFile(path, s))

	got, err := ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, s, got)
}
