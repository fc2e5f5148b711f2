// Package snapshot provides binary serialization for pipeline results.
// A snapshot stores the per-vertex ID arrays and the depth threshold of
// one mesh, with optional LZ4 or ZSTD payload compression and a
// checksum over the stored payload.
package snapshot

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"hash/crc32"
	"io"
	"math"
	"os"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

const (
	// MagicNumber identifies snapshot files.
	MagicNumber uint32 = 0x53554C43 // "SULC"

	// Version is the current format version.
	Version uint32 = 1
)

var (
	// ErrInvalidMagic indicates the input is not a snapshot.
	ErrInvalidMagic = errors.New("invalid magic number")

	// ErrInvalidVersion indicates an unsupported format version.
	ErrInvalidVersion = errors.New("invalid version")

	// ErrChecksum indicates payload corruption.
	ErrChecksum = errors.New("checksum mismatch")

	// ErrUnknownCompression indicates an unsupported compression type.
	ErrUnknownCompression = errors.New("unknown compression type")
)

// Compression defines the payload compression algorithm.
type Compression uint8

const (
	// CompressionNone stores the payload uncompressed.
	CompressionNone Compression = 0
	// CompressionLZ4 uses LZ4 block compression (fast).
	CompressionLZ4 Compression = 1
	// CompressionZSTD uses ZSTD block compression (better ratio).
	CompressionZSTD Compression = 2
)

// Options configures snapshot writing.
type Options struct {
	// Compression selects the payload compression.
	Compression Compression
}

// DefaultOptions are the snapshot writing defaults.
var DefaultOptions = Options{
	Compression: CompressionZSTD,
}

// Snapshot holds the result arrays of one mesh. Absent arrays are nil.
type Snapshot struct {
	Threshold  float64
	FoldIDs    []int
	SubfoldIDs []int
	SulcusIDs  []int
}

type fileHeader struct {
	Magic       uint32
	Version     uint32
	Compression uint8
	_           [3]byte
	Checksum    uint32
	PayloadSize uint32
}

// Write serializes the snapshot.
func Write(w io.Writer, s *Snapshot, optFns ...func(o *Options)) error {
	opts := DefaultOptions

	for _, fn := range optFns {
		fn(&opts)
	}

	var payload bytes.Buffer

	if err := binary.Write(&payload, binary.LittleEndian, math.Float64bits(s.Threshold)); err != nil {
		return err
	}

	for _, arr := range [][]int{s.FoldIDs, s.SubfoldIDs, s.SulcusIDs} {
		if err := writeIntSlice(&payload, arr); err != nil {
			return err
		}
	}

	compressed, err := compress(payload.Bytes(), opts.Compression)
	if err != nil {
		return err
	}

	header := fileHeader{
		Magic:       MagicNumber,
		Version:     Version,
		Compression: uint8(opts.Compression),
		Checksum:    crc32.Checksum(compressed, crc32.MakeTable(crc32.Castagnoli)),
		PayloadSize: uint32(len(compressed)),
	}

	if err := binary.Write(w, binary.LittleEndian, &header); err != nil {
		return err
	}

	_, err = w.Write(compressed)

	return err
}

// Read deserializes a snapshot.
func Read(r io.Reader) (*Snapshot, error) {
	var header fileHeader

	if err := binary.Read(r, binary.LittleEndian, &header); err != nil {
		return nil, err
	}

	if header.Magic != MagicNumber {
		return nil, fmt.Errorf("%w: got 0x%08x", ErrInvalidMagic, header.Magic)
	}

	if header.Version != Version {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidVersion, header.Version)
	}

	compressed := make([]byte, header.PayloadSize)
	if _, err := io.ReadFull(r, compressed); err != nil {
		return nil, err
	}

	if sum := crc32.Checksum(compressed, crc32.MakeTable(crc32.Castagnoli)); sum != header.Checksum {
		return nil, fmt.Errorf("%w: got 0x%08x, want 0x%08x", ErrChecksum, sum, header.Checksum)
	}

	payload, err := decompress(compressed, Compression(header.Compression))
	if err != nil {
		return nil, err
	}

	buf := bytes.NewReader(payload)

	var bits uint64
	if err := binary.Read(buf, binary.LittleEndian, &bits); err != nil {
		return nil, err
	}

	s := &Snapshot{Threshold: math.Float64frombits(bits)}

	for _, arr := range []*[]int{&s.FoldIDs, &s.SubfoldIDs, &s.SulcusIDs} {
		if *arr, err = readIntSlice(buf); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// WriteFile serializes the snapshot to a file.
func WriteFile(path string, s *Snapshot, optFns ...func(o *Options)) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	if err := Write(f, s, optFns...); err != nil {
		_ = f.Close()
		return err
	}

	return f.Close()
}

// ReadFile deserializes a snapshot from a file.
func ReadFile(path string) (*Snapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return Read(f)
}

// writeIntSlice encodes a presence flag, a count, and int32 values.
func writeIntSlice(w io.Writer, arr []int) error {
	present := uint8(0)
	if arr != nil {
		present = 1
	}

	if err := binary.Write(w, binary.LittleEndian, present); err != nil {
		return err
	}

	if present == 0 {
		return nil
	}

	if err := binary.Write(w, binary.LittleEndian, uint32(len(arr))); err != nil {
		return err
	}

	vals := make([]int32, len(arr))
	for i, v := range arr {
		vals[i] = int32(v)
	}

	return binary.Write(w, binary.LittleEndian, vals)
}

func readIntSlice(r io.Reader) ([]int, error) {
	var present uint8

	if err := binary.Read(r, binary.LittleEndian, &present); err != nil {
		return nil, err
	}

	if present == 0 {
		return nil, nil
	}

	var count uint32
	if err := binary.Read(r, binary.LittleEndian, &count); err != nil {
		return nil, err
	}

	vals := make([]int32, count)
	if err := binary.Read(r, binary.LittleEndian, vals); err != nil {
		return nil, err
	}

	arr := make([]int, count)
	for i, v := range vals {
		arr[i] = int(v)
	}

	return arr, nil
}

func compress(data []byte, c Compression) ([]byte, error) {
	switch c {
	case CompressionNone:
		return data, nil

	case CompressionLZ4:
		var buf bytes.Buffer

		w := lz4.NewWriter(&buf)
		if _, err := w.Write(data); err != nil {
			return nil, err
		}

		if err := w.Close(); err != nil {
			return nil, err
		}

		return buf.Bytes(), nil

	case CompressionZSTD:
		enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
		if err != nil {
			return nil, err
		}
		defer enc.Close()

		return enc.EncodeAll(data, nil), nil

	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownCompression, c)
	}
}

func decompress(data []byte, c Compression) ([]byte, error) {
	switch c {
	case CompressionNone:
		return data, nil

	case CompressionLZ4:
		return io.ReadAll(lz4.NewReader(bytes.NewReader(data)))

	case CompressionZSTD:
		dec, err := zstd.NewReader(nil)
		if err != nil {
			return nil, err
		}
		defer dec.Close()

		return dec.DecodeAll(data, nil)

	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownCompression, c)
	}
}
