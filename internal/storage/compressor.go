package storage

import (
	"bytes"
	"fmt"
	"lrn/internal/storage/interfaces"
	"lrn/internal/structures"

	"github.com/klauspost/compress/zstd"
)

const maxDecodedStore = 256 << 20

var storeFrameMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}

type StoreCodec struct {
	level zstd.EncoderLevel
	enc   *zstd.Encoder
	dec   *zstd.Decoder
}

// NewZstdCompressor builds the codec used for store and send-cache files.
// An empty persistence.compressionLevel means zstd's default level.
func NewZstdCompressor(conf *structures.Config) (interfaces.CompressorInterface, error) {
	level := zstd.SpeedDefault
	if name := conf.Persistence.CompressionLevel; name != "" {
		ok, parsed := zstd.EncoderLevelFromString(name)
		if !ok {
			return nil, fmt.Errorf("unknown compression level %q", name)
		}
		level = parsed
	}

	// one small file per run, no need for worker goroutines
	enc, err := zstd.NewWriter(nil,
		zstd.WithEncoderLevel(level),
		zstd.WithEncoderConcurrency(1),
		zstd.WithZeroFrames(true),
	)
	if err != nil {
		return nil, fmt.Errorf("create zstd encoder: %w", err)
	}
	dec, err := zstd.NewReader(nil,
		zstd.WithDecoderConcurrency(1),
		zstd.WithDecoderMaxMemory(maxDecodedStore),
	)
	if err != nil {
		enc.Close()
		return nil, fmt.Errorf("create zstd decoder: %w", err)
	}
	return &StoreCodec{level: level, enc: enc, dec: dec}, nil
}

func (c *StoreCodec) Compress(plain []byte) ([]byte, error) {
	return c.enc.EncodeAll(plain, nil), nil
}

func (c *StoreCodec) Decompress(frame []byte) ([]byte, error) {
	if !IsCompressed(frame) {
		return nil, fmt.Errorf("missing zstd frame header")
	}
	return c.dec.DecodeAll(frame, nil)
}

func (c *StoreCodec) Close() {
	c.enc.Close()
	c.dec.Close()
}

// IsCompressed reports whether data starts with a zstd frame header.
// The file manager uses it to read stores written with compression toggled either way.
func IsCompressed(data []byte) bool {
	return bytes.HasPrefix(data, storeFrameMagic)
}
