package snapshot

import (
	"fmt"

	"github.com/klauspost/compress/zstd"

	"mfd/internal/snapshot/interfaces"
)

// ZstdCompressor owns one long-lived encoder/decoder pair. EncodeAll and
// DecodeAll are safe for concurrent use, so the scheduler and a shutdown
// persist can share it.
type ZstdCompressor struct {
	encoder *zstd.Encoder
	decoder *zstd.Decoder
}

func (z *ZstdCompressor) Compress(val []byte) ([]byte, error) {
	// Snapshot JSON compresses well; a third of the input is a decent
	// starting capacity.
	return z.encoder.EncodeAll(val, make([]byte, 0, len(val)/3)), nil
}

func (z *ZstdCompressor) Decompress(val []byte) ([]byte, error) {
	return z.decoder.DecodeAll(val, nil)
}

func (z *ZstdCompressor) Close() {
	_ = z.encoder.Close()
	z.decoder.Close()
}

func NewZstdCompressor() (interfaces.CompressorInterface, error) {
	encoder, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return nil, fmt.Errorf("failed to create zstd encoder: %w", err)
	}
	decoder, err := zstd.NewReader(nil, zstd.WithDecoderConcurrency(0))
	if err != nil {
		encoder.Close()
		return nil, fmt.Errorf("failed to create zstd decoder: %w", err)
	}
	return &ZstdCompressor{encoder: encoder, decoder: decoder}, nil
}
