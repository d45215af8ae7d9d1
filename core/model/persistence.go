package model

import (
	"bytes"
	"compress/gzip"
	"encoding/binary"
	"encoding/gob"
	"fmt"
	"io"
	"os"

	"github.com/klauspost/compress/s2"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"

	lsqErrors "github.com/mizuhira/lsqfit/pkg/errors"
)

// Compression selects the codec applied to a saved model's gob payload.
type Compression byte

// Supported payload codecs.
const (
	CompressionNone Compression = iota
	CompressionGzip
	CompressionZstd
	CompressionS2
	CompressionLZ4
)

// String returns the codec name.
func (c Compression) String() string {
	switch c {
	case CompressionNone:
		return "none"
	case CompressionGzip:
		return "gzip"
	case CompressionZstd:
		return "zstd"
	case CompressionS2:
		return "s2"
	case CompressionLZ4:
		return "lz4"
	default:
		return fmt.Sprintf("unknown(%d)", byte(c))
	}
}

// ParseCompression converts a codec name to a Compression value.
func ParseCompression(name string) (Compression, error) {
	switch name {
	case "none", "":
		return CompressionNone, nil
	case "gzip":
		return CompressionGzip, nil
	case "zstd":
		return CompressionZstd, nil
	case "s2":
		return CompressionS2, nil
	case "lz4":
		return CompressionLZ4, nil
	default:
		return CompressionNone, lsqErrors.NewInvalidInputErrorf("ParseCompression", "unknown compression %q", name)
	}
}

// Model files start with a fixed header:
//
//	offset 0: magic "LSQM"
//	offset 4: format version byte
//	offset 5: compression codec byte
//	offset 6: uncompressed payload size, uint64 little-endian
//	offset 14: payload
const (
	fileMagic     = "LSQM"
	formatVersion = 1
	headerSize    = 14

	// maxPayloadSize bounds the decode allocation for corrupt headers.
	maxPayloadSize = 1 << 30
)

type saveConfig struct {
	compression Compression
}

// SaveOption configures SaveModel and SaveModelToWriter.
type SaveOption func(*saveConfig)

// WithCompression selects the codec for the saved payload. The default is
// CompressionNone.
func WithCompression(c Compression) SaveOption {
	return func(cfg *saveConfig) {
		cfg.compression = c
	}
}

// SaveModel saves a model to a file.
//
// Example:
//
//	reg := linear.NewLinearRegression()
//	// ... fit the model ...
//	err := model.SaveModel(reg, "model.lsqm", model.WithCompression(model.CompressionZstd))
func SaveModel(m interface{}, filename string, opts ...SaveOption) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer func() { _ = file.Close() }()

	return SaveModelToWriter(m, file, opts...)
}

// LoadModel loads a model from a file. The destination must be a pointer to
// the same concrete type the file was saved from.
//
// Example:
//
//	reg := linear.NewLinearRegression()
//	err := model.LoadModel(reg, "model.lsqm")
func LoadModel(m interface{}, filename string) error {
	file, err := os.Open(filename)
	if err != nil {
		return fmt.Errorf("failed to open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	return LoadModelFromReader(m, file)
}

// SaveModelToWriter writes a model to w using the lsqfit model format.
func SaveModelToWriter(m interface{}, w io.Writer, opts ...SaveOption) error {
	cfg := saveConfig{compression: CompressionNone}
	for _, opt := range opts {
		opt(&cfg)
	}

	var payload bytes.Buffer
	if err := gob.NewEncoder(&payload).Encode(m); err != nil {
		return fmt.Errorf("failed to encode model: %w", err)
	}
	raw := payload.Bytes()

	body, codec, err := compressPayload(cfg.compression, raw)
	if err != nil {
		return fmt.Errorf("failed to compress model: %w", err)
	}

	header := make([]byte, headerSize)
	copy(header[:4], fileMagic)
	header[4] = formatVersion
	header[5] = byte(codec)
	binary.LittleEndian.PutUint64(header[6:], uint64(len(raw)))

	if _, err := w.Write(header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	if _, err := w.Write(body); err != nil {
		return fmt.Errorf("failed to write payload: %w", err)
	}
	return nil
}

// LoadModelFromReader reads a model from r, detecting the payload codec from
// the file header.
func LoadModelFromReader(m interface{}, r io.Reader) error {
	header := make([]byte, headerSize)
	if _, err := io.ReadFull(r, header); err != nil {
		return fmt.Errorf("failed to read header: %w", err)
	}
	if string(header[:4]) != fileMagic {
		return lsqErrors.NewInvalidInputError("LoadModel", "not a lsqfit model file (bad magic)")
	}
	if header[4] != formatVersion {
		return lsqErrors.NewInvalidInputErrorf("LoadModel", "unsupported format version %d", header[4])
	}
	codec := Compression(header[5])
	size := binary.LittleEndian.Uint64(header[6:headerSize])
	if size > maxPayloadSize {
		return lsqErrors.NewInvalidInputErrorf("LoadModel", "payload size %d exceeds limit", size)
	}

	body, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("failed to read payload: %w", err)
	}

	raw, err := decompressPayload(codec, body, size)
	if err != nil {
		return fmt.Errorf("failed to decompress model: %w", err)
	}

	if err := gob.NewDecoder(bytes.NewReader(raw)).Decode(m); err != nil {
		return fmt.Errorf("failed to decode model: %w", err)
	}
	return nil
}

// compressPayload encodes raw with the requested codec. LZ4 block compression
// can decline incompressible input; in that case the payload is stored raw
// and the returned codec records that.
func compressPayload(c Compression, raw []byte) ([]byte, Compression, error) {
	switch c {
	case CompressionNone:
		return raw, CompressionNone, nil

	case CompressionGzip:
		var buf bytes.Buffer
		zw := gzip.NewWriter(&buf)
		if _, err := zw.Write(raw); err != nil {
			return nil, c, err
		}
		if err := zw.Close(); err != nil {
			return nil, c, err
		}
		return buf.Bytes(), CompressionGzip, nil

	case CompressionZstd:
		enc, err := zstd.NewWriter(nil)
		if err != nil {
			return nil, c, err
		}
		out := enc.EncodeAll(raw, nil)
		if err := enc.Close(); err != nil {
			return nil, c, err
		}
		return out, CompressionZstd, nil

	case CompressionS2:
		return s2.Encode(nil, raw), CompressionS2, nil

	case CompressionLZ4:
		dst := make([]byte, lz4.CompressBlockBound(len(raw)))
		var lc lz4.Compressor
		n, err := lc.CompressBlock(raw, dst)
		if err != nil {
			return nil, c, err
		}
		if n == 0 || n >= len(raw) {
			return raw, CompressionNone, nil
		}
		return dst[:n], CompressionLZ4, nil

	default:
		return nil, c, lsqErrors.NewInvalidInputErrorf("SaveModel", "unknown compression %q", c.String())
	}
}

func decompressPayload(c Compression, body []byte, size uint64) ([]byte, error) {
	switch c {
	case CompressionNone:
		if uint64(len(body)) != size {
			return nil, lsqErrors.NewInvalidInputError("LoadModel", "payload size does not match header")
		}
		return body, nil

	case CompressionGzip:
		zr, err := gzip.NewReader(bytes.NewReader(body))
		if err != nil {
			return nil, err
		}
		raw, err := io.ReadAll(zr)
		if err != nil {
			return nil, err
		}
		if err := zr.Close(); err != nil {
			return nil, err
		}
		return raw, nil

	case CompressionZstd:
		dec, err := zstd.NewReader(nil)
		if err != nil {
			return nil, err
		}
		defer dec.Close()
		return dec.DecodeAll(body, make([]byte, 0, size))

	case CompressionS2:
		return s2.Decode(make([]byte, 0, size), body)

	case CompressionLZ4:
		raw := make([]byte, size)
		n, err := lz4.UncompressBlock(body, raw)
		if err != nil {
			return nil, err
		}
		return raw[:n], nil

	default:
		return nil, lsqErrors.NewInvalidInputErrorf("LoadModel", "unknown compression byte %d", byte(c))
	}
}
