package variant

import (
	"bytes"

	"github.com/golang/snappy"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"

	"github.com/yndnr/kernbench-go/pkg/kernel"
)

const compressIterations = 50

// ZstdCompression compresses the payload 50 times with a fresh zstd encoder
// at the default level, closing it each time.
func ZstdCompression() {
	data := kernel.Payload()
	for i := 0; i < compressIterations; i++ {
		_ = zstdBytes(data)
	}
}

func zstdBytes(data []byte) []byte {
	var buf bytes.Buffer
	zw, err := zstd.NewWriter(&buf)
	if err != nil {
		panic(err)
	}
	if _, err := zw.Write(data); err != nil {
		panic(err)
	}
	if err := zw.Close(); err != nil {
		panic(err)
	}
	return buf.Bytes()
}

// SnappyCompression block-encodes the payload 50 times.
func SnappyCompression() {
	data := kernel.Payload()
	for i := 0; i < compressIterations; i++ {
		_ = snappy.Encode(nil, data)
	}
}

// LZ4Compression block-compresses the payload 50 times into a fresh
// destination and hash table.
func LZ4Compression() {
	data := kernel.Payload()
	for i := 0; i < compressIterations; i++ {
		_ = lz4Bytes(data)
	}
}

func lz4Bytes(data []byte) []byte {
	dst := make([]byte, lz4.CompressBlockBound(len(data)))
	ht := make([]int, 1<<16)
	n, err := lz4.CompressBlock(data, dst, ht)
	if err != nil {
		panic(err)
	}
	return dst[:n]
}
