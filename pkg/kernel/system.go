package kernel

import (
	"bytes"

	"github.com/klauspost/compress/gzip"
)

const compressIterations = 50

// Compression gzips the payload 50 times at the default level, with a fresh
// writer per iteration that is closed to flush the trailer.
func Compression() {
	data := Payload()
	for i := 0; i < compressIterations; i++ {
		_ = gzipBytes(data)
	}
}

// Compressed returns the gzip stream one Compression iteration produces.
func Compressed() []byte {
	return gzipBytes(Payload())
}

func gzipBytes(data []byte) []byte {
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	if _, err := zw.Write(data); err != nil {
		panic(err)
	}
	if err := zw.Close(); err != nil {
		panic(err)
	}
	return buf.Bytes()
}
