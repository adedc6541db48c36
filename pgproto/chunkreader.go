package pgproto

import (
	"io"

	"github.com/coriolisdb/pgwire/internal/iobufpool"
)

// chunkReader minimizes IO reads and allocations by reading as much as fits
// in its internal buffer on every underlying Read, regardless of how much
// was actually requested by Next. Memory returned by Next is valid only
// until the next call to Next.
type chunkReader struct {
	r io.Reader

	buf    []byte
	rp, wp int

	ownBuf []byte
}

// newChunkReader returns a chunkReader with an internal buffer of bufSize
// bytes. A bufSize <= 0 defaults to 8192, matching the server's own send
// buffer, which testing has shown to be the sweet spot for this workload.
func newChunkReader(r io.Reader, bufSize int) *chunkReader {
	if bufSize <= 0 {
		bufSize = 8192
	}

	buf := make([]byte, bufSize)
	return &chunkReader{r: r, buf: buf, ownBuf: buf}
}

// Next returns the next n bytes. The returned slice aliases the internal
// buffer and is only valid until the next call to Next.
func (r *chunkReader) Next(n int) ([]byte, error) {
	if r.rp == r.wp {
		if len(r.buf) != len(r.ownBuf) {
			iobufpool.Put(r.buf)
			r.buf = r.ownBuf
		}
		r.rp = 0
		r.wp = 0
	}

	if (r.wp - r.rp) >= n {
		buf := r.buf[r.rp : r.rp+n : r.rp+n]
		r.rp += n
		return buf, nil
	}

	if len(r.buf) < n {
		bigBuf := iobufpool.Get(n)
		r.wp = copy(bigBuf, r.buf[r.rp:r.wp])
		r.rp = 0
		r.buf = bigBuf
	}

	minReadCount := n - (r.wp - r.rp)
	if (len(r.buf) - r.wp) < minReadCount {
		r.wp = copy(r.buf, r.buf[r.rp:r.wp])
		r.rp = 0
	}

	readCount, err := io.ReadAtLeast(r.r, r.buf[r.wp:], minReadCount)
	r.wp += readCount
	if err != nil {
		return nil, err
	}

	buf := r.buf[r.rp : r.rp+n : r.rp+n]
	r.rp += n
	return buf, nil
}
