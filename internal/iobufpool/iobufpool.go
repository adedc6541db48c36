// Package iobufpool implements a global segregated-fit pool of buffers for IO.
package iobufpool

import "sync"

const minPoolExpOf2 = 8

var pools [18]*sync.Pool

func init() {
	for i := range pools {
		bufLen := 1 << (minPoolExpOf2 + i)
		pools[i] = &sync.Pool{New: func() any { return make([]byte, bufLen) }}
	}
}

// Get gets a []byte with len == size. Its cap is the smallest pooled power
// of two >= size (at least 256); above the largest pool (32 MiB) the buffer
// is allocated with exactly size bytes.
func Get(size int) []byte {
	i := poolIdx(size)
	if i >= len(pools) {
		return make([]byte, size)
	}
	return pools[i].Get().([]byte)[:size]
}

// Put returns buf to the pool. Buffers whose cap is not exactly one of the
// pool sizes are dropped.
func Put(buf []byte) {
	i := poolIdx(cap(buf))
	if i >= len(pools) || cap(buf) != 1<<(minPoolExpOf2+i) {
		return
	}

	pools[i].Put(buf[:cap(buf)])
}

func poolIdx(size int) int {
	size--
	size >>= minPoolExpOf2
	i := 0
	for size > 0 {
		size >>= 1
		i++
	}

	return i
}
