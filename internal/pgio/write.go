package pgio

func SetInt32(buf []byte, n int32) {
	*(*[4]byte)(buf) = [4]byte{byte(n >> 24), byte(n >> 16), byte(n >> 8), byte(n)}
}
