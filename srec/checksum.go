package srec

// Checksum computes the record checksum: the one's complement of the low
// byte of the sum of the byte count, every address byte and every data byte.
//
// addressBytes selects how many low-order bytes of address are summed (2, 3 or 4).
func Checksum(byteCount byte, address uint32, addressBytes int, data []byte) byte {
	sum := byteCount
	for i := 0; i < addressBytes; i++ {
		sum += byte(address >> (8 * i))
	}
	for _, b := range data {
		sum += b
	}
	return ^sum
}
