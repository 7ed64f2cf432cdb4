package utils

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
)

// RandomInt32 generates a secure random 32-bit integer
func RandomInt32() int32 {
	var num int32
	err := binary.Read(rand.Reader, binary.BigEndian, &num)
	if err != nil {
		panic("generate random int32 failed")
	}

	return num
}

// RandomDigitCode generates a zero-padded numeric code of the given
// length, e.g. "048213" for length 6
func RandomDigitCode(length int) string {
	max := int64(1)
	for i := 0; i < length; i++ {
		max *= 10
	}

	num := int64(RandomInt32())
	if num < 0 {
		num = -num
	}

	return fmt.Sprintf("%0*d", length, num%max)
}
