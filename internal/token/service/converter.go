package service

// toDigits interprets buf as a big-endian unsigned integer and appends its base-ary
// expansion, least significant digit first, to digits[:0]. Each byte is folded in
// Horner style: every existing digit is multiplied by 256 and carries propagate
// upward. The result has no leading zero digits except for the value zero, which
// yields a single 0.
//
// digits should have capacity for the widest possible result so the loop never
// reallocates.
func toDigits(buf []byte, base int, digits []int) []int {
	digits = append(digits[:0], 0)

	for _, b := range buf {
		carry := int(b)

		for j := range digits {
			carry += digits[j] << 8
			digits[j] = carry % base
			carry /= base
		}

		for carry > 0 {
			digits = append(digits, carry%base)
			carry /= base
		}
	}

	return digits
}
