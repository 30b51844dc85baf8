// SPDX-License-Identifier: EPL-2.0

package utils

// Float32ToInt16 converts a normalized [-1, 1] sample to a 16-bit PCM value.
// Out-of-range input is clamped to full scale.
func Float32ToInt16(x float32) int16 {
	if x > 1 {
		x = 1
	} else if x < -1 {
		x = -1
	}

	return int16(x * 32767.0)
}
