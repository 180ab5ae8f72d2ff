package basis

import "math"

// GTONorm returns the radial normalisation factor of a primitive Gaussian r^l exp(-alpha r^2),
// i.e. 1/sqrt(∫ r^(2l+2) exp(-2 alpha r^2) dr). Contraction coefficients stored in the
// parameter array are expected to be pre-multiplied by it.
func GTONorm(l int, alpha float64) float64 {
	n := float64(l) + 1.5
	return math.Sqrt(2 * math.Pow(2*alpha, n) / math.Gamma(n))
}
