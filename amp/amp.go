// Package amp holds the complex amplitude arithmetic used by the state-vector
// engine and its consumers. Values are plain complex128, so every operation
// returns a new value.
package amp

import (
	"math"
	"math/cmplx"
)

// Complex is one probability amplitude, a (real, imaginary) float64 pair.
type Complex = complex128

// Amplitude constants used to build gate matrices and initial states.
var (
	Zero Complex = 0
	One  Complex = 1
	I    Complex = 1i
)

// New builds re + im·i.
func New(re, im float64) Complex {
	return complex(re, im)
}

// Re and Im return the real and imaginary components.
func Re(a Complex) float64 { return real(a) }
func Im(a Complex) float64 { return imag(a) }

// Add returns the component-wise sum.
func Add(a, b Complex) Complex {
	return a + b
}

// Mul returns (a.re·b.re − a.im·b.im) + (a.re·b.im + a.im·b.re)i.
func Mul(a, b Complex) Complex {
	return a * b
}

// Conj negates the imaginary component.
func Conj(a Complex) Complex {
	return cmplx.Conj(a)
}

// Scale multiplies both components by a real factor.
func Scale(a Complex, s float64) Complex {
	return complex(real(a)*s, imag(a)*s)
}

// AbsSq returns re² + im², the probability weight of an amplitude.
func AbsSq(a Complex) float64 {
	re, im := real(a), imag(a)
	return re*re + im*im
}

// Abs is the magnitude √(re² + im²).
func Abs(a Complex) float64 {
	return math.Sqrt(AbsSq(a))
}

// Phase returns atan2(im, re) in (-π, π]. Phase(0) is 0.
func Phase(a Complex) float64 {
	return math.Atan2(imag(a), real(a))
}

// FromPolar returns the unit amplitude at angle phi.
func FromPolar(phi float64) Complex {
	return complex(math.Cos(phi), math.Sin(phi))
}

// ApproxEqual compares both components within tol.
func ApproxEqual(a, b Complex, tol float64) bool {
	return math.Abs(real(a)-real(b)) <= tol && math.Abs(imag(a)-imag(b)) <= tol
}
