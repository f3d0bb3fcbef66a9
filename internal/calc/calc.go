package calc

import "fmt"

// Add returns the sum of two integers.
func Add(left, right int32) int32 {
	return left + right
}

// Subtract returns the difference between two integers.
func Subtract(left, right int32) int32 {
	return left - right
}

// Multiply returns the product of two integers.
func Multiply(left, right int32) int32 {
	return left * right
}

// CalculateAndDisplay adds a and b and renders the equation, e.g. "2 + 3 = 5".
func CalculateAndDisplay(a, b int32) string {
	return fmt.Sprintf("%d + %d = %d", a, b, Add(a, b))
}
