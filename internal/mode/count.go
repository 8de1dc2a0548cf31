package mode

import "math"

// maxRepeat caps command expansion so a pathological count prefix cannot
// flood the command stream.
const maxRepeat = 10000

// CountState tracks numeric count accumulation in Vim normal mode.
type CountState struct {
	// Value is the accumulated count value.
	Value int

	// Active indicates if a count is being accumulated.
	Active bool
}

// Reset clears the count state.
func (c *CountState) Reset() {
	c.Value = 0
	c.Active = false
}

// AccumulateDigit adds a digit to the count. Returns true if the digit was
// accepted. A leading '0' is not a count (it is the line-start motion).
func (c *CountState) AccumulateDigit(r rune) bool {
	if r < '0' || r > '9' {
		return false
	}

	digit := int(r - '0')
	if !c.Active && digit == 0 {
		return false
	}

	c.Active = true

	// Guard against integer overflow
	if c.Value > (math.MaxInt-digit)/10 {
		c.Value = math.MaxInt / 10
		return true
	}

	c.Value = c.Value*10 + digit
	return true
}

// Get returns the effective count (1 if no count was specified).
func (c *CountState) Get() int {
	if c.Value <= 0 {
		return 1
	}
	return c.Value
}

// Take returns the effective count capped for repetition and resets the
// state.
func (c *CountState) Take() int {
	n := c.Get()
	c.Reset()
	if n > maxRepeat {
		n = maxRepeat
	}
	return n
}

// IsCountStart returns true if the character could start a count.
// '0' cannot start a count; it is the line-start motion.
func IsCountStart(r rune) bool {
	return r >= '1' && r <= '9'
}

// IsCountDigit returns true if the character is a digit valid in a count.
func IsCountDigit(r rune) bool {
	return r >= '0' && r <= '9'
}
