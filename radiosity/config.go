package radiosity

import (
	"fmt"
	"log"
	"math"
)

// Config holds the accuracy/cost knobs of a hemicube.
type Config struct {
	// Length of one side of the front face. The hemicube is SideLength/2 tall.
	SideLength float64
	// Side length of a single square pixel.
	PixelPitch float64
	// Distance under which two coordinates are treated as equal.
	Tolerance float64
	// Destination for per-query diagnostics. Defaults to log.Default().
	Logger *log.Logger
}

// DefaultConfig gives a 0.5 hemicube with 200x200 pixels on the front face.
func DefaultConfig() Config {
	return Config{
		SideLength: 0.5,
		PixelPitch: 0.0025,
		Tolerance:  2.5e-7,
	}
}

// Validate checks that the parameters produce a regular grid on every face.
//
// The side faces are half as tall as they are wide, so SideLength/PixelPitch must be an even integer.
func (c Config) Validate() error {
	if c.SideLength <= 0 {
		return fmt.Errorf("%w: side length %g must be positive", ErrInvalidConfig, c.SideLength)
	}
	if c.PixelPitch <= 0 {
		return fmt.Errorf("%w: pixel pitch %g must be positive", ErrInvalidConfig, c.PixelPitch)
	}
	if c.Tolerance <= 0 || c.Tolerance >= c.PixelPitch/4 {
		return fmt.Errorf("%w: tolerance %g must be in (0, pixel pitch/4)", ErrInvalidConfig, c.Tolerance)
	}
	r := c.SideLength / c.PixelPitch
	n := math.Round(r)
	if math.Abs(r-n) > 1e-6*r || n < 4 || int(n)%2 != 0 {
		return fmt.Errorf("%w: side length / pixel pitch = %g, want an even integer of at least 4", ErrInvalidConfig, r)
	}
	return nil
}

// pixelsPerSide is the number of pixels along one edge of the front face.
func (c Config) pixelsPerSide() int {
	return int(math.Round(c.SideLength / c.PixelPitch))
}

func (c Config) logger() *log.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return log.Default()
}
