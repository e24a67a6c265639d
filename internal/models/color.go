package models

import "fmt"

type Color struct {
	R, G, B uint8
}

// Hex renders the color the way the map layer expects it, e.g. "#FF7F00".
func (c Color) Hex() string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

func (c Color) String() string {
	return c.Hex()
}
