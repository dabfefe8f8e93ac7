package config

import (
	"encoding/binary"
	"fmt"

	"golang.org/x/image/font/sfnt"
)

// CheckTrueType reports whether data is a font the PDF engine can embed: a
// well-formed sfnt with TrueType outlines. CFF-flavoured OpenType and font
// collections are rejected.
func CheckTrueType(data []byte) error {
	if len(data) < 4 {
		return fmt.Errorf("not a TrueType font: %d bytes", len(data))
	}
	switch tag := binary.BigEndian.Uint32(data); tag {
	case 0x00010000, 0x74727565: // version 1.0, "true"
	case 0x4F54544F: // "OTTO"
		return fmt.Errorf("OpenType fonts with CFF outlines are not supported")
	case 0x74746366: // "ttcf"
		return fmt.Errorf("font collections are not supported")
	default:
		return fmt.Errorf("not a TrueType font: tag %#08x", tag)
	}
	if _, err := sfnt.Parse(data); err != nil {
		return fmt.Errorf("not a TrueType font: %v", err)
	}
	return nil
}
