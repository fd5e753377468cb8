package vm

import (
	"encoding/binary"
	"fmt"
	"os"
)

// Image is a program ready to be copied into memory at Origin.
type Image struct {
	Origin Word
	Words  []Word
}

// ParseImage decodes an LC-3 object file: a big endian origin followed by
// big endian words.
func ParseImage(data []byte) (Image, error) {
	if len(data) < 2 {
		return Image{}, ErrImageTooShort
	}
	if len(data)%2 != 0 {
		return Image{}, ErrImageOddLength
	}

	img := Image{Origin: binary.BigEndian.Uint16(data)}
	n := (len(data) - 2) / 2
	if int(img.Origin)+n > MemorySize {
		return Image{}, fmt.Errorf("%w: %d words at 0x%04x", ErrImageTooLarge, n, img.Origin)
	}

	img.Words = make([]Word, n)
	for i := range img.Words {
		img.Words[i] = binary.BigEndian.Uint16(data[2+2*i:])
	}
	return img, nil
}

// ReadImageFile reads and parses the object file at path.
func ReadImageFile(path string) (Image, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Image{}, err
	}
	img, err := ParseImage(data)
	if err != nil {
		return Image{}, fmt.Errorf("%v: %w", path, err)
	}
	return img, nil
}
