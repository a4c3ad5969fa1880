package model

import "encoding/binary"

// Uint64Key packs parts into a fixed-width little-endian key (8 bytes per part).
func Uint64Key(parts ...uint64) []byte {
	key := make([]byte, 8*len(parts))
	for i, p := range parts {
		binary.LittleEndian.PutUint64(key[i*8:], p)
	}
	return key
}

// CoordsKey packs a voxel/block position into a 12 byte key.
func CoordsKey(x, y, z int32) []byte {
	var key [12]byte
	binary.LittleEndian.PutUint32(key[0:4], uint32(x))
	binary.LittleEndian.PutUint32(key[4:8], uint32(y))
	binary.LittleEndian.PutUint32(key[8:12], uint32(z))
	return key[:]
}

// AppendCoords appends a position to an existing key, e.g. after a Uint64Key prefix
// holding a block data id.
func AppendCoords(key []byte, x, y, z int32) []byte {
	key = binary.LittleEndian.AppendUint32(key, uint32(x))
	key = binary.LittleEndian.AppendUint32(key, uint32(y))
	return binary.LittleEndian.AppendUint32(key, uint32(z))
}
