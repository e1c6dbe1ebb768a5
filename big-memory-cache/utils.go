package bigmemcache

import (
	"encoding/binary"
	"fmt"
)

func findNearestPowerOf2Num(n uint) uint {
	if (n & (n - 1)) == 0 {
		return n
	}
	k := uint(1)
	for (k << 1) < n {
		k <<= 1
	}
	return k
}

func (c *BigMemCache) encode(b *Blob) ([]byte, error) {
	/*
		type Blob struct {
			Version     int32
			Key         string
			Data        []byte
			CreatedTime int64
		}
	*/
	totalLen := 4 + // totalLen
		4 + // Version
		2 + len(b.Key) +
		4 + len(b.Data) +
		8 // CreatedTime
	raw := make([]byte, totalLen)

	pos := 0
	binary.LittleEndian.PutUint32(raw[pos:], uint32(totalLen))
	pos += 4

	binary.LittleEndian.PutUint32(raw[pos:], uint32(b.Version))
	pos += 4

	// 对于[]byte或string类型来说, 先存大小, 再存实际的字节
	binary.LittleEndian.PutUint16(raw[pos:], uint16(len(b.Key)))
	pos += 2
	copy(raw[pos:], b.Key)
	pos += len(b.Key)

	binary.LittleEndian.PutUint32(raw[pos:], uint32(len(b.Data)))
	pos += 4
	copy(raw[pos:], b.Data)
	pos += len(b.Data)

	binary.LittleEndian.PutUint64(raw[pos:], uint64(b.CreatedTime))
	pos += 8

	if pos != totalLen {
		return nil, fmt.Errorf("failed to encode blob, Pos(%v) != TotalLen(%v)", pos, totalLen)
	}

	return raw, nil
}

func (c *BigMemCache) decode(raw []byte) (*Blob, error) {
	totalLen := len(raw)
	if totalLen < 4+4+2+4+8 {
		return nil, fmt.Errorf("failed to decode blob, TotalLen(%v) is too short", totalLen)
	}

	pos := 0
	storedTotalLen := binary.LittleEndian.Uint32(raw[pos:])
	if storedTotalLen != uint32(totalLen) {
		return nil, fmt.Errorf("StoredTotalLen(%v) != TotalLen(%v)", storedTotalLen, totalLen)
	}
	pos += 4

	var b Blob

	b.Version = int32(binary.LittleEndian.Uint32(raw[pos:]))
	pos += 4

	keyLen := binary.LittleEndian.Uint16(raw[pos:])
	pos += 2
	if pos+int(keyLen)+4+8 > totalLen {
		return nil, fmt.Errorf("failed to decode blob, KeyLen(%v) overflows TotalLen(%v)", keyLen, totalLen)
	}
	b.Key = string(raw[pos : pos+int(keyLen)])
	pos += int(keyLen)

	dataLen := binary.LittleEndian.Uint32(raw[pos:])
	pos += 4
	if pos+int(dataLen)+8 != totalLen {
		return nil, fmt.Errorf("failed to decode blob, DataLen(%v) does not match TotalLen(%v)", dataLen, totalLen)
	}
	b.Data = raw[pos : pos+int(dataLen)]
	pos += int(dataLen)

	b.CreatedTime = int64(binary.LittleEndian.Uint64(raw[pos:]))
	pos += 8

	if pos != totalLen {
		return nil, fmt.Errorf("failed to decode blob, Pos(%v) != StoredTotalLen(%v)", pos, totalLen)
	}

	return &b, nil
}
