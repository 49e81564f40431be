package spill

import (
	"encoding/binary"
	"fmt"

	"github.com/calvinalkan/leapsbounds/internal/bitset"
	"github.com/calvinalkan/leapsbounds/internal/search"
)

// Binary bucket-file format. Modeled on the teacher's cache_binary.go:
// a fixed magic + version header followed by a flat sequence of
// fixed-then-variable-length records. Not versioned beyond this one
// constant: scratch files are ephemeral and never read by a different
// build of the program.
const (
	fileMagic   = "LBC1"
	fileVersion = uint16(1)
	headerSize  = 4 + 2 + 4 + 4 // magic + version + n + count
)

// encodeBucket serializes an ordered bucket of candidates for a search
// over an alphabet of n symbols.
func encodeBucket(bucket []search.Candidate, n int) []byte {
	buf := make([]byte, headerSize)
	copy(buf[0:4], fileMagic)
	binary.BigEndian.PutUint16(buf[4:6], fileVersion)
	binary.BigEndian.PutUint32(buf[6:10], uint32(n))       //nolint:gosec // n is a small CLI-supplied int
	binary.BigEndian.PutUint32(buf[10:14], uint32(len(bucket))) //nolint:gosec // bucket length bounded by memory cap

	for _, c := range bucket {
		buf = appendCandidate(buf, c)
	}

	return buf
}

func appendCandidate(buf []byte, c search.Candidate) []byte {
	tail := c.Tail()

	var tailLenByte [1]byte
	tailLenByte[0] = byte(len(tail))
	buf = append(buf, tailLenByte[0])

	for _, symbol := range tail {
		buf = append(buf, byte(symbol)) //nolint:gosec // symbols are < n <= 255 in any practical run
	}

	var wastedBytes [4]byte
	binary.BigEndian.PutUint32(wastedBytes[:], uint32(c.WastedSymbols())) //nolint:gosec
	buf = append(buf, wastedBytes[:]...)

	packed := c.Permutations().Bytes()

	var lenBytes [4]byte
	binary.BigEndian.PutUint32(lenBytes[:], uint32(len(packed))) //nolint:gosec
	buf = append(buf, lenBytes[:]...)
	buf = append(buf, packed...)

	return buf
}

// decodeBucket deserializes a bucket file for an alphabet of n symbols,
// validating it was written by this program.
func decodeBucket(data []byte, n int) ([]search.Candidate, error) {
	if len(data) < headerSize {
		return nil, errFileTooSmall
	}

	if string(data[0:4]) != fileMagic {
		return nil, errInvalidMagic
	}

	version := binary.BigEndian.Uint16(data[4:6])
	if version != fileVersion {
		return nil, fmt.Errorf("%w: got %d, want %d", errVersionMismatch, version, fileVersion)
	}

	fileN := int(binary.BigEndian.Uint32(data[6:10]))
	if fileN != n {
		return nil, fmt.Errorf("%w: file was written for n=%d, reading as n=%d", errVersionMismatch, fileN, n)
	}

	count := int(binary.BigEndian.Uint32(data[10:14]))
	if count == 0 {
		return nil, errCandidateCountZero
	}

	maxValue := search.Factorial(n)
	offset := headerSize

	bucket := make([]search.Candidate, 0, count)

	for i := 0; i < count; i++ {
		c, next, err := readCandidate(data, offset, maxValue)
		if err != nil {
			return nil, err
		}

		bucket = append(bucket, c)
		offset = next
	}

	return bucket, nil
}

func readCandidate(data []byte, offset, maxValue int) (search.Candidate, int, error) {
	if offset >= len(data) {
		return search.Candidate{}, 0, errTruncatedRecord
	}

	tailLen := int(data[offset])
	offset++

	if offset+tailLen > len(data) {
		return search.Candidate{}, 0, errTruncatedRecord
	}

	tail := make([]int, tailLen)
	for i := 0; i < tailLen; i++ {
		tail[i] = int(data[offset+i])
	}

	offset += tailLen

	if offset+4 > len(data) {
		return search.Candidate{}, 0, errTruncatedRecord
	}

	wasted := int(binary.BigEndian.Uint32(data[offset : offset+4]))
	offset += 4

	if offset+4 > len(data) {
		return search.Candidate{}, 0, errTruncatedRecord
	}

	packedLen := int(binary.BigEndian.Uint32(data[offset : offset+4]))
	offset += 4

	if offset+packedLen > len(data) {
		return search.Candidate{}, 0, errTruncatedRecord
	}

	packed := data[offset : offset+packedLen]
	offset += packedLen

	permutations := bitset.FromBytes(maxValue, packed)

	return search.FromParts(permutations, tail, wasted), offset, nil
}
