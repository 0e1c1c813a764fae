package cutil

import (
	"encoding/hex"
	"math/rand/v2"
	"strconv"

	"github.com/google/uuid"
	"github.com/speps/go-hashids/v2"
)

// DefaultKeySize is the minimum key length used by GenerateKey when size
// is not positive.
const DefaultKeySize = 8

// NewUID returns a random UUID (version 4) as 32 lowercase hex characters.
func NewUID() string {
	u := uuid.New()
	return hex.EncodeToString(u[:])
}

// GenerateKey encodes value as a hashids string of at least size characters.
// The same value, salt and size always produce the same key.
func GenerateKey(value int, salt string, size int) (string, error) {
	if size <= 0 {
		size = DefaultKeySize
	}

	hd := hashids.NewData()
	hd.Salt = salt
	hd.MinLength = size

	h, err := hashids.NewWithData(hd)
	if err != nil {
		return "", Errorf(EINVALID, "hashids: %v", err)
	}

	key, err := h.Encode([]int{value})
	if err != nil {
		return "", Errorf(EINVALID, "hashids: %v", err)
	}
	return key, nil
}

// RandomKey is GenerateKey with a random value and salt.
func RandomKey(size int) (string, error) {
	salt := strconv.Itoa(rand.IntN(1000000))
	return GenerateKey(rand.IntN(1000000), salt, size)
}
