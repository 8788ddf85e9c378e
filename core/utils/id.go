package utils

import (
	gonanoid "github.com/matoous/go-nanoid/v2"
)

const idAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

// GenerateID returns a short url-safe identifier.
func GenerateID() string {
	id, err := gonanoid.Generate(idAlphabet, 7)
	if err != nil {
		return ""
	}
	return id
}

// GenerateCode returns a human-shareable reference code, upper case without
// ambiguous characters.
func GenerateCode() string {
	code, err := gonanoid.Generate("0123456789ACDEFGHJKLMNPQRTUVWXYZ", 10)
	if err != nil {
		return ""
	}
	return code
}
