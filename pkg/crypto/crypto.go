package crypto

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
)

// Codec encrypts and decrypts sensitive fields (social media passwords)
// with AES-256-CBC. Tokens are stored as "ivhex:cipherhex" so a stored
// value can be recognized as encrypted by the presence of the separator.
type Codec struct {
	key []byte
}

// NewCodec creates a Codec from a 64-character hex key (32 bytes).
func NewCodec(hexKey string) (*Codec, error) {
	key, err := hex.DecodeString(hexKey)
	if err != nil {
		return nil, fmt.Errorf("invalid encryption key: %w", err)
	}
	if len(key) != 32 {
		return nil, fmt.Errorf("encryption key must be 32 bytes, got %d", len(key))
	}
	return &Codec{key: key}, nil
}

// Encrypt returns the token form of plaintext. Empty input encrypts to "".
func (c *Codec) Encrypt(plaintext string) string {
	if plaintext == "" {
		return ""
	}

	block, err := aes.NewCipher(c.key)
	if err != nil {
		return ""
	}

	iv := make([]byte, aes.BlockSize)
	if _, err := rand.Read(iv); err != nil {
		return ""
	}

	padded := pkcs7Pad([]byte(plaintext), aes.BlockSize)
	ciphertext := make([]byte, len(padded))
	cipher.NewCBCEncrypter(block, iv).CryptBlocks(ciphertext, padded)

	return hex.EncodeToString(iv) + ":" + hex.EncodeToString(ciphertext)
}

// Decrypt reverses Encrypt. Empty or malformed tokens decrypt to "" rather
// than returning an error, so a bad stored value never fails a read.
func (c *Codec) Decrypt(token string) string {
	if token == "" {
		return ""
	}

	parts := strings.Split(token, ":")
	if len(parts) != 2 {
		return ""
	}

	iv, err := hex.DecodeString(parts[0])
	if err != nil || len(iv) != aes.BlockSize {
		return ""
	}
	ciphertext, err := hex.DecodeString(parts[1])
	if err != nil || len(ciphertext) == 0 || len(ciphertext)%aes.BlockSize != 0 {
		return ""
	}

	block, err := aes.NewCipher(c.key)
	if err != nil {
		return ""
	}

	plaintext := make([]byte, len(ciphertext))
	cipher.NewCBCDecrypter(block, iv).CryptBlocks(plaintext, ciphertext)

	unpadded, err := pkcs7Unpad(plaintext, aes.BlockSize)
	if err != nil {
		return ""
	}
	return string(unpadded)
}

// IsEncrypted reports whether a stored value already carries the token
// separator, so write paths can skip double encryption.
func IsEncrypted(value string) bool {
	return strings.Contains(value, ":")
}

func pkcs7Pad(data []byte, blockSize int) []byte {
	padding := blockSize - len(data)%blockSize
	return append(data, bytes.Repeat([]byte{byte(padding)}, padding)...)
}

func pkcs7Unpad(data []byte, blockSize int) ([]byte, error) {
	if len(data) == 0 || len(data)%blockSize != 0 {
		return nil, fmt.Errorf("invalid padded length %d", len(data))
	}
	padding := int(data[len(data)-1])
	if padding == 0 || padding > blockSize {
		return nil, fmt.Errorf("invalid padding byte %d", padding)
	}
	for _, b := range data[len(data)-padding:] {
		if int(b) != padding {
			return nil, fmt.Errorf("inconsistent padding")
		}
	}
	return data[:len(data)-padding], nil
}
