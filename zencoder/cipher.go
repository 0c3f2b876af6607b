package zencoder

import (
	"crypto/aes"
	"crypto/cipher"
	cryptorand "crypto/rand"
	"crypto/sha256"

	"golang.org/x/crypto/pbkdf2"

	"github.com/wjx/zencoder/bitstream"
	"github.com/wjx/zencoder/zerrs"
)

const (
	aesBlockSize = aes.BlockSize // 16 bytes; also the CBC IV length.
	pbkdf2Iters  = 100000
)

// GenerateKey returns a random AES key of keyBytes length (16, 24, or 32
// for AES-128/192/256).
func GenerateKey(keyBytes int) ([]byte, error) {
	key := make([]byte, keyBytes)
	if _, err := cryptorand.Read(key); err != nil {
		return nil, zerrs.Wrap(err, "generating AES key")
	}
	return key, nil
}

// DeriveKey stretches a passphrase into a key of keyBytes length via
// PBKDF2-HMAC-SHA-256, for callers who'd rather remember a passphrase
// than manage a raw key file. salt should be unique per key and stored
// alongside the derived key's owner, not alongside the ciphertext.
func DeriveKey(passphrase string, salt []byte, keyBytes int) []byte {
	return pbkdf2.Key([]byte(passphrase), salt, pbkdf2Iters, keyBytes, sha256.New)
}

// EncodeCipher AES-CBC-encrypts payload under key with PKCS7 padding and
// a fresh random IV, prepends the IV to the ciphertext, and encodes the
// combined bytes through the partitioner exactly as EncodePlain would.
func (c *Codec) EncodeCipher(payload []byte, key []byte) (string, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return "", zerrs.Wrap(err, "constructing AES cipher")
	}

	iv := make([]byte, aesBlockSize)
	if _, err := cryptorand.Read(iv); err != nil {
		return "", zerrs.Wrap(err, "generating IV")
	}

	padded := pkcs7Pad(payload, aesBlockSize)
	cipherText := make([]byte, len(padded))
	cipher.NewCBCEncrypter(block, iv).CryptBlocks(cipherText, padded)

	combined := make([]byte, 0, len(iv)+len(cipherText))
	combined = append(combined, iv...)
	combined = append(combined, cipherText...)

	stream := bitstream.FromBytes(combined)
	words := c.partitioner.Encode(stream, nil)
	return joinWords(words), nil
}

// DecodeCipher reverses EncodeCipher: decode the word sequence back to
// bytes, split off the leading IV, and AES-CBC-decrypt the remainder
// under key.
func (c *Codec) DecodeCipher(cipherText string, key []byte) ([]byte, error) {
	words := splitWords(cipherText)
	stream, ok := c.partitioner.Decode(words)
	if !ok {
		return nil, zerrs.ErrDecodeUnknownWord
	}
	combined := stream.ToBytes()
	if len(combined) < aesBlockSize {
		return nil, zerrs.ErrCipherShortInput
	}
	iv, encrypted := combined[:aesBlockSize], combined[aesBlockSize:]

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, zerrs.Wrap(err, "constructing AES cipher")
	}
	if len(encrypted)%aesBlockSize != 0 {
		return nil, zerrs.Wrap(zerrs.ErrCipherShortInput, "ciphertext is not block-aligned")
	}

	plain := make([]byte, len(encrypted))
	cipher.NewCBCDecrypter(block, iv).CryptBlocks(plain, encrypted)
	return pkcs7Unpad(plain)
}

func pkcs7Pad(data []byte, blockSize int) []byte {
	padLen := blockSize - len(data)%blockSize
	padded := make([]byte, len(data)+padLen)
	copy(padded, data)
	for i := len(data); i < len(padded); i++ {
		padded[i] = byte(padLen)
	}
	return padded
}

func pkcs7Unpad(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, zerrs.Wrap(zerrs.ErrCipherShortInput, "empty plaintext")
	}
	padLen := int(data[len(data)-1])
	if padLen == 0 || padLen > len(data) || padLen > aesBlockSize {
		return nil, zerrs.Wrap(zerrs.ErrStoreCorrupt, "invalid PKCS7 padding")
	}
	return data[:len(data)-padLen], nil
}
