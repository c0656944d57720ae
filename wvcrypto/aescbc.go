package wvcrypto

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"fmt"
)

// EncryptCBC PKCS#7-pads plaintext and encrypts it under key/iv with
// AES-128-CBC, as the protocol requires when wrapping a client
// identification for privacy-mode requests.
func EncryptCBC(key, iv, plaintext []byte) ([]byte, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("wvcrypto: aes cipher: %w", err)
	}
	padded := pkcs7Pad(plaintext, block.BlockSize())
	out := make([]byte, len(padded))
	cipher.NewCBCEncrypter(block, iv).CryptBlocks(out, padded)
	return out, nil
}

// DecryptCBC decrypts ciphertext under key/iv with AES-128-CBC and
// removes its PKCS#7 padding, as the protocol requires when unwrapping
// a license's content keys.
func DecryptCBC(key, iv, ciphertext []byte) ([]byte, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("wvcrypto: aes cipher: %w", err)
	}
	if len(ciphertext) == 0 || len(ciphertext)%block.BlockSize() != 0 {
		return nil, fmt.Errorf("wvcrypto: ciphertext is not a multiple of the block size")
	}
	out := make([]byte, len(ciphertext))
	cipher.NewCBCDecrypter(block, iv).CryptBlocks(out, ciphertext)
	return pkcs7Unpad(out, block.BlockSize())
}

func pkcs7Pad(data []byte, size int) []byte {
	padLen := size - len(data)%size
	padding := bytes.Repeat([]byte{byte(padLen)}, padLen)
	return append(append([]byte{}, data...), padding...)
}

func pkcs7Unpad(data []byte, size int) ([]byte, error) {
	n := len(data)
	if n == 0 || n%size != 0 {
		return nil, fmt.Errorf("wvcrypto: invalid padded length %d", n)
	}
	padLen := int(data[n-1])
	if padLen == 0 || padLen > size || padLen > n {
		return nil, fmt.Errorf("wvcrypto: invalid pkcs7 padding")
	}
	for _, b := range data[n-padLen:] {
		if int(b) != padLen {
			return nil, fmt.Errorf("wvcrypto: invalid pkcs7 padding")
		}
	}
	return data[:n-padLen], nil
}
