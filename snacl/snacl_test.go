package snacl

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCryptoKeyEncryptDecrypt(t *testing.T) {
	cryptoKey, err := GenerateCryptoKey()
	assert.Nil(t, err)

	msg := []byte("Hello World")
	encrypted, err := cryptoKey.Encrypt(msg)
	assert.Nil(t, err)
	assert.NotEqual(t, msg, encrypted)

	decrypted, err := cryptoKey.Decrypt(encrypted)
	assert.Nil(t, err)
	assert.Equal(t, msg, decrypted)
}

func TestCryptoKeyDecryptMalformed(t *testing.T) {
	cryptoKey, err := GenerateCryptoKey()
	assert.Nil(t, err)

	_, err = cryptoKey.Decrypt([]byte("too short"))
	assert.Equal(t, ErrMalformed, err)
}

func TestSecretKeyDerive(t *testing.T) {
	password := []byte("sikrit")
	key, err := NewSecretKey(&password, DefaultN, DefaultR, DefaultP)
	assert.Nil(t, err)

	msg := []byte("Hello World")
	encrypted, err := key.Encrypt(msg)
	assert.Nil(t, err)

	// A fresh key restored from the marshalled parameters and the same
	// password must decrypt what the original encrypted.
	var restored SecretKey
	err = restored.Unmarshal(key.Marshal())
	assert.Nil(t, err)
	err = restored.DeriveKey(&password)
	assert.Nil(t, err)

	decrypted, err := restored.Decrypt(encrypted)
	assert.Nil(t, err)
	assert.Equal(t, msg, decrypted)
}

func TestSecretKeyWrongPassword(t *testing.T) {
	password := []byte("sikrit")
	key, err := NewSecretKey(&password, DefaultN, DefaultR, DefaultP)
	assert.Nil(t, err)

	var restored SecretKey
	err = restored.Unmarshal(key.Marshal())
	assert.Nil(t, err)

	wrong := []byte("wrong")
	err = restored.DeriveKey(&wrong)
	assert.Equal(t, ErrInvalidPassword, err)
}

func TestSecretKeyUnmarshalMalformed(t *testing.T) {
	var restored SecretKey
	err := restored.Unmarshal([]byte{0x01, 0x02})
	assert.Equal(t, ErrMalformed, err)
}
