package crypto

import (
	"bytes"
	"encoding/base64"
	"errors"
	"reflect"
	"strings"
	"testing"

	"golang.org/x/crypto/chacha20poly1305"

	"github.com/entitykit/go-entity-kit/models"
)

func testKey(b byte) []byte {
	return bytes.Repeat([]byte{b}, KeySize)
}

func TestEncryptDecrypt_RoundTrip(t *testing.T) {
	c := NewCredentialCipher()
	key := testKey(0x2A)

	payload := models.Credentials{
		"username": "a@b.com",
		"password": "secret123",
	}

	blob, err := c.Encrypt(payload, key)
	if err != nil {
		t.Fatalf("Encrypt error: %v", err)
	}

	got, err := c.Decrypt(blob, key)
	if err != nil {
		t.Fatalf("Decrypt error: %v", err)
	}

	if !reflect.DeepEqual(got, payload) {
		t.Fatalf("round trip mismatch: got %v, want %v", got, payload)
	}
}

func TestEncryptDecrypt_LargePayload(t *testing.T) {
	c := NewCredentialCipher()
	key := testKey(0x11)

	// 20 pairs, values up to 10 KB.
	payload := models.Credentials{}
	big := strings.Repeat("x", 10*1024)
	for r := 'a'; r < 'a'+20; r++ {
		payload[string(r)] = big
	}

	blob, err := c.Encrypt(payload, key)
	if err != nil {
		t.Fatalf("Encrypt error: %v", err)
	}

	got, err := c.Decrypt(blob, key)
	if err != nil {
		t.Fatalf("Decrypt error: %v", err)
	}

	if !reflect.DeepEqual(got, payload) {
		t.Fatalf("large payload round trip mismatch")
	}
}

func TestEncryptDecrypt_EmptyPayload(t *testing.T) {
	c := NewCredentialCipher()
	key := testKey(0x07)

	blob, err := c.Encrypt(models.Credentials{}, key)
	if err != nil {
		t.Fatalf("Encrypt error: %v", err)
	}

	got, err := c.Decrypt(blob, key)
	if err != nil {
		t.Fatalf("Decrypt error: %v", err)
	}

	if len(got) != 0 {
		t.Fatalf("expected empty payload, got %v", got)
	}
}

func TestEncrypt_BlobShape(t *testing.T) {
	c := NewCredentialCipher()
	key := testKey(0x2A)

	blob, err := c.Encrypt(models.Credentials{"k": "v"}, key)
	if err != nil {
		t.Fatalf("Encrypt error: %v", err)
	}

	raw, err := base64.StdEncoding.DecodeString(blob)
	if err != nil {
		t.Fatalf("blob is not valid base64: %v", err)
	}
	if len(raw) < chacha20poly1305.NonceSizeX+chacha20poly1305.Overhead {
		t.Fatalf("blob too short: %d bytes", len(raw))
	}
}

func TestEncrypt_InvalidKeyLengths(t *testing.T) {
	c := NewCredentialCipher()
	payload := models.Credentials{"k": "v"}

	for _, n := range []int{0, 16, 31, 33} {
		key := bytes.Repeat([]byte{0x01}, n)
		if _, err := c.Encrypt(payload, key); !errors.Is(err, ErrInvalidKeyLength) {
			t.Errorf("key length %d: expected ErrInvalidKeyLength, got %v", n, err)
		}
	}
}

func TestDecrypt_InvalidKeyLengths(t *testing.T) {
	c := NewCredentialCipher()
	key := testKey(0x2A)

	blob, err := c.Encrypt(models.Credentials{"k": "v"}, key)
	if err != nil {
		t.Fatalf("Encrypt error: %v", err)
	}

	for _, n := range []int{0, 16, 31, 33} {
		short := bytes.Repeat([]byte{0x01}, n)
		if _, err := c.Decrypt(blob, short); !errors.Is(err, ErrInvalidKeyLength) {
			t.Errorf("key length %d: expected ErrInvalidKeyLength, got %v", n, err)
		}
	}
}

func TestDecrypt_WrongKeyFailsClosed(t *testing.T) {
	c := NewCredentialCipher()
	key := testKey(0x2A)
	wrongKey := testKey(0x2B)

	blob, err := c.Encrypt(models.Credentials{"username": "a@b.com"}, key)
	if err != nil {
		t.Fatalf("Encrypt error: %v", err)
	}

	payload, err := c.Decrypt(blob, wrongKey)
	if !errors.Is(err, ErrAuthenticationFailed) {
		t.Fatalf("expected ErrAuthenticationFailed, got %v", err)
	}
	if payload != nil {
		t.Fatalf("expected no partial payload, got %v", payload)
	}
}

func TestDecrypt_AnySingleByteCorruptionFails(t *testing.T) {
	c := NewCredentialCipher()
	key := testKey(0x2A)

	blob, err := c.Encrypt(models.Credentials{"k": "v"}, key)
	if err != nil {
		t.Fatalf("Encrypt error: %v", err)
	}

	raw, err := base64.StdEncoding.DecodeString(blob)
	if err != nil {
		t.Fatalf("decode blob: %v", err)
	}

	// Flipping any single byte — nonce, ciphertext, or tag — must fail.
	for i := range raw {
		corrupted := make([]byte, len(raw))
		copy(corrupted, raw)
		corrupted[i] ^= 0xFF

		_, err := c.Decrypt(base64.StdEncoding.EncodeToString(corrupted), key)
		if !errors.Is(err, ErrAuthenticationFailed) {
			t.Fatalf("byte %d: expected ErrAuthenticationFailed, got %v", i, err)
		}
	}
}

func TestDecrypt_NotBase64(t *testing.T) {
	c := NewCredentialCipher()

	_, err := c.Decrypt("%%% not base64 %%%", testKey(0x2A))
	if !errors.Is(err, ErrDecoding) {
		t.Fatalf("expected ErrDecoding, got %v", err)
	}
}

func TestDecrypt_TooShortBlob(t *testing.T) {
	c := NewCredentialCipher()

	short := base64.StdEncoding.EncodeToString(bytes.Repeat([]byte{0xAB}, 10))
	_, err := c.Decrypt(short, testKey(0x2A))
	if !errors.Is(err, ErrMalformedBlob) {
		t.Fatalf("expected ErrMalformedBlob, got %v", err)
	}
}

func TestEncrypt_NonceUniqueness(t *testing.T) {
	c := NewCredentialCipher()
	key := testKey(0x2A)
	payload := models.Credentials{"username": "a@b.com", "password": "secret123"}

	seen := make(map[string]struct{}, 1000)
	for i := 0; i < 1000; i++ {
		blob, err := c.Encrypt(payload, key)
		if err != nil {
			t.Fatalf("trial %d: Encrypt error: %v", i, err)
		}
		if _, dup := seen[blob]; dup {
			t.Fatalf("trial %d: duplicate blob for identical payload and key", i)
		}
		seen[blob] = struct{}{}
	}
}
