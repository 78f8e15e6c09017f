// Package pass renders encrypted QR registration passes. The QR payload is
// an AES-CFB encrypted JSON blob, so a scanned pass is opaque without the
// shared secret.
package pass

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"io"
	"time"

	"github.com/skip2/go-qrcode"
)

// Registration is the payload embedded in a pass QR code.
type Registration struct {
	AttendeeID int64     `json:"attendeeId"`
	EventID    int64     `json:"eventId"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	IssuedAt   time.Time `json:"issuedAt"`
}

type Generator struct {
	secret []byte
}

func NewGenerator(secret string) *Generator {
	hashed := sha256.Sum256([]byte(secret)) // normalize to 32 bytes
	return &Generator{secret: hashed[:]}
}

// GenerateQR returns a PNG-encoded QR image for the registration.
func (g *Generator) GenerateQR(reg Registration) ([]byte, error) {
	data, err := json.Marshal(reg)
	if err != nil {
		return nil, err
	}

	encrypted, err := encryptAES(data, g.secret)
	if err != nil {
		return nil, err
	}

	return qrcode.Encode(encrypted, qrcode.Medium, 256)
}

// Decrypt recovers the registration from a scanned pass payload.
func (g *Generator) Decrypt(encoded string) (*Registration, error) {
	raw, err := base64.URLEncoding.DecodeString(encoded)
	if err != nil {
		return nil, err
	}
	if len(raw) < aes.BlockSize {
		return nil, errors.New("pass payload too short")
	}

	block, err := aes.NewCipher(g.secret)
	if err != nil {
		return nil, err
	}

	iv := raw[:aes.BlockSize]
	data := make([]byte, len(raw)-aes.BlockSize)
	stream := cipher.NewCFBDecrypter(block, iv)
	stream.XORKeyStream(data, raw[aes.BlockSize:])

	var reg Registration
	if err := json.Unmarshal(data, &reg); err != nil {
		return nil, err
	}
	return &reg, nil
}

func encryptAES(data []byte, key []byte) (string, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return "", err
	}

	ciphertext := make([]byte, aes.BlockSize+len(data))
	iv := ciphertext[:aes.BlockSize]

	if _, err := io.ReadFull(rand.Reader, iv); err != nil {
		return "", err
	}

	stream := cipher.NewCFBEncrypter(block, iv)
	stream.XORKeyStream(ciphertext[aes.BlockSize:], data)

	return base64.URLEncoding.EncodeToString(ciphertext), nil
}
