package utils

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"io"
	"strings"

	"golang.org/x/crypto/openpgp"
	"golang.org/x/crypto/openpgp/armor"
	"golang.org/x/crypto/openpgp/packet"
)

// PGPEncrypt шифрует персональные данные (номер Aadhar) с использованием PGP
func PGPEncrypt(data string, publicKey string) (string, error) {
	// Декодируем публичный ключ
	block, err := armor.Decode(strings.NewReader(publicKey))
	if err != nil {
		return "", fmt.Errorf("failed to decode public key: %v", err)
	}

	// Парсим публичный ключ
	entity, err := openpgp.ReadEntity(packet.NewReader(block.Body))
	if err != nil {
		return "", fmt.Errorf("failed to read entity: %v", err)
	}

	// Создаем буфер для зашифрованных данных
	var encryptedBuf strings.Builder
	armoredWriter, err := armor.Encode(&encryptedBuf, "PGP MESSAGE", nil)
	if err != nil {
		return "", fmt.Errorf("failed to create armored writer: %v", err)
	}

	// Шифруем данные
	plaintext, err := openpgp.Encrypt(armoredWriter, []*openpgp.Entity{entity}, nil, nil, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create encrypt writer: %v", err)
	}

	if _, err = plaintext.Write([]byte(data)); err != nil {
		return "", fmt.Errorf("failed to write data: %v", err)
	}

	if err = plaintext.Close(); err != nil {
		return "", fmt.Errorf("failed to close plaintext writer: %v", err)
	}

	if err = armoredWriter.Close(); err != nil {
		return "", fmt.Errorf("failed to close armored writer: %v", err)
	}

	return encryptedBuf.String(), nil
}

// PGPDecrypt расшифровывает персональные данные с использованием PGP
func PGPDecrypt(encryptedData string, privateKey string) (string, error) {
	// Декодируем приватный ключ
	block, err := armor.Decode(strings.NewReader(privateKey))
	if err != nil {
		return "", fmt.Errorf("failed to decode private key: %v", err)
	}

	// Парсим приватный ключ
	entity, err := openpgp.ReadEntity(packet.NewReader(block.Body))
	if err != nil {
		return "", fmt.Errorf("failed to read entity: %v", err)
	}

	// Создаем KeyRing
	keyRing := openpgp.EntityList{entity}

	// Декодируем зашифрованные данные
	encryptedBlock, err := armor.Decode(strings.NewReader(encryptedData))
	if err != nil {
		return "", fmt.Errorf("failed to decode encrypted data: %v", err)
	}

	// Расшифровываем данные
	md, err := openpgp.ReadMessage(encryptedBlock.Body, keyRing, nil, nil)
	if err != nil {
		return "", fmt.Errorf("failed to read message: %v", err)
	}

	decryptedData, err := io.ReadAll(md.UnverifiedBody)
	if err != nil {
		return "", fmt.Errorf("failed to read decrypted data: %v", err)
	}

	return string(decryptedData), nil
}

// GenerateHMAC создает HMAC для данных.
// Используется как детерминированный индекс по зашифрованному номеру Aadhar.
func GenerateHMAC(data string, key []byte) string {
	h := hmac.New(sha256.New, key)
	h.Write([]byte(data))
	return base64.StdEncoding.EncodeToString(h.Sum(nil))
}

// ValidateHMAC проверяет HMAC
func ValidateHMAC(data string, mac string, key []byte) bool {
	expected := GenerateHMAC(data, key)
	return hmac.Equal([]byte(mac), []byte(expected))
}

// GenerateRandomKey генерирует случайный ключ заданной длины
func GenerateRandomKey(length int) ([]byte, error) {
	key := make([]byte, length)
	if _, err := rand.Read(key); err != nil {
		return nil, fmt.Errorf("failed to generate random key: %v", err)
	}
	return key, nil
}
