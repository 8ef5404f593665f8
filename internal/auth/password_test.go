package auth

import (
	"errors"
	"strings"
	"testing"
)

func TestHashAndCheckPassword_Success(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword("correct horse battery staple")
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	if hash == "correct horse battery staple" {
		t.Fatalf("hash equals plaintext")
	}
	if !CheckPassword("correct horse battery staple", hash) {
		t.Fatalf("CheckPassword rejected the original password")
	}
}

func TestHashPassword_AtByteLimit(t *testing.T) {
	t.Parallel()

	password := strings.Repeat("a", MaxPasswordBytes)
	hash, err := HashPassword(password)
	if err != nil {
		t.Fatalf("HashPassword error at limit: %v", err)
	}
	if !CheckPassword(password, hash) {
		t.Fatalf("CheckPassword rejected a %d byte password", MaxPasswordBytes)
	}
}

func TestHashPassword_TooLong(t *testing.T) {
	t.Parallel()

	_, err := HashPassword(strings.Repeat("a", MaxPasswordBytes+1))
	if !errors.Is(err, ErrPasswordTooLong) {
		t.Fatalf("expected ErrPasswordTooLong, got %v", err)
	}
}

func TestHashPassword_CountsBytesNotRunes(t *testing.T) {
	t.Parallel()

	// 37 two-byte runes: 37 characters but 74 bytes.
	_, err := HashPassword(strings.Repeat("é", 37))
	if !errors.Is(err, ErrPasswordTooLong) {
		t.Fatalf("expected ErrPasswordTooLong for multibyte input, got %v", err)
	}
}

func TestCheckPassword_WrongPassword(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword("right")
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	if CheckPassword("wrong", hash) {
		t.Fatalf("CheckPassword accepted the wrong password")
	}
}

func TestCheckPassword_MalformedHash(t *testing.T) {
	t.Parallel()

	if CheckPassword("anything", "not-a-bcrypt-hash") {
		t.Fatalf("CheckPassword accepted a malformed hash")
	}
}
