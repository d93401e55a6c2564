package auth

import (
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestPasswordHasher_HashAndVerify(t *testing.T) {
	hasher := NewPasswordHasher(bcrypt.MinCost)

	tests := []struct {
		name     string
		password string
	}{
		{name: "simple password", password: "secret1"},
		{name: "complex password", password: "P@ssw0rd!#$%^&*()"},
		{name: "unicode password", password: "密码123456"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hash, err := hasher.Hash(tt.password)
			if err != nil {
				t.Fatalf("Hash() error = %v", err)
			}
			if hash == tt.password {
				t.Error("Hash() returned the password unchanged")
			}
			if !strings.HasPrefix(hash, "$2") {
				t.Errorf("Hash() = %q, want a bcrypt hash", hash)
			}
			if !hasher.Verify(tt.password, hash) {
				t.Error("Verify() = false for the correct password")
			}
			if hasher.Verify(tt.password+"x", hash) {
				t.Error("Verify() = true for a wrong password")
			}
		})
	}
}

func TestPasswordHasher_SaltsHashes(t *testing.T) {
	hasher := NewPasswordHasher(bcrypt.MinCost)

	first, err := hasher.Hash("secret1")
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}
	second, err := hasher.Hash("secret1")
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}
	if first == second {
		t.Error("Hash() produced identical hashes for the same password")
	}
}

func TestPasswordHasher_VerifyRejectsGarbage(t *testing.T) {
	hasher := NewPasswordHasher(bcrypt.MinCost)

	if hasher.Verify("secret1", "not-a-hash") {
		t.Error("Verify() = true against a non-bcrypt value")
	}
}

func TestNewPasswordHasher_CostOutOfRange(t *testing.T) {
	tests := []struct {
		cost int
		want int
	}{
		{cost: 0, want: bcrypt.DefaultCost},
		{cost: bcrypt.MaxCost + 1, want: bcrypt.DefaultCost},
		{cost: bcrypt.MinCost, want: bcrypt.MinCost},
		{cost: 12, want: 12},
	}

	for _, tt := range tests {
		if got := NewPasswordHasher(tt.cost).cost; got != tt.want {
			t.Errorf("NewPasswordHasher(%d).cost = %d, want %d", tt.cost, got, tt.want)
		}
	}
}

func TestPasswordHasher_LongPasswords(t *testing.T) {
	hasher := NewPasswordHasher(bcrypt.MinCost)
	prefix := strings.Repeat("a", 72)

	tests := []struct {
		name     string
		password string
		other    string
	}{
		{name: "just over the bcrypt limit", password: prefix + "b", other: prefix + "c"},
		{name: "very long", password: strings.Repeat("secret", 100), other: strings.Repeat("secret", 99)},
		{name: "multibyte past the limit", password: strings.Repeat("密", 30), other: strings.Repeat("密", 29)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hash, err := hasher.Hash(tt.password)
			if err != nil {
				t.Fatalf("Hash() error = %v", err)
			}
			if !hasher.Verify(tt.password, hash) {
				t.Error("Verify() = false for the correct password")
			}
			if hasher.Verify(tt.other, hash) {
				t.Error("Verify() = true for a password sharing a long prefix")
			}
		})
	}
}
