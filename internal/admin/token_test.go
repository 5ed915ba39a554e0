package admin

import "testing"

func TestTokenRoundTrip(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret-key-12345")

	token, err := GenerateToken()
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}

	if err := ValidateToken(token); err != nil {
		t.Fatalf("freshly minted token did not validate: %v", err)
	}
}

func TestTokenRequiresSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	if _, err := GenerateToken(); err == nil {
		t.Fatalf("expected an error without JWT_SECRET")
	}
	if err := ValidateToken("whatever"); err == nil {
		t.Fatalf("expected validation to fail without JWT_SECRET")
	}
}

func TestTokenRejectsTampering(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret-key-12345")

	token, err := GenerateToken()
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}

	t.Setenv("JWT_SECRET", "a-different-secret")
	if err := ValidateToken(token); err == nil {
		t.Fatalf("token signed with another secret must not validate")
	}
}
