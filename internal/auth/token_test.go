package auth

import "testing"

func TestMintOneTimeToken(t *testing.T) {
	first, err := MintOneTimeToken()
	if err != nil {
		t.Fatalf("unexpected error minting token: %v", err)
	}
	second, err := MintOneTimeToken()
	if err != nil {
		t.Fatalf("unexpected error minting token: %v", err)
	}
	if len(first) != oneTimeTokenBytes*2 {
		t.Fatalf("expected %d hex chars, got %d", oneTimeTokenBytes*2, len(first))
	}
	if first == second {
		t.Fatal("expected successive tokens to differ")
	}
}

func TestHashToken(t *testing.T) {
	tests := []struct {
		name    string
		token   string
		wantErr bool
	}{
		{name: "normal token", token: "abc123"},
		{name: "surrounding whitespace trimmed", token: "  abc123  "},
		{name: "empty token", token: "", wantErr: true},
		{name: "blank token", token: "   ", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := HashToken(tt.token)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(got) != 64 {
				t.Fatalf("expected 64 hex chars, got %d", len(got))
			}
		})
	}

	a, _ := HashToken("abc123")
	b, _ := HashToken("  abc123 ")
	if a != b {
		t.Fatal("expected trimmed token to hash identically")
	}
}
