package entity

import (
	"encoding/json"
	"testing"
)

func TestRecipientListAcceptsStringOrArray(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"single string", `"ana@example.com"`, []string{"ana@example.com"}},
		{"array", `["a@example.com","b@example.com"]`, []string{"a@example.com", "b@example.com"}},
		{"empty string", `""`, nil},
		{"empty array", `[]`, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got RecipientList
			if err := json.Unmarshal([]byte(tt.in), &got); err != nil {
				t.Fatalf("Unmarshal(%s): %v", tt.in, err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("len = %d, want %d", len(got), len(tt.want))
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("got[%d] = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}

	var got RecipientList
	if err := json.Unmarshal([]byte(`42`), &got); err == nil {
		t.Error("expected error for numeric payload")
	}
}
