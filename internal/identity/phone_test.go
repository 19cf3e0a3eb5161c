package identity

import "testing"

func TestCanonicalPhone(t *testing.T) {
	cases := []struct {
		raw  string
		want string
	}{
		{"+919000000000", "+919000000000"},
		{"9000000000", "+919000000000"},
		{"09000000000", "+919000000000"},
		{" 90 0000 0000 ", "+919000000000"},
		{"+91 90000 00000", "+919000000000"},
		{"90-0000-0000", "+919000000000"},
	}

	for _, tc := range cases {
		if got := CanonicalPhone(tc.raw, "91"); got != tc.want {
			t.Errorf("CanonicalPhone(%q) = %q, want %q", tc.raw, got, tc.want)
		}
	}
}

func TestCanonicalPhoneEmpty(t *testing.T) {
	if got := CanonicalPhone("  ", "91"); got != "" {
		t.Errorf("expected empty canonical phone, got %q", got)
	}
}
