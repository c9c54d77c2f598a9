package phone

import "testing"

func TestNormalizeE164(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{"+16502530000", "+16502530000"},
		{"(650) 253-0000", "+16502530000"},
		{"650-253-0000", "+16502530000"},
		{" +16502530000 ", "+16502530000"},
		{"not a number", "not a number"},
		{"", ""},
	}

	for _, tc := range cases {
		if got := NormalizeE164(tc.input); got != tc.want {
			t.Errorf("NormalizeE164(%q) = %q, want %q", tc.input, got, tc.want)
		}
	}
}

func TestIsValid(t *testing.T) {
	if !IsValid("+16502530000") {
		t.Error("expected +16502530000 to be valid")
	}
	if IsValid("123") {
		t.Error("expected 123 to be invalid")
	}
	if IsValid("") {
		t.Error("expected empty input to be invalid")
	}
}
