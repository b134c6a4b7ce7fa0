package generator

import "testing"

func TestRoman(t *testing.T) {
	cases := []struct {
		in   int
		want string
	}{
		{1, "I"},
		{2, "II"},
		{4, "IV"},
		{9, "IX"},
		{14, "XIV"},
		{40, "XL"},
		{90, "XC"},
		{400, "CD"},
		{1994, "MCMXCIV"},
		{3999, "MMMCMXCIX"},
		{0, "I"},
		{-3, "I"},
	}
	for _, c := range cases {
		if got := Roman(c.in); got != c.want {
			t.Errorf("Roman(%d) = %q, want %q", c.in, got, c.want)
		}
	}
}
