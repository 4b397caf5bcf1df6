package thai

import "testing"

func TestWords(t *testing.T) {
	tests := []struct {
		n    int
		want string
	}{
		{0, "ศูนย์"},
		{1, "หนึ่ง"},
		{5, "ห้า"},
		{10, "สิบ"},
		{11, "สิบเอ็ด"},
		{20, "ยี่สิบ"},
		{21, "ยี่สิบเอ็ด"},
		{35, "สามสิบห้า"},
		{100, "หนึ่งร้อย"},
		{101, "หนึ่งร้อยเอ็ด"},
		{111, "หนึ่งร้อยสิบเอ็ด"},
		{2048, "สองพันสี่สิบแปด"},
		{10000, "หนึ่งหมื่น"},
		{100000, "หนึ่งแสน"},
		{1000000, "หนึ่งล้าน"},
		{1000001, "หนึ่งล้านหนึ่ง"},
		{2500000, "สองล้านห้าแสน"},
		{9999999, "เก้าล้านเก้าแสนเก้าหมื่นเก้าพันเก้าร้อยเก้าสิบเก้า"},
	}

	for _, tt := range tests {
		if got := Words(tt.n); got != tt.want {
			t.Errorf("Words(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}

func TestWordsOutOfRange(t *testing.T) {
	// Out-of-range values fall back to the decimal string.
	if got := Words(-5); got != "-5" {
		t.Errorf("Words(-5) = %q, want %q", got, "-5")
	}
	if got := Words(10000000); got != "10000000" {
		t.Errorf("Words(10000000) = %q, want %q", got, "10000000")
	}
}
