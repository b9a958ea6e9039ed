package fingerprint

import "testing"

func TestOf(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want string
	}{
		{"empty", nil, "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"},
		{"abc", []byte("abc"), "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Of(tt.data); got != tt.want {
				t.Errorf("Of() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestEqual(t *testing.T) {
	const abc = "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad"

	if !Equal(Of([]byte("abc")), abc) {
		t.Error("Equal() = false for the correct fingerprint")
	}
	if !Equal(abc, "BA7816BF8F01CFEA414140DE5DAE2223B00361A396177A9CB410FF61F20015AD") {
		t.Error("Equal() should ignore case")
	}
	if Equal(Of([]byte("abd")), abc) {
		t.Error("Equal() = true for different data")
	}
	if Equal(abc, abc[:10]) {
		t.Error("Equal() = true for a truncated fingerprint")
	}
}

func TestShort(t *testing.T) {
	if got := Short("0123456789abcdef"); got != "0123456789ab" {
		t.Errorf("Short() = %s, want 0123456789ab", got)
	}
	if got := Short("abc"); got != "abc" {
		t.Errorf("Short() = %s, want abc", got)
	}
}

func TestHex(t *testing.T) {
	if got := Hex([]byte{0x00, 0xab, 0xff}); got != "00abff" {
		t.Errorf("Hex() = %s, want 00abff", got)
	}
}
