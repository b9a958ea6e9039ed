package kernel

import (
	"crypto/sha256"
	"encoding/hex"
	"testing"
)

func TestPayload(t *testing.T) {
	data := Payload()
	if len(data) != payloadSize {
		t.Fatalf("len(Payload()) = %d, want %d", len(data), payloadSize)
	}
	for _, i := range []int{0, 1, 255, 256, 9999} {
		if data[i] != byte(i%256) {
			t.Errorf("Payload()[%d] = %d, want %d", i, data[i], i%256)
		}
	}

	// Callers own their copy.
	data[0] = 0xFF
	if Payload()[0] != 0 {
		t.Error("Payload() returned shared storage")
	}
}

func TestCipherKey(t *testing.T) {
	key := CipherKey()
	if len(key) != 32 {
		t.Fatalf("len(CipherKey()) = %d, want 32", len(key))
	}
	if key[0] != 0 || key[31] != 31 {
		t.Errorf("CipherKey() = %x, want 00..1f", key)
	}
}

func TestSHA256Digest(t *testing.T) {
	const want = "3421d9aa928a94decb191ab8e8b76c1d8434bf602c5b3ba10ad42f54c8199c34"
	if got := hex.EncodeToString(SHA256Digest()); got != want {
		t.Errorf("SHA256Digest() = %s, want %s", got, want)
	}
}

func TestAESCiphertext(t *testing.T) {
	out := AESCiphertext()

	if len(out) != payloadSize+16 {
		t.Fatalf("len(AESCiphertext()) = %d, want %d", len(out), payloadSize+16)
	}

	tests := []struct {
		name string
		got  []byte
		want string
	}{
		{"first block", out[:16], "0ebdb7ddb12985ba00a1a33e14219f96"},
		{"tag", out[len(out)-16:], "2233149d051c06091f3d9632fe4ee43f"},
	}
	for _, tt := range tests {
		if got := hex.EncodeToString(tt.got); got != tt.want {
			t.Errorf("%s = %s, want %s", tt.name, got, tt.want)
		}
	}

	sum := sha256.Sum256(out)
	const wantSum = "550d9448893fa76da75be1923d5ecc30c056c3916726435f392e03eed6c35dda"
	if got := hex.EncodeToString(sum[:]); got != wantSum {
		t.Errorf("sha256(AESCiphertext()) = %s, want %s", got, wantSum)
	}
}

func TestCryptoKernels_DoNotPanic(t *testing.T) {
	SHA256()
	AESEncrypt()
}
