package replay

import (
	"encoding/hex"
	"errors"
	"testing"
	"time"

	"github.com/vmihailenco/msgpack/v5"
	"golang.org/x/crypto/blake2b"
)

func TestRecorderSnapshot(t *testing.T) {
	r := NewRecorder(2)
	for _, m := range []uint16{0, 1, 16, 17, 4} {
		r.Record(m)
	}
	if r.Len() != 5 || r.Frame(2) != 16 {
		t.Fatalf("expected 5 frames with 16 at index 2, got len=%d frame=%d", r.Len(), r.Frame(2))
	}
	if r.Frame(9) != 0 {
		t.Error("expected zero outside the recording")
	}

	rp := r.Snapshot("stage1.lua", 16*time.Millisecond)
	r.Record(99)
	if len(rp.Frames) != 5 {
		t.Errorf("snapshot must not see later frames, got %d", len(rp.Frames))
	}
	r.Reset()
	if r.Len() != 0 {
		t.Errorf("expected empty recorder after reset, got %d", r.Len())
	}
}

func TestEncodeDecode(t *testing.T) {
	r := NewRecorder(8)
	r.Record(3)
	r.Record(0)
	r.Record(1 << 7)
	b, err := Encode(r.Snapshot("stage1.lua", 16*time.Millisecond))
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	rp, err := Decode(b)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if rp.Stage != "stage1.lua" || rp.TickRate != 16*time.Millisecond || len(rp.Frames) != 3 || rp.Frames[2] != 128 {
		t.Errorf("unexpected replay %+v", rp)
	}
}

func TestDecodeRejectsOtherVersion(t *testing.T) {
	b, err := msgpack.Marshal(&Replay{Version: Version + 1})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := Decode(b); !errors.Is(err, ErrVersion) {
		t.Errorf("expected ErrVersion, got %v", err)
	}
	if _, err := Decode([]byte{0xc1}); err == nil {
		t.Error("expected error for garbage input")
	}
}

func TestIDStable(t *testing.T) {
	a, b := ID([]byte("frames")), ID([]byte("frames"))
	if a != b || len(a) != 32 {
		t.Errorf("expected stable 32-char id, got %q %q", a, b)
	}
	h, _ := blake2b.New(16, nil)
	h.Write([]byte("frames"))
	if want := hex.EncodeToString(h.Sum(nil)); a != want {
		t.Errorf("expected 128-bit blake2b digest %s, got %s", want, a)
	}
	if ID([]byte("other")) == a {
		t.Error("expected different input to give a different id")
	}
}
