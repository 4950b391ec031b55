package packed

import "testing"

func TestPackRoundTrip(t *testing.T) {
	cases := []string{
		"",
		"1",
		"1\n",
		"9\n",
		"Fizz\n",
		"Buzz\n",
		"FizzBuzz\n",
		"1234567\n",
		"12345678\n", // crosses the low/high word boundary
		"123456789012345\n",
	}
	for _, want := range cases {
		got := Pack(want).String()
		if got != want {
			t.Errorf("Pack(%q).String() = %q", want, got)
		}
	}
}

func TestPackTooLongPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for 17-byte text")
		}
	}()
	Pack("12345678901234567")
}

func TestLineAdd(t *testing.T) {
	got := Pack("1\n").Add(Word{Lo: 1})
	if want := Pack("2\n"); got != want {
		t.Fatalf("add one: got %q want %q", got.String(), want.String())
	}
	// Ones digit of a two-digit number lives one byte up.
	got = Pack("19\n").Add(Word{Lo: 1 << 8})
	if want := Pack("1:\n"); got != want {
		t.Fatalf("add past nine: got %q want %q", got.String(), want.String())
	}
}

func TestExtend(t *testing.T) {
	got := Pack("bc\n").Extend('a')
	if got.N != 4 || got.String() != "abc\n" {
		t.Fatalf("Extend: got %q (n=%d)", got.String(), got.N)
	}
}

func TestSubGivesRolloverFix(t *testing.T) {
	// The delta between "1:" (ones digit rolled past '9') and "20" is the
	// universal per-position carry correction.
	fix := Sub(Pack("20").Val, Pack("1:").Val)
	got := Pack("1:\n").Add(fix)
	if want := Pack("20\n"); got != want {
		t.Fatalf("carry fix: got %q want %q", got.String(), want.String())
	}
}

func TestWordAddCarriesAcrossHalves(t *testing.T) {
	got := Word{Lo: ^uint64(0)}.Add(Word{Lo: 1})
	if (got != Word{Lo: 0, Hi: 1}) {
		t.Fatalf("carry into high half: got %+v", got)
	}
}

func TestShlBytes(t *testing.T) {
	w := Word{Lo: 0xAB}
	for _, tc := range []struct {
		k    int
		want Word
	}{
		{0, Word{Lo: 0xAB}},
		{1, Word{Lo: 0xAB00}},
		{7, Word{Lo: 0xAB << 56}},
		{8, Word{Hi: 0xAB}},
		{13, Word{Hi: 0xAB << 40}},
		{16, Word{}},
	} {
		if got := w.ShlBytes(tc.k); got != tc.want {
			t.Errorf("ShlBytes(%d) = %+v, want %+v", tc.k, got, tc.want)
		}
	}
	mixed := Word{Lo: 0xFF00000000000000, Hi: 1}
	if got := mixed.ShlBytes(1); (got != Word{Lo: 0, Hi: 0x1FF}) {
		t.Errorf("ShlBytes carry across halves: got %+v", got)
	}
}
