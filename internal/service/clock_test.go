package service

import "testing"

func TestParseClock(t *testing.T) {
	cases := map[string]int{
		"09:00": 540,
		"00:00": 0,
		"23:59": 1439,
		"9:30":  570,
		"":      0,
		"junk":  0,
	}
	for in, want := range cases {
		if got := ParseClock(in); got != want {
			t.Fatalf("ParseClock(%q) = %d, want %d", in, got, want)
		}
	}
}

func TestFormatClock(t *testing.T) {
	cases := map[int]string{
		540:  "09:00",
		0:    "00:00",
		1439: "23:59",
		-10:  "00:00",
	}
	for in, want := range cases {
		if got := FormatClock(in); got != want {
			t.Fatalf("FormatClock(%d) = %q, want %q", in, got, want)
		}
	}
}
