package utils

import (
	"fmt"
	"testing"
)

func TestNormalizeDateAllMonths(t *testing.T) {
	months := []string{
		"января", "февраля", "марта", "апреля", "мая", "июня",
		"июля", "августа", "сентября", "октября", "ноября", "декабря",
	}
	for i, m := range months {
		in := fmt.Sprintf("5 %s 2020", m)
		want := fmt.Sprintf("05.%02d.2020", i+1)
		if got := NormalizeDate(in); got != want {
			t.Fatalf("NormalizeDate(%q): got %q want %q", in, got, want)
		}
	}
}

func TestNormalizeDateCaseInsensitive(t *testing.T) {
	if got := NormalizeDate("выдан 12 ДЕКАБРЯ 2019 г."); got != "12.12.2019" {
		t.Fatalf("got %q", got)
	}
	if got := NormalizeDate("5 Марта 2020"); got != "05.03.2020" {
		t.Fatalf("got %q", got)
	}
}

func TestNormalizeDateUnknownMonth(t *testing.T) {
	if got := NormalizeDate("3 мартобря 1999"); got != "03.??.1999" {
		t.Fatalf("got %q", got)
	}
}

func TestNormalizeDateNoMatch(t *testing.T) {
	for _, in := range []string{"", "нет даты", "05.03.1990", "марта 2020"} {
		if got := NormalizeDate(in); got != "" {
			t.Fatalf("NormalizeDate(%q): got %q want empty", in, got)
		}
	}
}

func TestFindDate(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		rest    string
		wantHit bool
	}{
		{"05.03.1990 муж", "05.03.1990", " муж", true},
		{"5.3.1990 жен", "05.03.1990", " жен", true},
		{"1 января 2001 мужской", "01.01.2001", " мужской", true},
		{"12/11/2010", "12.11.2010", "", true},
		{"без даты", "", "", false},
	}
	for _, tt := range tests {
		got, end, ok := FindDate(tt.in)
		if ok != tt.wantHit || got != tt.want {
			t.Fatalf("FindDate(%q): got %q,%v want %q,%v", tt.in, got, ok, tt.want, tt.wantHit)
		}
		if ok && tt.in[end:] != tt.rest {
			t.Fatalf("FindDate(%q): rest %q want %q", tt.in, tt.in[end:], tt.rest)
		}
	}
}

func TestFindDatePrefersEarliest(t *testing.T) {
	got, _, ok := FindDate("с 01.02.2015 по 1 февраля 2025")
	if !ok || got != "01.02.2015" {
		t.Fatalf("got %q", got)
	}
}
