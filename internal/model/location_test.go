package model

import "testing"

func TestNewLocationReference(t *testing.T) {
	ref := NewLocationReference(12.5, -70.25)

	want := "http://www.google.com/maps/place/12.5,-70.25"
	if ref.URL != want {
		t.Errorf("URL = %q, want %q", ref.URL, want)
	}
	if ref.Latitude != 12.5 || ref.Longitude != -70.25 {
		t.Errorf("coordinates not preserved: %+v", ref)
	}
}

func TestNewLocationReferenceDeterministic(t *testing.T) {
	a := NewLocationReference(48.8566, 2.3522)
	b := NewLocationReference(48.8566, 2.3522)

	if a.URL != b.URL {
		t.Errorf("same coordinates produced different URLs: %q vs %q", a.URL, b.URL)
	}
}

func TestNewLocationReferenceNoTrailingZeros(t *testing.T) {
	ref := NewLocationReference(10, 20)

	want := "http://www.google.com/maps/place/10,20"
	if ref.URL != want {
		t.Errorf("URL = %q, want %q", ref.URL, want)
	}
}
