package ansi

import "testing"

func TestPaletteByNameCanonical(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		want Palette
	}{
		{name: "default", want: PaletteDefault},
		{name: "nord", want: PaletteNord},
		{name: "solarized-dark", want: PaletteSolarizedDark},
		{name: "synthwave-84", want: PaletteSynthwave84},
		{name: "monochrome", want: PaletteMonochrome},
	}

	for _, tc := range cases {
		got := PaletteByName(tc.name)
		if got == nil {
			t.Fatalf("expected palette %q to resolve", tc.name)
		}
		if *got != tc.want {
			t.Fatalf("palette %q mismatch", tc.name)
		}
	}
}

func TestPaletteByNameAliases(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		want Palette
	}{
		{name: "doom_gruvbox", want: PaletteGruvbox},
		{name: "doomDracula", want: PaletteDracula},
		{name: "doomnord", want: PaletteNord},
		{name: "synthwave84", want: PaletteSynthwave84},
		{name: "PaletteSolarizedDark", want: PaletteSolarizedDark},
		{name: " mono ", want: PaletteMonochrome},
	}

	for _, tc := range cases {
		got := PaletteByName(tc.name)
		if got == nil {
			t.Fatalf("expected alias %q to resolve", tc.name)
		}
		if *got != tc.want {
			t.Fatalf("alias %q mismatch", tc.name)
		}
	}
}

func TestPaletteByNameInvalid(t *testing.T) {
	t.Parallel()

	got := PaletteByName("does-not-exist")
	if got != &PaletteDefault {
		t.Fatalf("expected unknown palette lookup to return the default palette")
	}
}

func TestAvailablePaletteNames(t *testing.T) {
	t.Parallel()

	names := AvailablePaletteNames()
	if len(names) != len(namedPalettes) {
		t.Fatalf("expected %d names, got %d", len(namedPalettes), len(names))
	}
	for i := 1; i < len(names); i++ {
		if names[i-1] > names[i] {
			t.Fatalf("names not sorted: %v", names)
		}
	}
}
