package ansi_test

import (
	"fmt"

	"pkt.systems/gatelog/ansi"
)

func ExampleSetPalette() {
	before := ansi.Snapshot()
	defer ansi.SetPalette(before)

	ansi.SetPalette(ansi.PaletteSynthwave84)
	after := ansi.Snapshot()
	fmt.Println(after.Category == ansi.PaletteSynthwave84.Category)

	// Output: true
}

func ExamplePaletteByName() {
	palette := ansi.PaletteByName("doom-nord")
	fmt.Println(palette == &ansi.PaletteNord)

	unknown := ansi.PaletteByName("not-a-real-palette")
	fmt.Println(unknown == &ansi.PaletteDefault)

	// Output:
	// true
	// true
}
