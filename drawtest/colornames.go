package drawtest

import (
	"fmt"

	"github.com/rjkroege/richui/draw"
)

// NiceColourName returns a readable name for the named Plan 9 colours used
// by the widgets.
func NiceColourName(num draw.Color) string {
	lookuptable := make(map[draw.Color]string)

	lookuptable[draw.Black] = "Black"
	lookuptable[draw.Medblue] = "Medblue"
	lookuptable[draw.Notacolor] = "Notacolor"
	lookuptable[draw.Paleyellow] = "Paleyellow"
	lookuptable[draw.Transparent] = "Transparent"
	lookuptable[draw.White] = "White"

	if s, ok := lookuptable[num]; ok {
		return s
	}
	return fmt.Sprintf("color(%x)", uint32(num))
}
