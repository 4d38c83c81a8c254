package iir_test

import (
	"fmt"

	"github.com/cwbudde/gen-iir/dsp/filter/design/iir"
)

func ExampleEngine_Design() {
	e, err := iir.Open()
	if err != nil {
		panic(err)
	}
	defer e.Close()

	c, err := e.Design(iir.Spec{
		Ripple:      1,
		Suppression: 60,
		Order:       4,
		Cutoff:      0.25,
		Flags:       iir.LowPass | iir.Elliptic,
	})
	if err != nil {
		panic(err)
	}
	fmt.Println(c.Order(), len(c.B), c.A[0])
	// Output: 4 5 1
}

func ExampleCode() {
	e, _ := iir.Open()
	defer e.Close()

	_, err := e.Design(iir.Spec{Order: 0, Cutoff: 0.3, Flags: iir.LowPass | iir.Butterworth})
	fmt.Printf("0x%08X\n", iir.Code(err))
	// Output: 0x00000103
}
