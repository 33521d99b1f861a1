package langkit

import (
	"fmt"
	"testing"

	"github.com/orderkit/orderkit/testkit"
)

func TestFormatters(t *testing.T) {
	formatters := newFormatters()

	testkit.Equal(t, formatters.get("Default").format(), "Default")
	testkit.Equal(t, formatters.get("{1} ↑").format("Name"), "Name ↑")
	testkit.Equal(t, formatters.get("Order by {2} then {1}").format("name", "age"), "Order by age then name")
	testkit.Equal(t, formatters.get("{plural} columns, {1:v} active").formatPlural(3, 1), "3 columns, 1 active")
	testkit.Equal(t, formatters.get("{1} of {2}").format(0.5, int64(7)), "0.5 of 7")

	testkit.Equal(t, formatters.get("sort by {1}").format(), "sort by [INVALID: missing format arg {1}]")
	testkit.Equal(t, formatters.get("sort by {x}").format("name"), "sort by [INVALID: {x}]")
}

func BenchmarkFormatter(b *testing.B) {
	formatters := newFormatters()

	expected := "order by name 1234 0.234"
	for n := 0; n < b.N; n++ {
		output := formatters.get("order by {1} {2} {3}").format("name", 1234, 0.234)
		if output != expected {
			fmt.Println(output, "!=", expected)
			b.Fail()
		}
	}
}
