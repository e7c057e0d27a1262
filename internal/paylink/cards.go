package paylink

import "strings"

// ValidCardBrands is the fixed set of card brands Paylink accepts.
var ValidCardBrands = []string{
	"mada",
	"visaMastercard",
	"amex",
	"tabby",
	"tamara",
	"stcpay",
	"urpay",
}

// DefaultCardBrands returns the full brand list as a comma-separated string.
func DefaultCardBrands() string {
	return strings.Join(ValidCardBrands, ",")
}

// FilterCardBrands drops unknown entries from a comma-separated brand list.
// When nothing valid remains the full default list is returned.
func FilterCardBrands(csv string) string {
	var kept []string
	for _, brand := range strings.Split(csv, ",") {
		brand = strings.TrimSpace(brand)
		for _, valid := range ValidCardBrands {
			if brand == valid {
				kept = append(kept, brand)
				break
			}
		}
	}
	if len(kept) == 0 {
		return DefaultCardBrands()
	}
	return strings.Join(kept, ",")
}

// CardBrandsDisplay renders a configured brand list for checkout copy,
// with the combined visa/mastercard entry spelled out.
func CardBrandsDisplay(csv string) string {
	brands := strings.Split(FilterCardBrands(csv), ",")
	display := make([]string, 0, len(brands))
	for _, brand := range brands {
		if brand == "visaMastercard" {
			display = append(display, "Visa/Mastercard")
			continue
		}
		display = append(display, brand)
	}
	return strings.Join(display, ", ")
}
