package gateway

import (
	"fmt"
	"html"
	"strings"

	"souq-be/internal/paylink"
)

// RenderFields produces the checkout description block shown under the
// payment method: title, description, supported brands, and a test-mode
// warning when the pilot environment is active.
func (g *Gateway) RenderFields() string {
	var b strings.Builder

	b.WriteString(`<div class="paylink-method">`)
	fmt.Fprintf(&b, `<h4>%s</h4>`, html.EscapeString(g.settings.Title))
	if g.settings.Description != "" {
		fmt.Fprintf(&b, `<p>%s</p>`, html.EscapeString(g.settings.Description))
	}
	fmt.Fprintf(&b, `<p class="paylink-brands">%s</p>`, html.EscapeString(paylink.CardBrandsDisplay(g.settings.CardBrands)))
	if g.settings.TestMode {
		b.WriteString(`<p class="paylink-test-mode">Test Mode is enabled.</p>`)
	}
	b.WriteString(`</div>`)

	return b.String()
}
