package extractor

import (
	"strings"

	"github.com/ursazoo/compdoc/pkg/sfc"
)

// DefaultStyleLang is used when a style zone declares no lang attribute.
const DefaultStyleLang = "css"

// ExtractStyles converts every style zone into a style block, blank ones
// included, in source order.
func ExtractStyles(zones []sfc.Zone) []StyleBlock {
	var blocks []StyleBlock
	for _, z := range zones {
		content := strings.TrimSpace(z.Content)
		lang := z.Lang()
		if lang == "" {
			lang = DefaultStyleLang
		}
		blocks = append(blocks, StyleBlock{Content: content, Lang: lang, Attrs: z.Attrs})
	}
	return blocks
}
