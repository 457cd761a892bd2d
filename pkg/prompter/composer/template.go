package composer

import (
	"fmt"
	"strings"

	"github.com/NethermindEth/art-prompter/pkg/prompter/category"
)

const (
	localTemplate     = "Create an art piece with a %s theme, using %s technique, and rendered in a %s style."
	delegatedTemplate = "Generate a creative and detailed art prompt that combines the following elements: a %s theme, using %s technique, and executed in a %s style."
)

func LocalPromptText(sel category.Selection) string {
	return fmt.Sprintf(localTemplate,
		strings.ToLower(sel.Theme),
		strings.ToLower(sel.Technique),
		strings.ToLower(sel.Style),
	)
}

// DelegatedRequestText is the text sent to the text-generation service. Labels
// are substituted verbatim.
func DelegatedRequestText(sel category.Selection) string {
	return fmt.Sprintf(delegatedTemplate, sel.Theme, sel.Technique, sel.Style)
}
