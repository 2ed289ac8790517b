package ai

import _ "embed"

// ExtractionPrompt instructs the model to return one JSON object per job
// posting found in the PDF. Both extraction providers send the same prompt.
//
//go:embed prompt.md
var ExtractionPrompt string
