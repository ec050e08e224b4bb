package letter

// Draft is the cover letter currently shown to the merchant.
type Draft struct {
	Text           string `json:"text"`
	ManuallyEdited bool   `json:"manually_edited"`
}

// Load builds the draft for a freshly opened dispute. A stored letter is kept
// verbatim; it counts as manually edited when it differs from candidate.
func Load(stored, candidate string) Draft {
	if stored == "" {
		return Draft{Text: candidate}
	}
	return Draft{Text: stored, ManuallyEdited: stored != candidate}
}

// ShouldAutoRegenerate decides what to display after an input change.
// The new candidate replaces the displayed text unless the merchant has edited
// it since previousCandidate was shown.
func ShouldAutoRegenerate(previousCandidate, displayed, candidate string, wasManuallyEdited bool) Draft {
	if !wasManuallyEdited || displayed == previousCandidate {
		return Draft{Text: candidate}
	}
	return Draft{Text: displayed, ManuallyEdited: true}
}

// Edit records a direct edit. Clearing the letter resets it to candidate.
func Edit(newText, candidate string) Draft {
	if newText == "" {
		return Draft{Text: candidate}
	}
	return Draft{Text: newText, ManuallyEdited: newText != candidate}
}
