package anki

// Field holds one field of a note, with its position in the note type.
type Field struct {
	Value string `json:"value"`
	Order int    `json:"order"`
}

// Card is a single reviewable card as returned by cardsInfo.
type Card struct {
	CardID    int64            `json:"cardId"`
	Note      int64            `json:"note"`
	DeckName  string           `json:"deckName"`
	ModelName string           `json:"modelName"`
	Question  string           `json:"question"`
	Answer    string           `json:"answer"`
	Fields    map[string]Field `json:"fields"`
	Tags      []string         `json:"tags"`
}

// Note is the content unit behind one or more cards, as returned by notesInfo.
type Note struct {
	NoteID    int64            `json:"noteId"`
	ModelName string           `json:"modelName"`
	Tags      []string         `json:"tags"`
	Fields    map[string]Field `json:"fields"`
}

// DuplicateOptions controls Anki's duplicate detection for addNotes.
type DuplicateOptions struct {
	AllowDuplicate bool   `json:"allowDuplicate"`
	DuplicateScope string `json:"duplicateScope,omitempty"`
}

// NewNote is the payload shape addNotes expects for a note to be created.
type NewNote struct {
	DeckName  string            `json:"deckName"`
	ModelName string            `json:"modelName"`
	Fields    map[string]string `json:"fields"`
	Tags      []string          `json:"tags"`
	Options   DuplicateOptions  `json:"options"`
}
