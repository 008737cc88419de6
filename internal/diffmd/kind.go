package diffmd

// Kind tags a classified diff line.
type Kind int

const (
	KindSentence Kind = iota
	KindEmpty
	KindFilePathMarker
	KindNewFileIndicator
	KindDeletedFileIndicator
	KindRenameMarker
	KindSimilarityMarker
	KindHeader
	KindNewFileMode
	KindDeletedFileMode
	KindHashMarker
	KindHunkMarker
	KindBinaryMarker
)

var kindNames = [...]string{
	KindSentence:             "sentence",
	KindEmpty:                "empty",
	KindFilePathMarker:       "filePathMarker",
	KindNewFileIndicator:     "newFileIndicator",
	KindDeletedFileIndicator: "deletedFileIndicator",
	KindRenameMarker:         "renameMarker",
	KindSimilarityMarker:     "similarityMarker",
	KindHeader:               "header",
	KindNewFileMode:          "newFileMode",
	KindDeletedFileMode:      "deletedFileMode",
	KindHashMarker:           "hashMarker",
	KindHunkMarker:           "hunkMarker",
	KindBinaryMarker:         "binaryMarker",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

// Line is one classified input line. Only the fields relevant to Kind are set.
type Line struct {
	Kind Kind
	Text string

	PathA string
	PathB string

	PreviousHash string
	CurrentHash  string

	PreviousRange Range
	CurrentRange  Range
	Context       string
}
