package diffmd

import (
	"path"
	"slices"
	"strconv"
	"strings"
)

// Range is a hunk line range as announced by "@@ -start,count +start,count @@".
type Range struct {
	Start int
	Count int
}

func (r Range) String() string {
	return strconv.Itoa(r.Start) + "," + strconv.Itoa(r.Count)
}

// Block is one hunk within a file.
type Block struct {
	PreviousRange Range
	CurrentRange  Range
	Context       string
	// Body holds the raw hunk lines joined by "\n", prefixes intact.
	Body string
}

// File is one changed file of a diff.
type File struct {
	Path  string
	PathA string
	PathB string

	PreviousHash string
	CurrentHash  string

	IsNew     bool
	IsDeleted bool
	IsRenamed bool
	IsBinary  bool

	Blocks []Block
}

// Extension returns the extension of the last path element without its dot.
func (f File) Extension() string {
	name := f.PathB
	if name == "" {
		name = f.Path
	}
	return strings.TrimPrefix(path.Ext(path.Base(name)), ".")
}

// HasHash reports whether a hash marker was seen for the file.
func (f File) HasHash() bool {
	return f.PreviousHash != "" || f.CurrentHash != ""
}

// Document is a parsed diff. It is not modified after Parse returns.
type Document struct {
	files []File
}

// Files returns a deep copy of the files in encounter order.
func (d Document) Files() []File {
	files := slices.Clone(d.files)
	for i := range files {
		files[i].Blocks = slices.Clone(files[i].Blocks)
	}
	return files
}

// Len returns the number of files.
func (d Document) Len() int {
	return len(d.files)
}

// BlockCount returns the number of hunks across all files.
func (d Document) BlockCount() int {
	n := 0
	for _, f := range d.files {
		n += len(f.Blocks)
	}
	return n
}
