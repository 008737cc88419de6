package diffmd

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	filePathRE      = regexp.MustCompile(`^(?:---|\+\+\+) [ab]/`)
	renameRE        = regexp.MustCompile(`^rename (?:from|to) .+$`)
	similarityRE    = regexp.MustCompile(`similarity index \d+%$`)
	newFileModeRE   = regexp.MustCompile(`^new file mode [0-7]+$`)
	deletedModeRE   = regexp.MustCompile(`^deleted file mode [0-7]+$`)
	hashRE          = regexp.MustCompile(`^index ([0-9a-z]{7,64})\.\.([0-9a-z]{7,64})(?: [0-7]{6})?$`)
	hunkRE          = regexp.MustCompile(`^@@ -(\d+)(?:,(\d+))? \+(\d+)(?:,(\d+))? @@(.*)$`)
	binaryFilesRE   = regexp.MustCompile(`^Binary files .+ and .+ differ$`)
	headerPrefix    = "diff --git "
	newFileLine     = "--- /dev/null"
	deletedFileLine = "+++ /dev/null"
)

type matchFunc func(text string) (Line, bool, error)

// matchers run in order; the first match wins. Order matters: "--- /dev/null"
// must be seen before the generic "--- a/" path marker, and all structural
// markers before the sentence fallback.
var matchers = []matchFunc{
	matchEmpty,
	matchFilePath,
	matchRename,
	matchSimilarity,
	matchHeader,
	matchNewFileMode,
	matchDeletedFileMode,
	matchHash,
	matchHunk,
	matchBinary,
}

// Classify tags one line of diff text (without its line terminator). It looks
// at nothing but the line itself.
func Classify(text string) (Line, error) {
	for _, match := range matchers {
		line, ok, err := match(text)
		if err != nil {
			return Line{}, err
		}
		if ok {
			line.Text = text
			return line, nil
		}
	}
	return Line{Kind: KindSentence, Text: text}, nil
}

func matchEmpty(text string) (Line, bool, error) {
	return Line{Kind: KindEmpty}, text == "", nil
}

func matchFilePath(text string) (Line, bool, error) {
	switch {
	case text == newFileLine:
		return Line{Kind: KindNewFileIndicator}, true, nil
	case text == deletedFileLine:
		return Line{Kind: KindDeletedFileIndicator}, true, nil
	case filePathRE.MatchString(text):
		return Line{Kind: KindFilePathMarker}, true, nil
	}
	return Line{}, false, nil
}

func matchRename(text string) (Line, bool, error) {
	return Line{Kind: KindRenameMarker}, renameRE.MatchString(text), nil
}

func matchSimilarity(text string) (Line, bool, error) {
	return Line{Kind: KindSimilarityMarker}, similarityRE.MatchString(text), nil
}

func matchHeader(text string) (Line, bool, error) {
	rest, ok := strings.CutPrefix(text, headerPrefix)
	if !ok {
		return Line{}, false, nil
	}
	a, b, ok := splitHeaderPaths(rest)
	if !ok {
		return Line{}, false, &MalformedMarkerError{Line: text, Marker: "header"}
	}
	return Line{Kind: KindHeader, PathA: a, PathB: b}, true, nil
}

func matchNewFileMode(text string) (Line, bool, error) {
	return matchKeyword(text, "new file mode ", newFileModeRE, KindNewFileMode)
}

func matchDeletedFileMode(text string) (Line, bool, error) {
	return matchKeyword(text, "deleted file mode ", deletedModeRE, KindDeletedFileMode)
}

func matchKeyword(text, keyword string, re *regexp.Regexp, kind Kind) (Line, bool, error) {
	if !strings.HasPrefix(text, keyword) {
		return Line{}, false, nil
	}
	if !re.MatchString(text) {
		return Line{}, false, &MalformedMarkerError{Line: text, Marker: kind.String()}
	}
	return Line{Kind: kind}, true, nil
}

func matchHash(text string) (Line, bool, error) {
	if !strings.HasPrefix(text, "index ") {
		return Line{}, false, nil
	}
	m := hashRE.FindStringSubmatch(text)
	if m == nil {
		return Line{}, false, &MalformedMarkerError{Line: text, Marker: "hash"}
	}
	return Line{Kind: KindHashMarker, PreviousHash: m[1], CurrentHash: m[2]}, true, nil
}

func matchHunk(text string) (Line, bool, error) {
	if !strings.HasPrefix(text, "@@") {
		return Line{}, false, nil
	}
	m := hunkRE.FindStringSubmatch(text)
	if m == nil {
		return Line{}, false, &MalformedMarkerError{Line: text, Marker: "hunk"}
	}
	prev, err := parseRange(m[1], m[2])
	if err != nil {
		return Line{}, false, &MalformedMarkerError{Line: text, Marker: "hunk"}
	}
	curr, err := parseRange(m[3], m[4])
	if err != nil {
		return Line{}, false, &MalformedMarkerError{Line: text, Marker: "hunk"}
	}
	return Line{
		Kind:          KindHunkMarker,
		PreviousRange: prev,
		CurrentRange:  curr,
		Context:       strings.TrimPrefix(m[5], " "),
	}, true, nil
}

func matchBinary(text string) (Line, bool, error) {
	return Line{Kind: KindBinaryMarker}, binaryFilesRE.MatchString(text), nil
}

// parseRange reads "start[,count]"; git omits the count when it is 1.
func parseRange(start, count string) (Range, error) {
	s, err := strconv.Atoi(start)
	if err != nil {
		return Range{}, err
	}
	if count == "" {
		return Range{Start: s, Count: 1}, nil
	}
	c, err := strconv.Atoi(count)
	if err != nil {
		return Range{}, err
	}
	return Range{Start: s, Count: c}, nil
}

// splitHeaderPaths splits the "a/<pathA> b/<pathB>" tail of a header line.
func splitHeaderPaths(rest string) (string, string, bool) {
	if strings.HasPrefix(rest, `"`) || strings.HasSuffix(rest, `"`) {
		return splitQuotedHeaderPaths(rest)
	}

	// The common case has identical paths, so the split point is the middle
	// even when the path itself contains " b/".
	if n := len(rest); n%2 == 1 {
		half := n / 2
		left, right := rest[:half], rest[half+1:]
		if rest[half] == ' ' && strings.HasPrefix(left, "a/") && strings.HasPrefix(right, "b/") && left[2:] == right[2:] && left != "a/" {
			return left[2:], right[2:], true
		}
	}

	if !strings.HasPrefix(rest, "a/") {
		return "", "", false
	}
	i := strings.LastIndex(rest, " b/")
	if i < 3 || i+3 >= len(rest) {
		return "", "", false
	}
	return rest[2:i], rest[i+3:], true
}

func splitQuotedHeaderPaths(rest string) (string, string, bool) {
	first, tail, ok := nextHeaderToken(rest)
	if !ok {
		return "", "", false
	}
	second, tail, ok := nextHeaderToken(strings.TrimPrefix(tail, " "))
	if !ok || tail != "" {
		return "", "", false
	}
	a, okA := strings.CutPrefix(first, "a/")
	b, okB := strings.CutPrefix(second, "b/")
	if !okA || !okB || a == "" || b == "" {
		return "", "", false
	}
	return a, b, true
}

// nextHeaderToken reads one possibly quoted path token.
func nextHeaderToken(s string) (string, string, bool) {
	if strings.HasPrefix(s, `"`) {
		quoted, err := strconv.QuotedPrefix(s)
		if err != nil {
			return "", "", false
		}
		token, err := strconv.Unquote(quoted)
		if err != nil {
			return "", "", false
		}
		return token, s[len(quoted):], true
	}
	i := strings.Index(s, " ")
	if i < 0 {
		return s, "", s != ""
	}
	return s[:i], s[i:], true
}
