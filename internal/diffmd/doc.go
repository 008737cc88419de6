// Package diffmd turns git-style unified diff text into a Markdown report.
//
// Classify tags single lines, Parse folds the tagged lines into a Document of
// files and hunk blocks, and Render writes the Document as Markdown with one
// level-2 section per file.
package diffmd
