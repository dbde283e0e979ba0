package domain

import "strings"

// Format tags the output flavor of a generated file. The generation step
// routes each input through the external tool with its resolved format so the
// tool can pick the matching output mode.
type Format string

const (
	// FormatHTML targets HTML template output.
	FormatHTML Format = "HtmlFormat"
	// FormatJavaScript targets JavaScript output.
	FormatJavaScript Format = "JavaScriptFormat"
	// FormatXML targets XML output.
	FormatXML Format = "XmlFormat"
	// FormatTxt targets plain text output. It is also the fallback for
	// unrecognized suffixes, keeping format resolution total over all
	// file names.
	FormatTxt Format = "TxtFormat"
)

// formatSuffixes maps filename suffixes to format tags.
// Longest suffix wins; resolution order is fixed.
var formatSuffixes = []struct {
	suffix string
	format Format
}{
	{".scala.html", FormatHTML},
	{".scala.js", FormatJavaScript},
	{".scala.xml", FormatXML},
	{".scala.txt", FormatTxt},
}

// ResolveFormat maps a file name to its format tag by suffix. Unrecognized
// suffixes resolve to FormatTxt; the fallback is deliberate so a stray file
// degrades to text output instead of failing the step. Callers that care
// can detect the fallback with KnownFormat.
func ResolveFormat(name string) Format {
	for _, entry := range formatSuffixes {
		if strings.HasSuffix(name, entry.suffix) {
			return entry.format
		}
	}
	return FormatTxt
}

// KnownFormat reports whether the file name matches a registered suffix,
// as opposed to falling back to the default format.
func KnownFormat(name string) bool {
	for _, entry := range formatSuffixes {
		if strings.HasSuffix(name, entry.suffix) {
			return true
		}
	}
	return false
}
