package revision

import (
	"strconv"
	"strings"
)

// Substitution names. Renderers see exactly these keys.
const (
	KeyGitHash   = "githash"
	KeyGitTime   = "gittime"
	KeyToday     = "today"
	KeyCopyright = "copyright"
	KeyPDFLink   = "pdf_link"
)

// FallbackValue replaces unresolved values.
const FallbackValue = "unknown"

// Keys lists every substitution name in a stable order.
func Keys() []string {
	return []string{KeyGitHash, KeyGitTime, KeyToday, KeyCopyright, KeyPDFLink}
}

// LinkPattern builds the hash-embedding download link "<Prefix><hash><Suffix>".
type LinkPattern struct {
	Prefix string
	Suffix string
}

// PDFLinkPattern is the pattern "pdf/<docName>-rev<hash>.pdf". It must match
// the file name the PDF build writes.
func PDFLinkPattern(docName string) LinkPattern {
	return LinkPattern{Prefix: "pdf/" + docName + "-rev", Suffix: ".pdf"}
}

// Path embeds hash in the pattern.
func (p LinkPattern) Path(hash string) string {
	return p.Prefix + hash + p.Suffix
}

// Fallbacks lists the keys Substitutions had to fill with a fallback.
type Fallbacks []string

// Substitutions renders info into the name→value mapping handed to template
// renderers. All keys from Keys are always present. Unresolved values become
// FallbackValue, except copyright, which degrades to the bare start year.
func Substitutions(info Info, link LinkPattern) (map[string]string, Fallbacks) {
	var fallbacks Fallbacks
	pick := func(key string, o Optional[string], fallback string) string {
		if v, ok := o.Get(); ok && strings.TrimSpace(v) != "" {
			return v
		}
		fallbacks = append(fallbacks, key)
		return fallback
	}

	hash := pick(KeyGitHash, info.Hash(), FallbackValue)
	subs := map[string]string{
		KeyGitHash:   hash,
		KeyGitTime:   pick(KeyGitTime, info.FormattedDate(), FallbackValue),
		KeyToday:     info.BuildDate(),
		KeyCopyright: pick(KeyCopyright, info.Copyright(), strconv.Itoa(info.StartYear())),
		KeyPDFLink:   link.Path(hash),
	}
	return subs, fallbacks
}
