package revision

import (
	"strconv"
	"strings"

	"git.home.luguber.info/inful/docstamp/internal/foundation/errors"
)

// CopyrightRange returns "<start>-<year>" when the commit year is strictly
// after start, else "<start>". An absent or non-numeric year fails with an
// error matching errors.ErrUndefinedYear.
func CopyrightRange(commitYear Optional[string], startYear int) (string, error) {
	raw, ok := commitYear.Get()
	if !ok {
		return "", errors.UndefinedYearError("copyright range needs the commit year, which was not resolved").
			WithContext("start_year", startYear).
			Build()
	}
	year, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return "", errors.UndefinedYearError("copyright range needs a numeric commit year").
			WithCause(err).
			WithContext("commit_year", raw).
			WithContext("start_year", startYear).
			Build()
	}
	start := strconv.Itoa(startYear)
	if year > startYear {
		return start + "-" + strconv.Itoa(year), nil
	}
	return start, nil
}
