package csvtable

import (
	"fmt"
	"unicode/utf8"

	"github.com/arloliu/lut/errs"
	"github.com/arloliu/lut/internal/options"
)

type config struct {
	delimiter rune
}

func defaultConfig() *config {
	return &config{delimiter: ','}
}

// Option configures Read and ReadFile.
type Option = options.Option[*config]

// WithDelimiter sets the field delimiter. The default is a comma.
func WithDelimiter(r rune) Option {
	return options.New(func(c *config) error {
		if r == '"' || r == '\r' || r == '\n' || !utf8.ValidRune(r) || r == utf8.RuneError {
			return fmt.Errorf("%w: invalid delimiter %q", errs.ErrMalformedInput, r)
		}
		c.delimiter = r

		return nil
	})
}
