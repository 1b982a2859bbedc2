package employee

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/cmlabs-hris/hrms-payroll-go/internal/pkg/sequence"
)

var loginIDPrefixPattern = regexp.MustCompile(`^[A-Z]{1,6}$`)

// LoginIDGenerator builds login IDs of the form
// <PREFIX><FN2><LN2><YEAR><SERIAL>, e.g. OIJODO20240001.
// Serials are allocated per joining year from the injected counter.
type LoginIDGenerator struct {
	prefix  string
	counter sequence.Counter
}

func NewLoginIDGenerator(prefix string, counter sequence.Counter) (*LoginIDGenerator, error) {
	prefix = strings.ToUpper(strings.TrimSpace(prefix))
	if !loginIDPrefixPattern.MatchString(prefix) {
		return nil, ErrInvalidLoginIDPrefix
	}
	return &LoginIDGenerator{prefix: prefix, counter: counter}, nil
}

func (g *LoginIDGenerator) Generate(ctx context.Context, firstName, lastName string, joiningDate time.Time) (string, error) {
	year := joiningDate.Year()

	serial, err := g.counter.Next(ctx, fmt.Sprintf("login_id:%d", year))
	if err != nil {
		return "", fmt.Errorf("failed to allocate login id serial: %w", err)
	}

	return fmt.Sprintf("%s%s%s%04d%04d", g.prefix, nameInitials(firstName), nameInitials(lastName), year, serial), nil
}

// nameInitials returns the first two ASCII letters of name, uppercased and padded with X.
func nameInitials(name string) string {
	var b strings.Builder
	for _, r := range strings.ToUpper(name) {
		if r >= 'A' && r <= 'Z' {
			b.WriteRune(r)
			if b.Len() == 2 {
				break
			}
		}
	}
	for b.Len() < 2 {
		b.WriteByte('X')
	}
	return b.String()
}
