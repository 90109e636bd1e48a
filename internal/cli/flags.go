package cli

import (
	"strconv"
	"strings"

	"github.com/alexanderramin/tempo/internal/domain"
	"github.com/spf13/pflag"
)

// colorValue is a pflag.Value that normalizes hex colors at parse time, so
// a malformed --color fails before any command runs.
type colorValue struct {
	color *string
}

var _ pflag.Value = (*colorValue)(nil)

func newColorValue(p *string) *colorValue {
	return &colorValue{color: p}
}

func (v *colorValue) String() string {
	if v.color == nil {
		return ""
	}
	return *v.color
}

func (v *colorValue) Set(s string) error {
	c, err := domain.ParseColor(s)
	if err != nil {
		return err
	}
	*v.color = string(c)
	return nil
}

func (v *colorValue) Type() string { return "color" }

// ratingValue is a pflag.Value for an optional 1-10 rating.
type ratingValue struct {
	rating **int
}

var _ pflag.Value = (*ratingValue)(nil)

func newRatingValue(p **int) *ratingValue {
	return &ratingValue{rating: p}
}

func (v *ratingValue) String() string {
	if v.rating == nil || *v.rating == nil {
		return ""
	}
	return strconv.Itoa(**v.rating)
}

func (v *ratingValue) Set(s string) error {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < domain.MinRating || n > domain.MaxRating {
		return &domain.ValidationError{Field: "rating", Reason: "must be a whole number between 1 and 10"}
	}
	*v.rating = &n
	return nil
}

func (v *ratingValue) Type() string { return "1-10" }
