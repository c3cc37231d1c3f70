package dateparse

import (
	"regexp"
	"strings"

	"parkingbot/internal/domain/claim"
	"parkingbot/internal/pkg/clock"

	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/common"
	"github.com/olebedev/when/rules/en"
)

var (
	weekdayPattern = regexp.MustCompile(`(?i)\b(?:mon|tues|wednes|thurs|fri|satur|sun)day\b`)
	lastPattern    = regexp.MustCompile(`(?i)\b(?:last|past|previous)\b`)
	monthPattern   = regexp.MustCompile(`(?i)\b(?:jan(?:uary)?|feb(?:ruary)?|mar(?:ch)?|apr(?:il)?|may|june?|july?|aug(?:ust)?|sep(?:t(?:ember)?)?|oct(?:ober)?|nov(?:ember)?|dec(?:ember)?)\b`)
	yearPattern    = regexp.MustCompile(`\b\d{4}\b`)
)

// Parser reads ISO dates verbatim and hands anything else to the when rule
// set, relative to the clock's current day.
type Parser struct {
	w     *when.Parser
	clock clock.Clock
}

func NewParser(c clock.Clock) *Parser {
	w := when.New(nil)
	w.Add(en.All...)
	w.Add(common.All...)
	return &Parser{w: w, clock: c}
}

func (p *Parser) Parse(text string) (claim.Date, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return claim.Date{}, false
	}
	if d, err := claim.ParseDate(text); err == nil {
		return d, true
	}

	now := p.clock.Now()
	r, err := p.w.Parse(text, now)
	if err != nil || r == nil {
		return claim.Date{}, false
	}
	// "claim tomorrow maybe" is not a date
	if len(strings.TrimSpace(r.Text)) != len(text) {
		return claim.Date{}, false
	}

	d := claim.DateOf(r.Time.In(now.Location()))
	return p.preferFuture(d, claim.DateOf(now), text), true
}

// preferFuture resolves expressions that do not pin a year or week towards
// the future: "monday" said on a Wednesday means the coming Monday, and
// "May 8" said on May 11 means May 8 of next year.
func (p *Parser) preferFuture(d, today claim.Date, text string) claim.Date {
	if !d.Before(today) || lastPattern.MatchString(text) {
		return d
	}
	switch {
	case monthPattern.MatchString(text) && !yearPattern.MatchString(text):
		return nextAnniversary(d, today)
	case weekdayPattern.MatchString(text):
		for d.Before(today) {
			d = d.AddDays(7)
		}
	}
	return d
}

// nextAnniversary finds the first year in which d's month and day exist and
// are not before today. Feb 29 may skip up to eight years.
func nextAnniversary(d, today claim.Date) claim.Date {
	for year := d.Year() + 1; year <= d.Year()+8; year++ {
		next, err := claim.NewDate(year, d.Month(), d.Day())
		if err == nil && !next.Before(today) {
			return next
		}
	}
	return d
}
