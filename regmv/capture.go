package regmv

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
)

// CaptureSet maps the capture groups of one match to their text. Groups are
// addressed by positional index ("0" is the whole match) or by name.
// Transforms rewrite entries in place before the replacement template is
// rendered against the set.
type CaptureSet struct {
	// Source is the path of the matched file.
	Source string
	// Subject is the text the pattern was matched against.
	Subject string

	names   []string
	values  []string
	matched []bool

	// prefix and suffix hold the unmatched parts of Subject in partial mode.
	prefix string
	suffix string

	defaultValue string
	hasDefault   bool
}

// NewCaptureSet matches re against subject. With partial set, only the
// leftmost match is captured and the rest of subject is kept around it when
// rendering; otherwise re is expected to be anchored by the caller.
// The second result is false when re does not match.
func NewCaptureSet(re *regexp.Regexp, source, subject string, partial bool) (*CaptureSet, bool) {
	loc := re.FindStringSubmatchIndex(subject)
	if loc == nil {
		return nil, false
	}
	n := len(loc) / 2
	s := &CaptureSet{
		Source:  source,
		Subject: subject,
		names:   re.SubexpNames(),
		values:  make([]string, n),
		matched: make([]bool, n),
	}
	for i := 0; i < n; i++ {
		start, end := loc[2*i], loc[2*i+1]
		if start < 0 {
			continue
		}
		s.values[i] = subject[start:end]
		s.matched[i] = true
	}
	if partial {
		s.prefix = subject[:loc[0]]
		s.suffix = subject[loc[1]:]
	}
	return s, true
}

// Len returns the number of groups, including group 0.
func (s *CaptureSet) Len() int { return len(s.values) }

// Name returns the name of group i, or "" when it is unnamed.
func (s *CaptureSet) Name(i int) string {
	if i < 0 || i >= len(s.names) {
		return ""
	}
	return s.names[i]
}

// Index resolves a group key (a decimal index or a group name).
func (s *CaptureSet) Index(key string) (int, error) {
	if i, err := strconv.Atoi(key); err == nil {
		if i < 0 || i >= len(s.values) {
			return 0, fmt.Errorf("%w: %s", ErrUnknownGroup, key)
		}
		return i, nil
	}
	if key != "" {
		for i, name := range s.names {
			if name == key {
				return i, nil
			}
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownGroup, key)
}

// Value returns the current text of group i.
func (s *CaptureSet) Value(i int) string { return s.values[i] }

// Matched reports whether group i participated in the match (or has since
// been assigned by a transform).
func (s *CaptureSet) Matched(i int) bool { return s.matched[i] }

// Get returns the current text of the group named by key and whether it
// participated in the match.
func (s *CaptureSet) Get(key string) (string, bool, error) {
	i, err := s.Index(key)
	if err != nil {
		return "", false, err
	}
	return s.values[i], s.matched[i], nil
}

// Set assigns value to the group named by key.
func (s *CaptureSet) Set(key, value string) error {
	i, err := s.Index(key)
	if err != nil {
		return err
	}
	s.SetIndex(i, value)
	return nil
}

// SetIndex assigns value to group i and marks it as participating.
func (s *CaptureSet) SetIndex(i int, value string) {
	s.values[i] = value
	s.matched[i] = true
}

// SetDefault sets the text rendered for groups that are empty or did not
// participate in the match.
func (s *CaptureSet) SetDefault(value string) {
	s.defaultValue = value
	s.hasDefault = true
}

// Default returns the default value, if one was set.
func (s *CaptureSet) Default() (string, bool) {
	return s.defaultValue, s.hasDefault
}

// Expand renders template against the set. $N (a single digit), ${N},
// $name and ${name} refer to groups; $$ is a literal dollar sign.
func (s *CaptureSet) Expand(template string) (string, error) {
	var expandErr error
	out := os.Expand(template, func(key string) string {
		if key == "$" {
			return "$"
		}
		i, err := s.Index(key)
		if err != nil {
			if expandErr == nil {
				expandErr = err
			}
			return ""
		}
		if (!s.matched[i] || s.values[i] == "") && s.hasDefault {
			return s.defaultValue
		}
		return s.values[i]
	})
	if expandErr != nil {
		return "", expandErr
	}
	return out, nil
}

// Render expands template and, in partial mode, splices the result back
// between the unmatched prefix and suffix of the subject.
func (s *CaptureSet) Render(template string) (string, error) {
	out, err := s.Expand(template)
	if err != nil {
		return "", err
	}
	return s.prefix + out + s.suffix, nil
}
