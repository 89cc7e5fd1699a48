package permission

import (
	"errors"
	"fmt"
	"strings"
)

// Validate checks the permission against the grammar: one to three
// colon-separated segments of lowercase letters, digits, hyphens and
// underscores, where "*" may appear only as the final segment.
//
// Validation belongs at the data-entry boundary (role save, catalog load).
// The matcher assumes well-formed input and never re-validates.
func Validate(p Permission) error {
	s := string(p)
	if s == "" {
		return errors.Join(ErrInvalidPermissionFormat, errors.New("permission is empty"))
	}

	segments := strings.Split(s, Separator)
	if len(segments) > MaxSegments {
		return errors.Join(ErrInvalidPermissionFormat,
			fmt.Errorf("permission %q has %d segments, maximum is %d", s, len(segments), MaxSegments))
	}

	for i, seg := range segments {
		if seg == Wildcard {
			if i != len(segments)-1 {
				return errors.Join(ErrInvalidPermissionFormat,
					fmt.Errorf("permission %q: wildcard allowed only as the final segment", s))
			}
			continue
		}
		if !validSegment(seg) {
			return errors.Join(ErrInvalidPermissionFormat,
				fmt.Errorf("permission %q: invalid segment %q", s, seg))
		}
	}

	return nil
}

// ValidateAll validates every permission in the set, returning the first failure.
func ValidateAll(perms []Permission) error {
	for _, p := range perms {
		if err := Validate(p); err != nil {
			return err
		}
	}
	return nil
}

func validSegment(seg string) bool {
	if seg == "" {
		return false
	}
	for _, r := range seg {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= '0' && r <= '9':
		case r == '-' || r == '_':
		default:
			return false
		}
	}
	return true
}
