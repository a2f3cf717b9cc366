package paths

import (
	"github.com/patchling/patchling/pkg/errors"
)

// CheckNameSafe validates a directory or extension used to query game data.
// Only lowercase ASCII letters, digits, '_' and '.' are allowed so that the
// same mod resolves identically on case-sensitive filesystems.
func CheckNameSafe(name string) error {
	for _, ch := range name {
		switch {
		case ch >= 'a' && ch <= 'z', ch >= '0' && ch <= '9', ch == '_', ch == '.':
		case ch >= 'A' && ch <= 'Z':
			return errors.New(errors.ErrUnsafeName,
				"Please use lowercase path names, as this is required on Linux.").
				WithDetail("name", name).
				WithDetail("char", string(ch))
		default:
			return errors.Newf(errors.ErrUnsafeName, "Invalid character in filename: %q", ch).
				WithDetail("name", name).
				WithDetail("char", string(ch))
		}
	}

	if name == "." || name == ".." {
		return errors.Newf(errors.ErrUnsafeName, "Invalid filename: %q", name).
			WithDetail("name", name)
	}
	return nil
}
