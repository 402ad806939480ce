package counterservice

import (
	"regexp"

	"github.com/jaehyunkim/engage/internal/common"
)

var SlugRX = regexp.MustCompile(`^[a-zA-Z0-9\-_]+$`)

func validateSlug(v *common.Validator, slug string) {
	v.Check(slug != "", "slug", "must be provided")
	v.Check(v.CheckStringLength(slug, 1, 100), "slug", "must be at most 100 characters long")
	v.Check(v.Matches(slug, SlugRX), "slug", "must only contain letters, numbers, hyphens, and underscores")
}

func validateSession(v *common.Validator, session string) {
	v.Check(session != "", "session", "must be provided")
}
