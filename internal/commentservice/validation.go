package commentservice

import (
	"regexp"

	"github.com/jaehyunkim/engage/internal/common"
)

var (
	EmailRX = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	SlugRX  = regexp.MustCompile(`^[a-zA-Z0-9\-_]+$`)
)

func validateSlug(v *common.Validator, slug string) {
	v.Check(slug != "", "slug", "must be provided")
	v.Check(v.CheckStringLength(slug, 1, 100), "slug", "must be at most 100 characters long")
	v.Check(v.Matches(slug, SlugRX), "slug", "must only contain letters, numbers, hyphens, and underscores")
}

func validateAuthor(v *common.Validator, author string) {
	v.Check(author != "", "author", "must be provided")
	v.Check(v.CheckRuneLength(author, 1, 50), "author", "must be between 1 and 50 characters long")
}

func validateEmail(v *common.Validator, email string) {
	v.Check(email != "", "email", "must be provided")
	v.Check(len(email) <= 254, "email", "must be at most 254 characters long")
	v.Check(v.Matches(email, EmailRX), "email", "must be a valid email address")
}

func validateContent(v *common.Validator, content string) {
	v.Check(content != "", "content", "must be provided")
	v.Check(v.CheckRuneLength(content, 1, 2000), "content", "must be between 1 and 2000 characters long")
}
