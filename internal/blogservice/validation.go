package blogservice

import (
	"github.com/google/uuid"
	"github.com/mayleng/inkpost/internal/common"
)

func validateTitle(v *common.Validator, title string) {
	v.Check(v.NotBlank(title), "title", "must be provided")
}

func validateContent(v *common.Validator, content string) {
	v.Check(v.NotBlank(content), "content", "must be provided")
}

// validateGenre accepts any non-empty string. The client offers a fixed set
// of genres but the server does not enforce an enumeration.
func validateGenre(v *common.Validator, genre string) {
	v.Check(v.NotBlank(genre), "genre", "must be provided")
}

func validateAuthorID(v *common.Validator, id uuid.UUID) {
	v.Check(id != uuid.Nil, "authorId", "must be provided")
}
