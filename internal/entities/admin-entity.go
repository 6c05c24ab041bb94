package entities

import (
	"github.com/aarondl/null/v8"
)

type AdminUser struct {
	ID          FlexString  `json:"id"`
	Name        null.String `json:"name"`
	Email       string      `json:"email"`
	PhoneNumber null.String `json:"phone_number"`
	Role        null.String `json:"role"`
	CreatedAt   null.String `json:"created_at"`

	Extra Extra `json:"-"`
}

type adminAlias AdminUser

func (a *AdminUser) UnmarshalJSON(b []byte) error {
	return unmarshalWithExtra(b, (*adminAlias)(a), &a.Extra)
}

func (a AdminUser) MarshalJSON() ([]byte, error) {
	return marshalWithExtra(adminAlias(a), a.Extra)
}
