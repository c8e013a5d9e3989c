package domain

import "strings"

// ContactRef is a denormalized reference to the contact a reminder is tied
// to. The backing store owns the contact entity; only the name is carried
// here for display.
type ContactRef struct {
	firstName string
	lastName  string
}

func NewContactRef(firstName, lastName string) (ContactRef, error) {
	if strings.TrimSpace(firstName) == "" {
		return ContactRef{}, ErrInvalidContactRef
	}

	return ContactRef{
		firstName: firstName,
		lastName:  lastName,
	}, nil
}

func (c ContactRef) FirstName() string {
	return c.firstName
}

func (c ContactRef) LastName() string {
	return c.lastName
}

// DisplayName joins the first and last name, omitting the last name when
// it is not set.
func (c ContactRef) DisplayName() string {
	if c.lastName == "" {
		return c.firstName
	}

	return c.firstName + " " + c.lastName
}
