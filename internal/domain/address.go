package domain

import (
	"strings"
	"unicode/utf8"
)

// AddressForm is the input of the company address editor.
type AddressForm struct {
	Address1 string `json:"address1"`
	Address2 string `json:"address2,omitempty"`
	Postcode string `json:"postcode"`
	City     string `json:"city"`
}

// Problems returns a field -> message map of validation failures, nil when
// the form is valid. Messages are user facing (nb).
func (f AddressForm) Problems() map[string]string {
	problems := map[string]string{}
	if strings.TrimSpace(f.Address1) == "" {
		problems["address1"] = "Adresse 1 er påkrevd"
	}
	if utf8.RuneCountInString(strings.TrimSpace(f.Postcode)) < 4 {
		problems["postcode"] = "Postnummer må være minst 4 siffer"
	}
	if strings.TrimSpace(f.City) == "" {
		problems["city"] = "By er påkrevd"
	}
	if len(problems) == 0 {
		return nil
	}
	return problems
}

// Validate returns an *ErrValidation for the first failing field.
func (f AddressForm) Validate() error {
	problems := f.Problems()
	for _, field := range []string{"address1", "postcode", "city"} {
		if msg, ok := problems[field]; ok {
			return &ErrValidation{Field: field, Message: msg}
		}
	}
	return nil
}

// Fields converts the form into a company update body.
func (f AddressForm) Fields() Fields {
	return Fields{
		"address_street": f.Address1,
		"address_zip":    f.Postcode,
		"address_city":   f.City,
	}
}

// AddressOf builds the form from a company's stored address.
func AddressOf(c Company) AddressForm {
	return AddressForm{Address1: c.AddressStreet, Postcode: c.AddressZip, City: c.AddressCity}
}
