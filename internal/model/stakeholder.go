package model

import (
	"net/mail"
	"regexp"
	"strings"
)

// codiceFiscaleRe matches the 16-character Italian personal tax identifier.
var codiceFiscaleRe = regexp.MustCompile(`^[A-Z]{6}\d{2}[A-Z]\d{2}[A-Z]\d{3}[A-Z]$`)

// Stakeholder is the billed party of a sales document. It is either a company
// (CompanyName set) or a person (FirstName and LastName set); Validate
// enforces that exactly one of the two shapes is present.
//
// JSON keys mirror the remote schema verbatim: snake_case throughout except
// nazioneIso2, which the platform itself spells in camelCase.
type Stakeholder struct {
	ExternalID           string `json:"external_id,omitempty"`
	IDSquare             string `json:"id_square,omitempty"`
	FirstName            string `json:"nome,omitempty"`
	LastName             string `json:"cognome,omitempty"`
	CompanyName          string `json:"ragionesociale,omitempty"`
	TaxCode              string `json:"codfisc,omitempty"`
	VATNumber            string `json:"piva,omitempty"`
	Email                string `json:"email,omitempty"`
	Phone                string `json:"telefono,omitempty"`
	Mobile               string `json:"cellulare,omitempty"`
	SDICode              string `json:"codice_sdi,omitempty"`
	PEC                  string `json:"pec,omitempty"`
	DonorType            int    `json:"tipo_donatore"`
	CountryISO2          string `json:"nazioneIso2,omitempty"`
	Province             string `json:"sigla_prov,omitempty"`
	City                 string `json:"citta,omitempty"`
	PostalCode           string `json:"cap,omitempty"`
	Street               string `json:"indirizzo,omitempty"`
	StreetNumber         string `json:"n_civico,omitempty"`
	PublicAdministration int    `json:"pubblica_amministrazione"`
}

// FullName returns "nome cognome" for a person, the company name otherwise.
func (s *Stakeholder) FullName() string {
	if s.FirstName != "" && s.LastName != "" {
		return strings.TrimSpace(s.FirstName + " " + s.LastName)
	}
	return s.CompanyName
}

// FullAddress composes the postal address from its parts, skipping empty ones.
func (s *Stakeholder) FullAddress() string {
	parts := make([]string, 0, 5)
	for _, p := range []string{s.Street, s.StreetNumber, s.PostalCode, s.City} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	if s.Province != "" {
		parts = append(parts, "("+s.Province+")")
	}
	return strings.Join(parts, " ")
}

// IsPublicAdministration reports whether the party is a public administration.
func (s *Stakeholder) IsPublicAdministration() bool {
	return s.PublicAdministration == 1
}

// HasVATNumber reports whether a VAT number is set.
func (s *Stakeholder) HasVATNumber() bool {
	return s.VATNumber != ""
}

// Validate returns the business-rule violations for the stakeholder. An empty
// slice means the stakeholder is valid.
func (s *Stakeholder) Validate() []string {
	var errs []string

	if s.CompanyName == "" && (s.FirstName == "" || s.LastName == "") {
		errs = append(errs, "Either ragionesociale or both nome and cognome are required")
	}

	if s.Email != "" && !isEmail(s.Email) {
		errs = append(errs, "Invalid email format")
	}

	if s.PEC != "" && !isEmail(s.PEC) {
		errs = append(errs, "Invalid PEC email format")
	}

	if s.TaxCode != "" && !codiceFiscaleRe.MatchString(strings.ToUpper(s.TaxCode)) {
		errs = append(errs, "Invalid codice fiscale format")
	}

	return errs
}

// IsValid reports whether Validate returns no violations.
func (s *Stakeholder) IsValid() bool {
	return len(s.Validate()) == 0
}

// isEmail accepts a bare address only, no display name.
func isEmail(s string) bool {
	addr, err := mail.ParseAddress(s)
	return err == nil && addr.Address == s
}
