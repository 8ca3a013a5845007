// Package nameparsing names the interface a person-name parser would
// implement. Per spec.md §1, person-name parsing is out of the core's
// scope — "specified at interface level only" — so this package
// carries no implementation, only the contract a real parser would
// satisfy and the field shape original_source/custom_name_parsing.py
// and better_name_parsing.py split a raw name into.
package nameparsing

// Parsed is the field shape a real name parser would populate:
// given name, family name, any nobiliary particle ("de", "van"), and
// a generational suffix ("Jr.", "III").
type Parsed struct {
	GivenName  string
	FamilyName string
	Particle   string
	Suffix     string
}

// Parser splits a raw free-text name into its constituent parts. No
// implementation is provided; callers needing this functionality must
// supply their own Parser.
type Parser interface {
	Parse(raw string) (Parsed, error)
}
