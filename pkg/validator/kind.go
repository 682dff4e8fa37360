package validator

// Kind identifies a validation rule. The string form matches the key used in
// message overrides ("<field>.<kind>") and translation files ("validation.<kind>").
type Kind uint8

const (
	KindRequired Kind = iota + 1
	KindOptional
	KindString
	KindMinLength
	KindMaxLength
	KindPattern
	KindEmail
	KindIn
	KindConfirmed
	KindUnique
	KindExists
)

var kindNames = map[Kind]string{
	KindRequired:  "required",
	KindOptional:  "nullable",
	KindString:    "string",
	KindMinLength: "min",
	KindMaxLength: "max",
	KindPattern:   "regex",
	KindEmail:     "email",
	KindIn:        "in",
	KindConfirmed: "confirmed",
	KindUnique:    "unique",
	KindExists:    "exists",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// TranslationKey returns the translator key holding the generic template for k.
func (k Kind) TranslationKey() string {
	return "validation." + k.String()
}

// external reports whether rules of this kind consult Lookups.
func (k Kind) external() bool {
	return k == KindUnique || k == KindExists
}
