package ports

//go:generate mockgen -source=validator.go -destination=mocks/validator_mock.go -package=mocks

// ImportValidator statically checks candidate source against an import
// allowlist before any execution. Source that cannot be analyzed is
// rejected.
type ImportValidator interface {
	Validate(source string, allow []string) error
}
