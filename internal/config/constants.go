package config

// SourceFileExt is the canonical extension for source files this core
// accepts (mirrors the teacher's config.SourceFileExt single-constant
// pattern).
const SourceFileExt = ".ec"

// Built-in name constants referenced by more than one pass, kept here so
// a rename only touches one file (teacher's internal/config/constants.go
// groups built-in names the same way).
const (
	MainFuncName = "main"
	SelfParamName = "self"
)
