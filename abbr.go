// Package abbr provides a local, CLI-based abbreviation lookup tool.
// It keeps a versioned local cache of an abbreviation dictionary, fuzzy
// matches user input against it, and streams a generated natural-language
// explanation for the selected abbreviation from a remote service.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., sqlite/, http/, gemini/).
package abbr
