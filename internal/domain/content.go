package domain

import (
	"regexp"
	"strings"
)

type Access string

const (
	AccessPublic  Access = "public"
	AccessPrivate Access = "private"
)

// Property is one guest property, compiled from properties/<slug>/property.mdx.
// Slug comes from the containing directory name and never changes at runtime.
type Property struct {
	Slug     string
	Title    string
	Location string
	Capacity int
	Access   Access
	Body     string
}

// HouseRulesDoc, InstructionsDoc and CriticalInfoDoc are property-scoped
// documents linked to a Property by PropertySlug == Property.Slug.
type HouseRulesDoc struct {
	PropertySlug string
	Title        string
	Body         string
}

type InstructionsDoc struct {
	PropertySlug string
	Title        string
	Body         string
}

type CriticalInfoDoc struct {
	PropertySlug string
	Title        string
	Body         string
}

// LocalGuideDoc is location-scoped: it matches a Property when
// LocationSlug(Property.Location) == LocalGuideDoc.LocationSlug.
type LocalGuideDoc struct {
	LocationSlug string
	Title        string
	Location     string
	Body         string
}

// WifiInfo is derived from an instructions body on each render; fields are
// independently optional and never persisted.
type WifiInfo struct {
	Network  *string
	Password *string
}

// PropertyView is the read model for a property page: the property plus its
// four optional documents and extracted wifi credentials.
type PropertyView struct {
	Property     Property
	HouseRules   *HouseRulesDoc
	Instructions *InstructionsDoc
	CriticalInfo *CriticalInfoDoc
	LocalGuide   *LocalGuideDoc
	Wifi         WifiInfo
}

var wsRun = regexp.MustCompile(`\s+`)

// LocationSlug normalizes a human-readable place name: lowercased, with runs
// of whitespace collapsed to single hyphens ("Kelvin Heights Peninsula" ->
// "kelvin-heights-peninsula").
func LocationSlug(location string) string {
	return wsRun.ReplaceAllString(strings.ToLower(location), "-")
}
