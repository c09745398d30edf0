package domain

import (
	"fmt"
	"slices"
)

// Category names a placement slot on the landing page
type Category string

const (
	LeftFix         Category = "left_fix"
	RightFix        Category = "right_fix"
	ScrollingBanner Category = "scrolling_banner"
	SliderBanners   Category = "slider_banners"
	AnimatedHover   Category = "animated_hover"
	VIPSites        Category = "vip_sites"
	BottomBanner    Category = "bottom_banner"
)

// AllCategories lists every slot in display order
var AllCategories = []Category{LeftFix, RightFix, ScrollingBanner, SliderBanners, AnimatedHover, VIPSites, BottomBanner}

// ParseCategory validates a category name coming from a request
func ParseCategory(name string) (Category, error) {
	c := Category(name)
	if !slices.Contains(AllCategories, c) {
		return "", fmt.Errorf("%w: %q", ErrUnknownCategory, name)
	}
	return c, nil
}

type Direction string

const (
	Up   Direction = "up"
	Down Direction = "down"
)

// Categories holds ordered lists of site names per slot.
// BottomBanner is an object, every accessor special-cases it.
type Categories struct {
	LeftFix         []string           `json:"left_fix"`
	RightFix        []string           `json:"right_fix"`
	ScrollingBanner []string           `json:"scrolling_banner"`
	SliderBanners   []string           `json:"slider_banners"`
	AnimatedHover   []string           `json:"animated_hover"`
	VIPSites        []string           `json:"vip_sites"`
	BottomBanner    BottomBannerConfig `json:"bottom_banner"`
}

type BottomBannerConfig struct {
	Sites            []string `json:"sites"`
	RotationInterval int      `json:"rotation_interval"` // ms
}

// SiteLimits caps membership of the limited categories. Zero means default.
type SiteLimits struct {
	LeftFix       int `json:"left_fix"`
	RightFix      int `json:"right_fix"`
	AnimatedHover int `json:"animated_hover"`
}

func DefaultSiteLimits() SiteLimits {
	return SiteLimits{LeftFix: 1, RightFix: 1, AnimatedHover: 4}
}

// Limit reports the capacity of c. Unlimited categories return false.
func (l SiteLimits) Limit(c Category) (int, bool) {
	def := DefaultSiteLimits()
	pick := func(v, fallback int) int {
		if v <= 0 {
			return fallback
		}
		return v
	}
	switch c {
	case LeftFix:
		return pick(l.LeftFix, def.LeftFix), true
	case RightFix:
		return pick(l.RightFix, def.RightFix), true
	case AnimatedHover:
		return pick(l.AnimatedHover, def.AnimatedHover), true
	}
	return 0, false
}

// CanAdd is false only when c is limited and already holds count >= limit members
func (l SiteLimits) CanAdd(c Category, count int) bool {
	limit, ok := l.Limit(c)
	return !ok || count < limit
}

// CanAdd checks capacity against the default limits
func CanAdd(c Category, count int) bool {
	return DefaultSiteLimits().CanAdd(c, count)
}

// Reorder swaps list[from] with its neighbour in dir. Moves past either end are no-ops.
func Reorder(list []string, from int, dir Direction) []string {
	out := slices.Clone(list)
	if from < 0 || from >= len(out) {
		return out
	}
	to := from - 1
	if dir == Down {
		to = from + 1
	}
	if to < 0 || to >= len(out) {
		return out
	}
	out[from], out[to] = out[to], out[from]
	return out
}

// AddMember appends name, keeping names unique within the list
func AddMember(list []string, name string) ([]string, error) {
	if slices.Contains(list, name) {
		return slices.Clone(list), ErrAlreadyMember
	}
	out := make([]string, 0, len(list)+1)
	out = append(out, list...)
	return append(out, name), nil
}

// RemoveMember drops every occurrence of name; absent names are fine
func RemoveMember(list []string, name string) []string {
	out := make([]string, 0, len(list))
	for _, n := range list {
		if n != name {
			out = append(out, n)
		}
	}
	return out
}

// Members returns a copy of the list for c
func (c Categories) Members(cat Category) ([]string, error) {
	switch cat {
	case LeftFix:
		return slices.Clone(c.LeftFix), nil
	case RightFix:
		return slices.Clone(c.RightFix), nil
	case ScrollingBanner:
		return slices.Clone(c.ScrollingBanner), nil
	case SliderBanners:
		return slices.Clone(c.SliderBanners), nil
	case AnimatedHover:
		return slices.Clone(c.AnimatedHover), nil
	case VIPSites:
		return slices.Clone(c.VIPSites), nil
	case BottomBanner:
		return slices.Clone(c.BottomBanner.Sites), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownCategory, cat)
}

// WithMembers returns a copy of c with the list for cat replaced
func (c Categories) WithMembers(cat Category, list []string) (Categories, error) {
	out := c.Clone()
	switch cat {
	case LeftFix:
		out.LeftFix = list
	case RightFix:
		out.RightFix = list
	case ScrollingBanner:
		out.ScrollingBanner = list
	case SliderBanners:
		out.SliderBanners = list
	case AnimatedHover:
		out.AnimatedHover = list
	case VIPSites:
		out.VIPSites = list
	case BottomBanner:
		out.BottomBanner.Sites = list
	default:
		return c, fmt.Errorf("%w: %q", ErrUnknownCategory, cat)
	}
	return out, nil
}

// Add places name at the end of cat after the capacity and uniqueness checks
func (c Categories) Add(cat Category, name string, limits SiteLimits) (Categories, error) {
	list, err := c.Members(cat)
	if err != nil {
		return c, err
	}
	if slices.Contains(list, name) {
		return c, fmt.Errorf("%w: %s in %s", ErrAlreadyMember, name, cat)
	}
	if !limits.CanAdd(cat, len(list)) {
		limit, _ := limits.Limit(cat)
		return c, fmt.Errorf("%w: %s allows %d site(s)", ErrCategoryFull, cat, limit)
	}
	list, err = AddMember(list, name)
	if err != nil {
		return c, err
	}
	return c.WithMembers(cat, list)
}

func (c Categories) Remove(cat Category, name string) (Categories, error) {
	list, err := c.Members(cat)
	if err != nil {
		return c, err
	}
	return c.WithMembers(cat, RemoveMember(list, name))
}

// Move shifts name one step in dir; unknown names leave the list untouched
func (c Categories) Move(cat Category, name string, dir Direction) (Categories, error) {
	list, err := c.Members(cat)
	if err != nil {
		return c, err
	}
	return c.WithMembers(cat, Reorder(list, slices.Index(list, name), dir))
}

// RemoveEverywhere drops name from all seven lists (site deletion cascade)
func (c Categories) RemoveEverywhere(name string) Categories {
	out := c.Clone()
	for _, cat := range AllCategories {
		list, _ := out.Members(cat)
		out, _ = out.WithMembers(cat, RemoveMember(list, name))
	}
	return out
}

// Violations reports capacity overflows and duplicate names. Loads tolerate
// them; callers decide whether to log or reject.
func (c Categories) Violations(limits SiteLimits) []error {
	var errs []error
	for _, cat := range AllCategories {
		list, _ := c.Members(cat)
		if limit, ok := limits.Limit(cat); ok && len(list) > limit {
			errs = append(errs, fmt.Errorf("%w: %s has %d site(s), limit %d", ErrCategoryFull, cat, len(list), limit))
		}
		seen := make(map[string]bool, len(list))
		for _, name := range list {
			if seen[name] {
				errs = append(errs, fmt.Errorf("%w: %s in %s", ErrAlreadyMember, name, cat))
			}
			seen[name] = true
		}
	}
	return errs
}

func (c Categories) Clone() Categories {
	return Categories{
		LeftFix:         slices.Clone(c.LeftFix),
		RightFix:        slices.Clone(c.RightFix),
		ScrollingBanner: slices.Clone(c.ScrollingBanner),
		SliderBanners:   slices.Clone(c.SliderBanners),
		AnimatedHover:   slices.Clone(c.AnimatedHover),
		VIPSites:        slices.Clone(c.VIPSites),
		BottomBanner: BottomBannerConfig{
			Sites:            slices.Clone(c.BottomBanner.Sites),
			RotationInterval: c.BottomBanner.RotationInterval,
		},
	}
}
