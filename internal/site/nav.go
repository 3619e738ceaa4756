package site

// NavLink is one entry of the header navigation.
type NavLink struct {
	Name   string
	Href   string
	Active bool
}

var navigation = []NavLink{
	{Name: "Home", Href: "/"},
	{Name: "Services", Href: "/services"},
	{Name: "About", Href: "/about"},
	{Name: "Contact", Href: "/contact"},
}

// Navigation returns the header links with the link for path marked active.
func Navigation(path string) []NavLink {
	links := make([]NavLink, len(navigation))
	copy(links, navigation)
	for i := range links {
		links[i].Active = links[i].Href == path
	}
	return links
}
