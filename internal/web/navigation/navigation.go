// Package navigation describes the page a handler renders: title, breadcrumbs
// and the extra scripts and stylesheets the base layout has to load.
package navigation

// BreadcrumbItem represents a single breadcrumb link.
type BreadcrumbItem struct {
	Title  string
	URL    string
	Active bool
}

// Context represents the navigation context for a page.
type Context struct {
	PageTitle   string
	ActivePage  string
	Breadcrumbs []BreadcrumbItem
	Scripts     []string
	Styles      []string
}

// NewContext creates a new navigation context.
func NewContext(pageTitle, activePage string) *Context {
	return &Context{
		PageTitle:   pageTitle,
		ActivePage:  activePage,
		Breadcrumbs: make([]BreadcrumbItem, 0),
	}
}

// AddBreadcrumb adds a breadcrumb item to the context.
func (c *Context) AddBreadcrumb(title, url string, active bool) *Context {
	c.Breadcrumbs = append(c.Breadcrumbs, BreadcrumbItem{
		Title:  title,
		URL:    url,
		Active: active,
	})

	return c
}

// AddScript asks the layout to load a script. Duplicates are ignored.
func (c *Context) AddScript(src string) *Context {
	c.Scripts = appendOnce(c.Scripts, src)
	return c
}

// AddStyle asks the layout to load a stylesheet. Duplicates are ignored.
func (c *Context) AddStyle(href string) *Context {
	c.Styles = appendOnce(c.Styles, href)
	return c
}

// IsActive checks if the given page is the current one.
func (c *Context) IsActive(page string) bool {
	return c.ActivePage == page
}

func appendOnce(list []string, v string) []string {
	for _, have := range list {
		if have == v {
			return list
		}
	}

	return append(list, v)
}
