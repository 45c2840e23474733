package layouts

type PageData struct {
	Title      string
	SiteHeader string
	UserEmail  string
	SignedIn   bool
	IsAdmin    bool
	// Admin pages show SiteHeader instead of the public title bar.
	AdminPage bool
}
