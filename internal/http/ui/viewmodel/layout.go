package viewmodel

// User represents the signed-in identity exposed to templates.
type User struct {
	ID       string
	Name     string
	Email    string
	Role     string
	Initials string
}

// Toast is a queued notification rendered once by the layout.
type Toast struct {
	Message string
	Type    string
}

// Layout is the chrome every page shares: titles, the active nav entry,
// who is signed in and the theme.
type Layout struct {
	Title           string
	PageTitle       string
	CurrentPage     string
	CSRFToken       string
	Theme           string
	IsAuthenticated bool
	IsAdmin         bool
	User            *User
}

