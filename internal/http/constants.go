package httpx

// CurrentPage constants define the page identifiers used in templates and navigation.
const (
	// Guest pages.
	PageLogin          = "login"
	PageSignup         = "signup"
	PageForgotPassword = "forgot-password"

	// Main navigation pages.
	PageDashboard = "dashboard"

	// Account pages.
	PageEditAccount    = "edit-account"
	PageChangePassword = "change-password"

	// User administration.
	PageUsers    = "users-list"
	PageUserEdit = "user-edit"

	// Categories.
	PageCategories   = "categories-list"
	PageCategoryForm = "category-form"

	// Image upload.
	PageImageUpload = "image-upload"
)

// Live list resources and their registry entry names.
const (
	ResourceUsers      = "users"
	ResourceCategories = "categories"

	registryUpload = "upload"
)

// Template paths used for loading templates in tests and production.
const (
	TemplatePathFromRoot = "frontend/templates"       // From project root
	TemplatePathFromTest = "../../frontend/templates" // From internal/http test files

	StaticPathFromRoot = "frontend/static"
	StaticPathFromTest = "../../frontend/static"
)

// FormMode represents the mode of a form (create or edit).
type FormMode string

const (
	// FormModeEdit indicates the form is in edit mode.
	FormModeEdit FormMode = "edit"
	// FormModeCreate indicates the form is in create mode.
	FormModeCreate FormMode = "create"
)

//nolint:gochecknoglobals // static read-only lookup for templates
var contentTemplates = map[string]string{
	PageLogin:          "login-content",
	PageSignup:         "signup-content",
	PageForgotPassword: "forgot-password-content",
	PageDashboard:      "dashboard-content",
	PageEditAccount:    "edit-account-content",
	PageChangePassword: "change-password-content",
	PageUsers:          "users-list-content",
	PageUserEdit:       "user-edit-content",
	PageCategories:     "categories-list-content",
	PageCategoryForm:   "category-form-content",
	PageImageUpload:    "image-upload-content",
}

// ContentTemplateMap returns the mapping from CurrentPage to template name.
// This is the single source of truth for page-to-template mapping.
func ContentTemplateMap() map[string]string { return contentTemplates }

// ContentTemplateFor returns the content template for the given CurrentPage.
// Falls back to dashboard-content for unknown pages.
func ContentTemplateFor(currentPage string) string {
	if name, ok := ContentTemplateMap()[currentPage]; ok {
		return name
	}
	return "dashboard-content"
}
