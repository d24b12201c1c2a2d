package preference

const (
	SourceSaved      = "saved"
	SourceClientHint = "client-hint"
	SourceDefault    = "default"
)

type ThemeResponse struct {
	DarkMode bool   `json:"darkMode"`
	Source   string `json:"source"`
}

type UpdateThemeRequest struct {
	DarkMode *bool `json:"darkMode" binding:"required"`
}
