package service

const defaultEventBuffer = 16

// Provider bundles the shared services. Screens hold a reference to one
// Provider; they never copy it.
type Provider struct {
	Settings SettingsService
}

// NewProvider returns a Provider backed by in-process services.
func NewProvider() *Provider {
	return &Provider{
		Settings: NewSettingsBus(defaultEventBuffer),
	}
}

// Close shuts every service down.
func (p *Provider) Close() error {
	return p.Settings.Close()
}
